package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/salonx/internal/models"
)

// SessionRepository persists the [models.Session] as one row per storage key.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save replaces the stored session with s. Empty fields are not stored.
func (r *SessionRepository) Save(s models.Session) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM session_state`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	now := time.Now()
	for key, value := range s.Values() {
		if _, err := tx.Exec(
			`INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, ?)`,
			key, value, now,
		); err != nil {
			return fmt.Errorf("failed to store %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// Load returns the stored session; it is the zero session when nothing is stored.
func (r *SessionRepository) Load() (models.Session, error) {
	values, err := r.Values()
	if err != nil {
		return models.Session{}, err
	}
	return models.SessionFromValues(values), nil
}

// Values returns every stored key.
func (r *SessionRepository) Values() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM session_state`)
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return values, nil
}

// Set stores a single key, as when only the locale changes.
func (r *SessionRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Clear removes every stored key.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM session_state`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
