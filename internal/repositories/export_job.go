package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
)

// ExportJobRepository implements models.Repository[*models.ExportJob] for export tracking.
type ExportJobRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.ExportJob] = (*ExportJobRepository)(nil)

// NewExportJobRepository creates a new ExportJobRepository with the given database connection
func NewExportJobRepository(db *sql.DB) *ExportJobRepository {
	return &ExportJobRepository{db: db}
}

const exportJobColumns = `
	id, agenda_date, format, status, stylists_total, stylists_exported,
	stylists_failed, output_dir, error_message, started_at, completed_at,
	created_at, updated_at
`

// Create inserts a new export job with a generated ID
func (r *ExportJobRepository) Create(job *models.ExportJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	job.SetID(id)

	_, err := r.db.Exec(`INSERT INTO export_jobs (`+exportJobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		job.AgendaDate(),
		job.Format(),
		string(job.Status()),
		job.StylistsTotal(),
		job.StylistsExported(),
		job.StylistsFailed(),
		nullable(job.OutputDir()),
		nullable(job.ErrorMessage()),
		job.StartedAt(),
		job.CompletedAt(),
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert export job: %w", err)
	}
	return nil
}

// Get retrieves an export job by ID
func (r *ExportJobRepository) Get(id string) (*models.ExportJob, error) {
	row := r.db.QueryRow(`SELECT `+exportJobColumns+` FROM export_jobs WHERE id = ?`, id)
	job, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("export job %s: %w", id, shared.ErrNotFound)
	}
	return job, err
}

// Update persists status, counters and timestamps of an existing job
func (r *ExportJobRepository) Update(job *models.ExportJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	job.SetUpdatedAt(time.Now())

	result, err := r.db.Exec(`
		UPDATE export_jobs
		SET status = ?, stylists_total = ?, stylists_exported = ?, stylists_failed = ?,
			output_dir = ?, error_message = ?, started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`,
		string(job.Status()),
		job.StylistsTotal(),
		job.StylistsExported(),
		job.StylistsFailed(),
		nullable(job.OutputDir()),
		nullable(job.ErrorMessage()),
		job.StartedAt(),
		job.CompletedAt(),
		job.UpdatedAt(),
		job.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update export job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("export job %s: %w", job.ID(), shared.ErrNotFound)
	}
	return nil
}

// Delete removes an export job record
func (r *ExportJobRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM export_jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete export job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("export job %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

// List retrieves export jobs newest first, filtered by "agenda_date" and "status" criteria
func (r *ExportJobRepository) List(criteria map[string]any) ([]*models.ExportJob, error) {
	query := `SELECT ` + exportJobColumns + ` FROM export_jobs WHERE 1 = 1`
	args := []any{}

	if date, ok := criteria["agenda_date"].(string); ok && date != "" {
		query += " AND agenda_date = ?"
		args = append(args, date)
	}

	switch status := criteria["status"].(type) {
	case string:
		if status != "" {
			query += " AND status = ?"
			args = append(args, status)
		}
	case models.ExportStatus:
		query += " AND status = ?"
		args = append(args, string(status))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query export jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.ExportJob
	for rows.Next() {
		job, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return jobs, nil
}

func (r *ExportJobRepository) scan(row rowScanner) (*models.ExportJob, error) {
	var (
		id               string
		agendaDate       string
		format           string
		status           string
		stylistsTotal    int
		stylistsExported int
		stylistsFailed   int
		outputDir        sql.NullString
		errorMessage     sql.NullString
		startedAt        sql.NullTime
		completedAt      sql.NullTime
		createdAt        time.Time
		updatedAt        time.Time
	)

	err := row.Scan(
		&id, &agendaDate, &format, &status, &stylistsTotal, &stylistsExported,
		&stylistsFailed, &outputDir, &errorMessage, &startedAt, &completedAt,
		&createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan export job: %w", err)
	}

	job := models.NewExportJob(agendaDate, format, stylistsTotal)
	job.SetID(id)
	job.SetStatus(models.ExportStatus(status))
	job.SetCounts(stylistsTotal, stylistsExported, stylistsFailed)
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)

	if outputDir.Valid {
		job.SetOutputDir(outputDir.String)
	}
	if errorMessage.Valid {
		job.SetErrorMessage(errorMessage.String)
	}
	if startedAt.Valid {
		job.SetStartedAt(&startedAt.Time)
	}
	if completedAt.Valid {
		job.SetCompletedAt(&completedAt.Time)
	}

	return job, nil
}
