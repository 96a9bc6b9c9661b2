package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/desertthunder/salonx/internal/ui"
	"github.com/urfave/cli/v3"
)

// SessionLogin stores a bearer token and the identity read from its claims.
//
// Flags override claims. Expired tokens are rejected.
func (r *Runner) SessionLogin(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	claims, err := shared.ParseSessionToken(token)
	if err != nil {
		return err
	}
	if claims.Expired(r.now()) {
		return shared.ErrTokenExpired
	}

	current := r.client.Session()
	s := models.Session{
		Token:    token,
		Role:     firstNonEmpty(cmd.String("role"), claims.Role),
		UserID:   firstNonEmpty(cmd.String("user-id"), claims.Subject),
		Email:    firstNonEmpty(cmd.String("email"), claims.Email),
		Name:     firstNonEmpty(cmd.String("name"), claims.Name),
		Locale:   current.Locale,
		Currency: current.Currency,
	}

	r.suite.Reset(ctx)
	r.client.SetSession(s)

	if r.sessions == nil {
		r.logger.Warn("no session storage, login lasts for this run only")
	} else if err := r.sessions.Save(s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Info("logged in", "email", s.Email, "role", s.Role)
	return r.writePlain("%s logged in as %s (%s)\n", ui.Success("✓"), firstNonEmpty(s.Email, s.UserID, "unknown"), s.Role)
}

// SessionLogout drops the stored session and clears every cache.
func (r *Runner) SessionLogout(ctx context.Context, cmd *cli.Command) error {
	current := r.client.Session()
	r.suite.Reset(ctx)
	r.client.SetSession(models.Session{Locale: current.Locale, Currency: current.Currency})

	if r.sessions != nil {
		if err := r.sessions.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}

	r.logger.Info("logged out")
	return r.writePlain("%s logged out\n", ui.Success("✓"))
}

type sessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	Expired       bool   `json:"expired"`
	Role          string `json:"role,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Locale        string `json:"locale,omitempty"`
	Currency      string `json:"currency,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
	BaseURL       string `json:"base_url"`
}

// SessionStatus shows the loaded session. The token itself is never printed.
func (r *Runner) SessionStatus(ctx context.Context, cmd *cli.Command) error {
	s := r.client.Session()
	status := sessionStatus{
		Authenticated: s.Authenticated(),
		Role:          s.Role,
		UserID:        s.UserID,
		Email:         s.Email,
		Name:          s.Name,
		Locale:        s.Locale,
		Currency:      s.Currency,
		BaseURL:       r.client.BaseURL(),
	}
	if s.Authenticated() {
		if claims, err := shared.ParseSessionToken(s.Token); err == nil {
			status.Expired = claims.Expired(r.now())
			if claims.ExpiresAt != nil {
				status.ExpiresAt = claims.ExpiresAt.Time.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
	}

	return r.emit(cmd, status, func() error {
		r.writePlainHeader("Session")
		switch {
		case !status.Authenticated:
			r.writePlain("%s\n", ui.Warn("not logged in"))
		case status.Expired:
			r.writePlain("%s\n", ui.Error("token expired"))
		default:
			r.writePlain("%s\n", ui.Success("logged in"))
		}
		r.writePlain("Backend:  %s\n", status.BaseURL)
		if status.Authenticated {
			r.writePlain("Email:    %s\n", status.Email)
			r.writePlain("Role:     %s\n", status.Role)
			r.writePlain("User ID:  %s\n", status.UserID)
			if status.ExpiresAt != "" {
				r.writePlain("Expires:  %s\n", status.ExpiresAt)
			}
		}
		return r.writePlain("Locale:   %s\nCurrency: %s\n", status.Locale, status.Currency)
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
