package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/desertthunder/salonx/internal/tasks"
	"github.com/desertthunder/salonx/internal/ui"
	"github.com/urfave/cli/v3"
)

func (r *Runner) exportOpts(cmd *cli.Command) tasks.BulkExportOpts {
	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: r.config.Export.Workers,
		RateLimit:  r.config.Export.RateLimit,
		Currency:   r.currency(),
	}
	if r.jobs != nil {
		opts.Recorder = r.jobs
	}
	return opts
}

// ExportAgenda writes each stylist's agenda for a day to disk.
func (r *Runner) ExportAgenda(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	date := cmd.String("date")
	opts := r.exportOpts(cmd)

	if cmd.Bool("interactive") {
		return r.exportInteractive(ctx, date, opts)
	}

	r.logger.Info("starting agenda export", "date", date, "format", opts.Format)
	r.writePlain("Exporting agendas for %s...\n\n", date)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchStylists:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchAgenda:
				r.writePlain("   %s\n", ui.Muted(update.Message))
			case tasks.ExportAgenda:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.BulkExport(ctx, progressCh, date, cmd.StringSlice("stylist"), opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Job:       %s\n", result.JobID)
	r.writePlain("Exported:  %s\n", ui.Success(fmt.Sprintf("%d/%d", result.SuccessfulExports, result.TotalStylists)))
	r.writePlain("Output:    %s\n", result.OutputDirectory)
	r.writePlain("Manifest:  %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlain("\n%s\n", ui.Warn(fmt.Sprintf("Failed to export %d agendas:", result.FailedExports)))
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", firstNonEmpty(res.StylistName, res.StylistID), res.Error)
			}
		}
	}

	return nil
}

// exportInteractive runs the agenda browser; its logs go to a file so they do not garble the screen.
func (r *Runner) exportInteractive(ctx context.Context, date string, opts tasks.BulkExportOpts) error {
	fileLogger, err := shared.NewFileLogger(filepath.Join("tmp", "salonx-tui.log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.engine.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.suite.Stylists, r.suite.Appointments, r.engine, date, opts)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

type exportJobRow struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Format    string `json:"format"`
	Status    string `json:"status"`
	Total     int    `json:"stylists_total"`
	Exported  int    `json:"stylists_exported"`
	Failed    int    `json:"stylists_failed"`
	OutputDir string `json:"output_dir,omitempty"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ExportJobs lists recorded exports, newest first.
func (r *Runner) ExportJobs(ctx context.Context, cmd *cli.Command) error {
	if r.jobs == nil {
		return fmt.Errorf("%w: export job storage not initialized, run 'salonx setup database'", shared.ErrServiceUnavailable)
	}

	criteria := map[string]any{}
	if d := cmd.String("date"); d != "" {
		criteria["agenda_date"] = d
	}
	if s := cmd.String("status"); s != "" {
		criteria["status"] = s
	}

	jobs, err := r.jobs.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list export jobs: %w", err)
	}

	rows := make([]exportJobRow, len(jobs))
	for i, j := range jobs {
		rows[i] = exportJobRow{
			ID:        j.ID(),
			Date:      j.AgendaDate(),
			Format:    j.Format(),
			Status:    string(j.Status()),
			Total:     j.StylistsTotal(),
			Exported:  j.StylistsExported(),
			Failed:    j.StylistsFailed(),
			OutputDir: j.OutputDir(),
			Error:     j.ErrorMessage(),
			CreatedAt: j.CreatedAt().UTC().Format("2006-01-02 15:04:05"),
		}
	}

	return r.emit(cmd, rows, func() error {
		r.writePlainHeader(fmt.Sprintf("Export jobs (%d)", len(rows)))
		for _, row := range rows {
			status := row.Status
			switch status {
			case "completed":
				status = ui.Success(status)
			case "failed":
				status = ui.Error(status)
			default:
				status = ui.Warn(status)
			}
			r.writePlain("%s  %s  %-8s %-10s %d/%d  %s\n", row.ID, row.Date, row.Format, status, row.Exported, row.Total, ui.Muted(row.OutputDir))
		}
		return nil
	})
}
