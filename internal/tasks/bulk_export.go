package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/salonx/internal/formatter"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk agenda exports.
type BulkExportOpts struct {
	Format     string      // Export format: json, csv, markdown, txt
	OutputDir  string      // Base output directory (default: agenda_{date}_{epoch})
	NumWorkers int         // Concurrent workers (default: 4)
	RateLimit  float64     // Backend reads per second (default: 5)
	Currency   string      // Currency code shown in prices
	Recorder   JobRecorder // Optional export job persistence
}

// AgendaExportResult is the outcome for one stylist.
type AgendaExportResult struct {
	StylistID    string
	StylistName  string
	Appointments int
	Files        []string
	Success      bool
	Error        error
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	JobID             string
	Date              string
	TotalStylists     int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []AgendaExportResult
}

type agendaJob struct {
	export *models.AgendaExport
}

// BulkExport writes the agenda of every stylist in stylistIDs for date, or of every stylist when stylistIDs is empty.
//
// Agendas are fetched sequentially under the rate limiter and written by a worker pool.
// A failed stylist does not stop the run; it is recorded in the result and the manifest.
func (e *AgendaEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	date string,
	stylistIDs []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: date", shared.ErrMissingArgument)
	}
	if e.stylists == nil || e.appointments == nil {
		return nil, fmt.Errorf("%w: agenda sources not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("agenda_%s_%d", date, time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	stylists, err := e.resolveStylists(ctx, stylistIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stylists: %w", err)
	}
	e.sendProgress(prog, fetchStylistsUpdate(len(stylists)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	job := models.NewExportJob(date, opts.Format, len(stylists))
	job.SetOutputDir(opts.OutputDir)
	e.record(opts.Recorder, job, true)
	job.Start()
	e.record(opts.Recorder, job, false)

	result := &BulkExportResult{
		JobID:           job.ID(),
		Date:            date,
		TotalStylists:   len(stylists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]AgendaExportResult, 0, len(stylists)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan agendaJob, len(stylists))
	results := make(chan AgendaExportResult, len(stylists))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, st := range stylists {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, fetchAgendaUpdate(i+1, len(stylists), st))

			export, err := e.agenda(ctx, st, date, opts.Currency)
			if err != nil {
				results <- AgendaExportResult{
					StylistID:   st.ID,
					StylistName: st.Name,
					Error:       fmt.Errorf("failed to fetch agenda: %w", err),
				}
				continue
			}
			jobs <- agendaJob{export: export}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(stylists), res.StylistName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(stylists), res.StylistName, res.Error))
		}
	}

	job.SetCounts(len(stylists), result.SuccessfulExports, result.FailedExports)

	var runErr error
	switch {
	case ctx.Err() != nil:
		runErr = ctx.Err()
	case result.FailedExports > 0:
		runErr = fmt.Errorf("%d of %d agendas failed", result.FailedExports, len(stylists))
	}
	job.Finish(runErr)
	e.record(opts.Recorder, job, false)

	manifestPath, err := formatter.WriteExportManifest(manifest(result, opts.Format), opts.OutputDir)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	return result, nil
}

// record persists job through r. Recorder failures are logged, never returned.
func (e *AgendaEngine) record(r JobRecorder, job *models.ExportJob, create bool) {
	if r == nil {
		return
	}

	var err error
	if create {
		err = r.Create(job)
	} else {
		err = r.Update(job)
	}
	if err != nil {
		e.logger.Warn("failed to record export job", "status", job.Status(), "error", err)
	}
}

// exportWorker is a worker goroutine that writes agendas from the jobs channel.
func (e *AgendaEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan agendaJob,
	results chan<- AgendaExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- AgendaExportResult{
				StylistID:   job.export.Stylist.ID,
				StylistName: job.export.Stylist.Name,
				Error:       ctx.Err(),
			}
			continue
		default:
		}

		results <- exportSingleAgenda(job.export, opts)
	}
}

// exportSingleAgenda writes one agenda in the requested format.
func exportSingleAgenda(export *models.AgendaExport, opts BulkExportOpts) AgendaExportResult {
	result := AgendaExportResult{
		StylistID:    export.Stylist.ID,
		StylistName:  export.Stylist.Name,
		Appointments: len(export.Appointments),
		Files:        []string{},
	}

	base := filepath.Join(opts.OutputDir, export.Stylist.ID)

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(export, base)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.AppointmentsFile, csvRes.MetadataFile}

	case "markdown":
		path, err := formatter.WriteMarkdownExport(export, base)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = []string{path}

	case "txt":
		path, err := formatter.WriteTextExport(export, base+".txt")
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}

	case "json":
		fallthrough
	default:
		path, err := formatter.WriteJSONExport(export, base+".json")
		if err != nil {
			result.Error = fmt.Errorf("JSON export failed: %w", err)
			return result
		}
		result.Files = []string{path}
	}

	result.Success = true
	return result
}

func manifest(result *BulkExportResult, format string) *formatter.ExportManifest {
	m := &formatter.ExportManifest{
		JobID:       result.JobID,
		Date:        result.Date,
		Format:      format,
		GeneratedAt: time.Now().UTC(),
		Exported:    result.SuccessfulExports,
		Failed:      result.FailedExports,
		Entries:     make([]formatter.ManifestEntry, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		entry := formatter.ManifestEntry{
			StylistID:    r.StylistID,
			StylistName:  r.StylistName,
			Appointments: r.Appointments,
			Files:        r.Files,
		}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		m.Entries = append(m.Entries, entry)
	}
	return m
}
