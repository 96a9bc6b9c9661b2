package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for persisted models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// ExportStatus is the lifecycle state of an [ExportJob].
type ExportStatus string

const (
	ExportPending   ExportStatus = "pending"
	ExportRunning   ExportStatus = "running"
	ExportCompleted ExportStatus = "completed"
	ExportFailed    ExportStatus = "failed"
)

// ExportJob records one bulk agenda export.
type ExportJob struct {
	id               string
	agendaDate       string
	format           string
	status           ExportStatus
	stylistsTotal    int
	stylistsExported int
	stylistsFailed   int
	outputDir        string
	errorMessage     string
	startedAt        *time.Time
	completedAt      *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewExportJob creates a pending export job for the given agenda date and format.
func NewExportJob(agendaDate, format string, stylistsTotal int) *ExportJob {
	now := time.Now()
	return &ExportJob{
		agendaDate:    agendaDate,
		format:        format,
		status:        ExportPending,
		stylistsTotal: stylistsTotal,
		createdAt:     now,
		updatedAt:     now,
	}
}

func (j *ExportJob) ID() string              { return j.id }
func (j *ExportJob) AgendaDate() string      { return j.agendaDate }
func (j *ExportJob) Format() string          { return j.format }
func (j *ExportJob) Status() ExportStatus    { return j.status }
func (j *ExportJob) StylistsTotal() int      { return j.stylistsTotal }
func (j *ExportJob) StylistsExported() int   { return j.stylistsExported }
func (j *ExportJob) StylistsFailed() int     { return j.stylistsFailed }
func (j *ExportJob) OutputDir() string       { return j.outputDir }
func (j *ExportJob) ErrorMessage() string    { return j.errorMessage }
func (j *ExportJob) StartedAt() *time.Time   { return j.startedAt }
func (j *ExportJob) CompletedAt() *time.Time { return j.completedAt }
func (j *ExportJob) CreatedAt() time.Time    { return j.createdAt }
func (j *ExportJob) UpdatedAt() time.Time    { return j.updatedAt }

func (j *ExportJob) SetID(id string)             { j.id = id }
func (j *ExportJob) SetOutputDir(dir string)     { j.outputDir = dir }
func (j *ExportJob) SetCreatedAt(t time.Time)    { j.createdAt = t }
func (j *ExportJob) SetUpdatedAt(t time.Time)    { j.updatedAt = t }
func (j *ExportJob) SetStartedAt(t *time.Time)   { j.startedAt = t }
func (j *ExportJob) SetCompletedAt(t *time.Time) { j.completedAt = t }
func (j *ExportJob) SetStatus(s ExportStatus)    { j.status = s }
func (j *ExportJob) SetErrorMessage(msg string)  { j.errorMessage = msg }

// SetCounts records per-stylist results.
func (j *ExportJob) SetCounts(total, exported, failed int) {
	j.stylistsTotal = total
	j.stylistsExported = exported
	j.stylistsFailed = failed
}

// Start marks the job running.
func (j *ExportJob) Start() {
	now := time.Now()
	j.status = ExportRunning
	j.startedAt = &now
	j.updatedAt = now
}

// Finish marks the job completed, or failed when err is non-nil.
func (j *ExportJob) Finish(err error) {
	now := time.Now()
	j.completedAt = &now
	j.updatedAt = now
	if err != nil {
		j.status = ExportFailed
		j.errorMessage = err.Error()
		return
	}
	j.status = ExportCompleted
}

// Validate checks required fields and counters.
func (j *ExportJob) Validate() error {
	if j.agendaDate == "" {
		return fmt.Errorf("agenda date is required")
	}
	if j.format == "" {
		return fmt.Errorf("format is required")
	}
	switch j.status {
	case ExportPending, ExportRunning, ExportCompleted, ExportFailed:
	default:
		return fmt.Errorf("invalid status: %s", j.status)
	}
	if j.stylistsExported+j.stylistsFailed > j.stylistsTotal {
		return fmt.Errorf("exported (%d) + failed (%d) exceeds total (%d)", j.stylistsExported, j.stylistsFailed, j.stylistsTotal)
	}
	return nil
}
