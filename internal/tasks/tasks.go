package tasks

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/salonx/internal/models"
)

// StylistSource lists and resolves stylists.
type StylistSource interface {
	GetStylists(ctx context.Context) ([]models.Stylist, error)
	GetStylistByID(ctx context.Context, id string) (*models.Stylist, error)
}

// AppointmentSource lists normalized appointments.
type AppointmentSource interface {
	GetAppointments(ctx context.Context, f models.AppointmentFilter) ([]models.Appointment, error)
}

// BlockSource lists a stylist's agenda blocks.
type BlockSource interface {
	GetBlocks(ctx context.Context, stylistID string) ([]models.Block, error)
}

// JobRecorder persists export job state. [repositories.ExportJobRepository] satisfies it.
type JobRecorder interface {
	Create(job *models.ExportJob) error
	Update(job *models.ExportJob) error
}

// AgendaEngine runs agenda exports and summaries. Blocks are optional.
type AgendaEngine struct {
	stylists     StylistSource
	appointments AppointmentSource
	blocks       BlockSource
	logger       *log.Logger
}

// NewAgendaEngine creates an engine over the given sources. blocks may be nil.
func NewAgendaEngine(stylists StylistSource, appointments AppointmentSource, blocks BlockSource) *AgendaEngine {
	return &AgendaEngine{
		stylists:     stylists,
		appointments: appointments,
		blocks:       blocks,
		logger:       log.New(io.Discard),
	}
}

// SetLogger replaces the engine logger.
func (e *AgendaEngine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l.With("task", "agenda")
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *AgendaEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// agenda loads one stylist's day. A failed block fetch leaves Blocks empty.
func (e *AgendaEngine) agenda(ctx context.Context, stylist models.Stylist, date, currency string) (*models.AgendaExport, error) {
	appts, err := e.appointments.GetAppointments(ctx, models.AppointmentFilter{StylistID: stylist.ID, Date: date})
	if err != nil {
		return nil, err
	}

	export := &models.AgendaExport{
		Stylist:      stylist,
		Date:         date,
		Currency:     currency,
		Appointments: appts,
	}

	if e.blocks != nil {
		blocks, err := e.blocks.GetBlocks(ctx, stylist.ID)
		if err != nil {
			e.logger.Warn("blocks unavailable", "stylist", stylist.ID, "error", err)
		}
		for _, b := range blocks {
			if b.Date == date {
				export.Blocks = append(export.Blocks, b)
			}
		}
	}
	return export, nil
}

// resolveStylists returns the stylists for ids, or every stylist when ids is empty.
func (e *AgendaEngine) resolveStylists(ctx context.Context, ids []string) ([]models.Stylist, error) {
	if len(ids) == 0 {
		return e.stylists.GetStylists(ctx)
	}

	stylists := make([]models.Stylist, 0, len(ids))
	for _, id := range ids {
		st, err := e.stylists.GetStylistByID(ctx, id)
		if err != nil {
			return nil, err
		}
		stylists = append(stylists, *st)
	}
	return stylists, nil
}
