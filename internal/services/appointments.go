package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/normalize"
	"github.com/desertthunder/salonx/internal/shared"
)

// AppointmentsKey is the list cache key for a filter. Absent filters are empty segments.
func AppointmentsKey(f models.AppointmentFilter) string {
	return fmt.Sprintf("appointments_%s_%s", f.StylistID, f.Date)
}

// Appointments is the facade over the agenda. Every record is normalized before it is cached.
type Appointments struct {
	client *Client
	lists  *cache.Store[[]models.Appointment]
	byID   *cache.Store[*models.Appointment]
}

func NewAppointments(client *Client, cfg CacheConfig) *Appointments {
	window := cfg.appointmentsWindow()
	opts := cfg.options("appointments")
	return &Appointments{
		client: client,
		lists:  cache.New[[]models.Appointment]("appointments", window, opts...),
		byID:   cache.New[*models.Appointment]("appointment", window, opts...),
	}
}

// GetAppointments lists appointments (GET /citas?profesional_id=&fecha=).
func (a *Appointments) GetAppointments(ctx context.Context, f models.AppointmentFilter) ([]models.Appointment, error) {
	return a.lists.Fetch(ctx, AppointmentsKey(f), func(ctx context.Context) ([]models.Appointment, error) {
		query := url.Values{}
		if f.StylistID != "" {
			query.Set("profesional_id", f.StylistID)
		}
		if f.Date != "" {
			query.Set("fecha", f.Date)
		}

		var recs []models.AppointmentRecord
		if err := a.client.Get(ctx, "/citas", query, &recs); err != nil {
			return nil, err
		}
		return normalize.Appointments(recs), nil
	})
}

// GetAppointmentByID returns one normalized appointment (GET /citas/{id}).
func (a *Appointments) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	return a.byID.Fetch(ctx, id, func(ctx context.Context) (*models.Appointment, error) {
		var rec models.AppointmentRecord
		if err := a.client.Get(ctx, "/citas/"+url.PathEscape(id), nil, &rec); err != nil {
			return nil, err
		}
		appt := normalize.Appointment(rec)
		return &appt, nil
	})
}

// CreateAppointment posts a new appointment (POST /citas).
//
// On success only the list for the appointment's stylist and date is invalidated; nothing is inserted.
func (a *Appointments) CreateAppointment(ctx context.Context, in models.NewAppointment) (*models.Appointment, error) {
	if in.StylistID == "" || in.Date == "" {
		return nil, fmt.Errorf("%w: stylist and date are required", shared.ErrMissingArgument)
	}
	if len(in.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", shared.ErrMissingArgument)
	}

	var rec models.AppointmentRecord
	if err := a.client.Post(ctx, "/citas", in, &rec); err != nil {
		return nil, err
	}

	a.lists.Invalidate(ctx, AppointmentsKey(models.AppointmentFilter{StylistID: in.StylistID, Date: in.Date}))

	appt := normalize.Appointment(rec)
	return &appt, nil
}

func (a *Appointments) reset(ctx context.Context) {
	a.lists.Clear(ctx)
	a.byID.Clear(ctx)
}
