package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/salonx/internal/models"
)

type fakeSources struct {
	mu           sync.Mutex
	stylists     []models.Stylist
	appointments map[string][]models.Appointment
	blocks       map[string][]models.Block
	failAgenda   map[string]error
	listErr      error
	calls        int
}

func (f *fakeSources) GetStylists(context.Context) ([]models.Stylist, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stylists, nil
}

func (f *fakeSources) GetStylistByID(_ context.Context, id string) (*models.Stylist, error) {
	for _, st := range f.stylists {
		if st.ID == id {
			return &st, nil
		}
	}
	return nil, fmt.Errorf("stylist %s not found", id)
}

func (f *fakeSources) GetAppointments(_ context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := f.failAgenda[filter.StylistID]; err != nil {
		return nil, err
	}
	return f.appointments[filter.StylistID], nil
}

func (f *fakeSources) GetBlocks(_ context.Context, stylistID string) ([]models.Block, error) {
	return f.blocks[stylistID], nil
}

type fakeRecorder struct {
	created  int
	statuses []models.ExportStatus
	fail     bool
}

func (r *fakeRecorder) Create(job *models.ExportJob) error {
	if r.fail {
		return errors.New("db locked")
	}
	r.created++
	job.SetID("job-1")
	return nil
}

func (r *fakeRecorder) Update(job *models.ExportJob) error {
	if r.fail {
		return errors.New("db locked")
	}
	r.statuses = append(r.statuses, job.Status())
	return nil
}

func appt(id, stylist, status string, total float64, custom bool, services ...string) models.Appointment {
	lines := make([]models.ServiceInAppointment, len(services))
	for i, name := range services {
		lines[i] = models.ServiceInAppointment{ServiceID: name, Name: name, Price: total / float64(len(services)), CustomPrice: custom}
	}
	return models.Appointment{
		AppointmentFields: models.AppointmentFields{ID: id, StylistID: stylist, ClientName: "Cliente " + id, Date: "2025-03-01", StartTime: "09:00", EndTime: "10:00", Status: status},
		Services:          lines,
		TotalPrice:        total,
		ServiceCount:      len(lines),
		HasCustomPrice:    custom,
	}
}

func newFakeSources() *fakeSources {
	return &fakeSources{
		stylists: []models.Stylist{
			{ID: "p1", Name: "Ana"},
			{ID: "p2", Name: "Beto"},
			{ID: "p3", Name: "Carla"},
		},
		appointments: map[string][]models.Appointment{
			"p1": {
				appt("a1", "p1", models.StatusConfirmed, 130, true, "Corte", "Color"),
				appt("a2", "p1", models.StatusCancelled, 50, false, "Corte"),
			},
			"p2": {appt("a3", "p2", models.StatusCompleted, 50, false, "Corte")},
			"p3": {},
		},
		blocks: map[string][]models.Block{
			"p1": {
				{ID: "b1", StylistID: "p1", Date: "2025-03-01", StartTime: "13:00", EndTime: "14:00"},
				{ID: "b2", StylistID: "p1", Date: "2025-03-02", StartTime: "13:00", EndTime: "14:00"},
			},
		},
		failAgenda: map[string]error{},
	}
}
