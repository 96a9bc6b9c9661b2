package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/desertthunder/salonx/internal/tasks"
)

type fakeSource struct {
	stylists     []models.Stylist
	appointments map[string][]models.Appointment
	err          error
}

func (f *fakeSource) GetStylists(ctx context.Context) ([]models.Stylist, error) {
	return f.stylists, f.err
}

func (f *fakeSource) GetStylistByID(ctx context.Context, id string) (*models.Stylist, error) {
	for _, st := range f.stylists {
		if st.ID == id {
			return &st, nil
		}
	}
	return nil, shared.ErrStylistNotFound
}

func (f *fakeSource) GetAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return f.appointments[filter.StylistID], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		stylists: []models.Stylist{{ID: "p1", Name: "Ana", Email: "ana@salon.test"}},
		appointments: map[string][]models.Appointment{
			"p1": {
				{
					AppointmentFields: models.AppointmentFields{ID: "c1", ClientName: "Lucia", StylistID: "p1", Date: "2025-03-01", StartTime: "09:00", EndTime: "10:00", Status: models.StatusConfirmed},
					Services:          []models.ServiceInAppointment{{ServiceID: "s1", Name: "Corte", Price: 30}},
					TotalPrice:        30,
					ServiceCount:      1,
				},
				{
					AppointmentFields: models.AppointmentFields{ID: "c2", ClientName: "Marta", StylistID: "p1", Date: "2025-03-01", StartTime: "11:00", EndTime: "12:00", Status: models.StatusCancelled},
					Services:          []models.ServiceInAppointment{{ServiceID: "s2", Name: "Color", Price: 50}},
					TotalPrice:        50,
					ServiceCount:      1,
				},
			},
		},
	}
}

func keyPress(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	engine := tasks.NewAgendaEngine(src, src, nil)
	m := NewModel(context.Background(), src, src, engine, "2025-03-01", tasks.BulkExportOpts{
		Format:    "markdown",
		OutputDir: t.TempDir(),
		RateLimit: 100,
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m
}

// drain runs cmd and feeds its messages back into the model until no command is returned.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 100 {
			t.Fatal("too many messages")
		}
		msg := cmd()
		_, cmd = m.Update(msg)
	}
}

func TestPalette(t *testing.T) {
	t.Run("status styles", func(t *testing.T) {
		for _, status := range []string{models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled, "unknown"} {
			if got := Status(status); !strings.Contains(got, status) {
				t.Errorf("Status(%q) = %q", status, got)
			}
		}
	})

	t.Run("helpers keep text", func(t *testing.T) {
		for _, got := range []string{Title("a"), Success("a"), Error("a"), Warn("a"), Muted("a")} {
			if !strings.Contains(got, "a") {
				t.Errorf("rendered %q lost its text", got)
			}
		}
	})
}

func TestModel(t *testing.T) {
	t.Run("loads stylists on init", func(t *testing.T) {
		m := newTestModel(t, newFakeSource())
		if !strings.Contains(m.View(), "Loading") {
			t.Errorf("expected loading view, got %q", m.View())
		}

		drain(t, m, m.Init())

		if m.view != StylistListView {
			t.Errorf("expected StylistListView, got %v", m.view)
		}
		if len(m.stylistList.Items()) != 1 {
			t.Errorf("expected 1 stylist item, got %d", len(m.stylistList.Items()))
		}
	})

	t.Run("shows fetch error", func(t *testing.T) {
		src := newFakeSource()
		src.err = errors.New("backend down")
		m := newTestModel(t, src)

		drain(t, m, m.Init())

		if !strings.Contains(m.View(), "backend down") {
			t.Errorf("expected error in view, got %q", m.View())
		}
	})

	t.Run("selecting a stylist opens the agenda", func(t *testing.T) {
		m := newTestModel(t, newFakeSource())
		drain(t, m, m.Init())

		_, cmd := m.Update(keyPress("enter"))
		drain(t, m, cmd)

		if m.view != AgendaView {
			t.Fatalf("expected AgendaView, got %v", m.view)
		}
		if m.selected == nil || m.selected.ID != "p1" {
			t.Errorf("expected stylist p1 selected, got %+v", m.selected)
		}
		if len(m.agendaList.Items()) != 2 {
			t.Errorf("expected 2 appointment items, got %d", len(m.agendaList.Items()))
		}

		m.Update(keyPress("esc"))
		if m.view != StylistListView {
			t.Errorf("expected esc to go back, got %v", m.view)
		}
	})

	t.Run("confirm excludes cancelled revenue", func(t *testing.T) {
		m := newTestModel(t, newFakeSource())
		drain(t, m, m.Init())
		_, cmd := m.Update(keyPress("enter"))
		drain(t, m, cmd)

		m.Update(keyPress("enter"))
		if m.view != ConfirmView {
			t.Fatalf("expected ConfirmView, got %v", m.view)
		}

		view := m.View()
		if !strings.Contains(view, "Revenue: 30.00") {
			t.Errorf("expected revenue 30.00, got %q", view)
		}

		m.Update(keyPress("n"))
		if m.view != AgendaView {
			t.Errorf("expected n to return to agenda, got %v", m.view)
		}
	})

	t.Run("exports the selected agenda", func(t *testing.T) {
		m := newTestModel(t, newFakeSource())
		drain(t, m, m.Init())
		_, cmd := m.Update(keyPress("enter"))
		drain(t, m, cmd)
		m.Update(keyPress("enter"))

		_, cmd = m.Update(keyPress("y"))
		if m.view != ExportView {
			t.Fatalf("expected ExportView, got %v", m.view)
		}
		drain(t, m, cmd)

		if m.view != ResultView {
			t.Fatalf("expected ResultView, got %v", m.view)
		}
		if m.err != nil {
			t.Fatalf("unexpected export error: %v", m.err)
		}
		if m.result.SuccessfulExports != 1 {
			t.Errorf("expected 1 successful export, got %d", m.result.SuccessfulExports)
		}
		if _, err := os.Stat(m.result.ManifestPath); err != nil {
			t.Errorf("expected manifest on disk: %v", err)
		}
		if !strings.Contains(m.View(), "Export Complete") {
			t.Errorf("expected completion view, got %q", m.View())
		}

		m.Update(keyPress("r"))
		if m.view != StylistListView || m.result != nil {
			t.Errorf("expected restart to reset state, got view %v", m.view)
		}
	})
}
