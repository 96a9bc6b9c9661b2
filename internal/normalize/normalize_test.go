package normalize

import (
	"reflect"
	"testing"

	"github.com/desertthunder/salonx/internal/models"
)

func price(v float64) *float64 { return &v }

func fields(id string) models.AppointmentFields {
	return models.AppointmentFields{
		ID:         id,
		ClientName: "Laura",
		StylistID:  "p1",
		Date:       "2025-03-01",
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     models.StatusConfirmed,
	}
}

func TestClassify(t *testing.T) {
	svc := &models.ServiceSummary{Name: "Corte", Price: price(50)}
	list := []models.ServiceInAppointment{{ServiceID: "s1", Name: "Corte", Price: 50}}

	tests := []struct {
		name string
		rec  models.AppointmentRecord
		want Shape
	}{
		{"legacy", models.AppointmentRecord{Service: svc}, ShapeLegacy},
		{"current", models.AppointmentRecord{Services: list}, ShapeCurrent},
		{"normalized", models.AppointmentRecord{Service: svc, Services: list}, ShapeNormalized},
		{"bare", models.AppointmentRecord{}, ShapeBare},
		{"empty services is absent", models.AppointmentRecord{Service: svc, Services: []models.ServiceInAppointment{}}, ShapeLegacy},
		{"empty services alone is bare", models.AppointmentRecord{Services: []models.ServiceInAppointment{}}, ShapeBare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.rec).Shape()
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAppointment(t *testing.T) {
	t.Run("Legacy", func(t *testing.T) {
		t.Run("lifts service into list", func(t *testing.T) {
			rec := models.AppointmentRecord{
				AppointmentFields: fields("a1"),
				Service:           &models.ServiceSummary{ServiceID: "s1", Name: "Corte", Price: price(50)},
			}

			a := Appointment(rec)

			if len(a.Services) != 1 {
				t.Fatalf("expected 1 service, got %d", len(a.Services))
			}
			want := models.ServiceInAppointment{ServiceID: "s1", Name: "Corte", Price: 50, CustomPrice: false}
			if a.Services[0] != want {
				t.Errorf("expected %+v, got %+v", want, a.Services[0])
			}
			if a.TotalPrice != 50 {
				t.Errorf("expected total 50, got %v", a.TotalPrice)
			}
			if a.ServiceCount != 1 {
				t.Errorf("expected count 1, got %d", a.ServiceCount)
			}
			if a.HasCustomPrice {
				t.Error("legacy services are never custom priced")
			}
			if a.Service == nil || a.Service.Name != "Corte" {
				t.Errorf("expected original service to be kept, got %+v", a.Service)
			}
		})

		t.Run("empty service id falls back to appointment id", func(t *testing.T) {
			rec := models.AppointmentRecord{
				AppointmentFields: fields("a7"),
				Service:           &models.ServiceSummary{Name: "Corte", Price: price(50)},
			}

			a := Appointment(rec)
			if a.Services[0].ServiceID != "a7" {
				t.Errorf("expected servicio_id a7, got %q", a.Services[0].ServiceID)
			}
		})

		t.Run("missing price becomes zero", func(t *testing.T) {
			rec := models.AppointmentRecord{
				AppointmentFields: fields("a1"),
				Service:           &models.ServiceSummary{ServiceID: "s1", Name: "Corte"},
			}

			a := Appointment(rec)
			if a.Services[0].Price != 0 || a.TotalPrice != 0 {
				t.Errorf("expected zero price, got %v / %v", a.Services[0].Price, a.TotalPrice)
			}
			if a.Service.Price != nil {
				t.Error("original service should be preserved unchanged")
			}
		})
	})

	t.Run("Current", func(t *testing.T) {
		t.Run("synthesizes summary", func(t *testing.T) {
			rec := models.AppointmentRecord{
				AppointmentFields: fields("a2"),
				Services: []models.ServiceInAppointment{
					{ServiceID: "s1", Name: "Corte", Price: 50, Duration: 30},
					{ServiceID: "s2", Name: "Color", Price: 80, Duration: 90},
				},
			}

			a := Appointment(rec)

			if a.Service == nil {
				t.Fatal("expected synthesized service")
			}
			if a.Service.Name != "Corte, Color" {
				t.Errorf("expected name 'Corte, Color', got %q", a.Service.Name)
			}
			if a.Service.PriceOrZero() != 130 {
				t.Errorf("expected price 130, got %v", a.Service.PriceOrZero())
			}
			if a.Service.Duration != 30 {
				t.Errorf("expected first service duration 30, got %d", a.Service.Duration)
			}
			if a.TotalPrice != 130 || a.ServiceCount != 2 {
				t.Errorf("expected total 130 and count 2, got %v and %d", a.TotalPrice, a.ServiceCount)
			}
		})

		t.Run("total override is authoritative", func(t *testing.T) {
			rec := models.AppointmentRecord{
				AppointmentFields: fields("a3"),
				Services: []models.ServiceInAppointment{
					{ServiceID: "s1", Name: "Corte", Price: 50},
					{ServiceID: "s2", Name: "Color", Price: 80, CustomPrice: true},
				},
				TotalPrice: price(120),
			}

			a := Appointment(rec)
			if a.TotalPrice != 120 {
				t.Errorf("expected total 120, got %v", a.TotalPrice)
			}
			if a.Service.PriceOrZero() != 120 {
				t.Errorf("expected summary price 120, got %v", a.Service.PriceOrZero())
			}
			if !a.HasCustomPrice {
				t.Error("expected custom price flag")
			}
		})

		t.Run("does not alias input slice", func(t *testing.T) {
			services := []models.ServiceInAppointment{{ServiceID: "s1", Name: "Corte", Price: 50}}
			a := Appointment(models.AppointmentRecord{AppointmentFields: fields("a4"), Services: services})
			a.Services[0].Name = "changed"
			if services[0].Name != "Corte" {
				t.Error("normalized appointment shares the record's backing array")
			}
		})
	})

	t.Run("Bare passes through", func(t *testing.T) {
		a := Appointment(models.AppointmentRecord{AppointmentFields: fields("a5")})

		if a.Service != nil {
			t.Errorf("expected nil service, got %+v", a.Service)
		}
		if a.Services == nil || len(a.Services) != 0 {
			t.Errorf("expected empty services, got %v", a.Services)
		}
		if a.ServiceCount != 0 || a.TotalPrice != 0 {
			t.Errorf("expected zero count and total, got %d and %v", a.ServiceCount, a.TotalPrice)
		}
		if a.ID != "a5" || a.ClientName != "Laura" {
			t.Error("base fields should pass through")
		}
	})

	t.Run("Normalized keeps both", func(t *testing.T) {
		rec := models.AppointmentRecord{
			AppointmentFields: fields("a6"),
			Service:           &models.ServiceSummary{Name: "Combo", Price: price(99)},
			Services:          []models.ServiceInAppointment{{ServiceID: "s1", Name: "Corte", Price: 50}},
		}

		a := Appointment(rec)
		if a.Service.Name != "Combo" {
			t.Errorf("expected service unchanged, got %q", a.Service.Name)
		}
		if a.TotalPrice != 50 {
			t.Errorf("expected total from services 50, got %v", a.TotalPrice)
		}
	})
}

func TestIdempotence(t *testing.T) {
	recs := map[string]models.AppointmentRecord{
		"legacy": {
			AppointmentFields: fields("a1"),
			Service:           &models.ServiceSummary{Name: "Corte", Price: price(50)},
		},
		"current": {
			AppointmentFields: fields("a2"),
			Services: []models.ServiceInAppointment{
				{ServiceID: "s1", Name: "Corte", Price: 50, Duration: 30},
				{ServiceID: "s2", Name: "Color", Price: 80, CustomPrice: true},
			},
			TotalPrice: price(110),
		},
		"bare": {AppointmentFields: fields("a3")},
	}

	for name, rec := range recs {
		t.Run(name, func(t *testing.T) {
			once := Appointment(rec)
			twice := Appointment(once.Record())
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("normalize is not idempotent:\n once: %+v\ntwice: %+v", once, twice)
			}
		})
	}
}

func TestDecodeAppointments(t *testing.T) {
	t.Run("mixed shapes", func(t *testing.T) {
		data := []byte(`[
			{"_id": "a1", "cliente_nombre": "Laura", "fecha": "2025-03-01", "service": {"nombre": "Corte", "precio": 50}},
			{"_id": "a2", "cliente_nombre": "Sofia", "fecha": "2025-03-01", "services": [
				{"servicio_id": "s1", "nombre": "Corte", "precio": 50, "precio_personalizado": false},
				{"servicio_id": "s2", "nombre": "Color", "precio": 80, "precio_personalizado": true}
			]},
			{"_id": "a3", "cliente_nombre": "Ana", "fecha": "2025-03-01"}
		]`)

		got, err := DecodeAppointments(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 appointments, got %d", len(got))
		}
		if got[0].Services[0].ServiceID != "a1" || got[0].TotalPrice != 50 {
			t.Errorf("unexpected legacy result: %+v", got[0])
		}
		if got[1].Service.Name != "Corte, Color" || !got[1].HasCustomPrice {
			t.Errorf("unexpected current result: %+v", got[1])
		}
		if got[2].ServiceCount != 0 {
			t.Errorf("unexpected bare result: %+v", got[2])
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := DecodeAppointments([]byte(`{not json`)); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("single", func(t *testing.T) {
		a, err := DecodeAppointment([]byte(`{"_id": "a9", "service": {"servicio_id": "s1", "nombre": "Corte", "precio": 35}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.TotalPrice != 35 || a.ServiceCount != 1 {
			t.Errorf("unexpected result: %+v", a)
		}
	})
}
