package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/salonx/internal/models"
)

// Shape names the payload variant of an appointment record.
type Shape int

const (
	ShapeBare Shape = iota
	ShapeLegacy
	ShapeCurrent
	ShapeNormalized
)

func (s Shape) String() string {
	switch s {
	case ShapeLegacy:
		return "legacy"
	case ShapeCurrent:
		return "current"
	case ShapeNormalized:
		return "normalized"
	default:
		return "bare"
	}
}

// Payload is a classified appointment record. The set of implementations is closed.
type Payload interface {
	Shape() Shape
	normalize() models.Appointment
}

// Current carries a services list and no service summary.
type Current struct {
	Fields     models.AppointmentFields
	Services   []models.ServiceInAppointment
	TotalPrice *float64
}

// Legacy carries a single service summary.
type Legacy struct {
	Fields     models.AppointmentFields
	Service    models.ServiceSummary
	TotalPrice *float64
}

// Normalized carries both a services list and a service summary.
type Normalized struct {
	Fields     models.AppointmentFields
	Service    models.ServiceSummary
	Services   []models.ServiceInAppointment
	TotalPrice *float64
}

// Bare carries neither.
type Bare struct {
	Fields     models.AppointmentFields
	TotalPrice *float64
}

func (Current) Shape() Shape    { return ShapeCurrent }
func (Legacy) Shape() Shape     { return ShapeLegacy }
func (Normalized) Shape() Shape { return ShapeNormalized }
func (Bare) Shape() Shape       { return ShapeBare }

// Classify sorts rec into its payload shape. A non-empty services list always wins.
func Classify(rec models.AppointmentRecord) Payload {
	hasServices := len(rec.Services) > 0
	hasService := rec.Service != nil

	switch {
	case hasServices && hasService:
		return Normalized{Fields: rec.AppointmentFields, Service: *rec.Service, Services: rec.Services, TotalPrice: rec.TotalPrice}
	case hasServices:
		return Current{Fields: rec.AppointmentFields, Services: rec.Services, TotalPrice: rec.TotalPrice}
	case hasService:
		return Legacy{Fields: rec.AppointmentFields, Service: *rec.Service, TotalPrice: rec.TotalPrice}
	default:
		return Bare{Fields: rec.AppointmentFields, TotalPrice: rec.TotalPrice}
	}
}

// Appointment returns the canonical form of rec. It never fails; malformed shapes degrade to [Bare].
func Appointment(rec models.AppointmentRecord) models.Appointment {
	return Classify(rec).normalize()
}

// Appointments normalizes every record in order.
func Appointments(recs []models.AppointmentRecord) []models.Appointment {
	out := make([]models.Appointment, len(recs))
	for i, rec := range recs {
		out[i] = Appointment(rec)
	}
	return out
}

// DecodeAppointments decodes a JSON array of appointment records and normalizes each one.
func DecodeAppointments(data []byte) ([]models.Appointment, error) {
	var recs []models.AppointmentRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return Appointments(recs), nil
}

// DecodeAppointment decodes and normalizes a single record.
func DecodeAppointment(data []byte) (models.Appointment, error) {
	var rec models.AppointmentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.Appointment{}, fmt.Errorf("failed to decode appointment: %w", err)
	}
	return Appointment(rec), nil
}

func (p Current) normalize() models.Appointment {
	services := cloneServices(p.Services)
	total := totalOf(services, p.TotalPrice)

	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}

	summary := &models.ServiceSummary{
		Name:     strings.Join(names, ", "),
		Price:    &total,
		Duration: services[0].Duration,
	}
	if len(services) == 1 {
		summary.ServiceID = services[0].ServiceID
	}

	return build(p.Fields, summary, services, total)
}

func (p Legacy) normalize() models.Appointment {
	id := p.Service.ServiceID
	if id == "" {
		id = p.Fields.ID
	}

	services := []models.ServiceInAppointment{{
		ServiceID:   id,
		Name:        p.Service.Name,
		Price:       p.Service.PriceOrZero(),
		CustomPrice: false,
		Duration:    p.Service.Duration,
	}}

	summary := p.Service
	return build(p.Fields, &summary, services, totalOf(services, p.TotalPrice))
}

func (p Normalized) normalize() models.Appointment {
	services := cloneServices(p.Services)
	summary := p.Service
	return build(p.Fields, &summary, services, totalOf(services, p.TotalPrice))
}

func (p Bare) normalize() models.Appointment {
	return build(p.Fields, nil, []models.ServiceInAppointment{}, totalOf(nil, p.TotalPrice))
}

func build(fields models.AppointmentFields, summary *models.ServiceSummary, services []models.ServiceInAppointment, total float64) models.Appointment {
	custom := false
	for _, s := range services {
		if s.CustomPrice {
			custom = true
			break
		}
	}

	return models.Appointment{
		AppointmentFields: fields,
		Service:           summary,
		Services:          services,
		TotalPrice:        total,
		ServiceCount:      len(services),
		HasCustomPrice:    custom,
	}
}

// totalOf returns override when set, else the sum of service prices.
func totalOf(services []models.ServiceInAppointment, override *float64) float64 {
	if override != nil {
		return *override
	}
	var sum float64
	for _, s := range services {
		sum += s.Price
	}
	return sum
}

func cloneServices(in []models.ServiceInAppointment) []models.ServiceInAppointment {
	return append([]models.ServiceInAppointment(nil), in...)
}
