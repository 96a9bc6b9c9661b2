package models

// ServiceInAppointment is one service line of an appointment.
type ServiceInAppointment struct {
	ServiceID   string  `json:"servicio_id"`
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	CustomPrice bool    `json:"precio_personalizado"`
	Duration    int     `json:"duracion,omitempty"`
}

// ServiceSummary is the single-service view of an appointment.
//
// Legacy records carry it as their only service; for multi-service appointments it is derived for display.
type ServiceSummary struct {
	ServiceID string   `json:"servicio_id,omitempty"`
	Name      string   `json:"nombre"`
	Price     *float64 `json:"precio,omitempty"`
	Duration  int      `json:"duracion,omitempty"`
}

// PriceOrZero returns the summary price, or 0 when the backend omitted it.
func (s ServiceSummary) PriceOrZero() float64 {
	if s.Price == nil {
		return 0
	}
	return *s.Price
}

// AppointmentFields are the fields shared by every appointment shape.
type AppointmentFields struct {
	ID         string `json:"_id"`
	ClientName string `json:"cliente_nombre"`
	StylistID  string `json:"profesional_id,omitempty"`
	VenueID    string `json:"sede_id,omitempty"`
	Date       string `json:"fecha"`
	StartTime  string `json:"hora_inicio"`
	EndTime    string `json:"hora_fin"`
	Status     string `json:"estado"`
	Notes      string `json:"notas,omitempty"`
}

// AppointmentRecord is an appointment as the backend sends it.
//
// Older endpoints return a single Service, newer ones a Services list and an optional TotalPrice override.
type AppointmentRecord struct {
	AppointmentFields
	Service    *ServiceSummary        `json:"service,omitempty"`
	Services   []ServiceInAppointment `json:"services,omitempty"`
	TotalPrice *float64               `json:"precio_total,omitempty"`
}

// Appointment is the canonical appointment.
//
// Services is authoritative; Service is derived for display and is nil only when the record had neither.
type Appointment struct {
	AppointmentFields
	Service        *ServiceSummary        `json:"service,omitempty"`
	Services       []ServiceInAppointment `json:"services"`
	TotalPrice     float64                `json:"precio_total"`
	ServiceCount   int                    `json:"service_count"`
	HasCustomPrice bool                   `json:"has_custom_price"`
}

// Record converts the appointment back to its wire form.
func (a Appointment) Record() AppointmentRecord {
	total := a.TotalPrice
	rec := AppointmentRecord{
		AppointmentFields: a.AppointmentFields,
		Services:          a.Services,
		TotalPrice:        &total,
	}
	if a.Service != nil {
		svc := *a.Service
		rec.Service = &svc
	}
	return rec
}

// ServiceNames returns the names of the appointment's services, in order.
func (a Appointment) ServiceNames() []string {
	names := make([]string, len(a.Services))
	for i, s := range a.Services {
		names[i] = s.Name
	}
	return names
}

// Appointment statuses used by the backend.
const (
	StatusPending   = "pendiente"
	StatusConfirmed = "confirmada"
	StatusCompleted = "finalizada"
	StatusCancelled = "cancelada"
)

// AppointmentFilter selects an appointment list; empty fields are not sent.
type AppointmentFilter struct {
	StylistID string
	Date      string
}

// NewAppointment is the request body for creating an appointment.
type NewAppointment struct {
	ClientName string   `json:"cliente_nombre"`
	ClientID   string   `json:"cliente_id,omitempty"`
	StylistID  string   `json:"profesional_id"`
	VenueID    string   `json:"sede_id,omitempty"`
	Date       string   `json:"fecha"`
	StartTime  string   `json:"hora_inicio"`
	EndTime    string   `json:"hora_fin,omitempty"`
	ServiceIDs []string `json:"servicios"`
	Notes      string   `json:"notas,omitempty"`
}
