package models

// AgendaExport is one stylist's agenda for a day, as written by the bulk export.
type AgendaExport struct {
	Stylist      Stylist       `json:"stylist"`
	Date         string        `json:"fecha"`
	Currency     string        `json:"currency,omitempty"`
	Appointments []Appointment `json:"appointments"`
	Blocks       []Block       `json:"blocks,omitempty"`
}

// Revenue sums the total price of every appointment that is not cancelled.
func (a AgendaExport) Revenue() float64 {
	var sum float64
	for _, appt := range a.Appointments {
		if appt.Status == StatusCancelled {
			continue
		}
		sum += appt.TotalPrice
	}
	return sum
}
