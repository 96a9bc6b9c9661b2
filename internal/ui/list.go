package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/salonx/internal/models"
)

var (
	_ list.Item = stylistItem{}
	_ list.Item = appointmentItem{}
)

// stylistItem wraps [models.Stylist] to implement [list.Item].
type stylistItem struct {
	stylist models.Stylist
}

func (i stylistItem) FilterValue() string { return i.stylist.Name }
func (i stylistItem) Title() string       { return i.stylist.Name }
func (i stylistItem) Description() string {
	desc := i.stylist.Email
	if n := len(i.stylist.Specialties); n > 0 {
		desc = fmt.Sprintf("%s • %d services", desc, n)
	}
	return desc
}

// appointmentItem wraps [models.Appointment] to implement [list.Item].
type appointmentItem struct {
	appointment models.Appointment
}

func (i appointmentItem) FilterValue() string { return i.appointment.ClientName }
func (i appointmentItem) Title() string {
	a := i.appointment
	return fmt.Sprintf("%s-%s %s", a.StartTime, a.EndTime, a.ClientName)
}

func (i appointmentItem) Description() string {
	a := i.appointment
	desc := fmt.Sprintf("%s • %.2f • %s", strings.Join(a.ServiceNames(), ", "), a.TotalPrice, Status(a.Status))
	if a.HasCustomPrice {
		desc += " *"
	}
	return desc
}
