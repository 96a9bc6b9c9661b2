package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/desertthunder/salonx/internal/models"
)

// StylistSummary is one stylist's share of a day.
type StylistSummary struct {
	StylistID    string  `json:"profesional_id"`
	Name         string  `json:"nombre,omitempty"`
	Appointments int     `json:"appointments"`
	Cancelled    int     `json:"cancelled"`
	Revenue      float64 `json:"revenue"`
	CustomPriced int     `json:"custom_priced"`
}

// ServiceCount is how often a service was booked.
type ServiceCount struct {
	Name    string  `json:"nombre"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DaySummary aggregates a day's appointments.
type DaySummary struct {
	Date         string           `json:"fecha"`
	Appointments int              `json:"appointments"`
	Cancelled    int              `json:"cancelled"`
	Revenue      float64          `json:"revenue"`
	ByStylist    []StylistSummary `json:"by_stylist"`
	ByService    []ServiceCount   `json:"by_service"`
}

// Summarize aggregates appts. names maps stylist ids to display names and may be nil.
//
// Cancelled appointments are counted but add no revenue. Service revenue uses each line price,
// so it can differ from the appointment total when the backend sent an override.
// Stylists are ordered by revenue, services by count; ties break by name.
func Summarize(date string, appts []models.Appointment, names map[string]string) *DaySummary {
	summary := &DaySummary{Date: date}
	byStylist := make(map[string]*StylistSummary)
	byService := make(map[string]*ServiceCount)

	for _, a := range appts {
		summary.Appointments++

		st, ok := byStylist[a.StylistID]
		if !ok {
			st = &StylistSummary{StylistID: a.StylistID, Name: names[a.StylistID]}
			byStylist[a.StylistID] = st
		}
		st.Appointments++

		if a.Status == models.StatusCancelled {
			summary.Cancelled++
			st.Cancelled++
			continue
		}

		summary.Revenue += a.TotalPrice
		st.Revenue += a.TotalPrice
		if a.HasCustomPrice {
			st.CustomPriced++
		}

		for _, svc := range a.Services {
			sc, ok := byService[svc.Name]
			if !ok {
				sc = &ServiceCount{Name: svc.Name}
				byService[svc.Name] = sc
			}
			sc.Count++
			sc.Revenue += svc.Price
		}
	}

	summary.ByStylist = make([]StylistSummary, 0, len(byStylist))
	for _, st := range byStylist {
		summary.ByStylist = append(summary.ByStylist, *st)
	}
	sort.Slice(summary.ByStylist, func(i, j int) bool {
		a, b := summary.ByStylist[i], summary.ByStylist[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.StylistID < b.StylistID
	})

	summary.ByService = make([]ServiceCount, 0, len(byService))
	for _, sc := range byService {
		summary.ByService = append(summary.ByService, *sc)
	}
	sort.Slice(summary.ByService, func(i, j int) bool {
		a, b := summary.ByService[i], summary.ByService[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})

	return summary
}

// Summary fetches every stylist's appointments for date and summarizes them.
//
// A stylist whose agenda cannot be fetched is skipped; the error is returned only if every fetch fails.
func (e *AgendaEngine) Summary(ctx context.Context, prog chan<- ProgressUpdate, date string) (*DaySummary, error) {
	stylists, err := e.stylists.GetStylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stylists: %w", err)
	}
	e.sendProgress(prog, fetchStylistsUpdate(len(stylists)))

	names := make(map[string]string, len(stylists))
	var (
		all     []models.Appointment
		lastErr error
		failed  int
	)
	for i, st := range stylists {
		names[st.ID] = st.Name
		e.sendProgress(prog, fetchAgendaUpdate(i+1, len(stylists), st))

		appts, err := e.appointments.GetAppointments(ctx, models.AppointmentFilter{StylistID: st.ID, Date: date})
		if err != nil {
			e.logger.Warn("agenda unavailable", "stylist", st.ID, "error", err)
			lastErr = err
			failed++
			continue
		}
		for _, a := range appts {
			if a.StylistID == "" {
				a.StylistID = st.ID
			}
			all = append(all, a)
		}
	}

	if len(stylists) > 0 && failed == len(stylists) {
		return nil, fmt.Errorf("failed to fetch agendas: %w", lastErr)
	}

	summary := Summarize(date, all, names)
	e.sendProgress(prog, summarizeUpdate(1, 1, summary))
	return summary, nil
}
