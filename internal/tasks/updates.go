package tasks

import (
	"fmt"

	"github.com/desertthunder/salonx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchStylists Phase = iota
	FetchAgenda
	ExportAgenda
	SummarizeDay
)

func (p Phase) String() string {
	switch p {
	case FetchStylists:
		return "fetch_stylists"
	case FetchAgenda:
		return "fetch_agenda"
	case ExportAgenda:
		return "export_agenda"
	case SummarizeDay:
		return "summarize_day"
	default:
		return ""
	}
}

func fetchStylistsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d stylists", count),
	}
}

func fetchAgendaUpdate(step, total int, st models.Stylist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAgenda,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching agenda: %s...", step, total, st.Name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportAgenda,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportAgenda,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func summarizeUpdate(step, total int, summary *DaySummary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SummarizeDay,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Summarized %d appointments", summary.Appointments),
		Data:    summary,
	}
}
