package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStylistsFetched MsgKind = iota
	MsgAgendaFetched
	MsgProgressUpdate
	MsgExportComplete
)

type stylistsFetched struct {
	stylists []models.Stylist
	err      error
}

type agendaFetched struct {
	stylist      models.Stylist
	appointments []models.Appointment
	err          error
}

type exportComplete struct {
	result *tasks.BulkExportResult
	err    error
}

// stylistsFetchedMsg is the constructor for [MsgStylistsFetched]
func stylistsFetchedMsg(stylists []models.Stylist, err error) Msg {
	return Msg{kind: MsgStylistsFetched, data: stylistsFetched{stylists, err}}
}

// agendaFetchedMsg is the constructor for [MsgAgendaFetched]
func agendaFetchedMsg(stylist models.Stylist, appts []models.Appointment, err error) Msg {
	return Msg{kind: MsgAgendaFetched, data: agendaFetched{stylist, appts, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// exportCompleteMsg is the constructor for [MsgExportComplete]
func exportCompleteMsg(result *tasks.BulkExportResult, err error) Msg {
	return Msg{kind: MsgExportComplete, data: exportComplete{result, err}}
}
