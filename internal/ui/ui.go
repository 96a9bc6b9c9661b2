package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	StylistListView ViewState = iota
	AgendaView
	ConfirmView
	ExportView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	stylistSrc   tasks.StylistSource
	agendaSrc    tasks.AppointmentSource
	engine       *tasks.AgendaEngine
	date         string
	opts         tasks.BulkExportOpts
	width        int
	height       int
	stylistList  list.Model
	stylists     []models.Stylist
	agendaList   list.Model
	selected     *models.Stylist
	appointments []models.Appointment
	progressChan chan tasks.ProgressUpdate
	doneChan     chan exportComplete
	progress     tasks.ProgressUpdate
	result       *tasks.BulkExportResult
	err          error
	listsReady   uint8
	help         help.Model
	keys         keyMap
}

const (
	stylistsReady uint8 = 1 << iota
	agendaReady
)

// NewModel creates a TUI over the agenda of date. Exports use opts.
func NewModel(
	ctx context.Context,
	stylists tasks.StylistSource,
	appointments tasks.AppointmentSource,
	engine *tasks.AgendaEngine,
	date string,
	opts tasks.BulkExportOpts,
) *Model {
	return &Model{
		ctx:        ctx,
		view:       StylistListView,
		stylistSrc: stylists,
		agendaSrc:  appointments,
		engine:     engine,
		date:       date,
		opts:       opts,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by fetching the stylist directory.
func (m *Model) Init() tea.Cmd {
	return m.fetchStylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listsReady&stylistsReady != 0 {
			m.stylistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.listsReady&agendaReady != 0 {
			m.agendaList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil
	case tea.KeyMsg:
		switch m.view {
		case StylistListView:
			return m.handleStylistListKeys(msg)
		case AgendaView:
			return m.handleAgendaKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ExportView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}
	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStylistsFetched:
		data := msg.data.(stylistsFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.stylists = data.stylists
		items := make([]list.Item, len(data.stylists))
		for i, st := range data.stylists {
			items[i] = stylistItem{stylist: st}
		}
		m.stylistList = list.New(items, list.NewDefaultDelegate(), max(m.width-4, 0), max(m.height-8, 0))
		m.stylistList.Title = fmt.Sprintf("Stylists • %s", m.date)
		m.listsReady |= stylistsReady
	case MsgAgendaFetched:
		data := msg.data.(agendaFetched)
		if data.err != nil {
			m.err = data.err
			m.view = StylistListView
			return m, nil
		}
		st := data.stylist
		m.selected = &st
		m.appointments = data.appointments
		items := make([]list.Item, len(data.appointments))
		for i, a := range data.appointments {
			items[i] = appointmentItem{appointment: a}
		}
		m.agendaList = list.New(items, list.NewDefaultDelegate(), max(m.width-4, 0), max(m.height-8, 0))
		m.agendaList.Title = fmt.Sprintf("%s • %s", st.Name, m.date)
		m.listsReady |= agendaReady
		m.view = AgendaView
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()
	case MsgExportComplete:
		data := msg.data.(exportComplete)
		m.result = data.result
		m.err = data.err
		m.view = ResultView
		m.progressChan = nil
		m.doneChan = nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case StylistListView:
		return m.renderStylistList()
	case AgendaView:
		return m.renderAgenda()
	case ConfirmView:
		return m.renderConfirm()
	case ExportView:
		return m.renderExport()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleStylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.open):
		if m.err != nil || m.listsReady&stylistsReady == 0 {
			return m, nil
		}
		if item, ok := m.stylistList.SelectedItem().(stylistItem); ok {
			return m, m.fetchAgenda(item.stylist)
		}
	case key.Matches(msg, m.keys.back):
		m.err = nil
		return m, nil
	}
	return m.updateLists(msg)
}

func (m *Model) handleAgendaKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = StylistListView
		return m, nil
	case key.Matches(msg, m.keys.export):
		m.view = ConfirmView
		return m, nil
	}
	return m.updateLists(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.cancel):
		m.view = AgendaView
		return m, nil
	case key.Matches(msg, m.keys.confirm):
		m.view = ExportView
		return m, m.startExport()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.view = StylistListView
		m.selected = nil
		m.appointments = nil
		m.result = nil
		m.err = nil
		m.progress = tasks.ProgressUpdate{}
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.view == StylistListView && m.listsReady&stylistsReady != 0:
		m.stylistList, cmd = m.stylistList.Update(msg)
	case m.view == AgendaView && m.listsReady&agendaReady != 0:
		m.agendaList, cmd = m.agendaList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchStylists() tea.Cmd {
	return func() tea.Msg {
		stylists, err := m.stylistSrc.GetStylists(m.ctx)
		return stylistsFetchedMsg(stylists, err)
	}
}

func (m *Model) fetchAgenda(st models.Stylist) tea.Cmd {
	return func() tea.Msg {
		appts, err := m.agendaSrc.GetAppointments(m.ctx, models.AppointmentFilter{StylistID: st.ID, Date: m.date})
		return agendaFetchedMsg(st, appts, err)
	}
}

func (m *Model) startExport() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan exportComplete, 1)
	m.progressChan = progress
	m.doneChan = done

	stylistID := m.selected.ID
	go func() {
		result, err := m.engine.BulkExport(m.ctx, progress, m.date, []string{stylistID}, m.opts)
		close(progress)
		done <- exportComplete{result, err}
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return exportCompleteMsg(nil, fmt.Errorf("no export running"))
		}

		update, ok := <-progress
		if !ok {
			res := <-done
			return exportCompleteMsg(res.result, res.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderStylistList() string {
	if m.listsReady&stylistsReady == 0 {
		return styles.help.Render("Loading stylists...")
	}
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n\n%s", m.stylistList.View(), helpView)
}

func (m *Model) renderAgenda() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.export, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.agendaList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Export %s's agenda for %s?", m.selected.Name, m.date))

	var revenue float64
	for _, a := range m.appointments {
		if a.Status != models.StatusCancelled {
			revenue += a.TotalPrice
		}
	}
	info := fmt.Sprintf("\nAppointments: %d\nRevenue: %.2f\nFormat: %s\n", len(m.appointments), revenue, m.format())

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.confirm, m.keys.cancel, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderExport() string {
	title := styles.title.Render("Exporting Agenda")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchStylists:
		phase = "Resolving stylists..."
	case tasks.FetchAgenda:
		phase = fmt.Sprintf("Fetching agendas (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.ExportAgenda:
		phase = fmt.Sprintf("Writing files (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, styles.help.Render(m.progress.Message))
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Export failed: %v\n\nPress r to restart, q to quit", m.err))
	}
	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to restart, q to quit")
	}

	title := styles.ok.Render("✓ Export Complete!")
	info := fmt.Sprintf(
		"\nDate: %s\nExported: %d/%d\nOutput: %s\nManifest: %s",
		m.result.Date,
		m.result.SuccessfulExports,
		m.result.TotalStylists,
		m.result.OutputDirectory,
		m.result.ManifestPath,
	)

	var failed string
	if m.result.FailedExports > 0 {
		failed = "\n\n" + styles.warn.Render(fmt.Sprintf("Failed to export %d agendas:", m.result.FailedExports))
		for _, r := range m.result.Results {
			if !r.Success {
				failed += fmt.Sprintf("\n  • %s: %v", r.StylistName, r.Error)
			}
		}
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}

func (m *Model) format() string {
	if m.opts.Format == "" {
		return "json"
	}
	return m.opts.Format
}
