// Package ui renders salonx output in the terminal.
//
// The palette in colors.go styles plain CLI output, including appointment status labels.
//
// The interactive [Model] walks a day's agenda with bubbletea:
//  1. [StylistListView] : Browse the stylist directory
//  2. [AgendaView] : Preview the selected stylist's appointments
//  3. [ConfirmView] : Confirm the export
//  4. [ExportView] : Follow progress updates from the agenda engine
//  5. [ResultView] : Show exported files and failures
//
// Progress updates flow through a channel from [tasks.AgendaEngine.BulkExport] and are read one message at a time.
package ui
