// Package tasks implements long-running agenda operations over the cached facades.
//
// The core abstraction is [AgendaEngine], which exports and summarizes stylists' daily agendas.
// Operations emit progress updates via channels for non-blocking status reporting to the CLI.
//
// # Bulk Export
//
// [AgendaEngine.BulkExport] fans stylist agendas out to a worker pool. Backend reads are paced
// by a [rate.Limiter]; each agenda is written by the formatter package and a manifest
// summarizes the run. When a [JobRecorder] is set the run is tracked as a [models.ExportJob].
//
// # Day Summary
//
// [Summarize] aggregates appointment counts and revenue per stylist and per service.
// Cancelled appointments count toward totals but never toward revenue.
package tasks
