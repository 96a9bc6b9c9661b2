// Package repositories implements SQLite persistence for client state.
//
// Key Implementations:
//   - [SessionRepository] : key/value session state (token, role, user, locale hints)
//   - [ExportJobRepository] : bulk agenda export history with status tracking
//
// Session rows replace the browser storage keys the salon web app used; the CLI reloads
// them on every invocation and clears them on logout.
package repositories
