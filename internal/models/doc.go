// Package models defines the salon domain entities exchanged with the backend.
//
// The package contains three categories of types:
//
// 1. Catalog and reference data, cached with the default freshness window:
//   - [Service] : A catalog service with its list price
//   - [Stylist] : A professional with the set of services they perform
//   - [Venue] : A salon location ("sede")
//
// 2. Agenda data, cached for a short window and invalidated on create:
//   - [AppointmentRecord] : The raw wire record, in either the legacy or current shape
//   - [Appointment] : The canonical, normalized appointment
//   - [Block] : Reserved time on a stylist's agenda
//   - [Ficha] : A client service record with before/after photos
//
// 3. Client state:
//   - [Session] : Token, role and locale hints passed explicitly to the HTTP client
//   - [ExportJob] : A persisted bulk agenda export run
//
// JSON tags follow the backend's field names.
package models
