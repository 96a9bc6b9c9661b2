// Package normalize reconciles the appointment payload shapes returned by the salon backend.
//
// # Shapes
//
// Older endpoints return a single `service` object; newer ones return a `services` list and
// an optional `precio_total`. [Classify] sorts a raw [models.AppointmentRecord] into one of:
//   - [Current] : non-empty services, no service
//   - [Legacy] : service only
//   - [Normalized] : both present, already canonical
//   - [Bare] : neither present
//
// An empty services array counts as absent.
//
// # Canonical Form
//
// [Appointment] maps every shape to a [models.Appointment] whose Services list is
// authoritative. Service is kept or synthesized for display. Normalizing an already
// canonical appointment (via [models.Appointment.Record]) returns it unchanged.
package normalize
