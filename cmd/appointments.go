package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/desertthunder/salonx/internal/ui"
	"github.com/urfave/cli/v3"
)

// AppointmentsList prints a stylist's normalized appointments for a day.
func (r *Runner) AppointmentsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	filter := models.AppointmentFilter{StylistID: cmd.String("stylist"), Date: cmd.String("date")}
	appts, err := r.suite.Appointments.GetAppointments(ctx, filter)
	if err != nil {
		return err
	}
	return r.emit(cmd, appts, func() error {
		r.writePlainHeader(fmt.Sprintf("Appointments %s • %s (%d)", filter.StylistID, filter.Date, len(appts)))
		if len(appts) == 0 {
			return r.writePlain("%s\n", ui.Muted("no appointments"))
		}
		for _, a := range appts {
			r.writeAppointment(a)
		}
		return nil
	})
}

// AppointmentsGet prints one appointment.
func (r *Runner) AppointmentsGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	appt, err := r.suite.Appointments.GetAppointmentByID(ctx, id)
	if err != nil {
		return err
	}
	return r.emit(cmd, appt, func() error {
		r.writeAppointment(*appt)
		if appt.Notes != "" {
			r.writePlain("  %s\n", ui.Muted(appt.Notes))
		}
		return nil
	})
}

// AppointmentsCreate books an appointment and prints the normalized result.
func (r *Runner) AppointmentsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	in := models.NewAppointment{
		ClientName: cmd.String("client"),
		ClientID:   cmd.String("client-id"),
		StylistID:  cmd.String("stylist"),
		VenueID:    cmd.String("venue"),
		Date:       cmd.String("date"),
		StartTime:  cmd.String("start"),
		EndTime:    cmd.String("end"),
		ServiceIDs: cmd.StringSlice("service"),
		Notes:      cmd.String("notes"),
	}
	appt, err := r.suite.Appointments.CreateAppointment(ctx, in)
	if err != nil {
		return err
	}

	r.logger.Info("appointment created", "id", appt.ID, "stylist", appt.StylistID, "date", appt.Date)
	return r.emit(cmd, appt, func() error {
		r.writePlain("%s appointment %s created\n", ui.Success("✓"), appt.ID)
		r.writeAppointment(*appt)
		return nil
	})
}

// AppointmentsSummary aggregates every stylist's appointments for a day.
func (r *Runner) AppointmentsSummary(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	summary, err := r.engine.Summary(ctx, nil, cmd.String("date"))
	if err != nil {
		return err
	}
	cur := r.currency()
	return r.emit(cmd, summary, func() error {
		r.writePlainHeader(fmt.Sprintf("Summary %s", summary.Date))
		r.writePlain("Appointments: %d (%d cancelled)\n", summary.Appointments, summary.Cancelled)
		r.writePlain("Revenue:      %s\n", ui.Success(shared.FormatPrice(summary.Revenue, cur)))

		r.writePlainln("By stylist:")
		for _, st := range summary.ByStylist {
			name := firstNonEmpty(st.Name, st.StylistID)
			r.writePlain("  %-25s %3d  %14s", name, st.Appointments, shared.FormatPrice(st.Revenue, cur))
			if st.CustomPriced > 0 {
				r.writePlain("  %s", ui.Warn(fmt.Sprintf("%d custom", st.CustomPriced)))
			}
			r.writePlain("\n")
		}

		r.writePlainln("By service:")
		for _, s := range summary.ByService {
			r.writePlain("  %-25s %3d  %14s\n", s.Name, s.Count, shared.FormatPrice(s.Revenue, cur))
		}
		return nil
	})
}

func (r *Runner) writeAppointment(a models.Appointment) {
	price := shared.FormatPrice(a.TotalPrice, r.currency())
	if a.HasCustomPrice {
		price += " *"
	}
	r.writePlain("%s-%s  %-20s %-30s %14s  %s\n",
		a.StartTime, a.EndTime, a.ClientName, strings.Join(a.ServiceNames(), ", "), price, ui.Status(a.Status))
}
