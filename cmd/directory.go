package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/desertthunder/salonx/internal/ui"
	"github.com/urfave/cli/v3"
)

func requiredArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// ServicesList prints the service catalog.
func (r *Runner) ServicesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	services, err := r.suite.Catalog.GetServices(ctx)
	if err != nil {
		return err
	}
	return r.emit(cmd, services, func() error {
		r.writePlainHeader(fmt.Sprintf("Services (%d)", len(services)))
		for _, s := range services {
			r.writeService(s)
		}
		return nil
	})
}

// ServicesGet prints one service.
func (r *Runner) ServicesGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	service, err := r.suite.Catalog.GetServiceByID(ctx, id)
	if err != nil {
		return err
	}
	return r.emit(cmd, service, func() error {
		r.writeService(*service)
		return nil
	})
}

func (r *Runner) writeService(s models.Service) {
	r.writePlain("%-10s %-30s %12s %8s", s.ID, s.Name, shared.FormatPrice(s.Price, r.currency()), shared.FormatMinutes(s.Duration))
	if s.Category != "" {
		r.writePlain("  %s", ui.Muted(s.Category))
	}
	r.writePlain("\n")
}

// StylistsList prints the stylist directory sorted by name.
func (r *Runner) StylistsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	stylists, err := r.suite.Stylists.GetStylists(ctx)
	if err != nil {
		return err
	}
	return r.emit(cmd, stylists, func() error {
		r.writePlainHeader(fmt.Sprintf("Stylists (%d)", len(stylists)))
		for _, st := range stylists {
			r.writeStylist(st)
		}
		return nil
	})
}

// StylistsGet prints one stylist.
func (r *Runner) StylistsGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	st, err := r.suite.Stylists.GetStylistByID(ctx, id)
	if err != nil {
		return err
	}
	return r.emit(cmd, st, func() error {
		r.writeStylist(*st)
		return nil
	})
}

// StylistsEmail finds a stylist by email.
func (r *Runner) StylistsEmail(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	email, err := requiredArg(cmd, "email")
	if err != nil {
		return err
	}
	st, err := r.suite.Stylists.GetStylistByEmail(ctx, email)
	if err != nil {
		return err
	}
	return r.emit(cmd, st, func() error {
		r.writeStylist(*st)
		return nil
	})
}

// StylistsServices prints the catalog entries a stylist offers.
func (r *Runner) StylistsServices(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	services, err := r.suite.Stylists.GetStylistServices(ctx, id)
	if err != nil {
		return err
	}
	return r.emit(cmd, services, func() error {
		r.writePlainHeader(fmt.Sprintf("Services for %s (%d)", id, len(services)))
		if len(services) == 0 {
			return r.writePlain("%s\n", ui.Muted("no services"))
		}
		for _, s := range services {
			r.writeService(s)
		}
		return nil
	})
}

func (r *Runner) writeStylist(st models.Stylist) {
	r.writePlain("%-10s %-25s %s", st.ID, st.Name, st.Email)
	if n := len(st.Specialties); n > 0 {
		r.writePlain("  %s", ui.Muted(fmt.Sprintf("%d services", n)))
	}
	r.writePlain("\n")
}

// VenuesList prints every venue.
func (r *Runner) VenuesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	venues, err := r.suite.Venues.GetVenues(ctx)
	if err != nil {
		return err
	}
	return r.emit(cmd, venues, func() error {
		r.writePlainHeader(fmt.Sprintf("Venues (%d)", len(venues)))
		for _, v := range venues {
			r.writeVenue(v)
		}
		return nil
	})
}

// VenuesGet prints one venue, looked up by ID first and venue code second.
func (r *Runner) VenuesGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	venue, err := r.suite.Venues.GetVenueByID(ctx, id)
	if errors.Is(err, shared.ErrVenueNotFound) {
		venue, err = r.suite.Venues.GetVenueByCode(ctx, id)
	}
	if err != nil {
		return err
	}
	return r.emit(cmd, venue, func() error {
		r.writeVenue(*venue)
		return nil
	})
}

func (r *Runner) writeVenue(v models.Venue) {
	r.writePlain("%-10s %-8s %-25s %s\n", v.ID, v.Code, v.Name, ui.Muted(v.Address))
}
