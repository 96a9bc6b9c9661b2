// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

func withJSON(flags ...cli.Flag) []cli.Flag {
	return append(flags, jsonFlags()...)
}

func idArg() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

// setupCommand handles config and database initialization.
func setupCommand(r *Runner) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config.toml from the built-in template",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupDatabase,
			},
		},
	}
}

// sessionCommand manages the stored login session.
func sessionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Manage the login session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Store a bearer token issued by the backend",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Usage: "Bearer token", Required: true},
					&cli.StringFlag{Name: "role", Usage: "Role (defaults to the token's rol claim)"},
					&cli.StringFlag{Name: "email", Usage: "Email (defaults to the token's email claim)"},
					&cli.StringFlag{Name: "name", Usage: "Display name"},
					&cli.StringFlag{Name: "user-id", Usage: "User ID (defaults to the token subject)"},
				},
				Action: r.SessionLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session and every cache",
				Action: r.SessionLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session",
				Flags:  jsonFlags(),
				Action: r.SessionStatus,
			},
		},
	}
}

// servicesCommand reads the service catalog.
func servicesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "services",
		Aliases: []string{"servicios"},
		Usage:   "Service catalog",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every service",
				Flags:  jsonFlags(),
				Action: r.ServicesList,
			},
			{
				Name:      "get",
				Usage:     "Show one service",
				Arguments: idArg(),
				Flags:     jsonFlags(),
				Action:    r.ServicesGet,
			},
		},
	}
}

// stylistsCommand reads the stylist directory.
func stylistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "stylists",
		Aliases: []string{"profesionales"},
		Usage:   "Stylist directory",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List stylists sorted by name",
				Flags:  jsonFlags(),
				Action: r.StylistsList,
			},
			{
				Name:      "get",
				Usage:     "Show one stylist",
				Arguments: idArg(),
				Flags:     jsonFlags(),
				Action:    r.StylistsGet,
			},
			{
				Name:      "email",
				Usage:     "Find a stylist by email",
				Arguments: []cli.Argument{&cli.StringArg{Name: "email"}},
				Flags:     jsonFlags(),
				Action:    r.StylistsEmail,
			},
			{
				Name:      "services",
				Usage:     "List the services a stylist offers",
				Arguments: idArg(),
				Flags:     jsonFlags(),
				Action:    r.StylistsServices,
			},
		},
	}
}

// venuesCommand reads the venue list.
func venuesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "venues",
		Aliases: []string{"sedes"},
		Usage:   "Salon venues",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List venues",
				Flags:  jsonFlags(),
				Action: r.VenuesList,
			},
			{
				Name:      "get",
				Usage:     "Show one venue by ID or venue code",
				Arguments: idArg(),
				Flags:     jsonFlags(),
				Action:    r.VenuesGet,
			},
		},
	}
}

// appointmentsCommand reads and books appointments.
func appointmentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "appointments",
		Aliases: []string{"citas"},
		Usage:   "Appointments",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a stylist's appointments for a day",
				Flags: withJSON(
					&cli.StringFlag{Name: "stylist", Usage: "Stylist ID", Required: true},
					&cli.StringFlag{Name: "date", Usage: "Day (YYYY-MM-DD)", Required: true},
				),
				Action: r.AppointmentsList,
			},
			{
				Name:      "get",
				Usage:     "Show one appointment",
				Arguments: idArg(),
				Flags:     jsonFlags(),
				Action:    r.AppointmentsGet,
			},
			{
				Name:  "create",
				Usage: "Book an appointment",
				Flags: withJSON(
					&cli.StringFlag{Name: "stylist", Usage: "Stylist ID", Required: true},
					&cli.StringFlag{Name: "date", Usage: "Day (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "start", Usage: "Start time (HH:MM)", Required: true},
					&cli.StringFlag{Name: "end", Usage: "End time (HH:MM)"},
					&cli.StringFlag{Name: "client", Usage: "Client name", Required: true},
					&cli.StringFlag{Name: "client-id", Usage: "Client ID"},
					&cli.StringFlag{Name: "venue", Usage: "Venue ID"},
					&cli.StringSliceFlag{Name: "service", Usage: "Service ID (repeatable)"},
					&cli.StringFlag{Name: "notes", Usage: "Notes"},
				),
				Action: r.AppointmentsCreate,
			},
			{
				Name:  "summary",
				Usage: "Summarize every stylist's appointments for a day",
				Flags: withJSON(
					&cli.StringFlag{Name: "date", Usage: "Day (YYYY-MM-DD)", Required: true},
				),
				Action: r.AppointmentsSummary,
			},
		},
	}
}

// blocksCommand reads and creates agenda blocks.
func blocksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "blocks",
		Aliases: []string{"bloqueos"},
		Usage:   "Agenda blocks",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a stylist's blocks",
				Flags: withJSON(
					&cli.StringFlag{Name: "stylist", Usage: "Stylist ID", Required: true},
				),
				Action: r.BlocksList,
			},
			{
				Name:  "create",
				Usage: "Block a time range on a stylist's agenda",
				Flags: withJSON(
					&cli.StringFlag{Name: "stylist", Usage: "Stylist ID", Required: true},
					&cli.StringFlag{Name: "date", Usage: "Day (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "start", Usage: "Start time (HH:MM)", Required: true},
					&cli.StringFlag{Name: "end", Usage: "End time (HH:MM)", Required: true},
					&cli.StringFlag{Name: "reason", Usage: "Reason"},
				),
				Action: r.BlocksCreate,
			},
		},
	}
}

// fichasCommand reads and creates client service records.
func fichasCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fichas",
		Usage: "Client service records",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a client's records",
				Flags: withJSON(
					&cli.StringFlag{Name: "client", Usage: "Client ID", Required: true},
				),
				Action: r.FichasList,
			},
			{
				Name:  "create",
				Usage: "Create a record with before and after photos",
				Flags: withJSON(
					&cli.StringFlag{Name: "client", Usage: "Client ID", Required: true},
					&cli.StringFlag{Name: "stylist", Usage: "Stylist ID", Required: true},
					&cli.StringFlag{Name: "service", Usage: "Service ID", Required: true},
					&cli.StringFlag{Name: "date", Usage: "Day (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "notes", Usage: "Notes"},
					&cli.StringSliceFlag{Name: "before", Usage: "Photo taken before the service (repeatable)"},
					&cli.StringSliceFlag{Name: "after", Usage: "Photo taken after the service (repeatable)"},
				),
				Action: r.FichasCreate,
			},
		},
	}
}

// exportCommand writes agendas to disk.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export agendas",
		Commands: []*cli.Command{
			{
				Name:  "agenda",
				Usage: "Export every stylist's agenda for a day",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "Day (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json, csv, markdown or txt", Value: "json"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory"},
					&cli.StringSliceFlag{Name: "stylist", Usage: "Limit to these stylist IDs (repeatable)"},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Pick the stylist in a terminal UI"},
				},
				Action: r.ExportAgenda,
			},
			{
				Name:  "jobs",
				Usage: "List recorded export jobs",
				Flags: withJSON(
					&cli.StringFlag{Name: "date", Usage: "Only jobs for this day"},
					&cli.StringFlag{Name: "status", Usage: "Only jobs with this status"},
				),
				Action: r.ExportJobs,
			},
		},
	}
}
