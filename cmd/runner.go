package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/services"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/desertthunder/salonx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SessionStore persists the login session between runs. [repositories.SessionRepository] satisfies it.
type SessionStore interface {
	Save(s models.Session) error
	Load() (models.Session, error)
	Clear() error
}

// JobStore records and lists bulk exports. [repositories.ExportJobRepository] satisfies it.
type JobStore interface {
	tasks.JobRecorder
	List(criteria map[string]any) ([]*models.ExportJob, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	client   *services.Client
	suite    *services.Suite
	sessions SessionStore
	jobs     JobStore
	logger   *log.Logger
	output   io.Writer
	engine   *tasks.AgendaEngine
	now      func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Client   *services.Client
	Mirror   cache.Mirror
	Sessions SessionStore
	Jobs     JobStore
	Logger   *log.Logger
	Output   io.Writer
	Clock    func() time.Time
}

// NewRunner creates a new Runner with the provided configuration.
//
// When no client is given one is built from the [api] config section and the stored session.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	r := &Runner{
		config:   opts.Config,
		sessions: opts.Sessions,
		jobs:     opts.Jobs,
		logger:   opts.Logger,
		output:   opts.Output,
		now:      opts.Clock,
	}

	client := opts.Client
	if client == nil {
		client = services.NewClient(opts.Config.API.BaseURL, services.ClientOpts{
			Session: r.loadSession(),
			Logger:  opts.Logger,
			Timeout: opts.Config.API.Timeout.Duration,
		})
	}

	cacheCfg := services.CacheConfigFrom(opts.Config.Cache)
	cacheCfg.Mirror = opts.Mirror
	cacheCfg.Logger = opts.Logger
	cacheCfg.Clock = opts.Clock

	r.client = client
	r.suite = services.NewSuite(client, cacheCfg)
	r.engine = tasks.NewAgendaEngine(r.suite.Stylists, r.suite.Appointments, r.suite.Blocks)
	r.engine.SetLogger(opts.Logger)
	return r
}

// loadSession reads the stored session and fills locale and currency from config.
func (r *Runner) loadSession() models.Session {
	var s models.Session
	if r.sessions != nil {
		stored, err := r.sessions.Load()
		if err != nil {
			r.logger.Warn("failed to load stored session", "error", err)
		} else {
			s = stored
		}
	}
	if s.Locale == "" {
		s.Locale = r.config.Session.Locale
	}
	if s.Currency == "" {
		s.Currency = r.config.Session.Currency
	}
	return s
}

// requireSession fails with [shared.ErrNotAuthenticated] when no token is loaded.
func (r *Runner) requireSession() error {
	if !r.client.Session().Authenticated() {
		return fmt.Errorf("%w: run 'salonx session login --token ...' first", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) currency() string {
	return r.client.Session().Currency
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, sessionCommand, servicesCommand, stylistsCommand, venuesCommand,
		appointmentsCommand, blocksCommand, fichasCommand, exportCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// emit writes data as JSON when --json is set, otherwise calls plain.
func (r *Runner) emit(cmd *cli.Command, data any, plain func() error) error {
	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}
	return plain()
}
