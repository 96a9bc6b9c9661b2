package services

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/google/uuid"
)

// CacheConfig sets the freshness windows and optional mirror shared by every facade.
type CacheConfig struct {
	Freshness             time.Duration // services, stylists, venues, blocks, fichas
	AppointmentsFreshness time.Duration
	Mirror                cache.Mirror
	Clock                 func() time.Time
	Logger                *log.Logger
}

// DefaultCacheConfig returns 5m for reference data and 1m for appointments.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Freshness: cache.DefaultWindow, AppointmentsFreshness: time.Minute}
}

// CacheConfigFrom maps the [cache] section of the config file.
func CacheConfigFrom(c shared.CacheConfig) CacheConfig {
	return CacheConfig{
		Freshness:             c.Freshness.Duration,
		AppointmentsFreshness: c.AppointmentsFreshness.Duration,
	}
}

func (c CacheConfig) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

func (c CacheConfig) options(facade string) []cache.Option {
	opts := []cache.Option{cache.WithLogger(shared.WithLogger(c.logger(), "facade", facade))}
	if c.Clock != nil {
		opts = append(opts, cache.WithClock(c.Clock))
	}
	if c.Mirror != nil {
		opts = append(opts, cache.WithMirror(c.Mirror))
	}
	return opts
}

func (c CacheConfig) appointmentsWindow() time.Duration {
	if c.AppointmentsFreshness <= 0 {
		return time.Minute
	}
	return c.AppointmentsFreshness
}

// Suite holds one instance of every facade for a session.
type Suite struct {
	Client       *Client
	Catalog      *Catalog
	Stylists     *Stylists
	Venues       *Venues
	Appointments *Appointments
	Blocks       *Blocks
	Fichas       *Fichas
}

// NewSuite builds every facade over client with fresh caches.
//
// A mirror in cfg is scoped to the client's current session, so two users never read each other's entries.
func NewSuite(client *Client, cfg CacheConfig) *Suite {
	if cfg.Mirror != nil {
		cfg.Mirror = cache.Scoped(cfg.Mirror, func() string { return SessionScope(client.Session()) })
	}
	catalog := NewCatalog(client, cfg)
	return &Suite{
		Client:       client,
		Catalog:      catalog,
		Stylists:     NewStylists(client, catalog, cfg),
		Venues:       NewVenues(client, cfg),
		Appointments: NewAppointments(client, cfg),
		Blocks:       NewBlocks(client, cfg),
		Fichas:       NewFichas(client, cfg),
	}
}

// sessionNamespace seeds [SessionScope] so scopes never collide with other SHA-1 UUIDs.
var sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("salonx:session"))

// SessionScope names the mirror namespace for s. Tokens are hashed and never stored in a key.
func SessionScope(s models.Session) string {
	if s.Token == "" {
		return "anonymous"
	}
	return uuid.NewSHA1(sessionNamespace, []byte(s.Token)).String()
}

// Reset clears every cache, as on logout.
//
// It runs under the current session's scope, so call it before switching sessions.
func (s *Suite) Reset(ctx context.Context) {
	s.Catalog.reset(ctx)
	s.Stylists.reset(ctx)
	s.Venues.reset(ctx)
	s.Appointments.reset(ctx)
	s.Blocks.reset(ctx)
	s.Fichas.reset(ctx)
}
