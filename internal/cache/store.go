package cache

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultWindow is the freshness window for slow-changing reference data.
const DefaultWindow = 5 * time.Minute

type entry[V any] struct {
	value     V
	hasValue  bool
	fetchedAt time.Time
}

// Store is a keyed cache with per-key fetch timestamps and a freshness window.
type Store[V any] struct {
	mu      sync.Mutex
	name    string
	window  time.Duration
	now     func() time.Time
	logger  *log.Logger
	mirror  Mirror
	entries map[string]*entry[V]
}

// Option configures a [Store].
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *log.Logger
	mirror Mirror
}

// WithClock replaces [time.Now], mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger; by default the store is silent.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMirror persists entries to m in addition to memory.
func WithMirror(m Mirror) Option {
	return func(o *options) { o.mirror = m }
}

// New creates an empty store. A non-positive window falls back to [DefaultWindow].
func New[V any](name string, window time.Duration, opts ...Option) *Store[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	return &Store[V]{
		name:    name,
		window:  window,
		now:     o.now,
		logger:  o.logger.With("cache", name),
		mirror:  o.mirror,
		entries: make(map[string]*entry[V]),
	}
}

// Name returns the store name, used as the mirror key namespace.
func (s *Store[V]) Name() string { return s.name }

// Window returns the freshness window.
func (s *Store[V]) Window() time.Duration { return s.window }

// ShouldRefetch reports whether key has never been fetched or its last fetch is older than the window.
func (s *Store[V]) ShouldRefetch(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staleLocked(key)
}

func (s *Store[V]) staleLocked(key string) bool {
	e, ok := s.entries[key]
	if !ok || e.fetchedAt.IsZero() {
		return true
	}
	return s.now().Sub(e.fetchedAt) > s.window
}

// Get returns the cached value for key regardless of its age.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !e.hasValue {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key and stamps it as fetched now.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	s.entries[key] = &entry[V]{value: value, hasValue: true, fetchedAt: s.now()}
	s.mu.Unlock()
}

// Mark stamps key as fetched now without touching its value.
//
// Used for keys that track a fetch rather than hold a value, such as "all stylists".
func (s *Store[V]) Mark(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.fetchedAt = s.now()
		return
	}
	s.entries[key] = &entry[V]{fetchedAt: s.now()}
}

// Delete removes key and its timestamp from memory.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of keys holding a value.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		if e.hasValue {
			n++
		}
	}
	return n
}

// Keys returns the sorted keys holding a value.
func (s *Store[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for k, e := range s.entries {
		if e.hasValue {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Values returns every cached value ordered by key.
func (s *Store[V]) Values() []V {
	keys := s.Keys()

	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		if e, ok := s.entries[k]; ok && e.hasValue {
			values = append(values, e.value)
		}
	}
	return values
}

// Clear drops every entry from memory and, when mirrored, from the mirror.
func (s *Store[V]) Clear(ctx context.Context) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.entries = make(map[string]*entry[V])
	s.mu.Unlock()

	// The mirror may hold keys written by earlier processes, so clear the whole namespace.
	if s.mirror != nil {
		if err := s.mirror.Clear(ctx, s.mirrorKey("")); err != nil {
			s.logger.Warn("mirror clear failed", "error", err)
		}
	}
	s.logger.Debug("cleared", "keys", len(keys))
}

// Invalidate deletes key so the next [Store.Fetch] goes to the backend.
func (s *Store[V]) Invalidate(ctx context.Context, key string) {
	s.Delete(key)
	if s.mirror != nil {
		if err := s.mirror.Del(ctx, s.mirrorKey(key)); err != nil {
			s.logger.Warn("mirror invalidate failed", "key", key, "error", err)
		}
	}
	s.logger.Info("invalidated", "key", key)
}

// Fetch returns the value for key, calling fetch only when the key is stale.
//
// One attempt is made per call. When it fails and a value is cached, the stale value is returned without error.
func (s *Store[V]) Fetch(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	if !s.ShouldRefetch(key) {
		if v, ok := s.Get(key); ok {
			s.logger.Debug("hit", "key", key)
			return v, nil
		}
	}

	if v, ok := s.hydrate(ctx, key); ok {
		s.logger.Debug("mirror hit", "key", key)
		return v, nil
	}

	s.logger.Debug("miss", "key", key)
	v, err := fetch(ctx)
	if err != nil {
		if cached, ok := s.Get(key); ok {
			s.logger.Warn("refetch failed, serving stale value", "key", key, "error", err)
			return cached, nil
		}
		var zero V
		return zero, err
	}

	s.Set(key, v)
	s.persist(ctx, key, v)
	return v, nil
}

// Stale runs fetch and falls back to fallback when it fails and ok is set.
//
// It is the policy of [Store.Fetch] for facades whose cached view is spread over several keys.
func Stale[V any](fetch func() (V, error), fallback func() (V, bool)) (V, error) {
	v, err := fetch()
	if err == nil {
		return v, nil
	}
	if cached, ok := fallback(); ok {
		return cached, nil
	}
	return v, err
}

type mirrored[V any] struct {
	Value     V         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// hydrate loads key from the mirror when it has no local entry at all.
func (s *Store[V]) hydrate(ctx context.Context, key string) (V, bool) {
	var zero V
	if s.mirror == nil {
		return zero, false
	}

	s.mu.Lock()
	_, local := s.entries[key]
	s.mu.Unlock()
	if local {
		return zero, false
	}

	data, err := s.mirror.Get(ctx, s.mirrorKey(key))
	if err != nil {
		s.logger.Warn("mirror read failed", "key", key, "error", err)
		return zero, false
	}
	if data == nil {
		return zero, false
	}

	var m mirrored[V]
	if err := json.Unmarshal(data, &m); err != nil {
		s.logger.Warn("mirror entry unreadable", "key", key, "error", err)
		return zero, false
	}

	s.mu.Lock()
	s.entries[key] = &entry[V]{value: m.Value, hasValue: true, fetchedAt: m.FetchedAt}
	fresh := !s.staleLocked(key)
	s.mu.Unlock()

	return m.Value, fresh
}

func (s *Store[V]) persist(ctx context.Context, key string, v V) {
	if s.mirror == nil {
		return
	}

	data, err := json.Marshal(mirrored[V]{Value: v, FetchedAt: s.now()})
	if err != nil {
		s.logger.Warn("mirror encode failed", "key", key, "error", err)
		return
	}
	if err := s.mirror.Set(ctx, s.mirrorKey(key), data, s.window); err != nil {
		s.logger.Warn("mirror write failed", "key", key, "error", err)
	}
}

func (s *Store[V]) mirrorKey(key string) string {
	return s.name + ":" + key
}

