package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// Mirror is a byte-level key/value store that outlives the process.
//
// Get returns nil, nil for a missing key. Clear deletes every key that starts with prefix.
type Mirror interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Clear(ctx context.Context, prefix string) error
}

// Scoped places every key of m under scope() + ":".
//
// scope is evaluated on each call so the namespace follows a session that changes after construction.
func Scoped(m Mirror, scope func() string) Mirror {
	return &scopedMirror{inner: m, scope: scope}
}

type scopedMirror struct {
	inner Mirror
	scope func() string
}

func (m *scopedMirror) key(k string) string { return m.scope() + ":" + k }

func (m *scopedMirror) Get(ctx context.Context, key string) ([]byte, error) {
	return m.inner.Get(ctx, m.key(key))
}

func (m *scopedMirror) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return m.inner.Set(ctx, m.key(key), val, ttl)
}

func (m *scopedMirror) Del(ctx context.Context, keys ...string) error {
	scoped := make([]string, len(keys))
	for i, k := range keys {
		scoped[i] = m.key(k)
	}
	return m.inner.Del(ctx, scoped...)
}

func (m *scopedMirror) Clear(ctx context.Context, prefix string) error {
	return m.inner.Clear(ctx, m.key(prefix))
}

// RedisConfig holds the connection settings for [NewRedisMirror].
type RedisConfig struct {
	Addr     string
	DB       int
	Password string
	Prefix   string
}

// RedisMirror is a [Mirror] backed by Redis.
type RedisMirror struct {
	rdb    *redis.Client
	prefix string
	logger *log.Logger
}

// NewRedisMirror creates a mirror for cfg. It does not dial until first use; call [RedisMirror.Ping] to check connectivity.
func NewRedisMirror(cfg RedisConfig, logger *log.Logger) *RedisMirror {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return NewRedisMirrorFromClient(rdb, cfg.Prefix, logger)
}

// NewRedisMirrorFromClient wraps an existing client.
func NewRedisMirrorFromClient(rdb *redis.Client, prefix string, logger *log.Logger) *RedisMirror {
	if logger == nil {
		logger = log.Default()
	}
	return &RedisMirror{rdb: rdb, prefix: prefix, logger: logger.With("mirror", "redis")}
}

// Ping checks the connection.
func (m *RedisMirror) Ping(ctx context.Context) error {
	if err := m.rdb.Ping(ctx).Err(); err != nil {
		m.logger.Warn("PING failed", "error", err)
		return err
	}
	return nil
}

// Close closes the underlying client.
func (m *RedisMirror) Close() error {
	return m.rdb.Close()
}

// Get implements [Mirror].
func (m *RedisMirror) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := m.rdb.Get(ctx, m.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		m.logger.Debug("GET miss", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.logger.Debug("GET hit", "key", key, "bytes", len(b))
	return b, nil
}

// Set implements [Mirror]. A zero ttl stores the key without expiry.
func (m *RedisMirror) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := m.rdb.Set(ctx, m.prefix+key, val, ttl).Err(); err != nil {
		return err
	}
	m.logger.Debug("SET", "key", key, "ttl", ttl)
	return nil
}

// Del implements [Mirror].
func (m *RedisMirror) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = m.prefix + k
	}

	n, err := m.rdb.Del(ctx, prefixed...).Result()
	if err != nil {
		return err
	}
	m.logger.Debug("DEL", "keys", keys, "deleted", n)
	return nil
}

// Clear implements [Mirror] with SCAN and UNLINK, one batch per cursor page.
func (m *RedisMirror) Clear(ctx context.Context, prefix string) error {
	match := escapeGlob(m.prefix+prefix) + "*"
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := m.rdb.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			n, err := m.rdb.Unlink(ctx, keys...).Result()
			if err != nil {
				return err
			}
			deleted += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	m.logger.Debug("CLEAR", "prefix", prefix, "deleted", deleted)
	return nil
}

const scanBatch = 100

var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// escapeGlob quotes the characters MATCH treats as patterns.
func escapeGlob(s string) string { return globEscaper.Replace(s) }
