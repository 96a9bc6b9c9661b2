package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override values from config.toml.
const (
	EnvConfig    = "SALONX_CONFIG"
	EnvAPIURL    = "SALONX_API_URL"
	EnvRedisAddr = "SALONX_REDIS_ADDR"
	EnvDBPath    = "SALONX_DB_PATH"
	EnvLogLevel  = "SALONX_LOG_LEVEL"
	EnvLocale    = "SALONX_LOCALE"
	EnvCurrency  = "SALONX_CURRENCY"
)

// LoadEnvFile loads a .env file into the process environment without clobbering variables that are already set.
//
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies SALONX_* overrides from the environment onto the config.
func ApplyEnv(c *Config) {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvAPIURL, &c.API.BaseURL},
		{EnvRedisAddr, &c.Cache.Redis.Addr},
		{EnvDBPath, &c.Database.Path},
		{EnvLogLevel, &c.LogLevel},
		{EnvLocale, &c.Session.Locale},
		{EnvCurrency, &c.Session.Currency},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.target = v
		}
	}
}
