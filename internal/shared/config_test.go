package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./salonx.db" {
			t.Errorf("expected database path ./salonx.db, got %s", config.Database.Path)
		}
		if config.API.BaseURL != "http://localhost:8000" {
			t.Errorf("expected api base_url http://localhost:8000, got %s", config.API.BaseURL)
		}
		if config.Cache.Freshness.Duration != 5*time.Minute {
			t.Errorf("expected freshness 5m, got %s", config.Cache.Freshness)
		}
		if config.Cache.AppointmentsFreshness.Duration != time.Minute {
			t.Errorf("expected appointments freshness 1m, got %s", config.Cache.AppointmentsFreshness)
		}
		if config.API.Timeout.Duration != 0 {
			t.Errorf("expected no timeout, got %s", config.API.Timeout)
		}
		if config.Session.Currency != "COP" {
			t.Errorf("expected currency COP, got %s", config.Session.Currency)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://salon.example.com/api"
timeout = "15s"

[cache]
freshness = "10m"
appointments_freshness = "30s"

[cache.redis]
addr = "127.0.0.1:6379"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://salon.example.com/api" {
			t.Errorf("expected custom base_url, got %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 15*time.Second {
			t.Errorf("expected timeout 15s, got %s", config.API.Timeout)
		}
		if config.Cache.AppointmentsFreshness.Duration != 30*time.Second {
			t.Errorf("expected appointments freshness 30s, got %s", config.Cache.AppointmentsFreshness)
		}
		if config.Cache.Redis.Addr != "127.0.0.1:6379" {
			t.Errorf("expected redis addr, got %s", config.Cache.Redis.Addr)
		}
		if config.Database.Path != "./salonx.db" {
			t.Errorf("expected default database path to survive, got %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig rejects bad durations", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[cache]\nfreshness = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error for invalid duration")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		config.API.BaseURL = ""
		if err := config.Validate(); err == nil {
			t.Error("expected error for empty base_url")
		}

		config = DefaultConfig()
		config.Cache.Freshness.Duration = -time.Second
		if err := config.Validate(); err == nil {
			t.Error("expected error for negative freshness")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example.com")
	t.Setenv(EnvCurrency, "USD")
	t.Setenv(EnvRedisAddr, "")

	config := DefaultConfig()
	ApplyEnv(config)

	if config.API.BaseURL != "http://env.example.com" {
		t.Errorf("expected env base url, got %s", config.API.BaseURL)
	}
	if config.Session.Currency != "USD" {
		t.Errorf("expected env currency, got %s", config.Session.Currency)
	}
	if config.Cache.Redis.Addr != "" {
		t.Errorf("empty env value should not override, got %s", config.Cache.Redis.Addr)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected nil error for missing file, got %v", err)
		}
	})

	t.Run("loads values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("SALONX_LOCALE=en-US\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Setenv(EnvLocale, "")
		os.Unsetenv(EnvLocale)

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("failed to load env file: %v", err)
		}
		if got := os.Getenv(EnvLocale); got != "en-US" {
			t.Errorf("expected SALONX_LOCALE=en-US, got %q", got)
		}
	})
}
