package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the portal configuration (read via Viper from env vars and
// optionally a file).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Identity   ServiceConfig
	Attendance ServiceConfig
	Session    SessionConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig listen settings for the portal server.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServiceConfig settings for one remote collaborator (identity or attendance).
type ServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig settings for the durable local session store.
type SessionConfig struct {
	// StorePath is the SQLite file holding the persisted session keys.
	StorePath string
	// Secret derives the AES key used to encrypt the stored token at rest.
	// Empty means the token is stored in plain text.
	Secret string
}

// Load reads configuration from environment variables (and optionally from a
// .env / config.env file). Env vars take priority. Expected names: APP_ENV,
// HTTP_PORT, IDENTITY_BASE_URL, ATTENDANCE_BASE_URL, SESSION_STORE_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file; a missing file is not an error.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "queenify-portal"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5173),
		},
		Identity: ServiceConfig{
			BaseURL: strings.TrimRight(getString(v, "IDENTITY_BASE_URL", "http://localhost:8001"), "/"),
			Timeout: time.Duration(getInt(v, "IDENTITY_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Attendance: ServiceConfig{
			BaseURL: strings.TrimRight(getString(v, "ATTENDANCE_BASE_URL", "http://localhost:8002"), "/"),
			Timeout: time.Duration(getInt(v, "ATTENDANCE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Session: SessionConfig{
			StorePath: getString(v, "SESSION_STORE_PATH", "data/session.db"),
			Secret:    v.GetString("SESSION_SECRET"),
		},
	}

	if cfg.Identity.BaseURL == "" {
		return nil, fmt.Errorf("IDENTITY_BASE_URL is required")
	}
	if cfg.Attendance.BaseURL == "" {
		return nil, fmt.Errorf("ATTENDANCE_BASE_URL is required")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "queenify-portal")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 5173)
	v.SetDefault("IDENTITY_TIMEOUT_SECONDS", 15)
	v.SetDefault("ATTENDANCE_TIMEOUT_SECONDS", 15)
	v.SetDefault("SESSION_STORE_PATH", "data/session.db")
}

func getString(v *viper.Viper, key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

func getInt(v *viper.Viper, key string, fallback int) int {
	if n := v.GetInt(key); n != 0 {
		return n
	}
	return fallback
}
