// Package config loads runtime settings from LAUNDRY_* environment variables,
// optionally seeded from a .env file, and opens the database when a SQL
// store is selected.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LAUNDRY_"

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Env         string `koanf:"env" validate:"required,oneof=development production test"`
	Port        string `koanf:"port" validate:"required,numeric"`
	StoreDriver string `koanf:"store_driver" validate:"required,oneof=memory sqlite postgres"`
	DatabaseURL string `koanf:"database_url" validate:"required_if=StoreDriver postgres"`
	SQLitePath  string `koanf:"sqlite_path" validate:"required_if=StoreDriver sqlite"`

	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins" validate:"min=1,dive,url"`

	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFile  string `koanf:"log_file"`

	VATRate float64 `koanf:"vat_rate" validate:"gte=0,lte=1"`

	// SummarySchedule is a cron spec for the daily summary; empty disables it.
	SummarySchedule      string        `koanf:"summary_schedule"`
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"`
	ReadTimeout          time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout         time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout          time.Duration `koanf:"idle_timeout" validate:"gt=0"`

	TwilioAccountSID string `koanf:"twilio_account_sid"`
	TwilioAuthToken  string `koanf:"twilio_auth_token"`
	TwilioFrom       string `koanf:"twilio_from"`
	SummaryRecipient string `koanf:"summary_recipient"`
}

// DefaultCORSOrigins are the Vite dev server origins of the web client.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func Default() *Config {
	return &Config{
		Env:                  "development",
		Port:                 "8000",
		StoreDriver:          StoreMemory,
		SQLitePath:           "laundryos.db",
		VATRate:              0.16,
		SummarySchedule:      "0 21 * * *",
		SlowRequestThreshold: 200 * time.Millisecond,
		ReadTimeout:          10 * time.Second,
		WriteTimeout:         10 * time.Second,
		IdleTimeout:          60 * time.Second,
	}
}

// Load reads LAUNDRY_* variables over the defaults and validates the result.
// LAUNDRY_STORE_DRIVER maps to store_driver, and so on.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Slices are merged element-wise by the decoder, so the default is only
	// applied when nothing was set.
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = append([]string(nil), DefaultCORSOrigins...)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
