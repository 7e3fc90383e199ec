// Package config defines service configuration and loading.
//
// Configuration is layered: defaults, then an optional YAML file pointed to
// by F1SYNC_CONFIG, then F1SYNC_-prefixed environment variables.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// FeedURL is the F1 schedule API endpoint.
	FeedURL string `koanf:"feed_url"`

	// FeedTimeoutSeconds bounds one schedule fetch.
	FeedTimeoutSeconds int `koanf:"feed_timeout_seconds"`

	// CalendarName is the target calendar's display name. Required.
	CalendarName string `koanf:"calendar_name"`

	// UserEmail, when set, is granted owner access to the calendar.
	UserEmail string `koanf:"user_email"`

	// ServiceAccountFile points to Google service account credentials
	// (the CI path). Takes precedence over TokenFile when both are set.
	ServiceAccountFile string `koanf:"service_account_file"`

	// TokenFile points to a pre-issued OAuth token for local use.
	TokenFile string `koanf:"token_file"`

	// SyncSchedule is a cron expression for daemon mode. Empty means run
	// one pass and exit.
	SyncSchedule string `koanf:"sync_schedule"`

	// OpsAddr is the listen address for /healthz and /metrics in daemon mode.
	OpsAddr string `koanf:"ops_addr"`
}

// New returns the configuration defaults. The context is accepted to match
// the package convention of context-first signatures.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		FeedURL:            "https://f1api.dev/api/current",
		FeedTimeoutSeconds: 10,
		TokenFile:          "token.json",
		OpsAddr:            ":9091",
	}
}
