package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if F1SYNC_CONFIG is set
//  3. env (prefix F1SYNC_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("F1SYNC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: F1SYNC_CALENDAR_NAME -> calendar_name, etc.
	// Underscores are preserved to match the koanf struct tags.
	envProvider := env.Provider("F1SYNC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "f1sync_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.CalendarName == "" {
		return nil, ErrMissingCalendarName
	}
	if cfg.FeedURL == "" {
		return nil, fmt.Errorf("%w: feed_url must not be empty", ErrInvalidConfig)
	}
	if cfg.FeedTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: feed_timeout_seconds must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
