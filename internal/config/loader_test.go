package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"f1calsync/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"F1SYNC_CONFIG",
		"F1SYNC_LOG_LEVEL",
		"F1SYNC_FEED_URL",
		"F1SYNC_FEED_TIMEOUT_SECONDS",
		"F1SYNC_CALENDAR_NAME",
		"F1SYNC_USER_EMAIL",
		"F1SYNC_SERVICE_ACCOUNT_FILE",
		"F1SYNC_TOKEN_FILE",
		"F1SYNC_SYNC_SCHEDULE",
		"F1SYNC_OPS_ADDR",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading with only the required name set", func() {
			clearConfigEnvVars()
			_ = os.Setenv("F1SYNC_CALENDAR_NAME", "Formula 1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then defaults should fill the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.CalendarName, convey.ShouldEqual, "Formula 1")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.FeedURL, convey.ShouldEqual, "https://f1api.dev/api/current")
				convey.So(cfg.FeedTimeoutSeconds, convey.ShouldEqual, 10)
				convey.So(cfg.TokenFile, convey.ShouldEqual, "token.json")
				convey.So(cfg.OpsAddr, convey.ShouldEqual, ":9091")
				convey.So(cfg.SyncSchedule, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the calendar name is missing", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail with the sentinel", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrMissingCalendarName), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When environment variables override defaults", func() {
			clearConfigEnvVars()
			_ = os.Setenv("F1SYNC_CALENDAR_NAME", "F1 2026")
			_ = os.Setenv("F1SYNC_LOG_LEVEL", "debug")
			_ = os.Setenv("F1SYNC_FEED_URL", "https://example.test/api/current")
			_ = os.Setenv("F1SYNC_FEED_TIMEOUT_SECONDS", "5")
			_ = os.Setenv("F1SYNC_USER_EMAIL", "driver@example.com")
			_ = os.Setenv("F1SYNC_SYNC_SCHEDULE", "0 6 * * *")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the env values should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CalendarName, convey.ShouldEqual, "F1 2026")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.FeedURL, convey.ShouldEqual, "https://example.test/api/current")
				convey.So(cfg.FeedTimeoutSeconds, convey.ShouldEqual, 5)
				convey.So(cfg.UserEmail, convey.ShouldEqual, "driver@example.com")
				convey.So(cfg.SyncSchedule, convey.ShouldEqual, "0 6 * * *")
			})
		})

		convey.Convey("When loading from a YAML file", func() {
			clearConfigEnvVars()
			path := createTempConfigFile(t, `
calendar_name: "Formula 1 Schedule"
log_level: warn
feed_timeout_seconds: 20
user_email: fan@example.com
ops_addr: ":9100"
`)
			_ = os.Setenv("F1SYNC_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should apply over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CalendarName, convey.ShouldEqual, "Formula 1 Schedule")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.FeedTimeoutSeconds, convey.ShouldEqual, 20)
				convey.So(cfg.UserEmail, convey.ShouldEqual, "fan@example.com")
				convey.So(cfg.OpsAddr, convey.ShouldEqual, ":9100")
			})

			convey.Convey("And env should still win over the file", func() {
				_ = os.Setenv("F1SYNC_LOG_LEVEL", "error")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()
			_ = os.Setenv("F1SYNC_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail with the load sentinel", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the feed timeout is invalid", func() {
			clearConfigEnvVars()
			_ = os.Setenv("F1SYNC_CALENDAR_NAME", "Formula 1")
			_ = os.Setenv("F1SYNC_FEED_TIMEOUT_SECONDS", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation should reject it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
