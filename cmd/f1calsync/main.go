package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"f1calsync/internal/adapters/feed"
	"f1calsync/internal/adapters/gcal"
	"f1calsync/internal/adapters/http/ops"
	icsexport "f1calsync/internal/adapters/ics"
	service "f1calsync/internal/app"
	"f1calsync/internal/config"
	"f1calsync/pkg/logger"
)

// HTTP server timeout constants for the ops endpoint.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	icsPath := flag.String("ics", "", "Write eligible sessions to an .ics file instead of syncing")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	feedClient := feed.NewClient(cfg.FeedURL,
		feed.WithTimeout(time.Duration(cfg.FeedTimeoutSeconds)*time.Second),
	)

	// Dry run: render eligible sessions to an ICS file, no credentials and no
	// remote calls needed.
	if *icsPath != "" {
		svc := service.New(feedClient, nil, "")
		drafts, summary := svc.EligibleDrafts(ctx)
		if err := icsexport.WriteFile(*icsPath, drafts); err != nil {
			log.Error(ctx, "failed to write ics preview", logger.Error(err))
			os.Exit(1)
		}
		log.Info(ctx, "wrote ics preview",
			logger.String("path", *icsPath),
			logger.Int("events", len(drafts)),
			logger.Int("total_fetched", summary.TotalFetched),
			logger.Int("past_skipped", summary.PastSkipped),
			logger.Int("invalid_skipped", summary.InvalidSkipped),
		)
		return
	}

	store, err := gcal.NewStore(ctx, cfg.ServiceAccountFile, cfg.TokenFile,
		gcal.WithUserEmail(cfg.UserEmail),
	)
	if err != nil {
		log.Error(ctx, "failed to build calendar store", logger.Error(err))
		os.Exit(1)
	}

	// Calendar-container resolution is fatal: no candidate is processed when
	// the target calendar cannot be found or created.
	calendarID, err := store.EnsureCalendar(ctx, cfg.CalendarName)
	if err != nil {
		log.Error(ctx, "failed to resolve calendar",
			logger.String("calendar", cfg.CalendarName), logger.Error(err))
		os.Exit(1)
	}

	svc := service.New(feedClient, store, calendarID)

	if cfg.SyncSchedule == "" {
		svc.Run(ctx)
		return
	}

	runDaemon(ctx, cfg, svc, log)
}

// runDaemon runs passes on the configured cron schedule and serves the ops
// endpoints until the process is signalled.
func runDaemon(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) {
	opsHandler := ops.NewHandler()
	mux := http.NewServeMux()
	opsHandler.Register(mux)

	srv := &http.Server{
		Addr:              cfg.OpsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		log.Info(ctx, "starting ops server", logger.String("addr", cfg.OpsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("ops server failed: " + err.Error() + "\n")
		}
	}()

	pass := func() {
		svc.Run(ctx)
		opsHandler.MarkRun(time.Now())
	}

	// One pass right away, then on schedule.
	pass()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SyncSchedule, pass); err != nil {
		log.Error(ctx, "invalid sync_schedule",
			logger.String("sync_schedule", cfg.SyncSchedule), logger.Error(err))
		os.Exit(1)
	}
	scheduler.Start()
	log.Info(ctx, "scheduled sync started", logger.String("sync_schedule", cfg.SyncSchedule))

	<-ctx.Done()
	log.Info(ctx, "shutting down")

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "ops server shutdown failed", logger.Error(err))
	}
}
