// Package service implements the reconciliation pass: it walks eligible
// session candidates and converges the remote calendar on exactly one event
// per session.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"f1calsync/internal/domain/dedupe"
	"f1calsync/internal/domain/extract"
	"f1calsync/internal/domain/format"
	"f1calsync/internal/domain/model"
	"f1calsync/internal/domain/temporal"
	"f1calsync/pkg/logger"
	"f1calsync/pkg/metrics"
)

// Fixed event length. The feed carries no durations, so every event is a
// two-hour placeholder regardless of actual session length.
const defaultEventDuration = 2 * time.Hour

// Feed supplies the race schedule. Fetch failures stay behind the
// collaborator boundary: the service only ever sees "no races".
type Feed interface {
	FetchSchedule(ctx context.Context) []model.RaceEvent
}

// CalendarStore is the capability set the reconciler needs from the remote
// calendar. Calendar-container resolution happens before the pass; the
// service receives an opaque calendar id.
type CalendarStore interface {
	// FindEventOnDay returns the event whose title matches exactly on the
	// UTC calendar day of day, or nil.
	FindEventOnDay(ctx context.Context, calendarID, title string, day time.Time) (*model.CalendarEvent, error)

	// CreateEvent inserts a new event and returns its remote id.
	CreateEvent(ctx context.Context, calendarID string, draft model.EventDraft) (string, error)

	// ReplaceEvent fully overwrites an existing event's fields.
	ReplaceEvent(ctx context.Context, calendarID, eventID string, draft model.EventDraft) (string, error)
}

// Service runs reconciliation passes. Candidates are processed strictly one
// at a time; the remote store is the bottleneck, and serializing avoids any
// per-title locking.
type Service struct {
	feed       Feed
	store      CalendarStore
	calendarID string

	eventDuration time.Duration
	now           func() time.Time
	logger        logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNow overrides the reference clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventDuration overrides the fixed event length.
func WithEventDuration(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.eventDuration = d
		}
	}
}

// New constructs a reconciliation service over the two collaborators.
func New(feed Feed, store CalendarStore, calendarID string, opts ...Option) *Service {
	s := &Service{
		feed:          feed,
		store:         store,
		calendarID:    calendarID,
		eventDuration: defaultEventDuration,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("reconciler")
	}
	return s
}

// Run executes one reconciliation pass and returns its summary. Running the
// same pass twice with unchanged feed data leaves remote state unchanged on
// the second run: every candidate then finds its existing event and replaces
// it with identical values.
func (s *Service) Run(ctx context.Context) model.RunSummary {
	runID := uuid.NewString()
	metrics.RecordRunStarted()
	s.logger.Info(ctx, "starting reconciliation pass", logger.String("run_id", runID))

	races := s.feed.FetchSchedule(ctx)
	metrics.UpdateRacesFetched(len(races))

	summary := model.RunSummary{TotalFetched: len(races)}
	if len(races) == 0 {
		s.logger.Warn(ctx, "no races fetched, ending pass", logger.String("run_id", runID))
		return summary
	}

	drafts := s.eligibleDrafts(ctx, races, &summary)
	for _, draft := range drafts {
		s.reconcileOne(ctx, draft, &summary)
	}

	metrics.RecordRunCompleted(time.Now())
	s.report(ctx, runID, summary)
	return summary
}

// EligibleDrafts fetches the schedule and returns the event drafts a pass
// would write, without touching the remote store. Used for dry-run exports.
func (s *Service) EligibleDrafts(ctx context.Context) ([]model.EventDraft, model.RunSummary) {
	races := s.feed.FetchSchedule(ctx)
	summary := model.RunSummary{TotalFetched: len(races)}
	return s.eligibleDrafts(ctx, races, &summary), summary
}

// eligibleDrafts filters and formats candidates: past and invalid sessions
// are counted and dropped, same-pass duplicates are skipped before any
// remote call, and the rest become write-ready drafts.
func (s *Service) eligibleDrafts(ctx context.Context, races []model.RaceEvent, summary *model.RunSummary) []model.EventDraft {
	now := s.now().UTC()
	guard := dedupe.NewPassGuard()

	candidates := extract.Candidates(races)
	drafts := make([]model.EventDraft, 0, len(candidates))
	for _, c := range candidates {
		start, class := temporal.Classify(c.Schedule, now)
		switch class {
		case temporal.Invalid:
			summary.InvalidSkipped++
			metrics.RecordInvalidSkipped()
			s.logger.Warn(ctx, "skipping session with malformed timestamp",
				logger.String("race", c.Race.Name),
				logger.String("session", c.Type.Key()),
				logger.String("date", c.Schedule.Date),
				logger.String("time", c.Schedule.Time),
			)
			continue
		case temporal.Past:
			summary.PastSkipped++
			metrics.RecordPastSkipped()
			continue
		case temporal.Future:
		}

		title := format.Title(c.Race, c.Type)
		if guard.SeenAndRecord(ctx, title, start) {
			metrics.RecordDuplicateCandidate()
			s.logger.Debug(ctx, "skipping duplicate candidate",
				logger.String("title", title),
				logger.Time("start", start),
			)
			continue
		}

		drafts = append(drafts, model.EventDraft{
			Title:       title,
			Description: format.Description(c.Race, c.Type),
			Location:    format.Location(c.Race.Circuit),
			Start:       start,
			End:         start.Add(s.eventDuration),
		})
	}
	return drafts
}

// reconcileOne resolves a single draft against the remote store: lookup on
// the start's calendar day, then create or full replace. A failed lookup or
// write is logged and contributes to no counter; the pass continues with the
// next candidate.
func (s *Service) reconcileOne(ctx context.Context, draft model.EventDraft, summary *model.RunSummary) {
	existing, err := s.store.FindEventOnDay(ctx, s.calendarID, draft.Title, draft.Start)
	if err != nil {
		metrics.RecordRemoteError()
		s.logger.Error(ctx, "event lookup failed",
			logger.String("title", draft.Title), logger.Error(err))
		return
	}

	if existing != nil {
		if _, err := s.store.ReplaceEvent(ctx, s.calendarID, existing.ID, draft); err != nil {
			metrics.RecordRemoteError()
			s.logger.Error(ctx, "event replace failed",
				logger.String("title", draft.Title), logger.Error(err))
			return
		}
		summary.Updated++
		metrics.RecordEventUpdated()
		s.logger.Info(ctx, "updated event",
			logger.String("title", draft.Title), logger.Time("start", draft.Start))
		return
	}

	if _, err := s.store.CreateEvent(ctx, s.calendarID, draft); err != nil {
		metrics.RecordRemoteError()
		s.logger.Error(ctx, "event create failed",
			logger.String("title", draft.Title), logger.Error(err))
		return
	}
	summary.Added++
	metrics.RecordEventAdded()
	s.logger.Info(ctx, "added event",
		logger.String("title", draft.Title), logger.Time("start", draft.Start))
}

// report logs the end-of-pass summary and distinguishes the expected
// off-season no-op from a pass that wrote nothing for unknown reasons.
func (s *Service) report(ctx context.Context, runID string, summary model.RunSummary) {
	s.logger.Info(ctx, "reconciliation pass finished",
		logger.String("run_id", runID),
		logger.Int("total_fetched", summary.TotalFetched),
		logger.Int("added", summary.Added),
		logger.Int("updated", summary.Updated),
		logger.Int("past_skipped", summary.PastSkipped),
		logger.Int("invalid_skipped", summary.InvalidSkipped),
	)

	if !summary.NothingWritten() {
		return
	}
	if summary.PastSkipped > 0 {
		s.logger.Info(ctx, "all sessions are in the past; new events will appear when the next season schedule is announced",
			logger.String("run_id", runID))
		return
	}
	s.logger.Warn(ctx, "no events were added or updated; check earlier log entries",
		logger.String("run_id", runID))
}
