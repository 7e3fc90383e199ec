// Package gcal adapts the Google Calendar API to the narrow store interface
// the reconciler consumes. Provider response shapes stay inside this package;
// the core only sees domain models.
package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"f1calsync/internal/domain/model"
	"f1calsync/pkg/logger"
	"f1calsync/pkg/metrics"
)

const (
	calendarTimeZone    = "UTC"
	calendarDescription = "Formula 1 races, qualifying, and sprint sessions automatically synced"
)

// Store wraps an authenticated Calendar API service.
type Store struct {
	svc       *calendar.Service
	userEmail string
	logger    logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithUserEmail sets the address the calendar is shared with.
func WithUserEmail(email string) Option {
	return func(s *Store) {
		s.userEmail = email
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithService injects an already-built Calendar API service, bypassing
// credential loading.
func WithService(svc *calendar.Service) Option {
	return func(s *Store) {
		s.svc = svc
	}
}

// NewStore builds a Store. Unless a service is injected, credentials are
// loaded from the given service account file (preferred) or token file.
func NewStore(ctx context.Context, serviceAccountFile, tokenFile string, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("gcal")
	}
	if s.svc == nil {
		svc, err := newCalendarService(ctx, serviceAccountFile, tokenFile)
		if err != nil {
			return nil, err
		}
		s.svc = svc
	}
	return s, nil
}

// EnsureCalendar resolves the named calendar's id, creating the calendar if
// it does not exist, and shares it with the configured user. A failure here
// is fatal to the pass; sharing failures are only warnings.
func (s *Store) EnsureCalendar(ctx context.Context, name string) (string, error) {
	list, err := s.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: listing calendars: %w", ErrCalendarResolution, err)
	}

	// Prefer a calendar shared with this account over one it owns, so
	// service-account runs reuse a user-created calendar.
	var owned *calendar.CalendarListEntry
	for _, entry := range list.Items {
		if entry.Summary != name {
			continue
		}
		if entry.AccessRole != "owner" {
			s.logger.Info(ctx, "found shared calendar", logger.String("calendar", name))
			s.shareWithUser(ctx, entry.Id)
			return entry.Id, nil
		}
		if owned == nil {
			owned = entry
		}
	}
	if owned != nil {
		s.logger.Info(ctx, "found calendar", logger.String("calendar", name))
		s.shareWithUser(ctx, owned.Id)
		return owned.Id, nil
	}

	s.logger.Info(ctx, "calendar not found, creating", logger.String("calendar", name))
	created, err := s.svc.Calendars.Insert(&calendar.Calendar{
		Summary:     name,
		Description: calendarDescription,
		TimeZone:    calendarTimeZone,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: creating calendar %q: %w", ErrCalendarResolution, name, err)
	}
	s.shareWithUser(ctx, created.Id)
	return created.Id, nil
}

// shareWithUser grants the configured user owner access, once.
func (s *Store) shareWithUser(ctx context.Context, calendarID string) {
	if s.userEmail == "" {
		return
	}

	acl, err := s.svc.Acl.List(calendarID).Context(ctx).Do()
	if err != nil {
		s.logger.Warn(ctx, "could not list calendar ACL", logger.Error(err))
		return
	}
	for _, rule := range acl.Items {
		if rule.Scope != nil && rule.Scope.Value == s.userEmail {
			return
		}
	}

	_, err = s.svc.Acl.Insert(calendarID, &calendar.AclRule{
		Scope: &calendar.AclRuleScope{Type: "user", Value: s.userEmail},
		Role:  "owner",
	}).Context(ctx).Do()
	if err != nil {
		s.logger.Warn(ctx, "could not share calendar",
			logger.String("user", s.userEmail), logger.Error(err))
		return
	}
	s.logger.Info(ctx, "shared calendar", logger.String("user", s.userEmail))
}

// FindEventOnDay returns the event with exactly the given title on the UTC
// calendar day of `day`, or nil when no such event exists. The first match
// wins when the store holds duplicates.
func (s *Store) FindEventOnDay(ctx context.Context, calendarID, title string, day time.Time) (*model.CalendarEvent, error) {
	dayStart, dayEnd := DayWindow(day)

	started := time.Now()
	result, err := s.svc.Events.List(calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	metrics.ObserveRemoteCall(time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("%w: listing events: %w", ErrRemoteCall, err)
	}

	for _, item := range result.Items {
		if item.Summary == title {
			ev := EventToModel(item)
			return &ev, nil
		}
	}
	return nil, nil
}

// CreateEvent inserts a new event and returns its remote id.
func (s *Store) CreateEvent(ctx context.Context, calendarID string, draft model.EventDraft) (string, error) {
	started := time.Now()
	created, err := s.svc.Events.Insert(calendarID, EventFromDraft(draft)).Context(ctx).Do()
	metrics.ObserveRemoteCall(time.Since(started))
	if err != nil {
		return "", fmt.Errorf("%w: inserting event: %w", ErrRemoteCall, err)
	}
	return created.Id, nil
}

// ReplaceEvent overwrites every field of an existing event and returns its
// remote id. This is a full replace, not a merge.
func (s *Store) ReplaceEvent(ctx context.Context, calendarID, eventID string, draft model.EventDraft) (string, error) {
	started := time.Now()
	updated, err := s.svc.Events.Update(calendarID, eventID, EventFromDraft(draft)).Context(ctx).Do()
	metrics.ObserveRemoteCall(time.Since(started))
	if err != nil {
		return "", fmt.Errorf("%w: updating event: %w", ErrRemoteCall, err)
	}
	return updated.Id, nil
}

// DayWindow returns the inclusive UTC day bounds of t, 00:00:00 through
// 23:59:59, used as the lookup window for existing events.
func DayWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Second)
}

// EventFromDraft maps an EventDraft onto the provider's event shape.
func EventFromDraft(d model.EventDraft) *calendar.Event {
	return &calendar.Event{
		Summary:     d.Title,
		Description: d.Description,
		Location:    d.Location,
		Start: &calendar.EventDateTime{
			DateTime: d.Start.UTC().Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: d.End.UTC().Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
	}
}

// EventToModel maps a provider event into the domain model. Unparseable
// timestamps map to zero times; the reconciler only keys on id and title.
func EventToModel(ev *calendar.Event) model.CalendarEvent {
	out := model.CalendarEvent{
		ID:          ev.Id,
		Title:       ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
	}
	if ev.Start != nil {
		if ts, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
			out.Start = ts.UTC()
		}
	}
	if ev.End != nil {
		if ts, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil {
			out.End = ts.UTC()
		}
	}
	return out
}
