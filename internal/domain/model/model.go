// Package model contains domain models passed between layers.
package model

import "time"

// SessionType identifies one on-track activity within a race weekend.
// The set is fixed and ordered; extraction walks it in declaration order.
type SessionType int

const (
	SessionRace SessionType = iota
	SessionQualifying
	SessionSprintRace
	SessionSprintQualifying
)

// SessionTypes lists all known session types in their canonical order.
var SessionTypes = [...]SessionType{
	SessionRace,
	SessionQualifying,
	SessionSprintRace,
	SessionSprintQualifying,
}

// Key returns the feed identifier for the session type.
func (s SessionType) Key() string {
	switch s {
	case SessionRace:
		return "race"
	case SessionQualifying:
		return "qualy"
	case SessionSprintRace:
		return "sprintRace"
	case SessionSprintQualifying:
		return "sprintQualy"
	default:
		return ""
	}
}

// Label returns the canonical display label for the session type.
func (s SessionType) Label() string {
	switch s {
	case SessionRace:
		return "Race"
	case SessionQualifying:
		return "Qualifying"
	case SessionSprintRace:
		return "Sprint Race"
	case SessionSprintQualifying:
		return "Sprint Qualifying"
	default:
		return ""
	}
}

// Circuit describes where a race weekend takes place. Any field may be empty
// when the feed omits it.
type Circuit struct {
	Name    string
	City    string
	Country string
}

// SessionSchedule holds the raw date and time strings for one session as the
// feed reports them, e.g. "2025-03-16" and "04:00:00Z". Either side may be
// empty, which means the session does not exist this weekend.
type SessionSchedule struct {
	Date string
	Time string
}

// IsSet reports whether both the date and time are present.
func (s SessionSchedule) IsSet() bool {
	return s.Date != "" && s.Time != ""
}

// RaceEvent is one race weekend as fetched from the feed. Immutable after
// fetch; Round is 0 when the feed does not report it.
type RaceEvent struct {
	Name     string
	Round    int
	Circuit  Circuit
	Sessions map[SessionType]SessionSchedule
}

// Candidate is a (race, session-type) pair that passed extraction but has
// not yet been filtered or reconciled.
type Candidate struct {
	Race     RaceEvent
	Type     SessionType
	Schedule SessionSchedule
}

// CalendarEvent is the remote entity as read back from the calendar store,
// mapped out of the provider's loosely-typed response at the boundary.
type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// EventDraft is the write-side payload for a create or replace call. End is
// always Start plus the fixed event duration.
type EventDraft struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// RunSummary aggregates the counters of one reconciliation pass. It is owned
// exclusively by the pass and discarded after reporting.
type RunSummary struct {
	TotalFetched   int
	Added          int
	Updated        int
	PastSkipped    int
	InvalidSkipped int
}

// NothingWritten reports whether the pass produced no remote writes.
func (r RunSummary) NothingWritten() bool {
	return r.Added == 0 && r.Updated == 0
}
