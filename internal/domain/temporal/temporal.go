// Package temporal parses session timestamps and classifies them against a
// reference instant.
package temporal

import (
	"fmt"
	"time"

	"f1calsync/internal/domain/model"
)

// Class is the temporal classification of a candidate session.
type Class int

const (
	// Future sessions are eligible for reconciliation. An instant exactly
	// equal to the reference counts as future; the comparison is strict
	// less-than.
	Future Class = iota
	// Past sessions are skipped. Expected steady state outside race season.
	Past
	// Invalid marks a schedule whose timestamp could not be parsed.
	Invalid
)

// String returns the lowercase name of the class, for log fields.
func (c Class) String() string {
	switch c {
	case Future:
		return "future"
	case Past:
		return "past"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ParseStart combines a feed date and time into a single UTC instant, e.g.
// "2025-03-16" and "04:00:00Z" become 2025-03-16T04:00:00Z. The trailing "Z"
// is the UTC designator. Malformed input yields an error, never a panic.
func ParseStart(date, clock string) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("incomplete session timestamp: date=%q time=%q", date, clock)
	}
	ts, err := time.Parse(time.RFC3339, date+"T"+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session timestamp: %w", err)
	}
	return ts.UTC(), nil
}

// Classify parses the schedule and classifies the resulting instant against
// now. The returned start is zero when the class is Invalid.
func Classify(sched model.SessionSchedule, now time.Time) (time.Time, Class) {
	start, err := ParseStart(sched.Date, sched.Time)
	if err != nil {
		return time.Time{}, Invalid
	}
	if start.Before(now) {
		return start, Past
	}
	return start, Future
}
