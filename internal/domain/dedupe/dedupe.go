// Package dedupe guards a reconciliation pass against duplicate candidates.
//
// The remote store is only eventually consistent: an event created moments
// ago may not show up in a lookup yet. If the feed repeats a race, relying on
// the remote lookup alone could create the same session twice within one
// pass. The guard tracks (title, day) keys already handled in this pass so a
// duplicate is skipped before any remote call.
package dedupe

import (
	"context"
	"time"
)

// Guard records candidate keys seen within a single reconciliation pass.
// It is owned by one pass and never accessed concurrently.
type Guard interface {
	// SeenAndRecord checks whether the (title, day) pair was already handled
	// in this pass and records it if not. Returns true for a duplicate.
	SeenAndRecord(ctx context.Context, title string, day time.Time) bool

	// Size returns the number of recorded keys.
	Size() int
}

// passGuard implements Guard with a plain map; a pass handles at most a few
// hundred candidates, so no eviction is needed.
type passGuard struct {
	seen map[string]struct{}
}

// NewPassGuard creates an empty guard for one reconciliation pass.
func NewPassGuard() Guard {
	return &passGuard{seen: make(map[string]struct{})}
}

func (g *passGuard) SeenAndRecord(_ context.Context, title string, day time.Time) bool {
	key := title + "\n" + day.UTC().Format("2006-01-02")
	if _, ok := g.seen[key]; ok {
		return true
	}
	g.seen[key] = struct{}{}
	return false
}

func (g *passGuard) Size() int {
	return len(g.seen)
}
