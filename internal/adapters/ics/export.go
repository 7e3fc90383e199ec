// Package ics renders eligible event drafts into an iCalendar file, the
// dry-run artifact written instead of remote calendar calls.
package ics

import (
	"fmt"
	"os"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"f1calsync/internal/domain/model"
)

// Render serializes drafts into an iCalendar document. Event UIDs are
// derived deterministically from title and day, so re-rendering the same
// drafts yields the same UIDs.
func Render(drafts []model.EventDraft) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//f1calsync//EN")

	for _, d := range drafts {
		ev := cal.AddEvent(eventUID(d))
		ev.SetSummary(d.Title)
		ev.SetDescription(d.Description)
		ev.SetLocation(d.Location)
		ev.SetStartAt(d.Start)
		ev.SetEndAt(d.End)
	}
	return cal.Serialize()
}

// WriteFile renders the drafts and writes the document to path.
func WriteFile(path string, drafts []model.EventDraft) error {
	if err := os.WriteFile(path, []byte(Render(drafts)), 0o644); err != nil {
		return fmt.Errorf("writing ics file: %w", err)
	}
	return nil
}

// eventUID builds a stable UID from the draft's dedup key.
func eventUID(d model.EventDraft) string {
	key := d.Title + "\n" + d.Start.UTC().Format("2006-01-02")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + "@f1calsync"
}
