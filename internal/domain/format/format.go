// Package format derives calendar event titles, descriptions and locations
// from race data. The title doubles as the deduplication key against the
// remote store, so it must stay stable across runs for the same session.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"f1calsync/internal/domain/model"
)

var sessionLabels = map[string]string{
	model.SessionRace.Key():             model.SessionRace.Label(),
	model.SessionQualifying.Key():       model.SessionQualifying.Label(),
	model.SessionSprintRace.Key():       model.SessionSprintRace.Label(),
	model.SessionSprintQualifying.Key(): model.SessionSprintQualifying.Label(),
}

// Label returns the canonical display label for a session key, or a
// title-cased rendering of the raw key for unrecognized ones.
func Label(sessionKey string) string {
	if label, ok := sessionLabels[sessionKey]; ok {
		return label
	}
	// A Caser carries state, so a fresh one is made per call.
	return cases.Title(language.English).String(sessionKey)
}

// StripTrailingToken removes the last whitespace-delimited token from a race
// name, dropping the trailing year: "Australian Grand Prix 2025" becomes
// "Australian Grand Prix". A name without internal spaces strips to empty.
func StripTrailingToken(name string) string {
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// Title builds the event title: "F1 {name} - {label} ({hint})" where the
// hint is the circuit name, else the country, else omitted.
func Title(race model.RaceEvent, st model.SessionType) string {
	name := StripTrailingToken(race.Name)
	label := Label(st.Key())

	switch {
	case race.Circuit.Name != "":
		return fmt.Sprintf("F1 %s - %s (%s)", name, label, race.Circuit.Name)
	case race.Circuit.Country != "":
		return fmt.Sprintf("F1 %s - %s (%s)", name, label, race.Circuit.Country)
	default:
		return fmt.Sprintf("F1 %s - %s", name, label)
	}
}

// Description builds the newline-joined event body: a "Formula 1 {label}"
// header, then round, circuit and location lines where known. No trailing
// blank lines.
func Description(race model.RaceEvent, st model.SessionType) string {
	lines := []string{"Formula 1 " + Label(st.Key())}
	if race.Round > 0 {
		lines = append(lines, fmt.Sprintf("Round %d", race.Round))
	}
	if race.Circuit.Name != "" {
		lines = append(lines, "Circuit: "+race.Circuit.Name)
	}
	switch {
	case race.Circuit.City != "" && race.Circuit.Country != "":
		lines = append(lines, fmt.Sprintf("Location: %s, %s", race.Circuit.City, race.Circuit.Country))
	case race.Circuit.Country != "":
		lines = append(lines, "Location: "+race.Circuit.Country)
	}
	return strings.Join(lines, "\n")
}

// Location builds the event location field, "City, Country" with empty
// sides trimmed.
func Location(c model.Circuit) string {
	return strings.Trim(c.City+", "+c.Country, ", ")
}
