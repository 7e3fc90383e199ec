// Package extract turns fetched race weekends into flat session candidates.
package extract

import (
	"f1calsync/internal/domain/model"
)

// Candidates flattens races into one candidate per (race, session-type) pair.
// Races are walked in feed order and session types in their canonical order.
// A session missing either its date or its time does not exist this weekend
// and is omitted without being counted as invalid.
func Candidates(races []model.RaceEvent) []model.Candidate {
	out := make([]model.Candidate, 0, len(races)*len(model.SessionTypes))
	for _, race := range races {
		for _, st := range model.SessionTypes {
			sched, ok := race.Sessions[st]
			if !ok || !sched.IsSet() {
				continue
			}
			out = append(out, model.Candidate{
				Race:     race,
				Type:     st,
				Schedule: sched,
			})
		}
	}
	return out
}
