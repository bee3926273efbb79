// Package filter restricts normalized record sets by date range,
// players and optional dimension columns.
package filter

import (
	"time"

	"pokernight/pkg/contracts/domain"
)

// Apply returns the records matching every criterion in f. Date bounds
// are inclusive on both ends and compare calendar dates only. Empty
// allow-lists impose no restriction: clearing a selection shows
// everything rather than nothing. Dimension criteria should only be
// set for columns actually present in the dataset; the caller knows
// the detected headers from the quality report.
func Apply(records []domain.SessionRecord, f domain.Filter) []domain.SessionRecord {
	if len(records) == 0 || f.IsZero() {
		return records
	}

	players := toSet(f.Players)
	venues := toSet(f.Venues)
	groups := toSet(f.Groups)
	seasons := toSet(f.Seasons)

	out := make([]domain.SessionRecord, 0, len(records))
	for _, rec := range records {
		day := dateOnly(rec.Date)
		if f.From != nil && day.Before(dateOnly(*f.From)) {
			continue
		}
		if f.To != nil && day.After(dateOnly(*f.To)) {
			continue
		}
		if !allowed(players, rec.Player) ||
			!allowed(venues, rec.Venue) ||
			!allowed(groups, rec.Group) ||
			!allowed(seasons, rec.Season) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// allowed treats a nil set as "no restriction".
func allowed(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}
