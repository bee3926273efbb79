package analytics

import (
	"math"

	"pokernight/pkg/contracts/domain"
)

// BiggestSwing finds the single player-session row with the largest
// absolute net. Ties break by more recent date first, then player name
// ascending. With no qualifying rows the result carries only a reason.
func BiggestSwing(records []domain.SessionRecord) domain.SwingSession {
	if len(records) == 0 {
		return domain.SwingSession{Reason: "No data"}
	}

	best := records[0]
	for _, rec := range records[1:] {
		if swingLess(best, rec) {
			best = rec
		}
	}

	date := best.Date
	return domain.SwingSession{
		Player:    best.Player,
		Net:       best.Net,
		Date:      &date,
		Group:     best.Group,
		SessionID: best.SessionID,
	}
}

// swingLess reports whether b outranks a under the swing ordering:
// larger |net| first, then later date, then lexicographically smaller
// player name.
func swingLess(a, b domain.SessionRecord) bool {
	absA, absB := math.Abs(a.Net), math.Abs(b.Net)
	if absA != absB {
		return absB > absA
	}
	if !a.Date.Equal(b.Date) {
		return b.Date.After(a.Date)
	}
	return b.Player < a.Player
}
