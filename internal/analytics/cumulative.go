package analytics

import (
	"sort"

	"pokernight/pkg/contracts/domain"
)

// CumulativeNet produces the charting series: each player's running
// net total in date order. The input slice is not modified.
func CumulativeNet(records []domain.SessionRecord) []domain.CumulativePoint {
	if len(records) == 0 {
		return []domain.CumulativePoint{}
	}

	ordered := append([]domain.SessionRecord(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	running := make(map[string]float64, 8)
	points := make([]domain.CumulativePoint, 0, len(ordered))
	for _, rec := range ordered {
		running[rec.Player] += rec.Net
		points = append(points, domain.CumulativePoint{
			Date:          rec.Date,
			Player:        rec.Player,
			Net:           rec.Net,
			CumulativeNet: running[rec.Player],
		})
	}
	return points
}
