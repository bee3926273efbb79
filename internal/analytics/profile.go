package analytics

import (
	"sort"

	"pokernight/pkg/contracts/domain"
)

// recentLimit caps the number of most-recent rows in a profile.
const recentLimit = 10

// Profile computes per-player insights. An unknown player yields the
// zero profile with a neutral streak.
func Profile(records []domain.SessionRecord, player string) domain.PlayerProfile {
	var rows []domain.SessionRecord
	for _, rec := range records {
		if rec.Player == player {
			rows = append(rows, rec)
		}
	}
	profile := domain.PlayerProfile{
		Player:  player,
		Streaks: Streaks(nil),
		Recent:  []domain.SessionRecord{},
	}
	if len(rows) == 0 {
		return profile
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	nets := make([]float64, len(rows))
	best, worst := rows[0].Net, rows[0].Net
	total := 0.0
	for i, rec := range rows {
		nets[i] = rec.Net
		total += rec.Net
		if rec.Net > best {
			best = rec.Net
		}
		if rec.Net < worst {
			worst = rec.Net
		}
	}

	profile.GamesPlayed = len(rows)
	profile.WinRate = winRate(nets)
	profile.AvgNet = total / float64(len(rows))
	profile.MedianNet = median(nets)
	profile.BestSessionNet = best
	profile.WorstSessionNet = worst
	profile.Streaks = Streaks(nets)
	profile.Recent = recent(rows)
	return profile
}

// recent returns up to recentLimit rows ordered most recent first.
func recent(chronological []domain.SessionRecord) []domain.SessionRecord {
	out := make([]domain.SessionRecord, 0, recentLimit)
	for i := len(chronological) - 1; i >= 0 && len(out) < recentLimit; i-- {
		out = append(out, chronological[i])
	}
	return out
}

func median(nets []float64) float64 {
	sorted := append([]float64(nil), nets...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
