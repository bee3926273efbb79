package analytics

import (
	"sort"

	"pokernight/pkg/contracts/domain"
)

// Standings aggregates records into a leaderboard sorted by total net
// descending. Players with equal totals order by name ascending so the
// table is stable across reloads.
func Standings(records []domain.SessionRecord) []domain.Standing {
	if len(records) == 0 {
		return []domain.Standing{}
	}

	byPlayer := make(map[string][]float64)
	order := make([]string, 0)
	for _, rec := range records {
		if _, seen := byPlayer[rec.Player]; !seen {
			order = append(order, rec.Player)
		}
		byPlayer[rec.Player] = append(byPlayer[rec.Player], rec.Net)
	}

	standings := make([]domain.Standing, 0, len(order))
	for _, player := range order {
		nets := byPlayer[player]
		s := domain.Standing{
			Player:          player,
			GamesPlayed:     len(nets),
			WinRate:         winRate(nets),
			BestSessionNet:  nets[0],
			WorstSessionNet: nets[0],
		}
		for _, net := range nets {
			s.TotalNet += net
			if net > s.BestSessionNet {
				s.BestSessionNet = net
			}
			if net < s.WorstSessionNet {
				s.WorstSessionNet = net
			}
		}
		s.AvgNet = s.TotalNet / float64(len(nets))
		standings = append(standings, s)
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalNet != standings[j].TotalNet {
			return standings[i].TotalNet > standings[j].TotalNet
		}
		return standings[i].Player < standings[j].Player
	})
	return standings
}

// Summary computes the overview KPIs. Empty input yields the zero
// value, never an error.
func Summary(records []domain.SessionRecord) domain.SummaryKPIs {
	if len(records) == 0 {
		return domain.SummaryKPIs{}
	}

	sessions := make(map[string]struct{})
	totalNet := 0.0
	for _, rec := range records {
		sessions[rec.SessionID] = struct{}{}
		totalNet += rec.Net
	}

	standings := Standings(records)
	top := standings[0]
	loser := standings[0]
	for _, s := range standings[1:] {
		if s.TotalNet < loser.TotalNet {
			loser = s
		}
	}

	return domain.SummaryKPIs{
		TotalSessions:   len(sessions),
		TotalNet:        totalNet,
		TopWinner:       top.Player,
		TopWinnerNet:    top.TotalNet,
		BiggestLoser:    loser.Player,
		BiggestLoserNet: loser.TotalNet,
	}
}

// winRate is wins/(wins+losses) with break-even sessions excluded from
// the denominator. No decisions at all yields 0.
func winRate(nets []float64) float64 {
	wins, losses := 0, 0
	for _, net := range nets {
		switch {
		case net > 0:
			wins++
		case net < 0:
			losses++
		}
	}
	if wins+losses == 0 {
		return 0
	}
	return float64(wins) / float64(wins+losses)
}
