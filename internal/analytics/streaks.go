package analytics

import (
	"fmt"

	"pokernight/pkg/contracts/domain"
)

// Streaks scans net results in chronological order. A win extends or
// starts a positive run, a loss extends or starts a negative run, and
// a break-even session resets the running streak to zero, breaking
// both kinds.
func Streaks(nets []float64) domain.StreakSummary {
	longestWin := 0
	longestLoss := 0
	current := 0

	for _, net := range nets {
		switch {
		case net > 0:
			if current > 0 {
				current++
			} else {
				current = 1
			}
			if current > longestWin {
				longestWin = current
			}
		case net < 0:
			if current < 0 {
				current--
			} else {
				current = -1
			}
			if -current > longestLoss {
				longestLoss = -current
			}
		default:
			current = 0
		}
	}

	summary := domain.StreakSummary{
		LongestWin:  longestWin,
		LongestLoss: longestLoss,
	}
	switch {
	case current > 0:
		summary.Current = domain.CurrentStreak{
			Type:  domain.StreakWin,
			Count: current,
			Label: fmt.Sprintf("Win %d", current),
		}
	case current < 0:
		summary.Current = domain.CurrentStreak{
			Type:  domain.StreakLoss,
			Count: -current,
			Label: fmt.Sprintf("Loss %d", -current),
		}
	default:
		summary.Current = domain.CurrentStreak{
			Type:  domain.StreakNeutral,
			Label: "Neutral",
		}
	}
	return summary
}
