// Package settlement computes the payer-to-payee transfers that zero
// out a session's per-player net results.
package settlement

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pokernight/pkg/contracts/domain"
)

// DefaultTolerance is the magnitude below which a net balance counts
// as already settled.
const DefaultTolerance = 1e-6

// ImbalanceError reports that the per-player nets do not sum to zero
// within tolerance. This is the one hard failure of the engine: a
// non-zero sum means the session data upstream is corrupted or half
// edited, and settling it would silently invent money.
type ImbalanceError struct {
	Imbalance float64
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("nets do not sum to zero (imbalance %.4f)", e.Imbalance)
}

// party is one side of the matching: a player and the amount they owe
// or are owed.
type party struct {
	player string
	amount float64
}

// Compute derives a minimal-ish transfer list from per-player nets.
// Positive net means the player should receive, negative that they
// should pay.
//
// The algorithm greedily matches the largest remaining debtor against
// the largest remaining creditor. Ties on amount break by player name
// ascending, which makes the output fully deterministic for a given
// input map. Greedy matching is optimal for the common two-sided
// imbalance and never leaves residual balances, but is not guaranteed
// to hit the true minimum transfer count on pathological topologies.
func Compute(netByPlayer map[string]float64, tol float64) ([]domain.Transfer, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}

	var creditors, debtors []party
	total := 0.0
	for player, net := range netByPlayer {
		if math.Abs(net) <= tol {
			continue
		}
		total += net
		if net > 0 {
			creditors = append(creditors, party{player, net})
		} else {
			debtors = append(debtors, party{player, -net})
		}
	}
	if len(creditors) == 0 && len(debtors) == 0 {
		return []domain.Transfer{}, nil
	}
	if math.Abs(total) > tol {
		return nil, &ImbalanceError{Imbalance: total}
	}

	sortParties(creditors)
	sortParties(debtors)

	transfers := []domain.Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		owe := debtors[i].amount
		receive := creditors[j].amount
		amount := math.Min(owe, receive)

		transfers = append(transfers, domain.Transfer{
			Payer:  debtors[i].player,
			Payee:  creditors[j].player,
			Amount: round2(amount),
		})

		owe -= amount
		receive -= amount

		if owe <= tol {
			i++
		} else {
			debtors[i].amount = owe
		}
		if receive <= tol {
			j++
		} else {
			creditors[j].amount = receive
		}
	}

	return transfers, nil
}

// sortParties orders by amount descending, then player name ascending.
// Go maps have no iteration order, so the name tie-break is what keeps
// repeated runs identical.
func sortParties(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].player < parties[j].player
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatTransfers renders transfers as newline-separated lines like
// "Alice -> Bob: £12.50".
func FormatTransfers(transfers []domain.Transfer, currencySymbol string) string {
	lines := make([]string, len(transfers))
	for i, t := range transfers {
		lines[i] = fmt.Sprintf("%s -> %s: %s%.2f", t.Payer, t.Payee, currencySymbol, t.Amount)
	}
	return strings.Join(lines, "\n")
}
