package domain

import "time"

// SessionRecord is one player's result in one poker session.
// Net is always derived as CashOut - BuyIn during normalization and is
// never trusted from input.
type SessionRecord struct {
	SessionID string    `json:"session_id" csv:"session_id"`
	Date      time.Time `json:"date" csv:"date"`
	Player    string    `json:"player" csv:"player"`
	BuyIn     float64   `json:"buy_in" csv:"buy_in"`
	CashOut   float64   `json:"cash_out" csv:"cash_out"`
	Net       float64   `json:"net" csv:"net"`
	Venue     string    `json:"venue,omitempty" csv:"venue"`
	Group     string    `json:"group" csv:"group"`
	Season    string    `json:"season,omitempty" csv:"season"`
	Notes     string    `json:"notes,omitempty" csv:"notes"`
}

// Transfer is a single settlement payment from Payer to Payee.
// Amount is positive and rounded to two decimal places.
type Transfer struct {
	Payer  string  `json:"payer"`
	Payee  string  `json:"payee"`
	Amount float64 `json:"amount"`
}

// Filter restricts a record set by date range, players and optional
// dimension columns. Nil or empty slices impose no restriction; an
// explicitly empty selection therefore means "show all", matching the
// behaviour users expect from clearing a multi-select.
type Filter struct {
	From    *time.Time `json:"from,omitempty"`
	To      *time.Time `json:"to,omitempty"`
	Players []string   `json:"players,omitempty"`
	Venues  []string   `json:"venues,omitempty"`
	Groups  []string   `json:"groups,omitempty"`
	Seasons []string   `json:"seasons,omitempty"`
}

// IsZero reports whether the filter imposes no restrictions at all.
func (f Filter) IsZero() bool {
	return f.From == nil && f.To == nil &&
		len(f.Players) == 0 && len(f.Venues) == 0 &&
		len(f.Groups) == 0 && len(f.Seasons) == 0
}
