package dataprocessing

import "strings"

// Canonical column names after header cleaning.
const (
	ColSessionID = "session_id"
	ColDate      = "date"
	ColPlayer    = "player"
	ColBuyIn     = "buy_in"
	ColCashOut   = "cash_out"
	ColNet       = "net"
	ColVenue     = "venue"
	ColGroup     = "group"
	ColSeason    = "season"
	ColNotes     = "notes"

	// colGameType is the legacy alias for ColGroup still present in
	// older spreadsheets.
	colGameType = "game_type"
)

// RequiredColumns must all be present and parseable for a row to
// survive normalization.
var RequiredColumns = []string{ColSessionID, ColDate, ColPlayer, ColBuyIn, ColCashOut}

// OptionalColumns are free-form dimensions carried through when present.
var OptionalColumns = []string{ColVenue, ColGroup, ColSeason, ColNotes}

// NumericColumns are coerced to decimals during normalization.
var NumericColumns = []string{ColBuyIn, ColCashOut}

// NormalizedColumns is the full column set of a cleaned record,
// including the derived net column, in export order.
var NormalizedColumns = []string{
	ColSessionID, ColDate, ColPlayer, ColBuyIn, ColCashOut, ColNet,
	ColVenue, ColGroup, ColSeason, ColNotes,
}

// ResultsSchema classifies the shape of an incoming results table.
type ResultsSchema string

const (
	// SchemaBuyInCashOut is the canonical schema: per-row buy_in and
	// cash_out with net derived.
	SchemaBuyInCashOut ResultsSchema = "buyin_cashout"
	// SchemaNetDirect carries a precomputed net column instead of
	// buy_in/cash_out. Not accepted by the normalizer, but detected so
	// the structural issue can say what was found.
	SchemaNetDirect ResultsSchema = "net_direct"
	// SchemaUnknown is anything else.
	SchemaUnknown ResultsSchema = "unknown"
)

// DetectSchema inspects cleaned header names and classifies the table.
func DetectSchema(headers []string) ResultsSchema {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[CleanColumnName(h)] = true
	}
	if have[ColPlayer] && have[ColDate] && have[ColBuyIn] && have[ColCashOut] {
		return SchemaBuyInCashOut
	}
	if have[ColPlayer] && have[ColDate] && have[ColNet] {
		return SchemaNetDirect
	}
	return SchemaUnknown
}

// CleanColumnName normalizes a raw header: lowercased, trimmed, and
// internal whitespace collapsed to single underscores.
func CleanColumnName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}
