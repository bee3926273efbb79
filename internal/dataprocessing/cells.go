package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"pokernight/pkg/contracts/domain"
)

// Reason explains why a coercion produced no value.
type Reason string

const (
	// ReasonNone means the coercion succeeded.
	ReasonNone Reason = ""
	// ReasonNull means the input cell was the null sentinel.
	ReasonNull Reason = "null"
	// ReasonNotANumber means the text could not be read as a decimal.
	ReasonNotANumber Reason = "not_a_number"
	// ReasonBadDate means no accepted date layout matched.
	ReasonBadDate Reason = "unparseable_date"
)

// dateLayouts are tried in order. Day-first layouts come before
// anything ambiguous so that 03/04/2025 resolves to 3 April, matching
// the UK-locale convention of the source spreadsheets.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"02 01 2006",
	"2 1 2006",
	"02/01/06",
	"2/1/06",
	"2006-01-02",
	"2006/01/02",
	"2 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// CoerceString converts a cell to its textual form. Numbers are
// rendered without a trailing ".0" so numeric session ids round-trip
// cleanly. Returns false for null cells.
func CoerceString(c domain.Cell) (string, bool) {
	switch c.Kind {
	case domain.CellString:
		return c.Text, true
	case domain.CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64), true
	default:
		return "", false
	}
}

// CoerceNumber converts a cell to a decimal. Thousands separators are
// tolerated in text cells. The coercion is total: failures return a
// reason, never an error or panic.
func CoerceNumber(c domain.Cell) (float64, Reason) {
	switch c.Kind {
	case domain.CellNumber:
		return c.Number, ReasonNone
	case domain.CellString:
		text := strings.ReplaceAll(strings.TrimSpace(c.Text), ",", "")
		if text == "" {
			return 0, ReasonNull
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, ReasonNotANumber
		}
		return n, ReasonNone
	default:
		return 0, ReasonNull
	}
}

// CoerceDate parses a cell as a calendar date with day-first locale
// rules. Non-breaking spaces, which sheet exports are fond of, are
// treated as ordinary spaces before parsing.
func CoerceDate(c domain.Cell) (time.Time, Reason) {
	text, ok := CoerceString(c)
	if !ok {
		return time.Time{}, ReasonNull
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "\u00a0", " "))
	if text == "" {
		return time.Time{}, ReasonNull
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, ReasonNone
		}
	}
	return time.Time{}, ReasonBadDate
}
