package dataprocessing

import (
	"fmt"
	"sort"
	"strings"

	"pokernight/pkg/contracts/domain"
)

// Warning kinds recorded by Normalize.
const (
	WarnInvalidDates           = "invalid_dates"
	WarnDroppedMissingRequired = "dropped_missing_required"
	WarnDuplicateSessionPlayer = "duplicate_session_player"
)

// parsedRow carries a record through the pipeline together with a flag
// marking required fields that failed coercion.
type parsedRow struct {
	rec        domain.SessionRecord
	incomplete bool
}

// Normalize converts a raw table into cleaned SessionRecords.
//
// The steps run in a fixed order: header cleaning, blank-to-null
// replacement, required column check, legacy game_type aliasing, group
// defaulting, day-first date parsing, numeric coercion, dropping of
// incomplete rows, net derivation, (session_id, player) deduplication
// keeping the last occurrence, and a final stable sort by date
// ascending. Row-level failures are counted in the quality report and
// dropped; structural failures produce an issue and an empty result.
// The Source tag of the returned report is left for the caller to set.
func Normalize(table domain.RawTable) ([]domain.SessionRecord, domain.DataQuality) {
	dq := domain.NewDataQuality("")

	if table.Empty() {
		dq.AddIssue("No data found.")
		return nil, dq
	}

	working := cleanTable(table)
	dq.Headers = working.Headers

	if missing := missingRequired(working); len(missing) > 0 {
		issue := fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", "))
		if DetectSchema(working.Headers) == SchemaNetDirect {
			issue += " (input uses a net-only results schema; buy_in and cash_out are required here)"
		}
		dq.AddIssue(issue)
		return nil, dq
	}

	// Legacy alias: group used to be called game_type.
	if _, ok := working.Columns[ColGroup]; !ok {
		if legacy, ok := working.Columns[colGameType]; ok {
			working.Columns[ColGroup] = legacy
		}
	}
	if _, ok := working.Columns[ColGroup]; !ok {
		dq.AddIssue("Missing required column 'group' (legacy 'game_type' is also accepted).")
		return nil, dq
	}

	rows := parseRows(working, &dq)
	records := dropIncomplete(rows, &dq)
	records = dedupe(records, &dq)

	// Stable sort keeps input order within a date, which in turn keeps
	// downstream tie-breaks deterministic across reloads.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records, dq
}

// cleanTable normalizes header names and replaces blank cells with the
// null sentinel. When two cleaned headers collide the later column
// wins, mirroring a corrected sheet column superseding an older one.
func cleanTable(table domain.RawTable) domain.RawTable {
	cleaned := domain.RawTable{Columns: make(map[string][]domain.Cell, len(table.Headers))}
	for _, header := range table.Headers {
		name := CleanColumnName(header)
		cleaned.Headers = append(cleaned.Headers, name)

		src := table.Columns[header]
		col := make([]domain.Cell, len(src))
		for i, c := range src {
			if c.Kind == domain.CellString && strings.TrimSpace(c.Text) == "" {
				col[i] = domain.NullCell()
				continue
			}
			col[i] = c
		}
		cleaned.Columns[name] = col
	}
	return cleaned
}

func missingRequired(table domain.RawTable) []string {
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := table.Columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// parseRows coerces every row, dropping rows without a parseable date
// and counting coercion failures per column.
func parseRows(table domain.RawTable, dq *domain.DataQuality) []parsedRow {
	n := table.Rows()
	cell := func(col string, i int) domain.Cell {
		c, ok := table.Columns[col]
		if !ok || i >= len(c) {
			return domain.NullCell()
		}
		return c[i]
	}
	_, hasVenue := table.Columns[ColVenue]
	_, hasSeason := table.Columns[ColSeason]
	_, hasNotes := table.Columns[ColNotes]

	rows := make([]parsedRow, 0, n)
	invalidDates := 0
	invalidNumbers := map[string]int{}

	for i := 0; i < n; i++ {
		date, reason := CoerceDate(cell(ColDate, i))
		if reason != ReasonNone {
			invalidDates++
			continue
		}

		row := parsedRow{rec: domain.SessionRecord{Date: date}}
		row.rec.SessionID, _ = CoerceString(cell(ColSessionID, i))
		row.rec.SessionID = strings.TrimSpace(row.rec.SessionID)
		row.rec.Player, _ = CoerceString(cell(ColPlayer, i))
		row.rec.Player = strings.TrimSpace(row.rec.Player)

		for _, col := range NumericColumns {
			value, reason := CoerceNumber(cell(col, i))
			if reason != ReasonNone {
				invalidNumbers[col]++
				row.incomplete = true
				continue
			}
			switch col {
			case ColBuyIn:
				row.rec.BuyIn = value
			case ColCashOut:
				row.rec.CashOut = value
			}
		}

		row.rec.Group = groupValue(cell(ColGroup, i))
		if hasVenue {
			v, _ := CoerceString(cell(ColVenue, i))
			row.rec.Venue = strings.TrimSpace(v)
		}
		if hasSeason {
			s, _ := CoerceString(cell(ColSeason, i))
			row.rec.Season = strings.TrimSpace(s)
		}
		if hasNotes {
			row.rec.Notes, _ = CoerceString(cell(ColNotes, i))
		}

		rows = append(rows, row)
	}

	dq.Warn(WarnInvalidDates, invalidDates)
	for col, count := range invalidNumbers {
		dq.Warn("invalid_"+col, count)
	}
	return rows
}

// dropIncomplete removes rows still missing a required field after
// coercion and derives net for the survivors.
func dropIncomplete(rows []parsedRow, dq *domain.DataQuality) []domain.SessionRecord {
	records := make([]domain.SessionRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if row.incomplete || row.rec.SessionID == "" || row.rec.Player == "" {
			dropped++
			continue
		}
		row.rec.Net = row.rec.CashOut - row.rec.BuyIn
		records = append(records, row.rec)
	}
	dq.Warn(WarnDroppedMissingRequired, dropped)
	return records
}

// dedupe enforces (session_id, player) uniqueness, keeping the last
// occurrence in input order. A later duplicate is treated as a
// correction of the earlier row.
func dedupe(records []domain.SessionRecord, dq *domain.DataQuality) []domain.SessionRecord {
	lastIndex := make(map[string]int, len(records))
	for i, rec := range records {
		lastIndex[rec.SessionID+"\x00"+rec.Player] = i
	}
	if len(lastIndex) == len(records) {
		return records
	}

	kept := make([]domain.SessionRecord, 0, len(lastIndex))
	for i, rec := range records {
		if lastIndex[rec.SessionID+"\x00"+rec.Player] == i {
			kept = append(kept, rec)
		}
	}
	dq.Warn(WarnDuplicateSessionPlayer, len(records)-len(kept))
	return kept
}

// groupValue applies the group defaulting rule: null or blank becomes
// "Unknown", everything else is trimmed.
func groupValue(c domain.Cell) string {
	text, ok := CoerceString(c)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return "Unknown"
	}
	return text
}
