package dataprocessing

import (
	"strconv"

	"pokernight/pkg/contracts/domain"
)

// ExportDateFormat is the canonical date rendering for cleaned records.
const ExportDateFormat = "2006-01-02"

// RecordCells renders one cleaned record in NormalizedColumns order.
func RecordCells(rec domain.SessionRecord) []string {
	return []string{
		rec.SessionID,
		rec.Date.Format(ExportDateFormat),
		rec.Player,
		strconv.FormatFloat(rec.BuyIn, 'f', -1, 64),
		strconv.FormatFloat(rec.CashOut, 'f', -1, 64),
		strconv.FormatFloat(rec.Net, 'f', -1, 64),
		rec.Venue,
		rec.Group,
		rec.Season,
		rec.Notes,
	}
}

// TableFromRecords renders cleaned records back into a raw table with
// the normalized column set. Normalizing the result again is a no-op,
// which is what makes round-trip checks and re-imports safe.
func TableFromRecords(records []domain.SessionRecord) domain.RawTable {
	table := domain.RawTable{
		Headers: append([]string(nil), NormalizedColumns...),
		Columns: make(map[string][]domain.Cell, len(NormalizedColumns)),
	}
	for _, name := range table.Headers {
		table.Columns[name] = make([]domain.Cell, 0, len(records))
	}
	for _, rec := range records {
		cells := RecordCells(rec)
		for i, name := range NormalizedColumns {
			table.Columns[name] = append(table.Columns[name], domain.StringCell(cells[i]))
		}
	}
	return table
}
