// Package sample loads the bundled demo dataset used whenever the live
// sheet is unconfigured or unreachable.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"pokernight/pkg/contracts/domain"
)

// Load reads a CSV file into the raw table shape the normalizer
// consumes. All cells are string cells; typing happens downstream.
func Load(path string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open sample data: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV content from r. The first row is the header. Short
// rows are padded with null cells so ragged input stays loadable.
func Read(r io.Reader) (domain.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("parse sample data: %w", err)
	}
	if len(rows) == 0 {
		return domain.RawTable{}, nil
	}

	table := domain.RawTable{
		Headers: rows[0],
		Columns: make(map[string][]domain.Cell, len(rows[0])),
	}
	data := rows[1:]
	for col, header := range table.Headers {
		cells := make([]domain.Cell, len(data))
		for i, row := range data {
			if col >= len(row) {
				cells[i] = domain.NullCell()
				continue
			}
			cells[i] = domain.StringCell(row[col])
		}
		table.Columns[header] = cells
	}
	return table, nil
}
