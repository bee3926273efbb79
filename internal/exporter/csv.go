package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"pokernight/internal/dataprocessing"
	"pokernight/pkg/contracts/domain"
)

// WriteCSV writes records as comma-separated text with a header row
// matching the normalized column set. A UTF-8 BOM is prepended for
// Excel compatibility.
func WriteCSV(w io.Writer, records []domain.SessionRecord) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(dataprocessing.NormalizedColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(dataprocessing.RecordCells(rec)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
