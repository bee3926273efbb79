package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pokernight/internal/dataprocessing"
	"pokernight/pkg/contracts/domain"
)

// xlsxSheetName is the single sheet written to exported workbooks.
const xlsxSheetName = "sessions"

// WriteXLSX writes records as an Excel workbook with the normalized
// column set on a single sheet.
func WriteXLSX(w io.Writer, records []domain.SessionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	header := make([]interface{}, len(dataprocessing.NormalizedColumns))
	for i, name := range dataprocessing.NormalizedColumns {
		header[i] = name
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, rec := range records {
		cells := dataprocessing.RecordCells(rec)
		row := make([]interface{}, len(cells))
		for j, cell := range cells {
			row[j] = cell
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(xlsxSheetName, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}
