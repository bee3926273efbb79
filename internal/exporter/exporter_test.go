package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pokernight/internal/dataprocessing"
	"pokernight/pkg/contracts/domain"
)

func testRecords() []domain.SessionRecord {
	return []domain.SessionRecord{
		{
			SessionID: "S1",
			Date:      time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
			Player:    "Alice",
			BuyIn:     50,
			CashOut:   95,
			Net:       45,
			Venue:     "The Cellar",
			Group:     "Friday Crew",
			Season:    "2025",
			Notes:     "first game",
		},
		{
			SessionID: "S1",
			Date:      time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
			Player:    "Bob",
			BuyIn:     50,
			CashOut:   5,
			Net:       -45,
			Group:     "Friday Crew",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testRecords()))

	raw := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3], "expected UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, dataprocessing.NormalizedColumns, rows[0])
	assert.Equal(t, []string{"S1", "2025-01-03", "Alice", "50", "95", "45", "The Cellar", "Friday Crew", "2025", "first game"}, rows[1])
	assert.Equal(t, "-45", rows[2][5])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dataprocessing.NormalizedColumns, rows[0])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"sessions"}, f.GetSheetList())

	rows, err := f.GetRows("sessions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, dataprocessing.NormalizedColumns, rows[0])
	assert.Equal(t, "Alice", rows[1][2])
	assert.Equal(t, "Bob", rows[2][2])
}
