package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokernight/pkg/contracts/domain"
)

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		"session_id,date,player,buy_in,cash_out,group",
		"S1,03/01/2025,Alice,50,95,Friday Crew",
		"S1,03/01/2025,Bob,50,30,Friday Crew",
	}, "\n")

	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"session_id", "date", "player", "buy_in", "cash_out", "group"}, table.Headers)
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, domain.StringCell("Alice"), table.Columns["player"][0])
	assert.Equal(t, domain.StringCell("30"), table.Columns["cash_out"][1])
}

func TestReadPadsShortRows(t *testing.T) {
	input := "a,b,c\n1,2\n"
	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, domain.StringCell("2"), table.Columns["b"][0])
	assert.True(t, table.Columns["c"][0].IsNull())
}

func TestReadEmpty(t *testing.T) {
	table, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte("player,buy_in\nAlice,50\n"), 0644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Rows())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
