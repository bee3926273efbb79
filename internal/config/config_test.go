package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a directory without a config file so only envconfig
	// defaults apply.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "sessions", cfg.Sheets.WorksheetName)
	assert.Equal(t, 60*time.Second, cfg.Data.CacheTTL)
	assert.Equal(t, "data/sessions_sample.csv", cfg.Data.SamplePath)
	assert.InDelta(t, 1e-6, cfg.Data.SettlementTolerance, 1e-12)
}

func TestLoadEnvOverrides(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("POKER_SERVER_PORT", "9090")
	t.Setenv("POKER_SHEETS_WORKSHEET_NAME", "results")
	t.Setenv("POKER_DATA_CURRENCY_SYMBOL", "$")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "results", cfg.Sheets.WorksheetName)
	assert.Equal(t, "$", cfg.Data.CurrencySymbol)
}

func TestLoadYAMLFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	yaml := "server:\n  port: 7070\ndata:\n  currency_symbol: \"$\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "$", cfg.Data.CurrencySymbol)
}

func TestLoadInvalidPort(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("POKER_SERVER_PORT", "99999")
	_, err = Load()
	assert.Error(t, err)
}

func TestSheetsCredentialsInlineWins(t *testing.T) {
	cfg := Default()
	cfg.Sheets.CredentialsJSON = `{"type":"service_account"}`
	cfg.Sheets.CredentialsFile = "does-not-exist.json"

	creds, err := cfg.SheetsCredentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(creds))
}

func TestSheetsCredentialsUnset(t *testing.T) {
	creds, err := Default().SheetsCredentials()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestSheetsCredentialsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0600))

	cfg := Default()
	cfg.Sheets.CredentialsFile = path

	creds, err := cfg.SheetsCredentials()
	require.NoError(t, err)
	assert.Contains(t, string(creds), "service_account")
}
