package config

import (
	"testing"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Run("from viper", func(t *testing.T) {
		clearSheetsEnv(t)
		cfg, err := LoadSheetsConfig(newViper(t, `
display:
  currency: "$"
sheets:
  service_account_path: /keys/sa.json
  spreadsheet_id: abc123
  sheet_title: Segments
  formatting: false
`))
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "abc123", cfg.SpreadsheetID)
		assert.Equal(t, "Segments", cfg.SheetTitle)
		assert.Equal(t, "$", cfg.Currency)
		assert.False(t, cfg.EnableFormatting)
	})

	t.Run("environment fallback", func(t *testing.T) {
		clearSheetsEnv(t)
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "id")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "token")

		cfg, err := LoadSheetsConfig(newViper(t, ""))
		require.NoError(t, err)
		assert.Equal(t, "id", cfg.ClientID)
		assert.Equal(t, "Customers", cfg.SheetTitle)
		assert.True(t, cfg.EnableFormatting)
	})

	t.Run("no credentials", func(t *testing.T) {
		clearSheetsEnv(t)
		_, err := LoadSheetsConfig(newViper(t, ""))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrMissingConfig)
		assert.Contains(t, err.Error(), "no authentication method configured")
	})
}
