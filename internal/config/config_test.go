package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "RECORD_STORE", "AIRTABLE_API_KEY", "AIRTABLE_BASE_ID",
		"AIRTABLE_TABLE_NAME", "AIRTABLE_API_URL", "GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SERVICE_ACCOUNT_JSON", "FIXTURE_PATH", "DATABASE_URL", "PLANNER_DATA_DIR",
		"PLANNER_TOKEN_SECRET", "SEASON_YEAR", "FEEDBACK_ALLOWED_ORIGINS",
		"TELEGRAM_BOT_TOKEN", "ADMIN_TG_IDS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	c, err := FromEnv(Config{})
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, StoreAirtable, c.RecordStore)
	assert.Equal(t, "Camps", c.AirtableTableName)
	assert.Equal(t, "info", c.LogLevel)
	assert.NotZero(t, c.SeasonYear)
	assert.Empty(t, c.AdminTGIDs)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", " 9090 ")
	t.Setenv("AIRTABLE_API_KEY", "key")
	t.Setenv("AIRTABLE_BASE_ID", "app123")
	t.Setenv("SEASON_YEAR", "2026")
	t.Setenv("FEEDBACK_ALLOWED_ORIGINS", "https://weevora.com, https://www.weevora.com,")
	t.Setenv("ADMIN_TG_IDS", "1, 2,abc")

	c, err := FromEnv(Config{})
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "key", c.AirtableAPIKey)
	assert.Equal(t, 2026, c.SeasonYear)
	assert.Equal(t, []string{"https://weevora.com", "https://www.weevora.com"}, c.FeedbackAllowedOrigins)
	assert.Equal(t, map[int64]bool{1: true, 2: true}, c.AdminTGIDs)
}

func TestFromEnvValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEASON_YEAR", "next")
	_, err := FromEnv(Config{})
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("RECORD_STORE", "mongo")
	_, err = FromEnv(Config{})
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("RECORD_STORE", "sheets")
	_, err = FromEnv(Config{})
	assert.Error(t, err)
}

func TestDetectStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIXTURE_PATH", "testdata/camps.yaml")
	c, err := FromEnv(Config{})
	require.NoError(t, err)
	assert.Equal(t, StoreFixture, c.RecordStore)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "weevora.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
record_store: fixture
fixture_path: camps.yaml
season_year: 2027
feedback_allowed_origins:
  - https://weevora.com
`), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7100", c.Port, "environment wins over the file")
	assert.Equal(t, StoreFixture, c.RecordStore)
	assert.Equal(t, 2027, c.SeasonYear)
	assert.Equal(t, []string{"https://weevora.com"}, c.FeedbackAllowedOrigins)
}
