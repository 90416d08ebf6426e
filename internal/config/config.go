package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Record store backends
const (
	StoreAirtable = "airtable"
	StoreSheets   = "sheets"
	StoreFixture  = "fixture"
)

type Config struct {
	Port        string `yaml:"port"`
	RecordStore string `yaml:"record_store"`

	AirtableAPIKey    string `yaml:"airtable_api_key"`
	AirtableBaseID    string `yaml:"airtable_base_id"`
	AirtableTableName string `yaml:"airtable_table_name"`
	AirtableAPIURL    string `yaml:"airtable_api_url"`

	SpreadsheetID            string `yaml:"google_sheets_spreadsheet_id"`
	GoogleServiceAccountJSON string `yaml:"google_service_account_json"`

	FixturePath string `yaml:"fixture_path"`

	DatabaseURL        string `yaml:"database_url"`
	PlannerDataDir     string `yaml:"planner_data_dir"`
	PlannerTokenSecret string `yaml:"planner_token_secret"`
	SeasonYear         int    `yaml:"season_year"`

	FeedbackAllowedOrigins []string `yaml:"feedback_allowed_origins"`

	TelegramToken string         `yaml:"telegram_bot_token"`
	AdminTGIDs    map[int64]bool `yaml:"-"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads the optional YAML file named by CONFIG_FILE, then applies
// environment overrides and defaults.
func Load() (Config, error) {
	var c Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config file: %w", err)
		}
	}
	return FromEnv(c)
}

// FromEnv overlays environment variables on base
func FromEnv(base Config) (Config, error) {
	c := base
	setString(&c.Port, "PORT")
	setString(&c.RecordStore, "RECORD_STORE")
	setString(&c.AirtableAPIKey, "AIRTABLE_API_KEY")
	setString(&c.AirtableBaseID, "AIRTABLE_BASE_ID")
	setString(&c.AirtableTableName, "AIRTABLE_TABLE_NAME")
	setString(&c.AirtableAPIURL, "AIRTABLE_API_URL")
	setString(&c.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	setString(&c.GoogleServiceAccountJSON, "GOOGLE_SERVICE_ACCOUNT_JSON")
	setString(&c.FixturePath, "FIXTURE_PATH")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.PlannerDataDir, "PLANNER_DATA_DIR")
	setString(&c.PlannerTokenSecret, "PLANNER_TOKEN_SECRET")
	setString(&c.TelegramToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if raw := strings.TrimSpace(os.Getenv("SEASON_YEAR")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 2000 || year > 2100 {
			return c, fmt.Errorf("SEASON_YEAR %q is not a valid year", raw)
		}
		c.SeasonYear = year
	}
	if raw := strings.TrimSpace(os.Getenv("FEEDBACK_ALLOWED_ORIGINS")); raw != "" {
		c.FeedbackAllowedOrigins = splitList(raw)
	}
	c.AdminTGIDs = parseAdminIDs(os.Getenv("ADMIN_TG_IDS"))

	if c.Port == "" {
		c.Port = "8080"
	}
	if c.AirtableTableName == "" {
		c.AirtableTableName = "Camps"
	}
	if c.SeasonYear == 0 {
		c.SeasonYear = time.Now().Year()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RecordStore == "" {
		c.RecordStore = detectStore(c)
	}

	switch c.RecordStore {
	case StoreAirtable, StoreSheets, StoreFixture:
	default:
		return c, fmt.Errorf("RECORD_STORE %q is not one of airtable, sheets, fixture", c.RecordStore)
	}
	if c.RecordStore == StoreFixture && c.FixturePath == "" {
		return c, fmt.Errorf("FIXTURE_PATH is empty")
	}
	if c.RecordStore == StoreSheets && (c.SpreadsheetID == "" || c.GoogleServiceAccountJSON == "") {
		return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID and GOOGLE_SERVICE_ACCOUNT_JSON are required for the sheets store")
	}
	// Missing Airtable credentials are not fatal: the API answers 500 per request.

	return c, nil
}

// detectStore picks a backend from whichever settings are present
func detectStore(c Config) string {
	switch {
	case c.FixturePath != "":
		return StoreFixture
	case c.SpreadsheetID != "" && c.AirtableAPIKey == "":
		return StoreSheets
	default:
		return StoreAirtable
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseAdminIDs(raw string) map[int64]bool {
	m := map[int64]bool{}
	for _, p := range splitList(raw) {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		m[v] = true
	}
	return m
}
