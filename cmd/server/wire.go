package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/airtable"
	"github.com/mandag122/WeeVora/internal/auth"
	"github.com/mandag122/WeeVora/internal/catalog"
	"github.com/mandag122/WeeVora/internal/config"
	"github.com/mandag122/WeeVora/internal/database"
	"github.com/mandag122/WeeVora/internal/fixture"
	"github.com/mandag122/WeeVora/internal/models"
	"github.com/mandag122/WeeVora/internal/notify"
	"github.com/mandag122/WeeVora/internal/planner"
	"github.com/mandag122/WeeVora/internal/repository"
	"github.com/mandag122/WeeVora/internal/sheets"
)

const tokenIssuer = "weevora"

// newSource returns nil when Airtable credentials are missing; the catalog
// then answers every request with a configuration error.
func newSource(ctx context.Context, c config.Config, log *zap.Logger) (catalog.Source, error) {
	switch c.RecordStore {
	case config.StoreFixture:
		store, err := fixture.Load(c.FixturePath)
		if err != nil {
			return nil, err
		}
		log.Info("using fixture record store", zap.String("path", c.FixturePath))
		return store, nil

	case config.StoreSheets:
		client, err := sheets.New(ctx, c.GoogleServiceAccountJSON, c.SpreadsheetID, log)
		if err != nil {
			return nil, err
		}
		log.Info("using google sheets record store", zap.String("spreadsheet_id", client.SpreadsheetID()))
		return client, nil
	}

	opts := []airtable.Option{airtable.WithLogger(log)}
	if c.AirtableAPIURL != "" {
		opts = append(opts, airtable.WithAPIURL(c.AirtableAPIURL))
	}
	client, err := airtable.New(c.AirtableAPIKey, c.AirtableBaseID, opts...)
	if errors.Is(err, airtable.ErrMissingCredentials) {
		log.Warn("AIRTABLE_API_KEY or AIRTABLE_BASE_ID not set, catalog endpoints will fail")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newCatalog(ctx context.Context, c config.Config, log *zap.Logger) (*catalog.Service, error) {
	source, err := newSource(ctx, c, log)
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}

	opts := []catalog.Option{catalog.WithCampTable(c.AirtableTableName)}
	if c.TelegramToken != "" && len(c.AdminTGIDs) > 0 {
		tg, err := notify.NewTelegram(c.TelegramToken, c.AdminTGIDs)
		if err != nil {
			log.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			opts = append(opts, catalog.WithNotifier(tg))
		}
	}
	return catalog.New(source, log, opts...), nil
}

// newPlannerStore prefers Postgres, then a data directory, then memory.
// db is nil unless Postgres is used.
func newPlannerStore(ctx context.Context, c config.Config, log *zap.Logger) (planner.Store, *database.DB, error) {
	defaults := func() models.PlannerState {
		return models.PlannerState{
			Sessions:  []models.SelectedSession{},
			DateRange: planner.DefaultDateRange(c.SeasonYear),
		}
	}

	if c.DatabaseURL != "" {
		db, err := database.Open(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("planners stored in postgres")
		return repository.NewPlannerRepository(db.Pool(), defaults, log), db, nil
	}

	if c.PlannerDataDir != "" {
		store, err := planner.NewFileStore(c.PlannerDataDir, defaults, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("planners stored on disk", zap.String("dir", c.PlannerDataDir))
		return store, nil, nil
	}

	log.Warn("no DATABASE_URL or PLANNER_DATA_DIR, planners are kept in memory only")
	return planner.NewMemoryStore(), nil, nil
}

func newJWTService(c config.Config, log *zap.Logger) *auth.JWTService {
	secret := c.PlannerTokenSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("PLANNER_TOKEN_SECRET not set, planner tokens will not survive a restart")
	}
	return auth.NewJWTService(secret, tokenIssuer, auth.DefaultTokenTTL)
}
