package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/models"
	"github.com/mandag122/WeeVora/internal/planner"
)

// PlannerRepository stores planner state in Postgres. A row whose jsonb no
// longer decodes loads as defaults() with a warning, like planner.FileStore.
type PlannerRepository struct {
	db       *pgxpool.Pool
	defaults func() models.PlannerState
	log      *zap.Logger
}

func NewPlannerRepository(db *pgxpool.Pool, defaults func() models.PlannerState, log *zap.Logger) *PlannerRepository {
	if defaults == nil {
		defaults = func() models.PlannerState {
			return models.PlannerState{Sessions: []models.SelectedSession{}}
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PlannerRepository{db: db, defaults: defaults, log: log}
}

// Load retrieves a planner by id
func (r *PlannerRepository) Load(ctx context.Context, id string) (models.PlannerState, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return models.PlannerState{}, planner.ErrPlannerNotFound
	}

	query := `
		SELECT sessions, date_range, updated_at
		FROM planners
		WHERE id = $1
	`

	var sessions, dateRange []byte
	var updatedAt *time.Time
	err = r.db.QueryRow(ctx, query, pid).Scan(&sessions, &dateRange, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PlannerState{}, planner.ErrPlannerNotFound
		}
		return models.PlannerState{}, err
	}
	return r.fromRow(id, sessions, dateRange, updatedAt), nil
}

func (r *PlannerRepository) fromRow(id string, sessions, dateRange []byte, updatedAt *time.Time) models.PlannerState {
	state, err := decodeState(sessions, dateRange)
	if err != nil {
		r.log.Warn("corrupt planner row, using defaults", zap.String("planner_id", id), zap.Error(err))
		return r.defaults()
	}
	state.UpdatedAt = updatedAt
	return state
}

func decodeState(sessions, dateRange []byte) (models.PlannerState, error) {
	var state models.PlannerState
	if err := json.Unmarshal(sessions, &state.Sessions); err != nil {
		return models.PlannerState{}, fmt.Errorf("decode sessions: %w", err)
	}
	if err := json.Unmarshal(dateRange, &state.DateRange); err != nil {
		return models.PlannerState{}, fmt.Errorf("decode date range: %w", err)
	}
	return state, nil
}

// Save upserts a planner
func (r *PlannerRepository) Save(ctx context.Context, id string, state models.PlannerState) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return planner.ErrPlannerNotFound
	}

	if state.Sessions == nil {
		state.Sessions = []models.SelectedSession{}
	}
	sessions, err := json.Marshal(state.Sessions)
	if err != nil {
		return err
	}
	dateRange, err := json.Marshal(state.DateRange)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO planners (id, sessions, date_range, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), COALESCE($4, NOW()))
		ON CONFLICT (id) DO UPDATE
		SET sessions = EXCLUDED.sessions,
		    date_range = EXCLUDED.date_range,
		    updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.Exec(ctx, query, pid, sessions, dateRange, state.UpdatedAt)
	return err
}
