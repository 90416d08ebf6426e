package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/models"
)

var (
	ErrPlannerNotFound      = errors.New("planner not found")
	ErrSessionNotSelected   = errors.New("session not selected")
	ErrConfirmationRequired = errors.New("removal requires confirmation")
	ErrInvalidRange         = errors.New("invalid date range")
	ErrInvalidSession       = errors.New("invalid session")
)

// Store persists planner state. Load returns ErrPlannerNotFound for
// unknown ids.
type Store interface {
	Load(ctx context.Context, id string) (models.PlannerState, error)
	Save(ctx context.Context, id string, state models.PlannerState) error
}

// Planner applies selection changes and persists every mutation
type Planner struct {
	store      Store
	seasonYear int
	now        func() time.Time
	log        *zap.Logger
}

func New(store Store, seasonYear int, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{store: store, seasonYear: seasonYear, now: time.Now, log: log}
}

// DefaultState is an empty selection over the season window
func (p *Planner) DefaultState() models.PlannerState {
	return models.PlannerState{
		Sessions:  []models.SelectedSession{},
		DateRange: DefaultDateRange(p.seasonYear),
	}
}

// Create starts a new planner and returns its id
func (p *Planner) Create(ctx context.Context) (string, models.PlannerState, error) {
	id := uuid.NewString()
	state, err := p.save(ctx, id, p.DefaultState())
	if err != nil {
		return "", models.PlannerState{}, err
	}
	p.log.Info("planner created", zap.String("planner_id", id))
	return id, state, nil
}

// State loads a planner, normalizing a missing date range to the default
func (p *Planner) State(ctx context.Context, id string) (models.PlannerState, error) {
	state, err := p.store.Load(ctx, id)
	if err != nil {
		return models.PlannerState{}, err
	}
	return p.normalize(state), nil
}

// View is State plus overlap detection
func (p *Planner) View(ctx context.Context, id string) (models.PlannerResponse, error) {
	state, err := p.State(ctx, id)
	if err != nil {
		return models.PlannerResponse{}, err
	}
	return Respond(state), nil
}

// Respond builds the API view of a state
func Respond(state models.PlannerState) models.PlannerResponse {
	overlaps := Overlaps(state.Sessions)
	return models.PlannerResponse{
		PlannerState: state,
		Overlaps:     overlaps,
		HasOverlap:   len(overlaps) > 0,
	}
}

// Toggle adds sel, or removes it when a selection with the same session id
// already exists. added reports which happened. An extended booking sent
// with the plain session id is stored under ExtendedSessionID.
func (p *Planner) Toggle(ctx context.Context, id string, sel models.SelectedSession) (state models.PlannerState, added bool, err error) {
	if sel.SessionID == "" {
		return models.PlannerState{}, false, ErrInvalidSession
	}
	if _, _, ok := interval(sel); !ok {
		return models.PlannerState{}, false, fmt.Errorf("%w: bad dates %q to %q", ErrInvalidSession, sel.StartDate, sel.EndDate)
	}

	sel = withExtendedID(sel)

	state, err = p.State(ctx, id)
	if err != nil {
		return models.PlannerState{}, false, err
	}

	if idx := indexOf(state.Sessions, sel.SessionID); idx >= 0 {
		state.Sessions = append(state.Sessions[:idx:idx], state.Sessions[idx+1:]...)
	} else {
		state.Sessions = append(state.Sessions, sel)
		added = true
	}

	state, err = p.save(ctx, id, state)
	return state, added, err
}

// Remove drops one selection. Without confirmation nothing changes and
// ErrConfirmationRequired is returned.
func (p *Planner) Remove(ctx context.Context, id, sessionID string, confirmed bool) (models.PlannerState, error) {
	state, err := p.State(ctx, id)
	if err != nil {
		return models.PlannerState{}, err
	}

	idx := indexOf(state.Sessions, sessionID)
	if idx < 0 {
		return state, ErrSessionNotSelected
	}
	if !confirmed {
		return state, ErrConfirmationRequired
	}

	state.Sessions = append(state.Sessions[:idx:idx], state.Sessions[idx+1:]...)
	return p.save(ctx, id, state)
}

// Clear removes every selection and keeps the date range
func (p *Planner) Clear(ctx context.Context, id string) (models.PlannerState, error) {
	state, err := p.State(ctx, id)
	if err != nil {
		return models.PlannerState{}, err
	}
	state.Sessions = []models.SelectedSession{}
	return p.save(ctx, id, state)
}

// SetDateRange replaces the visible window
func (p *Planner) SetDateRange(ctx context.Context, id string, r models.DateRange) (models.PlannerState, error) {
	start, ok1 := ParseDay(r.Start)
	end, ok2 := ParseDay(r.End)
	if !ok1 || !ok2 || end.Before(start) {
		return models.PlannerState{}, ErrInvalidRange
	}

	state, err := p.State(ctx, id)
	if err != nil {
		return models.PlannerState{}, err
	}
	state.DateRange = models.DateRange{Start: start.Format(time.DateOnly), End: end.Format(time.DateOnly)}
	return p.save(ctx, id, state)
}

// Months enumerates the month grids of the planner's window
func (p *Planner) Months(ctx context.Context, id string) ([]time.Time, error) {
	state, err := p.State(ctx, id)
	if err != nil {
		return nil, err
	}
	start, _ := ParseDay(state.DateRange.Start)
	end, _ := ParseDay(state.DateRange.End)
	return MonthsInRange(start, end), nil
}

func (p *Planner) save(ctx context.Context, id string, state models.PlannerState) (models.PlannerState, error) {
	now := p.now().UTC()
	state.UpdatedAt = &now
	if err := p.store.Save(ctx, id, state); err != nil {
		return models.PlannerState{}, fmt.Errorf("save planner %s: %w", id, err)
	}
	return state, nil
}

func (p *Planner) normalize(state models.PlannerState) models.PlannerState {
	if state.Sessions == nil {
		state.Sessions = []models.SelectedSession{}
	}
	start, ok1 := ParseDay(state.DateRange.Start)
	end, ok2 := ParseDay(state.DateRange.End)
	if !ok1 || !ok2 || end.Before(start) {
		state.DateRange = DefaultDateRange(p.seasonYear)
	}
	return state
}

// withExtendedID keeps IsExtended and the "-ext" id suffix in agreement
func withExtendedID(sel models.SelectedSession) models.SelectedSession {
	hasSuffix := strings.HasSuffix(sel.SessionID, ExtendedSuffix)
	switch {
	case sel.IsExtended && !hasSuffix:
		sel.SessionID = ExtendedSessionID(sel.SessionID)
	case hasSuffix:
		sel.IsExtended = true
	}
	return sel
}

func indexOf(sessions []models.SelectedSession, sessionID string) int {
	for i, s := range sessions {
		if s.SessionID == sessionID {
			return i
		}
	}
	return -1
}
