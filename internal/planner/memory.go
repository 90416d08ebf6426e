package planner

import (
	"context"
	"sync"

	"github.com/mandag122/WeeVora/internal/models"
)

// MemoryStore keeps planners in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]models.PlannerState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[string]models.PlannerState{}}
}

func (m *MemoryStore) Load(ctx context.Context, id string) (models.PlannerState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[id]
	if !ok {
		return models.PlannerState{}, ErrPlannerNotFound
	}
	return clone(state), nil
}

func (m *MemoryStore) Save(ctx context.Context, id string, state models.PlannerState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[id] = clone(state)
	return nil
}

func clone(state models.PlannerState) models.PlannerState {
	sessions := make([]models.SelectedSession, len(state.Sessions))
	copy(sessions, state.Sessions)
	state.Sessions = sessions
	return state
}
