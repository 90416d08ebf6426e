package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/models"
)

// FileStore keeps one JSON file per planner under dir. Writes go to a temp
// file that is renamed into place.
type FileStore struct {
	dir      string
	defaults func() models.PlannerState
	log      *zap.Logger
	mu       sync.Mutex
}

// NewFileStore creates dir if needed. A file that no longer decodes loads as
// defaults() instead of failing.
func NewFileStore(dir string, defaults func() models.PlannerState, log *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create planner dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{dir: dir, defaults: defaults, log: log}, nil
}

func (f *FileStore) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrPlannerNotFound
	}
	return filepath.Join(f.dir, id+".json"), nil
}

func (f *FileStore) Load(ctx context.Context, id string) (models.PlannerState, error) {
	path, err := f.path(id)
	if err != nil {
		return models.PlannerState{}, err
	}

	f.mu.Lock()
	data, err := os.ReadFile(path)
	f.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return models.PlannerState{}, ErrPlannerNotFound
	}
	if err != nil {
		return models.PlannerState{}, fmt.Errorf("read planner: %w", err)
	}

	var state models.PlannerState
	if err := json.Unmarshal(data, &state); err != nil {
		f.log.Warn("corrupt planner file, using defaults", zap.String("planner_id", id), zap.Error(err))
		return f.defaults(), nil
	}
	return state, nil
}

func (f *FileStore) Save(ctx context.Context, id string, state models.PlannerState) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, id+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
