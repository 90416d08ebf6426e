// Package fixture serves record tables from a local YAML file, for demos
// and tests that should not reach a hosted store.
package fixture

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mandag122/WeeVora/internal/models"
)

type document struct {
	Tables map[string][]models.Record `yaml:"tables"`
}

// Store holds every table of a fixture file in memory. Created records are
// kept in memory only; the file is never rewritten.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]models.Record
}

// Load reads a fixture file
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixture YAML
func Parse(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if doc.Tables == nil {
		doc.Tables = map[string][]models.Record{}
	}
	for name, records := range doc.Tables {
		for i := range records {
			if records[i].ID == "" {
				records[i].ID = fmt.Sprintf("%s-%d", name, i+1)
			}
			if records[i].Fields == nil {
				records[i].Fields = map[string]any{}
			}
		}
	}
	return &Store{tables: doc.Tables}, nil
}

func (s *Store) ListRecords(ctx context.Context, table string) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, len(s.tables[table]))
	copy(out, s.tables[table])
	return out, nil
}

func (s *Store) CreateRecord(ctx context.Context, table string, fields map[string]any, typecast bool) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return models.Record{}, err
	}
	rec := models.Record{
		ID:          "rec" + uuid.NewString(),
		Fields:      fields,
		CreatedTime: time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.tables[table] = append(s.tables[table], rec)
	s.mu.Unlock()
	return rec, nil
}
