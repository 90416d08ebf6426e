package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS planners (
	id         UUID PRIMARY KEY,
	sessions   JSONB NOT NULL DEFAULT '[]'::jsonb,
	date_range JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps the Postgres pool that backs planner persistence
type DB struct {
	pool *pgxpool.Pool
}

// Open connects and pings the database
func Open(ctx context.Context, connString string) (*DB, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Migrate creates the planner table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Close() {
	db.pool.Close()
}

// Health checks if the database is reachable
func (db *DB) Health(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Stats reports pool usage for the health endpoint
func (db *DB) Stats() map[string]interface{} {
	s := db.pool.Stat()
	return map[string]interface{}{
		"acquired_conns": s.AcquiredConns(),
		"idle_conns":     s.IdleConns(),
		"total_conns":    s.TotalConns(),
		"max_conns":      s.MaxConns(),
	}
}
