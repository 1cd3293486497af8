// Package db provides PostgreSQL storage for validation run history.
// Persistence is optional: the engine's verdict never depends on it.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/survey-validator/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun records the start of a validation run and returns its ID
func (db *DB) CreateRun(ctx context.Context, dataPath, codebookPath string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO validation_runs (data_path, codebook_path, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		dataPath, codebookPath, StatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a validation run as finished with the given status
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE validation_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveReport stores the full validation report for a run as JSONB
func (db *DB) SaveReport(ctx context.Context, runID uuid.UUID, rep *types.Report) error {
	jsonBytes, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO validation_reports (run_id, violation_count, report)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id) DO UPDATE SET violation_count = $2, report = $3, created_at = NOW()`,
		runID, len(rep.Violations), jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReport loads the stored report for a run, or nil if none was saved
func (db *DB) GetReport(ctx context.Context, runID uuid.UUID) (*types.Report, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT report FROM validation_reports WHERE run_id = $1`,
		runID,
	).Scan(&content)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if content == nil {
		return nil, nil
	}

	var rep types.Report
	if err := json.Unmarshal(content, &rep); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &rep, nil
}
