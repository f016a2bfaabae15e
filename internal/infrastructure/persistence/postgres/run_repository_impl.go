package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/dreschagin/macro-watch/internal/domain/entity"
	"github.com/dreschagin/macro-watch/internal/domain/service"
	"github.com/dreschagin/macro-watch/pkg/config"
)

// PostgresRunRepository implements repository.RunRepository. It is a
// write-mostly audit log: each run inserts one row plus one row per
// evaluated indicator, all in a single transaction.
type PostgresRunRepository struct {
	db *sql.DB
}

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

// Connect opens and verifies a database connection with pool limits applied
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the run history tables when they do not exist yet
func (r *PostgresRunRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id         TEXT PRIMARY KEY,
			generated_at   TIMESTAMPTZ NOT NULL,
			overall        TEXT NOT NULL,
			warning_count  INTEGER NOT NULL,
			critical_count INTEGER NOT NULL,
			total_known    INTEGER NOT NULL,
			summary        TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_assessments (
			run_id       TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			indicator_id TEXT NOT NULL,
			status       TEXT NOT NULL,
			value        DOUBLE PRECISION,
			as_of        TEXT,
			source       TEXT,
			error        TEXT,
			PRIMARY KEY (run_id, indicator_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs (generated_at DESC)`,
	}

	for _, statement := range statements {
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// SaveRun persists one run and its assessments in a single transaction
func (r *PostgresRunRepository) SaveRun(
	ctx context.Context,
	runID string,
	generatedAt time.Time,
	aggregate service.Aggregate,
	assessments []*entity.Assessment,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, generated_at, overall, warning_count, critical_count, total_known, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		runID,
		generatedAt.UTC(),
		aggregate.Overall.String(),
		aggregate.WarningCount,
		aggregate.CriticalCount,
		aggregate.TotalKnown,
		aggregate.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_assessments (run_id, indicator_id, status, value, as_of, source, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, assessment := range assessments {
		reading := assessment.Reading()

		var value sql.NullFloat64
		if reading.Valid {
			value = sql.NullFloat64{Float64: reading.Value, Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			runID,
			assessment.Spec().ID,
			assessment.Status().String(),
			value,
			reading.AsOf,
			reading.Source,
			reading.Err,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assessment %s: %w", assessment.Spec().ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LatestRuns returns run summaries ordered newest first
func (r *PostgresRunRepository) LatestRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT run_id, generated_at, overall, warning_count, critical_count, total_known, summary
		FROM runs
		ORDER BY generated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		if err := rows.Scan(
			&record.RunID,
			&record.GeneratedAt,
			&record.Overall,
			&record.WarningCount,
			&record.CriticalCount,
			&record.TotalKnown,
			&record.Summary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// RunRecord is one persisted run summary
type RunRecord struct {
	RunID         string
	GeneratedAt   time.Time
	Overall       string
	WarningCount  int
	CriticalCount int
	TotalKnown    int
	Summary       string
}
