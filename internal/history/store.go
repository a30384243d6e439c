// Package history persists a per-request audit trail in SQLite so token and
// cost figures survive beyond the batch run that produced them.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// RequestRecord is one logged extraction request.
type RequestRecord struct {
	RunID        string
	Model        string
	FilePath     string
	InputTokens  int
	OutputTokens int
	Cached       bool
	CostUSD      float64
	CreatedAt    time.Time
}

// ModelTotal aggregates cost and request count for one model.
type ModelTotal struct {
	Model    string
	Requests int
	CostUSD  float64
}

// Store records and queries extraction requests in a SQLite database.
type Store struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	model TEXT NOT NULL,
	file_path TEXT NOT NULL,
	input_tokens INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	cached INTEGER NOT NULL DEFAULT 0,
	cost_usd REAL NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_requests_run ON requests(run_id, created_at);
`

// Open creates a Store and runs auto-migration.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores one request row.
func (s *Store) Record(ctx context.Context, rec RequestRecord) error {
	cached := 0
	if rec.Cached {
		cached = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (run_id, model, file_path, input_tokens, output_tokens, cached, cost_usd, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Model, rec.FilePath, rec.InputTokens, rec.OutputTokens, cached, rec.CostUSD, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record request: %w", err)
	}

	return nil
}

// RunTotal returns the summed cost for one run. Unknown run IDs yield zero.
func (s *Store) RunTotal(ctx context.Context, runID string) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(cost_usd) FROM requests WHERE run_id = ?`, runID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("query run total: %w", err)
	}

	return total.Float64, nil
}

// TotalsByModel returns per-model cost aggregates, optionally scoped to a run.
func (s *Store) TotalsByModel(ctx context.Context, runID string) ([]ModelTotal, error) {
	query := `SELECT model, COUNT(*), SUM(cost_usd) FROM requests`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` GROUP BY model ORDER BY SUM(cost_usd) DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query totals by model: %w", err)
	}
	defer rows.Close()

	var totals []ModelTotal
	for rows.Next() {
		var mt ModelTotal
		if err := rows.Scan(&mt.Model, &mt.Requests, &mt.CostUSD); err != nil {
			return nil, fmt.Errorf("scan model total: %w", err)
		}
		totals = append(totals, mt)
	}

	return totals, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
