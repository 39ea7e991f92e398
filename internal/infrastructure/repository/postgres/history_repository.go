package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

// HistoryRepository keeps one row per sort outcome for auditing and the
// XLSX report export. Writes are best-effort from the caller's point of
// view; the sorter never fails a move because history is down.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across restarting daemons.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082501)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS sort_history (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	source TEXT NOT NULL,
	target TEXT,
	label TEXT,
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	reason TEXT,
	sorted_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sort_history_sorted_at ON sort_history(sorted_at DESC);
CREATE INDEX IF NOT EXISTS idx_sort_history_status ON sort_history(status);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *HistoryRepository) RecordOutcome(ctx context.Context, rec domain.SortRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sort_history (
	id, filename, source, target, label, confidence, status, reason, sorted_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
		rec.ID, rec.Filename, rec.Source, rec.Target, string(rec.Label),
		rec.Confidence, string(rec.Status), rec.Reason, rec.SortedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sort record: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.SortRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, filename, source, target, label, confidence, status, reason, sorted_at
FROM sort_history
ORDER BY sorted_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sort history: %w", err)
	}
	defer rows.Close()

	var records []domain.SortRecord
	for rows.Next() {
		var rec domain.SortRecord
		var target, label, reason sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.Filename, &rec.Source, &target, &label,
			&rec.Confidence, &rec.Status, &reason, &rec.SortedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sort record: %w", err)
		}
		rec.Target = target.String
		rec.Label = domain.DocumentType(label.String)
		rec.Reason = reason.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sort history: %w", err)
	}
	return records, nil
}
