package bench

import (
	"context"
	"database/sql"
	"fmt"
)

// Store persists per-answer benchmark results in bench_results.
type Store struct{ db *sql.DB }

// NewStore migrates db and returns a store over it.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	if err := migrate(ctx, db, migrations); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Save records every game of rep, replacing earlier results for the same
// configuration and answer.
func (s *Store) Save(ctx context.Context, rep Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bench_results (config, answer, attempts, solved, elapsed_us)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(config, answer) DO UPDATE SET
			attempts   = excluded.attempts,
			solved     = excluded.solved,
			elapsed_us = excluded.elapsed_us,
			created_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rep.Results {
		if _, err := stmt.ExecContext(ctx, rep.Config, r.Answer, r.Attempts, r.Solved, r.Elapsed.Microseconds()); err != nil {
			return fmt.Errorf("save %s/%s: %w", rep.Config, r.Answer, err)
		}
	}
	return tx.Commit()
}

// SummaryRow ranks one configuration.
type SummaryRow struct {
	Config   string  `json:"config"`
	Games    int     `json:"games"`
	Mean     float64 `json:"mean"` // over solved games
	Failures int     `json:"failures"`
	Worst    int     `json:"worst"`
}

// Summary ranks configurations by failures, then mean attempts.
func (s *Store) Summary(ctx context.Context, limit int) ([]SummaryRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT config,
		       COUNT(1),
		       IFNULL(AVG(CASE WHEN solved THEN attempts END), 0),
		       SUM(CASE WHEN solved THEN 0 ELSE 1 END),
		       MAX(attempts)
		FROM bench_results
		GROUP BY config
		ORDER BY 4 ASC, 3 ASC, config ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(&r.Config, &r.Games, &r.Mean, &r.Failures, &r.Worst); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
