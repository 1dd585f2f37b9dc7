package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/svclint/pkg/lint"
)

// CreateRun starts a new run for root covering the given number of files.
func (s *SQLiteStore) CreateRun(ctx context.Context, root string, files int) (*Run, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	run := &Run{
		ID:        generateID(),
		Root:      root,
		Files:     files,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("root", root))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, root, files, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Files, string(run.Status), run.StartedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// RecordFindings stores findings for a run in a single transaction.
func (s *SQLiteStore) RecordFindings(ctx context.Context, runID string, findings []lint.Finding) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if len(findings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, position, file, line, type_name, declared, derived) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare finding insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, f := range findings {
		if _, err := stmt.ExecContext(ctx, runID, i, f.SourceFile, f.Line, f.Type, f.Declared, f.Derived); err != nil {
			return fmt.Errorf("failed to record finding for %s: %w", f.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit findings: %w", err)
	}
	return nil
}

// CompleteRun stores the total and marks the run passed or failed.
func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, total int) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	status := RunStatusPassed
	if total > 0 {
		status = RunStatusFailed
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET total = ?, status = ?, completed_at = ? WHERE id = ?`,
		total, string(status), time.Now().UTC().UnixMilli(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, root, files, total, status, started_at, completed_at FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, files, total, status, started_at, completed_at FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetFindings returns the findings of a run in recorded order.
func (s *SQLiteStore) GetFindings(ctx context.Context, runID string) ([]lint.Finding, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT file, line, type_name, declared, derived FROM findings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []lint.Finding
	for rows.Next() {
		var f lint.Finding
		if err := rows.Scan(&f.SourceFile, &f.Line, &f.Type, &f.Declared, &f.Derived); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run         Run
		status      string
		startedAt   int64
		completedAt sql.NullInt64
	)
	if err := row.Scan(&run.ID, &run.Root, &run.Files, &run.Total, &status, &startedAt, &completedAt); err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	run.StartedAt = time.UnixMilli(startedAt).UTC()
	if completedAt.Valid {
		t := time.UnixMilli(completedAt.Int64).UTC()
		run.CompletedAt = &t
	}
	return &run, nil
}
