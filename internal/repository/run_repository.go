package repository

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is one process lifetime of a surface that calls Asana, e.g. one
// server start or one execution of the usage routine.
type Run struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	WorkspaceID string     `json:"workspace_id"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(run *Run) error {
	query := `
	INSERT INTO runs (id, source, workspace_id, status)
        VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, run.ID, run.Source, run.WorkspaceID, run.Status)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

func (r *RunRepository) Complete(id string, status string) error {
	query := `UPDATE runs SET status = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.Exec(query, status, id); err != nil {
		return fmt.Errorf("complete run %s: %w", id, err)
	}
	return nil
}

func (r *RunRepository) GetRuns() ([]Run, error) {
	query := `
	SELECT id, source, workspace_id, status, started_at, completed_at
	FROM runs
	ORDER BY started_at DESC, id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("get runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := scanRun(rows, &run); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

func (r *RunRepository) GetRun(id string) (Run, error) {
	query := `
		SELECT id, source, workspace_id, status, started_at, completed_at
		FROM runs WHERE id = ?
	`

	var run Run
	if err := scanRun(r.db.QueryRow(query, id), &run); err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner, run *Run) error {
	var completedAt sql.NullTime
	err := s.Scan(
		&run.ID,
		&run.Source,
		&run.WorkspaceID,
		&run.Status,
		&run.StartedAt,
		&completedAt,
	)
	if err != nil {
		return err
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return nil
}
