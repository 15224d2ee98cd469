package repository

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	OperationStatusSuccess = "success"
	OperationStatusFailed  = "failed"
)

// Operation records one call made to Asana during a run.
type Operation struct {
	ID           int64     `json:"id"`
	RunID        string    `json:"run_id"`
	Operation    string    `json:"operation"`
	ResourceGID  string    `json:"resource_gid,omitempty"`
	Status       string    `json:"status"`
	StatusCode   int       `json:"status_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type OperationRepository struct {
	db *sql.DB
}

func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) Create(op *Operation) (int64, error) {
	query := `
		INSERT INTO operations (run_id, operation, resource_gid, status, status_code, error_message)
        VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		op.RunID,
		op.Operation,
		op.ResourceGID,
		op.Status,
		op.StatusCode,
		op.ErrorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("create operation: %w", err)
	}

	return result.LastInsertId()
}

func (r *OperationRepository) ListByRun(runID string) ([]Operation, error) {
	query := `
		SELECT id, run_id, operation, resource_gid, status, status_code, error_message, created_at
		FROM operations
		WHERE run_id = ?
		ORDER BY id
	`
	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("list operations for run %s: %w", runID, err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		var resourceGID, errorMessage sql.NullString
		err := rows.Scan(
			&op.ID,
			&op.RunID,
			&op.Operation,
			&resourceGID,
			&op.Status,
			&op.StatusCode,
			&errorMessage,
			&op.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.ResourceGID = resourceGID.String
		op.ErrorMessage = errorMessage.String
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}

	return ops, nil
}
