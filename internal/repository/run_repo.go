package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/episteme/verification/internal/database"
	"github.com/episteme/verification/internal/models"
	"github.com/lib/pq"
)

// ErrRunNotFound is returned when no run matches the requested ID
var ErrRunNotFound = errors.New("verification run not found")

// RunRepository handles database operations for verification runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a run repository on the global connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun records the start of a run
func (r *RunRepository) CreateRun(run *models.VerificationRun) error {
	query := `
		INSERT INTO verification_runs (id, target_url, engine, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.TargetURL,
		run.Engine,
		run.Status,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun records the outcome of a run
func (r *RunRepository) FinishRun(run *models.VerificationRun) error {
	query := `
		UPDATE verification_runs
		SET status = $1, failed_step = $2, failed_action = $3, failure_message = $4,
		    screenshots = $5, finished_at = $6
		WHERE id = $7
	`

	screenshots := run.Screenshots
	if screenshots == nil {
		screenshots = []string{}
	}

	result, err := r.db.Exec(query,
		run.Status,
		run.FailedStep,
		nullString(run.FailedAction),
		nullString(run.FailureMessage),
		pq.Array(screenshots),
		run.FinishedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(id string) (*models.VerificationRun, error) {
	query := `
		SELECT ` + runColumns + `
		FROM verification_runs
		WHERE id = $1
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// ListRecentRuns returns up to limit runs, newest first
func (r *RunRepository) ListRecentRuns(limit int) ([]*models.VerificationRun, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT ` + runColumns + `
		FROM verification_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.VerificationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

const runColumns = `id, target_url, engine, status, failed_step,
		       COALESCE(failed_action, ''), COALESCE(failure_message, ''),
		       screenshots, started_at, finished_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.VerificationRun, error) {
	run := &models.VerificationRun{}
	var finishedAt sql.NullTime
	err := row.Scan(
		&run.ID,
		&run.TargetURL,
		&run.Engine,
		&run.Status,
		&run.FailedStep,
		&run.FailedAction,
		&run.FailureMessage,
		pq.Array(&run.Screenshots),
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
