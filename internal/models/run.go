package models

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid verification run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// VerificationRun is one execution of the journey against a target
type VerificationRun struct {
	ID             string
	TargetURL      string
	Engine         string
	Status         RunStatus
	FailedStep     int
	FailedAction   string
	FailureMessage string
	Screenshots    []string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Domain errors
var (
	ErrInvalidTargetURL        = errors.New("target URL must be an absolute http(s) URL")
	ErrInvalidEngine           = errors.New("engine cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrEmptyFailureMessage     = errors.New("failure message cannot be empty")
)

// NewVerificationRun starts a run record with a generated ID
func NewVerificationRun(targetURL, engine string) (*VerificationRun, error) {
	if err := validateRunInput(targetURL, engine); err != nil {
		return nil, err
	}

	return &VerificationRun{
		ID:        uuid.New().String(),
		TargetURL: targetURL,
		Engine:    engine,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// validateRunInput validates run creation parameters
func validateRunInput(targetURL, engine string) error {
	u, err := url.Parse(targetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidTargetURL
	}
	if engine == "" {
		return ErrInvalidEngine
	}
	return nil
}

// Pass marks the run as passed with the screenshots it wrote
func (r *VerificationRun) Pass(screenshots []string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot pass run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusPassed
	r.Screenshots = screenshots
	r.FinishedAt = time.Now()
	return nil
}

// Fail marks the run as failed at step (0 when no journey step was
// reached) with the screenshots written before the failure
func (r *VerificationRun) Fail(step int, action, message string, screenshots []string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot fail run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if message == "" {
		return ErrEmptyFailureMessage
	}

	r.Status = RunStatusFailed
	r.FailedStep = step
	r.FailedAction = action
	r.FailureMessage = message
	r.Screenshots = screenshots
	r.FinishedAt = time.Now()
	return nil
}

// IsRunning returns true if the run has not finished
func (r *VerificationRun) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// IsPassed returns true if the run passed
func (r *VerificationRun) IsPassed() bool {
	return r.Status == RunStatusPassed
}

// IsFailed returns true if the run failed
func (r *VerificationRun) IsFailed() bool {
	return r.Status == RunStatusFailed
}

// Duration returns how long the run took, or zero while it is running
func (r *VerificationRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
