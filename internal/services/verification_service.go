package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/episteme/verification/internal/browser"
	"github.com/episteme/verification/internal/config"
	"github.com/episteme/verification/internal/journey"
	"github.com/episteme/verification/internal/models"
)

// RunRepository defines the interface for run persistence
type RunRepository interface {
	CreateRun(run *models.VerificationRun) error
	FinishRun(run *models.VerificationRun) error
}

// Launcher starts a browser session for cfg
type Launcher func(ctx context.Context, cfg config.RunnerConfig) (browser.Session, error)

// VerificationService runs the Episteme journey
type VerificationService interface {
	Verify(ctx context.Context) (*models.VerificationRun, error)
}

// VerificationServiceImpl implements VerificationService
type VerificationServiceImpl struct {
	cfg    config.RunnerConfig
	launch Launcher
	runs   RunRepository // nil disables the run ledger
	probe  TargetProbe   // nil skips the preflight check
	steps  []journey.Step
}

// NewVerificationService creates a verification service. runs and probe
// are optional.
func NewVerificationService(cfg config.RunnerConfig, launch Launcher, runs RunRepository, probe TargetProbe) VerificationService {
	return &VerificationServiceImpl{
		cfg:    cfg,
		launch: launch,
		runs:   runs,
		probe:  probe,
		steps:  journey.Episteme(cfg.BaseURL),
	}
}

// Verify executes one run. The returned run is non-nil whenever the run
// was started; the error is the journey's failure, unchanged.
func (s *VerificationServiceImpl) Verify(ctx context.Context) (*models.VerificationRun, error) {
	run, err := models.NewVerificationRun(s.cfg.BaseURL, s.cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if s.runs != nil {
		if err := s.runs.CreateRun(run); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	log.Printf("Starting verification run %s against %s", run.ID, run.TargetURL)

	result, runErr := s.execute(ctx)
	if runErr != nil {
		step, action := 0, ""
		var stepErr *journey.StepError
		if errors.As(runErr, &stepErr) {
			step, action = stepErr.Step, string(stepErr.Action)
		}
		if err := run.Fail(step, action, runErr.Error(), result.Screenshots); err != nil {
			return run, err
		}
		log.Printf("Verification run %s failed: %v", run.ID, runErr)
	} else {
		if err := run.Pass(result.Screenshots); err != nil {
			return run, err
		}
		log.Printf("Verification run %s passed in %s with %d screenshots", run.ID, run.Duration(), len(run.Screenshots))
	}

	if s.runs != nil {
		if err := s.runs.FinishRun(run); err != nil {
			if runErr == nil {
				return run, fmt.Errorf("failed to record run outcome: %w", err)
			}
			log.Printf("Warning: failed to record run outcome: %v", err)
		}
	}

	return run, runErr
}

// execute launches the browser, runs the journey and always closes the
// browser. The result is never nil.
func (s *VerificationServiceImpl) execute(ctx context.Context) (result *journey.Result, err error) {
	result = &journey.Result{}

	if s.probe != nil {
		if err := s.probe.Check(ctx, s.cfg.BaseURL); err != nil {
			return result, fmt.Errorf("preflight check failed: %w", err)
		}
	}

	session, err := s.launch(ctx, s.cfg)
	if err != nil {
		return result, &journey.StepError{
			Step:   journey.LaunchStep,
			Name:   "launch-browser",
			Action: journey.ActionLaunch,
			Err:    err,
		}
	}

	defer func() {
		closeErr := session.Close()
		if closeErr == nil {
			log.Println("Browser closed")
			return
		}
		if err == nil {
			err = &journey.StepError{
				Step:   journey.CloseStep,
				Name:   "close-browser",
				Action: journey.ActionClose,
				Err:    closeErr,
			}
			return
		}
		log.Printf("Warning: failed to close browser: %v", closeErr)
	}()

	// Closing the session unblocks a page call waiting out its timeout
	stop := context.AfterFunc(ctx, func() {
		log.Println("Run cancelled, closing browser")
		session.Close()
	})
	defer stop()

	return journey.NewRunner(s.steps, s.cfg.ScreenshotDir).Run(ctx, session)
}
