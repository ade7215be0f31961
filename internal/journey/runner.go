package journey

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Page is the browser page the journey drives
type Page interface {
	Goto(url string) error
	WaitFor(sel Selector) error
	Click(sel Selector) error
	Screenshot(path string) error
}

// Result describes how far a run got
type Result struct {
	Screenshots []string // paths written, in capture order
	Completed   int      // number of steps that succeeded
}

// Runner executes a fixed sequence of steps against a page
type Runner struct {
	steps         []Step
	screenshotDir string
}

// NewRunner creates a runner for steps, writing screenshots to screenshotDir
func NewRunner(steps []Step, screenshotDir string) *Runner {
	return &Runner{
		steps:         steps,
		screenshotDir: screenshotDir,
	}
}

// Steps returns the steps the runner executes
func (r *Runner) Steps() []Step {
	return r.steps
}

// Run executes every step in order and stops at the first failure. The
// returned Result is never nil, so callers can report partial progress.
func (r *Runner) Run(ctx context.Context, page Page) (*Result, error) {
	result := &Result{}

	if err := os.MkdirAll(r.screenshotDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	for _, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return result, r.fail(step, err)
		}

		log.Println(step.Description)

		if err := r.do(page, step); err != nil {
			// A cancelled run interrupts the page by closing it
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("%w: %w", ctxErr, err)
			}
			return result, r.fail(step, err)
		}

		for _, name := range step.Screenshots {
			path := filepath.Join(r.screenshotDir, name)
			if err := page.Screenshot(path); err != nil {
				return result, r.fail(step, fmt.Errorf("%w: %s: %w", ErrScreenshot, name, err))
			}
			log.Printf("Saved screenshot to %s", path)
			result.Screenshots = append(result.Screenshots, path)
		}

		result.Completed++
	}

	return result, nil
}

func (r *Runner) do(page Page, step Step) error {
	switch step.Action {
	case ActionNavigate:
		return page.Goto(step.URL)
	case ActionWait:
		return page.WaitFor(step.Selector)
	case ActionClick:
		return page.Click(step.Selector)
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}

func (r *Runner) fail(step Step, err error) error {
	return &StepError{
		Step:     step.Number,
		Name:     step.Name,
		Action:   step.Action,
		Selector: step.Selector,
		Err:      err,
	}
}
