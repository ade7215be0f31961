package journey

import (
	"errors"
	"fmt"
)

// ErrScreenshot marks a failure to capture or write a screenshot
var ErrScreenshot = errors.New("screenshot failed")

// StepError reports the journey step that stopped a run
type StepError struct {
	Step     int
	Name     string
	Action   Action
	Selector Selector
	Err      error
}

func (e *StepError) Error() string {
	if e.Selector.Text == "" {
		return fmt.Sprintf("step %d (%s): %s: %v", e.Step, e.Name, e.Action, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %s %s: %v", e.Step, e.Name, e.Action, e.Selector, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep returns the step number carried by err, or 0 if err did not
// come from a journey step
func FailedStep(err error) int {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}
	return 0
}
