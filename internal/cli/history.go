package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/episteme/verification/internal/models"
)

// RunLister reads recorded verification runs
type RunLister interface {
	ListRecentRuns(limit int) ([]*models.VerificationRun, error)
}

// PrintHistory writes the most recent runs as a table
func PrintHistory(w io.Writer, runs RunLister, limit int) error {
	recent, err := runs.ListRecentRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}

	if len(recent) == 0 {
		_, err := fmt.Fprintln(w, "No verification runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tENGINE\tSTATUS\tDURATION\tDETAIL")
	for _, run := range recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.StartedAt.Format(time.RFC3339),
			run.Engine,
			run.Status,
			formatDuration(run),
			runDetail(run),
		)
	}
	return tw.Flush()
}

func formatDuration(run *models.VerificationRun) string {
	if run.IsRunning() {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}

func runDetail(run *models.VerificationRun) string {
	switch {
	case run.IsFailed():
		return fmt.Sprintf("step %d (%s): %s", run.FailedStep, run.FailedAction, run.FailureMessage)
	case run.IsPassed():
		return fmt.Sprintf("%d screenshots", len(run.Screenshots))
	default:
		return ""
	}
}
