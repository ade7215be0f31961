package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/episteme/verification/internal/models"
)

// MockRunLister is a mock implementation of RunLister
type MockRunLister struct {
	ListRecentRunsFunc func(limit int) ([]*models.VerificationRun, error)
}

func (m *MockRunLister) ListRecentRuns(limit int) ([]*models.VerificationRun, error) {
	if m.ListRecentRunsFunc != nil {
		return m.ListRecentRunsFunc(limit)
	}
	return nil, nil
}

func TestPrintHistory(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	passed := &models.VerificationRun{
		ID:          "run-passed",
		Engine:      "playwright",
		Status:      models.RunStatusPassed,
		Screenshots: make([]string, 7),
		StartedAt:   started,
		FinishedAt:  started.Add(4 * time.Second),
	}
	failed := &models.VerificationRun{
		ID:             "run-failed",
		Engine:         "chromedp",
		Status:         models.RunStatusFailed,
		FailedStep:     12,
		FailedAction:   "click",
		FailureMessage: "timeout",
		StartedAt:      started,
		FinishedAt:     started.Add(31 * time.Second),
	}
	running := &models.VerificationRun{
		ID:        "run-running",
		Engine:    "playwright",
		Status:    models.RunStatusRunning,
		StartedAt: started,
	}

	tests := []struct {
		name         string
		runs         []*models.VerificationRun
		listErr      error
		wantErr      bool
		wantContains []string
	}{
		{
			name:         "empty ledger",
			wantContains: []string{"No verification runs recorded"},
		},
		{
			name: "mixed runs",
			runs: []*models.VerificationRun{passed, failed, running},
			wantContains: []string{
				"ID", "STATUS",
				"run-passed", "passed", "4s", "7 screenshots",
				"run-failed", "chromedp", "step 12 (click): timeout",
				"run-running", "running",
				"2026-03-01T12:00:00Z",
			},
		},
		{
			name:    "list error",
			listErr: errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			var gotLimit int
			lister := &MockRunLister{
				ListRecentRunsFunc: func(limit int) ([]*models.VerificationRun, error) {
					gotLimit = limit
					return tt.runs, tt.listErr
				},
			}
			var buf bytes.Buffer

			// WHEN
			err := PrintHistory(&buf, lister, 20)

			// THEN
			if (err != nil) != tt.wantErr {
				t.Fatalf("PrintHistory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotLimit != 20 {
				t.Errorf("Expected limit 20, got %d", gotLimit)
			}
			out := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}
