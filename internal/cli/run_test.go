package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/episteme/verification/internal/models"
)

// MockVerificationService is a mock implementation of services.VerificationService
type MockVerificationService struct {
	VerifyFunc func(ctx context.Context) (*models.VerificationRun, error)
}

func (m *MockVerificationService) Verify(ctx context.Context) (*models.VerificationRun, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx)
	}
	return nil, nil
}

func TestRunVerify(t *testing.T) {
	journeyErr := errors.New("step 7 (quest-hint): wait text \"Think about safety\": timeout")

	tests := []struct {
		name        string
		verifyErr   error
		wantErr     bool
		errContains string
	}{
		{
			name: "successful run",
		},
		{
			name:        "failed run",
			verifyErr:   journeyErr,
			wantErr:     true,
			errContains: "Think about safety",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			svc := &MockVerificationService{
				VerifyFunc: func(ctx context.Context) (*models.VerificationRun, error) {
					run, _ := models.NewVerificationRun("http://localhost:5173/", "playwright")
					if tt.verifyErr != nil {
						run.Fail(7, "wait", tt.verifyErr.Error(), nil)
						return run, tt.verifyErr
					}
					run.Pass([]string{"verification/01_map_initial.png"})
					return run, nil
				},
			}

			// WHEN
			err := RunVerify(context.Background(), svc)

			// THEN
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunVerify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, tt.verifyErr) {
					t.Errorf("Expected error to wrap journey error, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
				}
			}
		})
	}
}

func TestRunVerify_PropagatesCancellation(t *testing.T) {
	// GIVEN
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := &MockVerificationService{
		VerifyFunc: func(ctx context.Context) (*models.VerificationRun, error) {
			return nil, ctx.Err()
		},
	}

	// WHEN
	err := RunVerify(ctx, svc)

	// THEN
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
