package e2e

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/episteme/verification/internal/browser"
	"github.com/episteme/verification/internal/config"
	"github.com/episteme/verification/internal/fixture"
	"github.com/episteme/verification/internal/journey"
	"github.com/episteme/verification/internal/services"
)

func runnerConfig(t *testing.T, baseURL string) config.RunnerConfig {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	cfg.BaseURL = baseURL
	cfg.ScreenshotDir = filepath.Join(t.TempDir(), "verification")
	cfg.Timeout = 3 * time.Second
	return cfg
}

func assertScreenshots(t *testing.T, dir string, present int) {
	t.Helper()
	for i, name := range journey.Screenshots {
		_, err := os.Stat(filepath.Join(dir, name))
		if i < present && err != nil {
			t.Errorf("Expected screenshot %s to exist: %v", name, err)
		}
		if i >= present && err == nil {
			t.Errorf("Expected screenshot %s not to exist", name)
		}
	}
}

// TestJourney runs the whole verification against the fixture app
// Feature: Episteme smoke test
//
//	As a developer
//	I want the journey to fail at the step that regressed
//	So that I know which UI state is broken
func TestJourney(t *testing.T) {
	renamedHint := fixture.DefaultJourney()
	renamedHint.Nodes[0].Quest.Hint = "Consider your options carefully."

	noHall := fixture.DefaultJourney()
	noHall.HallButton = ""

	tests := []struct {
		name            string
		journey         fixture.Journey
		wantStep        int
		wantScreenshots int
	}{
		{
			name:            "intact app passes",
			journey:         fixture.DefaultJourney(),
			wantScreenshots: 7,
		},
		{
			name:            "renamed hint fails at step 7",
			journey:         renamedHint,
			wantStep:        7,
			wantScreenshots: 2,
		},
		{
			name:            "missing hall button fails at step 12",
			journey:         noHall,
			wantStep:        12,
			wantScreenshots: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			cfg := runnerConfig(t, startFixture(t, tt.journey))
			svc := services.NewVerificationService(cfg, browser.Launch, nil, nil)

			// WHEN
			run, err := svc.Verify(context.Background())

			// THEN
			if tt.wantStep == 0 {
				if err != nil {
					t.Fatalf("Expected run to pass, got: %v", err)
				}
				if !run.IsPassed() {
					t.Errorf("Expected passed run, got %s", run.Status)
				}
			} else {
				if got := journey.FailedStep(err); got != tt.wantStep {
					t.Fatalf("Expected failure at step %d, got %d (%v)", tt.wantStep, got, err)
				}
				if !errors.Is(err, browser.ErrTimeout) {
					t.Errorf("Expected a timeout error, got %v", err)
				}
				if run.FailedStep != tt.wantStep {
					t.Errorf("Expected recorded step %d, got %d", tt.wantStep, run.FailedStep)
				}
			}
			if len(run.Screenshots) != tt.wantScreenshots {
				t.Errorf("Expected %d screenshots, got %d", tt.wantScreenshots, len(run.Screenshots))
			}
			assertScreenshots(t, cfg.ScreenshotDir, tt.wantScreenshots)
		})
	}
}

func TestJourney_UnreachableTarget(t *testing.T) {
	// GIVEN
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	cfg := runnerConfig(t, "http://"+addr+"/")
	svc := services.NewVerificationService(cfg, browser.Launch, nil, nil)

	// WHEN
	run, err := svc.Verify(context.Background())

	// THEN
	if got := journey.FailedStep(err); got != 2 {
		t.Fatalf("Expected failure at step 2, got %d (%v)", got, err)
	}
	if !run.IsFailed() {
		t.Errorf("Expected failed run, got %s", run.Status)
	}
	assertScreenshots(t, cfg.ScreenshotDir, 0)
}

func TestJourney_Chromedp(t *testing.T) {
	if os.Getenv("EPISTEME_E2E_CHROMEDP") != "true" {
		t.Skip("set EPISTEME_E2E_CHROMEDP=true to run against a local Chrome")
	}

	// GIVEN
	cfg := runnerConfig(t, startFixture(t, fixture.DefaultJourney()))
	cfg.Engine = config.EngineChromedp

	svc := services.NewVerificationService(cfg, browser.Launch, nil, nil)

	// WHEN
	run, err := svc.Verify(context.Background())

	// THEN
	if err != nil {
		t.Fatalf("Expected run to pass, got: %v", err)
	}
	if len(run.Screenshots) != 7 {
		t.Errorf("Expected 7 screenshots, got %d", len(run.Screenshots))
	}
	assertScreenshots(t, cfg.ScreenshotDir, 7)
}
