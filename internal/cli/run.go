package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/episteme/verification/internal/services"
)

// RunVerify executes one verification run and reports its outcome. The run
// is cancelled on SIGINT or SIGTERM; the browser is still closed.
func RunVerify(ctx context.Context, svc services.VerificationService) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := svc.Verify(ctx)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	log.Printf("Verification passed: %d screenshots written", len(run.Screenshots))
	for _, path := range run.Screenshots {
		log.Printf("  %s", path)
	}
	return nil
}
