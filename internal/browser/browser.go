// Package browser launches a browser engine and exposes the page
// operations the verification journey needs.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/episteme/verification/internal/config"
	"github.com/episteme/verification/internal/journey"
)

// ErrTimeout is matched by errors.Is when an engine gave up waiting
var ErrTimeout = errors.New("timed out")

// DefaultTimeout bounds engine actions that have no default of their own
const DefaultTimeout = 30 * time.Second

// Session is a launched browser with a single open page
type Session interface {
	journey.Page
	// Close releases the page, the browser and the driver. Safe to call
	// more than once.
	Close() error
}

// Launch starts the engine named in cfg and opens one page sized to the
// configured viewport
func Launch(ctx context.Context, cfg config.RunnerConfig) (Session, error) {
	switch cfg.Engine {
	case config.EnginePlaywright, "":
		s, err := launchPlaywright(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.EngineChromedp:
		s, err := launchChromedp(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported engine %q", cfg.Engine)
	}
}

// timeoutError tags err as a timeout while keeping the engine's message
func timeoutError(err error) error {
	return fmt.Errorf("%w: %w", ErrTimeout, err)
}
