package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// TargetProbe checks that the target application answers before a
// browser is launched
type TargetProbe interface {
	Check(ctx context.Context, targetURL string) error
}

// HTTPTargetProbe implements TargetProbe with a plain GET
type HTTPTargetProbe struct {
	httpClient *http.Client
}

// NewTargetProbe creates a probe that gives up after timeout
func NewTargetProbe(timeout time.Duration) TargetProbe {
	return &HTTPTargetProbe{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Check fails on transport errors and on 4xx/5xx responses
func (p *HTTPTargetProbe) Check(ctx context.Context, targetURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("target application not reachable at %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("target application at %s returned status %d", targetURL, resp.StatusCode)
	}

	log.Printf("Target application answered %s (status %d)", targetURL, resp.StatusCode)
	return nil
}
