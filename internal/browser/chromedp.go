package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/episteme/verification/internal/config"
	"github.com/episteme/verification/internal/journey"
)

// ChromedpSession drives a page through the Chrome DevTools Protocol
type ChromedpSession struct {
	ctx       context.Context
	cancels   []context.CancelFunc
	timeout   time.Duration
	closeOnce sync.Once
	closeErr  error
}

func launchChromedp(ctx context.Context, cfg config.RunnerConfig) (*ChromedpSession, error) {
	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if cfg.ChromeURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, cfg.ChromeURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
			chromedp.WindowSize(cfg.Viewport.Width, cfg.Viewport.Height),
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Printf))

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	s := &ChromedpSession{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
		timeout: timeout,
	}

	// The first Run starts the browser, so it must use the undecorated
	// browser context or the browser would die with a per-action timeout.
	if err := chromedp.Run(browserCtx, emulation.SetDeviceMetricsOverride(
		int64(cfg.Viewport.Width), int64(cfg.Viewport.Height), 1, false,
	)); err != nil {
		s.Close()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	log.Printf("Launched chromium via chromedp (headless=%t, viewport %dx%d)",
		cfg.Headless, cfg.Viewport.Width, cfg.Viewport.Height)
	return s, nil
}

// run executes actions bounded by the session timeout
func (s *ChromedpSession) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	err := chromedp.Run(ctx, actions...)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timeoutError(err)
	}
	return err
}

// Goto navigates the page to url
func (s *ChromedpSession) Goto(url string) error {
	if err := s.run(chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// WaitFor waits until the first element matching sel is visible
func (s *ChromedpSession) WaitFor(sel journey.Selector) error {
	if err := s.run(chromedp.WaitVisible(XPathSelector(sel), chromedp.BySearch)); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// Click clicks the first element matching sel once it is visible
func (s *ChromedpSession) Click(sel journey.Selector) error {
	if err := s.run(chromedp.Click(XPathSelector(sel), chromedp.BySearch)); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Screenshot captures the viewport to path
func (s *ChromedpSession) Screenshot(path string) error {
	var buf []byte
	if err := s.run(chromedp.CaptureScreenshot(&buf)); err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for screenshot: %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot to file: %w", err)
	}
	return nil
}

// Close shuts the browser down (or detaches from a remote one) and
// releases the allocator
func (s *ChromedpSession) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = fmt.Errorf("close chromium: %w", err)
		}
		for _, cancel := range s.cancels {
			cancel()
		}
	})
	return s.closeErr
}

// XPathSelector renders sel as an XPath expression matching the first
// visible-candidate element in document order
func XPathSelector(sel journey.Selector) string {
	lit := xpathLiteral(sel.Text)
	switch sel.Kind {
	case journey.ButtonSelector:
		return fmt.Sprintf("(//button[contains(normalize-space(.), %s)])[1]", lit)
	default:
		return fmt.Sprintf("(//*[not(self::script) and not(self::style)][text()[contains(normalize-space(.), %s)]])[1]", lit)
	}
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
