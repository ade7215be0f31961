package browser

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/episteme/verification/internal/config"
	"github.com/episteme/verification/internal/journey"
	"github.com/playwright-community/playwright-go"
)

// PlaywrightSession drives a page through playwright-go
type PlaywrightSession struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	page      playwright.Page
	closeOnce sync.Once
	closeErr  error
}

func launchPlaywright(cfg config.RunnerConfig) (*PlaywrightSession, error) {
	if cfg.InstallBrowsers {
		log.Printf("Installing playwright driver and %s...", cfg.Browser)
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{cfg.Browser}}); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	s := &PlaywrightSession{pw: pw}

	var browserType playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		browserType = pw.Firefox
	case config.BrowserWebKit:
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	s.browser, err = browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("launch %s: %w", cfg.Browser, err)
	}

	s.page, err = s.browser.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}

	if err := s.page.SetViewportSize(cfg.Viewport.Width, cfg.Viewport.Height); err != nil {
		s.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	if cfg.Timeout > 0 {
		ms := float64(cfg.Timeout / time.Millisecond)
		s.page.SetDefaultTimeout(ms)
		s.page.SetDefaultNavigationTimeout(ms)
	}

	log.Printf("Launched %s via playwright (headless=%t, viewport %dx%d)",
		cfg.Browser, cfg.Headless, cfg.Viewport.Width, cfg.Viewport.Height)
	return s, nil
}

// Goto navigates the page to url
func (s *PlaywrightSession) Goto(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return playwrightError("navigation failed", err)
	}
	return nil
}

// WaitFor waits until an element matching sel is visible
func (s *PlaywrightSession) WaitFor(sel journey.Selector) error {
	if _, err := s.page.WaitForSelector(PlaywrightSelector(sel)); err != nil {
		return playwrightError("wait failed", err)
	}
	return nil
}

// Click clicks the element matching sel
func (s *PlaywrightSession) Click(sel journey.Selector) error {
	if err := s.page.Locator(PlaywrightSelector(sel)).Click(); err != nil {
		return playwrightError("click failed", err)
	}
	return nil
}

// Screenshot captures the viewport to path
func (s *PlaywrightSession) Screenshot(path string) error {
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		return playwrightError("screenshot failed", err)
	}
	return nil
}

// Close closes the browser and stops the playwright driver
func (s *PlaywrightSession) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close browser: %w", err))
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stop playwright: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// PlaywrightSelector renders sel in Playwright's selector syntax
func PlaywrightSelector(sel journey.Selector) string {
	switch sel.Kind {
	case journey.ButtonSelector:
		return fmt.Sprintf("button:has-text('%s')", escapeSingleQuoted(sel.Text))
	default:
		return "text=" + sel.Text
	}
}

func escapeSingleQuoted(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func playwrightError(what string, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return timeoutError(err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
