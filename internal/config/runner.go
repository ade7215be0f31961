package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Supported browser engines
const (
	EnginePlaywright = "playwright"
	EngineChromedp   = "chromedp"
)

// Supported browsers
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// Defaults for a verification run
const (
	DefaultBaseURL        = "http://localhost:5173/"
	DefaultScreenshotDir  = "verification"
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// Viewport is the browser page size in CSS pixels
type Viewport struct {
	Width  int
	Height int
}

// RunnerConfig holds configuration for a verification run
type RunnerConfig struct {
	BaseURL         string
	ScreenshotDir   string
	Engine          string
	Browser         string
	Headless        bool
	Viewport        Viewport
	Timeout         time.Duration // zero keeps the engine default
	ChromeURL       string        // DevTools endpoint for the chromedp engine
	InstallBrowsers bool
	RecordRuns      bool
	Preflight       bool
}

// DefaultRunnerConfig returns the configuration used when nothing is set
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		BaseURL:       DefaultBaseURL,
		ScreenshotDir: DefaultScreenshotDir,
		Engine:        EnginePlaywright,
		Browser:       BrowserChromium,
		Headless:      true,
		Viewport: Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
	}
}

// LoadRunnerConfig loads and validates runner configuration from
// environment variables
func LoadRunnerConfig(getenv func(string) string) (*RunnerConfig, error) {
	config, err := ReadRunnerConfig(getenv)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ReadRunnerConfig parses environment variables over the defaults without
// validating the result, so callers can apply overrides before Validate
func ReadRunnerConfig(getenv func(string) string) (*RunnerConfig, error) {
	config := DefaultRunnerConfig()

	if v := getenv("EPISTEME_BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := getenv("EPISTEME_SCREENSHOT_DIR"); v != "" {
		config.ScreenshotDir = v
	}
	if v := getenv("EPISTEME_ENGINE"); v != "" {
		config.Engine = v
	}
	if v := getenv("EPISTEME_BROWSER"); v != "" {
		config.Browser = v
	}
	config.ChromeURL = getenv("EPISTEME_CHROME_URL")

	var err error
	if config.Headless, err = parseBool(getenv, "EPISTEME_HEADLESS", config.Headless); err != nil {
		return nil, err
	}
	if config.RecordRuns, err = parseBool(getenv, "EPISTEME_RECORD_RUNS", false); err != nil {
		return nil, err
	}
	if config.Preflight, err = parseBool(getenv, "EPISTEME_PREFLIGHT", false); err != nil {
		return nil, err
	}
	if config.InstallBrowsers, err = parseBool(getenv, "EPISTEME_INSTALL_BROWSERS", false); err != nil {
		return nil, err
	}

	if v := getenv("EPISTEME_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("EPISTEME_TIMEOUT must be a duration: %w", err)
		}
		config.Timeout = timeout
	}

	return &config, nil
}

// Validate checks that the configuration describes a runnable verification
func (c *RunnerConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base URL %q is invalid: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.ScreenshotDir == "" {
		return fmt.Errorf("screenshot directory is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport %dx%d is invalid", c.Viewport.Width, c.Viewport.Height)
	}

	switch c.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return fmt.Errorf("unsupported browser %q", c.Browser)
	}

	switch c.Engine {
	case EnginePlaywright:
		if c.ChromeURL != "" {
			return fmt.Errorf("a DevTools URL requires the %s engine", EngineChromedp)
		}
	case EngineChromedp:
		if c.Browser != BrowserChromium {
			return fmt.Errorf("the %s engine only drives %s", EngineChromedp, BrowserChromium)
		}
	default:
		return fmt.Errorf("unsupported engine %q", c.Engine)
	}

	return nil
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
