package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/episteme/verification/internal/browser"
	internalcli "github.com/episteme/verification/internal/cli"
	"github.com/episteme/verification/internal/config"
	"github.com/episteme/verification/internal/database"
	"github.com/episteme/verification/internal/fixture"
	"github.com/episteme/verification/internal/repository"
	"github.com/episteme/verification/internal/services"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

const probeTimeout = 5 * time.Second

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "base-url", Usage: "address of the Episteme app"},
		&cli.StringFlag{Name: "output-dir", Usage: "directory for screenshots"},
		&cli.StringFlag{Name: "engine", Usage: "browser engine (playwright|chromedp)"},
		&cli.StringFlag{Name: "browser", Usage: "browser (chromium|firefox|webkit)"},
		&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
		&cli.DurationFlag{Name: "timeout", Usage: "per-action timeout (0 keeps the engine default)"},
		&cli.StringFlag{Name: "chrome-url", Usage: "DevTools URL of a running Chrome (chromedp only)"},
		&cli.BoolFlag{Name: "record", Usage: "record the run in Postgres"},
		&cli.BoolFlag{Name: "preflight", Usage: "check the app responds before launching a browser"},
		&cli.BoolFlag{Name: "install", Usage: "install the playwright driver and browser first"},
	}
}

// loadRunnerConfig merges flags over environment configuration and
// validates the result
func loadRunnerConfig(c *cli.Context, getenv func(string) string) (config.RunnerConfig, error) {
	cfg, err := config.ReadRunnerConfig(getenv)
	if err != nil {
		return config.RunnerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("output-dir") {
		cfg.ScreenshotDir = c.String("output-dir")
	}
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if c.IsSet("browser") {
		cfg.Browser = c.String("browser")
	}
	if c.IsSet("headed") {
		cfg.Headless = !c.Bool("headed")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("chrome-url") {
		cfg.ChromeURL = c.String("chrome-url")
	}
	if c.IsSet("record") {
		cfg.RecordRuns = c.Bool("record")
	}
	if c.IsSet("preflight") {
		cfg.Preflight = c.Bool("preflight")
	}
	if c.IsSet("install") {
		cfg.InstallBrowsers = c.Bool("install")
	}

	if err := cfg.Validate(); err != nil {
		return config.RunnerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return *cfg, nil
}

func runAction(c *cli.Context) error {
	cfg, err := loadRunnerConfig(c, os.Getenv)
	if err != nil {
		return err
	}

	var runs services.RunRepository
	if cfg.RecordRuns {
		if err := database.Connect(os.Getenv); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		log.Println("Connected to database successfully")

		if err := database.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		runs = repository.NewRunRepository()
	}

	var probe services.TargetProbe
	if cfg.Preflight {
		probe = services.NewTargetProbe(probeTimeout)
	}

	svc := services.NewVerificationService(cfg, browser.Launch, runs, probe)
	return internalcli.RunVerify(c.Context, svc)
}

// RunCommand returns the run command
func RunCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Drive the Episteme journey and capture screenshots",
		Flags:  runFlags(),
		Action: action,
	}
}

// FixtureCommand returns the fixture command
func FixtureCommand() *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Serve a local imitation of the Episteme journey",
		Action: func(c *cli.Context) error {
			handler, err := fixture.NewHandler(fixture.DefaultJourney())
			if err != nil {
				return fmt.Errorf("failed to create fixture handler: %w", err)
			}

			return internalcli.RunFixture(internalcli.FixtureDependencies{
				FixtureConfig:  config.LoadFixtureConfig(os.Getenv),
				FixtureHandler: handler,
			})
		},
	}
}

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded verification runs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to show"},
		},
		Action: func(c *cli.Context) error {
			if err := database.Connect(os.Getenv); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			return internalcli.PrintHistory(os.Stdout, repository.NewRunRepository(), c.Int("limit"))
		},
	}
}

// newApp builds the CLI; run handles both the bare invocation and the
// run command
func newApp(run cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:    "verify-episteme",
		Usage:   "Smoke-test the Episteme learning journey in a real browser",
		Version: version,
		Flags:   runFlags(),
		Action:  run,
		Commands: []*cli.Command{
			RunCommand(run),
			FixtureCommand(),
			HistoryCommand(),
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := newApp(runAction)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
