package main

import (
	"fmt"
	"io"
	"os"

	"github.com/haukened/rr-robots/internal/robots/common/clock"
	"github.com/haukened/rr-robots/internal/robots/common/log"
	"github.com/haukened/rr-robots/internal/robots/config"
	"github.com/haukened/rr-robots/internal/robots/domain"
	"github.com/haukened/rr-robots/internal/robots/repos/manifest"
	"github.com/haukened/rr-robots/internal/robots/repos/policy"
	"github.com/haukened/rr-robots/internal/robots/repos/policy/lru"
	"github.com/haukened/rr-robots/internal/robots/services/checker"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "rr-robots"
)

// Exit codes: 1 means operational failure, 2 means at least one URL or
// manifest check came out against expectations.
const (
	exitOK        = 0
	exitError     = 1
	exitViolation = 2
)

// Application holds the wired components plus the non-flag CLI arguments.
type Application struct {
	config  *config.AppConfig
	checker *checker.Checker
	args    []string
	stdout  io.Writer
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitError
	}

	// Configure global logging
	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		return exitError
	}

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s <robots.txt> [URL ...]\n", appName)
		fmt.Fprintf(os.Stderr, "Set RRROBOTS_MANIFEST to run a crawl-check manifest instead of URLs.\n")
		return exitError
	}

	log.Info(map[string]any{
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"agent":      cfg.UserAgent,
		"cache_size": cfg.CacheSize,
		"manifest":   cfg.Manifest,
	}, "Starting rr-robots")

	app, err := buildApplication(cfg, args)
	if err != nil {
		log.Error(map[string]any{"error": err}, "Failed to build application")
		return exitError
	}

	code, err := app.Run()
	if err != nil {
		log.Error(map[string]any{"error": err}, "Run failed")
		return exitError
	}
	return code
}

// buildApplication constructs all components and wires them together
func buildApplication(cfg *config.AppConfig, args []string) (*Application, error) {
	// Initialize logger (already configured globally)
	logger := log.GetLogger()

	parser := policy.New(logger, clock.RealClock{})

	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create decision cache: %w", err)
	}
	log.Info(map[string]any{"type": "LRU", "size": cfg.CacheSize}, "Decision cache configured")

	svc := checker.New(checker.Options{
		Parser: parser,
		Cache:  cache,
		Logger: logger,
	})

	return &Application{
		config:  cfg,
		checker: svc,
		args:    args,
		stdout:  os.Stdout,
	}, nil
}

// Run parses the robots.txt named by the first argument and evaluates
// either the manifest (when configured) or the remaining URL arguments.
func (app *Application) Run() (int, error) {
	content, err := readRobots(app.args[0])
	if err != nil {
		return exitError, err
	}

	pol := app.checker.Policy(content, app.config.UserAgent)
	log.Info(map[string]any{
		"file":     app.args[0],
		"agent":    pol.Agent(),
		"matched":  pol.MatchedAgent(),
		"rules":    len(pol.Rules()),
		"sitemaps": len(pol.Sitemaps()),
	}, "Parsed robots.txt")

	if app.config.Manifest != "" {
		return app.runManifest(pol)
	}
	return app.runURLs(pol)
}

// readRobots loads the robots.txt file. A missing file is not an error:
// an unavailable robots.txt means everything is allowed.
func readRobots(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn(map[string]any{"file": path}, "robots.txt not found, allowing everything")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

// runURLs prints one verdict per URL argument.
func (app *Application) runURLs(pol *domain.Policy) (int, error) {
	if len(app.args) < 2 {
		return exitError, fmt.Errorf("no URLs given and no manifest configured")
	}

	code := exitOK
	for _, rawURL := range app.args[1:] {
		d := app.checker.Decide(pol, rawURL)
		fmt.Fprintln(app.stdout, formatDecision(rawURL, d))
		if !d.Allowed {
			code = exitViolation
		}
	}

	if delay, ok := pol.CrawlDelay(); ok {
		fmt.Fprintf(app.stdout, "crawl-delay: %s\n", delay)
	}
	for _, sm := range pol.Sitemaps() {
		fmt.Fprintf(app.stdout, "sitemap: %s\n", sm)
	}
	return code, nil
}

// runManifest evaluates every check in the configured manifest. The
// manifest's agent overrides the configured one so the file is
// self-contained.
func (app *Application) runManifest(pol *domain.Policy) (int, error) {
	m, err := manifest.Load(app.config.Manifest)
	if err != nil {
		return exitError, err
	}
	if !domain.AgentTokensEqual(m.Agent, app.config.UserAgent) {
		log.Info(map[string]any{"agent": m.Agent}, "Manifest overrides configured agent")
		content, err := readRobots(app.args[0])
		if err != nil {
			return exitError, err
		}
		pol = app.checker.Policy(content, m.Agent)
	}

	failures := 0
	for _, check := range m.Checks {
		d := app.checker.Decide(pol, check.URL)
		ok := d.Allowed == (check.Expect == manifest.ExpectAllow)
		status := "PASS"
		if !ok {
			status = "FAIL"
			failures++
		}
		fmt.Fprintf(app.stdout, "%s %s expect=%s got=%s\n", status, check.URL, check.Expect, verdict(d))
	}

	log.Info(map[string]any{
		"manifest": app.config.Manifest,
		"checks":   len(m.Checks),
		"failures": failures,
	}, "Manifest run complete")

	if failures > 0 {
		return exitViolation, nil
	}
	return exitOK, nil
}

// formatDecision renders one URL verdict with its rule provenance.
func formatDecision(rawURL string, d domain.Decision) string {
	if d.ByDefault() {
		return fmt.Sprintf("%s %s (default)", verdict(d), rawURL)
	}
	return fmt.Sprintf("%s %s (line %d: %s)", verdict(d), rawURL, d.Line, d.Text)
}

func verdict(d domain.Decision) string {
	if d.Allowed {
		return "ALLOW"
	}
	return "DISALLOW"
}
