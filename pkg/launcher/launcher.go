package launcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"poelauncher/pkg/config"

	"github.com/charmbracelet/log"
)

// ErrNotFound is wrapped by launch errors for paths that do not exist
var ErrNotFound = errors.New("file not found")

// Summary lists what a launch started and what went wrong
type Summary struct {
	Launched []string
	Errors   []error
}

// OK reports whether nothing failed
func (s Summary) OK() bool {
	return len(s.Errors) == 0
}

// Launcher starts the game, the companions and the websites selected in a config
type Launcher struct {
	runner       Runner
	exists       func(path string) bool
	logger       *log.Logger
	steamTimeout time.Duration
	pollInterval time.Duration
	delay        time.Duration
}

// Option configures a Launcher
type Option func(*Launcher)

func WithRunner(r Runner) Option {
	return func(l *Launcher) { l.runner = r }
}

func WithFileCheck(exists func(path string) bool) Option {
	return func(l *Launcher) { l.exists = exists }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// WithTiming overrides the Steam start timeout, its poll interval and the
// pause between the game and the companions.
func WithTiming(steamTimeout, pollInterval, delay time.Duration) Option {
	return func(l *Launcher) {
		l.steamTimeout = steamTimeout
		l.pollInterval = pollInterval
		l.delay = delay
	}
}

// New creates a Launcher
func New(opts ...Option) *Launcher {
	l := &Launcher{
		runner:       OSRunner{},
		exists:       config.FileExists,
		logger:       log.Default(),
		steamTimeout: config.DefaultSteamStartTimeout,
		pollInterval: config.DefaultSteamPollInterval,
		delay:        config.DefaultLaunchDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts everything cfg asks for. Failures are collected in the
// summary; one failing program does not stop the others.
func (l *Launcher) Launch(ctx context.Context, cfg *config.Config) Summary {
	var s Summary

	if cfg.GameVersion == config.GameVersionStandalone {
		l.launchStandalone(cfg, &s)
	} else {
		l.launchSteamGame(ctx, cfg, &s)
	}

	if l.delay > 0 {
		if err := sleep(ctx, l.delay); err != nil {
			s.Errors = append(s.Errors, err)
			return s
		}
	}

	// A companion flagged for auto-start whose path no longer exists is
	// skipped, not reported: the flag is stale, not a launch failure.
	cfg.ValidateCompanions(l.exists)
	for _, comp := range config.Companions {
		if !cfg.AutoStart(comp) {
			continue
		}
		if !cfg.ShouldStart(comp) {
			l.logger.Info("skipping companion with missing executable", "program", comp.DisplayName(), "path", cfg.CompanionPath(comp))
			continue
		}
		path := cfg.CompanionPath(comp)
		if l.runner.Running(ctx, filepath.Base(path)) {
			l.logger.Debug("already running", "program", comp.DisplayName())
			continue
		}
		if err := l.runner.Start(path); err != nil {
			s.Errors = append(s.Errors, fmt.Errorf("%s: %w", comp.DisplayName(), err))
			continue
		}
		s.Launched = append(s.Launched, comp.DisplayName())
	}

	if cfg.OpenFilterBlade {
		l.openSite(config.FilterBladeURL, "FilterBlade", &s)
	}
	if cfg.OpenTradeSite {
		l.openSite(config.TradeSiteURL, "Trade Site", &s)
	}

	return s
}

func (l *Launcher) launchStandalone(cfg *config.Config, s *Summary) {
	path := cfg.StandalonePath
	if !l.exists(path) {
		s.Errors = append(s.Errors, fmt.Errorf("Path of Exile: %w: %q", ErrNotFound, path))
		return
	}
	if err := l.runner.Start(path); err != nil {
		s.Errors = append(s.Errors, fmt.Errorf("Path of Exile: %w", err))
		return
	}
	s.Launched = append(s.Launched, "Path of Exile (Standalone)")
}

func (l *Launcher) launchSteamGame(ctx context.Context, cfg *config.Config, s *Summary) {
	steamPath := cfg.SteamPath
	if !l.exists(steamPath) {
		s.Errors = append(s.Errors, fmt.Errorf("Steam: %w: %q", ErrNotFound, steamPath))
		return
	}

	exeName := filepath.Base(steamPath)
	if !l.runner.Running(ctx, exeName) {
		if err := l.runner.Start(steamPath); err != nil {
			s.Errors = append(s.Errors, fmt.Errorf("Steam: %w", err))
			return
		}
		if !l.waitForProcess(ctx, exeName) {
			l.logger.Warn("Steam did not report running in time, launching game anyway", "timeout", l.steamTimeout)
		}
	}

	gameURL := "steam://rungameid/" + config.SteamAppID
	if err := l.runner.Open(gameURL); err != nil {
		l.logger.Debug("steam URL failed, falling back to -applaunch", "error", err)
		if err := l.runner.Start(steamPath, "-applaunch", config.SteamAppID); err != nil {
			s.Errors = append(s.Errors, fmt.Errorf("Path of Exile (Steam): %w", err))
			return
		}
	}
	s.Launched = append(s.Launched, "Path of Exile (Steam)")
}

// waitForProcess polls until exeName is running or the Steam timeout passes
func (l *Launcher) waitForProcess(ctx context.Context, exeName string) bool {
	ctx, cancel := context.WithTimeout(ctx, l.steamTimeout)
	defer cancel()

	for {
		if l.runner.Running(ctx, exeName) {
			return true
		}
		if err := sleep(ctx, l.pollInterval); err != nil {
			return false
		}
	}
}

func (l *Launcher) openSite(url, name string, s *Summary) {
	if err := l.runner.Open(url); err != nil {
		s.Errors = append(s.Errors, fmt.Errorf("%s: %w", name, err))
		return
	}
	s.Launched = append(s.Launched, name)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
