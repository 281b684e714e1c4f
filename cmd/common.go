package cmd

import (
	"fmt"
	"os"
	"poelauncher/pkg/config"
	"poelauncher/pkg/detector"
	"poelauncher/pkg/launcher"

	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger shared by every command
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "poelauncher",
		Level:  level,
	})
}

// loadConfig loads the configuration. A corrupt file is reported once and
// the defaults are used instead.
func loadConfig(logger *log.Logger) *config.Config {
	if configPath != "" {
		config.SetConfigPath(configPath)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("using default settings", "error", err)
	}
	return cfg
}

// saveConfigOrExit persists cfg and exits with an error message if it fails
func saveConfigOrExit(cfg *config.Config) {
	if err := cfg.SaveConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render(fmt.Sprintf("Error saving configuration: %v", err)))
		os.Exit(1)
	}
}

func newDetector(logger *log.Logger) *detector.Detector {
	return detector.New(detector.WithLogger(logger))
}

func newLauncher(logger *log.Logger) *launcher.Launcher {
	return launcher.New(launcher.WithLogger(logger))
}
