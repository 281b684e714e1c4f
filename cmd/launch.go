package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"poelauncher/pkg/launcher"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	skipDetect bool

	launchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the game, the selected companions and websites",
	Long: `Starts Path of Exile with the configured game version, then every companion
marked for auto-start, then the selected websites.

Before launching, empty paths are filled in by a detection pass unless
--no-detect is given.`,
	Args: cobra.NoArgs,
	Run:  runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !skipDetect {
		report := newDetector(logger).Detect(ctx, cfg, false)
		if len(report.Applied) > 0 {
			saveConfigOrExit(cfg)
		}
	}

	summary := newLauncher(logger).Launch(ctx, cfg)
	printSummary(summary)
	if !summary.OK() {
		os.Exit(1)
	}
}

func printSummary(s launcher.Summary) {
	if jsonOutput {
		errs := make([]string, 0, len(s.Errors))
		for _, err := range s.Errors {
			errs = append(errs, err.Error())
		}
		launched := s.Launched
		if launched == nil {
			launched = []string{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"launched": launched,
			"errors":   errs,
		})
		return
	}

	for _, name := range s.Launched {
		fmt.Println(launchedStyle.Render("✓ " + name))
	}
	for _, err := range s.Errors {
		fmt.Fprintln(os.Stderr, failedStyle.Render("✗ "+err.Error()))
	}
}

func init() {
	launchCmd.Flags().BoolVar(&skipDetect, "no-detect", false, "Launch with the stored paths without detecting first")
}
