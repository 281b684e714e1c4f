package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"poelauncher/cmd/ui/dashboard"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const Version = "1.0.0"

var (
	jsonOutput      bool
	skipInteractive bool
	verbose         bool
	configPath      string

	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E94560")).Bold(true)
	tipMsgStyle    = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
	endingMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("#4FBDBA")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const Logo = `
 ___  ___  ___   _                     _
| _ \/ _ \| __| | |   __ _ _  _ _ _  __| |_  ___ _ _
|  _/ (_) | _|  | |__/ _' | || | ' \/ _| ' \/ -_) '_|
|_|  \___/|___| |____\__,_|\_,_|_||_\__|_||_\___|_|
`

var rootCmd = &cobra.Command{
	Use:   "poelauncher",
	Short: "Start Path of Exile together with its companion tools",
	Long: Logo + `
Starts Path of Exile through Steam or the standalone client, together with
Awakened PoE Trade, PoE Lurker and Chaos Recipe Enhancer, and opens FilterBlade
and the trade site if you want.

Install locations are detected automatically from the Windows registry, every
local drive and Steam's library folders. Paths you entered yourself are never
replaced unless you run 'poelauncher detect --force'.`,
	Version: Version,
	Args:    cobra.NoArgs,
	Run:     runRootCommand,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRootCommand(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)
	det := newDetector(logger)

	if jsonOutput || skipInteractive || !isTerminal() {
		report := det.Detect(context.Background(), cfg, false)
		saveConfigOrExit(cfg)
		printReport(report)
		return
	}

	// Log lines on stderr would tear the full-screen view.
	logger.SetOutput(io.Discard)

	final, err := dashboard.Run(cfg, det, newLauncher(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render(fmt.Sprintf("Error running launcher: %v", err)))
		os.Exit(1)
	}
	saveConfigOrExit(final)
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.SetVersionTemplate("poelauncher version {{.Version}}\n")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON (disables interactive mode)")
	rootCmd.PersistentFlags().BoolVar(&skipInteractive, "no-interactive", false, "Skip the interactive screen")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every probe")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (default: per-user config directory)")
}
