package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"poelauncher/cmd/ui/detection"
	"poelauncher/cmd/ui/spinner"
	"poelauncher/pkg/config"
	"poelauncher/pkg/detector"

	"github.com/spf13/cobra"
)

var forceDetect bool

// detectCmd runs one detection pass and stores what it found
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect installed programs and update the configuration",
	Long: `Searches the Windows registry, every local drive and Steam's library folders
for Steam, Path of Exile and the companion tools.

By default only empty paths are filled in. With --force every detected path
replaces the configured one.`,
	Args: cobra.NoArgs,
	Run:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)
	det := newDetector(logger)

	if jsonOutput || skipInteractive || !isTerminal() {
		report := det.Detect(context.Background(), cfg, forceDetect)
		saveConfigOrExit(cfg)
		printReport(report)
		return
	}

	// Apply to a copy so nothing changes unless the user confirms.
	preview := cfg.Clone()
	var report detector.Report
	proceed, err := spinner.Run("Searching for installed programs...", func() {
		report = det.Detect(context.Background(), preview, forceDetect)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render(err.Error()))
	}
	if !proceed {
		fmt.Println("Cancelled.")
		return
	}

	confirmed, err := detection.ShowDetectionResults(report, forceDetect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render(fmt.Sprintf("Error showing detection results: %v", err)))
		os.Exit(1)
	}

	if !confirmed {
		fmt.Println("Configuration left unchanged.")
		return
	}

	saveConfigOrExit(preview)
	fmt.Printf("\n%s\n", endingMsgStyle.Render("Configuration saved to "+config.GetConfigPath()))
	fmt.Printf("%s\n", tipMsgStyle.Render("Tip: run 'poelauncher launch' to start everything"))
}

// printReport writes the result of a non-interactive pass to stdout
func printReport(report detector.Report) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(reportJSON(report))
		return
	}

	fmt.Println(detection.Summary(report))
	for _, k := range detector.AllKeys {
		if path, ok := report.Found[k]; ok {
			fmt.Printf("  %-28s %s\n", k.DisplayName(), path)
		}
	}
	for _, s := range report.Failed() {
		fmt.Fprintf(os.Stderr, "  stage %s failed: %v\n", s.Stage, s.Err)
	}
}

type reportOutput struct {
	Found   detector.Result   `json:"found"`
	Applied []detector.Key    `json:"applied"`
	Failed  map[string]string `json:"failed_stages,omitempty"`
}

func reportJSON(report detector.Report) reportOutput {
	out := reportOutput{Found: report.Found, Applied: report.Applied}
	if out.Applied == nil {
		out.Applied = []detector.Key{}
	}
	for _, s := range report.Failed() {
		if out.Failed == nil {
			out.Failed = map[string]string{}
		}
		out.Failed[s.Stage] = s.Err.Error()
	}
	return out
}

func init() {
	detectCmd.Flags().BoolVarP(&forceDetect, "force", "f", false, "Replace configured paths with detected ones")
}
