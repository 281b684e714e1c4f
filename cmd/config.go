package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"poelauncher/pkg/config"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	configStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#E94560")).Bold(true)
	configLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	configValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	configMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	configSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the launcher configuration",
	Long:  `Show the stored paths and options, change a single value, or print where config.json lives.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(newLogger())
		cfg.ValidateCompanions(config.FileExists)

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			enc.Encode(cfg)
			return
		}

		fmt.Println(configStyle.Render("Game"))
		printConfigRow("Version", cfg.GameVersion)
		printConfigRow("Steam", cfg.SteamPath)
		printConfigRow("Steam install", cfg.SteamPoePath)
		printConfigRow("Standalone", cfg.StandalonePath)

		fmt.Println()
		fmt.Println(configStyle.Render("Companions"))
		for _, comp := range config.Companions {
			state := "off"
			switch {
			case cfg.ShouldStart(comp):
				state = "auto-start"
			case cfg.AutoStart(comp):
				state = "auto-start (executable missing)"
			}
			printConfigRow(comp.DisplayName(), cfg.CompanionPath(comp))
			fmt.Printf("    %s\n", configMutedStyle.Render(state))
		}

		fmt.Println()
		fmt.Println(configStyle.Render("Options"))
		printConfigRow("FilterBlade", fmt.Sprintf("%t", cfg.OpenFilterBlade))
		printConfigRow("Trade site", fmt.Sprintf("%t", cfg.OpenTradeSite))
		printConfigRow("Language", cfg.Language)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Long: fmt.Sprintf(`Change one configuration value and save it.

Keys: %s`, strings.Join(config.SettableKeys(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(newLogger())
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		saveConfigOrExit(cfg)
		fmt.Println(configSuccessStyle.Render(fmt.Sprintf("✓ %s updated", args[0])))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of config.json",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			config.SetConfigPath(configPath)
		}
		fmt.Println(config.GetConfigPath())
	},
}

func printConfigRow(label, value string) {
	if value == "" {
		fmt.Printf("  %-28s %s\n", configLabelStyle.Render(label), configMutedStyle.Render("(not set)"))
		return
	}
	fmt.Printf("  %-28s %s\n", configLabelStyle.Render(label), configValueStyle.Render(value))
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
