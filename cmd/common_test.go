package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"poelauncher/pkg/config"
	"poelauncher/pkg/detector"

	"github.com/charmbracelet/log"
)

func TestReportJSON(t *testing.T) {
	report := detector.Report{
		Found: detector.Result{detector.KeySteam: `C:\Steam\steam.exe`},
		Stages: []detector.StageOutcome{
			{Stage: detector.StageRegistry},
			{Stage: detector.StageVolumes, Err: errors.New("stage volumes: boom")},
		},
	}

	out := reportJSON(report)

	if out.Applied == nil || len(out.Applied) != 0 {
		t.Errorf("Expected empty applied list, got %v", out.Applied)
	}
	if got := out.Failed[detector.StageVolumes]; got != "stage volumes: boom" {
		t.Errorf("Expected failed volume stage, got %q", got)
	}
	if _, ok := out.Failed[detector.StageRegistry]; ok {
		t.Error("Expected successful stage to be left out")
	}
	if out.Found[detector.KeySteam] != `C:\Steam\steam.exe` {
		t.Errorf("Expected found paths to pass through, got %v", out.Found)
	}
}

func TestLoadConfigCorruptUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	configPath = path
	t.Cleanup(func() {
		configPath = ""
		config.SetConfigPath("")
	})

	cfg := loadConfig(log.New(io.Discard))
	if cfg.GameVersion != config.DefaultGameVersion {
		t.Errorf("Expected default game version, got %q", cfg.GameVersion)
	}
	if config.GetConfigPath() != path {
		t.Errorf("Expected --config to override the path, got %q", config.GetConfigPath())
	}
}
