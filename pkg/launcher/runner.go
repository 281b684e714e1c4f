package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Runner starts programs, opens URLs and checks the process table
type Runner interface {
	// Start launches path with args, using the program's own folder as the
	// working directory, and does not wait for it.
	Start(path string, args ...string) error
	// Open hands a URL to the desktop's default handler
	Open(url string) error
	// Running reports whether a process with the given executable name exists
	Running(ctx context.Context, exeName string) bool
}

// OSRunner is the Runner used outside of tests
type OSRunner struct{}

func (OSRunner) Start(path string, args ...string) error {
	cmd := exec.Command(path, args...)
	cmd.Dir = filepath.Dir(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", path, err)
	}
	return cmd.Process.Release()
}

func (OSRunner) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return cmd.Process.Release()
}

func (OSRunner) Running(ctx context.Context, exeName string) bool {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.EqualFold(name, exeName) {
			return true
		}
	}
	return false
}
