package detector

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// uninstallRoot is one registry location listing installed applications
type uninstallRoot struct {
	hive Hive
	path string
}

// uninstallRoots are scanned in this order; per-user installs win over
// machine-wide ones.
var uninstallRoots = []uninstallRoot{
	{CurrentUser, `Software\Microsoft\Windows\CurrentVersion\Uninstall`},
	{LocalMachine, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
	{LocalMachine, `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
}

// steamClientValue is a Valve registry value pointing at the Steam client
type steamClientValue struct {
	hive Hive
	path string
	name string
	// isDir is set when the value names the install folder rather than steam.exe
	isDir bool
}

var steamClientValues = []steamClientValue{
	{CurrentUser, `Software\Valve\Steam`, "SteamExe", false},
	{CurrentUser, `Software\Valve\Steam`, "SteamPath", true},
	{LocalMachine, `SOFTWARE\WOW6432Node\Valve\Steam`, "InstallPath", true},
	{LocalMachine, `SOFTWARE\Valve\Steam`, "InstallPath", true},
}

// uninstallEntry holds the values read from one Uninstall subkey
type uninstallEntry struct {
	DisplayName     string
	InstallLocation string
	UninstallString string
}

// RegistryScanner finds installs through the Windows "installed programs" registry
type RegistryScanner struct {
	store  Store
	fs     *FSReader
	logger *log.Logger
}

// NewRegistryScanner creates a scanner over store
func NewRegistryScanner(store Store, fsr *FSReader, logger *log.Logger) *RegistryScanner {
	return &RegistryScanner{store: store, fs: fsr, logger: logger}
}

// Scan walks the uninstall roots and classifies every entry. A root that
// cannot be enumerated is skipped. On platforms without a registry the
// result is empty and the error nil.
func (s *RegistryScanner) Scan(ctx context.Context) (Result, error) {
	found := Result{}

	for _, root := range uninstallRoots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		names, err := s.store.SubKeys(root.hive, root.path)
		if errors.Is(err, ErrUnsupported) {
			return found, nil
		}
		if err != nil {
			s.logger.Debug("skipping registry root", "root", root.hive.String()+`\`+root.path, "error", err)
			continue
		}

		for _, name := range names {
			entry, ok := s.readEntry(root.hive, root.path+`\`+name)
			if !ok {
				continue
			}
			k, ok := classify(entry.DisplayName, entry.UninstallString)
			if !ok || found.Has(k) {
				continue
			}
			if path := s.resolve(k, entry); path != "" {
				found.SetIfAbsent(k, path)
				s.logger.Debug("found in registry", "key", k, "path", path, "entry", entry.DisplayName)
			}
		}
	}

	if !found.Has(KeySteam) {
		if path := s.steamFromValveKeys(); path != "" {
			found.SetIfAbsent(KeySteam, path)
		}
	}

	return found, nil
}

// readEntry reads the display name and the optional location values of one
// entry. Entries without a display name are ignored.
func (s *RegistryScanner) readEntry(hive Hive, path string) (uninstallEntry, bool) {
	name, err := s.store.StringValue(hive, path, "DisplayName")
	if err != nil || strings.TrimSpace(name) == "" {
		return uninstallEntry{}, false
	}

	entry := uninstallEntry{DisplayName: strings.TrimSpace(name)}
	if v, err := s.store.StringValue(hive, path, "InstallLocation"); err == nil {
		entry.InstallLocation = strings.Trim(strings.TrimSpace(v), `"`)
	}
	if v, err := s.store.StringValue(hive, path, "UninstallString"); err == nil {
		entry.UninstallString = strings.TrimSpace(v)
	}
	return entry, true
}

// resolve turns a classified entry into an existing executable path
func (s *RegistryScanner) resolve(k Key, entry uninstallEntry) string {
	dir := entry.InstallLocation
	if dir == "" {
		dir = uninstallDir(entry.UninstallString)
	}
	return findExecutable(s.fs, dir, k)
}

func (s *RegistryScanner) steamFromValveKeys() string {
	for _, v := range steamClientValues {
		value, err := s.store.StringValue(v.hive, v.path, v.name)
		if err != nil || value == "" {
			continue
		}
		candidate := Normalize(value)
		if v.isDir {
			candidate = filepath.Join(candidate, SteamExe)
		}
		if s.fs.Has(candidate) {
			return candidate
		}
	}
	return ""
}

// classify maps a display name to a key by keyword matching. The uninstall
// command is consulted to tell a Steam copy of the game from the standalone one.
func classify(displayName, uninstallString string) (Key, bool) {
	name := strings.ToLower(displayName)
	uninstall := strings.ToLower(uninstallString)

	switch {
	case strings.Contains(name, "path of exile"):
		if strings.Contains(name, "steam") || strings.Contains(uninstall, "steam://") {
			return KeySteamPoe, true
		}
		return KeyStandalone, true
	case strings.Contains(name, "steam") && !strings.Contains(name, "exile"):
		return KeySteam, true
	case strings.Contains(name, "awakened") && strings.Contains(name, "poe"):
		return KeyAwakened, true
	case strings.Contains(name, "lurker") && strings.Contains(name, "poe"):
		return KeyLurker, true
	case strings.Contains(name, "chaos recipe"):
		return KeyChaosRecipe, true
	}
	return "", false
}

// uninstallDir extracts the directory of the executable named by an
// uninstall command such as `"C:\App\Uninstall App.exe" /currentuser`.
func uninstallDir(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}

	var exe string
	if strings.HasPrefix(command, `"`) {
		end := strings.Index(command[1:], `"`)
		if end < 0 {
			return ""
		}
		exe = command[1 : end+1]
	} else {
		lower := strings.ToLower(command)
		idx := strings.Index(lower, ".exe")
		if idx < 0 {
			return ""
		}
		exe = command[:idx+len(".exe")]
	}

	if strings.HasPrefix(strings.ToLower(exe), "msiexec") {
		return ""
	}
	return filepath.Dir(Normalize(exe))
}
