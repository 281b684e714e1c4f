package detector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// VolumeLister enumerates the mounted local volumes as root paths (e.g. `C:\`)
type VolumeLister interface {
	Volumes() ([]string, error)
}

// DefaultVolumeLister returns the fixed-drive lister of the running OS, or
// one answering ErrUnsupported.
func DefaultVolumeLister() VolumeLister {
	return platformVolumes()
}

type unsupportedVolumes struct{}

func (unsupportedVolumes) Volumes() ([]string, error) {
	return nil, ErrUnsupported
}

// pathTemplates are volume-relative, slash-separated candidate locations
type pathTemplates struct {
	key       Key
	templates []string
}

// volumeTemplates is probed in this order: keys first, then volumes, then
// each key's templates.
var volumeTemplates = []pathTemplates{
	{KeySteam, []string{
		"Program Files (x86)/Steam/steam.exe",
		"Program Files/Steam/steam.exe",
		"Steam/steam.exe",
	}},
	{KeyStandalone, []string{
		"Program Files (x86)/Grinding Gear Games/Path of Exile/PathOfExile.exe",
		"Program Files/Grinding Gear Games/Path of Exile/PathOfExile.exe",
		"Games/Path of Exile/PathOfExile.exe",
		"Path of Exile/PathOfExile.exe",
	}},
	{KeySteamPoe, []string{
		"Program Files (x86)/Steam/steamapps/common/Path of Exile/PathOfExile.exe",
		"SteamLibrary/steamapps/common/Path of Exile/PathOfExile.exe",
	}},
	{KeyAwakened, []string{
		"Program Files/Awakened PoE Trade/Awakened PoE Trade.exe",
	}},
	{KeyLurker, []string{
		"Program Files/PoeLurker/PoeLurker.exe",
	}},
	{KeyChaosRecipe, []string{
		"Program Files/ChaosRecipeEnhancer/ChaosRecipeEnhancer.exe",
	}},
}

// profileLocation is a candidate relative to %LOCALAPPDATA%. When
// versionPrefix is set, rel names a folder whose subdirectories starting
// with the prefix are searched in lexical order for exe.
type profileLocation struct {
	key           Key
	rel           string
	versionPrefix string
	exe           string
}

var profileLocations = []profileLocation{
	{key: KeyAwakened, rel: "Programs/Awakened PoE Trade/Awakened PoE Trade.exe"},
	{key: KeyLurker, rel: "PoeLurker", versionPrefix: "app-", exe: "PoeLurker.exe"},
	{key: KeyChaosRecipe, rel: "Programs/ChaosRecipeEnhancer/ChaosRecipeEnhancer.exe"},
	{key: KeyChaosRecipe, rel: "ChaosRecipeEnhancer/ChaosRecipeEnhancer.exe"},
}

// VolumeScanner probes fixed path templates on every local volume, then a
// few per-user install locations.
type VolumeScanner struct {
	volumes    VolumeLister
	fs         *FSReader
	logger     *log.Logger
	profileDir string
}

// NewVolumeScanner creates a scanner. profileDir is the per-user application
// data folder; empty means %LOCALAPPDATA% (or ~/AppData/Local).
func NewVolumeScanner(volumes VolumeLister, fsr *FSReader, logger *log.Logger, profileDir string) *VolumeScanner {
	return &VolumeScanner{volumes: volumes, fs: fsr, logger: logger, profileDir: profileDir}
}

// Scan probes the keys in pending. On platforms without volume enumeration
// the result is empty and the error nil.
func (s *VolumeScanner) Scan(ctx context.Context, pending []Key) (Result, error) {
	found := Result{}
	if len(pending) == 0 {
		return found, nil
	}

	vols, err := s.volumes.Volumes()
	if errors.Is(err, ErrUnsupported) {
		return found, nil
	}
	if err != nil {
		s.logger.Debug("volume enumeration failed", "error", err)
		vols = nil
	}

	want := make(map[Key]bool, len(pending))
	for _, k := range pending {
		want[k] = true
	}

	for _, entry := range volumeTemplates {
		if !want[entry.key] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if path := s.sweep(vols, entry.templates); path != "" {
			found.SetIfAbsent(entry.key, path)
			s.logger.Debug("found on volume", "key", entry.key, "path", path)
		}
	}

	base := s.profileBase()
	if base == "" {
		return found, nil
	}
	for _, loc := range profileLocations {
		if !want[loc.key] || found.Has(loc.key) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if path := s.probeProfile(base, loc); path != "" {
			found.SetIfAbsent(loc.key, path)
			s.logger.Debug("found in user profile", "key", loc.key, "path", path)
		}
	}

	return found, nil
}

// sweep returns the first existing template, volumes outermost
func (s *VolumeScanner) sweep(vols, templates []string) string {
	for _, vol := range vols {
		for _, tpl := range templates {
			candidate := filepath.Join(vol, filepath.FromSlash(tpl))
			if s.fs.Has(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func (s *VolumeScanner) probeProfile(base string, loc profileLocation) string {
	if loc.versionPrefix == "" {
		candidate := filepath.Join(base, filepath.FromSlash(loc.rel))
		if s.fs.Has(candidate) {
			return candidate
		}
		return ""
	}

	parent := filepath.Join(base, filepath.FromSlash(loc.rel))
	for _, dir := range s.fs.SubDirs(parent) {
		if !strings.HasPrefix(strings.ToLower(dir), loc.versionPrefix) {
			continue
		}
		candidate := filepath.Join(parent, dir, loc.exe)
		if s.fs.Has(candidate) {
			return candidate
		}
	}
	return ""
}

func (s *VolumeScanner) profileBase() string {
	if s.profileDir != "" {
		return s.profileDir
	}
	if base := os.Getenv("LOCALAPPDATA"); base != "" {
		return base
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "AppData", "Local")
}
