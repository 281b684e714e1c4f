package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

// ErrCorruptConfig is returned by LoadConfig when the config file exists but
// cannot be read or parsed. The returned Config holds the defaults.
var ErrCorruptConfig = errors.New("config file is corrupt")

// Companion identifies one of the helper programs started next to the game
type Companion string

const (
	CompanionAwakened    Companion = "awakened"
	CompanionLurker      Companion = "lurker"
	CompanionChaosRecipe Companion = "chaos_recipe"
)

// Companions lists every companion in display order
var Companions = []Companion{CompanionAwakened, CompanionLurker, CompanionChaosRecipe}

// DisplayName returns the human readable program name
func (c Companion) DisplayName() string {
	switch c {
	case CompanionAwakened:
		return "Awakened PoE Trade"
	case CompanionLurker:
		return "PoE Lurker"
	case CompanionChaosRecipe:
		return "Chaos Recipe Enhancer"
	default:
		return string(c)
	}
}

// Config is the persisted launcher configuration.
//
// SteamPoePath caches where the Steam copy of the game lives. Detection owns
// it; it is never edited through Set.
type Config struct {
	GameVersion     string `json:"game_version"`
	SteamPath       string `json:"steam_path"`
	StandalonePath  string `json:"standalone_path"`
	AwakenedPath    string `json:"awakened_path"`
	LurkerPath      string `json:"lurker_path"`
	ChaosRecipePath string `json:"chaos_recipe_path"`

	StartAwakened    bool `json:"start_awakened"`
	StartLurker      bool `json:"start_lurker"`
	StartChaosRecipe bool `json:"start_chaos_recipe"`
	OpenFilterBlade  bool `json:"open_filterblade"`
	OpenTradeSite    bool `json:"open_trade_site"`

	Language     string `json:"language"`
	SteamPoePath string `json:"steam_poe_path"`

	// eligible holds the companions whose path resolved to an existing file
	// during the last ValidateCompanions call.
	eligible map[Companion]bool
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		GameVersion: DefaultGameVersion,
		Language:    DefaultLanguage,
	}
}

var configPathOverride string

// SetConfigPath makes GetConfigPath return path. An empty path restores the
// platform default.
func SetConfigPath(path string) {
	configPathOverride = path
}

// GetConfigPath returns the location of config.json: %LOCALAPPDATA%\PoELauncher
// on Windows and $XDG_CONFIG_HOME/PoeLauncher elsewhere.
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	homeDir, _ := os.UserHomeDir()

	if runtime.GOOS == "windows" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(base, WindowsConfigDir, LocalConfigFile)
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(base, UnixConfigDir, LocalConfigFile)
}

// LoadConfig reads the config file. A missing file yields the defaults with no
// error. An unreadable or malformed file yields the defaults together with an
// error wrapping ErrCorruptConfig, so callers can report it and carry on.
func LoadConfig() (*Config, error) {
	configPath := GetConfigPath()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("%w: failed to read %s: %v", ErrCorruptConfig, configPath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %s: %v", ErrCorruptConfig, configPath, err)
	}
	return cfg, nil
}

// Parse decodes a config document. Comments and trailing commas are accepted,
// unknown keys are ignored and absent keys keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if !validGameVersion(cfg.GameVersion) {
		cfg.GameVersion = DefaultGameVersion
	}
	if !validLanguage(cfg.Language) {
		cfg.Language = DefaultLanguage
	}
	return cfg, nil
}

// SaveConfig writes the config to GetConfigPath, creating the directory
func (c *Config) SaveConfig() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, PermDirectory); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, PermConfigFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Clone returns a deep copy, including the eligibility state
func (c *Config) Clone() *Config {
	out := *c
	if c.eligible != nil {
		out.eligible = make(map[Companion]bool, len(c.eligible))
		for k, v := range c.eligible {
			out.eligible[k] = v
		}
	}
	return &out
}

// CompanionPath returns the configured executable path of a companion
func (c *Config) CompanionPath(comp Companion) string {
	switch comp {
	case CompanionAwakened:
		return c.AwakenedPath
	case CompanionLurker:
		return c.LurkerPath
	case CompanionChaosRecipe:
		return c.ChaosRecipePath
	}
	return ""
}

// AutoStart returns the persisted auto-start flag of a companion
func (c *Config) AutoStart(comp Companion) bool {
	switch comp {
	case CompanionAwakened:
		return c.StartAwakened
	case CompanionLurker:
		return c.StartLurker
	case CompanionChaosRecipe:
		return c.StartChaosRecipe
	}
	return false
}

// SetAutoStart updates the persisted auto-start flag of a companion
func (c *Config) SetAutoStart(comp Companion, on bool) {
	switch comp {
	case CompanionAwakened:
		c.StartAwakened = on
	case CompanionLurker:
		c.StartLurker = on
	case CompanionChaosRecipe:
		c.StartChaosRecipe = on
	}
}

// ValidateCompanions re-checks every companion path with exists and records
// which companions are eligible for auto-start. The persisted flags are left
// alone: a stale true flag stays on disk and is ignored by ShouldStart until
// the path resolves again.
func (c *Config) ValidateCompanions(exists func(path string) bool) {
	c.eligible = make(map[Companion]bool, len(Companions))
	for _, comp := range Companions {
		p := strings.TrimSpace(c.CompanionPath(comp))
		c.eligible[comp] = p != "" && exists(p)
	}
}

// Eligible reports whether the companion path existed at the last validation
func (c *Config) Eligible(comp Companion) bool {
	return c.eligible[comp]
}

// ShouldStart reports whether a companion is both flagged and eligible
func (c *Config) ShouldStart(comp Companion) bool {
	return c.AutoStart(comp) && c.Eligible(comp)
}

// FileExists is the default existence check used for validation
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// settableKeys maps the JSON field names accepted by Set to their setters.
// steam_poe_path is intentionally absent.
var settableKeys = map[string]func(c *Config, value string) error{
	"game_version": func(c *Config, v string) error {
		if !validGameVersion(v) {
			return fmt.Errorf("invalid game_version %q (expected %q or %q)", v, GameVersionSteam, GameVersionStandalone)
		}
		c.GameVersion = v
		return nil
	},
	"language": func(c *Config, v string) error {
		if !validLanguage(v) {
			return fmt.Errorf("invalid language %q (expected %q or %q)", v, LanguageEnglish, LanguageGerman)
		}
		c.Language = v
		return nil
	},
	"steam_path":         func(c *Config, v string) error { c.SteamPath = v; return nil },
	"standalone_path":    func(c *Config, v string) error { c.StandalonePath = v; return nil },
	"awakened_path":      func(c *Config, v string) error { c.AwakenedPath = v; return nil },
	"lurker_path":        func(c *Config, v string) error { c.LurkerPath = v; return nil },
	"chaos_recipe_path":  func(c *Config, v string) error { c.ChaosRecipePath = v; return nil },
	"start_awakened":     boolSetter(func(c *Config, b bool) { c.StartAwakened = b }),
	"start_lurker":       boolSetter(func(c *Config, b bool) { c.StartLurker = b }),
	"start_chaos_recipe": boolSetter(func(c *Config, b bool) { c.StartChaosRecipe = b }),
	"open_filterblade":   boolSetter(func(c *Config, b bool) { c.OpenFilterBlade = b }),
	"open_trade_site":    boolSetter(func(c *Config, b bool) { c.OpenTradeSite = b }),
}

func boolSetter(set func(c *Config, b bool)) func(c *Config, value string) error {
	return func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		set(c, b)
		return nil
	}
}

// Set assigns a field by its JSON name
func (c *Config) Set(key, value string) error {
	setter, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown or read-only config key: %s (settable: %s)", key, strings.Join(SettableKeys(), ", "))
	}
	return setter(c, value)
}

// SettableKeys returns the keys accepted by Set, sorted
func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validGameVersion(v string) bool {
	return v == GameVersionSteam || v == GameVersionStandalone
}

func validLanguage(v string) bool {
	return v == LanguageEnglish || v == LanguageGerman
}
