package config

import "time"

// Timeouts & Durations
const (
	// DefaultDetectionTimeout bounds one complete detection pass
	DefaultDetectionTimeout = 60 * time.Second

	// DefaultSteamStartTimeout is how long to wait for the Steam client process to appear
	DefaultSteamStartTimeout = 15 * time.Second

	// DefaultSteamPollInterval is the delay between Steam process checks
	DefaultSteamPollInterval = 500 * time.Millisecond

	// DefaultLaunchDelay is the pause between starting the game and the companions
	DefaultLaunchDelay = 1 * time.Second
)

// File Permissions
const (
	// PermDirectory is the file permission for directories
	PermDirectory = 0755

	// PermConfigFile is the file permission for config files
	PermConfigFile = 0644
)

// Path Constants - Local
const (
	// WindowsConfigDir is the directory under %LOCALAPPDATA% holding the config
	WindowsConfigDir = "PoELauncher"

	// UnixConfigDir is the directory under $XDG_CONFIG_HOME holding the config
	UnixConfigDir = "PoeLauncher"

	// LocalConfigFile is the filename for the main config
	LocalConfigFile = "config.json"
)

// Game versions
const (
	GameVersionSteam      = "steam"
	GameVersionStandalone = "standalone"
)

// Languages
const (
	LanguageEnglish = "en"
	LanguageGerman  = "de"
)

// Default Values
const (
	// DefaultGameVersion is used when the config has no or an unknown game_version
	DefaultGameVersion = GameVersionSteam

	// DefaultLanguage is used when the config has no or an unknown language
	DefaultLanguage = LanguageEnglish

	// SteamAppID is the Steam application id of Path of Exile
	SteamAppID = "238960"

	// FilterBladeURL is opened when open_filterblade is set
	FilterBladeURL = "https://www.filterblade.xyz"

	// TradeSiteURL is opened when open_trade_site is set
	TradeSiteURL = "https://www.pathofexile.com/trade"
)
