package detector

import "path/filepath"

const (
	SteamExe   = "steam.exe"
	GameExe    = "PathOfExile.exe"
	GameFolder = "Path of Exile"
)

// executableNames lists the file names a key's executable may carry, most
// common first. Companions have shipped under more than one name.
var executableNames = map[Key][]string{
	KeySteam:       {SteamExe},
	KeyStandalone:  {GameExe},
	KeySteamPoe:    {GameExe},
	KeyAwakened:    {"Awakened PoE Trade.exe"},
	KeyLurker:      {"PoeLurker.exe", "Poe Lurker.exe"},
	KeyChaosRecipe: {"ChaosRecipeEnhancer.exe", "Chaos Recipe Enhancer.exe"},
}

// findExecutable returns the first existing executable for k directly inside dir
func findExecutable(fsr *FSReader, dir string, k Key) string {
	if dir == "" {
		return ""
	}
	for _, name := range executableNames[k] {
		candidate := filepath.Join(dir, name)
		if fsr.Has(candidate) {
			return candidate
		}
	}
	return ""
}

// steamGamePath returns where Steam installs the game inside a library root
func steamGamePath(libraryRoot string) string {
	return filepath.Join(libraryRoot, "steamapps", "common", GameFolder, GameExe)
}
