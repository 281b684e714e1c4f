package detector

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

var (
	hkcuUninstall  = uninstallRoots[0]
	hklmUninstall  = uninstallRoots[1]
	wow64Uninstall = uninstallRoots[2]
)

func newTestRegistryScanner(store Store) *RegistryScanner {
	return NewRegistryScanner(store, NewFSReader(), quietLogger())
}

func TestRegistryScanCompanionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	exe := touch(t, filepath.Join(dir, "Awakened PoE Trade.exe"))

	store := newFakeStore()
	store.addEntry(hkcuUninstall, "{awakened}", map[string]string{
		"DisplayName":     "AWAKENED poe TRADE",
		"InstallLocation": dir,
	})

	found, err := newTestRegistryScanner(store).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if found[KeyAwakened] != exe {
		t.Errorf("awakened = %q, want %q", found[KeyAwakened], exe)
	}
	if len(found) != 1 {
		t.Errorf("expected exactly one key, got %v", found)
	}
}

func TestRegistryScanGameAndSteam(t *testing.T) {
	steamDir := t.TempDir()
	gameDir := t.TempDir()
	steamExe := touch(t, filepath.Join(steamDir, SteamExe))
	gameExe := touch(t, filepath.Join(gameDir, GameExe))

	store := newFakeStore()
	store.addEntry(wow64Uninstall, "Steam", map[string]string{
		"DisplayName":     "Steam",
		"InstallLocation": `"` + steamDir + `"`,
	})
	store.addEntry(wow64Uninstall, "Path of Exile", map[string]string{
		"DisplayName":     "Path of Exile",
		"InstallLocation": gameDir,
		"UninstallString": `"` + filepath.Join(gameDir, "unins000.exe") + `"`,
	})

	found, err := newTestRegistryScanner(store).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if found[KeySteam] != steamExe {
		t.Errorf("steam = %q, want %q", found[KeySteam], steamExe)
	}
	if found[KeyStandalone] != gameExe {
		t.Errorf("standalone = %q, want %q", found[KeyStandalone], gameExe)
	}
	if found.Has(KeySteamPoe) {
		t.Errorf("standalone install must not be reported as the Steam copy")
	}
}

func TestRegistryScanSteamCopyOfGame(t *testing.T) {
	gameDir := t.TempDir()
	gameExe := touch(t, filepath.Join(gameDir, GameExe))

	store := newFakeStore()
	store.addEntry(hklmUninstall, "Steam App 238960", map[string]string{
		"DisplayName":     "Path of Exile",
		"InstallLocation": gameDir,
		"UninstallString": `"C:\Program Files (x86)\Steam\steam.exe" steam://uninstall/238960`,
	})

	found, _ := newTestRegistryScanner(store).Scan(context.Background())
	if found[KeySteamPoe] != gameExe {
		t.Errorf("steam_poe = %q, want %q", found[KeySteamPoe], gameExe)
	}
	if found.Has(KeyStandalone) {
		t.Error("Steam copy must not fill the standalone key")
	}
}

func TestRegistryScanUsesUninstallStringWithoutInstallLocation(t *testing.T) {
	dir := t.TempDir()
	exe := touch(t, filepath.Join(dir, "PoeLurker.exe"))

	store := newFakeStore()
	store.addEntry(hkcuUninstall, "PoeLurker", map[string]string{
		"DisplayName":     "Poe Lurker",
		"UninstallString": `"` + filepath.Join(dir, "Update.exe") + `" --uninstall -s`,
	})

	found, _ := newTestRegistryScanner(store).Scan(context.Background())
	if found[KeyLurker] != exe {
		t.Errorf("lurker = %q, want %q", found[KeyLurker], exe)
	}
}

func TestRegistryScanCompanionFilenameVariant(t *testing.T) {
	dir := t.TempDir()
	exe := touch(t, filepath.Join(dir, "Chaos Recipe Enhancer.exe"))

	store := newFakeStore()
	store.addEntry(hkcuUninstall, "cre", map[string]string{
		"DisplayName":     "Chaos Recipe Enhancer",
		"InstallLocation": dir,
	})

	found, _ := newTestRegistryScanner(store).Scan(context.Background())
	if found[KeyChaosRecipe] != exe {
		t.Errorf("chaos_recipe = %q, want %q", found[KeyChaosRecipe], exe)
	}
}

func TestRegistryScanFirstMatchWins(t *testing.T) {
	userDir := t.TempDir()
	machineDir := t.TempDir()
	userExe := touch(t, filepath.Join(userDir, "Awakened PoE Trade.exe"))
	touch(t, filepath.Join(machineDir, "Awakened PoE Trade.exe"))

	store := newFakeStore()
	store.addEntry(hkcuUninstall, "a", map[string]string{"DisplayName": "Awakened PoE Trade", "InstallLocation": userDir})
	store.addEntry(hklmUninstall, "b", map[string]string{"DisplayName": "Awakened PoE Trade", "InstallLocation": machineDir})

	found, _ := newTestRegistryScanner(store).Scan(context.Background())
	if found[KeyAwakened] != userExe {
		t.Errorf("awakened = %q, want the per-user install %q", found[KeyAwakened], userExe)
	}
}

func TestRegistryScanSkipsEntriesWithMissingExecutable(t *testing.T) {
	emptyDir := t.TempDir()
	goodDir := t.TempDir()
	exe := touch(t, filepath.Join(goodDir, "Awakened PoE Trade.exe"))

	store := newFakeStore()
	store.addEntry(hkcuUninstall, "stale", map[string]string{"DisplayName": "Awakened PoE Trade", "InstallLocation": emptyDir})
	store.addEntry(hkcuUninstall, "nameless", map[string]string{"InstallLocation": goodDir})
	store.addEntry(hklmUninstall, "good", map[string]string{"DisplayName": "Awakened PoE Trade", "InstallLocation": goodDir})

	found, _ := newTestRegistryScanner(store).Scan(context.Background())
	if found[KeyAwakened] != exe {
		t.Errorf("awakened = %q, want %q", found[KeyAwakened], exe)
	}
}

func TestRegistryScanRootFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	exe := touch(t, filepath.Join(dir, "ChaosRecipeEnhancer.exe"))

	store := newFakeStore()
	store.failures[storeKey(hkcuUninstall.hive, hkcuUninstall.path)] = errors.New("access denied")
	store.addEntry(wow64Uninstall, "cre", map[string]string{"DisplayName": "Chaos Recipe Enhancer", "InstallLocation": dir})

	found, err := newTestRegistryScanner(store).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if found[KeyChaosRecipe] != exe {
		t.Errorf("chaos_recipe = %q, want %q", found[KeyChaosRecipe], exe)
	}
}

func TestRegistryScanSteamFromValveKey(t *testing.T) {
	steamDir := t.TempDir()
	steamExe := touch(t, filepath.Join(steamDir, SteamExe))

	store := newFakeStore()
	store.setValue(CurrentUser, `Software\Valve\Steam`, "SteamPath", filepath.ToSlash(steamDir))

	found, err := newTestRegistryScanner(store).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if found[KeySteam] != steamExe {
		t.Errorf("steam = %q, want %q", found[KeySteam], steamExe)
	}
}

func TestRegistryScanUnsupportedPlatform(t *testing.T) {
	found, err := newTestRegistryScanner(unsupportedStore{}).Scan(context.Background())
	if err != nil {
		t.Fatalf("expected no error on unsupported platform, got %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected empty result, got %v", found)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		uninstall string
		want      Key
		ok        bool
	}{
		{"Path of Exile", "", KeyStandalone, true},
		{"path of exile", `"C:\Steam\steam.exe" steam://uninstall/238960`, KeySteamPoe, true},
		{"Path of Exile (Steam)", "", KeySteamPoe, true},
		{"Steam", "", KeySteam, true},
		{"Awakened PoE Trade", "", KeyAwakened, true},
		{"Awakened Trade", "", "", false},
		{"Poe Lurker", "", KeyLurker, true},
		{"Lurker", "", "", false},
		{"Chaos Recipe Enhancer", "", KeyChaosRecipe, true},
		{"Notepad++", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classify(tt.name, tt.uninstall)
			if ok != tt.ok || got != tt.want {
				t.Errorf("classify(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUninstallDir(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"", ""},
		{`"/opt/app/Update.exe" --uninstall`, "/opt/app"},
		{`/opt/app/uninstall.EXE /S`, "/opt/app"},
		{`MsiExec.exe /X{1234}`, ""},
		{`"unterminated`, ""},
		{`no executable here`, ""},
	}

	for _, tt := range tests {
		want := tt.want
		if want != "" {
			want = filepath.FromSlash(want)
		}
		if got := uninstallDir(tt.command); got != want {
			t.Errorf("uninstallDir(%q) = %q, want %q", tt.command, got, want)
		}
	}
}
