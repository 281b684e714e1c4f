package detector

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestVolumeScanner(roots []string, profileDir string) *VolumeScanner {
	return NewVolumeScanner(fakeVolumes{roots: roots}, NewFSReader(), quietLogger(), profileDir)
}

func TestVolumeScanFindsTemplates(t *testing.T) {
	c := t.TempDir()
	d := t.TempDir()

	steamExe := touch(t, filepath.Join(c, "Program Files (x86)", "Steam", "steam.exe"))
	gameExe := touch(t, filepath.Join(d, "Games", "Path of Exile", "PathOfExile.exe"))

	found, err := newTestVolumeScanner([]string{c, d}, t.TempDir()).Scan(context.Background(), AllKeys)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if found[KeySteam] != steamExe {
		t.Errorf("steam = %q, want %q", found[KeySteam], steamExe)
	}
	if found[KeyStandalone] != gameExe {
		t.Errorf("standalone = %q, want %q", found[KeyStandalone], gameExe)
	}
	if len(found) != 2 {
		t.Errorf("unexpected extra keys: %v", found)
	}
}

func TestVolumeScanVolumeOrderBeatsTemplateOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	// The later template on the first volume wins over the first template
	// on the second volume.
	want := touch(t, filepath.Join(first, "Path of Exile", "PathOfExile.exe"))
	touch(t, filepath.Join(second, "Program Files (x86)", "Grinding Gear Games", "Path of Exile", "PathOfExile.exe"))

	found, _ := newTestVolumeScanner([]string{first, second}, t.TempDir()).Scan(context.Background(), []Key{KeyStandalone})
	if found[KeyStandalone] != want {
		t.Errorf("standalone = %q, want %q", found[KeyStandalone], want)
	}
}

func TestVolumeScanTemplateOrderWithinVolume(t *testing.T) {
	vol := t.TempDir()

	want := touch(t, filepath.Join(vol, "Program Files (x86)", "Steam", "steam.exe"))
	touch(t, filepath.Join(vol, "Steam", "steam.exe"))

	found, _ := newTestVolumeScanner([]string{vol}, t.TempDir()).Scan(context.Background(), []Key{KeySteam})
	if found[KeySteam] != want {
		t.Errorf("steam = %q, want %q", found[KeySteam], want)
	}
}

func TestVolumeScanOnlyPendingKeys(t *testing.T) {
	vol := t.TempDir()
	touch(t, filepath.Join(vol, "Program Files", "Steam", "steam.exe"))
	lurker := touch(t, filepath.Join(vol, "Program Files", "PoeLurker", "PoeLurker.exe"))

	found, _ := newTestVolumeScanner([]string{vol}, t.TempDir()).Scan(context.Background(), []Key{KeyLurker})
	if found.Has(KeySteam) {
		t.Error("steam was not pending and must not be probed")
	}
	if found[KeyLurker] != lurker {
		t.Errorf("lurker = %q, want %q", found[KeyLurker], lurker)
	}
}

func TestVolumeScanProfileLocations(t *testing.T) {
	profile := t.TempDir()

	awakened := touch(t, filepath.Join(profile, "Programs", "Awakened PoE Trade", "Awakened PoE Trade.exe"))
	chaos := touch(t, filepath.Join(profile, "ChaosRecipeEnhancer", "ChaosRecipeEnhancer.exe"))

	// Versioned Squirrel folders: app-1.0.0 has no executable, so the
	// lexically next folder containing one wins.
	touch(t, filepath.Join(profile, "PoeLurker", "app-1.0.0", "readme.txt"))
	lurker := touch(t, filepath.Join(profile, "PoeLurker", "app-1.2.0", "PoeLurker.exe"))
	touch(t, filepath.Join(profile, "PoeLurker", "app-1.3.0", "PoeLurker.exe"))
	touch(t, filepath.Join(profile, "PoeLurker", "packages", "PoeLurker.exe"))

	found, err := newTestVolumeScanner(nil, profile).Scan(context.Background(), AllKeys)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if found[KeyAwakened] != awakened {
		t.Errorf("awakened = %q, want %q", found[KeyAwakened], awakened)
	}
	if found[KeyChaosRecipe] != chaos {
		t.Errorf("chaos_recipe = %q, want %q", found[KeyChaosRecipe], chaos)
	}
	if found[KeyLurker] != lurker {
		t.Errorf("lurker = %q, want %q", found[KeyLurker], lurker)
	}
}

func TestVolumeScanProfileNotReprobedWhenVolumeHit(t *testing.T) {
	vol := t.TempDir()
	profile := t.TempDir()

	want := touch(t, filepath.Join(vol, "Program Files", "Awakened PoE Trade", "Awakened PoE Trade.exe"))
	touch(t, filepath.Join(profile, "Programs", "Awakened PoE Trade", "Awakened PoE Trade.exe"))

	found, _ := newTestVolumeScanner([]string{vol}, profile).Scan(context.Background(), []Key{KeyAwakened})
	if found[KeyAwakened] != want {
		t.Errorf("awakened = %q, want the volume hit %q", found[KeyAwakened], want)
	}
}

func TestVolumeScanUnsupportedPlatform(t *testing.T) {
	profile := t.TempDir()
	touch(t, filepath.Join(profile, "Programs", "Awakened PoE Trade", "Awakened PoE Trade.exe"))

	s := NewVolumeScanner(unsupportedVolumes{}, NewFSReader(), quietLogger(), profile)
	found, err := s.Scan(context.Background(), AllKeys)
	if err != nil {
		t.Fatalf("expected no error on unsupported platform, got %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected empty result, got %v", found)
	}
}

func TestVolumeScanEnumerationFailureStillProbesProfile(t *testing.T) {
	profile := t.TempDir()
	want := touch(t, filepath.Join(profile, "Programs", "Awakened PoE Trade", "Awakened PoE Trade.exe"))

	s := NewVolumeScanner(fakeVolumes{err: errors.New("device not ready")}, NewFSReader(), quietLogger(), profile)
	found, err := s.Scan(context.Background(), AllKeys)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if found[KeyAwakened] != want {
		t.Errorf("awakened = %q, want %q", found[KeyAwakened], want)
	}
}

func TestVolumeScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestVolumeScanner([]string{t.TempDir()}, t.TempDir()).Scan(ctx, AllKeys)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
