package detector

import (
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty stays empty", "", ""},
		{"forward slashes", "a/b/c.exe", filepath.Join("a", "b", "c.exe")},
		{"dot segments", "a/./b/../c.exe", filepath.Join("a", "c.exe")},
		{"repeated separators", "a//b///c.exe", filepath.Join("a", "b", "c.exe")},
		{"trailing separator", "a/b/", filepath.Join("a", "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"/",
		".",
		"..",
		"c:/program files (x86)/steam/steam.exe",
		`D:\Games\Path of Exile\PathOfExile.exe`,
		"/home/user//.local/share/../share/Steam/",
		"relative/./path",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
