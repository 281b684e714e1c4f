package detector

import "path/filepath"

// Normalize converts forward slashes to the host separator and cleans the
// path. Empty input is returned unchanged.
func Normalize(p string) string {
	if p == "" {
		return p
	}
	return filepath.Clean(filepath.FromSlash(p))
}
