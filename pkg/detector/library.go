package detector

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// libraryPathPattern matches `"path"  "<value>"` pairs in a VDF document.
// The value may contain escaped characters.
var libraryPathPattern = regexp.MustCompile(`"path"\s+"((?:[^"\\]|\\.)*)"`)

var vdfUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

// ParseLibraryFolders extracts the library roots listed in a Steam
// libraryfolders.vdf document, in file order. The surrounding structure is
// not validated.
func ParseLibraryFolders(data string) []string {
	matches := libraryPathPattern.FindAllStringSubmatch(data, -1)
	roots := make([]string, 0, len(matches))
	for _, m := range matches {
		root := vdfUnescaper.Replace(m[1])
		if root != "" {
			roots = append(roots, root)
		}
	}
	return roots
}

// LibraryScanner locates the Steam copy of the game from the Steam client's
// own library list.
type LibraryScanner struct {
	fs     *FSReader
	logger *log.Logger
}

// NewLibraryScanner creates a library scanner
func NewLibraryScanner(fsr *FSReader, logger *log.Logger) *LibraryScanner {
	return &LibraryScanner{fs: fsr, logger: logger}
}

// Scan checks the default library next to clientPath, then every library
// listed in steamapps/libraryfolders.vdf. A missing client or an unreadable
// manifest yields an empty result.
func (s *LibraryScanner) Scan(ctx context.Context, clientPath string) (Result, error) {
	found := Result{}
	if !s.fs.Has(clientPath) {
		return found, nil
	}

	steamDir := filepath.Dir(clientPath)
	if candidate := steamGamePath(steamDir); s.fs.Has(candidate) {
		found.SetIfAbsent(KeySteamPoe, candidate)
		return found, nil
	}

	manifest := filepath.Join(steamDir, "steamapps", "libraryfolders.vdf")
	data, ok := s.fs.Read(manifest)
	if !ok {
		s.logger.Debug("no library manifest", "path", manifest)
		return found, nil
	}

	for _, root := range ParseLibraryFolders(data) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidate := steamGamePath(Normalize(root))
		if s.fs.Has(candidate) {
			found.SetIfAbsent(KeySteamPoe, candidate)
			s.logger.Debug("found in steam library", "library", root, "path", candidate)
			break
		}
	}

	return found, nil
}
