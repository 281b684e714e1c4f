package detector

import (
	"io/fs"
	"os"
	"sort"
)

// FSReader provides the read-only host filesystem operations the scanners
// need. Every failure is reported as "not there".
type FSReader struct {
	stat     func(name string) (fs.FileInfo, error)
	readDir  func(name string) ([]fs.DirEntry, error)
	readFile func(name string) ([]byte, error)
}

// NewFSReader creates an FSReader backed by the os package
func NewFSReader() *FSReader {
	return &FSReader{
		stat:     os.Stat,
		readDir:  os.ReadDir,
		readFile: os.ReadFile,
	}
}

// Has checks if a regular file exists at the given path
func (r *FSReader) Has(path string) bool {
	if path == "" {
		return false
	}
	fi, err := r.stat(path)
	return err == nil && !fi.IsDir()
}

// DirExists checks if a directory exists at the given path
func (r *FSReader) DirExists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := r.stat(path)
	return err == nil && fi.IsDir()
}

// Read reads a file and returns its content as a string
func (r *FSReader) Read(path string) (string, bool) {
	data, err := r.readFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// SubDirs lists the names of the directories directly under path, sorted
func (r *FSReader) SubDirs(path string) []string {
	entries, err := r.readDir(path)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs
}
