package detector

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// touch creates an empty file at path, including parent directories
func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeStore is an in-memory registry
type fakeStore struct {
	subKeys  map[string][]string
	values   map[string]map[string]string
	failures map[string]error
	panicMsg string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subKeys:  map[string][]string{},
		values:   map[string]map[string]string{},
		failures: map[string]error{},
	}
}

func storeKey(hive Hive, path string) string {
	return hive.String() + `\` + path
}

// addEntry registers an uninstall entry under root
func (s *fakeStore) addEntry(root uninstallRoot, name string, values map[string]string) {
	rk := storeKey(root.hive, root.path)
	s.subKeys[rk] = append(s.subKeys[rk], name)
	s.values[storeKey(root.hive, root.path+`\`+name)] = values
}

func (s *fakeStore) setValue(hive Hive, path, name, value string) {
	k := storeKey(hive, path)
	if s.values[k] == nil {
		s.values[k] = map[string]string{}
	}
	s.values[k][name] = value
}

func (s *fakeStore) SubKeys(hive Hive, path string) ([]string, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	k := storeKey(hive, path)
	if err := s.failures[k]; err != nil {
		return nil, err
	}
	names, ok := s.subKeys[k]
	if !ok {
		return nil, fmt.Errorf("key %s not found", k)
	}
	return names, nil
}

func (s *fakeStore) StringValue(hive Hive, path, name string) (string, error) {
	v, ok := s.values[storeKey(hive, path)][name]
	if !ok {
		return "", fmt.Errorf("value %s not found", name)
	}
	return v, nil
}

// fakeVolumes returns a fixed list of roots
type fakeVolumes struct {
	roots []string
	err   error
}

func (v fakeVolumes) Volumes() ([]string, error) {
	return v.roots, v.err
}
