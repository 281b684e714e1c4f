//go:build windows

package detector

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type windowsStore struct{}

func platformStore() Store {
	return windowsStore{}
}

func rootKey(h Hive) registry.Key {
	if h == LocalMachine {
		return registry.LOCAL_MACHINE
	}
	return registry.CURRENT_USER
}

func (windowsStore) SubKeys(hive Hive, path string) ([]string, error) {
	key, err := registry.OpenKey(rootKey(hive), path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, fmt.Errorf("error opening registry key %s\\%s: %w", hive, path, err)
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("error enumerating %s\\%s: %w", hive, path, err)
	}
	return names, nil
}

func (windowsStore) StringValue(hive Hive, path, name string) (string, error) {
	key, err := registry.OpenKey(rootKey(hive), path, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("error opening registry key %s\\%s: %w", hive, path, err)
	}
	defer key.Close()

	value, valType, err := key.GetStringValue(name)
	if err != nil {
		return "", fmt.Errorf("error querying %s: %w", name, err)
	}
	if valType == registry.EXPAND_SZ {
		if expanded, err := registry.ExpandString(value); err == nil {
			value = expanded
		}
	}
	return value, nil
}
