package detector

import "errors"

// ErrUnsupported is returned by platform sources that do not exist on the
// running OS. Scanners treat it as "nothing to find", not as a failure.
var ErrUnsupported = errors.New("not supported on this platform")

// Hive is a registry root
type Hive int

const (
	CurrentUser Hive = iota
	LocalMachine
)

func (h Hive) String() string {
	switch h {
	case CurrentUser:
		return "HKCU"
	case LocalMachine:
		return "HKLM"
	default:
		return "HKEY(?)"
	}
}

// Store is read-only access to the Windows registry
type Store interface {
	// SubKeys lists the names of the keys directly below hive\path
	SubKeys(hive Hive, path string) ([]string, error)
	// StringValue reads a string value of hive\path. Missing values return an error.
	StringValue(hive Hive, path, name string) (string, error)
}

// DefaultStore returns the registry of the running OS, or a store that
// answers ErrUnsupported on platforms without one.
func DefaultStore() Store {
	return platformStore()
}

type unsupportedStore struct{}

func (unsupportedStore) SubKeys(Hive, string) ([]string, error) {
	return nil, ErrUnsupported
}

func (unsupportedStore) StringValue(Hive, string, string) (string, error) {
	return "", ErrUnsupported
}
