//go:build !windows

package detector

func platformStore() Store {
	return unsupportedStore{}
}
