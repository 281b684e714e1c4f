//go:build windows

package detector

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type windowsVolumes struct{}

func platformVolumes() VolumeLister {
	return windowsVolumes{}
}

// Volumes returns the fixed drives in drive-letter order
func (windowsVolumes) Volumes() ([]string, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, fmt.Errorf("error listing logical drives: %w", err)
	}

	var roots []string
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		root := string(rune('A'+i)) + `:\`
		p, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		if windows.GetDriveType(p) != windows.DRIVE_FIXED {
			continue
		}
		roots = append(roots, root)
	}
	return roots, nil
}
