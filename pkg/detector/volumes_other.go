//go:build !windows

package detector

func platformVolumes() VolumeLister {
	return unsupportedVolumes{}
}
