//go:build !windows

package icon

func wrap(pngData []byte) []byte {
	return pngData
}
