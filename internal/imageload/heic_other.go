//go:build !linux

package imageload

import (
	"image"
	"io"
)

// decodeHEIC is a stub where the cgo HEVC decoder is not built
func decodeHEIC(r io.Reader) (image.Image, error) {
	return nil, ErrHEICUnsupported
}

// heicSupported returns whether HEIC decoding is available on this platform
func heicSupported() bool {
	return false
}
