// Package imageload fetches and decodes gallery images off the UI goroutine.
package imageload

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"

	_ "golang.org/x/image/webp"
)

// DecodeError wraps a failure to turn fetched bytes into an image.
type DecodeError struct {
	Src string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Src, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode reads an image from r. HEIC/HEIF is recognised by extension or by
// its ftyp box; everything else goes through the registered image formats
// (PNG, JPEG, GIF, WebP).
func Decode(r io.Reader, src string) (image.Image, error) {
	br := bufio.NewReader(r)
	if isHEIC(src, br) {
		if !heicSupported() {
			return nil, &DecodeError{Src: src, Err: ErrHEICUnsupported}
		}
		img, err := decodeHEIC(br)
		if err != nil {
			return nil, &DecodeError{Src: src, Err: err}
		}
		return img, nil
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, &DecodeError{Src: src, Err: err}
	}
	return img, nil
}

func isHEIC(src string, br *bufio.Reader) bool {
	s := src
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	switch strings.ToLower(path.Ext(s)) {
	case ".heic", ".heif":
		return true
	}
	head, _ := br.Peek(12)
	if len(head) < 12 || !bytes.Equal(head[4:8], []byte("ftyp")) {
		return false
	}
	switch string(head[8:12]) {
	case "heic", "heix", "hevc", "heim", "heis", "mif1":
		return true
	}
	return false
}
