package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// maxImageBytes bounds a single download.
const maxImageBytes = 64 << 20

var (
	ErrHEICUnsupported = errors.New("HEIC decoding not supported on this platform")
	ErrTooLarge        = errors.New("image exceeds size limit")
)

// Fetcher opens image sources: http(s) URLs through Client, file:// URLs
// and plain paths from disk. Relative paths resolve against BaseDir.
type Fetcher struct {
	Client  *http.Client
	BaseDir string
}

// Open returns the raw bytes of src.
func (f Fetcher) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return f.openHTTP(ctx, src)
	case strings.HasPrefix(src, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, err
		}
		return os.Open(filepath.FromSlash(u.Path))
	default:
		p := filepath.FromSlash(src)
		if !filepath.IsAbs(p) && f.BaseDir != "" {
			p = filepath.Join(f.BaseDir, p)
		}
		return os.Open(p)
	}
}

func (f Fetcher) openHTTP(ctx context.Context, src string) (io.ReadCloser, error) {
	if f.Client == nil {
		return nil, errors.New("imageload: nil http client")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", src, resp.StatusCode)
	}
	if resp.ContentLength > maxImageBytes {
		resp.Body.Close()
		return nil, ErrTooLarge
	}
	return limitedBody{Reader: io.LimitReader(resp.Body, maxImageBytes), Closer: resp.Body}, nil
}

type limitedBody struct {
	io.Reader
	io.Closer
}

// Load fetches and decodes src in the calling goroutine.
func (f Fetcher) Load(ctx context.Context, src string) (image.Image, error) {
	rc, err := f.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Decode(rc, src)
}
