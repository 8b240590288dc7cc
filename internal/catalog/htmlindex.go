package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/justyntemme/maskr/internal/debug"
)

// maxIndexBytes bounds how much of an index page is read.
const maxIndexBytes = 8 << 20

// HTMLIndex fetches <BaseURL><folder> and lists the <img> elements on the
// page in document order. Relative src values are resolved against the
// page URL.
type HTMLIndex struct {
	BaseURL string
	Client  *http.Client
}

// ImagesFor implements Provider.
func (h HTMLIndex) ImagesFor(ctx context.Context, folder string) ([]Image, error) {
	if h.Client == nil {
		return nil, errors.New("catalog: nil http client")
	}
	pageURL := h.pageURL(folder)

	body, err := h.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	imgs, err := ParseIndex(body, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Stage: "parse", Err: err}
	}
	debug.Log(debug.CATALOG, "%s: %d images", pageURL, len(imgs))
	return imgs, nil
}

func (h HTMLIndex) pageURL(folder string) string {
	base := strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	if folder == "" {
		folder = "/"
	}
	if !strings.HasPrefix(folder, "/") {
		folder = "/" + folder
	}
	segs := strings.Split(folder, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return base + strings.Join(segs, "/")
}

func (h HTMLIndex) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{URL: u, Stage: "fetch", Err: err}
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u, Stage: "fetch", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: u, Stage: "status", Err: &StatusError{StatusCode: resp.StatusCode}}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexBytes))
	if err != nil {
		return nil, &FetchError{URL: u, Stage: "fetch", Err: err}
	}
	return data, nil
}

// ParseIndex extracts images from an HTML document. Title comes from the
// title or data-title attribute, then alt, then the file stem.
func ParseIndex(html []byte, pageURL string) ([]Image, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var imgs []Image
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(s.AttrOr("data-src", ""))
		}
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		alt := normSpace(s.AttrOr("alt", ""))
		title := normSpace(s.AttrOr("title", ""))
		if title == "" {
			title = normSpace(s.AttrOr("data-title", ""))
		}
		if title == "" {
			title = alt
		}
		abs := resolveURL(pageURL, src)
		if title == "" {
			title = titleFromSrc(abs)
		}
		imgs = append(imgs, Image{
			ID:    len(imgs) + 1,
			Src:   abs,
			Alt:   alt,
			Title: title,
		})
	})
	return imgs, nil
}

func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	bu, err := url.Parse(base)
	if err != nil {
		return href
	}
	// Treat the folder page as a directory so relative names resolve inside it.
	if !strings.HasSuffix(bu.Path, "/") {
		bu.Path += "/"
	}
	ru, err := url.Parse(href)
	if err != nil {
		return href
	}
	return bu.ResolveReference(ru).String()
}

func normSpace(s string) string { return strings.Join(strings.Fields(s), " ") }
