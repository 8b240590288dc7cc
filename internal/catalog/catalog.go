// Package catalog supplies the image records shown by the gallery.
package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Image is a single gallery entry.
type Image struct {
	ID    int    `yaml:"id"`
	Src   string `yaml:"src"`
	Alt   string `yaml:"alt,omitempty"`
	Title string `yaml:"title"`
}

// Provider maps a folder path to the ordered list of images it contains.
// Implementations are not required to filter correctly by folder.
type Provider interface {
	ImagesFor(ctx context.Context, folder string) ([]Image, error)
}

// FetchError reports which stage of a remote catalog lookup failed.
type FetchError struct {
	URL   string
	Stage string // "fetch", "status" or "parse"
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog %s %s: %v", e.Stage, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string { return fmt.Sprintf("HTTP %d", e.StatusCode) }

// Mock serves the same fixed list for every folder.
type Mock struct{}

// ImagesFor implements Provider.
func (Mock) ImagesFor(ctx context.Context, folder string) ([]Image, error) {
	out := make([]Image, len(mockImages))
	copy(out, mockImages)
	return out, nil
}

func unsplash(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?w=800"
}

var mockImages = []Image{
	{ID: 1, Src: unsplash("1649972904349-6e44c42644a7"), Alt: "Woman sitting on a bed using a laptop", Title: "Remote Work"},
	{ID: 2, Src: unsplash("1488590528505-98d2b5aba04b"), Alt: "Turned on gray laptop computer", Title: "Gray Laptop"},
	{ID: 3, Src: unsplash("1518770660439-4636190af475"), Alt: "Macro photography of black circuit board", Title: "Circuit Board"},
	{ID: 4, Src: unsplash("1461749280684-dccba630e2f6"), Alt: "Monitor showing Java programming", Title: "Programming"},
	{ID: 5, Src: unsplash("1486312338219-ce6a32c6f44d"), Alt: "Person using MacBook Pro", Title: "MacBook Pro"},
	{ID: 6, Src: unsplash("1581091226825-a6a2a5aee158"), Alt: "Woman in white long sleeve shirt using black laptop computer", Title: "Working Professional"},
	{ID: 7, Src: unsplash("1485827404703-89b55fcc595e"), Alt: "White robot near brown wall", Title: "AI Robot"},
	{ID: 8, Src: unsplash("1526374965328-7f61d4dc18c5"), Alt: "Matrix movie still", Title: "Matrix Code"},
	{ID: 9, Src: unsplash("1531297484001-80022131f5a1"), Alt: "Gray and black laptop computer on surface", Title: "Modern Laptop"},
	{ID: 10, Src: unsplash("1487058792275-0ad4aaf24ca7"), Alt: "Colorful software or web code on a computer monitor", Title: "Code Display"},
}

// titleFromSrc returns the file stem of src, used when an image has no title.
func titleFromSrc(src string) string {
	s := src
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "."); i > 0 {
		s = s[:i]
	}
	return s
}
