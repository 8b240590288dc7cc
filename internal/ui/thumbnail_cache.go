package ui

import (
	"container/list"
	"image"
	"sync"

	"gioui.org/op/paint"

	"github.com/justyntemme/maskr/internal/debug"
	"github.com/justyntemme/maskr/internal/imageload"
)

// Submitter queues an image load. *imageload.Loader satisfies it.
type Submitter interface {
	Submit(req imageload.Request) bool
}

// ThumbnailCache provides an LRU cache for gallery thumbnails keyed by
// image source. Loads go through a Submitter; completed results come back
// through Put or MarkFailed on the UI goroutine.
type ThumbnailCache struct {
	mu        sync.RWMutex
	cache     map[string]*thumbnailEntry // src -> entry
	lru       *list.List                 // front = most recent
	maxSize   int
	maxPixels int

	loader  Submitter
	pending map[string]bool // srcs submitted but not yet delivered
	failed  map[string]bool // srcs that could not be loaded; not retried
}

type thumbnailEntry struct {
	src       string
	thumbnail paint.ImageOp
	size      image.Point // original image dimensions
	element   *list.Element
}

// NewThumbnailCache creates a cache holding at most maxEntries thumbnails,
// each scaled so its longest side is at most maxPixels.
func NewThumbnailCache(loader Submitter, maxEntries, maxPixels int) *ThumbnailCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &ThumbnailCache{
		cache:     make(map[string]*thumbnailEntry),
		lru:       list.New(),
		maxSize:   maxEntries,
		maxPixels: maxPixels,
		loader:    loader,
		pending:   make(map[string]bool),
		failed:    make(map[string]bool),
	}
}

// Get retrieves a thumbnail from the cache.
func (tc *ThumbnailCache) Get(src string) (paint.ImageOp, image.Point, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	entry, ok := tc.cache[src]
	if !ok {
		return paint.ImageOp{}, image.Point{}, false
	}
	tc.lru.MoveToFront(entry.element)
	return entry.thumbnail, entry.size, true
}

// Failed reports whether loading src has already failed.
func (tc *ThumbnailCache) Failed(src string) bool {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.failed[src]
}

// RequestLoad queues src for background loading.
// Does nothing if src is cached, pending or known to fail.
func (tc *ThumbnailCache) RequestLoad(src string) {
	tc.mu.Lock()
	if tc.loader == nil || tc.pending[src] || tc.failed[src] {
		tc.mu.Unlock()
		return
	}
	if _, cached := tc.cache[src]; cached {
		tc.mu.Unlock()
		return
	}
	tc.pending[src] = true
	tc.mu.Unlock()

	ok := tc.loader.Submit(imageload.Request{
		Src:       src,
		Kind:      imageload.Thumbnail,
		MaxPixels: tc.maxPixels,
	})
	if !ok {
		// Queue full; the next frame asks again
		tc.mu.Lock()
		delete(tc.pending, src)
		tc.mu.Unlock()
	}
}

// Put stores a loaded thumbnail, evicting the least recently used entries
// when the cache is full.
func (tc *ThumbnailCache) Put(src string, img image.Image, size image.Point) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	delete(tc.pending, src)
	imgOp := paint.NewImageOp(img)

	if entry, ok := tc.cache[src]; ok {
		entry.thumbnail = imgOp
		entry.size = size
		tc.lru.MoveToFront(entry.element)
		return
	}

	for tc.lru.Len() >= tc.maxSize {
		oldest := tc.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*thumbnailEntry)
		delete(tc.cache, old.src)
		tc.lru.Remove(oldest)
		debug.Log(debug.IMAGE, "ThumbnailCache: evicted %s", old.src)
	}

	entry := &thumbnailEntry{src: src, thumbnail: imgOp, size: size}
	entry.element = tc.lru.PushFront(entry)
	tc.cache[src] = entry
	debug.Log(debug.IMAGE, "ThumbnailCache: cached %s (original %dx%d)", src, size.X, size.Y)
}

// MarkFailed records that src could not be loaded.
func (tc *ThumbnailCache) MarkFailed(src string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	delete(tc.pending, src)
	tc.failed[src] = true
}

// Clear removes all entries, pending marks and failures.
func (tc *ThumbnailCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.cache = make(map[string]*thumbnailEntry)
	tc.lru = list.New()
	tc.pending = make(map[string]bool)
	tc.failed = make(map[string]bool)

	debug.Log(debug.IMAGE, "ThumbnailCache: cleared")
}

// Size returns the current number of cached thumbnails.
func (tc *ThumbnailCache) Size() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.cache)
}
