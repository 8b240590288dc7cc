package imageload

import (
	"context"
	"image"
	"sync"

	"github.com/justyntemme/maskr/internal/debug"
)

// Kind says what a loaded image is for.
type Kind int

const (
	Background Kind = iota // full-size editor background
	Thumbnail              // scaled down for the gallery grid
)

// Request asks for one image. Gen is carried through untouched so the
// receiver can discard stale results.
type Request struct {
	Src       string
	Kind      Kind
	Gen       uint64
	MaxPixels int // Thumbnail only: longest side after scaling
}

// Result is delivered on Loader.Results.
type Result struct {
	Request
	Image image.Image
	Size  image.Point // original dimensions
	Err   error
}

// Loader runs a fixed pool of workers that fetch and decode images.
// Results are sent on a buffered channel; Notify, when set, is called
// after each send so a UI loop can wake up and drain it.
type Loader struct {
	fetcher Fetcher
	notify  func()

	reqs    chan Request
	results chan Result

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewLoader starts workers goroutines (at least one).
func NewLoader(f Fetcher, workers int, notify func()) *Loader {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		fetcher: f,
		notify:  notify,
		reqs:    make(chan Request, 100),
		results: make(chan Result, 100),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		l.wg.Add(1)
		go l.worker()
	}
	return l
}

// Submit queues req without blocking. It reports false when the queue is
// full or the loader is closed.
func (l *Loader) Submit(req Request) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case l.reqs <- req:
		return true
	default:
		debug.Log(debug.IMAGE, "queue full, dropping %s", req.Src)
		return false
	}
}

// Results returns the channel completed loads are delivered on.
func (l *Loader) Results() <-chan Result { return l.results }

// Close cancels in-flight fetches and waits for the workers to exit.
func (l *Loader) Close() {
	l.once.Do(func() {
		l.cancel()
		l.wg.Wait()
	})
}

func (l *Loader) worker() {
	defer l.wg.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case req := <-l.reqs:
			res := l.process(req)
			select {
			case l.results <- res:
			case <-l.ctx.Done():
				return
			}
			if l.notify != nil {
				l.notify()
			}
		}
	}
}

func (l *Loader) process(req Request) Result {
	res := Result{Request: req}
	img, err := l.fetcher.Load(l.ctx, req.Src)
	if err != nil {
		debug.Log(debug.IMAGE, "load %s: %v", req.Src, err)
		res.Err = err
		return res
	}
	res.Size = img.Bounds().Size()
	if req.Kind == Thumbnail {
		img = Scale(img, req.MaxPixels)
	}
	res.Image = img
	debug.Log(debug.IMAGE, "loaded %s (%dx%d)", req.Src, res.Size.X, res.Size.Y)
	return res
}
