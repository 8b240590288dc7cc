package mask

import (
	"image"

	"github.com/google/uuid"

	"github.com/justyntemme/maskr/internal/catalog"
	"github.com/justyntemme/maskr/internal/debug"
	"github.com/justyntemme/maskr/internal/gallery"
)

// Default surface size in logical units.
const (
	SurfaceWidth  = 800
	SurfaceHeight = 600
)

// Editor is the mask editor state machine. It is either closed or open on
// exactly one image. All methods are meant to be called from the UI
// goroutine; background loads report back through AcceptBackground.
type Editor struct {
	width, height float64

	slot    gallery.Editing
	session uuid.UUID
	gen     uint64

	drawn   []*Stroke // completed strokes, painted over the background
	active  *Stroke   // stroke under the pointer
	current []Point   // last completed stroke, replaced by each new one

	background image.Image
	placement  Placement
}

// NewEditor creates a closed editor with a w×h surface. Non-positive sizes
// use SurfaceWidth×SurfaceHeight.
func NewEditor(w, h float64) *Editor {
	if w <= 0 || h <= 0 {
		w, h = SurfaceWidth, SurfaceHeight
	}
	return &Editor{width: w, height: h}
}

// Size returns the surface size.
func (e *Editor) Size() (w, h float64) { return e.width, e.height }

// IsOpen reports whether an image is being edited.
func (e *Editor) IsOpen() bool { return e.slot.Active() }

// Image returns the image under edit.
func (e *Editor) Image() (catalog.Image, bool) { return e.slot.Image() }

// Session identifies the current open period; it changes on every Open.
func (e *Editor) Session() uuid.UUID { return e.session }

// Generation is the token a background load must present to be accepted.
func (e *Editor) Generation() uint64 { return e.gen }

// Open starts editing img, discarding any previous session. It returns the
// generation for the background load.
func (e *Editor) Open(img catalog.Image) uint64 {
	e.reset()
	e.slot = gallery.EditingOf(img)
	e.session = uuid.New()
	debug.Log(debug.CANVAS, "open %q session=%s gen=%d", img.Title, e.session, e.gen)
	return e.gen
}

// Close leaves the editor without exporting.
func (e *Editor) Close() {
	if !e.IsOpen() {
		return
	}
	debug.Log(debug.CANVAS, "close session=%s", e.session)
	e.reset()
	e.slot = gallery.Editing{}
	e.session = uuid.Nil
}

// SaveAndClose closes the editor and returns the pending stroke when it is
// non-empty, for the caller to export.
func (e *Editor) SaveAndClose() ([]Point, bool) {
	if !e.IsOpen() {
		return nil, false
	}
	pts := e.Current()
	e.Close()
	return pts, len(pts) > 0
}

// Clear drops every stroke and the background and returns the generation
// for reloading the pristine background. Nothing is exported.
func (e *Editor) Clear() uint64 {
	if !e.IsOpen() {
		return e.gen
	}
	e.reset()
	debug.Log(debug.CANVAS, "clear session=%s gen=%d", e.session, e.gen)
	return e.gen
}

func (e *Editor) reset() {
	e.gen++
	e.drawn = nil
	e.active = nil
	e.current = nil
	e.background = nil
	e.placement = Placement{}
}

// Press begins a stroke at p.
func (e *Editor) Press(p Point) {
	if !e.IsOpen() {
		return
	}
	e.active = NewStroke(p)
}

// Drag extends the active stroke.
func (e *Editor) Drag(p Point) {
	if e.active == nil {
		return
	}
	e.active.LineTo(p)
}

// Release completes the active stroke. The stroke's vertices replace the
// pending buffer and are returned for export.
func (e *Editor) Release(p Point) ([]Point, bool) {
	if e.active == nil {
		return nil, false
	}
	e.active.LineTo(p)
	s := e.active
	e.active = nil
	e.drawn = append(e.drawn, s)
	e.current = s.Points()
	debug.Log(debug.CANVAS, "stroke complete: %d points", len(e.current))
	return e.Current(), true
}

// Cancel abandons the active stroke.
func (e *Editor) Cancel() { e.active = nil }

// Drawing reports whether a stroke is in progress.
func (e *Editor) Drawing() bool { return e.active != nil }

// Current returns a copy of the pending stroke buffer.
func (e *Editor) Current() []Point {
	if len(e.current) == 0 {
		return nil
	}
	out := make([]Point, len(e.current))
	copy(out, e.current)
	return out
}

// Strokes returns completed strokes followed by the active one, if any.
func (e *Editor) Strokes() []*Stroke {
	if e.active == nil {
		return e.drawn
	}
	out := make([]*Stroke, 0, len(e.drawn)+1)
	out = append(out, e.drawn...)
	return append(out, e.active)
}

// AcceptBackground installs a loaded image when gen still matches and the
// editor is open. Stale completions return false and change nothing.
func (e *Editor) AcceptBackground(gen uint64, img image.Image) bool {
	if !e.IsOpen() || gen != e.gen || img == nil {
		debug.Log(debug.CANVAS, "drop background gen=%d (current %d, open=%v)", gen, e.gen, e.IsOpen())
		return false
	}
	b := img.Bounds()
	pl, err := Fit(float64(b.Dx()), float64(b.Dy()), e.width, e.height)
	if err != nil {
		return false
	}
	e.background = img
	e.placement = pl
	return true
}

// Background returns the installed background and its placement.
func (e *Editor) Background() (image.Image, Placement, bool) {
	return e.background, e.placement, e.background != nil
}
