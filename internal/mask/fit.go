package mask

import "errors"

// ErrEmptyImage is returned by Fit for images without area.
var ErrEmptyImage = errors.New("mask: image has zero size")

// Placement positions a background image on the surface. The image is
// anchored at its centre, which sits at (CenterX, CenterY).
type Placement struct {
	ScaleX, ScaleY   float64
	CenterX, CenterY float64
	Width, Height    float64 // scaled size in surface units
}

// Rect is an axis-aligned rectangle in surface units.
type Rect struct {
	X, Y, W, H float64
}

// Fit scales an iw×ih image to fit inside a cw×ch surface keeping its
// aspect ratio. Wider images fill the width, all others fill the height.
func Fit(iw, ih, cw, ch float64) (Placement, error) {
	if iw <= 0 || ih <= 0 {
		return Placement{}, ErrEmptyImage
	}
	imgAspect := iw / ih
	canvasAspect := cw / ch

	var w, h float64
	if imgAspect > canvasAspect {
		w = cw
		h = cw / imgAspect
	} else {
		h = ch
		w = ch * imgAspect
	}
	return Placement{
		ScaleX:  w / iw,
		ScaleY:  h / ih,
		CenterX: cw / 2,
		CenterY: ch / 2,
		Width:   w,
		Height:  h,
	}, nil
}

// Rect returns the top-left based rectangle covered by the image.
func (p Placement) Rect() Rect {
	return Rect{
		X: p.CenterX - p.Width/2,
		Y: p.CenterY - p.Height/2,
		W: p.Width,
		H: p.Height,
	}
}
