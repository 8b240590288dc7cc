package ui

import (
	"fmt"
	"image"
	"math"
	"strings"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/maskr/internal/config"
	"github.com/justyntemme/maskr/internal/debug"
	"github.com/justyntemme/maskr/internal/mask"
)

const editorHelp = "Draw on the image to create a mask. The coordinates will be saved to a text file when you finish drawing or close the editor."

// layoutEditor is the mask editor modal: title and actions, the drawing
// surface and a help line.
func (r *Renderer) layoutEditor(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	ed := state.Editor
	if r.clearBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionClearMask}
	}
	if r.saveBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionSaveAndClose}
	}
	if r.closeBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionCloseEditor}
	}

	img, _ := ed.Image()
	return r.modalBackdrop(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.panel(gtx, unit.Dp(8), func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							return r.layoutEditorHeader(gtx, img.Title, state.SavedMasks)
						})
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						// Leave room for the header and help line
						gtx.Constraints.Max.Y -= gtx.Dp(64)
						return widget.Border{Color: colLightGray, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
							func(gtx layout.Context) layout.Dimensions {
								return r.layoutCanvas(gtx, ed)
							})
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(r.Theme, editorHelp)
							lbl.Color = colGray
							return lbl.Layout(gtx)
						})
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						hint := r.editorShortcuts()
						if hint == "" {
							return layout.Dimensions{}
						}
						return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							lbl := material.Caption(r.Theme, hint)
							lbl.Color = colGray
							return lbl.Layout(gtx)
						})
					}),
				)
			})
		})
	})
}

// editorShortcuts lists the bound editor keys, e.g. "Ctrl+S save & close · Esc close".
func (r *Renderer) editorShortcuts() string {
	var parts []string
	for _, b := range []struct {
		key  config.Hotkey
		verb string
	}{
		{r.keys.SaveMask, "save & close"},
		{r.keys.ClearMask, "clear"},
		{r.keys.CloseEditor, "close"},
	} {
		if !b.key.IsEmpty() {
			parts = append(parts, b.key.String()+" "+b.verb)
		}
	}
	return strings.Join(parts, " · ")
}

func (r *Renderer) layoutEditorHeader(gtx layout.Context, title string, saved int) layout.Dimensions {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Baseline}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.H6(r.Theme, title)
					lbl.Font.Weight = font.SemiBold
					lbl.Color = colBlack
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if saved == 0 {
						return layout.Dimensions{}
					}
					noun := "masks"
					if saved == 1 {
						noun = "mask"
					}
					return layout.Inset{Left: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Caption(r.Theme, fmt.Sprintf("%d %s saved", saved, noun))
						lbl.Color = colGray
						return lbl.Layout(gtx)
					})
				}),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.clearBtn, "Clear", colNeutralBtn, colPrimaryBtnText)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.saveBtn, "Save & Close", colSaveBtn, colPrimaryBtnText)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.outlineButton(gtx, &r.closeBtn, "Close", true)
		}),
	)
}

// canvasScale returns the pixels per surface unit that fit a w×h surface
// into max, never enlarging past one unit per dp.
func canvasScale(avail image.Point, w, h float64, pxPerDp float32) float32 {
	scale := float64(pxPerDp)
	if w > 0 && float64(avail.X) < w*scale {
		scale = float64(avail.X) / w
	}
	if h > 0 && float64(avail.Y) < h*scale {
		scale = float64(avail.Y) / h
	}
	return float32(math.Max(scale, 0.01))
}

// surfacePoint converts a pointer position in pixels into surface units.
// The result keeps full float precision.
func surfacePoint(pos f32.Point, ppu float32) mask.Point {
	return mask.Point{
		X: float64(pos.X) / float64(ppu),
		Y: float64(pos.Y) / float64(ppu),
	}
}

// layoutCanvas draws the surface, the fitted background and every stroke,
// and feeds pointer input straight into the editor. Every stroke released
// this frame is queued for export.
func (r *Renderer) layoutCanvas(gtx layout.Context, ed *mask.Editor) layout.Dimensions {
	sw, sh := ed.Size()
	ppu := canvasScale(gtx.Constraints.Max, sw, sh, gtx.Metric.PxPerDp)
	size := image.Pt(int(float32(sw)*ppu), int(float32(sh)*ppu))

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &r.canvasTag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		p := surfacePoint(e.Position, ppu)
		switch e.Kind {
		case pointer.Press:
			if e.Source == pointer.Mouse && !e.Buttons.Contain(pointer.ButtonPrimary) {
				continue
			}
			ed.Press(p)
		case pointer.Drag:
			ed.Drag(p)
		case pointer.Release:
			if pts, ok := ed.Release(p); ok {
				r.strokes = append(r.strokes, UIEvent{Action: ActionStrokeComplete, Points: pts})
			}
		case pointer.Cancel:
			ed.Cancel()
		}
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, &r.canvasTag)
	pointer.CursorCrosshair.Add(gtx.Ops)

	paint.FillShape(gtx.Ops, colSurface, clip.Rect{Max: size}.Op())
	r.paintBackground(gtx, ed, ppu)
	for _, s := range ed.Strokes() {
		r.paintStroke(gtx.Ops, s, ppu)
	}
	return layout.Dimensions{Size: size}
}

func (r *Renderer) paintBackground(gtx layout.Context, ed *mask.Editor, ppu float32) {
	img, pl, ok := ed.Background()
	if !ok {
		r.bgValid = false
		r.bgOp = paint.ImageOp{}
		return
	}
	if !r.bgValid || r.bgGen != ed.Generation() {
		r.bgOp = paint.NewImageOp(img)
		r.bgGen = ed.Generation()
		r.bgValid = true
		debug.Log(debug.UI, "canvas background gen=%d", r.bgGen)
	}

	rc := pl.Rect()
	u := float64(ppu)
	lo := image.Pt(int(math.Round(rc.X*u)), int(math.Round(rc.Y*u)))
	hi := image.Pt(int(math.Round((rc.X+rc.W)*u)), int(math.Round((rc.Y+rc.H)*u)))

	defer op.Offset(lo).Push(gtx.Ops).Pop()
	igtx := gtx
	igtx.Constraints = layout.Exact(hi.Sub(lo))
	widget.Image{Src: r.bgOp, Fit: widget.Fill}.Layout(igtx)
}

// paintStroke draws a stroke with the brush. A stroke without movement is
// drawn as a dot.
func (r *Renderer) paintStroke(ops *op.Ops, s *mask.Stroke, ppu float32) {
	width := r.brushWidth * ppu
	segs := s.Segments()
	if len(segs) == 0 {
		return
	}
	pt := func(p mask.Point) f32.Point {
		return f32.Pt(float32(p.X)*ppu, float32(p.Y)*ppu)
	}

	if len(segs) == 1 {
		c := pt(segs[0].P)
		rad := width / 2
		paint.FillShape(ops, r.brushColor, clip.Ellipse{
			Min: image.Pt(int(c.X-rad), int(c.Y-rad)),
			Max: image.Pt(int(math.Ceil(float64(c.X+rad))), int(math.Ceil(float64(c.Y+rad)))),
		}.Op(ops))
		return
	}

	var p clip.Path
	p.Begin(ops)
	for _, seg := range segs {
		switch seg.Op {
		case mask.MoveTo:
			p.MoveTo(pt(seg.P))
		case mask.LineTo:
			p.LineTo(pt(seg.P))
		}
	}
	paint.FillShape(ops, r.brushColor, clip.Stroke{Path: p.End(), Width: width}.Op())
}
