package ui

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// panel draws content on a white box with a grey border.
func (r *Renderer) panel(gtx layout.Context, radius unit.Dp, content layout.Widget) layout.Dimensions {
	return widget.Border{Color: colLightGray, Width: unit.Dp(1), CornerRadius: radius}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Stack{}.Layout(gtx,
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					rr := gtx.Dp(radius)
					paint.FillShape(gtx.Ops, colCard, clip.RRect{
						Rect: image.Rectangle{Max: gtx.Constraints.Min},
						NE:   rr, NW: rr, SE: rr, SW: rr,
					}.Op(gtx.Ops))
					return layout.Dimensions{Size: gtx.Constraints.Min}
				}),
				layout.Stacked(content),
			)
		})
}

// modalBackdrop dims the whole window and centres content on top of it.
// Pointer events on the backdrop are swallowed so nothing underneath
// reacts while the modal is up.
func (r *Renderer) modalBackdrop(gtx layout.Context, content layout.Widget) layout.Dimensions {
	paint.FillShape(gtx.Ops, colBackdrop, clip.Rect{Max: gtx.Constraints.Max}.Op())

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, &r.backdropTag)
	area.Pop()
	for {
		if _, ok := gtx.Event(pointer.Filter{Target: &r.backdropTag, Kinds: pointer.Press | pointer.Release}); !ok {
			break
		}
	}

	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		return layout.UniformInset(unit.Dp(24)).Layout(gtx, content)
	})
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

// button renders a small filled button.
func (r *Renderer) button(gtx layout.Context, clk *widget.Clickable, label string, bg, fg color.NRGBA) layout.Dimensions {
	btn := material.Button(r.Theme, clk, label)
	btn.Inset = layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(12), Right: unit.Dp(12)}
	btn.TextSize = unit.Sp(13)
	btn.CornerRadius = unit.Dp(4)
	btn.Background, btn.Color = bg, fg
	return btn.Layout(gtx)
}

// outlineButton renders a white bordered button that greys out when
// disabled. Disabled buttons do not report clicks.
func (r *Renderer) outlineButton(gtx layout.Context, clk *widget.Clickable, label string, enabled bool) layout.Dimensions {
	if !enabled {
		gtx = gtx.Disabled()
	}
	fg := colBlack
	if !enabled {
		fg = colDisabled
	}
	return widget.Border{Color: colLightGray, Width: unit.Dp(1), CornerRadius: unit.Dp(6)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return material.Clickable(gtx, clk, func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, label)
						lbl.Color = fg
						return lbl.Layout(gtx)
					})
			})
		})
}

// hline draws a 1dp horizontal separator across the available width.
func hline(gtx layout.Context) layout.Dimensions {
	size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(1))
	paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: size}.Op())
	return layout.Dimensions{Size: size}
}

// vline draws a 1dp vertical separator across the available height.
func vline(gtx layout.Context) layout.Dimensions {
	size := image.Pt(gtx.Dp(1), gtx.Constraints.Max.Y)
	paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: size}.Op())
	return layout.Dimensions{Size: size}
}

// drawFolderIcon draws a folder glyph into a size×size box. Open folders
// get a slanted front flap.
func drawFolderIcon(ops *op.Ops, size int, open bool, outer color.NRGBA) {
	s := float32(size)

	bodyX := int(s * 0.08)
	bodyY := int(s * 0.28)
	bodyW := int(s * 0.84)
	bodyH := int(s * 0.60)

	fill := color.NRGBA{
		R: uint8(min(255, int(outer.R)+150)),
		G: uint8(min(255, int(outer.G)+150)),
		B: uint8(min(255, int(outer.B)+150)),
		A: 255,
	}

	// Tab
	tabW := int(s * 0.36)
	tabH := int(s * 0.12)
	paint.FillShape(ops, outer, clip.Rect{
		Min: image.Pt(bodyX, bodyY-tabH),
		Max: image.Pt(bodyX+tabW, bodyY+1),
	}.Op())

	// Body
	paint.FillShape(ops, outer, clip.Rect{
		Min: image.Pt(bodyX, bodyY),
		Max: image.Pt(bodyX+bodyW, bodyY+bodyH),
	}.Op())
	border := max(1, size/12)
	paint.FillShape(ops, fill, clip.Rect{
		Min: image.Pt(bodyX+border, bodyY+border),
		Max: image.Pt(bodyX+bodyW-border, bodyY+bodyH-border),
	}.Op())

	if !open {
		return
	}
	// Front flap, shifted right at the bottom
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(f32.Pt(float32(bodyX)+s*0.14, float32(bodyY)+s*0.22))
	p.LineTo(f32.Pt(s*0.98, float32(bodyY)+s*0.22))
	p.LineTo(f32.Pt(float32(bodyX+bodyW), float32(bodyY+bodyH)))
	p.LineTo(f32.Pt(float32(bodyX), float32(bodyY+bodyH)))
	p.Close()
	paint.FillShape(ops, outer, clip.Outline{Path: p.End()}.Op())
}

// drawFileIcon draws a page glyph with a folded corner.
func drawFileIcon(ops *op.Ops, size int, outer color.NRGBA) {
	s := float32(size)

	x := int(s * 0.22)
	y := int(s * 0.08)
	w := int(s * 0.56)
	h := int(s * 0.84)
	border := max(1, size/12)

	paint.FillShape(ops, outer, clip.Rect{Min: image.Pt(x, y), Max: image.Pt(x+w, y+h)}.Op())
	paint.FillShape(ops, colCard, clip.Rect{
		Min: image.Pt(x+border, y+border),
		Max: image.Pt(x+w-border, y+h-border),
	}.Op())

	corner := int(s * 0.18)
	paint.FillShape(ops, outer, clip.Rect{
		Min: image.Pt(x+w-corner, y),
		Max: image.Pt(x+w, y+corner),
	}.Op())
}

// drawChevron draws a right-pointing (collapsed) or down-pointing
// (expanded) chevron centred in a size×size box.
func drawChevron(ops *op.Ops, size int, expanded bool, col color.NRGBA) {
	s := float32(size)
	var p clip.Path
	p.Begin(ops)
	if expanded {
		p.MoveTo(f32.Pt(s*0.25, s*0.38))
		p.LineTo(f32.Pt(s*0.50, s*0.62))
		p.LineTo(f32.Pt(s*0.75, s*0.38))
	} else {
		p.MoveTo(f32.Pt(s*0.38, s*0.25))
		p.LineTo(f32.Pt(s*0.62, s*0.50))
		p.LineTo(f32.Pt(s*0.38, s*0.75))
	}
	paint.FillShape(ops, col, clip.Stroke{Path: p.End(), Width: max(1.5, s/10)}.Op())
}
