package ui

import (
	"image"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

func (r *Renderer) layoutLanding(gtx layout.Context, eventOut *UIEvent) layout.Dimensions {
	if r.openExplorer.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionNavigate, Screen: ScreenExplorer}
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(640))

		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Bottom: unit.Dp(24)}.Layout(gtx, r.layoutLandingBadge)
			}),
		}
		for _, b := range r.landingTop {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.LayoutMarkdownBlock(gtx, b)
			}))
		}
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(24), Bottom: unit.Dp(40)}.Layout(gtx, r.layoutOpenExplorerButton)
		}))
		for _, b := range r.landingBottom {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.LayoutMarkdownBlock(gtx, b)
			}))
		}

		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

// layoutLandingBadge is the round white badge with a folder glyph.
func (r *Renderer) layoutLandingBadge(gtx layout.Context) layout.Dimensions {
	size := gtx.Dp(80)
	paint.FillShape(gtx.Ops, colShadow, clip.Ellipse{Min: image.Pt(0, gtx.Dp(3)), Max: image.Pt(size, size+gtx.Dp(3))}.Op(gtx.Ops))
	paint.FillShape(gtx.Ops, colCard, clip.Ellipse{Max: image.Pt(size, size)}.Op(gtx.Ops))

	icon := gtx.Dp(32)
	off := op.Offset(image.Pt((size-icon)/2, (size-icon)/2)).Push(gtx.Ops)
	drawFolderIcon(gtx.Ops, icon, false, colAccent)
	off.Pop()
	return layout.Dimensions{Size: image.Pt(size, size+gtx.Dp(3))}
}

func (r *Renderer) layoutOpenExplorerButton(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(420))
	border := colLightGray
	if r.openExplorer.Hovered() {
		border = colAccent
	}
	return r.openExplorer.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Dp(12)
				rect := image.Rectangle{Max: gtx.Constraints.Min}
				paint.FillShape(gtx.Ops, colShadow, clip.RRect{Rect: rect.Add(image.Pt(0, gtx.Dp(2))), NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
				paint.FillShape(gtx.Ops, border, clip.RRect{Rect: rect, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
				inner := rect.Inset(gtx.Dp(1))
				paint.FillShape(gtx.Ops, colCard, clip.RRect{Rect: inner, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(16), Bottom: unit.Dp(16), Left: unit.Dp(32), Right: unit.Dp(32)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								size := gtx.Dp(24)
								drawFileIcon(gtx.Ops, size, colAccent)
								return layout.Dimensions{Size: image.Pt(size, size)}
							}),
							layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
									layout.Rigid(func(gtx layout.Context) layout.Dimensions {
										lbl := material.Body1(r.Theme, "Open File Explorer")
										lbl.Font.Weight = font.SemiBold
										lbl.Color = colBlack
										return lbl.Layout(gtx)
									}),
									layout.Rigid(func(gtx layout.Context) layout.Dimensions {
										lbl := material.Body2(r.Theme, "Browse folders and view image gallery")
										lbl.Color = colGray
										return lbl.Layout(gtx)
									}),
								)
							}),
						)
					})
			}),
		)
	})
}
