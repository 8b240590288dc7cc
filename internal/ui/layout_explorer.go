package ui

import (
	"strconv"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/maskr/internal/gallery"
)

// layoutExplorer is the two-pane screen: folder rail on the left, gallery
// header and grid on the right.
func (r *Renderer) layoutExplorer(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			w := gtx.Dp(r.railWidth)
			gtx.Constraints.Min.X, gtx.Constraints.Max.X = w, w
			gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
			paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						lbl := material.H6(r.Theme, "Explorer")
						lbl.Color = colBlack
						lbl.Font.Weight = font.SemiBold
						return lbl.Layout(gtx)
					})
				}),
				layout.Rigid(hline),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return r.layoutTree(gtx, state, eventOut)
				}),
			)
		}),
		layout.Rigid(vline),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutGalleryHeader(gtx, state, eventOut)
				}),
				layout.Rigid(hline),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return r.layoutGallery(gtx, state, eventOut)
					})
				}),
			)
		}),
	)
}

// layoutGalleryHeader shows the selected folder and the columns control.
func (r *Renderer) layoutGalleryHeader(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	r.updateColumnsInput(gtx, state, eventOut)

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, colWhite, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if r.homeBtn.Clicked(gtx) {
							*eventOut = UIEvent{Action: ActionNavigate, Screen: ScreenLanding}
						}
						return r.outlineButton(gtx, &r.homeBtn, "Home", true)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body1(r.Theme, state.SelectedFolder)
						lbl.Font.Weight = font.Medium
						lbl.Color = colBlack
						lbl.MaxLines = 1
						lbl.Truncator = "…"
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(24)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, "Images per row:")
						lbl.Color = colGray
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return r.outlineButton(gtx, &r.colDecBtn, "-", state.ColumnsPerRow > gallery.MinColumns)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return widget.Border{Color: colLightGray, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
							func(gtx layout.Context) layout.Dimensions {
								w := gtx.Dp(48)
								gtx.Constraints.Min.X, gtx.Constraints.Max.X = w, w
								return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx,
									material.Editor(r.Theme, &r.columnsEditor, "").Layout)
							})
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return r.outlineButton(gtx, &r.colIncBtn, "+", state.ColumnsPerRow < gallery.MaxColumns)
					}),
				)
			})
		}),
	)
}

// updateColumnsInput turns edits of the columns field into SetColumns
// events. Any text is accepted and clamped; the field shows the clamped
// value again once it loses focus or is submitted.
func (r *Renderer) updateColumnsInput(gtx layout.Context, state *State, eventOut *UIEvent) {
	if r.colDecBtn.Clicked(gtx) && state.ColumnsPerRow > gallery.MinColumns {
		*eventOut = UIEvent{Action: ActionSetColumns, Columns: state.ColumnsPerRow - 1}
	}
	if r.colIncBtn.Clicked(gtx) && state.ColumnsPerRow < gallery.MaxColumns {
		*eventOut = UIEvent{Action: ActionSetColumns, Columns: state.ColumnsPerRow + 1}
	}

	for {
		ev, ok := r.columnsEditor.Update(gtx)
		if !ok {
			break
		}
		switch ev.(type) {
		case widget.ChangeEvent:
			n := gallery.ParseColumns(r.columnsEditor.Text())
			if n != state.ColumnsPerRow {
				*eventOut = UIEvent{Action: ActionSetColumns, Columns: n}
			}
		case widget.SubmitEvent:
			n := gallery.ParseColumns(r.columnsEditor.Text())
			r.columnsEditor.SetText(strconv.Itoa(n))
			if n != state.ColumnsPerRow {
				*eventOut = UIEvent{Action: ActionSetColumns, Columns: n}
			}
		}
	}

	if !gtx.Focused(&r.columnsEditor) {
		if want := strconv.Itoa(state.ColumnsPerRow); r.columnsEditor.Text() != want {
			r.columnsEditor.SetText(want)
		}
	}
}
