package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/maskr/internal/tree"
)

const (
	treeRowPad   = 8  // dp added to every row's indent
	treeSlotSize = 16 // dp, chevron slot and icon
)

func (r *Renderer) rowClick(path string) *widget.Clickable {
	clk, ok := r.rowClicks[path]
	if !ok {
		clk = new(widget.Clickable)
		r.rowClicks[path] = clk
	}
	return clk
}

// layoutTree renders the visible rows of the folder tree. Clicking a
// folder selects it and toggles it when it has children; files ignore
// clicks.
func (r *Renderer) layoutTree(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	rows := r.treeView.Rows(state.Forest, state.SelectedFolder)

	// Handle clicks before laying out so a toggle shows this frame
	for _, row := range rows {
		if !r.rowClick(row.Node.Path).Clicked(gtx) {
			continue
		}
		if path, ok := r.treeView.Click(row.Node); ok {
			*eventOut = UIEvent{Action: ActionSelectFolder, Path: path}
		}
	}
	rows = r.treeView.Rows(state.Forest, state.SelectedFolder)

	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return material.List(r.Theme, &r.treeList).Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
			return r.layoutTreeRow(gtx, rows[i])
		})
	})
}

func (r *Renderer) layoutTreeRow(gtx layout.Context, row tree.Row) layout.Dimensions {
	clk := r.rowClick(row.Node.Path)
	folder := row.Node.IsFolder()

	return clk.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				switch {
				case row.Selected:
					paint.FillShape(gtx.Ops, colSelected, clip.Rect{Max: gtx.Constraints.Min}.Op())
				case folder && clk.Hovered():
					paint.FillShape(gtx.Ops, colPlaceholder, clip.Rect{Max: gtx.Constraints.Min}.Op())
				}
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				inset := layout.Inset{
					Top:    unit.Dp(6),
					Bottom: unit.Dp(6),
					Left:   unit.Dp(row.Indent + treeRowPad),
					Right:  unit.Dp(8),
				}
				return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						// Leaf rows keep the slot empty so names line up
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							size := gtx.Dp(treeSlotSize)
							if row.HasChildren {
								drawChevron(gtx.Ops, size, row.Expanded, colGray)
							}
							return layout.Dimensions{Size: image.Pt(size, size)}
						}),
						layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							size := gtx.Dp(treeSlotSize)
							if folder {
								drawFolderIcon(gtx.Ops, size, row.Expanded, colAccent)
							} else {
								drawFileIcon(gtx.Ops, size, colGray)
							}
							return layout.Dimensions{Size: image.Pt(size, size)}
						}),
						layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(r.Theme, row.Node.Name)
							lbl.MaxLines = 1
							switch {
							case row.Selected:
								lbl.Color = colDirBlue
							case folder:
								lbl.Color = colBlack
							default:
								lbl.Color = colGray
							}
							return lbl.Layout(gtx)
						}),
					)
				})
			}),
		)
	})
}
