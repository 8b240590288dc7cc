package ui

import (
	"image"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/maskr/internal/catalog"
	"github.com/justyntemme/maskr/internal/gallery"
)

const galleryGap = unit.Dp(16)

func (r *Renderer) cell(id int) *cellState {
	c, ok := r.cells[id]
	if !ok {
		c = new(cellState)
		r.cells[id] = c
	}
	return c
}

// layoutGallery renders the current page as a grid with a pagination bar
// below it when there is more than one page.
func (r *Renderer) layoutGallery(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	page := state.Page

	switch {
	case state.CatalogErr != "":
		return r.layoutGalleryMessage(gtx, "Could not load images", state.CatalogErr)
	case state.Loading && page.Total == 0:
		return r.layoutGalleryMessage(gtx, "Loading images…", "")
	case page.Total == 0:
		return r.layoutGalleryMessage(gtx, "No images in this folder", "")
	}

	for _, img := range page.Items {
		if r.cell(img.ID).drawBtn.Clicked(gtx) {
			*eventOut = UIEvent{Action: ActionOpenEditor, ImageID: img.ID}
		}
	}

	cols := gallery.ClampColumns(state.ColumnsPerRow)
	rows := gallery.Rows(page.Items, cols)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.List(r.Theme, &r.galleryList).Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
				return layout.Inset{Bottom: galleryGap}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return r.layoutGalleryRow(gtx, rows[i], cols)
				})
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !page.ShowBar {
				return layout.Dimensions{}
			}
			return r.layoutPagination(gtx, page, eventOut)
		}),
	)
}

// layoutGalleryRow lays out one row of equal-width cells. Short rows keep
// the same cell width as full ones.
func (r *Renderer) layoutGalleryRow(gtx layout.Context, items []catalog.Image, cols int) layout.Dimensions {
	gap := gtx.Dp(galleryGap)
	width := gallery.CellWidth(gtx.Constraints.Max.X, cols, gap)

	children := make([]layout.FlexChild, 0, 2*cols)
	for i := 0; i < cols; i++ {
		if i > 0 {
			children = append(children, layout.Rigid(layout.Spacer{Width: galleryGap}.Layout))
		}
		if i >= len(items) {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: image.Pt(width, 0)}
			}))
			continue
		}
		img := items[i]
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X, gtx.Constraints.Max.X = width, width
			return r.layoutGalleryCell(gtx, img, width)
		}))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

// layoutGalleryCell draws a card with a square cover thumbnail and the
// title. Hovering shows the "Draw Mask" action.
func (r *Renderer) layoutGalleryCell(gtx layout.Context, img catalog.Image, width int) layout.Dimensions {
	cs := r.cell(img.ID)
	hovered := cs.hover.Hovered() || cs.drawBtn.Hovered()

	return cs.hover.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.panel(gtx, unit.Dp(8), func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints = layout.Exact(image.Pt(width, width))
					return layout.Stack{}.Layout(gtx,
						layout.Stacked(func(gtx layout.Context) layout.Dimensions {
							gtx.Constraints.Min = gtx.Constraints.Max
							return r.layoutThumbnail(gtx, img.Src)
						}),
						layout.Expanded(func(gtx layout.Context) layout.Dimensions {
							if !hovered {
								return layout.Dimensions{Size: gtx.Constraints.Min}
							}
							paint.FillShape(gtx.Ops, colHoverShade, clip.Rect{Max: gtx.Constraints.Min}.Op())
							return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								gtx.Constraints.Min = image.Point{}
								btn := material.Button(r.Theme, &cs.drawBtn, "Draw Mask")
								btn.Background = colCard
								btn.Color = colBlack
								btn.CornerRadius = unit.Dp(16)
								btn.TextSize = unit.Sp(13)
								return btn.Layout(gtx)
							})
						}),
					)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						gtx.Constraints.Min.X = gtx.Constraints.Max.X
						lbl := material.Body2(r.Theme, img.Title)
						lbl.Font.Weight = font.Medium
						lbl.Color = colBlack
						lbl.MaxLines = 1
						lbl.Truncator = "…"
						return lbl.Layout(gtx)
					})
				}),
			)
		})
	})
}

// layoutThumbnail paints the cached thumbnail with cover fit, or a
// placeholder while it loads or after it failed.
func (r *Renderer) layoutThumbnail(gtx layout.Context, src string) layout.Dimensions {
	size := gtx.Constraints.Min
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()

	if r.thumbs != nil {
		if imgOp, _, ok := r.thumbs.Get(src); ok {
			return widget.Image{Src: imgOp, Fit: widget.Cover, Position: layout.Center}.Layout(gtx)
		}
		if !r.thumbs.Failed(src) {
			r.thumbs.RequestLoad(src)
		}
	}

	paint.FillShape(gtx.Ops, colPlaceholder, clip.Rect{Max: size}.Op())
	icon := min(size.X, size.Y) / 4
	if icon > 0 {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			drawFileIcon(gtx.Ops, icon, colLightGray)
			return layout.Dimensions{Size: image.Pt(icon, icon)}
		})
	}
	return layout.Dimensions{Size: size}
}

// layoutPagination is the footer: summary on the left, Previous, range
// and Next on the right.
func (r *Renderer) layoutPagination(gtx layout.Context, page gallery.Page, eventOut *UIEvent) layout.Dimensions {
	if r.prevBtn.Clicked(gtx) && page.PrevEnabled {
		*eventOut = UIEvent{Action: ActionPageChange, Page: page.Prev()}
	}
	if r.nextBtn.Clicked(gtx) && page.NextEnabled {
		*eventOut = UIEvent{Action: ActionPageChange, Page: page.Next()}
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(hline),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, page.Summary())
						lbl.Color = colGray
						return lbl.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return r.outlineButton(gtx, &r.prevBtn, "‹ Previous", page.PrevEnabled)
							}),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
									lbl := material.Body2(r.Theme, page.RangeLabel())
									lbl.Color = colGray
									return lbl.Layout(gtx)
								})
							}),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return r.outlineButton(gtx, &r.nextBtn, "Next ›", page.NextEnabled)
							}),
						)
					}),
				)
			})
		}),
	)
}

// layoutGalleryMessage fills the gallery area with a centred notice.
func (r *Renderer) layoutGalleryMessage(gtx layout.Context, title, detail string) layout.Dimensions {
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(480))
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body1(r.Theme, title)
				lbl.Color = colGray
				lbl.Font.Weight = font.Medium
				return lbl.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if detail == "" {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, detail)
					lbl.Color = colDangerBtn
					lbl.Alignment = text.Middle
					return lbl.Layout(gtx)
				})
			}),
		)
	})
}
