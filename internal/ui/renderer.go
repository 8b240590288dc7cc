package ui

import (
	"image/color"
	"strconv"
	"strings"

	"gioui.org/font"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/maskr/internal/config"
	"github.com/justyntemme/maskr/internal/debug"
	"github.com/justyntemme/maskr/internal/gallery"
	"github.com/justyntemme/maskr/internal/tree"
)

// Options configures a Renderer.
type Options struct {
	ConfigError string
	DarkMode    bool
	RailWidth   int      // dp
	Expanded    []string // folders expanded at startup
	BrushColor  string   // "#rrggbb"
	BrushWidth  float32  // surface units
	Thumbs      *ThumbnailCache
	Keymap      *config.Keymap // nil uses the platform defaults
}

// cellState holds the widgets of one gallery cell, keyed by image ID.
type cellState struct {
	hover   widget.Clickable
	drawBtn widget.Clickable
}

type Renderer struct {
	Theme       *material.Theme
	ConfigError string
	DarkMode    bool

	railWidth  unit.Dp
	brushColor color.NRGBA
	brushWidth float32

	thumbs *ThumbnailCache
	toasts toastStack
	keys   *config.Keymap

	// Landing
	landingTop    []MarkdownBlock
	landingBottom []MarkdownBlock
	openExplorer  widget.Clickable
	homeBtn       widget.Clickable

	// Folder rail
	treeView  *tree.View
	treeList  widget.List
	rowClicks map[string]*widget.Clickable

	// Gallery header and grid
	columnsEditor widget.Editor
	colDecBtn     widget.Clickable
	colIncBtn     widget.Clickable
	galleryList   widget.List
	cells         map[int]*cellState
	prevBtn       widget.Clickable
	nextBtn       widget.Clickable

	// Mask editor
	canvasTag   int
	backdropTag int
	clearBtn    widget.Clickable
	saveBtn     widget.Clickable
	closeBtn    widget.Clickable
	bgOp        paint.ImageOp
	bgGen       uint64 // editor generation bgOp was built for
	bgValid     bool
	strokes     []UIEvent // strokes completed this frame
}

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		Theme:       material.NewTheme(),
		ConfigError: opts.ConfigError,
		DarkMode:    opts.DarkMode,
		railWidth:   unit.Dp(opts.RailWidth),
		brushColor:  parseHexColor(opts.BrushColor, colBrush),
		brushWidth:  opts.BrushWidth,
		thumbs:      opts.Thumbs,
		keys:        opts.Keymap,
		treeView:    tree.NewView(opts.Expanded...),
		rowClicks:   make(map[string]*widget.Clickable),
		cells:       make(map[int]*cellState),
	}
	if r.railWidth <= 0 {
		r.railWidth = 320
	}
	if r.keys == nil {
		r.keys = config.NewKeymap(config.DefaultHotkeys())
	}
	if r.brushWidth <= 0 {
		r.brushWidth = 3
	}
	r.treeList.Axis = layout.Vertical
	r.galleryList.Axis = layout.Vertical
	r.columnsEditor.SingleLine = true
	r.columnsEditor.Submit = true
	r.columnsEditor.Alignment = text.Middle

	r.landingTop, r.landingBottom = splitAtRule(ParseMarkdown(landingMarkdown))
	r.applyTheme()
	return r
}

func (r *Renderer) applyTheme() {
	if r.DarkMode {
		applyDarkColors()
	}
	r.Theme.Palette.Bg = colWhite
	r.Theme.Palette.Fg = colBlack
	r.Theme.Palette.ContrastBg = colAccent
	r.Theme.Palette.ContrastFg = colPrimaryBtnText
}

// Layout draws one frame and returns the actions the user asked for, in
// the order they must be handled: completed strokes, then hotkeys, then
// the clicked control.
func (r *Renderer) Layout(gtx layout.Context, state *State) []UIEvent {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, colPage, clip.Rect{Max: gtx.Constraints.Max}.Op())

	r.strokes = r.strokes[:0]
	hotkeys := r.processGlobalInput(gtx, state)
	var eventOut UIEvent

	layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				// Config error banner (shown when config.json failed to parse)
				layout.Rigid(r.layoutConfigErrorBanner),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					if state.Screen == ScreenExplorer {
						return r.layoutExplorer(gtx, state, &eventOut)
					}
					return r.layoutLanding(gtx, &eventOut)
				}),
			)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			if state.Screen != ScreenExplorer || state.Editor == nil || !state.Editor.IsOpen() {
				return layout.Dimensions{}
			}
			return r.layoutEditor(gtx, state, &eventOut)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return r.layoutToasts(gtx)
		}),
	)

	events := make([]UIEvent, 0, len(r.strokes)+len(hotkeys)+1)
	events = append(events, r.strokes...)
	events = append(events, hotkeys...)
	if eventOut.Action != ActionNone {
		events = append(events, eventOut)
	}
	for _, evt := range events {
		debug.Log(debug.UI, "event %s", evt.Action)
	}
	return events
}

// processGlobalInput handles the window-wide hotkeys. Gallery keys only
// work while the mask editor is closed, editor keys only while it is open.
// A focused text field keeps its own keys.
func (r *Renderer) processGlobalInput(gtx layout.Context, state *State) []UIEvent {
	var out []UIEvent
	filters := r.keys.Filters(nil)
	if len(filters) == 0 {
		return out
	}
	editorOpen := state.Editor != nil && state.Editor.IsOpen()
	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press || state.Screen != ScreenExplorer {
			continue
		}
		if evt := r.hotkeyAction(k, state, editorOpen); evt.Action != ActionNone {
			debug.Log(debug.UI, "hotkey %s -> %s", k.Name, evt.Action)
			out = append(out, evt)
		}
	}
	return out
}

func (r *Renderer) hotkeyAction(k key.Event, state *State, editorOpen bool) UIEvent {
	km := r.keys
	if editorOpen {
		switch {
		case km.CloseEditor.Matches(k):
			return UIEvent{Action: ActionCloseEditor}
		case km.SaveMask.Matches(k):
			return UIEvent{Action: ActionSaveAndClose}
		case km.ClearMask.Matches(k):
			return UIEvent{Action: ActionClearMask}
		}
		return UIEvent{}
	}
	page := state.Page
	switch {
	case km.PrevPage.Matches(k) && page.TotalPages > 0 && page.PrevEnabled:
		return UIEvent{Action: ActionPageChange, Page: page.Prev()}
	case km.NextPage.Matches(k) && page.TotalPages > 0 && page.NextEnabled:
		return UIEvent{Action: ActionPageChange, Page: page.Next()}
	case km.MoreColumns.Matches(k) && state.ColumnsPerRow < gallery.MaxColumns:
		return UIEvent{Action: ActionSetColumns, Columns: state.ColumnsPerRow + 1}
	case km.FewerColumns.Matches(k) && state.ColumnsPerRow > gallery.MinColumns:
		return UIEvent{Action: ActionSetColumns, Columns: state.ColumnsPerRow - 1}
	case km.Home.Matches(k):
		return UIEvent{Action: ActionNavigate, Screen: ScreenLanding}
	}
	return UIEvent{}
}

// layoutConfigErrorBanner renders a red error banner when config.json fails to parse
func (r *Renderer) layoutConfigErrorBanner(gtx layout.Context) layout.Dimensions {
	if r.ConfigError == "" {
		return layout.Dimensions{}
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, colErrorBannerBg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, "Config error: "+r.ConfigError+" (using defaults)")
					lbl.Color = colErrorBannerText
					lbl.Font.Weight = font.Bold
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				})
		}),
	)
}

// parseHexColor parses "#rrggbb". Anything else yields def.
func parseHexColor(s string, def color.NRGBA) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
