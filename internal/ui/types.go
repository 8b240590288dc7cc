package ui

import (
	"github.com/justyntemme/maskr/internal/gallery"
	"github.com/justyntemme/maskr/internal/mask"
	"github.com/justyntemme/maskr/internal/tree"
)

// Screen is one of the two top-level views.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenExplorer
)

func (s Screen) String() string {
	if s == ScreenExplorer {
		return "/explorer"
	}
	return "/"
}

type UIAction int

const (
	ActionNone UIAction = iota
	ActionNavigate      // Screen
	ActionSelectFolder  // Path
	ActionSetColumns    // Columns
	ActionPageChange    // Page
	ActionOpenEditor    // ImageID
	ActionStrokeComplete
	ActionClearMask
	ActionSaveAndClose
	ActionCloseEditor
)

var actionNames = [...]string{
	"None", "Navigate", "SelectFolder", "SetColumns", "PageChange",
	"OpenEditor", "StrokeComplete", "ClearMask", "SaveAndClose", "CloseEditor",
}

func (a UIAction) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// UIEvent is returned from Renderer.Layout when the user asked for
// something the renderer cannot do on its own.
type UIEvent struct {
	Action  UIAction
	Screen  Screen
	Path    string
	Columns int
	Page    int
	ImageID int
	Points  []mask.Point
}

// State is everything the renderer needs to draw a frame. It is owned by
// the orchestrator and only read by the renderer, except for Editor whose
// pointer input the canvas feeds directly.
type State struct {
	Screen Screen

	Forest         []*tree.Node
	SelectedFolder string

	ColumnsPerRow int
	Page          gallery.Page
	CatalogErr    string
	Loading       bool

	Editor     *mask.Editor
	SavedMasks int // exports recorded for the current editor session
	ExportDir  string
}
