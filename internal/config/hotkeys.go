package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// HotkeysConfig holds keyboard shortcuts as strings like "Ctrl+S".
// An empty string disables the binding.
type HotkeysConfig struct {
	// Gallery
	PrevPage     string `json:"prevPage"`
	NextPage     string `json:"nextPage"`
	MoreColumns  string `json:"moreColumns"`
	FewerColumns string `json:"fewerColumns"`
	Home         string `json:"home"` // back to the landing screen

	// Mask editor
	SaveMask    string `json:"saveMask"`
	ClearMask   string `json:"clearMask"`
	CloseEditor string `json:"closeEditor"`
}

// Hotkey represents a parsed keyboard shortcut
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

// ParseHotkey parses a hotkey string like "Ctrl+Shift+N" into a Hotkey struct
func ParseHotkey(s string) Hotkey {
	if s == "" {
		return Hotkey{}
	}

	var mods key.Modifiers
	var rawKeyPart string

	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt", "option":
			mods |= key.ModAlt
		case "cmd", "command":
			mods |= key.ModCommand
		case "super", "meta", "win", "windows":
			mods |= key.ModSuper
		default:
			rawKeyPart = part
		}
	}

	keyName := parseKeyName(rawKeyPart)

	// Gio reports the shifted character (Shift+1 = "!")
	if mods.Contain(key.ModShift) {
		if shifted, ok := shiftedNumbers[string(keyName)]; ok {
			keyName = key.Name(shifted)
		}
	}

	return Hotkey{Key: keyName, Modifiers: mods}
}

// shiftedNumbers maps number keys to their shifted equivalents (US layout)
var shiftedNumbers = map[string]string{
	"1": "!", "2": "@", "3": "#", "4": "$", "5": "%",
	"6": "^", "7": "&", "8": "*", "9": "(", "0": ")",
}

var unshiftedNumbers = map[string]string{
	"!": "1", "@": "2", "#": "3", "$": "4", "%": "5",
	"^": "6", "&": "7", "*": "8", "(": "9", ")": "0",
}

var namedKeys = map[string]key.Name{
	"up": key.NameUpArrow, "uparrow": key.NameUpArrow,
	"down": key.NameDownArrow, "downarrow": key.NameDownArrow,
	"left": key.NameLeftArrow, "leftarrow": key.NameLeftArrow,
	"right": key.NameRightArrow, "rightarrow": key.NameRightArrow,
	"home": key.NameHome, "end": key.NameEnd,
	"pageup": key.NamePageUp, "pgup": key.NamePageUp,
	"pagedown": key.NamePageDown, "pgdn": key.NamePageDown, "pgdown": key.NamePageDown,
	"enter": key.NameReturn, "return": key.NameReturn,
	"tab": key.NameTab, "space": key.NameSpace, "spacebar": key.NameSpace,
	"backspace": key.NameDeleteBackward, "back": key.NameDeleteBackward,
	"delete": key.NameDeleteForward, "del": key.NameDeleteForward,
	"escape": key.NameEscape, "esc": key.NameEscape,
	"f1": key.NameF1, "f2": key.NameF2, "f3": key.NameF3, "f4": key.NameF4,
	"f5": key.NameF5, "f6": key.NameF6, "f7": key.NameF7, "f8": key.NameF8,
	"f9": key.NameF9, "f10": key.NameF10, "f11": key.NameF11, "f12": key.NameF12,
}

// keyLabels names the keys whose Gio name is a glyph.
var keyLabels = map[key.Name]string{
	key.NameUpArrow:        "Up",
	key.NameDownArrow:      "Down",
	key.NameLeftArrow:      "Left",
	key.NameRightArrow:     "Right",
	key.NameHome:           "Home",
	key.NameEnd:            "End",
	key.NamePageUp:         "PageUp",
	key.NamePageDown:       "PageDown",
	key.NameReturn:         "Enter",
	key.NameTab:            "Tab",
	key.NameSpace:          "Space",
	key.NameDeleteBackward: "Backspace",
	key.NameDeleteForward:  "Delete",
	key.NameEscape:         "Esc",
}

// parseKeyName converts a key string to Gio's key.Name. Letters are
// upper-cased; unknown names pass through unchanged.
func parseKeyName(s string) key.Name {
	if len(s) == 1 {
		return key.Name(strings.ToUpper(s))
	}
	if n, ok := namedKeys[strings.ToLower(s)]; ok {
		return n
	}
	return key.Name(s)
}

// Matches checks if a key event matches this hotkey
// Uses exact matching for modifiers to distinguish between similar hotkeys
// (e.g., Ctrl+H vs Ctrl+Shift+H)
func (h Hotkey) Matches(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	return k.Name == h.Key && k.Modifiers == h.Modifiers
}

// IsEmpty returns true if the hotkey is not configured
func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

// String returns a human-readable representation of the hotkey
func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}

	var parts []string
	if h.Modifiers.Contain(key.ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers.Contain(key.ModCommand) {
		parts = append(parts, "Cmd")
	}
	if h.Modifiers.Contain(key.ModShift) {
		parts = append(parts, "Shift")
	}
	if h.Modifiers.Contain(key.ModAlt) {
		parts = append(parts, "Alt")
	}
	if h.Modifiers.Contain(key.ModSuper) {
		parts = append(parts, "Super")
	}

	// For display, convert shifted number symbols back to their original keys
	keyStr := string(h.Key)
	if label, ok := keyLabels[h.Key]; ok {
		keyStr = label
	}
	if h.Modifiers.Contain(key.ModShift) {
		if original, ok := unshiftedNumbers[keyStr]; ok {
			keyStr = original
		}
	}
	parts = append(parts, keyStr)
	return strings.Join(parts, "+")
}

// Filter returns a key.Filter that matches this hotkey
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{
		Focus:    focus,
		Name:     h.Key,
		Required: h.Modifiers,
	}
}

// Keymap is the parsed form of HotkeysConfig.
type Keymap struct {
	PrevPage     Hotkey
	NextPage     Hotkey
	MoreColumns  Hotkey
	FewerColumns Hotkey
	Home         Hotkey

	SaveMask    Hotkey
	ClearMask   Hotkey
	CloseEditor Hotkey
}

// NewKeymap parses every binding of cfg.
func NewKeymap(cfg HotkeysConfig) *Keymap {
	return &Keymap{
		PrevPage:     ParseHotkey(cfg.PrevPage),
		NextPage:     ParseHotkey(cfg.NextPage),
		MoreColumns:  ParseHotkey(cfg.MoreColumns),
		FewerColumns: ParseHotkey(cfg.FewerColumns),
		Home:         ParseHotkey(cfg.Home),

		SaveMask:    ParseHotkey(cfg.SaveMask),
		ClearMask:   ParseHotkey(cfg.ClearMask),
		CloseEditor: ParseHotkey(cfg.CloseEditor),
	}
}

// Filters returns one key.Filter per configured binding.
func (k *Keymap) Filters(focus event.Tag) []event.Filter {
	var out []event.Filter
	for _, h := range []Hotkey{
		k.PrevPage, k.NextPage, k.MoreColumns, k.FewerColumns, k.Home,
		k.SaveMask, k.ClearMask, k.CloseEditor,
	} {
		if !h.IsEmpty() {
			out = append(out, h.Filter(focus))
		}
	}
	return out
}
