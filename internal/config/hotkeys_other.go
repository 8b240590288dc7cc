//go:build !darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for Windows/Linux
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		PrevPage:     "Left",
		NextPage:     "Right",
		MoreColumns:  "Ctrl+Up",
		FewerColumns: "Ctrl+Down",
		Home:         "Alt+Home",

		SaveMask:    "Ctrl+S",
		ClearMask:   "Ctrl+Backspace",
		CloseEditor: "Escape",
	}
}
