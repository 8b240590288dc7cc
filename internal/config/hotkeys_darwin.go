//go:build darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for macOS
// Uses Cmd where Windows/Linux use Ctrl
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		PrevPage:     "Left",
		NextPage:     "Right",
		MoreColumns:  "Cmd+Up",
		FewerColumns: "Cmd+Down",
		Home:         "Cmd+Shift+H",

		SaveMask:    "Cmd+S",
		ClearMask:   "Cmd+Backspace",
		CloseEditor: "Escape",
	}
}
