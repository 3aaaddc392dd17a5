package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyTop
	KeyBottom
	KeyNextPage
	KeyPrevPage
	KeyEnter
	KeyToggleSheet
	KeyDismiss
	KeyHideByScroll
	KeyOffset
	KeyCopy
	KeyRefresh
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"pgup":      KeyPageUp,
	"pgdown":    KeyPageDown,
	"g":         KeyTop,
	"home":      KeyTop,
	"G":         KeyBottom,
	"end":       KeyBottom,
	"tab":       KeyNextPage,
	"shift+tab": KeyPrevPage,
	"enter":     KeyEnter,
	"s":         KeyToggleSheet,
	" ":         KeyToggleSheet,
	"esc":       KeyDismiss,
	"h":         KeyHideByScroll,
	"o":         KeyOffset,
	"y":         KeyCopy,
	"r":         KeyRefresh,
	"q":         KeyQuit,
	"ctrl+c":    KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	KeyTop: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	KeyBottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	KeyNextPage: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	KeyPrevPage: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "open"),
	),
	KeyToggleSheet: key.NewBinding(
		key.WithKeys("s", " "),
		key.WithHelp("s", "sheet"),
	),
	KeyDismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	KeyHideByScroll: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hide by scroll"),
	),
	KeyOffset: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "offset"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
