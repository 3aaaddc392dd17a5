package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tgsheet/keys"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(Accent)

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the menu can be in
type MenuState int

const (
	// StateChat is the chat view with the sheet hidden.
	StateChat MenuState = iota
	// StateSheet is the sheet open on a list of chats.
	StateSheet
	// StateSheetSettings is the sheet open on a page of toggles.
	StateSheetSettings
	// StateLoading is the sheet waiting for dialogs.
	StateLoading
)

type Menu struct {
	// groups are rendered left to right; the first one is the action group.
	groups        [][]keys.KeyName
	height, width int
	state         MenuState

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

var chatMenuGroups = [][]keys.KeyName{
	{keys.KeyToggleSheet},
	{keys.KeyRefresh, keys.KeyHideByScroll, keys.KeyQuit},
}

var sheetMenuGroups = [][]keys.KeyName{
	{keys.KeyEnter, keys.KeyCopy},
	{keys.KeyUp, keys.KeyDown, keys.KeyTop, keys.KeyBottom},
	{keys.KeyNextPage, keys.KeyDismiss, keys.KeyQuit},
}

var settingsMenuGroups = [][]keys.KeyName{
	{keys.KeyEnter, keys.KeyHideByScroll, keys.KeyOffset},
	{keys.KeyUp, keys.KeyDown},
	{keys.KeyNextPage, keys.KeyDismiss, keys.KeyQuit},
}

var loadingMenuGroups = [][]keys.KeyName{
	{keys.KeyDismiss, keys.KeyQuit},
}

func NewMenu() *Menu {
	m := &Menu{keyDown: -1}
	m.SetState(StateChat)
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// State returns the current menu state.
func (m *Menu) State() MenuState {
	return m.state
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	switch state {
	case StateSheet:
		m.groups = sheetMenuGroups
	case StateSheetSettings:
		m.groups = settingsMenuGroups
	case StateLoading:
		m.groups = loadingMenuGroups
	default:
		m.groups = chatMenuGroups
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	for g, group := range m.groups {
		for i, k := range group {
			binding := keys.GlobalkeyBindings[k]

			var (
				localActionStyle = actionGroupStyle
				localKeyStyle    = keyStyle
				localDescStyle   = descStyle
			)
			if m.keyDown == k {
				localActionStyle = localActionStyle.Underline(true)
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			if g == 0 {
				s.WriteString(localActionStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localActionStyle.Render(binding.Help().Desc))
			} else {
				s.WriteString(localKeyStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localDescStyle.Render(binding.Help().Desc))
			}

			switch {
			case i != len(group)-1:
				s.WriteString(sepStyle.Render(separator))
			case g != len(m.groups)-1:
				s.WriteString(sepStyle.Render(verticalSeparator))
			}
		}
	}

	text := s.String()
	if m.width > 0 {
		text = truncate.StringWithTail(text, uint(m.width), "…")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}
