package ui

import "github.com/charmbracelet/lipgloss"

// Semantic Color Palette
// Telegram's blue accent over neutral greys, readable on light and dark terminals.

// Accent colors
var (
	// Accent is the primary brand/focus color
	Accent = lipgloss.AdaptiveColor{Light: "#2481CC", Dark: "#2AABEE"}

	// AccentMuted is used for the collapsed header and the tab track
	AccentMuted = lipgloss.AdaptiveColor{Light: "#9DC6E8", Dark: "#1E5A7A"}

	// Unread is the badge color for chats with unread messages
	Unread = lipgloss.AdaptiveColor{Light: "#4FAE4E", Dark: "#4FAE4E"}

	// UnreadMuted is the badge color for muted chats and channels
	UnreadMuted = lipgloss.AdaptiveColor{Light: "#A5ADB6", Dark: "#5D6670"}

	// Danger marks errors and destructive settings
	Danger = lipgloss.AdaptiveColor{Light: "#E53935", Dark: "#EF5350"}
)

// UI chrome colors - structural elements
var (
	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for previews and labels
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and timestamps
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// Background is the chat background behind the sheet
	Background = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1a1a1a"}

	// BackgroundSheet is the sheet body
	BackgroundSheet = lipgloss.AdaptiveColor{Light: "#F7F8FA", Dark: "#212A33"}

	// BackgroundSelected is for the selected row
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#2B3A4A"}
)

// Peer icons, shape + color so kinds stay distinguishable without color.
const (
	IconUser    = "●"
	IconBot     = "◈"
	IconGroup   = "◆"
	IconChannel = "▶"
	IconPinned  = "▴"
	IconOn      = "◉"
	IconOff     = "○"
)

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Danger    lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
	Accent:    lipgloss.NewStyle().Foreground(Accent).Bold(true),
	Danger:    lipgloss.NewStyle().Foreground(Danger),
}

// SheetStyle paints the body rows of the sheet.
func SheetStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(BackgroundSheet)
}

// BadgeStyle creates a styled badge with the given color
func BadgeStyle(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1)
}

// OverlayStyle creates a style for overlay/modal containers
func OverlayStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2)
}
