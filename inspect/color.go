package inspect

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StyleInfo contains styling information for a component.
type StyleInfo struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`

	Bold  bool `json:"bold,omitempty"`
	Faint bool `json:"faint,omitempty"`

	Border  bool  `json:"border,omitempty"`
	Padding []int `json:"padding,omitempty"` // [top, right, bottom, left]

	// AppliedStyles names the styles the component combined.
	AppliedStyles []string `json:"applied_styles,omitempty"`
}

// ExtractStyleInfo extracts style information from a lipgloss style.
func ExtractStyleInfo(style lipgloss.Style, styleNames ...string) *StyleInfo {
	info := &StyleInfo{
		Foreground:    colorToString(style.GetForeground()),
		Background:    colorToString(style.GetBackground()),
		Bold:          style.GetBold(),
		Faint:         style.GetFaint(),
		AppliedStyles: styleNames,
	}

	top, right, bottom, left := style.GetPadding()
	if top > 0 || right > 0 || bottom > 0 || left > 0 {
		info.Padding = []int{top, right, bottom, left}
	}
	info.Border = style.GetBorderTop() || style.GetBorderRight() || style.GetBorderBottom() || style.GetBorderLeft()
	return info
}

func colorToString(c lipgloss.TerminalColor) string {
	switch v := c.(type) {
	case nil, lipgloss.NoColor:
		return ""
	case lipgloss.Color:
		return string(v)
	case lipgloss.AdaptiveColor:
		return fmt.Sprintf("adaptive(light=%s, dark=%s)", v.Light, v.Dark)
	default:
		return fmt.Sprintf("%v", c)
	}
}
