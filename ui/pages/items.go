// Package pages holds the screens hosted by the bottom sheet.
package pages

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tgsheet/ui"
)

var sectionStyle = lipgloss.NewStyle().
	Foreground(ui.Accent).
	Bold(true)

var selectedStyle = lipgloss.NewStyle().
	Background(ui.BackgroundSelected)

// textItem is a single line of text.
type textItem struct {
	text  string
	style lipgloss.Style
}

func (t textItem) Height() int { return 1 }

func (t textItem) Render(width int, _ bool) string {
	return t.style.Render(truncate.StringWithTail("  "+t.text, uint(max(width, 0)), "…"))
}

func section(title string) textItem {
	return textItem{text: title, style: sectionStyle}
}

func paragraph(text string) textItem {
	return textItem{text: text, style: ui.TextStyles.Secondary}
}

// noticeItem is a centered message shown in place of an empty list.
type noticeItem struct {
	title, detail string
	style         lipgloss.Style
}

func (n noticeItem) Height() int { return 3 }

func (n noticeItem) Render(width int, _ bool) string {
	lines := []string{
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, n.style.Render(truncate.StringWithTail(n.title, uint(max(width-2, 1)), "…"))),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, ui.TextStyles.Muted.Render(truncate.StringWithTail(n.detail, uint(max(width-2, 1)), "…"))),
	}
	return strings.Join(lines, "\n")
}

// valueItem is a label with a right-aligned value.
type valueItem struct {
	label string
	value func() string
}

func (v valueItem) Height() int { return 1 }

func (v valueItem) Render(width int, selected bool) string {
	right := ui.TextStyles.Muted.Render(v.value()) + "  "
	line := ui.Spread("  ", v.label, ui.TextStyles.Primary, right, width)
	if selected {
		return selectedStyle.Width(width).MaxWidth(width).Render(line)
	}
	return line
}

// spacerItem fills the viewport below content that does not reach its end.
type spacerItem struct {
	viewport func() int
	content  func() int
}

func (s spacerItem) Height() int {
	return max(0, s.viewport()-s.content())
}

func (s spacerItem) Render(int, bool) string {
	return strings.Repeat("\n", max(s.Height()-1, 0))
}
