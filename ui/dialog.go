package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tgsheet/telegram"
)

var dialogTitleStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

var dialogPreviewStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

var dialogTimeStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

var selectedRowStyle = lipgloss.NewStyle().
	Background(BackgroundSelected)

var kindStyles = map[telegram.Kind]lipgloss.Style{
	telegram.KindUser:    lipgloss.NewStyle().Foreground(Accent),
	telegram.KindBot:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
	telegram.KindGroup:   lipgloss.NewStyle().Foreground(Unread),
	telegram.KindChannel: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var kindIcons = map[telegram.Kind]string{
	telegram.KindUser:    IconUser,
	telegram.KindBot:     IconBot,
	telegram.KindGroup:   IconGroup,
	telegram.KindChannel: IconChannel,
}

// DialogItem is one chat row of the chat list.
type DialogItem struct {
	Dialog telegram.Dialog
	Now    time.Time
	// Preview adds a second row with the last message.
	Preview bool
	// Timestamps shows the date column.
	Timestamps bool
	// Badges shows the unread counter.
	Badges bool
}

// Height implements sheet.Item.
func (d DialogItem) Height() int {
	if d.Preview {
		return 2
	}
	return 1
}

// Render implements sheet.Item.
func (d DialogItem) Render(width int, selected bool) string {
	if width <= 0 {
		return ""
	}
	lines := []string{d.titleLine(width)}
	if d.Preview {
		lines = append(lines, d.previewLine(width))
	}
	if !selected {
		return strings.Join(lines, "\n")
	}
	row := selectedRowStyle.Width(width).MaxWidth(width)
	for i, l := range lines {
		lines[i] = row.Render(l)
	}
	return strings.Join(lines, "\n")
}

func (d DialogItem) titleLine(width int) string {
	icon := kindStyles[d.Dialog.Kind].Render(kindIcons[d.Dialog.Kind])
	prefix := " " + icon + " "
	if d.Dialog.Pinned {
		prefix = " " + icon + TextStyles.Muted.Render(IconPinned)
	}

	right := ""
	if d.Timestamps {
		right = dialogTimeStyle.Render(FormatDialogTime(d.Dialog.Date, d.Now)) + " "
	}
	if !d.Preview {
		right = d.badge() + right
	}
	return Spread(prefix, d.Dialog.Title, dialogTitleStyle, right, width)
}

func (d DialogItem) previewLine(width int) string {
	text := d.Dialog.LastMessage
	if d.Dialog.Members > 0 && (d.Dialog.Kind == telegram.KindChannel || d.Dialog.Kind == telegram.KindGroup) && text == "" {
		text = FormatCount(d.Dialog.Members) + " members"
	}
	return Spread("   ", text, dialogPreviewStyle, d.badge(), width)
}

func (d DialogItem) badge() string {
	if !d.Badges || d.Dialog.Unread == 0 {
		return ""
	}
	color := Unread
	if d.Dialog.Kind == telegram.KindChannel {
		color = UnreadMuted
	}
	return BadgeStyle(color).Render(FormatCount(d.Dialog.Unread)) + " "
}

// Spread lays out prefix, a truncated middle and a right-aligned suffix on
// one line of exactly width cells.
func Spread(prefix, middle string, middleStyle lipgloss.Style, right string, width int) string {
	room := width - lipgloss.Width(prefix) - lipgloss.Width(right) - 1
	if room < 1 {
		return truncate.String(prefix+middle, uint(width))
	}
	middle = truncate.StringWithTail(middle, uint(room), "…")
	gap := width - lipgloss.Width(prefix) - lipgloss.Width(middle) - lipgloss.Width(right)
	return prefix + middleStyle.Render(middle) + strings.Repeat(" ", max(gap, 0)) + right
}
