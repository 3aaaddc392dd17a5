package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tgsheet/ui"
)

// loadingHeight is the fixed height of the loading box: border, padding,
// title, gap and status.
const loadingHeight = 7

// LoadingOverlay is a list item showing a spinner and a status message while
// a page waits for its content.
type LoadingOverlay struct {
	// Title displayed at the top
	title string
	// Current status message
	status string
	// Spinner for the loading animation
	spinner *spinner.Model
}

// NewLoadingOverlay creates a new loading placeholder
func NewLoadingOverlay(title string, spinner *spinner.Model) *LoadingOverlay {
	return &LoadingOverlay{
		title:   title,
		spinner: spinner,
	}
}

// SetStatus updates the current status message
func (l *LoadingOverlay) SetStatus(status string) {
	l.status = status
}

// Status returns the current status message.
func (l *LoadingOverlay) Status() string {
	return l.status
}

// Height is constant so the list does not jump while the spinner turns.
func (l *LoadingOverlay) Height() int {
	return loadingHeight
}

// Render draws the box centered in width. Selection is ignored.
func (l *LoadingOverlay) Render(width int, _ bool) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.Accent)

	statusStyle := lipgloss.NewStyle().
		Foreground(ui.TextSecondary)

	boxWidth := min(max(width-4, 10), 48)
	inner := max(boxWidth-6, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Accent).
		Padding(1, 2).
		Width(boxWidth - 2)

	status := l.status
	if l.spinner != nil {
		status = l.spinner.View() + " " + status
	}
	content := strings.Join([]string{
		titleStyle.Render(truncate.StringWithTail(l.title, uint(inner), "…")),
		"",
		statusStyle.Render(truncate.StringWithTail(status, uint(inner), "…")),
	}, "\n")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, boxStyle.Render(content))
}
