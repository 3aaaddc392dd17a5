package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"

	"tgsheet/ui/sheet"
)

var (
	tabStyle        = lipgloss.NewStyle().Foreground(TextSecondary)
	focusedTabStyle = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	indicatorStyle  = lipgloss.NewStyle().Foreground(Accent)
)

// SheetHeader draws the tab strip on top of the sheet. Its background turns
// from the sheet color to the accent as the header collapses into the
// status band.
type SheetHeader struct {
	// Simplify shows only the focused tab, for narrow terminals.
	Simplify bool
}

// Render implements sheet.HeaderView.
func (h *SheetHeader) Render(width int, st sheet.HeaderState) string {
	if st.Height <= 0 || width <= 0 {
		return ""
	}
	bg := Blend(BackgroundSheet, AccentMuted, st.BackgroundFactor)
	row := lipgloss.NewStyle().Background(bg).Width(width).MaxWidth(width)

	lines := make([]string, 0, st.Height)
	if h.Simplify || len(st.Tabs) == 0 {
		lines = append(lines, row.Render(h.simpleTabs(width, st)))
	} else {
		lines = append(lines, row.Render(tabCells(width, st)))
		if st.Height > 1 {
			lines = append(lines, row.Render(indicatorLine(width, st)))
		}
	}
	for len(lines) < st.Height {
		lines = append(lines, row.Render(""))
	}
	return strings.Join(lines, "\n")
}

func (h *SheetHeader) simpleTabs(width int, st sheet.HeaderState) string {
	if len(st.Tabs) == 0 {
		return ""
	}
	title := fmt.Sprintf("‹ %s ›  %d/%d", st.Tabs[st.Focused], st.Focused+1, len(st.Tabs))
	title = truncate.StringWithTail(title, uint(width), "…")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, focusedTabStyle.Render(title))
}

// tabCell returns the column and width of tab i.
func tabCell(width, n, i int) (x, w int) {
	w = width / n
	x = w * i
	if i == n-1 {
		w = width - x
	}
	return x, w
}

func tabCells(width int, st sheet.HeaderState) string {
	n := len(st.Tabs)
	var b strings.Builder
	for i, title := range st.Tabs {
		_, w := tabCell(width, n, i)
		if w <= 0 {
			continue
		}
		style := tabStyle
		if i == st.Focused {
			style = focusedTabStyle
		}
		if w > 2 {
			title = truncate.StringWithTail(title, uint(w-2), "…")
		} else {
			title = ""
		}
		b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, style.Render(title)))
	}
	return b.String()
}

// IndicatorSpan returns where the tab indicator is drawn for st.
func IndicatorSpan(width int, st sheet.HeaderState) (x, w int) {
	n := len(st.Tabs)
	if n == 0 || width <= 0 {
		return 0, 0
	}
	fromX, cellW := tabCell(width, n, clampIndex(st.Previous, n))
	toX, _ := tabCell(width, n, clampIndex(st.Focused, n))
	w = max(cellW/2, 1)
	f := math.Max(0, math.Min(1, st.SwitchFactor))
	x = int(math.Round(float64(fromX)+float64(toX-fromX)*f)) + (cellW-w)/2
	return max(x, 0), w
}

func indicatorLine(width int, st sheet.HeaderState) string {
	x, w := IndicatorSpan(width, st)
	if w == 0 {
		return ""
	}
	return strings.Repeat(" ", x) + indicatorStyle.Render(strings.Repeat("━", w))
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// Blend mixes two palette colors in Lab space. t = 0 gives from, 1 gives to.
func Blend(from, to lipgloss.AdaptiveColor, t float64) lipgloss.Color {
	dark := lipgloss.HasDarkBackground()
	pick := func(c lipgloss.AdaptiveColor) string {
		if dark {
			return c.Dark
		}
		return c.Light
	}
	a, err := colorful.Hex(pick(from))
	if err != nil {
		return lipgloss.Color(pick(to))
	}
	b, err := colorful.Hex(pick(to))
	if err != nil {
		return lipgloss.Color(pick(from))
	}
	t = math.Max(0, math.Min(1, t))
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}
