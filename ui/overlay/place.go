package overlay

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

// whitespace fills the gaps around a placed overlay.
type whitespace struct {
	style lipgloss.Style
	chars string
}

// WhitespaceOption sets a styling rule for rendering whitespace.
type WhitespaceOption func(*whitespace)

// WithWhitespaceStyle styles the filler.
func WithWhitespaceStyle(s lipgloss.Style) WhitespaceOption {
	return func(w *whitespace) {
		w.style = s
	}
}

// WithWhitespaceChars sets the characters used as filler.
func WithWhitespaceChars(s string) WhitespaceOption {
	return func(w *whitespace) {
		w.chars = s
	}
}

func (w whitespace) render(width int) string {
	if width <= 0 {
		return ""
	}
	if w.chars == "" {
		w.chars = " "
	}
	r := []rune(w.chars)
	var b strings.Builder
	for i, j := 0, 0; i < width; {
		b.WriteRune(r[j])
		i += runewidth.RuneWidth(r[j])
		j = (j + 1) % len(r)
	}
	return w.style.Render(b.String())
}

func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		widest = max(widest, ansi.PrintableRuneWidth(l))
	}
	return lines, widest
}

// PlaceOverlay draws fg over bg with its top left corner at (x, y). With
// center set, x and y are ignored and fg is centered.
func PlaceOverlay(x, y int, fg, bg string, center bool, opts ...WhitespaceOption) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	bgHeight := len(bgLines)
	fgHeight := len(fgLines)

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}
	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clamp(x, 0, max(bgWidth-fgWidth, 0))
	y = clamp(y, 0, max(bgHeight-fgHeight, 0))

	ws := &whitespace{}
	for _, opt := range opts {
		opt(ws)
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(ws.render(x - pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(ws.render(lineWidth - rightWidth - pos))
		}
		b.WriteString(right)
	}
	return b.String()
}

// PlaceBottom draws fg over the last rows of bg, starting at column x.
func PlaceBottom(x int, fg, bg string, opts ...WhitespaceOption) string {
	if fg == "" {
		return bg
	}
	bgHeight := strings.Count(bg, "\n") + 1
	fgHeight := strings.Count(fg, "\n") + 1
	return PlaceOverlay(x, bgHeight-fgHeight, fg, bg, false, opts...)
}

// cutLeft drops the first cutWidth cells of s, keeping the escape sequences
// that are still in effect.
func cutLeft(s string, cutWidth int) string {
	var (
		pos     int
		inAnsi  bool
		started bool
		ab      bytes.Buffer
		b       bytes.Buffer
	)
	for _, c := range s {
		if pos >= cutWidth {
			if !started {
				started = true
				b.Write(ab.Bytes())
			}
			b.WriteRune(c)
			continue
		}
		if c == ansi.Marker || inAnsi {
			inAnsi = true
			ab.WriteRune(c)
			if ansi.IsTerminator(c) {
				inAnsi = false
				if bytes.HasSuffix(ab.Bytes(), []byte("[0m")) {
					ab.Reset()
				}
			}
			continue
		}
		pos += runewidth.RuneWidth(c)
		// A wide rune was split in half.
		if pos > cutWidth {
			started = true
			b.Write(ab.Bytes())
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}
