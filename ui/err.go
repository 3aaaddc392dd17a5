package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#FF0000",
	Dark:  "#FF0000",
})

var noticeStyle = lipgloss.NewStyle().Foreground(TextSecondary)

// ErrBox is the one-line status area under the menu.
type ErrBox struct {
	height, width int
	err           error
	notice        string
}

func NewErrBox() *ErrBox {
	return &ErrBox{}
}

func (e *ErrBox) SetError(err error) {
	e.err = err
	e.notice = ""
}

// SetNotice shows an informational message instead of an error.
func (e *ErrBox) SetNotice(msg string) {
	e.err = nil
	e.notice = msg
}

func (e *ErrBox) Clear() {
	e.err = nil
	e.notice = ""
}

// Empty reports whether there is nothing to show.
func (e *ErrBox) Empty() bool {
	return e.err == nil && e.notice == ""
}

func (e *ErrBox) SetSize(width, height int) {
	e.width = width
	e.height = height
}

func (e *ErrBox) String() string {
	var msg string
	style := errStyle
	switch {
	case e.err != nil:
		msg = e.err.Error()
		// Only the first line of the error fits.
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
	case e.notice != "":
		msg = e.notice
		style = noticeStyle
	}
	if e.width > 3 {
		msg = truncate.StringWithTail(msg, uint(e.width), "...")
	}
	return lipgloss.Place(e.width, e.height, lipgloss.Center, lipgloss.Top, style.Render(msg))
}
