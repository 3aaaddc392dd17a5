package overlay

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tgsheet/log"
	"tgsheet/ui"
	"tgsheet/ui/sheet"
)

var dimStyle = lipgloss.NewStyle().Faint(true).Foreground(ui.TextMuted)

// PopupLayout hosts a sheet at the bottom of the screen. It slides the sheet
// in and out, turns presses above the header into a dismissal and draws the
// strip that fills the status band while the header collapses.
type PopupLayout struct {
	// OnHidden runs once the sheet has left the screen.
	OnHidden func()
	// OnHeaderMoved receives the header's new top row.
	OnHeaderMoved func(translationY float64)

	sheet      *sheet.Sheet
	lick       sheet.LickView
	background float64
	dirty      bool


	slide  *sheet.Animator
	reveal float64
	shown  bool
	hiding bool

	x, width, height int
}

// NewPopupLayout returns a hidden popup animating at fps.
func NewPopupLayout(fps int) *PopupLayout {
	p := &PopupLayout{slide: sheet.NewAnimator(fps, 0.01)}
	p.slide.OnUpdate = func(v float64) {
		p.reveal = math.Max(0, math.Min(1, v))
	}
	p.slide.OnFinish = func() {
		if !p.hiding {
			return
		}
		p.shown = false
		p.hiding = false
		p.reveal = 0
		log.SheetTrace("popup hidden")
		if p.OnHidden != nil {
			p.OnHidden()
		}
	}
	return p
}

// SetSheet attaches the sheet this popup shows and starts observing its
// header. The sheet should have been created with the popup as its host.
func (p *PopupLayout) SetSheet(s *sheet.Sheet) {
	p.sheet = s
	p.lick = s.Header().Lick()
	p.background = s.Header().BackgroundFactor()
	p.dirty = true
	s.SetHeaderCallbacks(sheet.HeaderCallbacks{
		Moved: func(y float64) {
			if p.OnHeaderMoved != nil {
				p.OnHeaderMoved(y)
			}
		},
		ContentInvalidated: func() {
			p.dirty = true
		},
		LickChanged: func(lick sheet.LickView) {
			p.lick = lick
		},
		BackgroundFactorSet: func(f float64) {
			p.background = f
		},
	})
}

// TakeInvalidated reports whether the header moved since the last call.
func (p *PopupLayout) TakeInvalidated() bool {
	dirty := p.dirty
	p.dirty = false
	return dirty
}

// Sheet returns the hosted sheet.
func (p *PopupLayout) Sheet() *sheet.Sheet {
	return p.sheet
}

// SetBounds places the popup area: columns [x, x+width) of the top height
// rows of the screen.
func (p *PopupLayout) SetBounds(x, width, height int) {
	p.x = x
	p.width = width
	p.height = height
}

// Show brings the sheet in, from its rest position.
func (p *PopupLayout) Show(animated bool) {
	if p.sheet == nil {
		return
	}
	p.sheet.Show()
	p.shown = true
	p.hiding = false
	if animated {
		p.slide.Start(p.reveal, 1)
		return
	}
	p.slide.Cancel()
	p.reveal = 1
}

// HideWindow implements sheet.Host.
func (p *PopupLayout) HideWindow(animated bool) {
	if !p.shown || p.hiding {
		return
	}
	p.hiding = true
	log.SheetTrace("popup hide animated=%v", animated)
	if animated {
		p.slide.Start(p.reveal, 0)
		return
	}
	p.slide.Start(0, 0)
}

// Visible reports whether any part of the popup is on screen.
func (p *PopupLayout) Visible() bool {
	return p.shown
}

// Showing reports whether the popup is on screen and not on its way out.
func (p *PopupLayout) Showing() bool {
	return p.shown && !p.hiding
}

// Reveal is the slide progress, 0 hidden and 1 fully shown.
func (p *PopupLayout) Reveal() float64 {
	return p.reveal
}

// Tick advances the slide and the sheet by one frame.
func (p *PopupLayout) Tick() bool {
	p.slide.Tick()
	if p.sheet != nil {
		p.sheet.Tick()
	}
	return p.Animating()
}

// Animating reports whether another frame is needed.
func (p *PopupLayout) Animating() bool {
	return p.slide.Running() || (p.sheet != nil && p.sheet.Animating())
}

// HandlePress routes a mouse press at screen cell (x, y). It returns true
// when the press landed outside the sheet and dismissed it.
func (p *PopupLayout) HandlePress(x, y int) bool {
	if !p.Showing() || y < 0 || y >= p.height {
		return false
	}
	if x < p.x || x >= p.x+p.width || p.sheet.ShouldTouchOutside(x-p.x, y) {
		p.sheet.Dismiss(true)
		return true
	}
	return false
}

// VisibleHeight is how many rows of the popup are on screen.
func (p *PopupLayout) VisibleHeight() int {
	if !p.shown || p.sheet == nil {
		return 0
	}
	return int(math.Round(float64(p.sheet.CurrentPopupHeight()) * p.reveal))
}

// Top is the screen row of the popup's first visible row.
func (p *PopupLayout) Top() int {
	return p.height - p.VisibleHeight()
}

// View draws the popup over bg, which should be height rows tall.
func (p *PopupLayout) View(bg string) string {
	if !p.shown || p.sheet == nil || p.width <= 0 {
		return bg
	}
	defer log.GetProfiler().Start("popup.View")()

	lines := strings.Split(p.sheet.View(p.width), "\n")
	lines = lines[:clamp(p.VisibleHeight(), 0, len(lines))]
	if p.reveal >= 1 {
		lines = append(p.lickRows(), lines...)
	}
	if len(lines) == 0 {
		return Dim(bg, p.reveal)
	}
	return PlaceBottom(p.x, strings.Join(lines, "\n"), Dim(bg, p.reveal))
}

// lickRows fills the band above the header from the bottom up as the
// header collapses.
func (p *PopupLayout) lickRows() []string {
	filled := p.lick.Rows()
	if filled <= 0 || !p.sheet.HasHeader() {
		return nil
	}
	style := lipgloss.NewStyle().
		Background(ui.Blend(ui.BackgroundSheet, ui.AccentMuted, p.background)).
		Width(p.width)
	rows := make([]string, filled)
	for i := range rows {
		rows[i] = style.Render("")
	}
	return rows
}

// Dim fades s behind an open popup. amount 0 leaves it untouched.
func Dim(s string, amount float64) string {
	if amount <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = dimStyle.Render(xansi.Strip(l))
	}
	return strings.Join(lines, "\n")
}
