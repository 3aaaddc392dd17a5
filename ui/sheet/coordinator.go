package sheet

import (
	"tgsheet/log"
)

// Phase is the coordination state of one page.
type Phase int

const (
	PhaseSettled Phase = iota
	PhaseDragging
	PhaseSettling
	PhaseProgrammaticSnap
)

func (p Phase) String() string {
	switch p {
	case PhaseSettled:
		return "settled"
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	case PhaseProgrammaticSnap:
		return "programmatic-snap"
	default:
		return "unknown"
	}
}

// PageScroll is the per-page coordination record.
type PageScroll struct {
	// LastHeaderPosition mirrors the first item's top plus TopInset.
	LastHeaderPosition float64
	// IgnoreScrollChangeState is set while a snap-back scroll started by
	// the coordinator is in flight.
	IgnoreScrollChangeState bool
	// IgnoreMovements suppresses coordination during page switches.
	IgnoreMovements bool
}

// ScrollCoordinator keeps the header in step with one page's list and
// decides, when the list comes to rest, whether to snap back or dismiss.
type ScrollCoordinator struct {
	sheet *Sheet
	page  Page
	list  *ListView
	state PageScroll
	bound bool
}

func newScrollCoordinator(s *Sheet, page Page) *ScrollCoordinator {
	return &ScrollCoordinator{sheet: s, page: page, list: page.List(), bound: true}
}

// State returns a copy of the coordination record.
func (c *ScrollCoordinator) State() PageScroll {
	return c.state
}

// Phase reports the page's coordination state.
func (c *ScrollCoordinator) Phase() Phase {
	if c.state.IgnoreScrollChangeState {
		return PhaseProgrammaticSnap
	}
	switch c.list.ScrollState() {
	case ScrollStateDragging:
		return PhaseDragging
	case ScrollStateSettling:
		return PhaseSettling
	default:
		return PhaseSettled
	}
}

// tracking reports whether events from list should drive the header.
func (c *ScrollCoordinator) tracking(list *ListView) bool {
	return c.bound && list == c.list && !c.state.IgnoreMovements && c.sheet.FocusedList() == list
}

func (c *ScrollCoordinator) syncHeader() {
	c.state.LastHeaderPosition = float64(max(c.list.FirstItemTop(), 0) + c.sheet.geometry.TopInset)
	c.sheet.header.SetHeaderPosition(c.state.LastHeaderPosition)
}

// hideCandidate reports whether hiding is enabled and the header sits below
// its resting position.
func (c *ScrollCoordinator) hideCandidate() bool {
	return c.sheet.settings.CanHideByScroll() &&
		c.sheet.header.TopEdge() > c.sheet.geometry.ContentOffset
}

func (c *ScrollCoordinator) OnScrolled(list *ListView, dy int) {
	if !c.tracking(list) {
		return
	}
	c.syncHeader()

	if c.state.IgnoreScrollChangeState || c.sheet.hiding || list.ScrollState() != ScrollStateSettling {
		return
	}
	if c.hideCandidate() && c.sheet.header.ContentVisibleHeight() < c.sheet.settings.HideByScrollBorder() {
		log.SheetTrace("dismiss while settling: visible=%d", c.sheet.header.ContentVisibleHeight())
		c.sheet.Dismiss(true)
	}
}

func (c *ScrollCoordinator) OnScrollStateChanged(list *ListView, state ScrollState) {
	if state != ScrollStateIdle {
		return
	}
	if c.state.IgnoreScrollChangeState {
		c.state.IgnoreScrollChangeState = false
		return
	}
	if !c.tracking(list) || c.sheet.hiding {
		return
	}

	if lick := c.sheet.header.Lick().Factor; lick > 0 && lick < 1 {
		log.SheetTrace("idle in peek band (%.2f), scrolling to top", lick)
		c.snap(c.page.OnScrollToTopRequested)
		return
	}
	if !c.hideCandidate() {
		return
	}

	topEdge := c.sheet.header.TopEdge()
	if c.sheet.header.ContentVisibleHeight() >= c.sheet.settings.HideByScrollBorder() {
		log.SheetTrace("snap back by %d", topEdge-c.sheet.geometry.ContentOffset)
		c.snap(func() {
			list.SmoothScrollBy(topEdge - c.sheet.geometry.ContentOffset)
		})
		return
	}
	log.SheetTrace("dismiss on idle: visible=%d", c.sheet.header.ContentVisibleHeight())
	c.sheet.Dismiss(true)
}

// snap runs a scroll started by the coordinator itself. Its settle is
// swallowed by the idle handler and cannot dismiss the sheet.
func (c *ScrollCoordinator) snap(scroll func()) {
	c.state.IgnoreScrollChangeState = true
	scroll()
	if !c.list.Animating() {
		c.state.IgnoreScrollChangeState = false
	}
}

func (c *ScrollCoordinator) OnLayoutSettled(list *ListView) {
	if c.tracking(list) {
		c.syncHeader()
	}
}

func (c *ScrollCoordinator) unbind() {
	c.bound = false
	c.list.RemoveScrollListener(c)
	c.list.RemoveLayoutListener(c)
}
