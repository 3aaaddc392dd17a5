// Package sheet implements a bottom sheet: a popup that hosts scrolling
// pages under a header which slides with the content, collapses into the
// status bar band at the top of the screen, and can dismiss the whole sheet
// when the content is dragged down far enough.
package sheet

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tgsheet/inspect"
	"tgsheet/log"
)

// Host is the popup layer that shows the sheet.
type Host interface {
	HideWindow(animated bool)
}

// HeaderState is what a HeaderView needs to draw one frame.
type HeaderState struct {
	Tabs             []string
	Focused          int
	Previous         int
	SwitchFactor     float64
	BackgroundFactor float64
	Height           int
}

// HeaderView draws the sheet header.
type HeaderView interface {
	Render(width int, state HeaderState) string
}

type binding struct {
	coordinator *ScrollCoordinator
	decoration  *ContentDecoration
}

// Sheet owns the geometry and header state for a set of pages and exposes
// the height and touch queries its host needs.
type Sheet struct {
	// Style paints every row of the sheet body.
	Style lipgloss.Style

	settings   Settings
	host       Host
	headerView HeaderView

	geometry Geometry
	header   *HeaderOffsetModel

	pages    []Page
	bindings map[Page]*binding
	focused  int
	previous int

	switcher     *Animator
	switchFactor float64

	hiding bool
}

// New returns a sheet. headerView may be nil.
func New(settings Settings, host Host, headerView HeaderView, fps int) *Sheet {
	s := &Sheet{
		Style:        lipgloss.NewStyle(),
		settings:     settings,
		host:         host,
		headerView:   headerView,
		bindings:     make(map[Page]*binding),
		switchFactor: 1,
	}
	s.header = NewHeaderOffsetModel(&s.geometry, s.HasHeader, HeaderCallbacks{})
	s.switcher = NewAnimator(fps, 0.01)
	s.switcher.OnUpdate = func(v float64) {
		s.switchFactor = v
	}
	s.switcher.OnFinish = func() {
		s.setIgnoreMovements(false)
		s.syncHeader()
	}
	return s
}

// SetHeaderCallbacks registers the observer of header movement.
func (s *Sheet) SetHeaderCallbacks(cb HeaderCallbacks) {
	s.header.SetCallbacks(cb)
}

// HasHeader reports whether the sheet draws a header.
func (s *Sheet) HasHeader() bool {
	return s.headerView != nil || s.settings.HeaderHeight() > 0
}

// Settings returns the sheet's knobs.
func (s *Sheet) Settings() Settings {
	return s.settings
}

// Geometry returns the current layout.
func (s *Sheet) Geometry() Geometry {
	return s.geometry
}

// Header returns the header model.
func (s *Sheet) Header() *HeaderOffsetModel {
	return s.header
}

func (s *Sheet) measure(target, wrap, topInset int) {
	headerHeight := 0
	if s.HasHeader() {
		headerHeight = s.settings.HeaderHeight()
	}
	s.geometry = Geometry{
		TargetHeight:  target,
		WrapHeight:    wrap,
		TopInset:      topInset,
		HeaderHeight:  headerHeight,
		ContentOffset: s.settings.ContentOffset(),
	}
	s.header.Clamp()
	for _, p := range s.pages {
		list := p.List()
		list.SetRestAnchor(s.geometry.ContentOffset)
		list.SetHeight(s.geometry.ViewportHeight())
	}
	log.LayoutTrace("sheet geometry %+v", s.geometry)
}

// Layout measures the sheet and puts every page at its resting position.
func (s *Sheet) Layout(target, wrap, topInset int) {
	s.measure(target, wrap, topInset)
	s.resetPages()
}

func (s *Sheet) resetPages() {
	for _, p := range s.pages {
		list := p.List()
		list.StopScroll()
		list.ScrollTo(list.RestScrollY())
	}
	s.syncHeader()
}

// Show prepares the sheet for a new showing.
func (s *Sheet) Show() {
	s.hiding = false
	s.resetPages()
}

// Dismiss asks the host to hide the sheet. Only the first call of a showing
// reaches the host.
func (s *Sheet) Dismiss(animated bool) {
	if s.hiding {
		return
	}
	s.hiding = true
	log.SheetTrace("dismiss animated=%v", animated)
	if s.host != nil {
		s.host.HideWindow(animated)
	}
}

// Hiding reports whether the sheet was dismissed.
func (s *Sheet) Hiding() bool {
	return s.hiding
}

// AddPage binds page to the sheet. The first page added takes focus.
func (s *Sheet) AddPage(page Page) {
	if _, ok := s.bindings[page]; ok {
		return
	}
	list := page.List()
	b := &binding{
		coordinator: newScrollCoordinator(s, page),
		decoration:  NewContentDecoration(s.Geometry, s.settings.CanHideByScroll, page),
	}
	s.bindings[page] = b
	s.pages = append(s.pages, page)

	list.SetRestAnchor(s.geometry.ContentOffset)
	list.AddItemDecoration(b.decoration)
	list.AddScrollListener(b.coordinator)
	list.AddLayoutListener(b.coordinator)
	list.SetHeight(s.geometry.ViewportHeight())
	list.ScrollTo(list.RestScrollY())

	if len(s.pages) == 1 {
		s.focused = 0
		s.syncHeader()
	}
}

// RemovePage unbinds page. Late events from its list are ignored.
func (s *Sheet) RemovePage(page Page) {
	b, ok := s.bindings[page]
	if !ok {
		return
	}
	b.coordinator.unbind()
	page.List().RemoveItemDecoration(b.decoration)
	delete(s.bindings, page)

	for i, p := range s.pages {
		if p == page {
			s.pages = append(s.pages[:i], s.pages[i+1:]...)
			if s.focused >= i && s.focused > 0 {
				s.focused--
			}
			break
		}
	}
	s.previous = s.focused
	s.syncHeader()
}

// Pages returns the bound pages in tab order.
func (s *Sheet) Pages() []Page {
	return s.pages
}

// Coordinator returns the coordinator bound to page.
func (s *Sheet) Coordinator(page Page) *ScrollCoordinator {
	if b, ok := s.bindings[page]; ok {
		return b.coordinator
	}
	return nil
}

// FocusedIndex returns the index of the focused page.
func (s *Sheet) FocusedIndex() int {
	return s.focused
}

// FocusedPage returns the focused page, or nil when there are none.
func (s *Sheet) FocusedPage() Page {
	if s.focused < 0 || s.focused >= len(s.pages) {
		return nil
	}
	return s.pages[s.focused]
}

// FocusedList returns the focused page's list.
func (s *Sheet) FocusedList() *ListView {
	if p := s.FocusedPage(); p != nil {
		return p.List()
	}
	return nil
}

// FocusPage switches to page i. The new page is aligned with the header and
// coordination stays off until the tab indicator settles.
func (s *Sheet) FocusPage(i int) {
	if i == s.focused || i < 0 || i >= len(s.pages) {
		return
	}
	topEdge := s.header.TopEdge()
	s.setIgnoreMovements(true)
	if list := s.FocusedList(); list != nil {
		list.StopScroll()
	}

	s.previous = s.focused
	s.focused = i
	s.checkContentScrollY(s.pages[i], topEdge)
	log.SheetTrace("focus page %d (from %d) topEdge=%d", i, s.previous, topEdge)
	s.switcher.Start(0, 1)
}

// SetContentOffsetChanged re-reads the settings and re-aligns every page so
// the header does not reveal more than the new content offset.
func (s *Sheet) SetContentOffsetChanged() {
	topEdge := s.header.TopEdge()
	s.setIgnoreMovements(true)
	s.measure(s.geometry.TargetHeight, s.geometry.WrapHeight, s.geometry.TopInset)

	edge := min(topEdge, s.geometry.ContentOffset)
	for _, p := range s.pages {
		p.List().StopScroll()
		s.checkContentScrollY(p, edge)
	}
	// A page switch in flight releases coordination when it settles.
	if !s.switcher.Running() {
		s.setIgnoreMovements(false)
	}
	s.syncHeader()
}

// SetHideByScrollChanged re-reads the hide-by-scroll knob. The gap above the
// first item depends on it, so every page is re-decorated and goes back to
// rest.
func (s *Sheet) SetHideByScrollChanged() {
	for _, p := range s.pages {
		p.List().StopScroll()
		p.List().InvalidateItemDecorations()
	}
	s.resetPages()
}

// checkContentScrollY moves page so its first item sits topEdge rows below
// the sheet top.
func (s *Sheet) checkContentScrollY(page Page, topEdge int) {
	top := page.List().ItemTop(0)
	page.EnsureMaxScrollY(top-topEdge, top)
}

// ScrollToTop sends the focused page back to its resting position.
func (s *Sheet) ScrollToTop() {
	if p := s.FocusedPage(); p != nil {
		p.OnScrollToTopRequested()
	}
}

// ScrollToBottom sends the focused page to its end.
func (s *Sheet) ScrollToBottom() {
	if p := s.FocusedPage(); p != nil {
		p.OnScrollToBottomRequested()
	}
}

func (s *Sheet) setIgnoreMovements(ignore bool) {
	for _, b := range s.bindings {
		b.coordinator.state.IgnoreMovements = ignore
	}
}

func (s *Sheet) syncHeader() {
	if p := s.FocusedPage(); p != nil {
		s.bindings[p].coordinator.syncHeader()
		return
	}
	s.header.SetHeaderPosition(float64(s.geometry.ContentOffset + s.geometry.TopInset))
}

// ShouldTouchOutside reports whether a press at row y lands above the header
// and the status band strip, on the dimmed background.
func (s *Sheet) ShouldTouchOutside(x, y int) bool {
	if !s.HasHeader() {
		return false
	}
	return float64(y) < s.header.TranslationY()-float64(s.header.Lick().Rows())
}

// ItemAt returns the focused page's item under sheet row y, or NoPosition
// when y is on the header, a decoration or outside the sheet.
func (s *Sheet) ItemAt(y int) int {
	list := s.FocusedList()
	if list == nil || float64(y) < s.header.TranslationY()+float64(s.geometry.HeaderHeight) {
		return NoPosition
	}
	v := y - s.geometry.TopInset - s.geometry.HeaderHeight
	if v < 0 || v >= list.Height() {
		return NoPosition
	}
	return list.ItemAt(v)
}

// CurrentPopupHeight is the height of the sheet below the status bar band,
// plus any rows the wrapping popup measured beyond the target height.
func (s *Sheet) CurrentPopupHeight() int {
	g := s.geometry
	return max(g.TargetHeight-s.header.TopEdge()-g.TopInset, 0) + max(0, g.WrapHeight-g.TargetHeight)
}

// Tick advances every running animation by one frame.
func (s *Sheet) Tick() bool {
	s.switcher.Tick()
	for _, p := range s.pages {
		p.List().Tick()
	}
	return s.Animating()
}

// Animating reports whether any animation still needs frames.
func (s *Sheet) Animating() bool {
	if s.switcher.Running() {
		return true
	}
	for _, p := range s.pages {
		if p.List().Animating() {
			return true
		}
	}
	return false
}

// View renders the header followed by the visible part of the focused page.
func (s *Sheet) View(width int) string {
	defer log.GetProfiler().Start("sheet.View")()

	lines := make([]string, 0, s.geometry.TargetHeight)
	row := s.Style.Width(width).MaxWidth(width)
	if s.HasHeader() && s.geometry.HeaderHeight > 0 {
		var headerLines []string
		if s.headerView != nil {
			headerLines = strings.Split(s.headerView.Render(width, s.headerState()), "\n")
		}
		for i := 0; i < s.geometry.HeaderHeight; i++ {
			if i < len(headerLines) {
				lines = append(lines, headerLines[i])
			} else {
				lines = append(lines, row.Render(""))
			}
		}
	}

	if list := s.FocusedList(); list != nil {
		rows := list.Rows(width)
		skip := clamp(list.FirstItemTop(), 0, len(rows))
		for _, r := range rows[skip:] {
			lines = append(lines, row.Render(r))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Sheet) headerState() HeaderState {
	tabs := make([]string, len(s.pages))
	for i, p := range s.pages {
		if t, ok := p.(Titled); ok {
			tabs[i] = t.Title()
		} else {
			tabs[i] = fmt.Sprintf("Page %d", i+1)
		}
	}
	return HeaderState{
		Tabs:             tabs,
		Focused:          s.focused,
		Previous:         s.previous,
		SwitchFactor:     s.switchFactor,
		BackgroundFactor: s.header.BackgroundFactor(),
		Height:           s.geometry.HeaderHeight,
	}
}

// InspectNode describes the sheet for the UI inspector.
func (s *Sheet) InspectNode() *inspect.Node {
	lick := s.header.Lick()
	node := inspect.NewNode("Sheet").
		WithBounds(0, s.header.TopEdge(), 0, s.CurrentPopupHeight()).
		WithState("translation_y", s.header.TranslationY()).
		WithState("top_edge", s.header.TopEdge()).
		WithState("lick_factor", lick.Factor).
		WithState("background_factor", s.header.BackgroundFactor()).
		WithState("content_visible_height", s.header.ContentVisibleHeight()).
		WithState("hide_by_scroll", s.settings.CanHideByScroll()).
		WithState("hiding", s.hiding).
		WithState("focused", s.focused).
		WithStyles(inspect.ExtractStyleInfo(s.Style, "sheet"))

	tabs := s.headerState().Tabs
	for i, p := range s.pages {
		list := p.List()
		child := inspect.NewNode("Page").
			WithID(tabs[i]).
			WithState("scroll_y", list.ScrollY()).
			WithState("first_item_top", list.FirstItemTop()).
			WithState("items", list.ItemCount()).
			WithState("phase", s.bindings[p].coordinator.Phase().String())
		child.Visible = i == s.focused
		node.AddChild(child)
	}
	return node
}
