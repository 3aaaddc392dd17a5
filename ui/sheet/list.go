package sheet

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tgsheet/log"
)

// ScrollState is the motion state of a list.
type ScrollState int

const (
	ScrollStateIdle ScrollState = iota
	ScrollStateDragging
	ScrollStateSettling
)

func (s ScrollState) String() string {
	switch s {
	case ScrollStateIdle:
		return "idle"
	case ScrollStateDragging:
		return "dragging"
	case ScrollStateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// NoPosition is passed to decorations for a row whose index is unknown.
const NoPosition = -1

// Item is one entry of a list.
type Item interface {
	// Height is the number of rows the item occupies.
	Height() int
	// Render returns the item's rows at the given width.
	Render(width int, selected bool) string
}

// ItemDecoration adds blank rows above and below an item.
type ItemDecoration interface {
	ItemOffsets(position, itemCount, parentHeight int) (top, bottom int)
}

// ScrollListener observes scroll movement and state changes.
type ScrollListener interface {
	OnScrolled(list *ListView, dy int)
	OnScrollStateChanged(list *ListView, state ScrollState)
}

// LayoutListener is told whenever the list re-measures itself.
type LayoutListener interface {
	OnLayoutSettled(list *ListView)
}

// ListView is a vertically scrolling list of items inside a fixed-height
// viewport. Scrolling by a positive dy moves the content up.
type ListView struct {
	items       []Item
	decorations []ItemDecoration
	listeners   []ScrollListener
	layouts     []LayoutListener

	height     int
	scrollY    int
	state      ScrollState
	selected   int
	restAnchor int

	scroller *Animator
}

// NewListView returns an empty list whose smooth scrolls tick at fps.
func NewListView(fps int) *ListView {
	l := &ListView{}
	l.scroller = NewAnimator(fps, 0.5)
	l.scroller.OnUpdate = func(v float64) {
		l.scrollBy(int(math.Round(v)) - l.scrollY)
	}
	l.scroller.OnFinish = func() {
		l.setState(ScrollStateIdle)
	}
	return l
}

// SetItems replaces the list contents and re-measures.
func (l *ListView) SetItems(items []Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = max(len(items)-1, 0)
	}
	l.RequestLayout()
}

// Items returns the list contents.
func (l *ListView) Items() []Item {
	return l.items
}

// ItemCount returns the number of items.
func (l *ListView) ItemCount() int {
	return len(l.items)
}

// SetHeight sets the viewport height and re-measures.
func (l *ListView) SetHeight(height int) {
	l.height = max(height, 0)
	l.RequestLayout()
}

// Height returns the viewport height.
func (l *ListView) Height() int {
	return l.height
}

// SetRestAnchor sets where the first item sits when the list is scrolled to
// its resting position, measured from the top of the viewport.
func (l *ListView) SetRestAnchor(offset int) {
	l.restAnchor = offset
}

func (l *ListView) AddItemDecoration(d ItemDecoration) {
	l.decorations = append(l.decorations, d)
	l.RequestLayout()
}

func (l *ListView) RemoveItemDecoration(d ItemDecoration) {
	for i, existing := range l.decorations {
		if existing == d {
			l.decorations = append(l.decorations[:i], l.decorations[i+1:]...)
			l.RequestLayout()
			return
		}
	}
}

// InvalidateItemDecorations re-measures after decoration offsets changed.
func (l *ListView) InvalidateItemDecorations() {
	l.RequestLayout()
}

func (l *ListView) AddScrollListener(s ScrollListener) {
	l.listeners = append(l.listeners, s)
}

func (l *ListView) RemoveScrollListener(s ScrollListener) {
	for i, existing := range l.listeners {
		if existing == s {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

func (l *ListView) AddLayoutListener(s LayoutListener) {
	l.layouts = append(l.layouts, s)
}

func (l *ListView) RemoveLayoutListener(s LayoutListener) {
	for i, existing := range l.layouts {
		if existing == s {
			l.layouts = append(l.layouts[:i], l.layouts[i+1:]...)
			return
		}
	}
}

// RequestLayout clamps the scroll position to the new content height and
// notifies layout listeners.
func (l *ListView) RequestLayout() {
	if maxY := l.MaxScrollY(); l.scrollY > maxY {
		l.scrollY = maxY
	}
	for _, s := range l.layouts {
		s.OnLayoutSettled(l)
	}
}

func (l *ListView) offsets(position int) (top, bottom int) {
	for _, d := range l.decorations {
		t, b := d.ItemOffsets(position, len(l.items), l.height)
		top += t
		bottom += b
	}
	return top, bottom
}

// ItemsHeight is the sum of item heights, without decorations.
func (l *ListView) ItemsHeight() int {
	total := 0
	for _, it := range l.items {
		total += it.Height()
	}
	return total
}

// ContentHeight is the decorated height of all items.
func (l *ListView) ContentHeight() int {
	total := 0
	for i, it := range l.items {
		top, bottom := l.offsets(i)
		total += top + it.Height() + bottom
	}
	return total
}

// ItemTop returns the content row at which item i starts, after its top
// decoration.
func (l *ListView) ItemTop(i int) int {
	y := 0
	for j := 0; j < len(l.items) && j <= i; j++ {
		top, bottom := l.offsets(j)
		if j == i {
			return y + top
		}
		y += top + l.items[j].Height() + bottom
	}
	return y
}

// FirstItemTop returns the viewport row of the first item's top edge. It is
// negative once the first item has scrolled above the viewport.
func (l *ListView) FirstItemTop() int {
	if len(l.items) == 0 {
		return 0
	}
	return l.ItemTop(0) - l.scrollY
}

// ScrollY returns the current scroll position in content rows.
func (l *ListView) ScrollY() int {
	return l.scrollY
}

// MaxScrollY returns the largest valid scroll position.
func (l *ListView) MaxScrollY() int {
	return max(l.ContentHeight()-l.height, 0)
}

// RestScrollY is the scroll position that puts the first item at the rest
// anchor.
func (l *ListView) RestScrollY() int {
	return clamp(l.ItemTop(0)-l.restAnchor, 0, l.MaxScrollY())
}

// ScrollState returns the current motion state.
func (l *ListView) ScrollState() ScrollState {
	return l.state
}

func (l *ListView) setState(state ScrollState) {
	if l.state == state {
		return
	}
	l.state = state
	log.ScrollTrace("list %p state=%s scrollY=%d", l, state, l.scrollY)
	for _, s := range append([]ScrollListener(nil), l.listeners...) {
		s.OnScrollStateChanged(l, state)
	}
}

// scrollBy moves the content by dy rows, clamped to the scroll range, and
// returns the rows actually moved.
func (l *ListView) scrollBy(dy int) int {
	next := clamp(l.scrollY+dy, 0, l.MaxScrollY())
	moved := next - l.scrollY
	if moved == 0 {
		return 0
	}
	l.scrollY = next
	for _, s := range append([]ScrollListener(nil), l.listeners...) {
		s.OnScrolled(l, moved)
	}
	return moved
}

// Drag moves the content by dy rows as if the user's finger were on it.
func (l *ListView) Drag(dy int) int {
	if l.scroller.Running() {
		l.scroller.Cancel()
	}
	l.setState(ScrollStateDragging)
	return l.scrollBy(dy)
}

// Release lifts the finger. A list that was dragging goes idle.
func (l *ListView) Release() {
	if l.state == ScrollStateDragging {
		l.setState(ScrollStateIdle)
	}
}

// Fling starts a settling scroll of dy rows.
func (l *ListView) Fling(dy int) {
	l.SmoothScrollBy(dy)
}

// SmoothScrollBy animates a scroll of dy rows.
func (l *ListView) SmoothScrollBy(dy int) {
	l.SmoothScrollTo(l.scrollY + dy)
}

// SmoothScrollTo animates the scroll position to y.
func (l *ListView) SmoothScrollTo(y int) {
	target := clamp(y, 0, l.MaxScrollY())
	l.scroller.Cancel()
	if target == l.scrollY {
		l.setState(ScrollStateIdle)
		return
	}
	l.setState(ScrollStateSettling)
	l.scroller.Start(float64(l.scrollY), float64(target))
}

// ScrollTo jumps to y without changing the scroll state.
func (l *ListView) ScrollTo(y int) {
	l.scrollBy(y - l.scrollY)
}

// ScrollFirstItemTo jumps so that the first item's decorated top sits at
// offset rows from the top of the viewport.
func (l *ListView) ScrollFirstItemTo(offset int) {
	l.ScrollTo(-offset)
}

// StopScroll halts any smooth scroll and returns to idle.
func (l *ListView) StopScroll() {
	l.scroller.Cancel()
	l.setState(ScrollStateIdle)
}

// Tick advances the smooth scroll by one frame.
func (l *ListView) Tick() bool {
	return l.scroller.Tick()
}

// Animating reports whether a smooth scroll is in flight.
func (l *ListView) Animating() bool {
	return l.scroller.Running()
}

// Selected returns the index of the selected item.
func (l *ListView) Selected() int {
	return l.selected
}

// SelectedItem returns the selected item, or nil for an empty list.
func (l *ListView) SelectedItem() Item {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return l.items[l.selected]
}

// Select moves the selection to i and drags the list just enough to show it.
func (l *ListView) Select(i int) {
	if len(l.items) == 0 {
		return
	}
	l.selected = clamp(i, 0, len(l.items)-1)

	top := l.ItemTop(l.selected)
	bottom := top + l.items[l.selected].Height()
	switch {
	case top < l.scrollY:
		l.Drag(top - l.scrollY)
		l.Release()
	case bottom > l.scrollY+l.height:
		l.Drag(bottom - l.scrollY - l.height)
		l.Release()
	}
}

// ItemAt returns the index of the item covering viewport row y, or
// NoPosition when y falls on a decoration.
func (l *ListView) ItemAt(y int) int {
	row := y + l.scrollY
	top := 0
	for i, it := range l.items {
		t, b := l.offsets(i)
		start := top + t
		if row >= start && row < start+it.Height() {
			return i
		}
		top = start + it.Height() + b
	}
	return NoPosition
}

// Rows renders the viewport. Decoration rows are empty strings so the
// caller can fill them with its own background.
func (l *ListView) Rows(width int) []string {
	rows := make([]string, 0, l.height)
	end := l.scrollY + l.height
	y := 0
	for i, it := range l.items {
		top, bottom := l.offsets(i)
		h := it.Height()
		if y+top+h+bottom <= l.scrollY {
			y += top + h + bottom
			continue
		}
		if y >= end {
			break
		}

		lines := renderItem(it, width, i == l.selected)
		for r := 0; r < top+h+bottom; r++ {
			row := y + r
			if row < l.scrollY || row >= end {
				continue
			}
			if r >= top && r < top+h {
				rows = append(rows, lines[r-top])
			} else {
				rows = append(rows, "")
			}
		}
		y += top + h + bottom
	}
	for len(rows) < l.height {
		rows = append(rows, "")
	}
	return rows
}

func renderItem(it Item, width int, selected bool) []string {
	h := it.Height()
	lines := strings.Split(it.Render(width, selected), "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
	}
	return lines
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
