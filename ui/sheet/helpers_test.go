package sheet

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type rowItem struct {
	text   string
	height int
}

func (r rowItem) Height() int { return r.height }

func (r rowItem) Render(width int, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}
	lines := make([]string, r.height)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s%s.%d", prefix, r.text, i)
	}
	return strings.Join(lines, "\n")
}

func makeItems(n, height int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = rowItem{text: fmt.Sprintf("item%d", i), height: height}
	}
	return items
}

type countingHost struct {
	hides    int
	animated bool
}

func (h *countingHost) HideWindow(animated bool) {
	h.hides++
	h.animated = animated
}

type testPage struct {
	ListPage
	title       string
	noTop       bool
	noBottom    bool
	topRequests int
}

func newTestPage(title string, items []Item) *testPage {
	p := &testPage{ListPage: NewListPage(DefaultFPS), title: title}
	p.List().SetItems(items)
	return p
}

func (p *testPage) Title() string { return p.title }

func (p *testPage) NeedTopDecorationOffsets() bool    { return !p.noTop }
func (p *testPage) NeedBottomDecorationOffsets() bool { return !p.noBottom }

func (p *testPage) OnScrollToTopRequested() {
	p.topRequests++
	p.ListPage.OnScrollToTopRequested()
}

// settle ticks the sheet until every animation has finished.
func settle(t *testing.T, s *Sheet) {
	t.Helper()
	for i := 0; i < 1000 && s.Tick(); i++ {
	}
	require.False(t, s.Animating(), "animations should settle")
}

type recorder struct {
	states []ScrollState
	moves  []int
}

func (r *recorder) OnScrolled(_ *ListView, dy int) { r.moves = append(r.moves, dy) }

func (r *recorder) OnScrollStateChanged(_ *ListView, state ScrollState) {
	r.states = append(r.states, state)
}

type fixedDecoration struct {
	top, bottom int
}

func (d fixedDecoration) ItemOffsets(position, itemCount, _ int) (int, int) {
	top, bottom := 0, 0
	if position == 0 {
		top = d.top
	}
	if position == itemCount-1 {
		bottom = d.bottom
	}
	return top, bottom
}
