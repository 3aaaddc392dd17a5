package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func decorationFor(page Page, g Geometry, hide bool) *ContentDecoration {
	return NewContentDecoration(func() Geometry { return g }, func() bool { return hide }, page)
}

func TestContentDecorationOffsets(t *testing.T) {
	g := Geometry{TargetHeight: 40, TopInset: 2, HeaderHeight: 3, ContentOffset: 10}
	parent := g.ViewportHeight()

	tests := []struct {
		name       string
		items      int
		position   int
		hide       bool
		noTop      bool
		noBottom   bool
		wantTop    int
		wantBottom int
	}{
		{name: "single item is first and last", items: 1, position: 0, wantTop: 10, wantBottom: parent - 3},
		{name: "first of many", items: 5, position: 0, wantTop: 10},
		{name: "middle item", items: 5, position: 2},
		{name: "last of many", items: 5, position: 4, wantBottom: parent - 15},
		{name: "unknown position", items: 5, position: NoPosition, wantTop: 10, wantBottom: parent - 15},
		{name: "hide by scroll reserves the full sheet", items: 5, position: 0, hide: true, wantTop: 38},
		{name: "top opt out", items: 1, position: 0, noTop: true, wantBottom: parent - 3},
		{name: "bottom opt out", items: 1, position: 0, noBottom: true, wantTop: 10},
		{name: "long list needs no padding", items: 40, position: 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newTestPage("p", makeItems(tt.items, 3))
			page.noTop = tt.noTop
			page.noBottom = tt.noBottom
			d := decorationFor(page, g, tt.hide)

			top, bottom := d.ItemOffsets(tt.position, tt.items, parent)
			assert.Equal(t, tt.wantTop, top)
			assert.Equal(t, tt.wantBottom, bottom)
		})
	}
}

func TestContentDecorationFillsParent(t *testing.T) {
	g := Geometry{TargetHeight: 50, TopInset: 1, HeaderHeight: 2, ContentOffset: 12}
	parent := g.ViewportHeight()

	for _, n := range []int{1, 2, 5, 30} {
		for _, hide := range []bool{false, true} {
			page := newTestPage("p", makeItems(n, 2))
			d := decorationFor(page, g, hide)

			firstTop, firstBottom := d.ItemOffsets(0, n, parent)
			lastTop, lastBottom := d.ItemOffsets(n-1, n, parent)
			sum := firstTop + lastBottom + page.ItemsHeight(parent)
			if n > 1 {
				sum += firstBottom + lastTop
			}
			assert.GreaterOrEqual(t, sum, parent, "n=%d hide=%v", n, hide)
		}
	}
}
