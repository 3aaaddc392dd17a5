package sheet

// Page is a screen hosted inside a sheet. The sheet drives it through this
// interface and listens to its list.
type Page interface {
	// List is the page's scrolling list.
	List() *ListView
	// OnScrollToTopRequested scrolls the page back to its resting position.
	OnScrollToTopRequested()
	// OnScrollToBottomRequested scrolls the page to its end.
	OnScrollToBottomRequested()
	// EnsureMaxScrollY positions the list so that scrollY rows of the first
	// item's top gap are hidden, without revealing more than the gap.
	EnsureMaxScrollY(scrollY, maxScrollY int)
	// ItemsHeight is the total height of the page's items.
	ItemsHeight(parentHeight int) int
	// NeedTopDecorationOffsets opts the page in to the gap above the
	// first item.
	NeedTopDecorationOffsets() bool
	// NeedBottomDecorationOffsets opts the page in to the padding below
	// the last item.
	NeedBottomDecorationOffsets() bool
}

// Titled is implemented by pages that show a tab title in the header.
type Titled interface {
	Title() string
}

// ListPage is the default Page behaviour over a ListView. Pages embed it
// and override what they need.
type ListPage struct {
	list *ListView
}

// NewListPage wraps a new list ticking at fps.
func NewListPage(fps int) ListPage {
	return ListPage{list: NewListView(fps)}
}

func (p *ListPage) List() *ListView {
	return p.list
}

func (p *ListPage) OnScrollToTopRequested() {
	p.list.StopScroll()
	p.list.SmoothScrollTo(p.list.RestScrollY())
}

func (p *ListPage) OnScrollToBottomRequested() {
	p.list.StopScroll()
	p.list.SmoothScrollTo(p.list.MaxScrollY())
}

func (p *ListPage) EnsureMaxScrollY(scrollY, maxScrollY int) {
	if scrollY < maxScrollY {
		p.list.ScrollFirstItemTo(-scrollY)
		return
	}
	if p.list.ItemCount() > 0 && p.list.FirstItemTop() > 0 {
		p.list.ScrollFirstItemTo(-maxScrollY)
	}
}

func (p *ListPage) ItemsHeight(int) int {
	return p.list.ItemsHeight()
}

func (p *ListPage) NeedTopDecorationOffsets() bool {
	return true
}

func (p *ListPage) NeedBottomDecorationOffsets() bool {
	return true
}
