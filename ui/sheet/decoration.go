package sheet

// ContentDecoration reserves blank rows around a page's list: a gap above
// the first item so the content lines up with the header, and padding after
// the last item so a short list still fills the sheet.
type ContentDecoration struct {
	geometry     func() Geometry
	hideByScroll func() bool
	page         Page
}

// NewContentDecoration returns the decoration for page. geometry and
// hideByScroll are read on every layout pass.
func NewContentDecoration(geometry func() Geometry, hideByScroll func() bool, page Page) *ContentDecoration {
	return &ContentDecoration{geometry: geometry, hideByScroll: hideByScroll, page: page}
}

func (d *ContentDecoration) ItemOffsets(position, itemCount, parentHeight int) (top, bottom int) {
	g := d.geometry()

	if (position == 0 || position == NoPosition) && d.page.NeedTopDecorationOffsets() {
		if d.hideByScroll() {
			top = g.TargetHeight - g.TopInset
		} else {
			top = g.ContentOffset
		}
	}
	if (position == itemCount-1 || position == NoPosition) && d.page.NeedBottomDecorationOffsets() {
		bottom = max(0, parentHeight-d.page.ItemsHeight(parentHeight))
	}
	return top, bottom
}
