// Package layout turns terminal dimensions into sheet geometry.
package layout

// LayoutMode picks the sheet's fixed bands. Height decides how much chrome
// fits above and below the sheet; a narrow terminal never gets more than
// the compact header.
type LayoutMode int

const (
	// LayoutFull has a two row status band and a tall header.
	LayoutFull LayoutMode = iota

	// LayoutStandard has a one row status band and a tall header.
	LayoutStandard

	// LayoutCompact shortens the header and the menu to fit small or narrow
	// terminals.
	LayoutCompact

	// LayoutMinimal is below the minimum size. A warning replaces the sheet.
	LayoutMinimal
)

// String returns the string representation of the layout mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutStandard:
		return "standard"
	case LayoutCompact:
		return "compact"
	case LayoutMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// ModeMetrics are the rows a mode reserves around the sheet content.
type ModeMetrics struct {
	TopInset   int // status band above the header
	HeaderRows int // tab row plus separators
	MenuRows   int // key hints below the composer
}

var modeMetrics = map[LayoutMode]ModeMetrics{
	LayoutFull:     {TopInset: 2, HeaderRows: 3, MenuRows: MenuStandardHeight},
	LayoutStandard: {TopInset: 1, HeaderRows: 3, MenuRows: MenuStandardHeight},
	LayoutCompact:  {TopInset: 1, HeaderRows: 2, MenuRows: MenuMinHeight},
	LayoutMinimal:  {TopInset: 0, HeaderRows: 1, MenuRows: MenuMinHeight},
}

// Metrics returns the bands for m. Unknown modes get the minimal ones.
func (m LayoutMode) Metrics() ModeMetrics {
	if mm, ok := modeMetrics[m]; ok {
		return mm
	}
	return modeMetrics[LayoutMinimal]
}

// DetermineMode calculates the layout mode for the given dimensions.
func DetermineMode(width, height int) LayoutMode {
	if width < MinWidth || height < MinHeight {
		return LayoutMinimal
	}

	var mode LayoutMode
	switch {
	case height >= FullHeight:
		mode = LayoutFull
	case height >= StandardHeight:
		mode = LayoutStandard
	default:
		mode = LayoutCompact
	}
	// The tab row needs the standard width to show every title.
	if width < StandardWidth {
		mode = LayoutCompact
	}
	return mode
}
