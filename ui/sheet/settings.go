package sheet

import "math"

// DefaultHideByScrollBorderDp is the default hide threshold in
// density-independent units.
const DefaultHideByScrollBorderDp = 150

// Settings are the knobs a sheet reads on every layout pass.
type Settings interface {
	// HeaderHeight is the header band in rows; 0 with no header view
	// means the sheet has no header.
	HeaderHeight() int
	// ContentOffset is the resting gap above the content.
	ContentOffset() int
	// HideByScrollBorder is the visible content height below which a
	// scroll past the header dismisses the sheet.
	HideByScrollBorder() int
	// CanHideByScroll enables dismissing by scrolling.
	CanHideByScroll() bool
}

// Options is a static Settings.
type Options struct {
	Header       int
	Offset       int
	HideBorder   int
	HideByScroll bool
	// Density converts the default hide border to rows. Zero means 1.
	Density float64
}

func (o Options) HeaderHeight() int  { return o.Header }
func (o Options) ContentOffset() int { return o.Offset }
func (o Options) CanHideByScroll() bool {
	return o.HideByScroll
}

func (o Options) HideByScrollBorder() int {
	if o.HideBorder > 0 {
		return o.HideBorder
	}
	return Dp(DefaultHideByScrollBorderDp, o.Density)
}

// Dp converts density-independent units to rows.
func Dp(dp int, density float64) int {
	if density <= 0 {
		density = 1
	}
	return int(math.Round(float64(dp) * density))
}
