package layout

// Options are the user's sheet preferences that influence geometry.
type Options struct {
	// HeaderRows overrides the header height picked for the mode.
	HeaderRows int
	// ComposerRows are reserved below the sheet for the message composer.
	ComposerRows int
	// ContentOffsetPercent is the resting gap above the sheet content as a
	// percentage of the sheet height.
	ContentOffsetPercent int
}

// Constraints holds the computed geometry of every screen component.
type Constraints struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Computed mode
	Mode LayoutMode

	// Sheet placement
	SheetX      int
	SheetWidth  int
	SheetHeight int // the sheet's target height, from the top of the screen

	// Sheet geometry
	TopInset      int
	HeaderHeight  int
	ContentOffset int
	Density       float64 // rows per density-independent unit

	// Fixed rows below the sheet
	ComposerHeight int
	MenuHeight     int

	ShowMinWarning bool // Terminal is below minimum size
}

// ComputeConstraints calculates the layout for the given terminal dimensions.
func ComputeConstraints(width, height int, opts Options) Constraints {
	c := Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
	}

	// 1. Determine layout mode
	c.Mode = DetermineMode(width, height)
	c.ShowMinWarning = width < MinWidth || height < MinHeight

	// 2. Fixed elements below the sheet
	metrics := c.Mode.Metrics()
	c.MenuHeight = metrics.MenuRows
	c.ComposerHeight = clamp(opts.ComposerRows, 0, 3)
	c.SheetHeight = max(height-c.MenuHeight-c.ComposerHeight, 0)

	// 3. Horizontal placement
	c.SheetWidth, c.SheetX = computeSheetWidth(width)

	// 4. Header and status band
	c.TopInset = metrics.TopInset
	c.HeaderHeight = metrics.HeaderRows
	if opts.HeaderRows > 0 {
		c.HeaderHeight = clamp(opts.HeaderRows, 1, max(c.SheetHeight/3, 1))
	}

	// 5. Resting content offset; at least one content row stays visible.
	percent := opts.ContentOffsetPercent
	if percent <= 0 || percent >= 100 {
		percent = 40
	}
	c.ContentOffset = clamp(c.SheetHeight*percent/100, 0, max(c.SheetHeight-c.TopInset-c.HeaderHeight-1, 0))

	c.Density = float64(c.SheetHeight) / ReferenceScreenDp
	return c
}

// Dp converts density-independent units to rows, never less than one.
func (c Constraints) Dp(dp int) int {
	return max(int(float64(dp)*c.Density+0.5), 1)
}

func computeSheetWidth(width int) (w, x int) {
	if width > SheetMaxWidth+SheetMargin*2 {
		return SheetMaxWidth, (width - SheetMaxWidth) / 2
	}
	return width, 0
}

func clamp(value, minVal, maxVal int) int {
	if value > maxVal {
		value = maxVal
	}
	if value < minVal {
		value = minVal
	}
	return value
}
