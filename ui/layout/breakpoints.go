package layout

// Width breakpoints
const (
	// MinWidth is the narrowest terminal the sheet can be drawn in.
	MinWidth = 40

	// StandardWidth is the narrowest terminal that gets the tall header.
	StandardWidth = 80
)

// Height breakpoints
const (
	// MinHeight is the shortest terminal the sheet can be drawn in.
	MinHeight = 16

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 30

	// FullHeight is the threshold for full layout.
	FullHeight = 45
)

// Sheet constraints
const (
	// SheetMaxWidth stops the sheet from stretching across wide terminals.
	SheetMaxWidth = 100

	// SheetMargin is kept on both sides once the sheet is capped.
	SheetMargin = 2

	// ReferenceScreenDp is the height, in density-independent units, that a
	// full terminal stands for. Sheet thresholds given in dp are scaled by it.
	ReferenceScreenDp = 800
)

// Menu constraints
const (
	// MenuMinHeight is a single line of key hints.
	MenuMinHeight = 1

	// MenuStandardHeight adds a separator line.
	MenuStandardHeight = 2
)
