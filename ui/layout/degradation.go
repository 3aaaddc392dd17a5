package layout

// Degradation holds flags indicating which UI features should be hidden or simplified.
// Features are listed in order of degradation priority (first to hide).
type Degradation struct {
	// Dialog row degradation
	HideDialogPreviews bool // Single line dialog rows (height < 24)
	HideTimestamps     bool // No last message time (width < 60)
	HideUnreadBadges   bool // No unread counters (width < 50)

	// Component simplification
	SimplifyTabs   bool // Plain tab titles (width < 70)
	SingleLineMenu bool // One line of key hints (height < 30)

	// Critical degradation
	ShowMinWarning bool // Terminal too small warning (below MinWidth/MinHeight)
}

// Threshold constants for degradation
const (
	PreviewHideHeight    = 24
	TimestampHideWidth   = 60
	BadgeHideWidth       = 50
	TabSimplifyWidth     = 70
	SingleLineMenuHeight = StandardHeight
)

// ComputeDegradation calculates which UI features should be degraded.
func ComputeDegradation(c Constraints) Degradation {
	return Degradation{
		HideDialogPreviews: c.TerminalHeight < PreviewHideHeight,
		HideTimestamps:     c.TerminalWidth < TimestampHideWidth,
		HideUnreadBadges:   c.TerminalWidth < BadgeHideWidth,

		SimplifyTabs:   c.TerminalWidth < TabSimplifyWidth,
		SingleLineMenu: c.TerminalHeight < SingleLineMenuHeight,

		ShowMinWarning: c.ShowMinWarning,
	}
}

// DialogRowHeight is the number of rows one dialog takes.
func (d Degradation) DialogRowHeight() int {
	if d.HideDialogPreviews {
		return 1
	}
	return 2
}

// ShouldShowPreview returns true if the last message line should be shown.
func (d Degradation) ShouldShowPreview() bool {
	return !d.HideDialogPreviews
}

// ShouldShowTimestamp returns true if dialog times should be shown.
func (d Degradation) ShouldShowTimestamp() bool {
	return !d.HideTimestamps
}
