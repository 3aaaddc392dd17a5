package inspect

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"tgsheet/ui/layout"
)

// Snapshot is the UI state at a point in time.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	Terminal TerminalInfo `json:"terminal"`

	AppState AppStateInfo `json:"app_state"`

	Layout LayoutInfo `json:"layout"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`

	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Colors is the color profile the environment advertises.
	Colors string `json:"colors"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// State is the menu state (e.g., "chat", "sheet").
	State string `json:"state"`

	SheetVisible bool   `json:"sheet_visible"`
	FocusedPage  string `json:"focused_page,omitempty"`

	DialogCount int    `json:"dialog_count"`
	Source      string `json:"source"`

	ErrorMessage string `json:"error_message,omitempty"`
}

// LayoutInfo contains the computed sheet metrics.
type LayoutInfo struct {
	Mode string `json:"mode"`

	SheetX      int `json:"sheet_x"`
	SheetWidth  int `json:"sheet_width"`
	SheetHeight int `json:"sheet_height"`

	TopInset      int     `json:"top_inset"`
	HeaderHeight  int     `json:"header_height"`
	ContentOffset int     `json:"content_offset"`
	Density       float64 `json:"density"`

	ComposerHeight int `json:"composer_height"`
	MenuHeight     int `json:"menu_height"`

	Degradation DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active UI degradation flags.
type DegradationInfo struct {
	HideDialogPreviews bool `json:"hide_dialog_previews"`
	HideTimestamps     bool `json:"hide_timestamps"`
	HideUnreadBadges   bool `json:"hide_unread_badges"`
	SimplifyTabs       bool `json:"simplify_tabs"`
	SingleLineMenu     bool `json:"single_line_menu"`
	ShowMinWarning     bool `json:"show_min_warning"`
}

// BreakpointInfo describes one responsive breakpoint.
type BreakpointInfo struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Active    bool   `json:"active"`
	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{
		Width:  width,
		Height: height,
		Colors: ProfileName(termenv.EnvColorProfile()),
	}
	return s
}

// ProfileName names a termenv color profile.
func ProfileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "none"
	}
}

// WithAppState sets the application state.
func (s *Snapshot) WithAppState(state AppStateInfo) *Snapshot {
	s.AppState = state
	return s
}

// WithLayout sets layout info from constraints and degradation.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:           c.Mode.String(),
		SheetX:         c.SheetX,
		SheetWidth:     c.SheetWidth,
		SheetHeight:    c.SheetHeight,
		TopInset:       c.TopInset,
		HeaderHeight:   c.HeaderHeight,
		ContentOffset:  c.ContentOffset,
		Density:        c.Density,
		ComposerHeight: c.ComposerHeight,
		MenuHeight:     c.MenuHeight,
		Degradation: DegradationInfo{
			HideDialogPreviews: d.HideDialogPreviews,
			HideTimestamps:     d.HideTimestamps,
			HideUnreadBadges:   d.HideUnreadBadges,
			SimplifyTabs:       d.SimplifyTabs,
			SingleLineMenu:     d.SingleLineMenu,
			ShowMinWarning:     d.ShowMinWarning,
		},
	}

	s.Breakpoints = []BreakpointInfo{
		{Name: "hide_previews", Threshold: layout.PreviewHideHeight, Active: d.HideDialogPreviews, Dimension: "height"},
		{Name: "hide_timestamps", Threshold: layout.TimestampHideWidth, Active: d.HideTimestamps, Dimension: "width"},
		{Name: "hide_badges", Threshold: layout.BadgeHideWidth, Active: d.HideUnreadBadges, Dimension: "width"},
		{Name: "simplify_tabs", Threshold: layout.TabSimplifyWidth, Active: d.SimplifyTabs, Dimension: "width"},
		{Name: "single_line_menu", Threshold: layout.SingleLineMenuHeight, Active: d.SingleLineMenu, Dimension: "height"},
	}
	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	fmt.Fprintf(&b, "Time: %s\n", s.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Terminal: %dx%d (%s)\n", s.Terminal.Width, s.Terminal.Height, s.Terminal.Colors)
	fmt.Fprintf(&b, "State: %s\n", s.AppState.State)

	b.WriteString("\n--- Layout ---\n")
	fmt.Fprintf(&b, "Mode: %s\n", s.Layout.Mode)
	fmt.Fprintf(&b, "Sheet: %dx%d at x=%d\n", s.Layout.SheetWidth, s.Layout.SheetHeight, s.Layout.SheetX)
	fmt.Fprintf(&b, "Inset/Header/Offset: %d/%d/%d\n", s.Layout.TopInset, s.Layout.HeaderHeight, s.Layout.ContentOffset)

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		fmt.Fprintf(&b, "  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension)
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}
	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	fmt.Fprintf(b, "%s%s", strings.Repeat("  ", indent), node.Type)
	if node.ID != "" {
		fmt.Fprintf(b, " [%s]", node.ID)
	}
	fmt.Fprintf(b, " (%dx%d)", node.Bounds.Width, node.Bounds.Height)
	if !node.Visible {
		b.WriteString(" hidden")
	}
	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
