package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgsheet/telegram"
	"tgsheet/ui/sheet"
)

var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 10 * time.Second, want: "just now"},
		{ago: 5 * time.Minute, want: "5m ago"},
		{ago: 3 * time.Hour, want: "3h ago"},
		{ago: 4 * 24 * time.Hour, want: "4d ago"},
		{ago: 60 * 24 * time.Hour, want: "2mo ago"},
		{ago: 800 * 24 * time.Hour, want: "2y ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelativeTime(testNow.Add(-tt.ago), testNow))
		})
	}
}

func TestFormatDialogTime(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "today", at: time.Date(2024, 5, 15, 9, 30, 0, 0, time.UTC), want: "09:30"},
		{name: "this week", at: time.Date(2024, 5, 13, 18, 0, 0, 0, time.UTC), want: "Mon"},
		{name: "this year", at: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), want: "1 Mar"},
		{name: "older", at: time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC), want: "31.12.23"},
		{name: "unknown", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDialogTime(tt.at, testNow))
		})
	}
}

func TestFormatCountAndUpdated(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "12", FormatCount(12))
	assert.Equal(t, "3 minutes ago", FormatUpdated(testNow.Add(-3*time.Minute), testNow))
	assert.Equal(t, "never", FormatUpdated(time.Time{}, testNow))
}

func TestDialogItemRender(t *testing.T) {
	item := DialogItem{
		Dialog: telegram.Dialog{
			Kind: telegram.KindUser, Title: "Alice", LastMessage: "see you tomorrow",
			Unread: 1200, Date: time.Date(2024, 5, 15, 9, 30, 0, 0, time.UTC),
		},
		Now:        testNow,
		Preview:    true,
		Timestamps: true,
		Badges:     true,
	}

	require.Equal(t, 2, item.Height())
	for _, selected := range []bool{false, true} {
		lines := strings.Split(item.Render(40, selected), "\n")
		require.Len(t, lines, 2)
		for _, l := range lines {
			assert.Equal(t, 40, lipgloss.Width(l), "selected=%v", selected)
		}
		first, second := ansi.Strip(lines[0]), ansi.Strip(lines[1])
		assert.Contains(t, first, "Alice")
		assert.True(t, strings.HasSuffix(first, "09:30 "), first)
		assert.Contains(t, second, "see you tomorrow")
		assert.Contains(t, second, "1,200")
	}
}

func TestDialogItemCompactRow(t *testing.T) {
	item := DialogItem{
		Dialog: telegram.Dialog{Kind: telegram.KindChannel, Title: strings.Repeat("very long channel name ", 4), Unread: 3},
		Now:    testNow,
		Badges: true,
	}

	require.Equal(t, 1, item.Height())
	row := item.Render(30, false)
	assert.Equal(t, 30, lipgloss.Width(row))
	plain := ansi.Strip(row)
	assert.Contains(t, plain, "…")
	assert.Contains(t, plain, " 3 ")
	assert.NotContains(t, plain, "\n")
}

func TestDialogItemShowsMembersWithoutMessage(t *testing.T) {
	item := DialogItem{
		Dialog:  telegram.Dialog{Kind: telegram.KindGroup, Title: "Team", Members: 4200},
		Now:     testNow,
		Preview: true,
	}

	lines := strings.Split(ansi.Strip(item.Render(40, false)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "4,200 members")
}

func TestSheetHeaderRender(t *testing.T) {
	st := sheet.HeaderState{
		Tabs:         []string{"Chats", "Settings", "Privacy"},
		Focused:      1,
		Previous:     0,
		SwitchFactor: 1,
		Height:       3,
	}
	h := &SheetHeader{}

	lines := strings.Split(h.Render(30, st), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, ansi.Strip(lines[0]), "Settings")
	assert.Contains(t, ansi.Strip(lines[0]), "Chats")
	assert.Equal(t, 12, strings.Index(ansi.Strip(lines[1]), "━"))

	st.Height = 1
	assert.Len(t, strings.Split(h.Render(30, st), "\n"), 1)

	simple := &SheetHeader{Simplify: true}
	st.Height = 2
	out := ansi.Strip(simple.Render(30, st))
	assert.Contains(t, out, "‹ Settings ›")
	assert.Contains(t, out, "2/3")
	assert.NotContains(t, out, "Chats")
}

func TestIndicatorSpanFollowsSwitchFactor(t *testing.T) {
	st := sheet.HeaderState{Tabs: []string{"a", "b", "c"}, Focused: 1, Previous: 0}

	tests := []struct {
		factor float64
		wantX  int
	}{
		{factor: 0, wantX: 2},
		{factor: 0.5, wantX: 7},
		{factor: 1, wantX: 12},
		{factor: 3, wantX: 12},
	}
	for _, tt := range tests {
		st.SwitchFactor = tt.factor
		x, w := IndicatorSpan(30, st)
		assert.Equal(t, tt.wantX, x, "factor=%v", tt.factor)
		assert.Equal(t, 5, w)
	}

	x, w := IndicatorSpan(30, sheet.HeaderState{})
	assert.Zero(t, x)
	assert.Zero(t, w)
}

func TestBlendEndpoints(t *testing.T) {
	from := lipgloss.AdaptiveColor{Light: "#000000", Dark: "#000000"}
	to := lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}

	assert.Equal(t, lipgloss.Color("#000000"), Blend(from, to, 0))
	assert.Equal(t, lipgloss.Color("#ffffff"), Blend(from, to, 1))
	assert.Equal(t, lipgloss.Color("#ffffff"), Blend(from, to, 2))
	assert.NotEqual(t, Blend(from, to, 0.3), Blend(from, to, 0.7))
}

func TestMenuStates(t *testing.T) {
	m := NewMenu()
	m.SetSize(120, 1)

	assert.Equal(t, StateChat, m.State())
	assert.Contains(t, ansi.Strip(m.String()), "s sheet")

	m.SetState(StateSheet)
	out := ansi.Strip(m.String())
	assert.Contains(t, out, "↵ open")
	assert.Contains(t, out, "tab next tab")
	assert.Contains(t, out, "│")

	m.SetState(StateSheetSettings)
	assert.Contains(t, ansi.Strip(m.String()), "h hide by scroll")

	m.Keydown(0)
	m.ClearKeydown()
	m.SetSize(20, 1)
	assert.LessOrEqual(t, lipgloss.Width(m.String()), 20)
}

func TestErrBox(t *testing.T) {
	e := NewErrBox()
	e.SetSize(40, 1)

	e.SetError(errors.New("first line\nsecond line"))
	out := ansi.Strip(e.String())
	assert.Contains(t, out, "first line")
	assert.NotContains(t, out, "second line")

	e.SetNotice("copied")
	assert.Contains(t, ansi.Strip(e.String()), "copied")

	e.Clear()
	assert.Empty(t, strings.TrimSpace(ansi.Strip(e.String())))
}
