package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgsheet/config"
	"tgsheet/inspect"
	"tgsheet/telegram"
	"tgsheet/testing/harness"
	"tgsheet/ui"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type sourceFunc func(ctx context.Context, limit int) ([]telegram.Dialog, error)

func (f sourceFunc) Dialogs(ctx context.Context, limit int) ([]telegram.Dialog, error) {
	return f(ctx, limit)
}

func fixedDialogs() sourceFunc {
	return func(context.Context, int) ([]telegram.Dialog, error) {
		return []telegram.Dialog{
			{ID: 1, Kind: telegram.KindUser, Title: "Alice", Username: "alice", LastMessage: "see you at 5", Date: testNow.Add(-time.Minute)},
			{ID: 2, Kind: telegram.KindGroup, Title: "Gophers", LastMessage: "generics landed", Date: testNow.Add(-time.Hour), Unread: 4},
			{ID: 3, Kind: telegram.KindChannel, Title: "Go News", Username: "golang_news", Date: testNow.Add(-2 * time.Hour), Members: 1200},
		}, nil
	}
}

type testHome struct {
	*home
	h     *harness.Harness
	saves int
}

// start runs a home at 100x40 through its first load and slide-in.
func start(t *testing.T, src telegram.Source) *testHome {
	t.Helper()
	cfg := config.DefaultConfig()
	m := newHome(context.Background(), cfg, src, "test")
	th := &testHome{home: m}
	m.saveConfig = func(*config.Config) error {
		th.saves++
		return nil
	}
	m.now = func() time.Time { return testNow }
	m.chats.SetClock(m.now)

	th.h = harness.New(t, m, 100, 40)
	th.h.Exec(m.Init(), time.Second)
	th.h.Settle(frameMsg{}, 600)
	return th
}

func TestHomeOpensWithDialogs(t *testing.T) {
	m := start(t, fixedDialogs())

	assert.True(t, m.popup.Visible())
	assert.InDelta(t, 1.0, m.popup.Reveal(), 0.01)
	assert.False(t, m.chats.Loading())
	require.Len(t, m.chats.Dialogs(), 3)
	assert.Equal(t, ui.StateSheet, m.menu.State())

	// 37 sheet rows at 40% rest 14 rows below the status band.
	assert.Equal(t, 14, m.sheet.Header().TopEdge())
	assert.Equal(t, 15, m.popup.Top())

	lines := m.h.Lines()
	require.Len(t, lines, 40)
	assert.Contains(t, lines[15], "Chats")
	assert.Contains(t, lines[18], "Alice")
	assert.Contains(t, lines[19], "see you at 5")
	assert.Contains(t, lines[20], "Gophers")
	assert.Contains(t, lines[0], "Alice", "chat title behind the sheet")
	assert.Contains(t, lines[14], "see you at 5", "last message just above the header")
}

func TestHomeDismissAndReopen(t *testing.T) {
	m := start(t, fixedDialogs())

	m.h.SendKey("esc")
	assert.False(t, m.popup.Showing())
	m.h.Settle(frameMsg{}, 600)
	assert.False(t, m.popup.Visible())
	assert.Equal(t, ui.StateChat, m.menu.State())

	// Navigation keys do nothing without the sheet.
	m.h.SendKey("j")
	assert.Equal(t, 0, m.chats.List().Selected())

	m.h.SendKey("s")
	assert.True(t, m.popup.Showing())
	m.h.Settle(frameMsg{}, 600)
	assert.InDelta(t, 1.0, m.popup.Reveal(), 0.01)
	assert.Equal(t, 14, m.sheet.Header().TopEdge())
}

func TestHomePressAboveHeaderDismisses(t *testing.T) {
	m := start(t, fixedDialogs())

	m.h.Click(50, 20)
	assert.True(t, m.popup.Showing())
	assert.Equal(t, 1, m.chats.List().Selected())

	m.h.Press(50, 5)
	assert.False(t, m.popup.Showing())
	m.h.Settle(frameMsg{}, 600)
	assert.False(t, m.popup.Visible())
}

func TestHomeTabsAndSettings(t *testing.T) {
	m := start(t, fixedDialogs())

	m.h.SendKey("tab")
	assert.Equal(t, 1, m.sheet.FocusedIndex())
	assert.Equal(t, ui.StateSheetSettings, m.menu.State())
	m.h.Settle(frameMsg{}, 600)

	m.h.SendKey("enter")
	assert.True(t, m.appConfig.Sheet.HideByScroll)
	assert.Equal(t, 14, m.sheet.Header().TopEdge(), "pages go back to rest")
	m.h.SendKey("o")
	assert.Equal(t, 60, m.appConfig.Sheet.ContentOffsetPercent)
	assert.Equal(t, 22, m.constraints.ContentOffset)
	assert.Equal(t, 2, m.saves)
	assert.Contains(t, m.h.PlainView(), "60%")

	m.h.SendKey("shift+tab")
	m.h.Settle(frameMsg{}, 600)
	assert.Equal(t, 0, m.sheet.FocusedIndex())

	// The privacy tab is the right third of the header row.
	m.h.Click(90, m.popup.Top())
	assert.Equal(t, 2, m.sheet.FocusedIndex())
}

func TestHomeWheelScrollsSheet(t *testing.T) {
	m := start(t, fixedDialogs())

	m.h.Wheel(50, 25, false)
	m.h.Settle(frameMsg{}, 600)
	assert.Equal(t, 11, m.sheet.Header().TopEdge())

	m.h.Wheel(50, 25, true)
	m.h.Settle(frameMsg{}, 600)
	assert.Equal(t, 14, m.sheet.Header().TopEdge())
}

func TestHomeDragScrollsSheet(t *testing.T) {
	m := start(t, fixedDialogs())

	m.h.Drag(50, 25, 20)
	m.h.Settle(frameMsg{}, 600)
	assert.Equal(t, 9, m.sheet.Header().TopEdge())
	assert.Equal(t, 0, m.chats.List().Selected(), "a drag is not a click")
}

func TestHomeCopiesLink(t *testing.T) {
	m := start(t, fixedDialogs())
	var copied string
	m.chats.Clipboard = func(s string) error {
		copied = s
		return nil
	}

	m.h.SendKey("enter")
	assert.Equal(t, "https://t.me/alice", copied)
	assert.Contains(t, m.h.PlainView(), "copied https://t.me/alice")

	m.h.SendKey("j")
	m.h.SendKey("y")
	assert.Equal(t, "tg://openmessage?chat_id=2", copied)

	m.chats.Clipboard = func(string) error { return errors.New("no display") }
	m.h.SendKey("y")
	assert.Contains(t, m.h.PlainView(), "copy link: no display")
}

func TestHomeLoadError(t *testing.T) {
	m := start(t, sourceFunc(func(context.Context, int) ([]telegram.Dialog, error) {
		return nil, errors.New("flood wait")
	}))

	assert.False(t, m.errBox.Empty())
	view := m.h.PlainView()
	assert.Contains(t, view, "Could not load chats")
	assert.Contains(t, view, "flood wait")

	m.h.SendMsg(hideErrMsg{})
	assert.True(t, m.errBox.Empty())
}

func TestHomeSmallTerminal(t *testing.T) {
	m := start(t, fixedDialogs())

	m.h.Resize(30, 10)
	assert.Contains(t, m.h.PlainView(), "Terminal too small (30x10)")

	m.h.Resize(100, 40)
	assert.Equal(t, 14, m.sheet.Header().TopEdge())
	assert.NotContains(t, m.h.PlainView(), "Terminal too small")
}

func TestHomeViewFitsTerminal(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		m := start(t, telegram.NewDemoSource(7, 30))
		m.h.Resize(size.Width, size.Height)
		m.h.Settle(frameMsg{}, 600)
		assert.LessOrEqual(t, len(m.h.Lines()), size.Height)
	})
}

func TestHomeInspectNode(t *testing.T) {
	m := start(t, fixedDialogs())

	root := m.InspectNode()
	sheetNode := root.Find("Sheet")
	require.NotNil(t, sheetNode)
	assert.True(t, sheetNode.Visible)
	assert.Equal(t, 1.0, sheetNode.State["reveal"])

	snap := m.snapshot()
	assert.Equal(t, "sheet", snap.AppState.State)
	assert.Equal(t, "Chats", snap.AppState.FocusedPage)
	assert.Equal(t, 3, snap.AppState.DialogCount)
	assert.IsType(t, &inspect.Node{}, snap.Components)
}

func TestHomeQuitRemembersPage(t *testing.T) {
	dir := t.TempDir()
	m := start(t, fixedDialogs())
	m.restoreState(config.LoadState(dir))
	assert.Equal(t, 0, m.sheet.FocusedIndex())

	m.h.SendKey("shift+tab")
	m.h.Settle(frameMsg{}, 600)
	cmd := m.h.SendKey("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "Privacy", config.LoadState(dir).LastPage)

	next := start(t, fixedDialogs())
	next.restoreState(config.LoadState(dir))
	assert.Equal(t, 2, next.sheet.FocusedIndex())
}
