package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tgsheet/config"
	"tgsheet/inspect"
	"tgsheet/keys"
	"tgsheet/log"
	"tgsheet/telegram"
	"tgsheet/ui"
	"tgsheet/ui/layout"
	"tgsheet/ui/overlay"
	"tgsheet/ui/pages"
	"tgsheet/ui/sheet"
)

// fetchTimeout bounds one dialog fetch, flood waits included.
const fetchTimeout = 30 * time.Second

// wheelStep is how far one wheel notch flings the focused page.
const wheelStep = 3

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, source telegram.Source, sourceName string) error {
	h := newHome(ctx, cfg, source, sourceName)
	h.restoreState(config.LoadState(cfg.StateDirectory))
	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // wheel and drags
	)
	_, err := p.Run()
	return err
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config
	// saveConfig persists preference changes.
	saveConfig func(*config.Config) error
	// state remembers the focused page between runs.
	state *config.State

	source     telegram.Source
	sourceName string
	now        func() time.Time

	// -- Layout --

	width, height int
	constraints   layout.Constraints
	degradation   layout.Degradation
	frameInterval time.Duration

	// -- Sheet --

	popup    *overlay.PopupLayout
	sheet    *sheet.Sheet
	header   *ui.SheetHeader
	chats    *pages.ChatsPage
	settings *pages.SettingsPage
	privacy  *pages.PrivacyPage

	// headerRow is the sheet header's top row; the chat behind the sheet
	// ends just above it.
	headerRow int
	// framing is set while a frame tick is scheduled.
	framing  bool
	fetching bool

	// -- Mouse --

	dragging  bool
	dragMoved bool
	dragLastY int
	pressItem int

	// -- UI Components --

	// menu displays the bottom menu
	menu *ui.Menu
	// errBox displays errors and notices in place of the composer
	errBox *ui.ErrBox
}

func newHome(ctx context.Context, cfg *config.Config, source telegram.Source, sourceName string) *home {
	fps := cfg.Sheet.AnimationFPS
	if fps <= 0 {
		fps = config.DefaultAnimationFPS
	}

	m := &home{
		ctx:           ctx,
		appConfig:     cfg,
		saveConfig:    config.SaveConfig,
		source:        source,
		sourceName:    sourceName,
		now:           time.Now,
		frameInterval: time.Second / time.Duration(fps),
		header:        &ui.SheetHeader{},
		menu:          ui.NewMenu(),
		errBox:        ui.NewErrBox(),
		pressItem:     sheet.NoPosition,
	}

	m.popup = overlay.NewPopupLayout(fps)
	m.popup.OnHidden = m.onSheetHidden
	m.popup.OnHeaderMoved = func(y float64) {
		m.headerRow = int(math.Round(y))
	}
	m.sheet = sheet.New(sheetSettings{m}, m.popup, m.header, fps)
	m.sheet.Style = ui.SheetStyle()
	m.popup.SetSheet(m.sheet)

	m.chats = pages.NewChatsPage(fps)
	m.settings = pages.NewSettingsPage(fps, &cfg.Sheet)
	m.settings.OnChange = m.onSettingChanged
	m.privacy = pages.NewPrivacyPage(fps)
	m.sheet.AddPage(m.chats)
	m.sheet.AddPage(m.settings)
	m.sheet.AddPage(m.privacy)
	m.refreshInfo()
	return m
}

// sheetSettings reads the live preferences and the current layout on every
// pass, so preference changes apply on the next layout.
type sheetSettings struct {
	m *home
}

func (s sheetSettings) HeaderHeight() int  { return s.m.constraints.HeaderHeight }
func (s sheetSettings) ContentOffset() int { return s.m.constraints.ContentOffset }

func (s sheetSettings) HideByScrollBorder() int {
	return s.m.constraints.Dp(s.m.appConfig.Sheet.HideByScrollBorderDp)
}

func (s sheetSettings) CanHideByScroll() bool {
	return s.m.appConfig.Sheet.HideByScroll
}

func (m *home) computeLayout() {
	m.constraints = layout.ComputeConstraints(m.width, m.height, layout.Options{
		HeaderRows:           m.appConfig.Sheet.HeaderRows,
		ComposerRows:         m.appConfig.Sheet.ComposerRows,
		ContentOffsetPercent: m.appConfig.Sheet.ContentOffsetPercent,
	})
	m.degradation = layout.ComputeDegradation(m.constraints)
}

// updateHandleWindowSizeEvent sets the sizes of the components.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.computeLayout()
	c := m.constraints
	log.LayoutTrace("resize %dx%d mode=%s sheet=%d inset=%d header=%d offset=%d",
		msg.Width, msg.Height, c.Mode, c.SheetHeight, c.TopInset, c.HeaderHeight, c.ContentOffset)

	m.header.Simplify = m.degradation.SimplifyTabs
	m.chats.SetDegradation(m.degradation)
	m.sheet.Layout(c.SheetHeight, c.SheetHeight, c.TopInset)
	m.popup.SetBounds(c.SheetX, c.SheetWidth, c.SheetHeight)
	m.menu.SetSize(msg.Width, c.MenuHeight)
	m.errBox.SetSize(msg.Width, max(c.ComposerHeight, 1))
}

func (m *home) Init() tea.Cmd {
	m.popup.Show(true)
	m.syncMenu()
	return tea.Batch(m.fetchDialogs(), m.frame())
}

// Animating reports whether the sheet still needs frames.
func (m *home) Animating() bool {
	return m.popup.Animating()
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncMenu()
	// Snapshots follow the header once it comes to rest.
	if inspect.IsEnabled() && !m.popup.Animating() && m.popup.TakeInvalidated() {
		if err := inspect.WriteSnapshot(m.snapshot()); err != nil {
			log.WarningLog.Printf("inspect: %v", err)
		}
	}
	return m, tea.Batch(cmd, m.frame())
}

func (m *home) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		m.framing = false
		m.popup.Tick()
		return nil
	case hideErrMsg:
		m.errBox.Clear()
		return nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return nil
	case dialogsLoadedMsg:
		m.fetching = false
		if msg.err != nil {
			m.chats.SetError(msg.err)
			return m.handleError(msg.err)
		}
		log.InfoLog.Printf("loaded %d dialogs from %s", len(msg.dialogs), m.sourceName)
		m.chats.SetDialogs(msg.dialogs, msg.at)
		m.refreshInfo()
		return nil
	case spinner.TickMsg:
		return m.chats.UpdateSpinner(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return nil
	case error:
		return m.handleError(msg)
	}
	return nil
}

// frame schedules the next animation frame while anything is moving.
func (m *home) frame() tea.Cmd {
	if m.framing || !m.popup.Animating() {
		return nil
	}
	m.framing = true
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// restoreState focuses the page that was focused when tgsheet last quit.
func (m *home) restoreState(state *config.State) {
	m.state = state
	for i, p := range m.sheet.Pages() {
		if t, ok := p.(sheet.Titled); ok && t.Title() == state.LastPage {
			m.sheet.FocusPage(i)
			return
		}
	}
}

func (m *home) handleQuit() tea.Cmd {
	if m.state != nil {
		if err := m.state.SetLastPage(m.focusedTitle()); err != nil {
			log.ErrorLog.Printf("failed to save state: %v", err)
		}
	}
	log.GetProfiler().LogStats()
	return tea.Quit
}

func (m *home) focusedTitle() string {
	if t, ok := m.sheet.FocusedPage().(sheet.Titled); ok {
		return t.Title()
	}
	return ""
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
// This is purely visual - it briefly underlines the corresponding menu item.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	if name == keys.KeyUp || name == keys.KeyDown {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	highlightCmd := m.handleMenuHighlighting(msg)

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	log.InputTrace("key %q -> %d", msg.String(), name)

	// Keys that work with or without the sheet.
	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyToggleSheet:
		if m.popup.Showing() {
			m.sheet.Dismiss(true)
		} else {
			m.popup.Show(true)
		}
		return highlightCmd
	case keys.KeyRefresh:
		return tea.Batch(highlightCmd, m.fetchDialogs())
	case keys.KeyHideByScroll:
		m.settings.ToggleHideByScroll()
		return highlightCmd
	case keys.KeyOffset:
		m.settings.CycleContentOffset()
		return highlightCmd
	}

	if !m.popup.Showing() {
		return nil
	}

	list := m.sheet.FocusedList()
	switch name {
	case keys.KeyDismiss:
		m.sheet.Dismiss(true)
	case keys.KeyUp:
		list.Select(list.Selected() - 1)
	case keys.KeyDown:
		list.Select(list.Selected() + 1)
	case keys.KeyPageUp:
		list.Fling(-max(list.Height()-2, 1))
	case keys.KeyPageDown:
		list.Fling(max(list.Height()-2, 1))
	case keys.KeyTop:
		list.Select(0)
		m.sheet.ScrollToTop()
	case keys.KeyBottom:
		list.Select(list.ItemCount() - 1)
		m.sheet.ScrollToBottom()
	case keys.KeyNextPage:
		m.sheet.FocusPage((m.sheet.FocusedIndex() + 1) % len(m.sheet.Pages()))
	case keys.KeyPrevPage:
		n := len(m.sheet.Pages())
		m.sheet.FocusPage((m.sheet.FocusedIndex() + n - 1) % n)
	case keys.KeyEnter:
		return tea.Batch(highlightCmd, m.activate())
	case keys.KeyCopy:
		return tea.Batch(highlightCmd, m.copyLink())
	}
	return highlightCmd
}

// activate runs the focused page's primary action on its selection.
func (m *home) activate() tea.Cmd {
	switch m.sheet.FocusedPage() {
	case m.chats:
		return m.copyLink()
	case m.settings:
		m.settings.Activate()
	}
	return nil
}

func (m *home) copyLink() tea.Cmd {
	if m.sheet.FocusedPage() != m.chats {
		return nil
	}
	link, err := m.chats.CopySelectedLink()
	if err != nil {
		return m.handleError(err)
	}
	return m.showNotice("copied " + link)
}

func (m *home) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.popup.Showing() {
		return nil
	}
	list := m.sheet.FocusedList()
	if list == nil {
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			list.Fling(-wheelStep)
		case tea.MouseButtonWheelDown:
			list.Fling(wheelStep)
		case tea.MouseButtonLeft:
			if m.popup.HandlePress(msg.X, msg.Y) {
				log.InputTrace("press outside at %d,%d", msg.X, msg.Y)
				return nil
			}
			if tab, ok := m.tabAt(msg.X, msg.Y); ok {
				m.sheet.FocusPage(tab)
				return nil
			}
			list.StopScroll()
			m.dragging = true
			m.dragMoved = false
			m.dragLastY = msg.Y
			m.pressItem = m.sheet.ItemAt(msg.Y)
		}
	case tea.MouseActionMotion:
		if !m.dragging || msg.Y == m.dragLastY {
			return nil
		}
		// Moving the pointer down pulls the content down.
		list.Drag(m.dragLastY - msg.Y)
		m.dragLastY = msg.Y
		m.dragMoved = true
	case tea.MouseActionRelease:
		if !m.dragging {
			return nil
		}
		m.dragging = false
		if m.dragMoved {
			list.Release()
		} else if m.pressItem != sheet.NoPosition {
			list.Select(m.pressItem)
		}
		m.pressItem = sheet.NoPosition
	}
	return nil
}

// tabAt maps a press on the header's tab row to a page index.
func (m *home) tabAt(x, y int) (int, bool) {
	c := m.constraints
	n := len(m.sheet.Pages())
	if n == 0 || c.SheetWidth <= 0 || c.HeaderHeight == 0 || m.header.Simplify {
		return 0, false
	}
	if y != m.popup.Top() || x < c.SheetX || x >= c.SheetX+c.SheetWidth {
		return 0, false
	}
	return (x - c.SheetX) * n / c.SheetWidth, true
}

func (m *home) onSheetHidden() {
	log.SheetTrace("sheet hidden")
	m.dragging = false
}

func (m *home) onSettingChanged(s pages.Setting) {
	log.InfoLog.Printf("setting %d changed: hide_by_scroll=%v offset=%d%%",
		s, m.appConfig.Sheet.HideByScroll, m.appConfig.Sheet.ContentOffsetPercent)
	m.computeLayout()
	switch s {
	case pages.SettingContentOffset:
		m.sheet.SetContentOffsetChanged()
	case pages.SettingHideByScroll:
		m.sheet.SetHideByScrollChanged()
	}
	if err := m.saveConfig(m.appConfig); err != nil {
		log.ErrorLog.Printf("failed to save config: %v", err)
	}
}

// fetchDialogs loads the chat list in the background.
func (m *home) fetchDialogs() tea.Cmd {
	if m.fetching {
		return nil
	}
	m.fetching = true
	spin := m.chats.SetLoading("Fetching chats from " + m.sourceName)

	ctx, src, now := m.ctx, m.source, m.now
	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		dialogs, err := src.Dialogs(ctx, telegram.DefaultDialogLimit)
		return dialogsLoadedMsg{dialogs: dialogs, at: now(), err: err}
	}
	return tea.Batch(spin, load)
}

func (m *home) refreshInfo() {
	source := m.sourceName
	if c, ok := m.source.(*telegram.CachedSource); ok && c.Cache != nil {
		source += " (cached)"
	}
	m.settings.SetInfo([]pages.InfoRow{
		{Label: "Source", Value: source},
		{Label: "Chats", Value: ui.FormatCount(len(m.chats.Dialogs()))},
		{Label: "Updated", Value: ui.FormatUpdated(m.chats.Updated(), m.now())},
	})
}

func (m *home) syncMenu() {
	switch {
	case !m.popup.Showing():
		m.menu.SetState(ui.StateChat)
	case m.sheet.FocusedPage() == m.settings:
		m.menu.SetState(ui.StateSheetSettings)
	case m.sheet.FocusedPage() == m.chats && m.chats.Loading():
		m.menu.SetState(ui.StateLoading)
	default:
		m.menu.SetState(ui.StateSheet)
	}
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}
		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen.
type hideErrMsg struct{}

// frameMsg advances every running animation by one frame.
type frameMsg struct{}

// dialogsLoadedMsg carries the result of a dialog fetch.
type dialogsLoadedMsg struct {
	dialogs []telegram.Dialog
	at      time.Time
	err     error
}

// handleError handles all errors which get bubbled up to the app. sets the error message. We return a callback tea.Cmd that returns a hideErrMsg message
// which clears the error message after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.errBox.SetError(err)
	return m.hideErrAfter(3 * time.Second)
}

func (m *home) showNotice(msg string) tea.Cmd {
	m.errBox.SetNotice(msg)
	return m.hideErrAfter(2 * time.Second)
}

func (m *home) hideErrAfter(d time.Duration) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(d):
		}
		return hideErrMsg{}
	}
}

var (
	chatTitleStyle = lipgloss.NewStyle().
			Foreground(ui.TextPrimary).
			Bold(true)
	bubbleStyle = lipgloss.NewStyle().
			Foreground(ui.TextPrimary).
			Background(ui.BackgroundSelected).
			Padding(0, 1)
	composerStyle = lipgloss.NewStyle().
			Foreground(ui.TextMuted)
	warningStyle = lipgloss.NewStyle().
			Foreground(ui.Danger).
			Bold(true)
)

// chatView is the conversation behind the sheet: the selected chat's title
// on top and its last message just above the sheet header.
func (m *home) chatView() string {
	c := m.constraints
	title := "tgsheet"
	var bubble string
	if d, ok := m.chats.Selected(); ok {
		title = d.Title
		if d.LastMessage != "" {
			text := truncate.StringWithTail(d.LastMessage, uint(max(m.width-6, 1)), "…")
			bubble = bubbleStyle.Render(text) + " " + ui.TextStyles.Muted.Render(ui.FormatDialogTime(d.Date, m.now()))
		}
	}

	top := chatTitleStyle.Render(truncate.StringWithTail(" "+title, uint(max(m.width, 1)), "…"))
	rows := max(c.SheetHeight-1, 0)
	if rows == 0 {
		return top
	}
	above := rows
	if m.popup.Visible() {
		above = min(max(m.headerRow-1, 0), rows)
	}
	var last string
	if above > 0 {
		last = lipgloss.Place(m.width, above, lipgloss.Left, lipgloss.Bottom, " "+bubble)
	}
	body := lipgloss.Place(m.width, rows, lipgloss.Left, lipgloss.Top, last)
	return top + "\n" + body
}

func (m *home) composerView() string {
	if !m.errBox.Empty() {
		return m.errBox.String()
	}
	line := composerStyle.Render(" ✎ Message")
	return lipgloss.Place(m.width, m.constraints.ComposerHeight, lipgloss.Left, lipgloss.Top, line)
}

func (m *home) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	defer log.GetProfiler().Start("home.View")()

	if m.degradation.ShowMinWarning {
		msg := warningStyle.Render(fmt.Sprintf("Terminal too small (%dx%d)", m.width, m.height)) +
			"\n" + ui.TextStyles.Muted.Render(fmt.Sprintf("need at least %dx%d", layout.MinWidth, layout.MinHeight))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	parts := []string{m.popup.View(m.chatView())}
	if m.constraints.ComposerHeight > 0 {
		parts = append(parts, m.composerView())
	} else if !m.errBox.Empty() {
		parts = append(parts, m.errBox.String())
	}
	parts = append(parts, m.menu.String())

	out := strings.Join(parts, "\n")
	// Errors without a composer row push the menu down; keep the screen size.
	if lines := strings.Split(out, "\n"); len(lines) > m.height {
		out = strings.Join(lines[:m.height], "\n")
	}
	return out
}

// InspectNode describes the screen for the UI inspector.
func (m *home) InspectNode() *inspect.Node {
	c := m.constraints
	root := inspect.NewNode("App").WithBounds(0, 0, m.width, m.height)

	sheetNode := m.sheet.InspectNode()
	sheetNode.Bounds.X = c.SheetX
	sheetNode.Bounds.Width = c.SheetWidth
	sheetNode.Visible = m.popup.Visible()
	sheetNode.WithState("reveal", m.popup.Reveal())
	root.AddChild(sheetNode)

	root.AddChild(inspect.NewNode("Composer").
		WithBounds(0, c.SheetHeight, m.width, c.ComposerHeight).
		WithState("empty", m.errBox.Empty()))
	root.AddChild(inspect.NewNode("Menu").
		WithBounds(0, c.SheetHeight+c.ComposerHeight, m.width, c.MenuHeight).
		WithState("state", int(m.menu.State())))
	return root
}

func (m *home) snapshot() *inspect.Snapshot {
	state := "chat"
	if m.popup.Showing() {
		state = "sheet"
	}
	errMsg := ""
	if !m.errBox.Empty() {
		errMsg = m.errBox.String()
	}
	return inspect.NewSnapshot().
		WithTerminal(m.width, m.height).
		WithAppState(inspect.AppStateInfo{
			State:        state,
			SheetVisible: m.popup.Visible(),
			FocusedPage:  m.focusedTitle(),
			DialogCount:  len(m.chats.Dialogs()),
			Source:       m.sourceName,
			ErrorMessage: strings.TrimSpace(errMsg),
		}).
		WithLayout(m.constraints, m.degradation).
		WithComponents(m.InspectNode())
}
