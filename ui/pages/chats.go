package pages

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-faster/errors"

	"tgsheet/telegram"
	"tgsheet/ui"
	"tgsheet/ui/layout"
	"tgsheet/ui/overlay"
	"tgsheet/ui/sheet"
)

// ErrNoSelection is returned when an action needs a chat and none is selected.
var ErrNoSelection = errors.New("no chat selected")

// ChatsPage lists the user's dialogs.
type ChatsPage struct {
	sheet.ListPage

	// Clipboard receives copied links.
	Clipboard func(string) error

	spinner spinner.Model
	loading *overlay.LoadingOverlay
	busy    bool

	dialogs []telegram.Dialog
	updated time.Time
	err     error

	degradation layout.Degradation
	now         func() time.Time
}

// NewChatsPage returns an empty chat list whose scrolling ticks at fps.
func NewChatsPage(fps int) *ChatsPage {
	p := &ChatsPage{
		ListPage: sheet.NewListPage(fps),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.Accent)),
		),
		Clipboard: clipboard.WriteAll,
		now:       time.Now,
	}
	p.loading = overlay.NewLoadingOverlay("Loading chats", &p.spinner)
	p.rebuild()
	return p
}

func (p *ChatsPage) Title() string {
	return "Chats"
}

// SetClock overrides the time used for dialog dates.
func (p *ChatsPage) SetClock(now func() time.Time) {
	p.now = now
}

// SetLoading replaces the list with the spinner placeholder.
func (p *ChatsPage) SetLoading(status string) tea.Cmd {
	p.loading.SetStatus(status)
	started := !p.busy
	p.busy = true
	p.rebuild()
	if started {
		return p.spinner.Tick
	}
	return nil
}

// Loading reports whether the page is waiting for dialogs.
func (p *ChatsPage) Loading() bool {
	return p.busy
}

// UpdateSpinner advances the placeholder spinner. Ticks arriving after the
// dialogs loaded stop the spinner loop.
func (p *ChatsPage) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !p.busy {
		return nil
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return cmd
}

// SetDialogs shows dialogs fetched at the given time.
func (p *ChatsPage) SetDialogs(dialogs []telegram.Dialog, at time.Time) {
	p.busy = false
	p.err = nil
	p.dialogs = dialogs
	p.updated = at
	p.rebuild()
}

// SetError shows err in place of the list. Dialogs already loaded stay.
func (p *ChatsPage) SetError(err error) {
	p.busy = false
	p.err = err
	p.rebuild()
}

// SetDegradation adapts the rows to the terminal size.
func (p *ChatsPage) SetDegradation(d layout.Degradation) {
	if d == p.degradation {
		return
	}
	p.degradation = d
	p.rebuild()
}

// Dialogs returns the loaded dialogs.
func (p *ChatsPage) Dialogs() []telegram.Dialog {
	return p.dialogs
}

// Updated returns when the dialogs were fetched.
func (p *ChatsPage) Updated() time.Time {
	return p.updated
}

// Selected returns the selected dialog.
func (p *ChatsPage) Selected() (telegram.Dialog, bool) {
	if p.busy || len(p.dialogs) == 0 {
		return telegram.Dialog{}, false
	}
	item, ok := p.List().SelectedItem().(ui.DialogItem)
	if !ok {
		return telegram.Dialog{}, false
	}
	return item.Dialog, true
}

// CopySelectedLink puts the selected chat's link on the clipboard and
// returns it.
func (p *ChatsPage) CopySelectedLink() (string, error) {
	d, ok := p.Selected()
	if !ok {
		return "", ErrNoSelection
	}
	link := d.Link()
	if err := p.Clipboard(link); err != nil {
		return "", errors.Wrap(err, "copy link")
	}
	return link, nil
}

func (p *ChatsPage) rebuild() {
	var items []sheet.Item
	switch {
	case p.busy:
		items = []sheet.Item{p.loading}
	case len(p.dialogs) > 0:
		now := p.now()
		items = make([]sheet.Item, len(p.dialogs))
		for i, d := range p.dialogs {
			items[i] = ui.DialogItem{
				Dialog:     d,
				Now:        now,
				Preview:    p.degradation.ShouldShowPreview(),
				Timestamps: p.degradation.ShouldShowTimestamp(),
				Badges:     !p.degradation.HideUnreadBadges,
			}
		}
	case p.err != nil:
		items = []sheet.Item{noticeItem{title: "Could not load chats", detail: p.err.Error(), style: ui.TextStyles.Danger}}
	default:
		items = []sheet.Item{noticeItem{title: "No chats yet", detail: "press r to refresh", style: ui.TextStyles.Primary}}
	}
	p.List().SetItems(items)
}
