package pages

import (
	"tgsheet/ui/sheet"
)

var privacyText = []struct {
	title string
	lines []string
}{
	{
		title: "Session",
		lines: []string{
			"Your login is kept in the state directory,",
			"readable only by your user.",
			"Delete it to sign out of this device.",
		},
	},
	{
		title: "Chat list",
		lines: []string{
			"The last fetched chat list is cached locally",
			"so the sheet opens while offline.",
			"Run `tgsheet reset` to clear it.",
		},
	},
	{
		title: "Network",
		lines: []string{
			"Requests go to Telegram only, and are",
			"rate limited to respect flood waits.",
		},
	},
}

// PrivacyPage is a static page. It pads its own end with a spacer instead of
// using the sheet's bottom padding.
type PrivacyPage struct {
	sheet.ListPage

	textHeight int
}

// NewPrivacyPage returns the privacy page.
func NewPrivacyPage(fps int) *PrivacyPage {
	p := &PrivacyPage{ListPage: sheet.NewListPage(fps)}

	var items []sheet.Item
	for i, s := range privacyText {
		if i > 0 {
			items = append(items, textItem{})
		}
		items = append(items, section(s.title))
		for _, l := range s.lines {
			items = append(items, paragraph(l))
		}
	}
	p.textHeight = len(items)
	items = append(items, spacerItem{
		viewport: func() int { return p.List().Height() },
		content:  func() int { return p.textHeight },
	})
	p.List().SetItems(items)
	return p
}

func (p *PrivacyPage) Title() string {
	return "Privacy"
}

func (p *PrivacyPage) NeedBottomDecorationOffsets() bool {
	return false
}
