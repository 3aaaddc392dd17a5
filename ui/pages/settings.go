package pages

import (
	"fmt"

	"tgsheet/config"
	"tgsheet/ui"
	"tgsheet/ui/sheet"
)

// Setting names a preference the settings page can change.
type Setting int

const (
	SettingHideByScroll Setting = iota
	SettingContentOffset
)

// OffsetPresets are the content offsets the settings page cycles through,
// in percent of the sheet height.
var OffsetPresets = []int{25, 40, 60}

// InfoRow is a read-only line of the settings page.
type InfoRow struct {
	Label string
	Value string
}

// settingItem renders the live value of one preference.
type settingItem struct {
	page    *SettingsPage
	setting Setting
}

func (s settingItem) Height() int { return 1 }

func (s settingItem) Render(width int, selected bool) string {
	label, value := s.page.describe(s.setting)
	return valueItem{label: label, value: func() string { return value }}.Render(width, selected)
}

// SettingsPage shows the sheet preferences and a few facts about the
// session. Changes are written to the shared config and reported through
// OnChange so the owner can re-layout the sheet.
type SettingsPage struct {
	sheet.ListPage

	// OnChange runs after a preference was changed.
	OnChange func(Setting)

	prefs *config.SheetConfig
	info  []InfoRow
}

// NewSettingsPage returns a page editing prefs in place.
func NewSettingsPage(fps int, prefs *config.SheetConfig) *SettingsPage {
	p := &SettingsPage{ListPage: sheet.NewListPage(fps), prefs: prefs}
	p.rebuild()
	return p
}

func (p *SettingsPage) Title() string {
	return "Settings"
}

// SetInfo replaces the read-only rows.
func (p *SettingsPage) SetInfo(rows []InfoRow) {
	p.info = rows
	p.rebuild()
}

// Activate changes the selected preference. It reports whether the
// selection was a preference.
func (p *SettingsPage) Activate() bool {
	item, ok := p.List().SelectedItem().(settingItem)
	if !ok {
		return false
	}
	switch item.setting {
	case SettingHideByScroll:
		p.ToggleHideByScroll()
	case SettingContentOffset:
		p.CycleContentOffset()
	}
	return true
}

// ToggleHideByScroll flips dismissing by scrolling.
func (p *SettingsPage) ToggleHideByScroll() {
	p.prefs.HideByScroll = !p.prefs.HideByScroll
	p.changed(SettingHideByScroll)
}

// CycleContentOffset moves to the next offset preset.
func (p *SettingsPage) CycleContentOffset() {
	next := OffsetPresets[0]
	for _, preset := range OffsetPresets {
		if preset > p.prefs.ContentOffsetPercent {
			next = preset
			break
		}
	}
	p.prefs.ContentOffsetPercent = next
	p.changed(SettingContentOffset)
}

func (p *SettingsPage) changed(s Setting) {
	if p.OnChange != nil {
		p.OnChange(s)
	}
}

func (p *SettingsPage) describe(s Setting) (label, value string) {
	switch s {
	case SettingHideByScroll:
		value = ui.IconOff + " off"
		if p.prefs.HideByScroll {
			value = ui.IconOn + " on"
		}
		return "Hide by scroll", value
	case SettingContentOffset:
		return "Content offset", fmt.Sprintf("%d%%", p.prefs.ContentOffsetPercent)
	}
	return "", ""
}

func (p *SettingsPage) rebuild() {
	items := []sheet.Item{
		settingItem{page: p, setting: SettingHideByScroll},
		settingItem{page: p, setting: SettingContentOffset},
	}
	if len(p.info) > 0 {
		items = append(items, textItem{}, section("About"))
		for _, row := range p.info {
			value := row.Value
			items = append(items, valueItem{label: row.Label, value: func() string { return value }})
		}
	}
	p.List().SetItems(items)
}
