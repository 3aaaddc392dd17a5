package sheet

import (
	"math"

	"tgsheet/log"
)

// Geometry is the measured layout of a sheet, in terminal rows.
type Geometry struct {
	// TargetHeight is the sheet's full height.
	TargetHeight int
	// WrapHeight is the height of the wrapping popup, which may exceed
	// TargetHeight by rows the sheet does not cover.
	WrapHeight int
	// TopInset is the status bar band above the header.
	TopInset int
	// HeaderHeight is the header band, excluding TopInset.
	HeaderHeight int
	// ContentOffset is the resting gap above the first item.
	ContentOffset int
}

// HeaderHeightWithOffset is the header plus the status bar band.
func (g Geometry) HeaderHeightWithOffset() int {
	return g.HeaderHeight + g.TopInset
}

// ViewportHeight is the height of the list area below a fully collapsed
// header.
func (g Geometry) ViewportHeight() int {
	return max(g.TargetHeight-g.TopInset-g.HeaderHeight, 0)
}

// LickView is the strip that fills the status bar band as the header
// reaches the top of the screen.
type LickView struct {
	// Top is the strip's first row.
	Top int
	// Height is TopInset.
	Height int
	// Factor is the fill ratio: 0 when the header is a full inset below
	// the top band, 1 when it is collapsed.
	Factor float64
}

// Rows is how many rows of the band the strip covers.
func (l LickView) Rows() int {
	return int(math.Round(float64(l.Height) * l.Factor))
}

// HeaderCallbacks lets the owner react to header movement. Nil fields are
// skipped. Sheets without a header never call them.
type HeaderCallbacks struct {
	Moved               func(translationY float64)
	ContentInvalidated  func()
	LickChanged         func(lick LickView)
	BackgroundFactorSet func(factor float64)
}

// HeaderOffsetModel derives the header translation, the status bar strip
// and the header background factor from the reported position of the top of
// the list content.
type HeaderOffsetModel struct {
	geometry  *Geometry
	present   func() bool
	callbacks HeaderCallbacks

	translationY     float64
	lick             LickView
	backgroundFactor float64
}

// NewHeaderOffsetModel binds a model to the geometry it reads on every
// update. present reports whether the sheet has a header at all.
func NewHeaderOffsetModel(geometry *Geometry, present func() bool, callbacks HeaderCallbacks) *HeaderOffsetModel {
	m := &HeaderOffsetModel{
		geometry:  geometry,
		present:   present,
		callbacks: callbacks,
	}
	m.translationY = float64(geometry.TopInset)
	return m
}

// Clamp keeps the translation below the status bar band after the band
// changed size.
func (m *HeaderOffsetModel) Clamp() {
	m.translationY = math.Max(m.translationY, float64(m.geometry.TopInset))
}

// SetCallbacks replaces the observer of header movement.
func (m *HeaderOffsetModel) SetCallbacks(cb HeaderCallbacks) {
	m.callbacks = cb
}

// SetHeaderPosition moves the header so its top band starts at y. y is the
// first item's top plus TopInset. Without a header only the position is
// kept, for popup sizing.
func (m *HeaderOffsetModel) SetHeaderPosition(y float64) {
	inset := float64(m.geometry.TopInset)
	translation := math.Max(y, inset)
	m.translationY = translation
	if m.present != nil && !m.present() {
		m.lick = LickView{}
		m.backgroundFactor = 0
		log.LayoutTrace("headerless y=%.1f translation=%.1f", y, translation)
		return
	}

	if m.callbacks.Moved != nil {
		m.callbacks.Moved(translation)
	}
	if m.callbacks.ContentInvalidated != nil {
		m.callbacks.ContentInvalidated()
	}

	top := translation - inset
	factor := headerFactor(top, inset)
	m.lick = LickView{
		Top:    int(math.Round(top)),
		Height: m.geometry.TopInset,
		Factor: factor,
	}
	if m.callbacks.LickChanged != nil {
		m.callbacks.LickChanged(m.lick)
	}

	// The header background follows the strip.
	m.backgroundFactor = factor
	if m.callbacks.BackgroundFactorSet != nil {
		m.callbacks.BackgroundFactorSet(factor)
	}
	log.LayoutTrace("header y=%.1f translation=%.1f lick=%.2f", y, translation, factor)
}

// headerFactor maps the header top edge to [0,1]. With no inset the factor
// is a step: 1 exactly at the top, 0 anywhere below.
func headerFactor(top, inset float64) float64 {
	if inset <= 0 {
		if top <= 0 {
			return 1
		}
		return 0
	}
	if top >= inset {
		return 0
	}
	return 1 - top/inset
}

// TranslationY returns the header's top row.
func (m *HeaderOffsetModel) TranslationY() float64 {
	return m.translationY
}

// TopEdge is the distance from the sheet top to the top of the status bar
// band above the header. It is zero when the header is collapsed.
func (m *HeaderOffsetModel) TopEdge() int {
	return max(int(math.Round(m.translationY))-m.geometry.TopInset, 0)
}

// ContentVisibleHeight is how much of the sheet below the header is on
// screen.
func (m *HeaderOffsetModel) ContentVisibleHeight() int {
	return m.geometry.TargetHeight - (m.TopEdge() + m.geometry.HeaderHeightWithOffset())
}

// Lick returns the status bar strip state.
func (m *HeaderOffsetModel) Lick() LickView {
	return m.lick
}

// BackgroundFactor returns the header background blend factor.
func (m *HeaderOffsetModel) BackgroundFactor() float64 {
	return m.backgroundFactor
}
