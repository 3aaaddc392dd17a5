package sheet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(target, inset, header, offset int) *HeaderOffsetModel {
	g := &Geometry{TargetHeight: target, WrapHeight: target, TopInset: inset, HeaderHeight: header, ContentOffset: offset}
	return NewHeaderOffsetModel(g, func() bool { return true }, HeaderCallbacks{})
}

func TestSetHeaderPositionClampsToTopInset(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{name: "far above", y: -50, want: 100},
		{name: "at zero", y: 0, want: 100},
		{name: "just above inset", y: 99.5, want: 100},
		{name: "at inset", y: 100, want: 100},
		{name: "below inset", y: 101, want: 101},
		{name: "deep", y: 1500, want: 1500},
	}

	m := newModel(2000, 100, 150, 300)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetHeaderPosition(tt.y)
			assert.Equal(t, tt.want, m.TranslationY())
			assert.GreaterOrEqual(t, m.TranslationY(), 100.0)
		})
	}
}

func TestBackgroundFactorIncreasesTowardTopInset(t *testing.T) {
	m := newModel(2000, 100, 150, 300)

	prev := -1.0
	for y := 200.0; y >= 100; y -= 5 {
		m.SetHeaderPosition(y)
		f := m.BackgroundFactor()
		assert.GreaterOrEqual(t, f, prev, "factor at y=%v", y)
		prev = f
	}
	m.SetHeaderPosition(200)
	assert.Equal(t, 0.0, m.BackgroundFactor())
	m.SetHeaderPosition(100)
	assert.Equal(t, 1.0, m.BackgroundFactor())

	for _, y := range []float64{200, 250, 1000} {
		m.SetHeaderPosition(y)
		assert.Equal(t, 0.0, m.BackgroundFactor(), "y=%v", y)
	}
}

func TestSetHeaderPositionIsIdempotent(t *testing.T) {
	m := newModel(2000, 100, 150, 300)

	for _, y := range []float64{0, 137.5, 150, 420} {
		m.SetHeaderPosition(y)
		first, firstFactor := m.TranslationY(), m.BackgroundFactor()
		m.SetHeaderPosition(y)
		assert.Equal(t, first, m.TranslationY())
		assert.Equal(t, firstFactor, m.BackgroundFactor())
	}
}

func TestHeaderWorkedExample(t *testing.T) {
	m := newModel(2000, 100, 150, 300)

	m.SetHeaderPosition(300)
	assert.Equal(t, 300.0, m.TranslationY())
	assert.Equal(t, 200, m.TopEdge())
	assert.Equal(t, 0.0, m.BackgroundFactor())

	m.SetHeaderPosition(150)
	assert.Equal(t, 150.0, m.TranslationY())
	assert.Equal(t, 50, m.TopEdge())
	assert.InDelta(t, 0.5, m.BackgroundFactor(), 1e-9)
	assert.InDelta(t, 0.5, m.Lick().Factor, 1e-9)
}

func TestHeaderFactorWithoutTopInset(t *testing.T) {
	m := newModel(40, 0, 3, 10)

	m.SetHeaderPosition(0)
	assert.Equal(t, 1.0, m.BackgroundFactor())
	m.SetHeaderPosition(5)
	assert.Equal(t, 0.0, m.BackgroundFactor())
	assert.False(t, math.IsNaN(m.Lick().Factor))
}

func TestContentVisibleHeight(t *testing.T) {
	m := newModel(770, 100, 150, 300)
	m.SetHeaderPosition(500)

	assert.Equal(t, 400, m.TopEdge())
	assert.Equal(t, 120, m.ContentVisibleHeight())
}

func TestHeaderlessModelTracksPosition(t *testing.T) {
	g := &Geometry{TargetHeight: 40, TopInset: 2, ContentOffset: 10}
	called := 0
	m := NewHeaderOffsetModel(g, func() bool { return false }, HeaderCallbacks{
		Moved:               func(float64) { called++ },
		ContentInvalidated:  func() { called++ },
		LickChanged:         func(LickView) { called++ },
		BackgroundFactorSet: func(float64) { called++ },
	})

	m.SetHeaderPosition(30)
	assert.Equal(t, 30.0, m.TranslationY())
	assert.Equal(t, 28, m.TopEdge())

	m.SetHeaderPosition(0)
	assert.Equal(t, 2.0, m.TranslationY())
	assert.Equal(t, LickView{}, m.Lick())
	assert.Zero(t, called)
}

func TestClampFollowsTopInset(t *testing.T) {
	g := &Geometry{TargetHeight: 40}
	m := NewHeaderOffsetModel(g, nil, HeaderCallbacks{})
	require.Equal(t, 0.0, m.TranslationY())

	g.TopInset = 3
	m.Clamp()
	assert.Equal(t, 3.0, m.TranslationY())
}

func TestHeaderCallbacks(t *testing.T) {
	g := &Geometry{TargetHeight: 2000, TopInset: 100, HeaderHeight: 150, ContentOffset: 300}
	var (
		moved       float64
		invalidated int
		lick        LickView
		background  float64
	)
	m := NewHeaderOffsetModel(g, nil, HeaderCallbacks{
		Moved:               func(y float64) { moved = y },
		ContentInvalidated:  func() { invalidated++ },
		LickChanged:         func(l LickView) { lick = l },
		BackgroundFactorSet: func(f float64) { background = f },
	})

	m.SetHeaderPosition(175)

	require.Equal(t, 1, invalidated)
	assert.Equal(t, 175.0, moved)
	assert.Equal(t, LickView{Top: 75, Height: 100, Factor: 0.25}, lick)
	assert.Equal(t, 0.25, background)
	assert.Equal(t, 25, lick.Rows())

	m.SetCallbacks(HeaderCallbacks{})
	m.SetHeaderPosition(100)
	assert.Equal(t, 175.0, moved)
	assert.Equal(t, 100, m.Lick().Rows())
}
