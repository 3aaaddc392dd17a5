package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimatorConverges(t *testing.T) {
	a := NewAnimator(60, 0.01)
	var updates, finishes int
	a.OnUpdate = func(float64) { updates++ }
	a.OnFinish = func() { finishes++ }

	a.Start(0, 1)
	frames := 0
	for a.Tick() {
		frames++
	}

	assert.Equal(t, 1.0, a.Value())
	assert.Equal(t, 1, finishes)
	assert.Greater(t, updates, 1)
	assert.LessOrEqual(t, frames, 120)
	assert.False(t, a.Tick(), "a finished animator needs no frames")
}

func TestAnimatorCancelIsIdempotent(t *testing.T) {
	a := NewAnimator(60, 0.01)
	finished := false
	a.OnFinish = func() { finished = true }

	a.Cancel()
	a.Start(0, 1)
	a.Tick()
	a.Cancel()
	a.Cancel()

	assert.False(t, a.Running())
	assert.False(t, a.Tick())
	assert.False(t, finished)
}

func TestAnimatorRestartReplacesTarget(t *testing.T) {
	a := NewAnimator(60, 0.5)
	var finishes int
	a.OnFinish = func() { finishes++ }

	a.Start(0, 100)
	a.Tick()
	a.Start(a.Value(), -20)
	for a.Tick() {
	}

	assert.Equal(t, -20.0, a.Value())
	assert.Equal(t, 1, finishes)
}

func TestAnimatorWithoutDistanceFinishesImmediately(t *testing.T) {
	a := NewAnimator(0, 0.5)
	var got []float64
	finished := false
	a.OnUpdate = func(v float64) { got = append(got, v) }
	a.OnFinish = func() { finished = true }

	a.Start(3, 3.2)

	assert.False(t, a.Running())
	assert.True(t, finished)
	assert.Equal(t, []float64{3.2}, got)
}
