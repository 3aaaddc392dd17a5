package sheet

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// DefaultFPS is the frame rate animators assume when none is given.
const DefaultFPS = 60

// Animator moves a value toward a target one frame at a time using a
// critically damped spring. The host drives it by calling Tick once per
// frame; every tick reports the new value through OnUpdate and the final
// tick also calls OnFinish.
type Animator struct {
	OnUpdate func(value float64)
	OnFinish func()

	spring    harmonica.Spring
	precision float64
	maxFrames int

	value    float64
	velocity float64
	target   float64
	frames   int
	running  bool
}

// NewAnimator returns an animator ticking at fps that settles once the value
// is within precision of its target.
func NewAnimator(fps int, precision float64) *Animator {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Animator{
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 10.0, 1.0),
		precision: precision,
		maxFrames: fps * 2,
	}
}

// Start animates from -> to. An in-flight animation is cancelled first.
// When from and to already match, the animation completes synchronously.
func (a *Animator) Start(from, to float64) {
	a.Cancel()
	a.value = from
	a.velocity = 0
	a.target = to
	a.frames = 0

	if math.Abs(to-from) < a.precision {
		a.value = to
		a.emit(true)
		return
	}
	a.running = true
}

// Cancel stops the animation without calling OnFinish. Cancelling an idle
// animator does nothing.
func (a *Animator) Cancel() {
	a.running = false
}

// Running reports whether the animator still needs frames.
func (a *Animator) Running() bool {
	return a.running
}

// Value returns the last emitted value.
func (a *Animator) Value() float64 {
	return a.value
}

// Tick advances one frame. It returns whether more frames are needed; a
// callback may start a new animation, in which case the answer is true.
func (a *Animator) Tick() bool {
	if !a.running {
		return false
	}

	a.value, a.velocity = a.spring.Update(a.value, a.velocity, a.target)
	a.frames++

	done := a.frames >= a.maxFrames ||
		(math.Abs(a.target-a.value) < a.precision && math.Abs(a.velocity) < a.precision)
	if done {
		a.value = a.target
		a.running = false
	}
	a.emit(done)
	return a.running
}

func (a *Animator) emit(done bool) {
	if a.OnUpdate != nil {
		a.OnUpdate(a.value)
	}
	if done && a.OnFinish != nil {
		a.OnFinish()
	}
}
