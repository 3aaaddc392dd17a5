package harness

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct{}

type doneMsg struct{}

// recorder logs the events it receives and animates for a fixed number of
// frames after each key.
type recorder struct {
	events []string
	frames int
	width  int
}

func (r *recorder) Init() tea.Cmd { return nil }

func (r *recorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
	case tea.KeyMsg:
		r.events = append(r.events, "key:"+msg.String())
		r.frames = 3
	case tea.MouseMsg:
		r.events = append(r.events, fmt.Sprintf("mouse:%s:%d,%d", tea.MouseEvent(msg).String(), msg.X, msg.Y))
	case frame:
		r.frames--
	case doneMsg:
		r.events = append(r.events, "done")
	}
	return r, nil
}

func (r *recorder) View() string {
	return fmt.Sprintf("\x1b[1mwidth %d\x1b[0m\nframes %d", r.width, r.frames)
}

func (r *recorder) Animating() bool { return r.frames > 0 }

func TestHarnessKeysAndFrames(t *testing.T) {
	r := &recorder{}
	h := New(t, r, 80, 24)

	NewKeySequence("j", "enter", "shift+tab").Play(h)
	assert.Equal(t, []string{"key:j", "key:enter", "key:shift+tab"}, r.events)

	assert.Equal(t, 3, h.Settle(frame{}, 10))
	assert.Equal(t, []string{"width 80", "frames 0"}, h.Lines())

	h.Resize(100, 30)
	assert.Equal(t, 100, h.Width())
	assert.Contains(t, h.PlainView(), "width 100")
}

func TestHarnessMouse(t *testing.T) {
	r := &recorder{}
	h := New(t, r, 80, 24)

	h.Drag(5, 10, 8)
	h.Wheel(1, 2, true)
	require.Len(t, r.events, 5)
	assert.Equal(t, "mouse:left press:5,10", r.events[0])
	assert.Equal(t, "mouse:left motion:5,9", r.events[1])
	assert.Equal(t, "mouse:release:5,8", r.events[3])
	assert.Equal(t, "mouse:wheel up:1,2", r.events[4])
}

func TestHarnessExec(t *testing.T) {
	r := &recorder{}
	h := New(t, r, 80, 24)

	slow := func() tea.Msg {
		time.Sleep(time.Second)
		return doneMsg{}
	}
	fast := func() tea.Msg { return doneMsg{} }

	h.Exec(tea.Batch(fast, slow, fast), 50*time.Millisecond)
	assert.Equal(t, []string{"done", "done"}, r.events)

	r.events = nil
	h.Exec(tea.Batch(fast, tea.Batch(fast, slow)), 50*time.Millisecond)
	assert.Equal(t, []string{"done", "done"}, r.events)

	r.events = nil
	h.Exec(fast, 50*time.Millisecond)
	assert.Equal(t, []string{"done"}, r.events)
	assert.Nil(t, h.Exec(nil, time.Millisecond))
}
