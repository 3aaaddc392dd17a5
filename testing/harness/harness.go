// Package harness drives Bubble Tea models in tests: keys, mouse, frame
// ticks and resizes go in, plain-text frames come out.
package harness

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Animated is implemented by models that need frame ticks.
type Animated interface {
	Animating() bool
}

// Harness wraps a tea.Model for testing
type Harness struct {
	t      *testing.T
	model  tea.Model
	width  int
	height int
}

// New creates a new Harness for testing the given model
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	h := &Harness{
		t:      t,
		model:  model,
		width:  width,
		height: height,
	}
	h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
	return h
}

// SendMsg sends a tea.Msg to the model and updates it
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"ctrl+c":    tea.KeyCtrlC,
	" ":         tea.KeySpace,
}

// SendKey sends a key press. Names like "enter" or "shift+tab" are sent as
// special keys, anything else as runes.
func (h *Harness) SendKey(key string) tea.Cmd {
	if t, ok := specialKeys[key]; ok {
		return h.SendSpecialKey(t)
	}
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a special key (Enter, Tab, etc.)
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// Press sends a left button press at cell (x, y).
func (h *Harness) Press(x, y int) tea.Cmd {
	return h.SendMsg(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

// Motion sends a drag with the left button held.
func (h *Harness) Motion(x, y int) tea.Cmd {
	return h.SendMsg(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
}

// Release lifts the mouse button at cell (x, y).
func (h *Harness) Release(x, y int) tea.Cmd {
	return h.SendMsg(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
}

// Click presses and releases at cell (x, y).
func (h *Harness) Click(x, y int) {
	h.Press(x, y)
	h.Release(x, y)
}

// Drag presses at (x, fromY), moves one row at a time to toY and releases.
func (h *Harness) Drag(x, fromY, toY int) {
	h.Press(x, fromY)
	step := 1
	if toY < fromY {
		step = -1
	}
	for y := fromY; y != toY; {
		y += step
		h.Motion(x, y)
	}
	h.Release(x, toY)
}

// Wheel scrolls the mouse wheel at cell (x, y).
func (h *Harness) Wheel(x, y int, up bool) tea.Cmd {
	button := tea.MouseButtonWheelDown
	if up {
		button = tea.MouseButtonWheelUp
	}
	return h.SendMsg(tea.MouseMsg{X: x, Y: y, Button: button, Action: tea.MouseActionPress})
}

// Settle sends frame until the model stops animating. It fails the test if
// the model is still animating after limit frames.
func (h *Harness) Settle(frame tea.Msg, limit int) int {
	h.t.Helper()
	a, ok := h.model.(Animated)
	if !ok {
		h.t.Fatalf("model %T does not report animations", h.model)
	}
	n := 0
	for ; n < limit && a.Animating(); n++ {
		h.SendMsg(frame)
	}
	if a.Animating() {
		h.t.Fatalf("still animating after %d frames", limit)
	}
	return n
}

// Exec runs cmd and feeds the messages it produces back into the model.
// Batches are unpacked, nested ones included. Commands that do not return
// within timeout, like long tickers, are dropped. It returns the follow-up
// commands.
func (h *Harness) Exec(cmd tea.Cmd, timeout time.Duration) []tea.Cmd {
	var next []tea.Cmd
	for _, msg := range collect(cmd, timeout) {
		next = append(next, h.SendMsg(msg))
	}
	return next
}

func collect(cmd tea.Cmd, timeout time.Duration) []tea.Msg {
	msg := run(cmd, timeout)
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}

	results := make(chan []tea.Msg, len(batch))
	for _, c := range batch {
		go func(c tea.Cmd) {
			results <- collect(c, timeout)
		}(c)
	}
	var msgs []tea.Msg
	for range batch {
		msgs = append(msgs, <-results...)
	}
	return msgs
}

func run(cmd tea.Cmd, timeout time.Duration) tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() {
		done <- cmd()
	}()
	select {
	case msg := <-done:
		return msg
	case <-time.After(timeout):
		return nil
	}
}

// Resize simulates a terminal resize
func (h *Harness) Resize(width, height int) tea.Cmd {
	h.width = width
	h.height = height
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View returns the current rendered view
func (h *Harness) View() string {
	return h.model.View()
}

// PlainView returns the view without escape sequences.
func (h *Harness) PlainView() string {
	return ansi.Strip(h.model.View())
}

// Lines returns the plain view split into rows.
func (h *Harness) Lines() []string {
	return strings.Split(h.PlainView(), "\n")
}

// Model returns the underlying model (for type assertions)
func (h *Harness) Model() tea.Model {
	return h.model
}

// Width returns the current width
func (h *Harness) Width() int {
	return h.width
}

// Height returns the current height
func (h *Harness) Height() int {
	return h.height
}

// CommonSizes covers every layout mode.
var CommonSizes = []TerminalSize{
	{Name: "minimum", Width: 40, Height: 16},
	{Name: "compact", Width: 60, Height: 24},
	{Name: "standard", Width: 100, Height: 40},
	{Name: "full", Width: 160, Height: 50},
	{Name: "wide", Width: 200, Height: 20},
	{Name: "tall", Width: 80, Height: 60},
}

// TerminalSize represents a terminal size for testing
type TerminalSize struct {
	Name   string
	Width  int
	Height int
}

// RunWithSizes runs a test function for each terminal size
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs a test function for all common terminal sizes
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}

// KeySequence is a sequence of key presses.
type KeySequence []string

// NewKeySequence creates a key sequence; keys use SendKey names.
func NewKeySequence(keys ...string) KeySequence {
	return KeySequence(keys)
}

// Play sends all keys in the sequence to the harness
func (seq KeySequence) Play(h *Harness) {
	for _, k := range seq {
		h.SendKey(k)
	}
}
