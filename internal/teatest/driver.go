// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are drained in place. A Cmd
// that blocks, such as the timer model's event subscription, is given a short
// timeout and then dropped, so tests feed those messages through Send.
package teatest

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// MaxDrainDepth bounds chained Cmds so a self-rescheduling model cannot hang
// a test.
const MaxDrainDepth = 100

const cmdTimeout = 10 * time.Millisecond

// Driver holds a model and feeds it messages one at a time.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a drained Cmd produced tea.QuitMsg.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init())
}

// Send runs msg through Update and drains whatever it returns. Messages sent
// after quitting are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

// PlainView is the rendered view without ANSI styling.
func (d *Driver) PlainView() string {
	return ansiPattern.ReplaceAllString(d.Model.View(), "")
}

func (d *Driver) RequireViewContains(want string) {
	d.T.Helper()
	if v := d.PlainView(); !strings.Contains(v, want) {
		d.T.Fatalf("view does not contain %q:\n%s", want, v)
	}
}

// drain processes cmd and everything it leads to, breadth first.
func (d *Driver) drain(cmd tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxDrainDepth {
			d.T.Logf("teatest.Driver: drain limit (%d) reached", MaxDrainDepth)
			return
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := run(next).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(msg)
			return
		default:
			var follow tea.Cmd
			d.Model, follow = d.Model.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// run returns nil when cmd has not produced a message within cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
