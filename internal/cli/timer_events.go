package cli

import (
	"sync"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// timerControl is the part of *timer.Controller the front-ends drive.
type timerControl interface {
	Start() domain.TimerState
	Toggle() domain.TimerState
	Skip() domain.TimerState
	Stop() domain.TimerState
	Reset() domain.TimerState
	ResetAll() domain.TimerState
	ToggleReverse() domain.TimerState
	SetCycleLength(n int) domain.TimerState
	State() domain.TimerState
}

var _ timerControl = (*timer.Controller)(nil)

// timerEventMsg carries one engine event into the UI.
type timerEventMsg struct {
	event timer.Event
}

// timerFailMsg carries a persist or notify failure into the UI.
type timerFailMsg struct {
	err error
}

// eventPump moves controller callbacks onto a channel the UI reads. Tick
// events are dropped when the UI falls behind; every other message waits
// for room until done is closed.
type eventPump struct {
	ch   chan tea.Msg
	done <-chan struct{}
}

func newEventPump(done <-chan struct{}) *eventPump {
	return &eventPump{ch: make(chan tea.Msg, 64), done: done}
}

func (p *eventPump) event(ev timer.Event) {
	msg := timerEventMsg{event: ev}
	if _, ok := ev.(timer.TickEvent); ok {
		select {
		case p.ch <- msg:
		default:
		}
		return
	}
	p.push(msg)
}

func (p *eventPump) fail(err error) {
	p.push(timerFailMsg{err: err})
}

func (p *eventPump) push(msg tea.Msg) {
	select {
	case p.ch <- msg:
	case <-p.done:
	}
}

// listen returns a Cmd that delivers the next pumped message.
func (p *eventPump) listen() tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg := <-p.ch:
			return msg
		case <-p.done:
			return nil
		}
	}
}

// stopDraining issues Stop while discarding pumped messages, for front-ends
// that have stopped reading the pump. The controller may otherwise block
// pushing the final record's events and never answer Stop.
func stopDraining(ctl timerControl, pump *eventPump) domain.TimerState {
	if pump == nil {
		return ctl.Stop()
	}
	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-pump.ch:
			case <-quit:
				return
			}
		}
	}()
	st := ctl.Stop()
	close(quit)
	wg.Wait()
	return st
}
