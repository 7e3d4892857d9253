package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type timerKeyMap struct {
	Toggle   key.Binding
	Skip     key.Binding
	Stop     key.Binding
	Reset    key.Binding
	ResetAll key.Binding
	Reverse  key.Binding
	CycleUp  key.Binding
	CycleDn  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Stop:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ResetAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset cycle")),
		Reverse:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "count up/down")),
		CycleUp:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "cycle length")),
		CycleDn:  key.NewBinding(key.WithKeys("-")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Stop, k.Help, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Skip, k.Stop},
		{k.Reset, k.ResetAll, k.Reverse},
		{k.CycleUp, k.Help, k.Quit},
	}
}

// timerModel is the full-screen timer. All state changes go through the
// controller; the model only mirrors what the controller reports.
type timerModel struct {
	ctl      timerControl
	pump     *eventPump
	settings domain.TimerSettings
	keys     timerKeyMap
	help     help.Model

	state  domain.TimerState
	notice string
	err    error
	// armedResetAll is set after one R press; a second press confirms.
	armedResetAll bool
	width         int
}

func newTimerModel(ctl timerControl, pump *eventPump, settings domain.TimerSettings) *timerModel {
	return &timerModel{
		ctl:      ctl,
		pump:     pump,
		settings: settings,
		keys:     newTimerKeyMap(),
		help:     help.New(),
		state:    ctl.State(),
	}
}

func (m *timerModel) Init() tea.Cmd {
	return m.pump.listen()
}

func (m *timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case timerEventMsg:
		m.applyEvent(msg.event)
		return m, m.pump.listen()

	case timerFailMsg:
		m.err = msg.err
		return m, m.pump.listen()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *timerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	armed := m.armedResetAll
	m.armedResetAll = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		if !m.state.Idle() {
			m.state = stopDraining(m.ctl, m.pump)
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.notice = ""
		m.state = m.ctl.Toggle()
	case key.Matches(msg, m.keys.Skip):
		m.state = m.ctl.Skip()
	case key.Matches(msg, m.keys.Stop):
		m.state = m.ctl.Stop()
	case key.Matches(msg, m.keys.Reset):
		m.state = m.ctl.Reset()
	case key.Matches(msg, m.keys.ResetAll):
		if !armed {
			m.armedResetAll = true
			m.notice = "Press R again to reset the whole cycle."
			return m, nil
		}
		m.notice = "Cycle reset."
		m.state = m.ctl.ResetAll()
	case key.Matches(msg, m.keys.Reverse):
		if !m.state.Idle() {
			m.notice = "Stop or reset the timer before switching direction."
			return m, nil
		}
		m.state = m.ctl.ToggleReverse()
	case key.Matches(msg, m.keys.CycleUp):
		m.state = m.ctl.SetCycleLength(m.state.CycleLength + 1)
	case key.Matches(msg, m.keys.CycleDn):
		m.state = m.ctl.SetCycleLength(m.state.CycleLength - 1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *timerModel) applyEvent(ev timer.Event) {
	switch ev := ev.(type) {
	case timer.TickEvent:
		m.state.Mode = ev.Mode
		m.state.Seconds = ev.Seconds
		m.state.Running = ev.Status == domain.StatusRunning
		m.state.Paused = ev.Status == domain.StatusPaused
	case timer.ModeChangedEvent:
		m.state.Mode = ev.To
		m.state.SessionsCompleted = ev.SessionsCompleted
		if ev.Skipped {
			m.notice = fmt.Sprintf("Skipped to %s.", ev.To.Label())
		}
		if ev.AutoStart {
			m.notice = fmt.Sprintf("%s starts in a moment.", ev.To.Label())
		}
	case timer.SessionCompleteEvent:
		m.notice = formatter.FormatCompletion(ev.Mode, m.nextMode(ev.Mode), ev.ActualSeconds)
	case timer.RecordFinalizedEvent:
		// A successful save clears an earlier failure.
		m.err = nil
	}
}

// nextMode mirrors the engine's transition rule for the completion notice,
// which arrives before the mode change.
func (m *timerModel) nextMode(finished domain.SessionMode) domain.SessionMode {
	if finished != domain.ModeWork {
		return domain.ModeWork
	}
	if (m.state.SessionsCompleted+1)%max(m.state.CycleLength, 1) == 0 {
		return domain.ModeLongBreak
	}
	return domain.ModeShortBreak
}

func (m *timerModel) View() string {
	st := m.state
	total := m.settings.DurationFor(st.Mode)

	clock := formatter.ModeStyle(st.Mode).Bold(true).Padding(1, 4).Render(formatter.FormatClock(st.Seconds))

	direction := "counting down"
	if st.Reversed {
		direction = "counting up"
	}

	var b strings.Builder
	b.WriteString(formatter.ModeBadge(st.Mode))
	b.WriteString("\n")
	b.WriteString(clock)
	b.WriteString("\n")
	b.WriteString(formatter.RenderProgress(formatter.TimerProgress(st, total), 30, formatter.ModeStyle(st.Mode).Render))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		formatter.StatusPill(st.Status()),
		formatter.CycleDots(st),
		formatter.Dim(fmt.Sprintf("%d done · cycle of %d · %s", st.SessionsCompleted, st.CycleLength, direction)),
	))

	if m.notice != "" {
		b.WriteString("\n" + m.notice + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("✖ "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return formatter.RenderBox("cadence", b.String())
}
