package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	trainapp "github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// gateResultMsg carries the outcome of one check-in back into the model.
type gateResultMsg struct {
	decision engine.GateDecision
	err      error
}

// liveSet is one finished set. checked is false when the cadence skipped
// the pain check-in for it.
type liveSet struct {
	number   int
	checked  bool
	decision engine.GateDecision
}

// liveModel walks through the sets of one exercise. Sets the cadence selects
// ask for pain; the others only need enter once done. A stop decision ends
// the session early.
type liveModel struct {
	checkIn    trainapp.PainCheckInUseCase
	exerciseID string
	totalSets  int
	cadence    engine.PainCadence

	set       int
	input     textinput.Model
	completed []liveSet
	decisions []engine.GateDecision
	pending   bool
	inputErr  string
	err       error
	done      bool
}

func newLiveModel(checkIn trainapp.PainCheckInUseCase, exerciseID string, sets int, cadence engine.PainCadence) liveModel {
	ti := textinput.New()
	ti.Placeholder = "0-10"
	ti.CharLimit = 2
	ti.Width = 6
	ti.Focus()
	return liveModel{
		checkIn:    checkIn,
		exerciseID: exerciseID,
		totalSets:  sets,
		cadence:    cadence,
		set:        1,
		input:      ti,
	}
}

func (m liveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.pending {
				return m, nil
			}
			if !m.prompting() {
				m.input.SetValue("")
				return m.finishSet(liveSet{number: m.set})
			}
			if err := validatePainInput(m.input.Value()); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			level, _ := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			m.inputErr = ""
			m.pending = true
			return m, m.submit(level)
		}

	case gateResultMsg:
		m.pending = false
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, tea.Quit
		}
		m.decisions = append(m.decisions, msg.decision)
		m.input.SetValue("")
		return m.finishSet(liveSet{number: m.set, checked: true, decision: msg.decision})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// finishSet records a finished set and moves to the next one, quitting after
// the last set or on a stop.
func (m liveModel) finishSet(done liveSet) (tea.Model, tea.Cmd) {
	m.completed = append(m.completed, done)
	if (done.checked && done.decision.State == domain.GateStop) || m.set >= m.totalSets {
		m.done = true
		return m, tea.Quit
	}
	m.set++
	return m, nil
}

// prompting reports whether the current set asks for a pain check-in.
func (m liveModel) prompting() bool {
	return engine.ShouldPromptPainCheck(m.set, m.cadence)
}

func (m liveModel) submit(level int) tea.Cmd {
	req := trainapp.NewCheckInRequest(m.exerciseID)
	req.SetNumber = m.set
	req.PainLevel = level
	return func() tea.Msg {
		res, err := m.checkIn.CheckIn(context.Background(), req)
		if err != nil {
			return gateResultMsg{err: err}
		}
		return gateResultMsg{decision: res.Decision}
	}
}

// stopped reports whether the pain gate ended the session, including on the
// final set.
func (m liveModel) stopped() bool {
	n := len(m.completed)
	return n > 0 && m.completed[n-1].checked && m.completed[n-1].decision.State == domain.GateStop
}

func (m liveModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Live session: %s", m.exerciseID)) + "\n\n")
	for _, s := range m.completed {
		if !s.checked {
			b.WriteString(fmt.Sprintf("Set %d  %s\n", s.number, formatter.Dim("done, no check-in")))
			continue
		}
		b.WriteString(fmt.Sprintf("Set %d  %s  pain %s\n", s.number, formatter.GateIndicator(s.decision.State), formatter.PainLevel(s.decision.Level)))
	}
	if m.done {
		return b.String() + "\n" + m.summary()
	}

	if m.prompting() {
		b.WriteString(fmt.Sprintf("\nPain after set %d of %d: %s\n", m.set, m.totalSets, m.input.View()))
	} else {
		b.WriteString(fmt.Sprintf("\nSet %d of %d: press enter when done\n", m.set, m.totalSets))
	}
	if m.inputErr != "" {
		b.WriteString(formatter.StyleRed.Render(m.inputErr) + "\n")
	}
	if n := len(m.decisions); n > 0 {
		b.WriteString(formatter.Dim(m.decisions[n-1].Message) + "\n")
	}
	b.WriteString(formatter.Dim("enter submit · esc quit") + "\n")
	return b.String()
}

func (m liveModel) summary() string {
	switch {
	case m.err != nil:
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	case m.stopped() && m.set < m.totalSets:
		return formatter.StyleRed.Render(fmt.Sprintf("Stopped after set %d. Skip the remaining sets.", m.set)) + "\n"
	case m.stopped():
		return formatter.StyleRed.Render(fmt.Sprintf("Stopped after set %d. Stop the exercise for today.", m.set)) + "\n"
	case len(m.completed) == m.totalSets:
		return formatter.StyleGreen.Render(fmt.Sprintf("All %d sets completed.", m.totalSets)) + "\n"
	default:
		return formatter.Dim(fmt.Sprintf("Session ended after %d set(s).", len(m.completed))) + "\n"
	}
}
