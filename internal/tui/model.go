// Package tui is the terminal front end for the calculator.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"wordcalc/internal/calculator"
	"wordcalc/internal/observability"
	"wordcalc/internal/speech"
)

const defaultWidth = 48

// speechStartedMsg is sent when the synthesizer begins an utterance.
type speechStartedMsg struct{}

// speechDoneMsg is sent when an utterance ends, normally or by cancellation.
type speechDoneMsg struct {
	err error
}

// Model is the bubbletea model wrapping a single calculator.
type Model struct {
	calc    *calculator.Calculator
	speaker *speech.Speaker
	events  chan tea.Msg
	keys    KeyMap

	problem  *calculator.Error
	speaking bool

	width  int
	height int
}

// New creates a model. A nil speaker disables the speak key. New installs
// the speaker's OnStart and OnEnd hooks.
func New(calc *calculator.Calculator, speaker *speech.Speaker) Model {
	m := Model{
		calc:    calc,
		speaker: speaker,
		keys:    DefaultKeyMap(),
		width:   defaultWidth,
	}

	if speaker != nil {
		events := make(chan tea.Msg, 4)
		speaker.OnStart = func(string) { events <- speechStartedMsg{} }
		speaker.OnEnd = func(err error) { events <- speechDoneMsg{err: err} }
		m.events = events
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 80)
		m.height = msg.Height
		return m, nil

	case speechStartedMsg:
		m.speaking = m.speaker.Speaking()
		return m, m.listenSpeech()

	case speechDoneMsg:
		// A late end from a cancelled utterance must not hide a newer one.
		m.speaking = m.speaker.Speaking()
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			observability.Logger.Warn("speech failed", zap.Error(msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.speaker != nil {
			m.speaker.Cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Speak):
		return m.toggleSpeech()

	case key.Matches(msg, m.keys.Backspace):
		m.problem = nil
		m.calc.Backspace()

	case key.Matches(msg, m.keys.Clear):
		m.problem = nil
		m.calc.Clear()

	case key.Matches(msg, m.keys.Evaluate):
		m.press('=')

	case key.Matches(msg, m.keys.Digit, m.keys.Bracket, m.keys.Operator):
		m.press([]rune(msg.String())[0])
	}

	return m, nil
}

// press feeds one key to the calculator and keeps or clears the error box.
func (m *Model) press(r rune) {
	m.problem = nil

	ev, err := m.calc.Press(r)
	if err != nil {
		var ce *calculator.Error
		if errors.As(err, &ce) {
			m.problem = ce
		}
		observability.Logger.Debug("key rejected",
			zap.String("key", string(r)),
			zap.Error(err),
		)
		return
	}

	if ev != nil {
		observability.Logger.Info("calculation completed",
			zap.String("expression", ev.Expr),
			zap.Bool("recorded", ev.Recorded),
		)
	}
}

// toggleSpeech starts reading the words aloud, or stops the running
// utterance.
func (m Model) toggleSpeech() (tea.Model, tea.Cmd) {
	if m.speaker == nil {
		return m, nil
	}

	if m.speaker.Speaking() {
		m.speaker.Cancel()
		m.speaking = false
		return m, nil
	}

	view := m.calc.View()
	if !view.ShowWords || view.Words == "" {
		return m, nil
	}

	// Reserve the speaker now so a second press cancels this utterance even
	// before the command runs.
	play, err := m.speaker.Start(context.Background(), view.Words)
	if err != nil {
		observability.Logger.Warn("speech not started", zap.Error(err))
		return m, nil
	}

	m.speaking = true
	return m, tea.Batch(
		func() tea.Msg {
			_ = play()
			return nil
		},
		m.listenSpeech(),
	)
}

// listenSpeech waits for the next start or end signal from the speaker.
func (m Model) listenSpeech() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.calc.View()
	inner := max(m.width-4, 16)

	var sections []string

	sections = append(sections, titleStyle.Render("Number to Words Calculator"))
	sections = append(sections, displayStyle.Width(inner).Render(view.Display))

	if view.ShowWords && view.Words != "" {
		words := wordsLabelStyle.Render("Result in words:") + "\n" +
			wordsStyle.Width(inner).Render(view.Words)
		sections = append(sections, words)
	}

	problem := m.problem
	if problem == nil {
		problem = view.Problem
	}
	if problem != nil {
		sections = append(sections, renderProblem(problem, inner))
	}

	if m.speaking {
		sections = append(sections, speakingStyle.Render("🔊 Speaking... (s to stop)"))
	}

	if steps := renderSteps(view.Steps, m.width); steps != "" {
		sections = append(sections, steps)
	}

	sections = append(sections, helpStyle.Width(inner).Render(m.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderProblem(e *calculator.Error, width int) string {
	body := "Error: " + e.Message
	if e.Suggestion != "" {
		body += "\n" + suggestionStyle.Render("💡 "+e.Suggestion)
	}
	return errorStyle.Width(width).Render(body)
}

func (m Model) helpLine() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
