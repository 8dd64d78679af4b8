// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
)

const (
	rowMode = iota
	rowDifficulty
)

// tickMsg is one second of countdown for the session with the same
// generation. Ticks from an earlier session are dropped.
type tickMsg struct {
	gen int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	gen    *generator.Generator
	log    zerolog.Logger

	state   model.GameState
	modeIdx int
	diffIdx int
	row     int

	sess       *session.Session
	generation int
	input      textinput.Model
	results    table.Model
	last       *model.GameStats

	width  int
	height int
}

// NewModel constructs a typing TUI model starting on the setup screen with
// the configured mode and difficulty preselected.
func NewModel(cfg model.Config, gen *generator.Generator, logger zerolog.Logger) *Model {
	if gen == nil {
		gen = generator.New()
	}
	m := &Model{
		config: cfg,
		gen:    gen,
		log:    logger,
		state:  model.StateSetup,
		input:  newPracticeInput(),
	}
	m.modeIdx = indexOf(model.Modes, cfg.Mode)
	m.diffIdx = indexOf(model.Difficulties, cfg.Difficulty)
	return m
}

func newPracticeInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}

// LastStats returns the most recent finished session, if any.
func (m *Model) LastStats() (model.GameStats, bool) {
	if m.last == nil {
		return model.GameStats{}, false
	}
	return *m.last, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.contentWidth() - 2
		return m, nil
	case tickMsg:
		return m.updateTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.abandon()
			return m, tea.Quit
		}
		switch m.state {
		case model.StateSetup:
			return m.updateSetup(msg)
		case model.StatePlaying:
			return m.updatePlaying(msg)
		case model.StateFinished:
			return m.updateFinished(msg)
		}
	}
	if m.state == model.StatePlaying && m.usesInput() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m.moveOption(-1)
	case "right", "l":
		m.moveOption(1)
	case "up", "k", "down", "j", "tab", "shift+tab":
		m.row = 1 - m.row
	case "enter":
		return m, m.start()
	}
	return m, nil
}

func (m *Model) moveOption(delta int) {
	if m.row == rowMode {
		m.modeIdx = wrapIndex(m.modeIdx+delta, len(model.Modes))
		return
	}
	m.diffIdx = wrapIndex(m.diffIdx+delta, len(model.Difficulties))
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

func (m *Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+e":
		m.sess.ForceFinish()
		m.finish()
		return m, nil
	case "esc":
		m.abandon()
		m.state = model.StateSetup
		return m, nil
	}

	if !m.usesInput() {
		m.sess.HandleInput(keyEvent(msg))
		if m.sess.Finished() {
			m.finish()
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		m.sess.HandleInput(keyEvent(msg))
		m.input.SetValue(m.sess.Input())
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.sess.HandleInput(session.Change(value))
		if m.sess.Finished() {
			m.finish()
			return m, nil
		}
	}
	return m, cmd
}

func (m *Model) updateFinished(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		return m, m.start()
	case "esc", "s":
		m.state = model.StateSetup
	}
	return m, nil
}

func (m *Model) updateTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.generation || m.state != model.StatePlaying {
		return m, nil
	}
	if m.sess.Tick() {
		m.finish()
		return m, nil
	}
	return m, tick(m.generation)
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// start begins a new session with the selected mode and difficulty.
func (m *Model) start() tea.Cmd {
	m.generation++
	mode := model.Modes[m.modeIdx]
	difficulty := model.Difficulties[m.diffIdx]
	m.sess = session.Start(mode, difficulty, m.gen,
		session.WithDuration(m.config.DurationSec),
		session.WithReactionTarget(m.config.ReactionTarget),
		session.WithParagraphWords(m.config.ParagraphWords),
	)
	m.state = model.StatePlaying
	m.input.Reset()
	if m.usesInput() {
		m.input.CharLimit = 0
		if mode == model.ModeParagraph {
			m.input.CharLimit = len([]rune(m.sess.PracticeText()))
		}
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.log.Info().
		Str("mode", string(mode)).
		Str("difficulty", string(difficulty)).
		Int("generation", m.generation).
		Msg("session started")

	if !mode.Timed() {
		return nil
	}
	return tea.Batch(tick(m.generation), textinput.Blink)
}

// finish records the report of a session that has ended.
func (m *Model) finish() {
	st := m.sess.Finalize()
	m.last = &st
	m.generation++
	m.state = model.StateFinished
	m.input.Blur()
	m.results = buildResultsTable(st)
	m.log.Info().
		Str("mode", string(st.Mode)).
		Str("difficulty", string(st.Difficulty)).
		Str("trigger", string(m.sess.FinishedBy())).
		Int("correct", st.Correct).
		Int("errors", st.Errors).
		Int("wpm", st.WPM).
		Float64("accuracy", st.Accuracy).
		Msg("session finished")
}

// abandon drops a running session without reporting it.
func (m *Model) abandon() {
	if m.state != model.StatePlaying || m.sess == nil {
		return
	}
	m.generation++
	m.input.Blur()
	m.log.Debug().Str("mode", string(m.sess.Mode())).Msg("session abandoned")
}

func (m *Model) usesInput() bool {
	return m.sess != nil && m.sess.Mode() != model.ModeReaction
}

func buildResultsTable(st model.GameStats) table.Model {
	rows := stats.SummaryRows(st)
	tableRows := make([]table.Row, 0, len(rows))
	labelWidth, valueWidth := len("Stat"), len("Value")
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{r.Label, r.Value})
		labelWidth = max(labelWidth, len(r.Label))
		valueWidth = max(valueWidth, len(r.Value))
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Stat", Width: labelWidth + 2},
			{Title: "Value", Width: valueWidth + 2},
		}),
		table.WithRows(tableRows),
		table.WithHeight(len(tableRows)+1),
	)
	t.SetStyles(resultsTableStyles())
	t.Blur()
	return t
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * 0.70)
	if w < 20 {
		w = 20
	}
	return w
}

// statLine is the live status shown above the practice text.
func (m *Model) statLine() string {
	s := m.sess
	var timeText, correctText string
	if s.Mode().Timed() {
		timeText = fmt.Sprintf("Time: %ds", s.Remaining())
	} else {
		timeText = fmt.Sprintf("Time: %.1fs", s.DisplayTime())
	}
	switch s.Mode() {
	case model.ModeReaction:
		correctText = fmt.Sprintf("Correct: %d/%d", s.Correct(), s.ReactionTarget())
	case model.ModeParagraph:
		correctText = fmt.Sprintf("Chars: %d/%d", s.Correct(), s.Snapshot().TotalChars)
	default:
		correctText = fmt.Sprintf("Correct: %d", s.Correct())
	}
	return fmt.Sprintf("%s  %s  Errors: %d  Accuracy: %.0f%%", timeText, correctText, s.Errors(), s.LiveAccuracy())
}
