package tui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
)

const chartHeight = 6

// View implements tea.Model.
func (m *Model) View() string {
	var content, help string
	switch m.state {
	case model.StatePlaying:
		content = m.renderPlaying()
		help = "ctrl+e: end game  esc: menu  ctrl+c: quit"
	case model.StateFinished:
		content = m.renderFinished()
		help = "enter: play again  esc: menu  q: quit"
	default:
		content = m.renderSetup()
		help = "left/right: choose  tab: switch row  enter: start  q: quit"
	}
	footer := footerStyle.Render(help)
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) renderSetup() string {
	modes := make([]string, 0, len(model.Modes))
	for i, mode := range model.Modes {
		modes = append(modes, optionStyle(i == m.modeIdx, m.row == rowMode).Render(mode.Label()))
	}
	difficulties := make([]string, 0, len(model.Difficulties))
	for i, d := range model.Difficulties {
		difficulties = append(difficulties, optionStyle(i == m.diffIdx, m.row == rowDifficulty).Render(d.Label()))
	}
	alphabet := generator.Alphabet(model.Difficulties[m.diffIdx])
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("keydrill"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render("Mode"), lipgloss.JoinHorizontal(lipgloss.Top, modes...)),
		lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render("Difficulty"), lipgloss.JoinHorizontal(lipgloss.Top, difficulties...)),
		"",
		footerStyle.Render(truncate("Characters: "+alphabet, m.contentWidth())),
	)
}

func optionStyle(selected, activeRow bool) lipgloss.Style {
	if !selected {
		return inactiveOptionStyle
	}
	if !activeRow {
		return activeOptionStyle.BorderForeground(lipgloss.Color("#6E6E6E"))
	}
	return activeOptionStyle
}

func (m *Model) renderPlaying() string {
	s := m.sess
	parts := []string{footerStyle.Render(m.statLine()), ""}
	switch s.Mode() {
	case model.ModeReaction:
		parts = append(parts, targetStyle.Render(s.PracticeText()), "", footerStyle.Render("Press the key shown"))
	case model.ModeWord:
		parts = append(parts, currentWordStyle.Bold(true).Render(s.PracticeText()), "", m.input.View())
	case model.ModeParagraph:
		width := m.contentWidth()
		glyphs := paragraphGlyphs([]rune(s.PracticeText()), []rune(s.Input()))
		text := lipgloss.NewStyle().Width(width).Render(wrapGlyphs(glyphs, width))
		parts = append(parts, text, "", m.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderFinished() string {
	if m.last == nil {
		return ""
	}
	parts := []string{titleStyle.Render("Game Over!"), "", m.results.View()}
	if len(m.last.ReactionTimes) > 0 {
		var buf bytes.Buffer
		width := stats.ChartWidthFor(m.contentWidth())
		if err := stats.ReactionChart(&buf, m.last.ReactionTimes, width, chartHeight, false); err != nil {
			m.log.Error().Err(err).Msg("failed to render reaction chart")
		} else {
			parts = append(parts, "", strings.TrimRight(buf.String(), "\n"))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
