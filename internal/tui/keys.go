package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/session"
)

// keyEvent converts a Bubble Tea key press into a session key event.
func keyEvent(msg tea.KeyMsg) session.Event {
	ev := session.Event{Kind: session.KeyEvent, Alt: msg.Alt}
	switch msg.Type {
	case tea.KeyRunes:
		ev.Key = string(msg.Runes)
	case tea.KeySpace:
		ev.Key = " "
	case tea.KeyEnter:
		ev.Key = session.KeyEnter
	case tea.KeyBackspace:
		ev.Key = session.KeyBackspace
	case tea.KeyTab:
		ev.Key = session.KeyTab
	case tea.KeyEsc:
		ev.Key = session.KeyEscape
	default:
		name := strings.TrimPrefix(msg.String(), "alt+")
		if rest, ok := strings.CutPrefix(name, "ctrl+"); ok {
			ev.Ctrl = true
			name = rest
		}
		ev.Key = name
	}
	return ev
}
