package session

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
)

// HandleInput applies one raw event under the rules of the session mode.
// Events that do not apply to the mode, and any event after the session has
// finished, are ignored.
func (s *Session) HandleInput(ev Event) {
	if s.finished {
		return
	}
	switch s.mode {
	case model.ModeReaction:
		if ev.Kind == KeyEvent {
			s.pressReaction(ev)
		}
	case model.ModeWord:
		switch ev.Kind {
		case ChangeEvent:
			s.input = ev.Value
		case KeyEvent:
			if ev.Key == KeyEnter && !ev.modified() {
				s.submitWord()
			}
		}
	case model.ModeParagraph:
		if ev.Kind == ChangeEvent {
			s.changeParagraph(ev.Value)
		}
	}
}

func (s *Session) pressReaction(ev Event) {
	if s.correct >= s.reactionTarget {
		return
	}
	if strings.EqualFold(ev.Key, s.practiceText) {
		latency := s.now().Sub(s.presentedAt).Milliseconds()
		if ev.Latency > 0 {
			latency = ev.Latency.Milliseconds()
		}
		if latency < 0 {
			latency = 0
		}
		s.reactionSamples = append(s.reactionSamples, latency)
		s.correct++
		s.latency.add(latency)
		if s.correct < s.reactionTarget {
			s.next()
			return
		}
		s.finish(TriggerTarget)
		return
	}
	if ev.printable() {
		s.errors++
	}
}

func (s *Session) submitWord() {
	n := utf8.RuneCountInString(s.practiceText)
	if strings.TrimSpace(s.input) == s.practiceText {
		s.correct += n
	} else {
		s.errors += n
		s.missed++
	}
	s.input = ""
	s.next()
}

// changeParagraph rescores the whole buffer against the whole paragraph.
func (s *Session) changeParagraph(value string) {
	s.input = value
	s.correct = stats.MatchCount(value, s.practiceText)
	s.errors = utf8.RuneCountInString(value) - s.correct
	if value == s.practiceText {
		s.finish(TriggerCompleted)
	}
}
