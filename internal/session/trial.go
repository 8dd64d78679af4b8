package session

import (
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/model"
)

// begin produces the first unit. Paragraphs are generated once here and
// never replaced.
func (s *Session) begin() {
	if s.mode == model.ModeParagraph {
		p := s.gen.Paragraph(s.difficulty, s.paragraphWords)
		s.practiceText = p
		s.totalChars = utf8.RuneCountInString(p)
		s.totalWords = wordCount(p)
		return
	}
	s.next()
}

// next replaces the practice unit in reaction and word modes.
func (s *Session) next() {
	switch s.mode {
	case model.ModeReaction:
		s.practiceText = string(s.gen.Char(s.difficulty))
		s.presentedAt = s.now()
	case model.ModeWord:
		s.practiceText = s.gen.Word(s.difficulty)
		s.totalWords++
	}
}
