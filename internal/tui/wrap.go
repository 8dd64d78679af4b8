package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// glyph is one rendered rune of the practice paragraph.
type glyph struct {
	s     string
	width int
	space bool
}

// paragraphGlyphs styles each target rune against what has been typed so
// far. A space typed over with something else shows as a red dot.
func paragraphGlyphs(target, typed []rune) []glyph {
	word := currentWord(target, len(typed))
	out := make([]glyph, 0, len(target))
	for i, want := range target {
		shown := want
		style := pendingStyle
		switch {
		case i < len(typed) && want == ' ' && typed[i] != ' ':
			shown = '•'
			style = incorrectStyle
		case i < len(typed) && typed[i] == want:
			style = correctStyle
		case i < len(typed):
			style = incorrectStyle
		case want != ' ' && i >= word.start && i < word.end:
			style = currentWordStyle
		}
		if i == len(typed) {
			style = style.Underline(true)
		}
		out = append(out, glyph{
			s:     style.Render(string(shown)),
			width: runewidth.RuneWidth(shown),
			space: want == ' ',
		})
	}
	return out
}

type span struct {
	start int
	end   int
}

// currentWord returns the word containing pos, or the next word after it.
func currentWord(target []rune, pos int) span {
	start := -1
	var last span
	for i := 0; i <= len(target); i++ {
		if i < len(target) && target[i] != ' ' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start == -1 {
			continue
		}
		last = span{start: start, end: i}
		if pos < i {
			return last
		}
		start = -1
	}
	return last
}

func joinGlyphs(glyphs []glyph) string {
	var b strings.Builder
	for _, g := range glyphs {
		b.WriteString(g.s)
	}
	return b.String()
}

// wrapGlyphs breaks lines at the last space that fits in width, or mid-word
// when a single word is wider than the line.
func wrapGlyphs(glyphs []glyph, width int) string {
	if width <= 0 {
		return joinGlyphs(glyphs)
	}
	var out strings.Builder
	line := make([]glyph, 0, width)
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(glyphs); {
		g := glyphs[i]
		if lineWidth+g.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				out.WriteString(joinGlyphs(line[:lastSpace]))
				line = append([]glyph{}, line[lastSpace+1:]...)
			} else {
				out.WriteString(joinGlyphs(line))
				line = line[:0]
			}
			out.WriteByte('\n')
			lineWidth, lastSpace = measure(line)
			continue
		}
		line = append(line, g)
		lineWidth += g.width
		if g.space {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(joinGlyphs(line))
	return out.String()
}

func measure(line []glyph) (width, lastSpace int) {
	lastSpace = -1
	for i, g := range line {
		width += g.width
		if g.space {
			lastSpace = i
		}
	}
	return width, lastSpace
}
