// Package generator builds practice characters, words and paragraphs.
package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/wordlist"
)

// DefaultParagraphWords is the paragraph length used when none is given.
const DefaultParagraphWords = 30

// Generator produces randomized practice text. It is not safe for
// concurrent use.
type Generator struct {
	rnd      *rand.Rand
	words    []string
	filtered map[model.Difficulty][]string
}

// New returns a Generator over the embedded word list with a random seed.
func New() *Generator {
	return NewWithSeed(newSeed())
}

// NewWithSeed returns a deterministic Generator over the embedded word list.
func NewWithSeed(seed int64) *Generator {
	return NewWithWords(wordlist.Default(), seed)
}

// NewWithWords returns a deterministic Generator over a custom word list.
func NewWithWords(words []string, seed int64) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewSource(seed)),
		words:    append([]string(nil), words...),
		filtered: map[model.Difficulty][]string{},
	}
}

// Char samples one character from the difficulty's alphabet.
func (g *Generator) Char(d model.Difficulty) rune {
	alphabet := []rune(Alphabet(d))
	return alphabet[g.rnd.Intn(len(alphabet))]
}

// Word samples one word typeable with the difficulty's alphabet. If no word
// qualifies, it samples from the full list instead.
func (g *Generator) Word(d model.Difficulty) string {
	pool := g.Words(d)
	return pool[g.rnd.Intn(len(pool))]
}

// Paragraph joins wordCount independently sampled words with single spaces
// and terminates the result with a period.
func (g *Generator) Paragraph(d model.Difficulty, wordCount int) string {
	if wordCount <= 0 {
		wordCount = DefaultParagraphWords
	}
	words := make([]string, 0, wordCount)
	for i := 0; i < wordCount; i++ {
		words = append(words, g.Word(d))
	}
	return strings.TrimSpace(strings.Join(words, " ")) + "."
}

// Words returns the vocabulary used for a difficulty. The result is shared;
// callers must not modify it.
func (g *Generator) Words(d model.Difficulty) []string {
	if pool, ok := g.filtered[d]; ok {
		return pool
	}
	pool := wordlist.Filter(g.words, wordlist.FilterForAlphabet(Alphabet(d)))
	g.filtered[d] = pool
	return pool
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
