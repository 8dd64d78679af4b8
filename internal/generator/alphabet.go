package generator

import "github.com/verte-zerg/keydrill/internal/model"

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	basicPunct   = ".,!?"
	extraPunct   = ";':\"()[]{}@#&"
)

var alphabets = map[model.Difficulty]string{
	model.DifficultyEasy:   lowerLetters,
	model.DifficultyMedium: lowerLetters + upperLetters + digits + basicPunct,
	model.DifficultyHard:   lowerLetters + upperLetters + digits + basicPunct + extraPunct,
}

// Alphabet returns the ordered character set allowed at a difficulty.
// Unknown difficulties use the easy alphabet.
func Alphabet(d model.Difficulty) string {
	if a, ok := alphabets[d]; ok {
		return a
	}
	return alphabets[model.DifficultyEasy]
}
