// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Mode selects the exercise rules for a session.
type Mode string

// Supported modes.
const (
	ModeReaction  Mode = "reaction"
	ModeWord      Mode = "word"
	ModeParagraph Mode = "paragraph"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeReaction, ModeWord, ModeParagraph}

// Label returns the human-readable mode name.
func (m Mode) Label() string {
	switch m {
	case ModeReaction:
		return "Reaction Time"
	case ModeWord:
		return "Word Typing"
	case ModeParagraph:
		return "Paragraph Typing"
	default:
		return string(m)
	}
}

// Timed reports whether the mode runs on a countdown.
func (m Mode) Timed() bool {
	return m == ModeWord || m == ModeParagraph
}

// ParseMode converts a user-supplied string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeReaction:
		return ModeReaction, nil
	case ModeWord:
		return ModeWord, nil
	case ModeParagraph:
		return ModeParagraph, nil
	}
	return "", fmt.Errorf("unknown mode %q (use reaction, word or paragraph)", s)
}

// Difficulty selects the alphabet used to generate practice text.
type Difficulty string

// Supported difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Label returns the human-readable difficulty name.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// ParseDifficulty converts a user-supplied string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (use easy, medium or hard)", s)
}

// GameState is the screen a shell is showing.
type GameState int

// Shell screens.
const (
	StateSetup GameState = iota
	StatePlaying
	StateFinished
)

// Config defines practice settings.
type Config struct {
	Mode           Mode
	Difficulty     Difficulty
	DurationSec    int
	ReactionTarget int
	ParagraphWords int
}

// GameStats is the final report of one session. It is produced once and
// never modified afterwards.
type GameStats struct {
	Mode            Mode       `json:"mode"`
	Difficulty      Difficulty `json:"difficulty"`
	Time            float64    `json:"time"`
	Correct         int        `json:"correct"`
	Errors          int        `json:"errors"`
	Missed          int        `json:"missed"`
	Accuracy        float64    `json:"accuracy"`
	WPM             int        `json:"wpm"`
	ReactionTimes   []int64    `json:"reactionTimes"`
	AvgReactionTime float64    `json:"avgReactionTime"`
	TotalWords      int        `json:"totalWords"`
	TotalChars      int        `json:"totalChars"`
}
