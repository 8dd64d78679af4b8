// Package stats contains scoring and results rendering.
package stats

import (
	"math"

	"github.com/verte-zerg/keydrill/internal/model"
)

// Tally is the raw state of a session at the moment it finishes.
type Tally struct {
	Mode       model.Mode
	Difficulty model.Difficulty

	DurationSec     int
	RemainingSec    int
	ReactionTotalMs int64

	Correct       int
	Errors        int
	Missed        int
	ReactionTimes []int64
	TotalWords    int
	TotalChars    int

	Target string
	Input  string
}

// Score derives the final report from a tally.
func Score(t Tally) model.GameStats {
	correct := t.Correct
	if t.Mode == model.ModeParagraph {
		correct = MatchCount(t.Input, t.Target)
	}

	var elapsed float64
	if t.Mode == model.ModeReaction {
		elapsed = float64(t.ReactionTotalMs) / 1000
	} else {
		remaining := t.RemainingSec
		if remaining < 0 {
			remaining = 0
		}
		elapsed = float64(t.DurationSec - remaining)
	}

	wpm := 0
	if t.Mode != model.ModeReaction {
		wpm = WPM(correct, elapsed)
	}

	return model.GameStats{
		Mode:            t.Mode,
		Difficulty:      t.Difficulty,
		Time:            elapsed,
		Correct:         correct,
		Errors:          t.Errors,
		Missed:          t.Missed,
		Accuracy:        Accuracy(correct, t.Errors+t.Missed),
		WPM:             wpm,
		ReactionTimes:   append([]int64(nil), t.ReactionTimes...),
		AvgReactionTime: Mean(t.ReactionTimes),
		TotalWords:      t.TotalWords,
		TotalChars:      t.TotalChars,
	}
}

// MatchCount counts positions where input and target hold the same rune.
func MatchCount(input, target string) int {
	in := []rune(input)
	tg := []rune(target)
	n := 0
	for i, r := range in {
		if i >= len(tg) {
			break
		}
		if r == tg[i] {
			n++
		}
	}
	return n
}

// WPM converts correct characters over elapsed seconds to rounded words per
// minute, counting five characters as one word.
func WPM(correct int, elapsedSec float64) int {
	if elapsedSec <= 0 {
		return 0
	}
	return int(math.Round((float64(correct) / 5.0) / (elapsedSec / 60.0)))
}

// Accuracy returns correct as a percentage of correct plus wrong. With no
// attempts it is 100.
func Accuracy(correct, wrong int) float64 {
	den := correct + wrong
	if den <= 0 {
		return 100
	}
	return float64(correct) / float64(den) * 100
}

// Mean returns the arithmetic mean of the samples, or 0 when empty.
func Mean(samples []int64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum int64
	for _, s := range samples {
		sum += s
	}
	return float64(sum) / float64(len(samples))
}
