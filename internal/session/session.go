// Package session runs a single typing trial: it generates practice text,
// evaluates input, keeps the clock and produces the final report.
//
// A Session is owned by one caller and is not safe for concurrent use.
// Every way a session can end (clock expiry, reaching the reaction target,
// completing the paragraph, or an explicit ForceFinish) goes through the
// same finish step, which runs at most once.
package session

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
)

// Defaults for session options.
const (
	DefaultDurationSec    = 60
	DefaultReactionTarget = 20
)

// Trigger records what ended a session.
type Trigger string

// Finish triggers.
const (
	TriggerNone      Trigger = ""
	TriggerClock     Trigger = "clock"
	TriggerTarget    Trigger = "target"
	TriggerCompleted Trigger = "completed"
	TriggerForced    Trigger = "forced"
)

// Option customizes a session at start.
type Option func(*Session)

// WithDuration sets the countdown length in seconds for timed modes.
func WithDuration(seconds int) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.durationSec = seconds
		}
	}
}

// WithReactionTarget sets the number of hits that ends a reaction session.
func WithReactionTarget(hits int) Option {
	return func(s *Session) {
		if hits > 0 {
			s.reactionTarget = hits
		}
	}
}

// WithParagraphWords sets the paragraph length in words.
func WithParagraphWords(words int) Option {
	return func(s *Session) {
		if words > 0 {
			s.paragraphWords = words
		}
	}
}

// WithClock replaces the wall clock used for reaction latencies.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session is the live state of one trial.
type Session struct {
	mode       model.Mode
	difficulty model.Difficulty
	gen        *generator.Generator
	now        func() time.Time

	durationSec    int
	reactionTarget int
	paragraphWords int

	practiceText string
	input        string
	presentedAt  time.Time

	countdown countdown
	latency   latencyClock

	correct         int
	errors          int
	missed          int
	reactionSamples []int64
	totalWords      int
	totalChars      int

	finished   bool
	finishedBy Trigger
	stats      model.GameStats
}

// Start initializes a session and generates its first unit of practice
// text. A nil generator gets a randomly seeded one.
func Start(mode model.Mode, difficulty model.Difficulty, gen *generator.Generator, opts ...Option) *Session {
	if gen == nil {
		gen = generator.New()
	}
	s := &Session{
		mode:           mode,
		difficulty:     difficulty,
		gen:            gen,
		now:            time.Now,
		durationSec:    DefaultDurationSec,
		reactionTarget: DefaultReactionTarget,
		paragraphWords: generator.DefaultParagraphWords,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.countdown = newCountdown(s.durationSec)
	s.begin()
	return s
}

// Tick advances the countdown by one second and reports whether the session
// is finished. Reaction sessions have no countdown.
func (s *Session) Tick() bool {
	if s.finished {
		return true
	}
	if !s.mode.Timed() {
		return false
	}
	if s.countdown.tick() {
		s.finish(TriggerClock)
	}
	return s.finished
}

// ForceFinish ends the session early and returns its report. On a finished
// session it returns the existing report.
func (s *Session) ForceFinish() model.GameStats {
	return s.finish(TriggerForced)
}

// Finalize returns the session report, finishing the session first if
// needed. Repeated calls return the same report.
func (s *Session) Finalize() model.GameStats {
	return s.finish(TriggerForced)
}

func (s *Session) finish(by Trigger) model.GameStats {
	if !s.finished {
		s.finished = true
		s.finishedBy = by
		s.stats = stats.Score(s.tally())
	}
	return cloneStats(s.stats)
}

func (s *Session) tally() stats.Tally {
	return stats.Tally{
		Mode:            s.mode,
		Difficulty:      s.difficulty,
		DurationSec:     s.countdown.duration,
		RemainingSec:    s.countdown.remaining,
		ReactionTotalMs: s.latency.totalMs,
		Correct:         s.correct,
		Errors:          s.errors,
		Missed:          s.missed,
		ReactionTimes:   s.reactionSamples,
		TotalWords:      s.totalWords,
		TotalChars:      s.totalChars,
		Target:          s.practiceText,
		Input:           s.input,
	}
}

// Mode returns the session mode.
func (s *Session) Mode() model.Mode { return s.mode }

// Difficulty returns the session difficulty.
func (s *Session) Difficulty() model.Difficulty { return s.difficulty }

// PracticeText returns the unit currently being typed.
func (s *Session) PracticeText() string { return s.practiceText }

// Input returns the text-field buffer (word and paragraph modes).
func (s *Session) Input() string { return s.input }

// Correct returns the running correct count.
func (s *Session) Correct() int { return s.correct }

// Errors returns the running error count.
func (s *Session) Errors() int { return s.errors }

// Missed returns the number of failed word submissions.
func (s *Session) Missed() int { return s.missed }

// Remaining returns the countdown seconds left.
func (s *Session) Remaining() int { return s.countdown.remaining }

// Duration returns the countdown length in seconds.
func (s *Session) Duration() int { return s.countdown.duration }

// ReactionTarget returns the number of hits that ends a reaction session.
func (s *Session) ReactionTarget() int { return s.reactionTarget }

// ElapsedReactionMs returns the accumulated reaction latency.
func (s *Session) ElapsedReactionMs() int64 { return s.latency.totalMs }

// ReactionSamples returns a copy of the recorded hit latencies.
func (s *Session) ReactionSamples() []int64 {
	return append([]int64(nil), s.reactionSamples...)
}

// Finished reports whether the session has ended.
func (s *Session) Finished() bool { return s.finished }

// FinishedBy reports what ended the session.
func (s *Session) FinishedBy() Trigger { return s.finishedBy }

// Stats returns the final report once the session is finished.
func (s *Session) Stats() (model.GameStats, bool) {
	if !s.finished {
		return model.GameStats{}, false
	}
	return cloneStats(s.stats), true
}

// LiveAccuracy is the accuracy shown while playing. Paragraph mode measures
// the current buffer; the other modes use the accumulated counters.
func (s *Session) LiveAccuracy() float64 {
	if s.mode == model.ModeParagraph {
		n := utf8.RuneCountInString(s.input)
		if n == 0 {
			return 100
		}
		return float64(s.correct) / float64(n) * 100
	}
	return stats.Accuracy(s.correct, s.errors+s.missed)
}

// DisplayTime is the timer shown while playing: seconds remaining for timed
// modes, accumulated reaction seconds otherwise.
func (s *Session) DisplayTime() float64 {
	if s.mode.Timed() {
		return float64(s.countdown.remaining)
	}
	return s.latency.seconds()
}

// Snapshot is a read-only view of a session for shells.
type Snapshot struct {
	Mode           model.Mode       `json:"mode"`
	Difficulty     model.Difficulty `json:"difficulty"`
	PracticeText   string           `json:"practiceText"`
	Input          string           `json:"input"`
	Correct        int              `json:"correct"`
	Errors         int              `json:"errors"`
	Missed         int              `json:"missed"`
	Remaining      int              `json:"remaining"`
	ElapsedMs      int64            `json:"elapsedMs"`
	ReactionTarget int              `json:"reactionTarget,omitempty"`
	Accuracy       float64          `json:"accuracy"`
	TotalWords     int              `json:"totalWords"`
	TotalChars     int              `json:"totalChars"`
	Finished       bool             `json:"finished"`
	FinishedBy     Trigger          `json:"finishedBy,omitempty"`
	Stats          *model.GameStats `json:"stats,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:         s.mode,
		Difficulty:   s.difficulty,
		PracticeText: s.practiceText,
		Input:        s.input,
		Correct:      s.correct,
		Errors:       s.errors,
		Missed:       s.missed,
		Remaining:    s.countdown.remaining,
		ElapsedMs:    s.latency.totalMs,
		Accuracy:     s.LiveAccuracy(),
		TotalWords:   s.totalWords,
		TotalChars:   s.totalChars,
		Finished:     s.finished,
		FinishedBy:   s.finishedBy,
	}
	if s.mode == model.ModeReaction {
		snap.ReactionTarget = s.reactionTarget
	}
	if st, ok := s.Stats(); ok {
		snap.Stats = &st
	}
	return snap
}

func cloneStats(st model.GameStats) model.GameStats {
	st.ReactionTimes = append([]int64(nil), st.ReactionTimes...)
	return st
}

func wordCount(text string) int {
	return len(strings.Split(text, " "))
}
