package session

import (
	"time"
	"unicode"
	"unicode/utf8"
)

// EventKind distinguishes discrete key presses from text-field changes.
type EventKind int

// Event kinds.
const (
	KeyEvent EventKind = iota
	ChangeEvent
)

// Key names for non-printable keys.
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
	KeyTab       = "Tab"
)

// Event is one raw input from a shell. Key events carry a key name: the
// character itself for printable keys, otherwise a name such as "Enter" or
// "ArrowLeft". Change events carry the full text-field value.
//
// Latency, when positive, is the reaction time measured by the shell from
// the moment it displayed the target. It replaces the session clock for
// that hit, so a remote shell does not count transport delay.
type Event struct {
	Kind    EventKind
	Key     string
	Ctrl    bool
	Alt     bool
	Meta    bool
	Value   string
	Latency time.Duration
}

// Key returns an unmodified key press.
func Key(name string) Event {
	return Event{Kind: KeyEvent, Key: name}
}

// Change returns a text-field change carrying the new value.
func Change(value string) Event {
	return Event{Kind: ChangeEvent, Value: value}
}

func (e Event) modified() bool {
	return e.Ctrl || e.Alt || e.Meta
}

// printable reports whether the event is a single printable character typed
// without modifiers.
func (e Event) printable() bool {
	if e.modified() || utf8.RuneCountInString(e.Key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(e.Key)
	return unicode.IsPrint(r)
}
