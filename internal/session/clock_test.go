package session

import "testing"

func TestCountdown(t *testing.T) {
	c := newCountdown(2)
	if c.tick() {
		t.Fatalf("expired after one tick")
	}
	if !c.tick() {
		t.Fatalf("expected expiry after two ticks")
	}
	if !c.tick() || c.remaining != 0 {
		t.Fatalf("remaining must not go negative: %d", c.remaining)
	}
	if c.elapsed() != 2 {
		t.Fatalf("elapsed = %d", c.elapsed())
	}
}

func TestLatencyClock(t *testing.T) {
	var c latencyClock
	c.add(250)
	c.add(1250)
	if c.seconds() != 1.5 {
		t.Fatalf("seconds = %v", c.seconds())
	}
}

func TestEventPrintable(t *testing.T) {
	cases := []struct {
		ev   Event
		want bool
	}{
		{Key("a"), true},
		{Key(" "), true},
		{Key("é"), true},
		{Key(KeyEnter), false},
		{Key("\t"), false},
		{Event{Kind: KeyEvent, Key: "a", Meta: true}, false},
	}
	for _, tc := range cases {
		if got := tc.ev.printable(); got != tc.want {
			t.Fatalf("printable(%+v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}
