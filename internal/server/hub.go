package server

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
)

// Hub owns the single active session of the browser shell and drives its
// countdown. All session access goes through the hub lock.
type Hub struct {
	mu     sync.Mutex
	sess   *session.Session
	cancel context.CancelFunc

	gen      *generator.Generator
	opts     []session.Option
	interval time.Duration
	log      zerolog.Logger
}

// NewHub returns a hub creating sessions with the given options.
func NewHub(gen *generator.Generator, logger zerolog.Logger, opts ...session.Option) *Hub {
	if gen == nil {
		gen = generator.New()
	}
	return &Hub{gen: gen, opts: opts, interval: time.Second, log: logger}
}

// Start replaces any active session with a new one.
func (h *Hub) Start(mode model.Mode, difficulty model.Difficulty) session.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()

	sess := session.Start(mode, difficulty, h.gen, h.opts...)
	h.sess = sess
	if mode.Timed() {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancel = cancel
		go h.runTicker(ctx, sess)
	}
	h.log.Info().Str("mode", string(mode)).Str("difficulty", string(difficulty)).Msg("session started")
	return sess.Snapshot()
}

// Current returns the active session, if any.
func (h *Hub) Current() (session.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sess == nil {
		return session.Snapshot{}, false
	}
	return h.sess.Snapshot(), true
}

// Input applies one event to the active session.
func (h *Hub) Input(ev session.Event) (session.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sess == nil {
		return session.Snapshot{}, false
	}
	wasFinished := h.sess.Finished()
	h.sess.HandleInput(ev)
	if !wasFinished && h.sess.Finished() {
		h.finishedLocked()
	}
	return h.sess.Snapshot(), true
}

// Finish ends the active session and returns its report.
func (h *Hub) Finish() (model.GameStats, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sess == nil {
		return model.GameStats{}, false
	}
	wasFinished := h.sess.Finished()
	st := h.sess.ForceFinish()
	if !wasFinished {
		h.finishedLocked()
	}
	return st, true
}

// Close stops the ticker of the active session.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
}

func (h *Hub) runTicker(ctx context.Context, sess *session.Session) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.tick(ctx, sess) {
				return
			}
		}
	}
}

// tick advances sess and reports whether the ticker should stop.
func (h *Hub) tick(ctx context.Context, sess *session.Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ctx.Err() != nil || h.sess != sess {
		return true
	}
	if sess.Finished() {
		return true
	}
	if sess.Tick() {
		h.finishedLocked()
		return true
	}
	return false
}

func (h *Hub) finishedLocked() {
	st, _ := h.sess.Stats()
	h.log.Info().
		Str("mode", string(st.Mode)).
		Str("trigger", string(h.sess.FinishedBy())).
		Int("correct", st.Correct).
		Int("errors", st.Errors).
		Int("wpm", st.WPM).
		Float64("accuracy", st.Accuracy).
		Msg("session finished")
	h.stopLocked()
}

func (h *Hub) stopLocked() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}
