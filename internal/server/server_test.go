package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
)

func newTestServer(t *testing.T, opts ...session.Option) (*Server, *Hub) {
	t.Helper()
	hub := NewHub(generator.NewWithWords([]string{"cat"}, 1), zerolog.Nop(), opts...)
	t.Cleanup(hub.Close)
	return New(hub, zerolog.Nop()), hub
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestIndexServesPage(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<title>keydrill</title>") {
		t.Fatalf("unexpected index: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestIndexSendsInputInOrder(t *testing.T) {
	s, _ := newTestServer(t)
	body := do(t, s, http.MethodGet, "/", nil).Body.String()
	for _, want := range []string{"queue = queue.then(fn)", "enqueue(async () => update(await api(\"POST\", \"/api/session/input\"", "latencyMs"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page is missing %q", want)
		}
	}
}

func TestOptions(t *testing.T) {
	s, _ := newTestServer(t)
	res := decode[optionsRes](t, do(t, s, http.MethodGet, "/api/options", nil))
	if len(res.Modes) != 3 || len(res.Difficulties) != 3 {
		t.Fatalf("unexpected options: %+v", res)
	}
	if res.Difficulties[0].Alphabet != generator.Alphabet(model.DifficultyEasy) {
		t.Fatalf("unexpected alphabet: %q", res.Difficulties[0].Alphabet)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := do(t, s, http.MethodGet, "/api/session", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without session, got %d", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/api/session", startReq{Mode: "word", Difficulty: "easy"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start failed: %d %s", rec.Code, rec.Body.String())
	}
	snap := decode[session.Snapshot](t, rec)
	if snap.PracticeText != "cat" || snap.Remaining != session.DefaultDurationSec {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	do(t, s, http.MethodPost, "/api/session/input", inputReq{Type: "change", Value: "cat"})
	rec = do(t, s, http.MethodPost, "/api/session/input", inputReq{Type: "key", Key: "Enter"})
	snap = decode[session.Snapshot](t, rec)
	if snap.Correct != 3 || snap.Input != "" {
		t.Fatalf("unexpected snapshot after submit: %+v", snap)
	}

	rec = do(t, s, http.MethodPost, "/api/session/finish", nil)
	st := decode[model.GameStats](t, rec)
	if st.Correct != 3 || st.Mode != model.ModeWord {
		t.Fatalf("unexpected stats: %+v", st)
	}

	snap = decode[session.Snapshot](t, do(t, s, http.MethodGet, "/api/session", nil))
	if !snap.Finished || snap.Stats == nil || snap.FinishedBy != session.TriggerForced {
		t.Fatalf("expected finished snapshot: %+v", snap)
	}
}

func TestStartValidation(t *testing.T) {
	s, _ := newTestServer(t)
	cases := []any{
		startReq{Mode: "typing", Difficulty: "easy"},
		startReq{Mode: "word", Difficulty: "extreme"},
	}
	for _, body := range cases {
		if rec := do(t, s, http.MethodPost, "/api/session", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %+v, got %d", body, rec.Code)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad JSON, got %d", rec.Code)
	}
}

func TestInputValidation(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := do(t, s, http.MethodPost, "/api/session/input", inputReq{Type: "change"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without session, got %d", rec.Code)
	}
	do(t, s, http.MethodPost, "/api/session", startReq{Mode: "reaction", Difficulty: "easy"})
	for _, body := range []inputReq{{Type: "paste"}, {Type: "key"}} {
		if rec := do(t, s, http.MethodPost, "/api/session/input", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %+v, got %d", body, rec.Code)
		}
	}
}

func TestReactionOverHTTP(t *testing.T) {
	s, _ := newTestServer(t, session.WithReactionTarget(2))
	snap := decode[session.Snapshot](t, do(t, s, http.MethodPost, "/api/session", startReq{Mode: "reaction", Difficulty: "easy"}))
	if snap.ReactionTarget != 2 {
		t.Fatalf("unexpected target: %+v", snap)
	}
	for i := 0; i < 2; i++ {
		snap = decode[session.Snapshot](t, do(t, s, http.MethodPost, "/api/session/input", inputReq{Type: "key", Key: snap.PracticeText}))
	}
	if !snap.Finished || snap.Stats == nil || snap.Stats.Correct != 2 || len(snap.Stats.ReactionTimes) != 2 {
		t.Fatalf("expected finished reaction session: %+v", snap)
	}
}

func TestReactionUsesBrowserLatency(t *testing.T) {
	s, _ := newTestServer(t, session.WithReactionTarget(1))
	snap := decode[session.Snapshot](t, do(t, s, http.MethodPost, "/api/session", startReq{Mode: "reaction", Difficulty: "easy"}))

	rec := do(t, s, http.MethodPost, "/api/session/input", inputReq{Type: "key", Key: snap.PracticeText, LatencyMs: -1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative latency, got %d", rec.Code)
	}

	snap = decode[session.Snapshot](t, do(t, s, http.MethodPost, "/api/session/input", inputReq{Type: "key", Key: snap.PracticeText, Ctrl: true, LatencyMs: 312.6}))
	if !snap.Finished || snap.Stats == nil {
		t.Fatalf("expected modified hit to finish the session: %+v", snap)
	}
	if got := snap.Stats.ReactionTimes; len(got) != 1 || got[0] != 312 {
		t.Fatalf("unexpected reaction times: %v", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHubTickerExpiresSession(t *testing.T) {
	hub := NewHub(generator.NewWithWords([]string{"cat"}, 1), zerolog.Nop(), session.WithDuration(2))
	hub.interval = 5 * time.Millisecond
	defer hub.Close()

	hub.Start(model.ModeWord, model.DifficultyEasy)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap, _ := hub.Current(); snap.Finished {
			if snap.FinishedBy != session.TriggerClock || snap.Remaining != 0 {
				t.Fatalf("unexpected finish: %+v", snap)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session did not expire")
}

func TestHubReplaceStopsOldTicker(t *testing.T) {
	hub := NewHub(generator.NewWithWords([]string{"cat"}, 1), zerolog.Nop(), session.WithDuration(1000))
	hub.interval = time.Millisecond
	defer hub.Close()

	hub.Start(model.ModeWord, model.DifficultyEasy)
	hub.Start(model.ModeReaction, model.DifficultyEasy)
	hub.mu.Lock()
	cancel := hub.cancel
	hub.mu.Unlock()
	if cancel != nil {
		t.Fatalf("reaction sessions should not run a ticker")
	}
	time.Sleep(20 * time.Millisecond)
	snap, _ := hub.Current()
	if snap.Mode != model.ModeReaction || snap.Finished {
		t.Fatalf("unexpected session: %+v", snap)
	}
}
