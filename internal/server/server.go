// Package server is the browser shell: a small JSON API around one typing
// session plus an embedded page that drives it.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
)

//go:embed static/index.html
var staticFS embed.FS

// Server bundles the router and the session hub.
type Server struct {
	r   *chi.Mux
	hub *Hub
	log zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(hub *Hub, logger zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), hub: hub, log: logger}

	s.r.Use(middleware.RequestID)
	s.r.Use(middleware.RealIP)
	s.r.Use(requestLogger(logger))
	s.r.Use(middleware.Recoverer)
	s.r.Use(middleware.Timeout(10 * time.Second))

	s.r.Get("/", s.handleIndex)
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Route("/api", func(r chi.Router) {
			r.Get("/options", s.handleOptions)
			r.Post("/session", s.handleStart)
			r.Get("/session", s.handleCurrent)
			r.Post("/session/input", s.handleInput)
			r.Post("/session/finish", s.handleFinish)
		})
	})
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msgf("listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

type optionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type difficultyItem struct {
	optionItem
	Alphabet string `json:"alphabet"`
}

type optionsRes struct {
	Modes        []optionItem     `json:"modes"`
	Difficulties []difficultyItem `json:"difficulties"`
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	res := optionsRes{}
	for _, m := range model.Modes {
		res.Modes = append(res.Modes, optionItem{Value: string(m), Label: m.Label()})
	}
	for _, d := range model.Difficulties {
		res.Difficulties = append(res.Difficulties, difficultyItem{
			optionItem: optionItem{Value: string(d), Label: d.Label()},
			Alphabet:   generator.Alphabet(d),
		})
	}
	writeJSON(w, http.StatusOK, res)
}

type startReq struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.hub.Start(mode, difficulty))
}

func (s *Server) handleCurrent(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.hub.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// inputReq is one browser event. LatencyMs is the reaction time measured
// by the page from rendering the target to the key press.
type inputReq struct {
	Type      string  `json:"type"`
	Key       string  `json:"key"`
	Ctrl      bool    `json:"ctrl"`
	Alt       bool    `json:"alt"`
	Meta      bool    `json:"meta"`
	Value     string  `json:"value"`
	LatencyMs float64 `json:"latencyMs"`
}

func (req inputReq) event() (session.Event, error) {
	switch req.Type {
	case "key":
		if req.Key == "" {
			return session.Event{}, errors.New("key event without key")
		}
		if req.LatencyMs < 0 {
			return session.Event{}, errors.New("negative latency")
		}
		return session.Event{
			Kind:    session.KeyEvent,
			Key:     req.Key,
			Ctrl:    req.Ctrl,
			Alt:     req.Alt,
			Meta:    req.Meta,
			Latency: time.Duration(req.LatencyMs * float64(time.Millisecond)),
		}, nil
	case "change":
		return session.Change(req.Value), nil
	}
	return session.Event{}, fmt.Errorf("unknown input type %q", req.Type)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ev, err := req.event()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap, ok := s.hub.Input(ev)
	if !ok {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleFinish(w http.ResponseWriter, _ *http.Request) {
	st, ok := s.hub.Finish()
	if !ok {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
