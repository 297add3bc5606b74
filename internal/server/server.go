// Package server exposes the ornament engine over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"flourish/internal/history"
	"flourish/internal/ornament"
	"flourish/internal/store"
)

// Server is the flourish HTTP API server. The ornament engine mutates
// cooldown state without locking, so render calls are serialized behind
// the server's mutex.
type Server struct {
	db      *store.DB
	engine  *ornament.Engine
	history history.Store
	mu      sync.Mutex // guards engine
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over the given store, engine, and history window.
func New(db *store.DB, eng *ornament.Engine, hist history.Store, version string) *Server {
	s := &Server{
		db:      db,
		engine:  eng,
		history: hist,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/render", s.handleRender)
		r.Post("/conversations/{convID}/moments", s.handleAddMoment)
		r.Get("/conversations/{convID}/moments", s.handleGetMoments)
		r.Get("/traces", s.handleTraces)
		r.Post("/collocations", s.handleAddCollocation)
		r.Get("/collocations", s.handleListCollocations)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}
