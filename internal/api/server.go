// Package api exposes the decision engine over HTTP for operators and
// the scheduled trigger. All decision endpoints are read-only except
// the manual tick, which runs one batch page.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/outreach-scheduler/internal/schedule"
	"github.com/ignite/outreach-scheduler/internal/service/sequence"
	"github.com/ignite/outreach-scheduler/internal/worker"
)

// Server holds the HTTP handlers' dependencies.
type Server struct {
	svc       *sequence.Service
	engine    *schedule.Engine
	scheduler *worker.SendScheduler // nil when the server runs without a runner
}

// NewServer creates an API server. scheduler may be nil; the tick
// endpoint then returns 503.
func NewServer(svc *sequence.Service, engine *schedule.Engine, scheduler *worker.SendScheduler) *Server {
	return &Server{svc: svc, engine: engine, scheduler: scheduler}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.HandleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/decisions/preview", s.HandlePreview)
		r.Get("/contacts/{contactID}/decision", s.HandleContactDecision)
		r.Post("/scheduler/tick", s.HandleTick)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
