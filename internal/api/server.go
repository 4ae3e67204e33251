package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sanrafael-clinic/frontdesk/internal/engine"
	"github.com/sanrafael-clinic/frontdesk/internal/session"
)

type Server struct {
	router        *chi.Mux
	port          int
	engine        *engine.Engine
	sessions      *session.Registry
	minConfidence float64
	startedAt     time.Time
	logger        *slog.Logger
}

func NewServer(port int, eng *engine.Engine, sessions *session.Registry, minConfidence float64, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:        router,
		port:          port,
		engine:        eng,
		sessions:      sessions,
		minConfidence: minConfidence,
		startedAt:     time.Now(),
		logger:        logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/frontdesk/status", s.status)
	router.Post("/webhook/voice", s.voiceStart)
	router.Post("/webhook/voice/turn", s.voiceTurn)
	router.Post("/webhook/voice/status", s.voiceStatus)
	router.Post("/webhook/chat", s.chat)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"service":         "frontdesk",
		"status":          "ok",
		"active_sessions": s.sessions.Count(),
		"uptime_seconds":  int(time.Since(s.startedAt).Seconds()),
	})
}
