// Package api provides the local HTTP server for ThinkFirst. Browser
// extensions and the CLI talk to it over a small JSON command API; UI
// push (level-ups, interventions) goes out over an SSE event stream.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thinkfirst-app/thinkfirst/internal/app/tracker"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
	"github.com/thinkfirst-app/thinkfirst/internal/health"
)

// Server is the ThinkFirst HTTP API server.
type Server struct {
	engine         *tracker.Engine
	hub            *Hub
	health         *health.Checker
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server around a tracker engine.
func NewServer(engine *tracker.Engine, version string) *Server {
	return &Server{engine: engine, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHub sets the SSE event hub.
func (s *Server) SetHub(h *Hub) { s.hub = h }

// SetHealth sets the self-check reporter behind /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Hub returns the SSE event hub (for broadcasting events).
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"status":  "ok",
			"version": s.version,
		}
		if s.health != nil {
			if !s.health.IsHealthy() {
				resp["status"] = "degraded"
			}
			resp["checks"] = s.health.Statuses()
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleGetState)
		r.Post("/mode", s.handleSetMode)
		r.Post("/goal", s.handleSetGoal)
		r.Post("/points", s.handleAdjustPoints)
		r.Post("/prompt", s.handleRecordPrompt)
		r.Post("/classify", s.handleClassify)
		r.Post("/reset/today", s.handleResetToday)
		r.Post("/reset/all", s.handleResetAll)
	})

	if s.hub != nil {
		r.Get("/api/events", s.hub.HandleEventsSSE)
	}

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// dispatch runs a command and writes the resulting state, mapping
// validation errors to 400.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, cmd domain.Command) {
	res, err := s.engine.Dispatch(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMode) || errors.Is(err, domain.ErrGoalOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: res.State})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, domain.GetStateCmd{})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, domain.SetModeCmd{Mode: mode})
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal int `json:"goal"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, domain.SetDailyGoalCmd{Goal: req.Goal})
}

func (s *Server) handleAdjustPoints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, domain.AdjustPointsCmd{Delta: req.Delta})
}

func (s *Server) handleRecordPrompt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
		Site   string `json:"site"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	s.dispatch(w, r, domain.RecordPromptCmd{Prompt: req.Prompt, Site: req.Site})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	res, err := s.engine.Dispatch(r.Context(), domain.ClassifyCmd{Prompt: req.Prompt})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res.Analysis)
}

func (s *Server) handleResetToday(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, domain.ResetTodayCmd{})
}

func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, domain.ResetAllCmd{})
}

// stateResponse wraps the state blob so the envelope can grow without
// breaking clients.
type stateResponse struct {
	State domain.State `json:"state"`
}

// decodeBody parses a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers so extension content scripts can
// call the local API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
