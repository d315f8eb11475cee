// Package api serves read-only observability over HTTP. Every endpoint
// is a GET view of the in-memory simulation; nothing here mutates it.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/mediasphere/internal/engine"
	"github.com/talgya/mediasphere/internal/era"
)

// Server serves simulation state over HTTP.
type Server struct {
	Sim    *engine.Simulation
	Runner *engine.Runner // optional; adds speed/running to /status
	Addr   string

	started time.Time
	srv     *http.Server
}

// New wires a server for the given simulation.
func New(sim *engine.Simulation, addr string) *Server {
	return &Server{Sim: sim, Addr: addr, started: time.Now()}
}

// handler builds the route table. Split out from Start so tests can
// exercise routes without binding a port.
func (s *Server) handler() http.Handler {
	graphLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/metrics", s.handleMetrics)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/agents/", s.handleAgentDetail)
	mux.HandleFunc("/api/v1/graph", RateLimitMiddleware(graphLimiter, s.handleGraph))

	return corsMiddleware(readOnly(mux))
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	s.srv = &http.Server{Addr: s.Addr, Handler: s.handler()}
	slog.Info("HTTP API starting", "addr", s.Addr)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// readOnly rejects anything but GET and preflight OPTIONS.
func readOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodOptions {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated allowlist; localhost dev servers are
// always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"name":           "mediasphere",
		"era":            s.Sim.Config.Key,
		"seed":           s.Sim.Seed,
		"tick":           s.Sim.Tick,
		"population":     len(s.Sim.Agents),
		"edges":          len(s.Sim.Edges),
		"loops":          len(s.Sim.Loops),
		"functional":     s.Sim.Stats.Functional,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}
	if s.Runner != nil {
		status["speed"] = s.Runner.Speed
		status["running"] = s.Runner.Running
	}
	writeJSON(w, status)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Metrics())
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 5000 {
			limit = n
		}
	}

	type agentSummary struct {
		ID              int     `json:"id"`
		Role            string  `json:"role"`
		Followers       int     `json:"followers"`
		Influencer      bool    `json:"influencer"`
		VisibleStress   float64 `json:"visible_stress"`
		SystemIntegrity float64 `json:"system_integrity"`
		Functional      bool    `json:"functional"`
	}

	result := make([]agentSummary, 0, limit)
	for _, a := range s.Sim.Agents {
		if len(result) >= limit {
			break
		}
		result = append(result, agentSummary{
			ID:              a.ID,
			Role:            a.Role.String(),
			Followers:       a.FollowerCount(),
			Influencer:      a.IsInfluencer,
			VisibleStress:   a.VisibleStress(),
			SystemIntegrity: a.SystemIntegrity(),
			Functional:      a.Functional,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleAgentDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing agent id", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(parts[4])
	if err != nil {
		http.Error(w, "invalid agent id", http.StatusBadRequest)
		return
	}
	if id < 0 || id >= len(s.Sim.Agents) {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}

	a := s.Sim.Agents[id]
	writeJSON(w, engine.AgentView{
		Agent:           a,
		X:               a.Pos.X,
		Y:               a.Pos.Y,
		Z:               a.Z,
		VisibleStress:   a.VisibleStress(),
		SystemIntegrity: a.SystemIntegrity(),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	edges := s.Sim.Edges
	if name := r.URL.Query().Get("medium"); name != "" {
		m, err := era.ParseMedium(name)
		if err != nil {
			http.Error(w, fmt.Sprintf("unknown medium %q", name), http.StatusBadRequest)
			return
		}
		filtered := edges[:0:0]
		for _, e := range edges {
			if e.Medium == m {
				filtered = append(filtered, e)
			}
		}
		edges = filtered
	}

	writeJSON(w, map[string]any{
		"era":        s.Sim.Config.Key,
		"tick":       s.Sim.Tick,
		"edge_count": len(edges),
		"edges":      edges,
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
