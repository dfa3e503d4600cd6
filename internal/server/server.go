// Package server exposes the simulator over HTTP for graph frontends.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"vcsim.dev/vcsim/internal/output"
	"vcsim.dev/vcsim/internal/runtime"
)

// Server serves the graph state and accepts commands over HTTP.
// All handlers share one tree, guarded by mu.
type Server struct {
	mu    sync.RWMutex
	ctx   *runtime.Context
	Mux   *http.ServeMux
	splog *output.Splog
}

// NewServer creates a server around the given context.
func NewServer(ctx *runtime.Context) *Server {
	s := &Server{
		ctx:   ctx,
		Mux:   http.NewServeMux(),
		splog: ctx.Splog,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/ping", s.handlePing)
	s.Mux.HandleFunc("/api/graph", s.handleGetGraph)
	s.Mux.HandleFunc("/api/command", s.handleExecCommand)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Mux.ServeHTTP(w, r)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "pong"})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	state := BuildGraphState(s.ctx.Tree)
	s.mu.RUnlock()

	writeJSON(w, state)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
