// Package server hosts the authoritative surface's transport endpoint:
// websocket delivery of canonical-state envelopes plus a JSON snapshot
// route for scripts and debugging.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/relay"
	"stagetimer-cli/internal/timer"
)

type Config struct {
	Addr string
}

type Server struct {
	cfg        Config
	controller *timer.Controller
	hub        *relay.Hub

	// OnCommand, when set, observes every remote command after it has
	// been applied. Used for the command audit log.
	OnCommand func(model.Command)
}

func New(cfg Config, c *timer.Controller, h *relay.Hub) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("server: missing addr")
	}
	return &Server{cfg: cfg, controller: c, hub: h}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /state", s.handleState)
	return mux
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	b, err := json.Marshal(s.controller.Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(b)
}
