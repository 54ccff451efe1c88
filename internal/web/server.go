// Package web serves the JSON API and the websocket event stream.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/bountyops/bountyops/internal/events"
	"github.com/bountyops/bountyops/internal/sim"
	"github.com/bountyops/bountyops/internal/store"
)

// Server is the HTTP server for the operations backend.
type Server struct {
	router chi.Router
	addr   string
	store  *store.Store
	bus    *events.Bus
	engine *sim.Engine
	hub    *Hub
	log    *logrus.Logger
}

// NewServer builds a new Server with middleware and routes configured.
func NewServer(addr string, st *store.Store, bus *events.Bus, engine *sim.Engine, log *logrus.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		addr:   addr,
		store:  st,
		bus:    bus,
		engine: engine,
		hub:    NewHub(bus, log),
		log:    log,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.registerRoutes()

	return s
}

// Start runs the websocket hub and begins listening on the configured
// address.
func (s *Server) Start() error {
	go s.hub.Run()
	return http.ListenAndServe(s.addr, s.router)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub exposes the websocket hub so callers can run it without Start.
func (s *Server) Hub() *Hub {
	return s.hub
}
