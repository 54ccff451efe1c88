package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bountyops/bountyops/internal/web/api"
)

// registerRoutes mounts all route groups on the server's router. Paths
// are flat, not versioned; the MCP adapter and CLI depend on them.
func (s *Server) registerRoutes() {
	h := api.NewHandlers(s.store, s.bus, s.engine)

	// Health check
	s.router.Get("/health", s.handleHealth)

	// Programs and scan queue
	s.router.Get("/programs", h.ListPrograms)
	s.router.Post("/queue", h.QueueScan)

	// Findings
	s.router.Get("/findings", h.ListFindings)
	s.router.Post("/findings/{id}/approve", h.ApproveFinding)

	// Scans
	s.router.Get("/scans", h.ListScans)
	s.router.Get("/scans/{id}", h.GetScan)
	s.router.Delete("/scans/{id}", h.StopScan)

	// Activity ledger
	s.router.Route("/activities", func(r chi.Router) {
		r.Get("/", h.ListActivities)
		r.Get("/{id}", h.GetActivity)
		r.Delete("/{id}", h.CancelActivity)
		r.Get("/{id}/logs", h.GetActivityLogs)
		r.Get("/{id}/artifacts", h.GetActivityArtifacts)
	})
	s.router.Get("/artifacts/{id}", h.GetArtifact)

	// Analytics
	s.router.Get("/analytics/revenue", h.RevenueAnalytics)
	s.router.Get("/analytics/vulnerabilities", h.VulnerabilityAnalytics)

	// MCP convenience surface
	s.router.Get("/mcp/status", h.Status)
	s.router.Get("/mcp/findings/summary", h.FindingsSummary)
	s.router.Post("/mcp/scan/start", h.StartScanForAgent)

	// Websocket event stream
	s.router.Get("/ws", s.hub.Serve)
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
