package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bountyops/bountyops/internal/events"
	"github.com/bountyops/bountyops/internal/sim"
	"github.com/bountyops/bountyops/internal/store"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Store  *store.Store
	Bus    events.Publisher
	Engine *sim.Engine
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(st *store.Store, bus events.Publisher, engine *sim.Engine) *Handlers {
	return &Handlers{Store: st, Bus: bus, Engine: engine}
}

// ListPrograms handles GET /programs.
func (h *Handlers) ListPrograms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Programs())
}

// QueueScan handles POST /queue. It creates the scan record and launches
// the simulation goroutine.
func (h *Handlers) QueueScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeQueueScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	scan, err := h.Store.CreateScan(req.ProgramID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Engine.Start(scan.ID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"queued":   true,
		"scan":     scan,
		"priority": req.Priority,
	})
}

// ListFindings handles GET /findings.
func (h *Handlers) ListFindings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Findings(r.URL.Query().Get("status")))
}

// ApproveFinding handles POST /findings/{id}/approve.
func (h *Handlers) ApproveFinding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	finding, err := h.Store.ApproveFinding(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Bus.Publish(events.FindingApproved, finding)

	writeJSON(w, http.StatusOK, finding)
}

// ListScans handles GET /scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Scans())
}

// GetScan handles GET /scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	scan, err := h.Store.Scan(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scan)
}

// StopScan handles DELETE /scans/{id}. The stop is cooperative; the
// running simulation notices at its next stage boundary and publishes the
// final snapshot itself.
func (h *Handlers) StopScan(w http.ResponseWriter, r *http.Request) {
	scan, err := h.Store.StopScan(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scan)
}

// ListActivities handles GET /activities.
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.ListActivities(activityFilterFromQuery(r)))
}

// GetActivity handles GET /activities/{id} with runs, logs, and artifacts.
func (h *Handlers) GetActivity(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Store.Detail(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CancelActivity handles DELETE /activities/{id}.
func (h *Handlers) CancelActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Store.CancelActivity(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Bus.Publish(events.ActivityUpdated, activity)

	writeJSON(w, http.StatusOK, activity)
}

// GetActivityLogs handles GET /activities/{id}/logs.
func (h *Handlers) GetActivityLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Store.Logs(chi.URLParam(r, "id"), r.URL.Query().Get("run_id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// GetActivityArtifacts handles GET /activities/{id}/artifacts.
func (h *Handlers) GetActivityArtifacts(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.Store.ActivityArtifacts(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artifacts)
}

// GetArtifact handles GET /artifacts/{id}.
func (h *Handlers) GetArtifact(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.Store.Artifact(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

// RevenueAnalytics handles GET /analytics/revenue.
func (h *Handlers) RevenueAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.RevenueTrend())
}

// VulnerabilityAnalytics handles GET /analytics/vulnerabilities.
func (h *Handlers) VulnerabilityAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.VulnTypeBreakdown())
}

// Status handles GET /mcp/status.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Status())
}

// FindingsSummary handles GET /mcp/findings/summary.
func (h *Handlers) FindingsSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.SummarizeFindings())
}

// StartScanForAgent handles POST /mcp/scan/start, the query-parameter
// variant of /queue used by agent tooling.
func (h *Handlers) StartScanForAgent(w http.ResponseWriter, r *http.Request) {
	programID := r.URL.Query().Get("program_id")
	if programID == "" {
		writeError(w, http.StatusBadRequest, "program_id is required")
		return
	}
	priority := r.URL.Query().Get("priority")
	if priority == "" {
		priority = "fast_pay"
	}

	scan, err := h.Store.CreateScan(programID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Engine.Start(scan.ID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"queued":   true,
		"scan":     scan,
		"priority": priority,
	})
}
