package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bountyops/bountyops/internal/events"
	"github.com/bountyops/bountyops/internal/seed"
	"github.com/bountyops/bountyops/internal/sim"
	"github.com/bountyops/bountyops/internal/store"
	"github.com/bountyops/bountyops/pkg/types"
)

// recordingBus captures published events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(name string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events.Event{Name: name, Payload: payload})
}

func (b *recordingBus) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

func setupTestHandlers() (*Handlers, *chi.Mux) {
	st := store.New()
	st.Seed(seed.Programs(), seed.Findings())

	log := logrus.New()
	log.SetOutput(io.Discard)

	bus := &recordingBus{}
	engine := sim.New(st, bus, log)
	engine.StageDelay = 0
	h := NewHandlers(st, bus, engine)

	r := chi.NewRouter()
	r.Get("/programs", h.ListPrograms)
	r.Post("/queue", h.QueueScan)
	r.Get("/findings", h.ListFindings)
	r.Post("/findings/{id}/approve", h.ApproveFinding)
	r.Get("/scans", h.ListScans)
	r.Get("/scans/{id}", h.GetScan)
	r.Delete("/scans/{id}", h.StopScan)
	r.Get("/activities", h.ListActivities)
	r.Get("/activities/{id}", h.GetActivity)
	r.Delete("/activities/{id}", h.CancelActivity)
	r.Get("/activities/{id}/logs", h.GetActivityLogs)
	r.Get("/activities/{id}/artifacts", h.GetActivityArtifacts)
	r.Get("/artifacts/{id}", h.GetArtifact)
	r.Get("/analytics/revenue", h.RevenueAnalytics)
	r.Get("/analytics/vulnerabilities", h.VulnerabilityAnalytics)
	r.Get("/mcp/status", h.Status)
	r.Get("/mcp/findings/summary", h.FindingsSummary)
	r.Post("/mcp/scan/start", h.StartScanForAgent)
	return h, r
}

func TestListPrograms_ReturnsCatalog(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/programs", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "h1-google", list[0]["id"])
}

func TestQueueScan_ValidBody(t *testing.T) {
	h, router := setupTestHandlers()

	body := `{"program_id": "github", "priority": "fast_pay"}`
	req := httptest.NewRequest(http.MethodPost, "/queue", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, true, resp["queued"])
	assert.Equal(t, "fast_pay", resp["priority"])

	scan, ok := resp["scan"].(map[string]interface{})
	require.True(t, ok)
	scanID := scan["id"].(string)
	assert.NotEmpty(t, scanID)

	// Zero stage delay: the simulation finishes almost immediately.
	require.Eventually(t, func() bool {
		s, err := h.Store.Scan(scanID)
		return err == nil && s.Status == types.ScanCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestQueueScan_UnknownProgram(t *testing.T) {
	_, router := setupTestHandlers()

	body := `{"program_id": "nonexistent"}`
	req := httptest.NewRequest(http.MethodPost, "/queue", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueueScan_InvalidJSON(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/queue", bytes.NewBufferString("{invalid"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueScan_MissingProgramID(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/queue", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFindings_StatusFilter(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/findings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	req = httptest.NewRequest(http.MethodGet, "/findings?status=needs_human", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var pending []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "f2", pending[0]["id"])
}

func TestApproveFinding_PublishesEvent(t *testing.T) {
	h, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/findings/f2/approve", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp["status"])
	assert.NotEmpty(t, resp["updatedAt"])

	bus := h.Bus.(*recordingBus)
	assert.Equal(t, 1, bus.count(events.FindingApproved))
}

func TestApproveFinding_NotFound(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/findings/nonexistent/approve", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetScan_NotFound(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/scans/nonexistent", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NotEmpty(t, resp.Error)
}

func TestStopScan_SetsCooperativeFlag(t *testing.T) {
	h, router := setupTestHandlers()

	scan, err := h.Store.CreateScan("github")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/scans/"+scan.ID, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "stopped", resp["status"])
}

func TestStopScan_NotFound(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodDelete, "/scans/nonexistent", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListActivities_Pagination(t *testing.T) {
	h, router := setupTestHandlers()

	h.Store.CreateActivity("scan", "first", "github", "automated")
	h.Store.CreateActivity("scan", "second", "msrc", "manual")
	h.Store.CreateActivity("report", "third", "github", "manual")

	req := httptest.NewRequest(http.MethodGet, "/activities?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var page store.ActivityPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Activities, 1)
	assert.True(t, page.HasMore)

	req = httptest.NewRequest(http.MethodGet, "/activities?activity_type=report", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasMore)
}

func TestGetActivity_DetailAndNotFound(t *testing.T) {
	h, router := setupTestHandlers()

	id := h.Store.CreateActivity("scan", "detail", "github", "automated")
	h.Store.AppendLog(id, types.LogInfo, "hello", "")

	req := httptest.NewRequest(http.MethodGet, "/activities/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var detail store.ActivityDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, id, detail.Activity.ID)
	assert.Len(t, detail.Logs, 1)

	req = httptest.NewRequest(http.MethodGet, "/activities/nonexistent", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelActivity_PublishesEvent(t *testing.T) {
	h, router := setupTestHandlers()

	id := h.Store.CreateActivity("scan", "cancel me", "github", "manual")

	req := httptest.NewRequest(http.MethodDelete, "/activities/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp["status"])
	assert.Equal(t, "cancelled", resp["conclusion"])

	bus := h.Bus.(*recordingBus)
	assert.Equal(t, 1, bus.count(events.ActivityUpdated))
}

func TestCancelActivity_TerminalConflict(t *testing.T) {
	h, router := setupTestHandlers()

	id := h.Store.CreateActivity("scan", "done", "github", "manual")
	h.Store.UpdateActivityStatus(id, types.ActivityCompleted, types.ConclusionSuccess)

	req := httptest.NewRequest(http.MethodDelete, "/activities/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetActivityLogs_RunFilterAndNotFound(t *testing.T) {
	h, router := setupTestHandlers()

	id := h.Store.CreateActivity("scan", "logged", "github", "automated")
	runID := h.Store.CreateRun(id, "recon", "Asset Discovery")
	h.Store.AppendLog(id, types.LogInfo, "scoped", runID)
	h.Store.AppendLog(id, types.LogInfo, "global", "")

	req := httptest.NewRequest(http.MethodGet, "/activities/"+id+"/logs?run_id="+runID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var logs []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "scoped", logs[0]["message"])

	req = httptest.NewRequest(http.MethodGet, "/activities/nonexistent/logs", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArtifact_RoundTrip(t *testing.T) {
	h, router := setupTestHandlers()

	id := h.Store.CreateActivity("scan", "artifacts", "github", "automated")
	artID := h.Store.AddArtifact(id, "notes.txt", "hello world", types.ArtifactText, "")

	req := httptest.NewRequest(http.MethodGet, "/artifacts/"+artID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var art map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &art))
	assert.Equal(t, "notes.txt", art["name"])
	assert.Equal(t, float64(len("hello world")), art["size"])

	req = httptest.NewRequest(http.MethodGet, "/activities/"+id+"/artifacts", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	req = httptest.NewRequest(http.MethodGet, "/artifacts/nonexistent", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/analytics/revenue", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var revenue []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &revenue))
	assert.Len(t, revenue, 5)

	req = httptest.NewRequest(http.MethodGet, "/analytics/vulnerabilities", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var vulns []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vulns))
	assert.Len(t, vulns, 5)
}

func TestStatusSummary(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/mcp/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "operational", resp["systemHealth"])
	assert.Equal(t, float64(1), resp["pendingReviews"])
	assert.Equal(t, float64(0), resp["activeScans"])
}

func TestFindingsSummary(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/mcp/findings/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp store.FindingsSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.ByStatus["needs_human"])
	assert.Equal(t, 48000, resp.TotalValue)
}

func TestStartScanForAgent_QueryVariant(t *testing.T) {
	_, router := setupTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/mcp/scan/start?program_id=msrc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["queued"])
	assert.Equal(t, "fast_pay", resp["priority"])

	req = httptest.NewRequest(http.MethodPost, "/mcp/scan/start", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
