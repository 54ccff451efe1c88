package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bountyops/bountyops/internal/store"
)

// QueueScanRequest is the JSON body for POST /queue.
type QueueScanRequest struct {
	ProgramID string `json:"program_id"`
	Priority  string `json:"priority"`
}

// decodeQueueScanRequest reads and validates the request body.
func decodeQueueScanRequest(r *http.Request) (*QueueScanRequest, error) {
	var req QueueScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if req.ProgramID == "" {
		return nil, fmt.Errorf("program_id is required")
	}
	if req.Priority == "" {
		req.Priority = "fast_pay"
	}

	return &req, nil
}

// activityFilterFromQuery builds a listing filter from query parameters.
// Unparseable limit and offset values fall back to the defaults.
func activityFilterFromQuery(r *http.Request) store.ActivityFilter {
	q := r.URL.Query()
	f := store.ActivityFilter{
		Type:      q.Get("activity_type"),
		Status:    q.Get("status"),
		ProgramID: q.Get("program_id"),
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil {
		f.Offset = n
	}
	return f
}
