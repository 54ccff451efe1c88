// Package client is a typed HTTP client for the operations API, consumed
// by the CLI commands and the MCP adapter.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bountyops/bountyops/internal/store"
	"github.com/bountyops/bountyops/pkg/types"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to one operations backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// QueueResult is the response to queueing a scan.
type QueueResult struct {
	Queued   bool       `json:"queued"`
	Scan     types.Scan `json:"scan"`
	Priority string     `json:"priority"`
}

// Health checks the /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var body map[string]string
	return c.do(ctx, http.MethodGet, "/health", nil, &body)
}

// Programs fetches the program catalog.
func (c *Client) Programs(ctx context.Context) ([]types.Program, error) {
	var out []types.Program
	err := c.do(ctx, http.MethodGet, "/programs", nil, &out)
	return out, err
}

// QueueScan queues a new scan for a program.
func (c *Client) QueueScan(ctx context.Context, programID, priority string) (QueueResult, error) {
	var out QueueResult
	err := c.do(ctx, http.MethodPost, "/queue", map[string]string{
		"program_id": programID,
		"priority":   priority,
	}, &out)
	return out, err
}

// Findings fetches findings, optionally filtered by status.
func (c *Client) Findings(ctx context.Context, status string) ([]types.Finding, error) {
	path := "/findings"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []types.Finding
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ApproveFinding approves a finding for submission.
func (c *Client) ApproveFinding(ctx context.Context, id string) (types.Finding, error) {
	var out types.Finding
	err := c.do(ctx, http.MethodPost, "/findings/"+url.PathEscape(id)+"/approve", nil, &out)
	return out, err
}

// Scans fetches all scans, newest first.
func (c *Client) Scans(ctx context.Context) ([]types.Scan, error) {
	var out []types.Scan
	err := c.do(ctx, http.MethodGet, "/scans", nil, &out)
	return out, err
}

// Scan fetches one scan.
func (c *Client) Scan(ctx context.Context, id string) (types.Scan, error) {
	var out types.Scan
	err := c.do(ctx, http.MethodGet, "/scans/"+url.PathEscape(id), nil, &out)
	return out, err
}

// StopScan requests a cooperative stop.
func (c *Client) StopScan(ctx context.Context, id string) (types.Scan, error) {
	var out types.Scan
	err := c.do(ctx, http.MethodDelete, "/scans/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Activities lists activities with the given filter.
func (c *Client) Activities(ctx context.Context, f store.ActivityFilter) (store.ActivityPage, error) {
	q := url.Values{}
	if f.Type != "" {
		q.Set("activity_type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.ProgramID != "" {
		q.Set("program_id", f.ProgramID)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}

	path := "/activities"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out store.ActivityPage
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Activity fetches an activity detail with runs, logs, and artifacts.
func (c *Client) Activity(ctx context.Context, id string) (store.ActivityDetail, error) {
	var out store.ActivityDetail
	err := c.do(ctx, http.MethodGet, "/activities/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CancelActivity cancels a queued or in-progress activity.
func (c *Client) CancelActivity(ctx context.Context, id string) (types.Activity, error) {
	var out types.Activity
	err := c.do(ctx, http.MethodDelete, "/activities/"+url.PathEscape(id), nil, &out)
	return out, err
}

// ActivityLogs fetches an activity's log sequence, optionally scoped to a
// run.
func (c *Client) ActivityLogs(ctx context.Context, id, runID string) ([]types.LogEntry, error) {
	path := "/activities/" + url.PathEscape(id) + "/logs"
	if runID != "" {
		path += "?run_id=" + url.QueryEscape(runID)
	}
	var out []types.LogEntry
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ActivityArtifacts fetches an activity's resolved artifacts.
func (c *Client) ActivityArtifacts(ctx context.Context, id string) ([]types.Artifact, error) {
	var out []types.Artifact
	err := c.do(ctx, http.MethodGet, "/activities/"+url.PathEscape(id)+"/artifacts", nil, &out)
	return out, err
}

// Artifact fetches one artifact by ID.
func (c *Client) Artifact(ctx context.Context, id string) (types.Artifact, error) {
	var out types.Artifact
	err := c.do(ctx, http.MethodGet, "/artifacts/"+url.PathEscape(id), nil, &out)
	return out, err
}

// RevenueTrend fetches the monthly revenue analytics series.
func (c *Client) RevenueTrend(ctx context.Context) ([]store.RevenuePoint, error) {
	var out []store.RevenuePoint
	err := c.do(ctx, http.MethodGet, "/analytics/revenue", nil, &out)
	return out, err
}

// VulnTypeBreakdown fetches the vulnerability-class analytics.
func (c *Client) VulnTypeBreakdown(ctx context.Context) ([]store.VulnTypeStat, error) {
	var out []store.VulnTypeStat
	err := c.do(ctx, http.MethodGet, "/analytics/vulnerabilities", nil, &out)
	return out, err
}

// Status fetches the live system summary.
func (c *Client) Status(ctx context.Context) (store.StatusSummary, error) {
	var out store.StatusSummary
	err := c.do(ctx, http.MethodGet, "/mcp/status", nil, &out)
	return out, err
}

// FindingsSummary fetches the aggregated findings summary.
func (c *Client) FindingsSummary(ctx context.Context) (store.FindingsSummary, error) {
	var out store.FindingsSummary
	err := c.do(ctx, http.MethodGet, "/mcp/findings/summary", nil, &out)
	return out, err
}

// do issues one request and decodes the JSON response into out. Non-2xx
// responses become an *APIError built from the server's error body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
