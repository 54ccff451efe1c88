// Package mcp exposes the operations backend to agent tooling over the
// Model Context Protocol. The adapter is a pure consumer of the HTTP API;
// it holds no state of its own.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bountyops/bountyops/internal/client"
	"github.com/bountyops/bountyops/pkg/types"
)

// Server wraps an MCP stdio server around the API client.
type Server struct {
	api *client.Client
	mcp *server.MCPServer
}

// New builds the MCP server with all resources and tools registered.
func New(api *client.Client, version string) *Server {
	s := &Server{
		api: api,
		mcp: server.NewMCPServer(
			"bugbounty-ops",
			version,
			server.WithResourceCapabilities(false, false),
			server.WithToolCapabilities(false),
		),
	}
	s.registerResources()
	s.registerTools()
	return s
}

// ServeStdio runs the server over stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerResources() {
	resources := []struct {
		uri, name, description string
		read                   func(ctx context.Context) (interface{}, error)
	}{
		{
			uri:         "bugbounty://status",
			name:        "System Status",
			description: "Current system status including active scans and findings",
			read: func(ctx context.Context) (interface{}, error) {
				return s.api.Status(ctx)
			},
		},
		{
			uri:         "bugbounty://programs",
			name:        "Bug Bounty Programs",
			description: "All available bug bounty programs",
			read: func(ctx context.Context) (interface{}, error) {
				return s.api.Programs(ctx)
			},
		},
		{
			uri:         "bugbounty://findings",
			name:        "Vulnerability Findings",
			description: "All discovered vulnerability findings",
			read: func(ctx context.Context) (interface{}, error) {
				findings, err := s.api.Findings(ctx, "")
				if err != nil {
					return nil, err
				}
				summary, err := s.api.FindingsSummary(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"summary":  summary,
					"findings": findings,
				}, nil
			},
		},
		{
			uri:         "bugbounty://scans",
			name:        "Active Scans",
			description: "Currently running vulnerability scans",
			read: func(ctx context.Context) (interface{}, error) {
				return s.api.Scans(ctx)
			},
		},
		{
			uri:         "bugbounty://analytics",
			name:        "Analytics Dashboard",
			description: "Revenue, vulnerability type, and performance analytics",
			read: func(ctx context.Context) (interface{}, error) {
				revenue, err := s.api.RevenueTrend(ctx)
				if err != nil {
					return nil, err
				}
				vulns, err := s.api.VulnTypeBreakdown(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"revenue_trend":       revenue,
					"vulnerability_types": vulns,
				}, nil
			},
		},
	}

	for _, r := range resources {
		read := r.read
		uri := r.uri
		s.mcp.AddResource(
			mcp.NewResource(r.uri, r.name,
				mcp.WithResourceDescription(r.description),
				mcp.WithMIMEType("application/json"),
			),
			func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				data, err := read(ctx)
				if err != nil {
					return nil, fmt.Errorf("read %s: %w", uri, err)
				}
				text, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return nil, err
				}
				return []mcp.ResourceContents{
					mcp.TextResourceContents{
						URI:      uri,
						MIMEType: "application/json",
						Text:     string(text),
					},
				}, nil
			},
		)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("start_scan",
			mcp.WithDescription("Start a vulnerability scan for a specific program"),
			mcp.WithString("program_id", mcp.Required(),
				mcp.Description("ID of the bug bounty program to scan")),
			mcp.WithString("priority",
				mcp.Description("Scan priority (high_ceiling, fast_pay, mobile, web3)"),
				mcp.DefaultString("fast_pay")),
		),
		s.handleStartScan,
	)

	s.mcp.AddTool(
		mcp.NewTool("approve_finding",
			mcp.WithDescription("Approve a vulnerability finding for submission"),
			mcp.WithString("finding_id", mcp.Required(),
				mcp.Description("ID of the finding to approve")),
		),
		s.handleApproveFinding,
	)

	s.mcp.AddTool(
		mcp.NewTool("stop_scan",
			mcp.WithDescription("Stop a running vulnerability scan"),
			mcp.WithString("scan_id", mcp.Required(),
				mcp.Description("ID of the scan to stop")),
		),
		s.handleStopScan,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_system_health",
			mcp.WithDescription("Get comprehensive system health and performance metrics"),
		),
		s.handleSystemHealth,
	)

	s.mcp.AddTool(
		mcp.NewTool("analyze_finding",
			mcp.WithDescription("Get detailed analysis of a specific finding"),
			mcp.WithString("finding_id", mcp.Required(),
				mcp.Description("ID of the finding to analyze")),
		),
		s.handleAnalyzeFinding,
	)
}

func (s *Server) handleStartScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, err := req.RequireString("program_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	priority := req.GetString("priority", "fast_pay")

	result, err := s.api.QueueScan(ctx, programID, priority)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("start_scan failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Scan started for program %s\nScan ID: %s\nPriority: %s\nStatus: queued and will begin processing shortly",
		programID, result.Scan.ID, priority,
	)), nil
}

func (s *Server) handleApproveFinding(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	findingID, err := req.RequireString("finding_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := s.api.ApproveFinding(ctx, findingID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("approve_finding failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Finding %s has been approved for submission\nNext: automated submission to the appropriate bug bounty platform",
		findingID,
	)), nil
}

func (s *Server) handleStopScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scanID, err := req.RequireString("scan_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := s.api.StopScan(ctx, scanID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stop_scan failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Scan %s has been stopped\nAny partial findings have been preserved",
		scanID,
	)), nil
}

func (s *Server) handleSystemHealth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.api.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_system_health failed: %v", err)), nil
	}
	summary, err := s.api.FindingsSummary(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_system_health failed: %v", err)), nil
	}

	return mcp.NewToolResultText(healthReport(status, summary)), nil
}

func (s *Server) handleAnalyzeFinding(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	findingID, err := req.RequireString("finding_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	findings, err := s.api.Findings(ctx, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyze_finding failed: %v", err)), nil
	}
	var finding *types.Finding
	for i := range findings {
		if findings[i].ID == findingID {
			finding = &findings[i]
			break
		}
	}
	if finding == nil {
		return mcp.NewToolResultError(fmt.Sprintf("finding %s not found", findingID)), nil
	}

	programs, err := s.api.Programs(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyze_finding failed: %v", err)), nil
	}
	var program *types.Program
	for i := range programs {
		if programs[i].ID == finding.ProgramID {
			program = &programs[i]
			break
		}
	}

	return mcp.NewToolResultText(findingAnalysis(*finding, program)), nil
}
