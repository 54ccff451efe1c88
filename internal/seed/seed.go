// Package seed holds the demo catalog loaded at serve start.
package seed

import "github.com/bountyops/bountyops/pkg/types"

// Programs returns the bug bounty program catalog.
func Programs() []types.Program {
	return []types.Program{
		{ID: "h1-google", Name: "Google VRP", Platform: "H1", PayoutMax: 1000000, RPS: 0.5, AutoOK: true, TriageDays: 14, AssetCount: 2800, Tags: []string{"web", "mobile", "cloud"}},
		{ID: "apple-vrp", Name: "Apple Security Bounty", Platform: "Direct", PayoutMax: 1000000, RPS: 0.2, AutoOK: false, TriageDays: 30, AssetCount: 120, Tags: []string{"mobile", "kernel"}},
		{ID: "msrc", Name: "Microsoft (MSRC)", Platform: "Direct", PayoutMax: 40000, RPS: 0.5, AutoOK: true, TriageDays: 10, AssetCount: 900, Tags: []string{"cloud", "desktop", "ai"}},
		{ID: "github", Name: "GitHub", Platform: "H1", PayoutMax: 30000, RPS: 1.0, AutoOK: true, TriageDays: 7, AssetCount: 700, Tags: []string{"dev", "api", "actions"}},
	}
}

// Findings returns the findings present at startup.
func Findings() []types.Finding {
	return []types.Finding{
		{ID: "f1", ProgramID: "github", Type: "IDOR", Severity: 7.5, Status: types.FindingReadyToSubmit, PayoutEst: 8000},
		{ID: "f2", ProgramID: "h1-google", Type: "SSRF", Severity: 8.8, Status: types.FindingNeedsHuman, PayoutEst: 25000},
		{ID: "f3", ProgramID: "msrc", Type: "AuthZ bypass", Severity: 9.1, Status: types.FindingQueued, PayoutEst: 15000},
	}
}
