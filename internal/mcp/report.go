package mcp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bountyops/bountyops/internal/store"
	"github.com/bountyops/bountyops/pkg/types"
)

// healthReport renders the get_system_health tool output.
func healthReport(status store.StatusSummary, summary store.FindingsSummary) string {
	var b strings.Builder

	b.WriteString("Bug Bounty Operations Health Report\n\n")
	b.WriteString("ACTIVE OPERATIONS\n")
	fmt.Fprintf(&b, "- Active Scans: %d\n", status.ActiveScans)
	fmt.Fprintf(&b, "- Pending Reviews: %d\n", status.PendingReviews)
	fmt.Fprintf(&b, "- System Health: %s\n", strings.ToUpper(status.SystemHealth))

	b.WriteString("\nFINANCIAL METRICS\n")
	fmt.Fprintf(&b, "- Total Pipeline Value: $%s\n", commas(status.TotalRevenue))
	fmt.Fprintf(&b, "- Total Findings: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Estimated Monthly Revenue: $%s\n", commas(status.TotalRevenue/12))

	b.WriteString("\nFINDINGS BREAKDOWN\n")
	fmt.Fprintf(&b, "- Needs Human Review: %d\n", summary.ByStatus["needs_human"])
	fmt.Fprintf(&b, "- Ready to Submit: %d\n", summary.ByStatus["ready_to_submit"])
	fmt.Fprintf(&b, "- Approved: %d\n", summary.ByStatus["approved"])

	b.WriteString("\nVULNERABILITY TYPES\n")
	vulnTypes := make([]string, 0, len(summary.ByType))
	for name := range summary.ByType {
		vulnTypes = append(vulnTypes, name)
	}
	sort.Strings(vulnTypes)
	for _, name := range vulnTypes {
		fmt.Fprintf(&b, "- %s: %d findings\n", name, summary.ByType[name])
	}

	fmt.Fprintf(&b, "\nLast Updated: %s\n", status.LastUpdate.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

// findingAnalysis renders the analyze_finding tool output. The program may
// be nil when the finding references an unknown program.
func findingAnalysis(f types.Finding, p *types.Program) string {
	var b strings.Builder

	b.WriteString("Vulnerability Finding Analysis\n\n")
	b.WriteString("BASIC INFO\n")
	fmt.Fprintf(&b, "- Finding ID: %s\n", f.ID)
	fmt.Fprintf(&b, "- Type: %s\n", f.Type)
	fmt.Fprintf(&b, "- Severity: %.1f (%s)\n", f.Severity, types.SeverityLabel(f.Severity))
	fmt.Fprintf(&b, "- Status: %s\n", statusTitle(string(f.Status)))
	if p != nil {
		fmt.Fprintf(&b, "- Program: %s\n", p.Name)
	} else {
		b.WriteString("- Program: Unknown\n")
	}

	b.WriteString("\nFINANCIAL IMPACT\n")
	fmt.Fprintf(&b, "- Estimated Payout: $%s\n", commas(f.PayoutEst))
	if p != nil {
		fmt.Fprintf(&b, "- Program Max Payout: $%s\n", commas(p.PayoutMax))
		fmt.Fprintf(&b, "- Platform: %s\n", p.Platform)

		b.WriteString("\nPROGRAM DETAILS\n")
		fmt.Fprintf(&b, "- Triage Timeline: %d days\n", p.TriageDays)
		autoOK := "No"
		if p.AutoOK {
			autoOK = "Yes"
		}
		fmt.Fprintf(&b, "- Auto-approval: %s\n", autoOK)
		fmt.Fprintf(&b, "- Rate Limit: %g req/sec\n", p.RPS)
	}

	b.WriteString("\nEVIDENCE\n")
	if len(f.Evidence) == 0 {
		b.WriteString("- No evidence recorded\n")
	}
	for i, ev := range f.Evidence {
		fmt.Fprintf(&b, "- %d. %s\n", i+1, ev)
	}

	b.WriteString("\nTIMELINE\n")
	fmt.Fprintf(&b, "- Discovered: %s\n", f.Timestamp.Format("2006-01-02 15:04:05 MST"))
	if f.UpdatedAt != nil {
		fmt.Fprintf(&b, "- Last Updated: %s\n", f.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	} else {
		b.WriteString("- Last Updated: not updated\n")
	}

	b.WriteString("\nNEXT ACTIONS\n")
	switch f.Status {
	case types.FindingNeedsHuman:
		b.WriteString("- Human review required before submission\n")
		b.WriteString("- Use the approve_finding tool if ready to submit\n")
	case types.FindingApproved:
		b.WriteString("- Approved for submission to platform\n")
		b.WriteString("- Will be submitted automatically\n")
	case types.FindingQueued:
		b.WriteString("- In processing queue\n")
		b.WriteString("- Awaiting automated analysis\n")
	case types.FindingReadyToSubmit:
		b.WriteString("- Ready for platform submission\n")
	default:
		b.WriteString("- No further action required\n")
	}

	return b.String()
}

// statusTitle turns a snake_case status into a display title.
func statusTitle(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// commas formats an integer with thousands separators.
func commas(n int) string {
	if n < 0 {
		return "-" + commas(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
