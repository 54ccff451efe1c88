package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/bountyops/bountyops/pkg/types"
)

// MarkdownFormatter renders records as Markdown tables suitable for
// pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) FormatPrograms(w io.Writer, programs []types.Program) error {
	if len(programs) == 0 {
		fmt.Fprintln(w, "_No programs._")
		return nil
	}

	fmt.Fprintln(w, "| ID | Name | Platform | Max Payout | Triage | Tags |")
	fmt.Fprintln(w, "|----|------|----------|------------|--------|------|")
	for _, p := range programs {
		fmt.Fprintf(w, "| %s | %s | %s | $%d | %dd | %s |\n",
			p.ID, escapeMarkdown(p.Name), p.Platform, p.PayoutMax, p.TriageDays, strings.Join(p.Tags, ", "))
	}
	return nil
}

func (f *MarkdownFormatter) FormatFindings(w io.Writer, findings []types.Finding) error {
	if len(findings) == 0 {
		fmt.Fprintln(w, "_No findings._")
		return nil
	}

	fmt.Fprintln(w, "| ID | Program | Type | Severity | Status | Est. Payout |")
	fmt.Fprintln(w, "|----|---------|------|----------|--------|-------------|")

	total := 0
	for _, finding := range findings {
		total += finding.PayoutEst
		fmt.Fprintf(w, "| %s | %s | %s | **%.1f %s** | %s | $%d |\n",
			finding.ID,
			finding.ProgramID,
			escapeMarkdown(finding.Type),
			finding.Severity,
			types.SeverityLabel(finding.Severity),
			finding.Status,
			finding.PayoutEst,
		)
	}

	fmt.Fprintf(w, "\n**Summary:** %d findings, $%d estimated pipeline value\n", len(findings), total)
	return nil
}

func (f *MarkdownFormatter) FormatScans(w io.Writer, scans []types.Scan) error {
	if len(scans) == 0 {
		fmt.Fprintln(w, "_No scans._")
		return nil
	}

	fmt.Fprintln(w, "| ID | Program | Status | Progress | Assets | Vulns |")
	fmt.Fprintln(w, "|----|---------|--------|----------|--------|-------|")
	for _, scan := range scans {
		fmt.Fprintf(w, "| %s | %s | %s | %d%% | %d | %d |\n",
			scan.ID, scan.ProgramID, scan.Status, scan.Progress, scan.AssetsFound, scan.VulnerabilitiesFound)
	}
	return nil
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
