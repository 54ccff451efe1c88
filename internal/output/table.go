package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/bountyops/bountyops/pkg/types"
)

// TableFormatter renders records as colored terminal tables.
type TableFormatter struct{}

func (f *TableFormatter) FormatPrograms(w io.Writer, programs []types.Program) error {
	if len(programs) == 0 {
		fmt.Fprintln(w, "No programs.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Platform", "Max Payout", "Triage", "Assets", "Tags"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, p := range programs {
		table.Append([]string{
			p.ID,
			p.Name,
			p.Platform,
			fmt.Sprintf("$%d", p.PayoutMax),
			fmt.Sprintf("%dd", p.TriageDays),
			fmt.Sprintf("%d", p.AssetCount),
			strings.Join(p.Tags, ","),
		})
	}
	table.Render()

	return nil
}

func (f *TableFormatter) FormatFindings(w io.Writer, findings []types.Finding) error {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Program", "Type", "Severity", "Status", "Est. Payout"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	total := 0
	for _, finding := range findings {
		total += finding.PayoutEst
		table.Append([]string{
			finding.ID,
			finding.ProgramID,
			finding.Type,
			colorSeverity(finding.Severity),
			string(finding.Status),
			fmt.Sprintf("$%d", finding.PayoutEst),
		})
	}
	table.Render()

	fmt.Fprintf(w, "  Summary: %d findings, $%d estimated pipeline value\n", len(findings), total)
	return nil
}

func (f *TableFormatter) FormatScans(w io.Writer, scans []types.Scan) error {
	if len(scans) == 0 {
		fmt.Fprintln(w, "No scans.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Program", "Status", "Progress", "Assets", "Vulns"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, scan := range scans {
		table.Append([]string{
			scan.ID,
			scan.ProgramID,
			colorScanStatus(scan.Status),
			fmt.Sprintf("%d%%", scan.Progress),
			fmt.Sprintf("%d", scan.AssetsFound),
			fmt.Sprintf("%d", scan.VulnerabilitiesFound),
		})
	}
	table.Render()

	return nil
}

func colorSeverity(s float64) string {
	label := fmt.Sprintf("%.1f %s", s, strings.ToUpper(types.SeverityLabel(s)))
	switch types.SeverityLabel(s) {
	case "Critical", "High":
		return color.RedString(label)
	case "Medium":
		return color.YellowString(label)
	case "Low":
		return color.CyanString(label)
	default:
		return color.WhiteString(label)
	}
}

func colorScanStatus(s types.ScanStatus) string {
	switch s {
	case types.ScanCompleted:
		return color.GreenString(string(s))
	case types.ScanFailed:
		return color.RedString(string(s))
	case types.ScanStopped:
		return color.YellowString(string(s))
	default:
		return string(s)
	}
}
