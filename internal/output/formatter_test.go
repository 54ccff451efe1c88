package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bountyops/bountyops/pkg/types"
)

func samplePrograms() []types.Program {
	return []types.Program{
		{ID: "h1-google", Name: "Google VRP", Platform: "H1", PayoutMax: 1000000, TriageDays: 14, AssetCount: 2800, Tags: []string{"web", "mobile"}},
		{ID: "github", Name: "GitHub", Platform: "H1", PayoutMax: 30000, TriageDays: 7, AssetCount: 700, Tags: []string{"dev"}},
	}
}

func sampleFindings() []types.Finding {
	return []types.Finding{
		{ID: "f1", ProgramID: "github", Type: "IDOR", Severity: 7.5, Status: types.FindingReadyToSubmit, PayoutEst: 8000},
		{ID: "f2", ProgramID: "h1-google", Type: "SSRF", Severity: 8.8, Status: types.FindingNeedsHuman, PayoutEst: 25000},
	}
}

func sampleScans() []types.Scan {
	return []types.Scan{
		{ID: "scan-1", ProgramID: "github", Status: types.ScanExploiting, Progress: 70, AssetsFound: 7, VulnerabilitiesFound: 2},
	}
}

func TestGetFormatter_Table(t *testing.T) {
	f, err := GetFormatter("table")
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)
}

func TestGetFormatter_JSON(t *testing.T) {
	f, err := GetFormatter("json")
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)
}

func TestGetFormatter_Markdown(t *testing.T) {
	f, err := GetFormatter("markdown")
	require.NoError(t, err)
	assert.IsType(t, &MarkdownFormatter{}, f)
}

func TestGetFormatter_Unknown(t *testing.T) {
	_, err := GetFormatter("xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestTableFormatter_Findings(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.FormatFindings(&buf, sampleFindings())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "f1")
	assert.Contains(t, output, "IDOR")
	assert.Contains(t, output, "needs_human")
	assert.Contains(t, output, "2 findings, $33000 estimated pipeline value")
}

func TestTableFormatter_EmptyFindings(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.FormatFindings(&buf, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No findings.")
}

func TestTableFormatter_Programs(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.FormatPrograms(&buf, samplePrograms())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Google VRP")
	assert.Contains(t, output, "$1000000")
	assert.Contains(t, output, "web,mobile")
}

func TestTableFormatter_Scans(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.FormatScans(&buf, sampleScans())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "scan-1")
	assert.Contains(t, output, "70%")
	assert.Contains(t, output, "exploiting")
}

func TestJSONFormatter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	err := f.FormatFindings(&buf, sampleFindings())
	require.NoError(t, err)

	var decoded []types.Finding
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "f2", decoded[1].ID)
	assert.Equal(t, 8.8, decoded[1].Severity)
}

func TestMarkdownFormatter_Findings(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	err := f.FormatFindings(&buf, sampleFindings())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "| ID | Program | Type | Severity | Status | Est. Payout |")
	assert.Contains(t, output, "| f2 | h1-google | SSRF | **8.8 High** | needs_human | $25000 |")
	assert.Contains(t, output, "**Summary:** 2 findings, $33000 estimated pipeline value")
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	findings := []types.Finding{
		{ID: "f1", ProgramID: "github", Type: "XSS|stored", Severity: 6.0, Status: types.FindingQueued},
	}
	err := f.FormatFindings(&buf, findings)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `XSS\|stored`)
}

func TestMarkdownFormatter_EmptyScans(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	err := f.FormatScans(&buf, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "_No scans._")
}
