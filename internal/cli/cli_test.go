package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bountyops/bountyops/internal/events"
	"github.com/bountyops/bountyops/internal/seed"
	"github.com/bountyops/bountyops/internal/sim"
	"github.com/bountyops/bountyops/internal/store"
	"github.com/bountyops/bountyops/internal/web"
	"github.com/bountyops/bountyops/pkg/types"
)

func executeCmd(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	// Capture stdout for commands that write to os.Stdout.
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	var captured bytes.Buffer
	captured.ReadFrom(r)

	// Combine cobra output and stdout capture.
	output := buf.String() + captured.String()
	return output, err
}

// newTestBackend starts a seeded backend with a zero-delay engine and
// returns its base URL.
func newTestBackend(t *testing.T) string {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	st := store.New()
	st.Seed(seed.Programs(), seed.Findings())

	bus := events.NewBus()
	engine := sim.New(st, bus, log)
	engine.StageDelay = 0

	srv := web.NewServer(":0", st, bus, engine, log)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return ts.URL
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCmd("version")
	require.NoError(t, err)
	assert.Contains(t, output, "bountyops version")
}

func TestProgramsCommandListsCatalog(t *testing.T) {
	url := newTestBackend(t)

	output, err := executeCmd("programs", "--api-url", url, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, output, "Google VRP")
	assert.Contains(t, output, "Apple Security Bounty")
}

func TestProgramsCommandJSONOutput(t *testing.T) {
	url := newTestBackend(t)

	output, err := executeCmd("programs", "--api-url", url, "-o", "json")
	require.NoError(t, err)

	var programs []types.Program
	err = json.Unmarshal([]byte(output), &programs)
	require.NoError(t, err)
	require.Len(t, programs, 4)
}

func TestProgramsCommandBackendUnreachable(t *testing.T) {
	_, err := executeCmd("programs", "--api-url", "http://127.0.0.1:1", "-o", "table")
	assert.Error(t, err)
}

func TestFindingsListFilterByStatus(t *testing.T) {
	url := newTestBackend(t)

	output, err := executeCmd("findings", "list", "--api-url", url, "--status", "needs_human", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, output, "f2")
	assert.Contains(t, output, "SSRF")
	assert.NotContains(t, output, "f1")

	findingStatusFlag = ""
}

func TestFindingsApproveCommand(t *testing.T) {
	url := newTestBackend(t)

	output, err := executeCmd("findings", "approve", "f2", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, output, "Finding f2 approved")
	assert.Contains(t, output, "$25000")
}

func TestFindingsApproveUnknownFinding(t *testing.T) {
	url := newTestBackend(t)

	_, err := executeCmd("findings", "approve", "f999", "--api-url", url)
	assert.Error(t, err)
}

func TestScanQueueCommand(t *testing.T) {
	url := newTestBackend(t)

	output, err := executeCmd("scan", "queue", "github", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, output, "queued for program github")
	assert.Contains(t, output, "priority fast_pay")
}

func TestScanQueueUnknownProgram(t *testing.T) {
	url := newTestBackend(t)

	_, err := executeCmd("scan", "queue", "nonexistent", "--api-url", url)
	assert.Error(t, err)
}

func TestScanListJSONOutput(t *testing.T) {
	url := newTestBackend(t)

	_, err := executeCmd("scan", "queue", "h1-google", "--api-url", url)
	require.NoError(t, err)

	output, err := executeCmd("scan", "list", "--api-url", url, "-o", "json")
	require.NoError(t, err)

	var scans []types.Scan
	err = json.Unmarshal([]byte(output), &scans)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, "h1-google", scans[0].ProgramID)
}

func TestScanStopCommand(t *testing.T) {
	url := newTestBackend(t)

	output, err := executeCmd("scan", "queue", "msrc", "--api-url", url)
	require.NoError(t, err)

	// Output shape: "Scan <id> queued for program msrc (priority fast_pay)".
	fields := strings.Fields(output)
	require.Greater(t, len(fields), 1)
	scanID := fields[1]

	output, err = executeCmd("scan", "stop", scanID, "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, output, "Scan "+scanID+" is")
}

func TestScanHelpListsSubcommands(t *testing.T) {
	output, err := executeCmd("scan", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "queue")
	assert.Contains(t, output, "list")
	assert.Contains(t, output, "stop")
}

func TestRootHelpListsCommands(t *testing.T) {
	output, err := executeCmd("--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "programs", "findings", "scan", "mcp", "watch", "version"} {
		assert.Contains(t, output, name)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	url := newTestBackend(t)

	_, err := executeCmd("programs", "--api-url", url, "-o", "bogus")
	assert.Error(t, err)

	outputFlag = "table"
}
