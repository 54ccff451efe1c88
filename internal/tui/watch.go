package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bountyops/bountyops/internal/client"
	"github.com/bountyops/bountyops/internal/tui/styles"
	"github.com/bountyops/bountyops/pkg/types"
)

const (
	pollInterval = 500 * time.Millisecond
	barWidth     = 30
)

// scanMsg carries the latest scan state from the API.
type scanMsg struct {
	scan types.Scan
}

// watchErrorMsg is sent when a poll fails.
type watchErrorMsg struct {
	err error
}

// WatchModel follows a single scan until it reaches a terminal status.
type WatchModel struct {
	spinner spinner.Model
	client  *client.Client
	scanID  string
	scan    types.Scan
	loaded  bool
	done    bool
	err     string
}

// NewWatchModel creates a watch view for the given scan ID.
func NewWatchModel(c *client.Client, scanID string) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorAccent)

	return WatchModel{
		spinner: sp,
		client:  c,
		scanID:  scanID,
	}
}

// Init starts the spinner and the first poll.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchScan)
}

// Update handles poll results, spinner ticks, and quit keys.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil

	case scanMsg:
		m.scan = msg.scan
		m.loaded = true
		if m.scan.Status.Terminal() {
			m.done = true
			return m, nil
		}
		return m, m.pollAfter()

	case watchErrorMsg:
		m.done = true
		m.err = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the scan progress.
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("BountyOps — Scan Watch"))
	b.WriteString("\n\n")

	switch {
	case m.err != "":
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Watch failed: %s", m.err)))
		b.WriteString("\n")

	case !m.loaded:
		b.WriteString(fmt.Sprintf("%s Fetching scan %s...\n",
			m.spinner.View(),
			styles.SelectedStyle.Render(m.scanID)))

	default:
		b.WriteString(fmt.Sprintf("Scan %s on %s\n\n",
			styles.SelectedStyle.Render(m.scan.ID),
			styles.SelectedStyle.Render(m.scan.ProgramID)))

		b.WriteString(fmt.Sprintf("  Status:          %s\n",
			styles.StatusStyle(m.scan.Status).Render(string(m.scan.Status))))
		b.WriteString(fmt.Sprintf("  Progress:        %s %d%%\n",
			progressBar(m.scan.Progress), m.scan.Progress))
		b.WriteString(fmt.Sprintf("  Assets:          %d\n", m.scan.AssetsFound))
		b.WriteString(fmt.Sprintf("  Vulnerabilities: %d\n", m.scan.VulnerabilitiesFound))

		if !m.done {
			b.WriteString(fmt.Sprintf("\n%s watching...\n", m.spinner.View()))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("ctrl+c quit"))

	return b.String()
}

func (m WatchModel) fetchScan() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	scan, err := m.client.Scan(ctx, m.scanID)
	if err != nil {
		return watchErrorMsg{err: err}
	}
	return scanMsg{scan: scan}
}

func (m WatchModel) pollAfter() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return m.fetchScan()
	})
}

func progressBar(progress int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	filled := progress * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return styles.BarStyle.Render(bar)
}
