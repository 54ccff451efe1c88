package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bountyops/bountyops/internal/client"
)

// Run starts the interactive watch view for the given scan.
func Run(c *client.Client, scanID string) error {
	m := NewWatchModel(c, scanID)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
