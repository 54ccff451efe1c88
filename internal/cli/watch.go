package cli

import (
	"github.com/spf13/cobra"

	"github.com/bountyops/bountyops/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scan-id>",
	Short: "Follow a scan's progress in an interactive view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(apiClient(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
