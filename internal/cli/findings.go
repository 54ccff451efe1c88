package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bountyops/bountyops/internal/output"
)

var findingStatusFlag string

var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "Inspect and approve vulnerability findings",
}

var findingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List findings, optionally filtered by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		findings, err := apiClient().Findings(cmd.Context(), findingStatusFlag)
		if err != nil {
			return err
		}

		f, err := output.GetFormatter(outputFlag)
		if err != nil {
			return err
		}
		return f.FormatFindings(os.Stdout, findings)
	},
}

var findingsApproveCmd = &cobra.Command{
	Use:   "approve <finding-id>",
	Short: "Approve a finding for submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		finding, err := apiClient().ApproveFinding(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Finding %s approved (%s, $%d estimated)\n",
			finding.ID, finding.Type, finding.PayoutEst)
		return nil
	},
}

func init() {
	findingsListCmd.Flags().StringVar(&findingStatusFlag, "status", "", "filter by status (queued, needs_human, ready_to_submit, approved, submitted, paid)")

	findingsCmd.AddCommand(findingsListCmd)
	findingsCmd.AddCommand(findingsApproveCmd)
	rootCmd.AddCommand(findingsCmd)
}
