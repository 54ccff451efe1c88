package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bountyops/bountyops/internal/output"
)

var priorityFlag string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Queue, list, and stop simulated vulnerability scans",
}

var scanQueueCmd = &cobra.Command{
	Use:   "queue <program-id>",
	Short: "Queue a scan against a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := apiClient().QueueScan(cmd.Context(), args[0], priorityFlag)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Scan %s queued for program %s (priority %s)\n",
			result.Scan.ID, result.Scan.ProgramID, result.Priority)
		return nil
	},
}

var scanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		scans, err := apiClient().Scans(cmd.Context())
		if err != nil {
			return err
		}

		f, err := output.GetFormatter(outputFlag)
		if err != nil {
			return err
		}
		return f.FormatScans(os.Stdout, scans)
	},
}

var scanStopCmd = &cobra.Command{
	Use:   "stop <scan-id>",
	Short: "Request a cooperative stop of a running scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scan, err := apiClient().StopScan(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Scan %s is %s\n", scan.ID, scan.Status)
		return nil
	},
}

func init() {
	scanQueueCmd.Flags().StringVar(&priorityFlag, "priority", "fast_pay", "scan priority (high_ceiling, fast_pay, mobile, web3)")

	scanCmd.AddCommand(scanQueueCmd)
	scanCmd.AddCommand(scanListCmd)
	scanCmd.AddCommand(scanStopCmd)
	rootCmd.AddCommand(scanCmd)
}
