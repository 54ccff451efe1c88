package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bountyops/bountyops/internal/output"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the bug bounty program catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		programs, err := apiClient().Programs(cmd.Context())
		if err != nil {
			return err
		}

		f, err := output.GetFormatter(outputFlag)
		if err != nil {
			return err
		}
		return f.FormatPrograms(os.Stdout, programs)
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
}
