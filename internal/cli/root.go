package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bountyops/bountyops/internal/client"
	"github.com/bountyops/bountyops/internal/config"
)

var version = "dev"

var (
	apiURLFlag     string
	outputFlag     string
	addrFlag       string
	stageDelayFlag time.Duration
	logLevelFlag   string
)

// appConfig holds the loaded configuration, available after
// PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "bountyops",
	Short: "bountyops — bug bounty operations backend and CLI",
	Long: `bountyops runs the bug bounty operations demo backend: a program
catalog, a findings review queue, a staged scan simulator, and an
activity ledger, served over HTTP with live push notifications and an
MCP adapter for agent tooling.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		// Sync config values back to flag variables so all commands pick
		// up config-file and env-var defaults transparently.
		apiURLFlag = cfg.APIURL
		outputFlag = cfg.OutputFormat
		addrFlag = cfg.Addr
		stageDelayFlag = cfg.StageDelay
		logLevelFlag = cfg.LogLevel

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// apiClient builds a client for the configured API URL.
func apiClient() *client.Client {
	return client.New(apiURLFlag)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "http://localhost:8080", "base URL of the operations API")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json, markdown")

	rootCmd.AddCommand(versionCmd)
}
