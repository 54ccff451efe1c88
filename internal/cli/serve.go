package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bountyops/bountyops/internal/events"
	"github.com/bountyops/bountyops/internal/seed"
	"github.com/bountyops/bountyops/internal/sim"
	"github.com/bountyops/bountyops/internal/store"
	"github.com/bountyops/bountyops/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the operations backend",
	Long:  "Launches the HTTP API, the websocket event stream, and the scan simulation engine.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "listen address (host:port)")
	serveCmd.Flags().DurationVar(&stageDelayFlag, "stage-delay", 2*time.Second, "pause between simulated scan stages")
	serveCmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	level, err := logrus.ParseLevel(logLevelFlag)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevelFlag, err)
	}
	log.SetLevel(level)

	st := store.New()
	st.Seed(seed.Programs(), seed.Findings())

	bus := events.NewBus()
	engine := sim.New(st, bus, log)
	engine.StageDelay = stageDelayFlag

	go heartbeat(log, 30*time.Second, st)

	s := web.NewServer(addrFlag, st, bus, engine, log)
	fmt.Fprintf(cmd.OutOrStdout(), "bountyops backend listening on %s\n", addrFlag)
	return s.Start()
}

// heartbeat periodically logs a liveness line with the current operational
// counters.
func heartbeat(log *logrus.Logger, period time.Duration, st *store.Store) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for range ticker.C {
		status := st.Status()
		log.WithFields(logrus.Fields{
			"activeScans":    status.ActiveScans,
			"pendingReviews": status.PendingReviews,
			"totalRevenue":   status.TotalRevenue,
		}).Info("worker heartbeat")
	}
}
