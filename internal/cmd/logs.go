package cmd

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/splash/internal/config"
	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View splash debug logs",
	Long: `View, filter and export the debug log written by splash runs.

By default, shows the last 50 entries of the most recent run. Use flags to
filter and format the output.

Examples:
  # Show the most recent run
  splash logs

  # Show every run
  splash logs --all -n 0

  # Warnings and errors from the last hour, as JSON
  splash logs --level warn --since 1h --format json

  # Entries about the background assets
  splash logs --grep background`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsSessionID string
	logsAll       bool
	logsTail      int
	logsLevel     string
	logsSince     time.Duration
	logsPhase     string
	logsGrep      string
	logsFormat    string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVarP(&logsSessionID, "session", "s", "", "Session ID (default: most recent)")
	logsCmd.Flags().BoolVar(&logsAll, "all", false, "Show entries from every session")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().DurationVar(&logsSince, "since", 0, "Show entries newer than this duration (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsPhase, "phase", "", "Filter by phase (welcome/zooming/blackScreen)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries whose message contains this text")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Output format (text/json/csv)")
}

// logsQuery is the parsed form of the logs flags.
type logsQuery struct {
	SessionID string
	All       bool
	Tail      int
	Filter    logging.LogFilter
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	q := logsQuery{
		SessionID: logsSessionID,
		All:       logsAll,
		Tail:      logsTail,
		Filter: logging.LogFilter{
			Level:           logsLevel,
			Phase:           logsPhase,
			MessageContains: logsGrep,
		},
	}
	if logsSince > 0 {
		q.Filter.Since = time.Now().Add(-logsSince)
	}

	entries, err := queryLogs(cfg.Logging.ResolveDir(), q)
	if err != nil {
		return err
	}
	if len(entries) == 0 && logsFormat == "text" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No matching log entries.")
		return nil
	}
	return logging.ExportLogEntries(cmd.OutOrStdout(), entries, logsFormat)
}

// queryLogs reads the log in dir and applies q. Without a session or --all,
// only the most recent session is kept.
func queryLogs(dir string, q logsQuery) ([]logging.LogEntry, error) {
	entries, err := logging.AggregateLogs(dir)
	if err != nil {
		return nil, err
	}

	filter := q.Filter
	switch {
	case q.SessionID != "":
		filter.SessionID = q.SessionID
	case !q.All:
		filter.SessionID = logging.LatestSession(entries)
	}

	entries = logging.FilterLogs(entries, filter)
	if q.Tail > 0 && len(entries) > q.Tail {
		entries = entries[len(entries)-q.Tail:]
	}
	return entries, nil
}
