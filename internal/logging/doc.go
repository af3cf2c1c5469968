// Package logging provides structured JSON logging for splash runs.
//
// The terminal belongs to the splash screen while it runs, so logs never go
// to stdout. [NewLogger] writes to {dir}/debug.log through a size-rotated
// writer, or to stderr when dir is empty (used by non-interactive commands).
//
//	logger, err := logging.NewLogger(dir, "info", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	runLogger := logger.WithSession(sessionID)
//	runLogger.WithPhase("zooming").Info("phase changed", "from", "welcome")
//
// Every line is a JSON object with time, level and msg plus any session_id,
// phase and call attributes. [AggregateLogs], [FilterLogs] and
// [ExportLogEntries] read those lines back for the logs command.
//
// Use [NopLogger] in tests.
package logging
