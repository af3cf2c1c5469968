package logging

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogEntry is one parsed log line.
type LogEntry struct {
	Timestamp time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	SessionID string         `json:"session_id,omitempty"`
	Phase     string         `json:"phase,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// LogFilter selects entries. Zero-valued fields do not filter.
type LogFilter struct {
	// Level keeps entries at or above this level.
	Level           string
	Since           time.Time
	SessionID       string
	Phase           string
	MessageContains string
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

var standardFields = map[string]bool{
	"time":       true,
	"level":      true,
	"msg":        true,
	"session_id": true,
	"phase":      true,
}

// AggregateLogs reads debug.log from dir and returns its entries sorted by
// time. Unparseable lines are skipped.
func AggregateLogs(dir string) ([]LogEntry, error) {
	f, err := os.Open(filepath.Join(dir, LogFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no log file found in %s: %w", dir, err)
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadEntries(f)
}

// ReadEntries parses JSON log lines from r.
func ReadEntries(r io.Reader) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := parseLogEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func parseLogEntry(line string) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	entry := LogEntry{}
	if ts, ok := raw["time"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Timestamp = t
		}
	}
	entry.Level, _ = raw["level"].(string)
	entry.Message, _ = raw["msg"].(string)
	entry.SessionID, _ = raw["session_id"].(string)
	entry.Phase, _ = raw["phase"].(string)

	for k, v := range raw {
		if standardFields[k] {
			continue
		}
		if entry.Attrs == nil {
			entry.Attrs = make(map[string]any)
		}
		entry.Attrs[k] = v
	}
	return entry, nil
}

// FilterLogs returns the entries matching every criterion of filter.
func FilterLogs(entries []LogEntry, filter LogFilter) []LogEntry {
	if filter == (LogFilter{}) {
		return entries
	}
	var out []LogEntry
	for _, e := range entries {
		if matches(e, filter) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e LogEntry, f LogFilter) bool {
	if f.Level != "" {
		floor := levelOrder[ParseLevel(f.Level)]
		if lvl, ok := levelOrder[e.Level]; ok && lvl < floor {
			return false
		}
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if f.Phase != "" && e.Phase != f.Phase {
		return false
	}
	if f.MessageContains != "" && !strings.Contains(e.Message, f.MessageContains) {
		return false
	}
	return true
}

// LatestSession returns the session ID of the newest entry that has one.
func LatestSession(entries []LogEntry) string {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].SessionID != "" {
			return entries[i].SessionID
		}
	}
	return ""
}

// ExportFormats lists the formats accepted by ExportLogEntries.
func ExportFormats() []string {
	return []string{"json", "text", "csv"}
}

// ExportLogEntries writes entries to w as json, text or csv.
func ExportLogEntries(w io.Writer, entries []LogEntry, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "text", "":
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, FormatText(e)); err != nil {
				return fmt.Errorf("failed to write text entry: %w", err)
			}
		}
		return nil
	case "csv":
		return exportCSV(w, entries)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: %s)",
			format, strings.Join(ExportFormats(), ", "))
	}
}

// FormatText renders an entry as a single human-readable line:
// [TIMESTAMP] LEVEL - MESSAGE (context) {attrs}
func FormatText(e LogEntry) string {
	parts := []string{
		fmt.Sprintf("[%s]", e.Timestamp.Format("2006-01-02 15:04:05.000")),
		e.Level,
		"-",
		e.Message,
	}

	var ctx []string
	if e.SessionID != "" {
		ctx = append(ctx, "session="+e.SessionID)
	}
	if e.Phase != "" {
		ctx = append(ctx, "phase="+e.Phase)
	}
	if len(ctx) > 0 {
		parts = append(parts, "("+strings.Join(ctx, ", ")+")")
	}
	if len(e.Attrs) > 0 {
		if b, err := json.Marshal(e.Attrs); err == nil {
			parts = append(parts, string(b))
		}
	}
	return strings.Join(parts, " ")
}

func exportCSV(w io.Writer, entries []LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "level", "message", "session_id", "phase", "attrs"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		attrs := ""
		if len(e.Attrs) > 0 {
			if b, err := json.Marshal(e.Attrs); err == nil {
				attrs = string(b)
			}
		}
		record := []string{
			e.Timestamp.Format(time.RFC3339Nano),
			e.Level,
			e.Message,
			e.SessionID,
			e.Phase,
			attrs,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
