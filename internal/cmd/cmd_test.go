package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/splash/internal/config"
	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/Iron-Ham/splash/internal/splash"
	"github.com/Iron-Ham/splash/internal/testutil"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func resetViper(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	viper.Reset()
	config.SetDefaults()
	t.Cleanup(viper.Reset)
}

func events(rows []traceRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Event
	}
	return out
}

func TestSimulate(t *testing.T) {
	tests := []struct {
		name       string
		plan       tracePlan
		wantEvents []string
		wantAt     []int64
		wantFinal  splash.State
	}{
		{
			name:       "full sequence",
			plan:       tracePlan{ActivateAt: 1500 * time.Millisecond, Until: 4 * time.Second},
			wantEvents: []string{"mount", "reveal_button", "activate", "begin_zoom", "show_black_screen"},
			wantAt:     []int64{0, 1000, 1500, 2000, 3500},
			wantFinal:  splash.State{Phase: splash.PhaseBlackScreen, ButtonVisible: true},
		},
		{
			name:       "never activated",
			plan:       tracePlan{Until: 5 * time.Second},
			wantEvents: []string{"mount", "reveal_button"},
			wantAt:     []int64{0, 1000},
			wantFinal:  splash.State{Phase: splash.PhaseWelcome, ButtonVisible: true},
		},
		{
			name:       "early activation is ignored",
			plan:       tracePlan{ActivateAt: 500 * time.Millisecond, Until: 4 * time.Second},
			wantEvents: []string{"mount", "activate", "reveal_button"},
			wantAt:     []int64{0, 500, 1000},
			wantFinal:  splash.State{Phase: splash.PhaseWelcome, ButtonVisible: true},
		},
		{
			name:       "unmount before reveal",
			plan:       tracePlan{UnmountAt: 500 * time.Millisecond, Until: 3 * time.Second},
			wantEvents: []string{"mount", "unmount"},
			wantAt:     []int64{0, 500},
			wantFinal:  splash.State{Phase: splash.PhaseWelcome},
		},
		{
			name: "unmount after activation drops zoom and black screen",
			plan: tracePlan{
				ActivateAt: 1500 * time.Millisecond,
				UnmountAt:  1800 * time.Millisecond,
				Until:      4 * time.Second,
			},
			wantEvents: []string{"mount", "reveal_button", "activate", "unmount"},
			wantAt:     []int64{0, 1000, 1500, 1800},
			wantFinal:  splash.State{Phase: splash.PhaseWelcome, ButtonVisible: true, ButtonFadingOut: true},
		},
		{
			name:       "actions after until are not played",
			plan:       tracePlan{ActivateAt: 3 * time.Second, Until: 2 * time.Second},
			wantEvents: []string{"mount", "reveal_button"},
			wantAt:     []int64{0, 1000},
			wantFinal:  splash.State{Phase: splash.PhaseWelcome, ButtonVisible: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := simulate(splash.DefaultTiming(), tt.plan)
			if err != nil {
				t.Fatalf("simulate() error = %v", err)
			}
			if got := events(rows); strings.Join(got, ",") != strings.Join(tt.wantEvents, ",") {
				t.Fatalf("events = %v, want %v", got, tt.wantEvents)
			}
			for i, r := range rows {
				if r.AtMs != tt.wantAt[i] {
					t.Errorf("row %d (%s) at %dms, want %dms", i, r.Event, r.AtMs, tt.wantAt[i])
				}
			}
			last := rows[len(rows)-1]
			got := splash.State{
				ButtonVisible:   last.ButtonVisible,
				ButtonFadingOut: last.ButtonFadingOut,
			}
			if last.Phase != tt.wantFinal.Phase.String() ||
				got.ButtonVisible != tt.wantFinal.ButtonVisible ||
				got.ButtonFadingOut != tt.wantFinal.ButtonFadingOut {
				t.Errorf("final row = %+v, want %+v", last, tt.wantFinal)
			}
		})
	}
}

func TestSimulate_IgnoredActivationIsMarked(t *testing.T) {
	rows, err := simulate(splash.DefaultTiming(), tracePlan{ActivateAt: 200 * time.Millisecond, Until: time.Second})
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if rows[1].Event != "activate" || rows[1].Accepted {
		t.Errorf("row = %+v, want an ignored activation", rows[1])
	}
	if rows[1].ButtonFadingOut {
		t.Error("ignored activation must not start the fade out")
	}
}

func TestSimulate_Errors(t *testing.T) {
	if _, err := simulate(splash.DefaultTiming(), tracePlan{Until: -time.Second}); err == nil {
		t.Error("expected error for negative until")
	}

	bad := splash.Timing{RevealDelay: time.Second, ZoomDelay: time.Second, BlackScreenDelay: time.Second}
	if _, err := simulate(bad, tracePlan{Until: time.Second}); err == nil {
		t.Error("expected error for black screen delay equal to zoom delay")
	}
}

func TestWriteTrace(t *testing.T) {
	rows, err := simulate(splash.DefaultTiming(), tracePlan{ActivateAt: 500 * time.Millisecond, Until: 2 * time.Second})
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeTrace(&buf, rows, "text"); err != nil {
			t.Fatalf("writeTrace() error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != len(rows) {
			t.Fatalf("got %d lines, want %d", len(lines), len(rows))
		}
		if !strings.Contains(lines[1], "activate") || !strings.HasSuffix(lines[1], "(ignored)") {
			t.Errorf("line = %q, want ignored activation", lines[1])
		}
		if !strings.Contains(lines[2], "1000ms") || !strings.Contains(lines[2], "visible=true") {
			t.Errorf("line = %q, want reveal at 1000ms", lines[2])
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeTrace(&buf, rows, "json"); err != nil {
			t.Fatalf("writeTrace() error = %v", err)
		}
		var decoded []traceRow
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != len(rows) || decoded[2] != rows[2] {
			t.Errorf("decoded = %+v, want %+v", decoded, rows)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeTrace(&buf, rows, "YAML"); err != nil {
			t.Fatalf("writeTrace() error = %v", err)
		}
		var decoded []traceRow
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if len(decoded) != len(rows) || decoded[0] != rows[0] {
			t.Errorf("decoded = %+v, want %+v", decoded, rows)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeTrace(&buf, rows, "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestRunTrace_UsesConfiguredTiming(t *testing.T) {
	resetViper(t)
	viper.Set("timing.reveal_delay_ms", 300)
	viper.Set("timing.zoom_delay_ms", 100)
	viper.Set("timing.black_screen_delay_ms", 400)

	origActivate, origUnmount, origUntil, origFormat := traceActivateAt, traceUnmountAt, traceUntil, traceFormat
	t.Cleanup(func() {
		traceActivateAt, traceUnmountAt, traceUntil, traceFormat = origActivate, origUnmount, origUntil, origFormat
	})
	traceActivateAt = 500 * time.Millisecond
	traceUnmountAt = 0
	traceUntil = time.Second
	traceFormat = "json"

	var buf bytes.Buffer
	traceCmd.SetOut(&buf)
	t.Cleanup(func() { traceCmd.SetOut(nil) })

	if err := runTrace(traceCmd, nil); err != nil {
		t.Fatalf("runTrace() error = %v", err)
	}
	var rows []traceRow
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []int64{0, 300, 500, 600, 900}
	if len(rows) != len(want) {
		t.Fatalf("rows = %+v, want %d rows", rows, len(want))
	}
	for i, r := range rows {
		if r.AtMs != want[i] {
			t.Errorf("row %d (%s) at %dms, want %dms", i, r.Event, r.AtMs, want[i])
		}
	}
}

func writeLog(t *testing.T, dir string, lines ...string) {
	t.Helper()
	testutil.WriteFile(t, dir, logging.LogFileName, strings.Join(lines, "\n")+"\n")
}

func TestQueryLogs(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir,
		`{"time":"2026-01-02T10:00:00Z","level":"INFO","msg":"splash mounted","session_id":"aaaa1111"}`,
		`{"time":"2026-01-02T10:00:01Z","level":"WARN","msg":"background video unavailable","session_id":"aaaa1111"}`,
		`{"time":"2026-01-02T11:00:00Z","level":"INFO","msg":"splash mounted","session_id":"bbbb2222"}`,
		`{"time":"2026-01-02T11:00:02Z","level":"INFO","msg":"phase changed","session_id":"bbbb2222"}`,
		`{"time":"2026-01-02T11:00:03Z","level":"INFO","msg":"splash unmounted","session_id":"bbbb2222","phase":"blackScreen"}`,
		`not json`,
	)

	tests := []struct {
		name  string
		query logsQuery
		want  []string
	}{
		{
			name:  "latest session by default",
			query: logsQuery{},
			want:  []string{"splash mounted", "phase changed", "splash unmounted"},
		},
		{
			name:  "explicit session",
			query: logsQuery{SessionID: "aaaa1111"},
			want:  []string{"splash mounted", "background video unavailable"},
		},
		{
			name:  "all sessions with level",
			query: logsQuery{All: true, Filter: logging.LogFilter{Level: "warn"}},
			want:  []string{"background video unavailable"},
		},
		{
			name:  "tail",
			query: logsQuery{All: true, Tail: 2},
			want:  []string{"phase changed", "splash unmounted"},
		},
		{
			name:  "grep and phase",
			query: logsQuery{All: true, Filter: logging.LogFilter{MessageContains: "unmounted", Phase: "blackScreen"}},
			want:  []string{"splash unmounted"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := queryLogs(dir, tt.query)
			if err != nil {
				t.Fatalf("queryLogs() error = %v", err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Message)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("messages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryLogs_PhaseOfRecordedSession(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(dir, logging.LevelDebug, logging.DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	ctrl, err := splash.NewController(splash.DefaultTiming(), logger.WithSession("feed0001"))
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}

	tl := splash.NewTimeline(ctrl)
	tl.Mount()
	tl.Advance(time.Second)
	if !tl.Activate() {
		t.Fatal("activation after reveal should be accepted")
	}
	tl.Advance(3 * time.Second)
	tl.Unmount()
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	for _, phase := range []string{"welcome", "zooming", "blackScreen"} {
		t.Run(phase, func(t *testing.T) {
			entries, err := queryLogs(dir, logsQuery{Filter: logging.LogFilter{Phase: phase}})
			if err != nil {
				t.Fatalf("queryLogs() error = %v", err)
			}
			if len(entries) == 0 {
				t.Fatalf("no entries for phase %s", phase)
			}
			for _, e := range entries {
				if e.Phase != phase || e.SessionID != "feed0001" {
					t.Errorf("entry %q has phase %q session %q", e.Message, e.Phase, e.SessionID)
				}
			}
		})
	}

	zooming, err := queryLogs(dir, logsQuery{Filter: logging.LogFilter{Phase: "zooming", MessageContains: "phase changed"}})
	if err != nil {
		t.Fatalf("queryLogs() error = %v", err)
	}
	if len(zooming) != 1 {
		t.Errorf("got %d zooming phase changes, want 1", len(zooming))
	}
}

func TestQueryLogs_MissingFile(t *testing.T) {
	if _, err := queryLogs(t.TempDir(), logsQuery{}); err == nil {
		t.Error("expected error when no log file exists")
	}
}

func TestNewSessionLogger(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Dir = t.TempDir()

		logger, err := newSessionLogger(cfg, "cafe0001")
		if err != nil {
			t.Fatalf("newSessionLogger() error = %v", err)
		}
		logger.Info("hello")
		if err := logger.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		entries, err := logging.AggregateLogs(cfg.Logging.Dir)
		if err != nil {
			t.Fatalf("AggregateLogs() error = %v", err)
		}
		if len(entries) != 1 || entries[0].SessionID != "cafe0001" {
			t.Errorf("entries = %+v, want one entry for session cafe0001", entries)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Enabled = false
		cfg.Logging.Dir = t.TempDir()

		logger, err := newSessionLogger(cfg, "cafe0002")
		if err != nil {
			t.Fatalf("newSessionLogger() error = %v", err)
		}
		logger.Info("hello")
		if _, err := os.Stat(filepath.Join(cfg.Logging.Dir, logging.LogFileName)); !os.IsNotExist(err) {
			t.Error("disabled logging must not create a log file")
		}
	})
}

func TestRunStart(t *testing.T) {
	origIsTerminal := isTerminal
	t.Cleanup(func() { isTerminal = origIsTerminal })

	t.Run("invalid configuration", func(t *testing.T) {
		resetViper(t)
		viper.Set("timing.black_screen_delay_ms", 100)
		isTerminal = func() bool { return true }

		err := runStart(startCmd, nil)
		if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
			t.Errorf("runStart() error = %v, want invalid configuration", err)
		}
	})

	t.Run("requires a terminal", func(t *testing.T) {
		resetViper(t)
		viper.Set("logging.dir", t.TempDir())
		isTerminal = func() bool { return false }

		err := runStart(startCmd, nil)
		if err == nil || !strings.Contains(err.Error(), "splash trace") {
			t.Errorf("runStart() error = %v, want terminal error", err)
		}
	})
}

func TestRootCommand(t *testing.T) {
	want := map[string]bool{"start": false, "trace": false, "logs": false, "config": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"config", "theme", "font", "video", "watch"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}
