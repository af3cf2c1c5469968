package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Iron-Ham/splash/internal/config"
	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/Iron-Ham/splash/internal/splash"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print the sequence on a simulated clock",
	Long: `Run the splash state machine on a virtual clock and print every
transition with the time it happens at. Uses the configured timing.

Examples:
  # Activate 1.5s after mount and print until 4s
  splash trace

  # Activate before the button is visible (ignored)
  splash trace --activate-at 500ms

  # Leave before the black screen; pending transitions are dropped
  splash trace --unmount-at 2s

  # Never activate
  splash trace --activate-at 0 --until 3s --format json`,
	Args: cobra.NoArgs,
	RunE: runTrace,
}

var (
	traceActivateAt time.Duration
	traceUnmountAt  time.Duration
	traceUntil      time.Duration
	traceFormat     string
)

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().DurationVar(&traceActivateAt, "activate-at", 1500*time.Millisecond, "When the button is activated (0 for never)")
	traceCmd.Flags().DurationVar(&traceUnmountAt, "unmount-at", 0, "When the view unmounts (0 for never)")
	traceCmd.Flags().DurationVar(&traceUntil, "until", 4*time.Second, "When the simulation stops")
	traceCmd.Flags().StringVar(&traceFormat, "format", "text", "Output format (text/json/yaml)")
}

// tracePlan lists the user actions of a simulation. Zero times mean the
// action never happens.
type tracePlan struct {
	ActivateAt time.Duration
	UnmountAt  time.Duration
	Until      time.Duration
}

// traceRow is one line of trace output.
type traceRow struct {
	AtMs            int64  `json:"at_ms" yaml:"at_ms"`
	Event           string `json:"event" yaml:"event"`
	Accepted        bool   `json:"accepted" yaml:"accepted"`
	Phase           string `json:"phase" yaml:"phase"`
	ButtonVisible   bool   `json:"button_visible" yaml:"button_visible"`
	ButtonFadingOut bool   `json:"button_fading_out" yaml:"button_fading_out"`
}

func newTraceRow(at time.Duration, event string, accepted bool, s splash.State) traceRow {
	return traceRow{
		AtMs:            at.Milliseconds(),
		Event:           event,
		Accepted:        accepted,
		Phase:           s.Phase.String(),
		ButtonVisible:   s.ButtonVisible,
		ButtonFadingOut: s.ButtonFadingOut,
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timing := splash.Timing{
		RevealDelay:      cfg.Timing.RevealDelay(),
		ZoomDelay:        cfg.Timing.ZoomDelay(),
		BlackScreenDelay: cfg.Timing.BlackScreenDelay(),
	}
	rows, err := simulate(timing, tracePlan{
		ActivateAt: traceActivateAt,
		UnmountAt:  traceUnmountAt,
		Until:      traceUntil,
	})
	if err != nil {
		return err
	}
	return writeTrace(cmd.OutOrStdout(), rows, traceFormat)
}

// simulate mounts a controller at time zero and plays plan against it.
// Scheduled transitions and user actions are interleaved in time order; an
// action at the same instant as a transition runs after it.
func simulate(timing splash.Timing, plan tracePlan) ([]traceRow, error) {
	if plan.Until < 0 || plan.ActivateAt < 0 || plan.UnmountAt < 0 {
		return nil, fmt.Errorf("trace times must not be negative")
	}

	ctrl, err := splash.NewController(timing, logging.NopLogger())
	if err != nil {
		return nil, err
	}
	tl := splash.NewTimeline(ctrl)

	type action struct {
		at  time.Duration
		run func() traceRow
	}
	var actions []action
	if plan.ActivateAt > 0 && plan.ActivateAt <= plan.Until {
		actions = append(actions, action{plan.ActivateAt, func() traceRow {
			ok := tl.Activate()
			return newTraceRow(tl.Now(), splash.EventActivate.String(), ok, tl.State())
		}})
	}
	if plan.UnmountAt > 0 && plan.UnmountAt <= plan.Until {
		actions = append(actions, action{plan.UnmountAt, func() traceRow {
			tl.Unmount()
			return newTraceRow(tl.Now(), "unmount", true, tl.State())
		}})
	}
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].at < actions[j].at })

	tl.Mount()
	rows := []traceRow{newTraceRow(0, "mount", true, tl.State())}
	advance := func(to time.Duration) {
		for _, step := range tl.AdvanceTo(to) {
			rows = append(rows, newTraceRow(step.At, step.Event.String(), true, step.To))
		}
	}
	for _, a := range actions {
		advance(a.at)
		rows = append(rows, a.run())
	}
	advance(plan.Until)
	return rows, nil
}

// traceFormats lists the formats accepted by writeTrace.
func traceFormats() []string {
	return []string{"text", "json", "yaml"}
}

func writeTrace(w io.Writer, rows []traceRow, format string) error {
	switch strings.ToLower(format) {
	case "text", "":
		for _, r := range rows {
			status := ""
			if !r.Accepted {
				status = " (ignored)"
			}
			if _, err := fmt.Fprintf(w, "%6dms  %-18s phase=%-12s visible=%-5t fading_out=%t%s\n",
				r.AtMs, r.Event, r.Phase, r.ButtonVisible, r.ButtonFadingOut, status); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unsupported trace format: %s (supported: %s)",
			format, strings.Join(traceFormats(), ", "))
	}
}
