package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/splash/internal/assets"
	"github.com/Iron-Ham/splash/internal/splash"
	"github.com/Iron-Ham/splash/internal/testutil"
	tuimsg "github.com/Iron-Ham/splash/internal/tui/msg"
	"github.com/Iron-Ham/splash/internal/tui/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const (
	buttonLabel = "H O B B I T"
	blackLabel  = "d o n e   s o o n"
)

func newTestModel(t *testing.T, mutate func(*Options)) (Model, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock()
	opts := DefaultOptions()
	opts.Now = clock.Now
	if mutate != nil {
		mutate(&opts)
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	m.SetSize(80, 24)
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func screen(m Model) string {
	return ansi.Strip(m.View())
}

// pending returns the controller's outstanding tasks, which mirror the tick
// commands handed to Bubbletea.
func pending(t *testing.T, m Model, want int) []splash.Task {
	t.Helper()
	tasks := m.Controller().Pending()
	if len(tasks) != want {
		t.Fatalf("got %d pending tasks, want %d", len(tasks), want)
	}
	return tasks
}

func TestModelFullSequence(t *testing.T) {
	m, clock := newTestModel(t, nil)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should return commands")
	}

	reveal := pending(t, m, 1)[0]
	if reveal.Event != splash.EventRevealButton || reveal.Delay != time.Second {
		t.Fatalf("unexpected first task: %+v", reveal)
	}
	if strings.Contains(screen(m), buttonLabel) {
		t.Error("button visible before reveal")
	}

	// Activation before the button is shown is ignored.
	m, cmd := update(t, m, enter())
	if cmd != nil || m.Controller().State().ButtonFadingOut {
		t.Error("early activation should be ignored")
	}

	clock.Advance(time.Second)
	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: reveal})
	if !m.Controller().State().ButtonVisible {
		t.Fatal("button should be visible after reveal task")
	}

	clock.Advance(500 * time.Millisecond)
	m, _ = update(t, m, tuimsg.FrameMsg(clock.Now()))
	if !strings.Contains(screen(m), buttonLabel) {
		t.Errorf("button should be drawn once faded in:\n%s", screen(m))
	}

	m, cmd = update(t, m, enter())
	if cmd == nil {
		t.Fatal("activation should schedule tasks")
	}
	if !m.Controller().State().ButtonFadingOut {
		t.Error("activation should start the fade out immediately")
	}
	tasks := pending(t, m, 2)
	if tasks[0].Event != splash.EventBeginZoom || tasks[0].Delay != 500*time.Millisecond {
		t.Errorf("unexpected zoom task: %+v", tasks[0])
	}
	if tasks[1].Event != splash.EventShowBlackScreen || tasks[1].Delay != 2*time.Second {
		t.Errorf("unexpected black screen task: %+v", tasks[1])
	}

	clock.Advance(500 * time.Millisecond)
	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: tasks[0]})
	if m.Controller().State().Phase != splash.PhaseZooming {
		t.Fatalf("phase = %s, want zooming", m.Controller().State().Phase)
	}
	if strings.Contains(screen(m), buttonLabel) {
		t.Error("zooming screen should not draw the button")
	}

	clock.Advance(1500 * time.Millisecond)
	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: tasks[1]})
	if m.Controller().State().Phase != splash.PhaseBlackScreen {
		t.Fatalf("phase = %s, want blackScreen", m.Controller().State().Phase)
	}
	if !strings.Contains(screen(m), blackLabel) {
		t.Errorf("black screen text missing:\n%s", screen(m))
	}
}

func TestModelQuitDropsPendingTasks(t *testing.T) {
	tests := []struct {
		name     string
		activate bool
	}{
		{"quit before reveal", false},
		{"quit after activation", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, nil)
			m.Init()
			tasks := pending(t, m, 1)

			if tt.activate {
				m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: tasks[0]})
				m, _ = update(t, m, enter())
				tasks = pending(t, m, 2)
			}
			before := m.Controller().State()

			m, cmd := update(t, m, runeKey('q'))
			if cmd == nil {
				t.Fatal("quit should return a command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("quit command should produce tea.QuitMsg")
			}
			if m.Controller().Mounted() {
				t.Error("quit should unmount the controller")
			}
			if m.View() != "" {
				t.Error("view should be empty after quitting")
			}

			for _, task := range tasks {
				m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: task})
			}
			if got := m.Controller().State(); got != before {
				t.Errorf("state changed after unmount: %+v -> %+v", before, got)
			}
		})
	}
}

func TestModelSignalQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Init()

	m, cmd := update(t, m, tuimsg.QuitMsg{Reason: "terminated"})
	if cmd == nil || m.Controller().Mounted() {
		t.Error("QuitMsg should unmount and quit")
	}
}

func TestModelExitAfter(t *testing.T) {
	m, _ := newTestModel(t, func(o *Options) { o.ExitAfter = time.Second })
	m.Init()
	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: pending(t, m, 1)[0]})
	m, _ = update(t, m, enter())
	tasks := pending(t, m, 2)

	m, cmd := update(t, m, tuimsg.TaskFiredMsg{Task: tasks[0]})
	if cmd != nil {
		t.Error("zoom should not schedule an exit")
	}
	m, cmd = update(t, m, tuimsg.TaskFiredMsg{Task: tasks[1]})
	if cmd == nil {
		t.Fatal("black screen should schedule an exit")
	}

	m, cmd = update(t, m, tuimsg.ExitMsg{Generation: m.Controller().Generation() + 5})
	if cmd != nil || !m.Controller().Mounted() {
		t.Error("exit from another generation should be ignored")
	}

	m, cmd = update(t, m, tuimsg.ExitMsg{Generation: m.Controller().Generation()})
	if cmd == nil || m.Controller().Mounted() {
		t.Error("exit should unmount and quit")
	}
}

func TestModelFrameTicks(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Init()

	if _, cmd := update(t, m, tuimsg.FrameMsg(time.Now())); cmd == nil {
		t.Error("frames should keep ticking during the welcome phase")
	}

	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: pending(t, m, 1)[0]})
	m, _ = update(t, m, enter())
	for _, task := range pending(t, m, 2) {
		m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: task})
	}
	if _, cmd := update(t, m, tuimsg.FrameMsg(time.Now())); cmd != nil {
		t.Error("frames should stop on the black screen")
	}
}

func TestModelZoomGrows(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m.Init()
	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: pending(t, m, 1)[0]})
	m, _ = update(t, m, enter())
	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: pending(t, m, 2)[0]})

	if z := m.Frame().Zoom; z != 1 {
		t.Errorf("zoom at start = %v, want 1", z)
	}
	clock.Advance(time.Second)
	m, _ = update(t, m, tuimsg.FrameMsg(clock.Now()))
	if z := m.Frame().Zoom; z <= 1 {
		t.Errorf("zoom after 1s = %v, want > 1", z)
	}
}

func TestModelActivateDuringFadeIn(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m.Init()
	m, _ = update(t, m, tuimsg.TaskFiredMsg{Task: pending(t, m, 1)[0]})

	// Fade in is 40% done when the button is activated.
	clock.Advance(200 * time.Millisecond)
	m, _ = update(t, m, tuimsg.FrameMsg(clock.Now()))
	f := m.Frame()
	before := view.ButtonVisualFor(f.State.ButtonVisible, f.State.ButtonFadingOut, f.ButtonProgress)

	m, _ = update(t, m, enter())
	f = m.Frame()
	after := view.ButtonVisualFor(f.State.ButtonVisible, f.State.ButtonFadingOut, f.ButtonProgress)
	if !f.State.ButtonFadingOut {
		t.Fatal("activation should start the fade out")
	}
	if math.Abs(after.Alpha-before.Alpha) > 0.01 {
		t.Errorf("alpha jumped from %.2f to %.2f on activation", before.Alpha, after.Alpha)
	}

	clock.Advance(250 * time.Millisecond)
	m, _ = update(t, m, tuimsg.FrameMsg(clock.Now()))
	f = m.Frame()
	if v := view.ButtonVisualFor(f.State.ButtonVisible, f.State.ButtonFadingOut, f.ButtonProgress); !v.Hidden() {
		t.Errorf("alpha = %.2f, want fully faded once the remaining fade has run", v.Alpha)
	}
}

func TestModelAssetsLoaded(t *testing.T) {
	m, clock := newTestModel(t, func(o *Options) { o.Loader = &assets.Loader{} })
	if bg := m.Background(); bg == nil || bg.Source != assets.BuiltinSource {
		t.Fatalf("background before loading = %+v, want builtin", bg)
	}

	video := &assets.Background{Frames: [][]string{{"a"}, {"b"}, {"c"}}, Width: 1, Height: 1}
	m, _ = update(t, m, tuimsg.AssetsLoadedMsg{Background: video})
	if m.Background() != video {
		t.Fatal("loaded background not applied")
	}

	clock.Advance(250 * time.Millisecond)
	m, _ = update(t, m, tuimsg.FrameMsg(clock.Now()))
	if got := m.Frame().VideoFrame; got != 2 {
		t.Errorf("VideoFrame = %d, want 2 at 250ms with 120ms frames", got)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Init()

	if !strings.Contains(screen(m), "quit") {
		t.Errorf("help footer missing:\n%s", screen(m))
	}
	m, _ = update(t, m, runeKey('?'))
	if strings.Contains(screen(m), "quit") {
		t.Error("help footer should be hidden after toggling")
	}
}

func TestModelZeroViewport(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.SetSize(0, 0)
	m.Init()
	if got := m.View(); got != "" {
		t.Errorf("View() with zero size = %q, want empty", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if lines := strings.Split(m.View(), "\n"); len(lines) != 12 {
		t.Errorf("got %d lines after resize, want 12", len(lines))
	}
}

func TestNewModelInvalidTiming(t *testing.T) {
	opts := DefaultOptions()
	opts.Timing.BlackScreenDelay = opts.Timing.ZoomDelay
	if _, err := NewModel(opts); err == nil {
		t.Error("expected invalid timing error")
	}
}
