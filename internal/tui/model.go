// Package tui runs the splash sequence in the terminal with Bubbletea.
package tui

import (
	"time"

	"github.com/Iron-Ham/splash/internal/assets"
	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/Iron-Ham/splash/internal/splash"
	"github.com/Iron-Ham/splash/internal/tui/keymap"
	tuimsg "github.com/Iron-Ham/splash/internal/tui/msg"
	"github.com/Iron-Ham/splash/internal/tui/view"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the TUI application state
type Model struct {
	ctrl   *splash.Controller
	opts   Options
	keys   *keymap.Keymap
	help   help.Model
	logger *logging.Logger

	// UI state
	width    int
	height   int
	quitting bool
	showHelp bool

	background *assets.Background

	// Animation clocks. now is the time of the latest message that can
	// change what is drawn.
	now             time.Time
	buttonChangedAt time.Time
	zoomStartedAt   time.Time
	videoStartedAt  time.Time
}

// NewModel creates a model. It fails only if the timing is invalid.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Keymap == nil {
		opts.Keymap = keymap.DefaultKeymap()
	}

	ctrl, err := splash.NewController(opts.Timing, opts.Logger)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	muted := lipgloss.NewStyle().Foreground(opts.Palette.Muted)
	h.Styles.ShortKey = muted.Bold(true)
	h.Styles.ShortDesc = muted
	h.Styles.ShortSeparator = muted
	h.Styles.FullKey = muted.Bold(true)
	h.Styles.FullDesc = muted
	h.Styles.FullSeparator = muted

	m := Model{
		ctrl:     ctrl,
		opts:     opts,
		keys:     opts.Keymap,
		help:     h,
		logger:   opts.Logger,
		showHelp: opts.ShowHelp,
		// Shown until the loader reports back.
		background: assets.Builtin(),
	}
	return m, nil
}

// Controller exposes the controller driving the sequence.
func (m Model) Controller() *splash.Controller {
	return m.ctrl
}

// Background returns the background currently shown.
func (m Model) Background() *assets.Background {
	return m.background
}

// SetSize sets the viewport before the first resize message arrives.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// Init mounts the sequence, schedules the reveal, and starts animation and
// asset loading.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tuimsg.ScheduleTasks(m.ctrl.Mount()),
		tuimsg.Frame(m.opts.FrameInterval),
	}
	if m.opts.Loader != nil {
		cmds = append(cmds, tuimsg.LoadAssets(m.opts.Loader))
	}
	if m.opts.Watcher != nil {
		cmds = append(cmds, tuimsg.WaitForAssetChange(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tuimsg.TaskFiredMsg:
		return m.handleTask(msg.Task)

	case tuimsg.FrameMsg:
		m.now = m.opts.Now()
		if m.quitting || m.ctrl.State().Phase.IsFinal() {
			// The final screen is static.
			return m, nil
		}
		return m, tuimsg.Frame(m.opts.FrameInterval)

	case tuimsg.AssetsLoadedMsg:
		m.now = m.opts.Now()
		m.background = msg.Background
		m.videoStartedAt = m.now
		return m, nil

	case tuimsg.AssetChangedMsg:
		m.logger.Info("background changed on disk, reloading")
		cmds := []tea.Cmd{tuimsg.WaitForAssetChange(m.opts.Watcher)}
		if m.opts.Loader != nil {
			cmds = append(cmds, tuimsg.LoadAssets(m.opts.Loader))
		}
		return m, tea.Batch(cmds...)

	case tuimsg.ExitMsg:
		if !m.ctrl.Mounted() || msg.Generation != m.ctrl.Generation() {
			return m, nil
		}
		return m.quit("exit_after")

	case tuimsg.QuitMsg:
		return m.quit(msg.Reason)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.Lookup(msg, keymap.ModeFor(m.ctrl.State().Phase))
	if !ok {
		return m, nil
	}

	switch cmd {
	case keymap.CmdActivate:
		tasks := m.ctrl.Activate()
		if len(tasks) == 0 {
			return m, nil
		}
		m.now = m.opts.Now()
		// Fade out from the alpha the fade in reached, not from opaque.
		shown := view.Progress(m.now.Sub(m.buttonChangedAt), m.opts.ButtonTransition)
		m.buttonChangedAt = m.now.Add(-time.Duration((1 - shown) * float64(m.opts.ButtonTransition)))
		return m, tuimsg.ScheduleTasks(tasks)

	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		return m, nil

	case keymap.CmdQuit:
		return m.quit("key")
	}
	return m, nil
}

func (m Model) handleTask(task splash.Task) (tea.Model, tea.Cmd) {
	tr, ok := m.ctrl.Fire(task)
	if !ok {
		return m, nil
	}
	m.now = m.opts.Now()

	if tr.To.ButtonVisible && !tr.From.ButtonVisible {
		m.buttonChangedAt = m.now
	}
	if tr.PhaseChanged() {
		switch tr.To.Phase {
		case splash.PhaseZooming:
			m.zoomStartedAt = m.now
		case splash.PhaseBlackScreen:
			if m.opts.ExitAfter > 0 {
				return m, tuimsg.ExitAfter(m.opts.ExitAfter, m.ctrl.Generation())
			}
		}
	}
	return m, nil
}

// quit unmounts so that every pending task is dropped, then stops the
// program.
func (m Model) quit(reason string) (tea.Model, tea.Cmd) {
	m.logger.Info("quitting", "reason", reason, "phase", m.ctrl.State().Phase.String())
	m.ctrl.Unmount()
	m.quitting = true
	return m, tea.Quit
}

// Frame assembles the render frame for the current instant.
func (m Model) Frame() view.Frame {
	state := m.ctrl.State()
	f := view.Frame{
		State:          state,
		Width:          m.width,
		Height:         m.height,
		ButtonProgress: view.Progress(m.now.Sub(m.buttonChangedAt), m.opts.ButtonTransition),
		Zoom:           1,
		Overlay:        m.opts.Overlay,
		Background:     m.background,
		Palette:        m.opts.Palette,
		Face:           m.opts.Face,
		Text:           m.opts.Text,
	}

	if state.Phase == splash.PhaseZooming {
		f.Zoom = view.ZoomFactor(m.now.Sub(m.zoomStartedAt), m.opts.ZoomRate, m.opts.MaxZoom)
	}
	if m.background != nil && !m.background.Static && m.opts.VideoFrame > 0 {
		f.VideoFrame = int(m.now.Sub(m.videoStartedAt) / m.opts.VideoFrame)
	}
	if m.showHelp {
		f.Footer = m.help.View(m.keys.Help(keymap.ModeFor(state.Phase), state.CanActivate()))
	}
	return f
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return view.Render(m.Frame())
}
