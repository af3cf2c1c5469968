package tui

import (
	"os"
	"os/signal"
	"syscall"

	tuimsg "github.com/Iron-Ham/splash/internal/tui/msg"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// NewApp creates the program for a model. Extra options are passed to
// Bubbletea after the alt-screen option.
func NewApp(model Model, altScreen bool, extra ...tea.ProgramOption) *App {
	var options []tea.ProgramOption
	if altScreen {
		options = append(options, tea.WithAltScreen())
	}
	options = append(options, extra...)

	return &App{
		program: tea.NewProgram(model, options...),
		model:   model,
	}
}

// Run starts the TUI application and blocks until it quits.
func (a *App) Run() error {
	// Unmount on termination so no scheduled transition outlives the view
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			a.program.Send(tuimsg.QuitMsg{Reason: sig.String()})
		case <-done:
		}
	}()

	_, err := a.program.Run()

	close(done)
	signal.Stop(sigChan)

	// Covers exits that bypass the model, such as a killed program
	a.model.ctrl.Unmount()
	if w := a.model.opts.Watcher; w != nil {
		_ = w.Close()
	}
	return err
}

// Quit asks the running program to unmount and exit.
func (a *App) Quit(reason string) {
	a.program.Send(tuimsg.QuitMsg{Reason: reason})
}
