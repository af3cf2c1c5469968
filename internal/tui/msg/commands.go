package msg

import (
	"context"
	"time"

	"github.com/Iron-Ham/splash/internal/assets"
	"github.com/Iron-Ham/splash/internal/splash"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval is roughly 30 frames per second.
const DefaultFrameInterval = 33 * time.Millisecond

// ScheduleTask returns a command that delivers task after its delay.
func ScheduleTask(task splash.Task) tea.Cmd {
	return tea.Tick(task.Delay, func(time.Time) tea.Msg {
		return TaskFiredMsg{Task: task}
	})
}

// ScheduleTasks batches one timer per task. It returns nil for no tasks.
func ScheduleTasks(tasks []splash.Task) tea.Cmd {
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(tasks))
	for i, task := range tasks {
		cmds[i] = ScheduleTask(task)
	}
	return tea.Batch(cmds...)
}

// Frame returns a command that sends a FrameMsg after interval.
func Frame(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// LoadAssets runs the loader off the event loop.
func LoadAssets(loader *assets.Loader) tea.Cmd {
	return func() tea.Msg {
		return AssetsLoadedMsg{Background: loader.Load(context.Background())}
	}
}

// WaitForAssetChange blocks until the watcher reports a change. It returns
// nil once the watcher is closed.
func WaitForAssetChange(w *assets.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return AssetChangedMsg{}
	}
}

// ExitAfter returns a command that asks the program to quit after delay.
func ExitAfter(delay time.Duration, generation uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ExitMsg{Generation: generation}
	})
}
