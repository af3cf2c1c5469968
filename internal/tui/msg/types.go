package msg

import (
	"time"

	"github.com/Iron-Ham/splash/internal/assets"
	"github.com/Iron-Ham/splash/internal/splash"
)

// TaskFiredMsg is sent when a scheduled one-shot task comes due.
type TaskFiredMsg struct {
	Task splash.Task
}

// FrameMsg drives animation: background looping, button fades and zoom.
type FrameMsg time.Time

// AssetsLoadedMsg carries the background chosen by the asset loader.
type AssetsLoadedMsg struct {
	Background *assets.Background
}

// AssetChangedMsg signals that a watched asset file changed on disk.
type AssetChangedMsg struct{}

// ExitMsg asks the program to quit after the black screen has been shown.
type ExitMsg struct {
	Generation uint64
}

// QuitMsg asks the program to unmount and quit, for example on a signal.
type QuitMsg struct {
	Reason string
}
