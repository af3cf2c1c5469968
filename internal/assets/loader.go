package assets

import (
	"context"
	"net/http"
	"time"

	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/sourcegraph/conc"
)

// DefaultFetchTimeout bounds a remote fallback fetch when no timeout is set.
const DefaultFetchTimeout = 3 * time.Second

// Loader resolves the background to show: the video when it loads, else the
// configured fallback image, else the builtin image.
type Loader struct {
	Video    string
	Fallback string
	Timeout  time.Duration
	Client   *http.Client
	Logger   *logging.Logger
}

// Load loads the video and fallback concurrently and returns the best
// background available. A fallback fetch still in flight is cancelled as
// soon as the video loads. It never returns nil.
func (l *Loader) Load(ctx context.Context) *Background {
	logger := l.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		video, image       *Background
		videoErr, imageErr error
	)

	var wg conc.WaitGroup
	if l.Video != "" {
		wg.Go(func() {
			video, videoErr = LoadVideo(l.Video)
			if videoErr == nil {
				cancel()
			}
		})
	}
	if l.Fallback != "" {
		wg.Go(func() { image, imageErr = LoadImage(ctx, l.Client, l.Fallback) })
	}
	if r := wg.WaitAndRecover(); r != nil {
		logger.Error("background loading panicked", "panic", r.String())
	}

	if video != nil {
		logger.Debug("background video loaded",
			"source", video.Source, "frames", video.Len(), "width", video.Width, "height", video.Height)
		return video
	}
	if videoErr != nil {
		logger.Warn("background video unavailable, using fallback", "error", videoErr)
	}

	if image != nil {
		logger.Debug("fallback image loaded", "source", image.Source)
		return image
	}
	if imageErr != nil {
		logger.Warn("fallback image unavailable, using builtin", "error", imageErr)
	}
	return Builtin()
}
