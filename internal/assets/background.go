// Package assets loads the splash background.
//
// The background "video" is a text file of ASCII frames separated by lines
// holding only [FrameSeparator]; it loops behind the welcome button. When it
// cannot be loaded a static fallback image is shown instead: a file, an
// http(s) URL, or the image built into the binary. Loading never fails from
// the caller's point of view; failures are logged and degrade silently.
package assets

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/splash/internal/errors"
	"github.com/mattn/go-runewidth"
)

// FrameSeparator is the line that separates frames in a video file.
const FrameSeparator = "%%"

// BuiltinSource names the embedded fallback image in logs.
const BuiltinSource = "builtin"

//go:embed fallback.txt
var builtinImage string

// Background is a loaded background: one or more frames of equal size.
type Background struct {
	// Frames holds each frame as lines padded to Width columns.
	Frames [][]string
	Width  int
	Height int
	// Source is the path or URL the frames came from.
	Source string
	// Static is true for fallback images, which never animate.
	Static bool
}

// Len returns the number of frames.
func (b *Background) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Frames)
}

// Frame returns frame i, wrapping around so callers can loop forever.
func (b *Background) Frame(i int) []string {
	n := b.Len()
	if n == 0 {
		return nil
	}
	i %= n
	if i < 0 {
		i += n
	}
	return b.Frames[i]
}

// ParseFrames reads separator-delimited frames from r. Empty frames are
// dropped; every line is right-padded to the widest line across all frames
// and every frame to the tallest frame.
func ParseFrames(r io.Reader) ([][]string, error) {
	var frames [][]string
	var current []string

	flush := func() {
		for len(current) > 0 && strings.TrimSpace(current[len(current)-1]) == "" {
			current = current[:len(current)-1]
		}
		if len(current) > 0 {
			frames = append(frames, current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == FrameSeparator {
			flush()
			continue
		}
		current = append(current, strings.ReplaceAll(line, "\t", "    "))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(frames) == 0 {
		return nil, errors.ErrAssetEmpty
	}
	return normalize(frames), nil
}

func normalize(frames [][]string) [][]string {
	width, height := 0, 0
	for _, f := range frames {
		height = max(height, len(f))
		for _, line := range f {
			width = max(width, runewidth.StringWidth(line))
		}
	}

	out := make([][]string, len(frames))
	for i, f := range frames {
		lines := make([]string, height)
		for y := range lines {
			line := ""
			if y < len(f) {
				line = f[y]
			}
			lines[y] = runewidth.FillRight(line, width)
		}
		out[i] = lines
	}
	return out
}

func newBackground(frames [][]string, source string, static bool) *Background {
	b := &Background{Frames: frames, Source: source, Static: static}
	if len(frames) > 0 {
		b.Height = len(frames[0])
		if b.Height > 0 {
			b.Width = runewidth.StringWidth(frames[0][0])
		}
	}
	return b
}

// LoadVideo loads an animated background from a frame file.
func LoadVideo(path string) (*Background, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewAssetError("load video", path, errors.ErrAssetNotFound)
		}
		return nil, errors.NewAssetError("load video", path, err)
	}
	defer func() { _ = f.Close() }()

	frames, err := ParseFrames(f)
	if err != nil {
		return nil, errors.NewAssetError("load video", path, err)
	}
	return newBackground(frames, path, false), nil
}

// Builtin returns the image compiled into the binary.
func Builtin() *Background {
	frames, err := ParseFrames(strings.NewReader(builtinImage))
	if err != nil {
		panic(fmt.Sprintf("embedded fallback image is invalid: %v", err))
	}
	return newBackground(frames[:1], BuiltinSource, true)
}
