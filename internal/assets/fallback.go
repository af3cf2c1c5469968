package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Iron-Ham/splash/internal/errors"
)

// maxImageBytes bounds remote fallback downloads.
const maxImageBytes = 1 << 20

// LoadImage loads a static fallback image from a file or an http(s) URL.
// Only the first frame of the source is kept.
func LoadImage(ctx context.Context, client *http.Client, source string) (*Background, error) {
	var data []byte
	var err error

	if isRemote(source) {
		data, err = fetch(ctx, client, source)
	} else {
		data, err = os.ReadFile(source)
		if os.IsNotExist(err) {
			err = errors.ErrAssetNotFound
		}
	}
	if err != nil {
		return nil, errors.NewAssetError("load image", source, err)
	}

	frames, err := ParseFrames(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewAssetError("load image", source, err)
	}
	return newBackground(frames[:1], source, true), nil
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrFetchFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errors.ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrFetchFailed, err)
	}
	return data, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
