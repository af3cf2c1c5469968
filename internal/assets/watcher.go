package assets

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 50 * time.Millisecond

// Watcher reports when any of a set of asset files changes on disk.
//
// Parent directories are watched rather than the files themselves so that
// editors which replace files on save are still observed.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changes chan struct{}
	stopCh  chan struct{}
	logger  *logging.Logger

	closeOnce sync.Once
}

// NewWatcher starts watching the given files. Empty paths and remote URLs
// are skipped.
func NewWatcher(logger *logging.Logger, paths ...string) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		files:   make(map[string]bool),
		changes: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		logger:  logger,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" || isRemote(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

// Changes delivers one value per burst of changes. Bursts that arrive while
// a previous notification is unread are merged into it. The channel is
// closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.changes)

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-w.stopCh:
			debounce.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			pending = true
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("asset watcher error", "error", err)
		}
	}
}
