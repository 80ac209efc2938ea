package scheduler

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/linkhub/internal/logger"
	"github.com/MrSnakeDoc/linkhub/internal/utils"
)

// fileWatcher reports changes to a single file.
// The parent directory is watched because editors and config management
// replace files by rename, which drops a watch set on the file itself.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	done    chan struct{}
}

func newFileWatcher(path string) (*fileWatcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		utils.Close(w)
		return nil, err
	}

	return &fileWatcher{
		watcher: w,
		target:  target,
		done:    make(chan struct{}),
	}, nil
}

// Changes emits once per burst of events on the target file, after the
// file has been quiet for debounce.
func (fw *fileWatcher) Changes(debounce time.Duration, log logger.Logger) <-chan struct{} {
	out := make(chan struct{}, 1)

	go func() {
		timer := time.NewTimer(debounce)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case ev, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != fw.target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				log.Debug("directory file changed", logger.String("event", ev.String()))
				timer.Reset(debounce)
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				log.Warn("directory file watch error", logger.Error(err))
			case <-timer.C:
				select {
				case out <- struct{}{}:
				default: // a reload is already pending
				}
			case <-fw.done:
				return
			}
		}
	}()

	return out
}

// Close stops the watcher and its goroutine.
func (fw *fileWatcher) Close() {
	close(fw.done)
	utils.Close(fw.watcher)
}
