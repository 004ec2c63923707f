package levels

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports a level file that was written, created or removed.
type Change struct {
	Path    string
	Removed bool
	Level   Level // valid when Err is nil and Removed is false
	Err     error
}

// debounce collapses the burst of events editors emit for one save.
const debounce = 150 * time.Millisecond

// Watch reports changes to level files under the loader root until ctx is
// done. It only watches the top-level directory. The built-in pack cannot be
// watched.
func (l *Loader) Watch(ctx context.Context, fn func(Change)) error {
	if l.embedded {
		return errors.New("levels: built-in pack cannot be watched")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("levels: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.Root); err != nil {
		return fmt.Errorf("levels: watch %s: %w", l.Root, err)
	}
	l.Logger.Debug("watching levels", "dir", l.Root)

	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSupportedExtension(strings.ToLower(filepath.Ext(event.Name))) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[event.Name] |= event.Op
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.Logger.Warn("level watcher error", "err", err)

		case <-timer.C:
			for name, op := range pending {
				fn(l.change(name, op))
			}
			clear(pending)
		}
	}
}

func (l *Loader) change(name string, op fsnotify.Op) Change {
	if op&(fsnotify.Remove|fsnotify.Rename) != 0 && op&(fsnotify.Create|fsnotify.Write) == 0 {
		return Change{Path: name, Removed: true}
	}
	lvl, err := l.LoadFile(name)
	if err != nil {
		l.Logger.Warn("changed level is invalid", "path", name, "err", err)
		return Change{Path: name, Err: err}
	}
	l.Logger.Info("level changed", "id", lvl.ID, "path", name)
	return Change{Path: name, Level: lvl}
}
