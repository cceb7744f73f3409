package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"typedterm/internal/system"
)

// Watcher signals when the config file changes. It watches the parent
// directory so editors that replace the file are seen too.
type Watcher struct {
	w    *fsnotify.Watcher
	ch   chan struct{}
	once sync.Once
}

// Watch starts watching path.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{w: fw, ch: make(chan struct{}, 1)}
	base := filepath.Clean(path)
	go func() {
		errs := fw.Errors
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					close(w.ch)
					return
				}
				if filepath.Clean(ev.Name) != base || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case w.ch <- struct{}{}:
				default:
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				system.Logger.Debug("config watch", "err", err)
			}
		}
	}()
	return w, nil
}

// Changes delivers one value per burst of changes. It is closed when the
// watcher is closed.
func (w *Watcher) Changes() <-chan struct{} { return w.ch }

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() { err = w.w.Close() })
	return err
}
