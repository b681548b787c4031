package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after a write before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads an options file into a Store whenever it changes.
type Watcher struct {
	path     string
	store    *Store
	debounce time.Duration
	onError  func(error)

	watcher *fsnotify.Watcher
	closeCh chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// WatchFile starts watching path. The directory is watched so that editors
// which replace the file on save are still seen. onError receives parse
// failures; the store keeps its previous options in that case.
func WatchFile(path string, store *Store, onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if onError == nil {
		onError = func(error) {}
	}
	w := &Watcher{
		path:     abs,
		store:    store,
		debounce: DefaultDebounce,
		onError:  onError,
		watcher:  fsw,
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	opts, err := Load(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	w.store.Replace(opts)
}
