package chromeua

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/macwinua/pkg/logger"
)

// ErrWatch is returned when a data file cannot be watched.
var ErrWatch = errors.New("failed to watch registry data file")

// Watcher reloads a ChromeUA from its data file whenever the file changes.
// A reload that fails to read or validate is logged and the registry keeps
// its previous state.
type Watcher struct {
	ua      *ChromeUA
	path    string
	name    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	onReload func(error)

	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatchLogger sets the watcher's logger. By default it uses the
// ChromeUA's logger.
func WithWatchLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithReloadHook registers a callback run after every reload attempt with
// its result.
func WithReloadHook(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher loads path into ua and starts watching it for changes.
// The parent directory is watched so that editors replacing the file
// atomically are picked up too.
func NewWatcher(ua *ChromeUA, path string, opts ...WatcherOption) (*Watcher, error) {
	if err := ua.UpdateFromFile(path); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Join(ErrWatch, err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, errors.Join(ErrWatch, err)
	}

	w := &Watcher{
		ua:      ua,
		path:    path,
		name:    filepath.Clean(path),
		logger:  ua.logger,
		watcher: fw,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(logger.Component("chromeua.watcher"), logger.Path(path))

	go w.loop()
	return w, nil
}

// Reload re-reads the data file immediately.
func (w *Watcher) Reload() error {
	err := w.ua.UpdateFromFile(w.path)
	if err != nil {
		w.logger.Warn("registry reload failed", logger.Error(err))
	} else {
		w.logger.Info("registry reloaded", logger.Revision(w.ua.Revision()))
	}
	if w.onReload != nil {
		w.onReload(err)
	}
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				_ = w.Reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", logger.Error(err))
		case <-w.stopCh:
			return
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}
