package site

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload reports the outcome of re-reading a watched catalogue.
type Reload struct {
	File  string
	Added int
	Err   error
}

// Watcher re-reads a site catalogue into a registry whenever the file is
// written. Existing sites are never removed or replaced.
type Watcher struct {
	File    string
	Reloads <-chan Reload

	registry *Registry
	reloads  chan Reload
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher for path feeding r.
func NewWatcher(r *Registry, path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		File:     abs,
		Reloads:  ch,
		registry: r,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start watches the catalogue's directory, so editors that replace the file
// are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < debounce {
				continue
			}
			pending = time.Time{}
			added, err := w.registry.LoadCatalogFile(w.File)
			select {
			case w.reloads <- Reload{File: w.File, Added: added, Err: err}:
			default:
				// Drop when nobody is listening.
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
