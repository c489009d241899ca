package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// catalogWatcher signals when one file is written, created or renamed into
// place. Editors often replace files, so the parent directory is watched.
type catalogWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
}

func watchCatalog(path string) (*catalogWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	cw := &catalogWatcher{
		watcher: w,
		path:    abs,
		changes: make(chan struct{}, 1),
	}
	go cw.loop()
	return cw, nil
}

// Changes delivers at most one pending notification; bursts coalesce.
func (c *catalogWatcher) Changes() <-chan struct{} {
	return c.changes
}

func (c *catalogWatcher) Close() error {
	return c.watcher.Close()
}

func (c *catalogWatcher) loop() {
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != c.path {
				continue
			}
			select {
			case c.changes <- struct{}{}:
			default:
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("boutique: watcher error: %v", err)
		}
	}
}
