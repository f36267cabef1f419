package codebase

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the workspace roots and feeds changed files into
// the workspace. After a pass that changed anything it rebuilds the
// snapshot, so requests after the next tick see the new model.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(w *Workspace) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

// scan reports whether any file was added, changed or removed.
func (w *FileWatcher) scan() bool {
	currentFiles := make(map[string]bool)
	changed := false

	for _, root := range w.workspace.Roots() {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".java" {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}

			currentFiles[path] = true

			lastMod, known := w.modTimes[path]
			if !known || info.ModTime().After(lastMod) {
				w.modTimes[path] = info.ModTime()
				if err := w.workspace.ScanFile(path); err != nil {
					log.Warningf("%s", err)
					return nil
				}
				changed = true
			}
			return nil
		})
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.workspace.RemoveFile(path)
			changed = true
		}
	}

	if changed {
		if _, err := w.workspace.Snapshot(context.Background()); err != nil {
			log.Errorf("%s", err)
		}
	}
	return changed
}
