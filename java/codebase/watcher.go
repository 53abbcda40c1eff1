package codebase

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeFunc is told about every file the watcher rescans or drops.
type ChangeFunc func(path string, removed bool)

// FileWatcher polls the codebase root and keeps module-info files in
// sync with the disk.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	onChange     ChangeFunc

	mu       sync.Mutex // serializes polls; guards modTimes
	modTimes map[string]time.Time
}

func NewFileWatcher(c *Codebase, interval time.Duration, onChange ChangeFunc) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: interval,
		onChange:     onChange,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Poll()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll performs one scan: new and modified files are parsed again and
// vanished files are removed. It is safe to call while the watcher runs.
func (w *FileWatcher) Poll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	current := make(map[string]bool)

	filepath.WalkDir(w.codebase.RootDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.codebase.RootDir() && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsModuleInfo(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		current[path] = true

		lastMod, known := w.modTimes[path]
		if !known || !info.ModTime().Equal(lastMod) {
			w.modTimes[path] = info.ModTime()
			if err := w.codebase.ScanFile(path); err != nil {
				log.Warningf("rescan %s: %v", path, err)
				return nil
			}
			w.notify(path, false)
		}
		return nil
	})

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.notify(path, true)
		}
	}
}

func (w *FileWatcher) notify(path string, removed bool) {
	if w.onChange != nil {
		w.onChange(path, removed)
	}
}
