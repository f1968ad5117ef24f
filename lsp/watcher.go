package lsp

import (
	"os"
	"time"
)

// FileWatcher polls the workspace root for added, changed and deleted
// sources and applies each round of changes as one workspace update.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(w *Workspace, interval time.Duration) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

// Start polls in the background until Stop. Files recorded by prime are
// only rescanned once they change.
func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.scan()
		}
	}
}

// prime records the modification times of the current sources without
// scanning them, for use before a full Workspace.ScanAll.
func (fw *FileWatcher) prime() {
	walkSources(fw.workspace.RootDir(), func(path string, info os.FileInfo) {
		fw.modTimes[path] = info.ModTime()
	})
}

// scan collects the sources that appeared or changed since the last round
// and those that disappeared, then updates the workspace once.
func (fw *FileWatcher) scan() {
	seen := make(map[string]bool)
	changed := make(map[string][]byte)

	walkSources(fw.workspace.RootDir(), func(path string, info os.FileInfo) {
		seen[path] = true
		if last, ok := fw.modTimes[path]; ok && !info.ModTime().After(last) {
			return
		}
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warningf("%s", err)
			return
		}
		fw.modTimes[path] = info.ModTime()
		changed[path] = content
	})

	var removed []string
	for path := range fw.modTimes {
		if !seen[path] {
			delete(fw.modTimes, path)
			removed = append(removed, path)
		}
	}

	if len(changed) == 0 && len(removed) == 0 {
		return
	}
	log.Debugf("rescanning %d files, removing %d", len(changed), len(removed))
	fw.workspace.Update(changed, removed)
}
