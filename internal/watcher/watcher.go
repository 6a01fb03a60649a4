// Package watcher polls a workspace for file changes and triggers
// re-analysis, the engine's path to staying current outside of an
// editor's own document-change notifications.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/DeusData/envscope/internal/discover"
	"github.com/DeusData/envscope/internal/engine"
)

const maxInterval = 60 * time.Second

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

// Watcher polls one workspace root for file changes and re-analyzes the
// files that changed since the last poll, via the wrapped Engine.
type Watcher struct {
	root         string
	eng          *engine.Engine
	baseInterval time.Duration
	snapshot     map[string]fileSnapshot
	interval     time.Duration
	nextPoll     time.Time
}

// New creates a Watcher over root, re-analyzing through eng. baseInterval
// is the poll tick; 0 uses a 1 second default.
func New(root string, eng *engine.Engine, baseInterval time.Duration) *Watcher {
	if baseInterval <= 0 {
		baseInterval = 1 * time.Second
	}
	return &Watcher{root: root, eng: eng, baseInterval: baseInterval}
}

// Run blocks until ctx is cancelled, polling the workspace at its
// adaptive interval.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.baseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if time.Now().Before(w.nextPoll) {
				continue
			}
			w.poll(ctx)
		}
	}
}

// poll captures a snapshot of the workspace and compares it with the
// previous one. The first poll establishes a baseline by running a full
// repository scan; subsequent polls re-scan only when something changed.
func (w *Watcher) poll(ctx context.Context) {
	if _, err := os.Stat(w.root); err != nil {
		slog.Warn("watcher.root_gone", "root", w.root)
		w.nextPoll = time.Now().Add(maxInterval)
		return
	}

	snap, err := captureSnapshot(ctx, w.root)
	if err != nil {
		slog.Warn("watcher.snapshot", "root", w.root, "err", err)
		w.nextPoll = time.Now().Add(w.interval)
		return
	}

	interval := pollInterval(len(snap))

	if w.snapshot == nil {
		slog.Info("watcher.baseline", "root", w.root, "files", len(snap))
		if _, scanErr := w.eng.ScanRepository(ctx, w.root); scanErr != nil {
			slog.Warn("watcher.scan", "root", w.root, "err", scanErr)
		}
		w.snapshot = snap
		w.interval = interval
		w.nextPoll = time.Now().Add(interval)
		return
	}

	if snapshotsEqual(w.snapshot, snap) {
		w.interval = interval
		w.nextPoll = time.Now().Add(interval)
		return
	}

	slog.Info("watcher.changed", "root", w.root, "files", len(snap))
	if _, scanErr := w.eng.ScanRepository(ctx, w.root); scanErr != nil {
		slog.Warn("watcher.scan", "root", w.root, "err", scanErr)
		w.nextPoll = time.Now().Add(interval)
		return
	}

	w.snapshot = snap
	w.interval = interval
	w.nextPoll = time.Now().Add(interval)
}

// captureSnapshot walks the workspace using discover.Discover and captures
// mtime+size for each file.
func captureSnapshot(ctx context.Context, rootPath string) (map[string]fileSnapshot, error) {
	files, err := discover.Discover(ctx, rootPath, nil)
	if err != nil {
		return nil, err
	}

	snap := make(map[string]fileSnapshot, len(files))
	for _, f := range files {
		info, statErr := os.Stat(f.Path)
		if statErr != nil {
			continue
		}
		snap[f.RelPath] = fileSnapshot{
			modTime: info.ModTime(),
			size:    info.Size(),
		}
	}
	return snap, nil
}

// snapshotsEqual returns true if two snapshots have identical files with
// the same mtime and size.
func snapshotsEqual(a, b map[string]fileSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for path, aSnap := range a {
		bSnap, ok := b[path]
		if !ok {
			return false
		}
		if !aSnap.modTime.Equal(bSnap.modTime) || aSnap.size != bSnap.size {
			return false
		}
	}
	return true
}

// pollInterval computes the adaptive interval from file count: 1s base
// plus 1s per 500 files, capped at 60s.
func pollInterval(fileCount int) time.Duration {
	ms := 1000 + (fileCount/500)*1000
	if ms > 60000 {
		ms = 60000
	}
	return time.Duration(ms) * time.Millisecond
}
