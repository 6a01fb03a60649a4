package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DeusData/envscope/internal/config"
	"github.com/DeusData/envscope/internal/engine"
)

func TestSnapshotsEqual(t *testing.T) {
	now := time.Now()

	a := map[string]fileSnapshot{
		"main.go": {modTime: now, size: 100},
		"util.go": {modTime: now, size: 200},
	}
	b := map[string]fileSnapshot{
		"main.go": {modTime: now, size: 100},
		"util.go": {modTime: now, size: 200},
	}
	if !snapshotsEqual(a, b) {
		t.Error("identical snapshots should be equal")
	}

	// Different size
	c := map[string]fileSnapshot{
		"main.go": {modTime: now, size: 101},
		"util.go": {modTime: now, size: 200},
	}
	if snapshotsEqual(a, c) {
		t.Error("different size should not be equal")
	}

	// Different mtime
	d := map[string]fileSnapshot{
		"main.go": {modTime: now.Add(time.Second), size: 100},
		"util.go": {modTime: now, size: 200},
	}
	if snapshotsEqual(a, d) {
		t.Error("different mtime should not be equal")
	}

	// Missing file
	e := map[string]fileSnapshot{
		"main.go": {modTime: now, size: 100},
	}
	if snapshotsEqual(a, e) {
		t.Error("different file count should not be equal")
	}

	// Extra file
	f := map[string]fileSnapshot{
		"main.go": {modTime: now, size: 100},
		"util.go": {modTime: now, size: 200},
		"new.go":  {modTime: now, size: 50},
	}
	if snapshotsEqual(a, f) {
		t.Error("extra file should not be equal")
	}

	// Both empty
	if !snapshotsEqual(map[string]fileSnapshot{}, map[string]fileSnapshot{}) {
		t.Error("both empty should be equal")
	}
}

func TestPollInterval(t *testing.T) {
	tests := []struct {
		files    int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{70, 1 * time.Second},
		{499, 1 * time.Second},
		{500, 2 * time.Second},
		{2000, 5 * time.Second},
		{5000, 11 * time.Second},
		{10000, 21 * time.Second},
		{50000, 60 * time.Second},
		{100000, 60 * time.Second},
	}
	for _, tt := range tests {
		got := pollInterval(tt.files)
		if got != tt.expected {
			t.Errorf("pollInterval(%d) = %v, want %v", tt.files, got, tt.expected)
		}
	}
}

func TestCaptureSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	// Create a Go file that discover.Discover will pick up
	if err := os.WriteFile(filepath.Join(tmpDir, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	snap, err := captureSnapshot(context.Background(), tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if len(snap) != 1 {
		t.Fatalf("expected 1 file, got %d", len(snap))
	}

	s, ok := snap["main.go"]
	if !ok {
		t.Fatal("expected main.go in snapshot")
	}
	if s.size == 0 {
		t.Error("expected non-zero size")
	}
	if s.modTime.IsZero() {
		t.Error("expected non-zero modtime")
	}
}

func TestCaptureSnapshotDetectsChanges(t *testing.T) {
	tmpDir := t.TempDir()
	goFile := filepath.Join(tmpDir, "main.go")
	if err := os.WriteFile(goFile, []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	snap1, err := captureSnapshot(context.Background(), tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	// Ensure mtime advances (some filesystems have 1s granularity)
	time.Sleep(10 * time.Millisecond)
	now := time.Now().Add(time.Second)
	if err := os.Chtimes(goFile, now, now); err != nil {
		t.Fatal(err)
	}

	snap2, err := captureSnapshot(context.Background(), tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if snapshotsEqual(snap1, snap2) {
		t.Error("snapshots should differ after mtime change")
	}
}

func TestWatcherBaselineAndChangeTriggerScan(t *testing.T) {
	tmpDir := t.TempDir()
	goFile := filepath.Join(tmpDir, "main.go")
	if err := os.WriteFile(goFile, []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	eng := engine.New(config.Default())
	w := New(tmpDir, eng, time.Second)
	ctx := context.Background()

	// First poll establishes the baseline with a full scan.
	w.poll(ctx)
	if got := eng.DocumentCount(); got != 1 {
		t.Fatalf("DocumentCount after baseline poll = %d, want 1", got)
	}

	// No changes: the snapshot stays put and nothing new appears.
	w.nextPoll = time.Time{}
	w.poll(ctx)
	if got := eng.DocumentCount(); got != 1 {
		t.Fatalf("DocumentCount after no-change poll = %d, want 1", got)
	}

	// A new file shows up in the next poll's scan.
	if err := os.WriteFile(filepath.Join(tmpDir, "util.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	w.nextPoll = time.Time{}
	w.poll(ctx)
	if got := eng.DocumentCount(); got != 2 {
		t.Fatalf("DocumentCount after new-file poll = %d, want 2", got)
	}
}

func TestWatcherCancellation(t *testing.T) {
	eng := engine.New(config.Default())
	w := New(t.TempDir(), eng, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
		// OK — goroutine exited cleanly
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop after context cancellation")
	}
}

func TestWatcherSkipsMissingRoot(t *testing.T) {
	eng := engine.New(config.Default())
	w := New("/nonexistent/path", eng, time.Second)

	w.poll(context.Background())
	if got := eng.DocumentCount(); got != 0 {
		t.Errorf("should not scan a missing root, got %d documents", got)
	}
	if w.nextPoll.IsZero() {
		t.Error("missing root should back the poller off")
	}
}
