package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.txt")
	if err := os.WriteFile(path, []byte("1 -1 -2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var fired int32
	w, err := New(path, 20*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	if err := os.WriteFile(path, []byte("1 -1 2 -1 -2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(&fired) > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("onChanged was never called after the database file was rewritten")
}
