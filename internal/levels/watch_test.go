package levels_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/snake-puzzle/internal/levels"
)

func TestWatchReportsChangedLevel(t *testing.T) {
	dir := t.TempDir()
	loader := levels.NewLoader(dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan levels.Change, 4)
	done := make(chan error, 1)
	go func() {
		done <- loader.Watch(ctx, func(c levels.Change) { changes <- c })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	src := filepath.Join(getTestdataPath(), "a-basic.yaml")
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a-basic.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changes:
		if c.Err != nil || c.Removed {
			t.Fatalf("unexpected change: %+v", c)
		}
		if c.Level.ID != "a-basic" {
			t.Errorf("level id = %q", c.Level.ID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatchBuiltinFails(t *testing.T) {
	if err := levels.Builtin().Watch(context.Background(), func(levels.Change) {}); err == nil {
		t.Error("watching the built-in pack should fail")
	}
}
