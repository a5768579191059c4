package video

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAgedFiles(t *testing.T, dir string, count int, base time.Time) []string {
	t.Helper()
	names := make([]string, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("trimmed_video_%02d.mp4", i)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		// Spread modification times one minute apart, oldest first.
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, mt, mt); err != nil {
			t.Fatal(err)
		}
		names[i] = name
	}
	return names
}

func TestRetentionService_Prune(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-24 * time.Hour)
	names := writeAgedFiles(t, dir, 15, base)

	svc := NewRetentionService(dir, 10, testLogger())
	removed := svc.Prune()

	if removed != 5 {
		t.Errorf("Prune() removed %d files, want 5", removed)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 10 {
		t.Fatalf("expected 10 files after prune, got %d", len(entries))
	}

	// The five oldest must be gone, the ten newest kept.
	for _, name := range names[:5] {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be pruned", name)
		}
	}
	for _, name := range names[5:] {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be kept: %v", name, err)
		}
	}
}

func TestRetentionService_Prune_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	writeAgedFiles(t, dir, 10, time.Now().Add(-time.Hour))

	svc := NewRetentionService(dir, 10, testLogger())
	if removed := svc.Prune(); removed != 0 {
		t.Errorf("Prune() removed %d files, want 0", removed)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 10 {
		t.Errorf("expected all 10 files kept, got %d", len(entries))
	}
}

func TestRetentionService_Prune_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeAgedFiles(t, dir, 3, time.Now().Add(-time.Hour))
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	svc := NewRetentionService(dir, 2, testLogger())
	if removed := svc.Prune(); removed != 1 {
		t.Errorf("Prune() removed %d files, want 1", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, "subdir")); err != nil {
		t.Errorf("expected subdirectory to be untouched: %v", err)
	}
}

func TestRetentionService_Prune_MissingDirectory(t *testing.T) {
	svc := NewRetentionService(filepath.Join(t.TempDir(), "nope"), 10, testLogger())
	// Best-effort contract: a missing directory is logged, never fatal.
	if removed := svc.Prune(); removed != 0 {
		t.Errorf("Prune() removed %d files, want 0", removed)
	}
}
