package organize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestScanner(t *testing.T, root string, mode SortMode, opts Options) *Scanner {
	t.Helper()
	s, err := NewScanner(root, mode, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func seedFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func skipReasons(entries []SkippedEntry) map[SkipReason]int {
	m := map[SkipReason]int{}
	for _, e := range entries {
		m[e.Reason]++
	}
	return m
}

func TestScanFlatDirectory(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "a.jpg", "b.pdf", "c.mp3")

	s := newTestScanner(t, dir, SortByType, Options{})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Moves) != 3 {
		t.Fatalf("planned %d moves, want 3", len(result.Moves))
	}
	if result.FoldersDetected {
		t.Error("FoldersDetected set for a flat directory")
	}
	for _, m := range result.Moves {
		if filepath.Dir(filepath.Dir(m.Destination)) != dir {
			t.Errorf("destination %q escapes root", m.Destination)
		}
	}
}

func TestScanRefusesNonDirectory(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "a.txt")

	_, err := NewScanner(filepath.Join(dir, "a.txt"), SortByType, Options{})
	if err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestScanRefusesProtectedRoot(t *testing.T) {
	if _, err := NewScanner("/", SortByType, Options{}); err == nil {
		t.Fatal("expected error for filesystem root")
	}
	if _, err := NewScanner("/etc", SortByType, Options{}); err == nil {
		t.Fatal("expected error for /etc")
	}
}

func TestScanDetectsFoldersInTypeMode(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "top.jpg", "nested/inner.pdf")

	s := newTestScanner(t, dir, SortByType, Options{})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if !result.FoldersDetected {
		t.Error("FoldersDetected not set")
	}
	if len(result.Moves) != 1 {
		t.Fatalf("planned %d moves, want 1 (top level only)", len(result.Moves))
	}
	if filepath.Base(result.Moves[0].Source) != "top.jpg" {
		t.Errorf("planned %q, want top.jpg", result.Moves[0].Source)
	}
}

func TestScanFlattenRecurses(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "top.jpg", "nested/inner.pdf", "nested/deeper/d.mp3")

	s := newTestScanner(t, dir, SortByType, Options{Flatten: true})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Moves) != 3 {
		t.Fatalf("planned %d moves, want 3", len(result.Moves))
	}
	if result.FoldersDetected {
		t.Error("FoldersDetected set despite flatten")
	}
}

func TestScanSkipsAlreadyOrganized(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "new.jpg", "Images/old.jpg")

	s := newTestScanner(t, dir, SortByType, Options{Flatten: true})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Moves) != 1 {
		t.Fatalf("planned %d moves, want 1", len(result.Moves))
	}
	if got := skipReasons(result.Skipped)[SkipAlreadyOrganized]; got != 1 {
		t.Errorf("already-organized skips = %d, want 1", got)
	}
}

func TestScanSkipsHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "visible.txt", ".hidden.txt")

	s := newTestScanner(t, dir, SortByType, Options{})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Moves) != 1 {
		t.Fatalf("planned %d moves, want 1", len(result.Moves))
	}
	if got := skipReasons(result.Skipped)[SkipHiddenFile]; got != 1 {
		t.Errorf("hidden skips = %d, want 1", got)
	}

	// Same tree with hidden files included.
	s = newTestScanner(t, dir, SortByType, Options{IncludeHidden: true})
	result, err = s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Moves) != 2 {
		t.Fatalf("planned %d moves with hidden included, want 2", len(result.Moves))
	}
}

func TestScanSkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "real.txt")
	if err := os.Symlink(filepath.Join(dir, "real.txt"), filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	s := newTestScanner(t, dir, SortByType, Options{})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Moves) != 1 {
		t.Fatalf("planned %d moves, want 1", len(result.Moves))
	}
	if got := skipReasons(result.Skipped)[SkipSymlink]; got != 1 {
		t.Errorf("symlink skips = %d, want 1", got)
	}
}

func TestScanExcludePolicySilent(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "keep.txt", "Thumbs.db", "draft~.txt", "cache.tmp")

	s := newTestScanner(t, dir, SortByType, Options{
		Exclude: ExcludePolicy{
			Files:    []string{"Thumbs.db"},
			Patterns: []string{`~`},
			Globs:    []string{"*.tmp"},
		},
	})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Moves) != 1 {
		t.Fatalf("planned %d moves, want 1", len(result.Moves))
	}
	// Excluded files were never candidates; no skip entries for them.
	if len(result.Skipped) != 0 {
		t.Errorf("excluded files produced %d skip entries", len(result.Skipped))
	}
}

func TestScanPreservingFolders(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "loose.jpg", "vacation/a.jpg", "vacation/b.jpg", "2023/already.txt")

	s := newTestScanner(t, dir, SortByDate, Options{PreserveFolders: true})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Moves) != 1 {
		t.Fatalf("planned %d file moves, want 1", len(result.Moves))
	}
	if len(result.FolderMoves) != 1 {
		t.Fatalf("planned %d folder moves, want 1 (year folders stay)", len(result.FolderMoves))
	}
	fm := result.FolderMoves[0]
	if filepath.Base(fm.Source) != "vacation" {
		t.Errorf("folder move source = %q", fm.Source)
	}
	if fm.FileCount != 2 {
		t.Errorf("folder FileCount = %d, want 2", fm.FileCount)
	}
}

func TestScanFlattenOverridesPreserveFolders(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "vacation/a.jpg", "vacation/b.jpg")

	s := newTestScanner(t, dir, SortByDate, Options{Flatten: true, PreserveFolders: true})
	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.FolderMoves) != 0 {
		t.Errorf("planned %d folder moves despite flatten", len(result.FolderMoves))
	}
	if len(result.Moves) != 2 {
		t.Errorf("planned %d file moves, want 2", len(result.Moves))
	}
}

func TestScanCancellation(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "a.txt", "b.txt", "c.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, dir, SortByType, Options{})
	if _, err := s.Scan(ctx, nil); err == nil {
		t.Fatal("expected error from cancelled scan")
	}
}

func TestScanReportsProgress(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "a.txt", "b.txt")

	var calls int
	var lastSeen int
	s := newTestScanner(t, dir, SortByType, Options{})
	_, err := s.Scan(context.Background(), func(status string, seen int) {
		calls++
		lastSeen = seen
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("progress called %d times, want 2", calls)
	}
	if lastSeen != 2 {
		t.Errorf("final seen = %d, want 2", lastSeen)
	}
}
