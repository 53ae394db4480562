package journal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testRecord(root string, moves ...Move) Record {
	return Record{
		Timestamp:  time.Now(),
		SourceRoot: root,
		SortMode:   "by-type",
		FileCount:  len(moves),
		Moves:      moves,
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	rec := testRecord("/src", Move{Original: "/src/a.jpg", Destination: "/src/Images/a.jpg"})
	id, err := store.Save(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(id, "backup_") {
		t.Errorf("id = %q, want backup_ prefix", id)
	}

	loaded, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Version != 1 {
		t.Errorf("Version = %d, want 1", loaded.Version)
	}
	if loaded.SourceRoot != "/src" {
		t.Errorf("SourceRoot = %q", loaded.SourceRoot)
	}
	if len(loaded.Moves) != 1 || loaded.Moves[0].Destination != "/src/Images/a.jpg" {
		t.Errorf("Moves = %+v", loaded.Moves)
	}
}

func TestStoreRejectsEmptyRecord(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.Save(testRecord("/src"))
	if !errors.Is(err, ErrEmptyJournal) {
		t.Fatalf("err = %v, want ErrEmptyJournal", err)
	}
}

func TestStoreDisambiguatesSameSecond(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := testRecord("/src", Move{Original: "/src/a", Destination: "/src/b"})
	rec.Timestamp = ts

	first, err := store.Save(rec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Save(rec)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("identical ids for two saves: %s", first)
	}
	if want := first + "_1"; second != want {
		t.Errorf("second id = %q, want %q", second, want)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	old := testRecord("/old", Move{Original: "/old/a", Destination: "/old/b"})
	old.Timestamp = time.Now().Add(-48 * time.Hour)
	recent := testRecord("/recent", Move{Original: "/recent/a", Destination: "/recent/b"})

	if _, err := store.Save(old); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(recent); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("listed %d journals, want 2", len(summaries))
	}
	if summaries[0].SourceRoot != "/recent" {
		t.Errorf("first summary = %q, want the newest", summaries[0].SourceRoot)
	}
}

func TestStoreListSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save(testRecord("/src", Move{Original: "a", Destination: "b"})); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "backup_19990101_000000.json")
	if err := os.WriteFile(garbage, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Errorf("listed %d journals, want 1 (malformed skipped)", len(summaries))
	}
}

func TestStoreDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	id, err := store.Save(testRecord("/src", Move{Original: "a", Destination: "b"}))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(id); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete = %v, want ErrNotFound", err)
	}
}

func TestStorePrune(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	stale := testRecord("/stale", Move{Original: "a", Destination: "b"})
	stale.Timestamp = time.Now().Add(-90 * 24 * time.Hour)
	fresh := testRecord("/fresh", Move{Original: "a", Destination: "b"})

	if _, err := store.Save(stale); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(fresh); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Prune(30 * 24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("pruned %d journals, want 1", removed)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].SourceRoot != "/fresh" {
		t.Errorf("surviving journals = %+v", summaries)
	}
}

func TestNewStoreRequiresDir(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
