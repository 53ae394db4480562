// Package journal persists the durable record of an organize batch and
// replays it in reverse. A journal is written once, after the batch's moves
// are known to have succeeded, and is the sole source for restore.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	recordVersion = 1
	filePrefix    = "backup_"
	fileExt       = ".json"
	idTimeFormat  = "20060102_150405"
)

var (
	// ErrEmptyJournal is returned when asked to persist a batch that moved
	// nothing; a journal referencing zero moves has nothing to restore.
	ErrEmptyJournal = errors.New("refusing to save journal with no moves")

	// ErrNotFound is returned when no journal matches the given id.
	ErrNotFound = errors.New("journal not found")
)

// Move is one recorded (original, destination) pair.
type Move struct {
	Original    string `json:"original"`
	Destination string `json:"destination"`
}

// FolderMove is one recorded directory move.
type FolderMove struct {
	Original    string `json:"original"`
	Destination string `json:"destination"`
	FileCount   int    `json:"file_count"`
}

// Skipped preserves why an entry was left out of the batch.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Record is the persisted journal. Unknown extra fields in stored files are
// ignored on load for forward compatibility.
type Record struct {
	Version     int          `json:"version"`
	RunID       string       `json:"run_id,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	SourceRoot  string       `json:"source_root"`
	SortMode    string       `json:"sort_mode"`
	FileCount   int          `json:"file_count"`
	Moves       []Move       `json:"moves"`
	FolderMoves []FolderMove `json:"folder_moves,omitempty"`
	Skipped     []Skipped    `json:"skipped,omitempty"`
}

// Summary is the listing view of one journal file.
type Summary struct {
	ID         string
	Path       string
	Timestamp  time.Time
	SourceRoot string
	SortMode   string
	FileCount  int
}

// Store reads and writes journal files in a single directory, injected at
// construction so tests can point it anywhere.
type Store struct {
	dir string
}

// NewStore creates the journal directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("journal directory not configured")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists a record keyed by its creation timestamp and returns the
// journal id. It must be called only after the batch completed; an empty
// move list is rejected.
func (s *Store) Save(rec Record) (string, error) {
	if len(rec.Moves) == 0 && len(rec.FolderMoves) == 0 {
		return "", ErrEmptyJournal
	}

	rec.Version = recordVersion
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	id := filePrefix + rec.Timestamp.Format(idTimeFormat)
	path := filepath.Join(s.dir, id+fileExt)
	for i := 1; ; i++ {
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			break
		}
		// Two batches inside one second; disambiguate the name.
		id = fmt.Sprintf("%s%s_%d", filePrefix, rec.Timestamp.Format(idTimeFormat), i)
		path = filepath.Join(s.dir, id+fileExt)
	}

	if err := s.write(path, &rec); err != nil {
		return "", err
	}
	slog.Debug("journal saved", "id", id, "moves", len(rec.Moves))
	return id, nil
}

// write lands the record through a temp file and a rename, so a crash never
// leaves a half-written journal behind.
func (s *Store) write(path string, rec *Record) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp_journal_*")
	if err != nil {
		return fmt.Errorf("create temp journal: %w", err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode journal: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit journal: %w", err)
	}
	return nil
}

// List returns summaries of all readable journals, newest first. Unreadable
// or malformed files are skipped, not fatal.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var summaries []Summary
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		rec, err := s.read(filepath.Join(s.dir, name))
		if err != nil {
			slog.Debug("skipping unreadable journal", "file", name, "error", err)
			continue
		}
		summaries = append(summaries, Summary{
			ID:         strings.TrimSuffix(name, fileExt),
			Path:       filepath.Join(s.dir, name),
			Timestamp:  rec.Timestamp,
			SourceRoot: rec.SourceRoot,
			SortMode:   rec.SortMode,
			FileCount:  rec.FileCount,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	return summaries, nil
}

// Load reads the full record for a journal id.
func (s *Store) Load(id string) (*Record, error) {
	path := filepath.Join(s.dir, id+fileExt)
	rec, err := s.read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return rec, nil
}

// Delete removes a journal file.
func (s *Store) Delete(id string) error {
	path := filepath.Join(s.dir, id+fileExt)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	slog.Debug("journal deleted", "id", id)
	return nil
}

// Prune deletes journals older than the given age and returns how many
// were removed.
func (s *Store) Prune(olderThan time.Duration) (int, error) {
	summaries, err := s.List()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	stale := lo.Filter(summaries, func(sum Summary, _ int) bool {
		return sum.Timestamp.Before(cutoff)
	})

	removed := 0
	for _, sum := range stale {
		if err := s.Delete(sum.ID); err != nil {
			slog.Error("failed to prune journal", "id", sum.ID, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

func (s *Store) read(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rec Record
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	return &rec, nil
}
