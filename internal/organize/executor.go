package organize

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Executor performs planned moves against the filesystem, one at a time.
// The planned lists are owned exclusively by the run once handed over.
type Executor struct {
	checker Checker
}

// NewExecutor returns an executor re-validating accessibility with the same
// inclusion policy the scan used.
func NewExecutor(opts Options) *Executor {
	opts.normalize()
	return &Executor{
		checker: Checker{
			IncludeHidden:   opts.IncludeHidden,
			IncludeSymlinks: opts.IncludeSymlinks,
		},
	}
}

// Execute runs folder moves first, then file moves. Cancellation is
// cooperative, checked before each item; on cancellation the result keeps
// everything completed so far and is marked cancelled. Per-item failures
// never abort the batch.
func (e *Executor) Execute(ctx context.Context, folderMoves []PlannedFolderMove, moves []PlannedMove, progress MoveProgress) *BatchResult {
	if progress == nil {
		progress = func(int, int, string) {}
	}
	result := &BatchResult{}
	total := len(folderMoves) + len(moves)
	current := 0

	for _, fm := range folderMoves {
		if ctx.Err() != nil {
			result.Cancelled = true
			return result
		}
		current++
		progress(current, total, filepath.Base(fm.Source))
		e.moveFolder(fm, result)
	}

	for _, m := range moves {
		if ctx.Err() != nil {
			result.Cancelled = true
			return result
		}
		current++
		progress(current, total, filepath.Base(m.Source))
		e.moveFile(m, result)
	}

	return result
}

func (e *Executor) moveFile(m PlannedMove, result *BatchResult) {
	// Lock state can change between scan and execution; re-check with the
	// lock probe enabled right before mutating.
	if entry := e.checker.Check(m.Source, true); entry != nil {
		result.Skipped++
		result.SkippedEntries = append(result.SkippedEntries, *entry)
		return
	}

	if err := os.MkdirAll(filepath.Dir(m.Destination), 0755); err != nil {
		e.record(m.Source, err, result)
		return
	}

	finalDest, err := UniqueDestination(m.Destination)
	if err != nil {
		// Circuit breaker: hard failure for this item only.
		result.fail(filepath.Base(m.Source), err)
		return
	}
	if !PathLengthOK(finalDest) {
		result.skip(m.Source, SkipPathTooLong, finalDest)
		return
	}

	if err := os.Rename(m.Source, finalDest); err != nil {
		e.record(m.Source, err, result)
		return
	}

	result.Moved++
	result.BytesMoved += m.Size
	result.MoveLog = append(result.MoveLog, MoveRecord{
		Original:    m.Source,
		Destination: finalDest,
	})
	slog.Debug("moved file", "from", m.Source, "to", finalDest)
}

// moveFolder moves a directory as a unit. Collisions suffix the folder name
// itself; any move failure is an error, folder collisions being rarer and
// less recoverable automatically than file collisions.
func (e *Executor) moveFolder(fm PlannedFolderMove, result *BatchResult) {
	finalDest, err := uniqueDirDestination(fm.Destination)
	if err != nil {
		result.fail(filepath.Base(fm.Source), err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(finalDest), 0755); err != nil {
		result.fail(filepath.Base(fm.Source), err)
		return
	}
	if err := os.Rename(fm.Source, finalDest); err != nil {
		result.fail(filepath.Base(fm.Source), err)
		return
	}

	result.FoldersMoved++
	result.FolderLog = append(result.FolderLog, FolderMoveRecord{
		Original:    fm.Source,
		Destination: finalDest,
		FileCount:   fm.FileCount,
	})
	slog.Debug("moved folder", "from", fm.Source, "to", finalDest, "files", fm.FileCount)
}

// record books an OS failure under the two-tier taxonomy: known operational
// conditions become skips, anything else an error.
func (e *Executor) record(path string, err error, result *BatchResult) {
	if reason := classifyMoveError(err); reason != "" {
		result.skip(path, reason, err.Error())
		return
	}
	result.fail(filepath.Base(path), err)
}

// SweepEmptyDirs removes directories under root left empty by a batch,
// deepest first. The root itself is never removed.
func SweepEmptyDirs(root string) (int, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Children sort after parents; delete bottom-up.
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))

	removed := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err == nil {
			removed++
		}
	}
	return removed, nil
}
