package journal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"seiri/internal/organize"
)

const maxRestoreAttempts = 10000

// Restore replays a journal, moving every recorded destination back to its
// original path. Entries whose organized location no longer exists are
// reported as move-error skips and never silently dropped; everything else
// proceeds independently. Cancellation keeps partial progress, mirroring
// the executor.
func Restore(ctx context.Context, rec *Record, progress organize.MoveProgress) *organize.BatchResult {
	if progress == nil {
		progress = func(int, int, string) {}
	}
	result := &organize.BatchResult{}
	total := len(rec.Moves) + len(rec.FolderMoves)
	current := 0

	for _, m := range rec.Moves {
		if ctx.Err() != nil {
			result.Cancelled = true
			return result
		}
		current++
		progress(current, total, filepath.Base(m.Destination))
		restoreOne(m.Destination, m.Original, result)
	}

	// Folder moves ran first during organize; undo them last.
	for _, fm := range rec.FolderMoves {
		if ctx.Err() != nil {
			result.Cancelled = true
			return result
		}
		current++
		progress(current, total, filepath.Base(fm.Destination))
		if restoreOne(fm.Destination, fm.Original, result) {
			result.FoldersMoved++
			result.Moved-- // counted as a folder, not a file
		}
	}

	return result
}

// restoreOne moves a single journal entry back, reporting success.
func restoreOne(from, to string, result *organize.BatchResult) bool {
	if _, err := os.Lstat(from); err != nil {
		// Deleted or moved again externally since the journal was written.
		result.Skipped++
		result.SkippedEntries = append(result.SkippedEntries, organize.SkippedEntry{
			Path:   from,
			Reason: organize.SkipMoveError,
			Detail: "file not found at organized location",
		})
		return false
	}

	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		result.Errors++
		result.ErrorMessages = append(result.ErrorMessages,
			fmt.Sprintf("%s: %v", filepath.Base(from), err))
		return false
	}

	finalTo, err := restoreDestination(to)
	if err != nil {
		result.Errors++
		result.ErrorMessages = append(result.ErrorMessages,
			fmt.Sprintf("%s: %v", filepath.Base(from), err))
		return false
	}

	if err := os.Rename(from, finalTo); err != nil {
		result.Errors++
		result.ErrorMessages = append(result.ErrorMessages,
			fmt.Sprintf("%s: %v", filepath.Base(from), err))
		return false
	}

	result.Moved++
	result.MoveLog = append(result.MoveLog, organize.MoveRecord{
		Original:    from,
		Destination: finalTo,
	})
	slog.Debug("restored", "from", from, "to", finalTo)
	return true
}

// restoreDestination resolves the original path, suffixing with
// "_restored_N" when something already occupies it. The suffix is distinct
// from the executor's collision suffix so restored copies are recognizable.
func restoreDestination(path string) (string, error) {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; i <= maxRestoreAttempts; i++ {
		candidate := fmt.Sprintf("%s_restored_%d%s", stem, i, ext)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", organize.ErrTooManyCollisions, path)
}
