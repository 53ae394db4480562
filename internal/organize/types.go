// Package organize implements the planning and execution engine for
// reorganizing a directory tree into a category- and/or date-derived layout.
package organize

import "fmt"

// SortMode selects how destination folders are derived.
type SortMode string

const (
	// SortByType organizes into root/Category/name.
	SortByType SortMode = "by-type"

	// SortByDate organizes into root/YYYY/MM-Month/name.
	SortByDate SortMode = "by-date"

	// SortByBoth organizes into root/Category/YYYY/MM-Month/name.
	SortByBoth SortMode = "by-both"
)

// ParseSortMode converts a config or flag string to a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortByType, SortByDate, SortByBoth:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort mode: %q", s)
}

// SkipReason enumerates the expected, non-fatal conditions that exclude a
// file from a batch. The set is closed; consumers match it exhaustively.
type SkipReason string

const (
	SkipAlreadyOrganized SkipReason = "already-organized"
	SkipPermissionDenied SkipReason = "permission-denied"
	SkipFileInUse        SkipReason = "file-in-use"
	SkipReadOnly         SkipReason = "read-only"
	SkipSystemFile       SkipReason = "system-file"
	SkipHiddenFile       SkipReason = "hidden-file"
	SkipSymlink          SkipReason = "symlink-or-shortcut"
	SkipPathTooLong      SkipReason = "path-too-long"
	SkipInvalidDate      SkipReason = "invalid-date-metadata"
	SkipMoveError        SkipReason = "move-error"
)

// PlannedMove is a computed but not-yet-executed source to destination
// mapping. The executor may rewrite Destination for collision resolution;
// nothing mutates a PlannedMove after the batch completes.
type PlannedMove struct {
	Source      string
	Destination string
	Category    Category
	Year        int
	Month       int
	Size        int64
}

// PlannedFolderMove moves an entire root-level directory as a unit into a
// dated folder. Only produced in date mode with preserve-folders enabled.
type PlannedFolderMove struct {
	Source      string
	Destination string
	Year        int
	Month       int
	FileCount   int
}

// SkippedEntry records why a candidate was excluded from a batch.
type SkippedEntry struct {
	Path   string
	Reason SkipReason
	Detail string
}

// MoveRecord is one executed move, recorded only after the rename succeeded.
type MoveRecord struct {
	Original    string
	Destination string
}

// FolderMoveRecord is one executed folder move.
type FolderMoveRecord struct {
	Original    string
	Destination string
	FileCount   int
}

// BatchResult accumulates the outcome of one execute or restore run. It is
// mutated only by the engine during the run and read-only afterward.
type BatchResult struct {
	Moved        int
	Skipped      int
	Errors       int
	FoldersMoved int
	BytesMoved   int64

	ErrorMessages  []string
	SkippedEntries []SkippedEntry
	MoveLog        []MoveRecord
	FolderLog      []FolderMoveRecord

	Cancelled bool
}

func (r *BatchResult) skip(path string, reason SkipReason, detail string) {
	r.Skipped++
	r.SkippedEntries = append(r.SkippedEntries, SkippedEntry{
		Path:   path,
		Reason: reason,
		Detail: detail,
	})
}

func (r *BatchResult) fail(name string, err error) {
	r.Errors++
	r.ErrorMessages = append(r.ErrorMessages, fmt.Sprintf("%s: %v", name, err))
}

// ScanProgress reports scanning status. Called on the engine's execution
// path; callers must not block.
type ScanProgress func(status string, seen int)

// MoveProgress reports per-item progress during execute and restore.
type MoveProgress func(current, total int, name string)
