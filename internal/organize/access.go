package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Checker decides whether a path may be touched by the engine at all.
//
// Checks run in fixed precedence: symlink/shortcut, hidden, system, then
// (only when requested) writability and lock state. Any unexpected OS-level
// denial collapses to permission-denied.
type Checker struct {
	IncludeHidden   bool
	IncludeSymlinks bool
}

// Check returns a SkippedEntry describing why path must be excluded, or nil
// when the path is accessible.
//
// The lock probe is expensive and racy by nature, so callers skip it during
// scanning (checkLock=false) and re-run it immediately before each move.
func (c Checker) Check(path string, checkLock bool) *SkippedEntry {
	info, err := os.Lstat(path)
	if err != nil {
		return &SkippedEntry{
			Path:   path,
			Reason: SkipPermissionDenied,
			Detail: err.Error(),
		}
	}

	name := filepath.Base(path)

	if !c.IncludeSymlinks {
		if info.Mode()&os.ModeSymlink != 0 || strings.EqualFold(filepath.Ext(name), ".lnk") {
			return &SkippedEntry{Path: path, Reason: SkipSymlink}
		}
	}

	if !c.IncludeHidden && isHidden(path, info) {
		return &SkippedEntry{Path: path, Reason: SkipHiddenFile}
	}

	if isSystemFile(path, info) {
		return &SkippedEntry{Path: path, Reason: SkipSystemFile}
	}

	if checkLock && !info.IsDir() {
		if entry := checkWritable(path, info); entry != nil {
			return entry
		}
	}

	return nil
}

// checkWritable probes for read-only files and files held open exclusively
// by another process. The lock is acquired and released immediately; holding
// it any longer would not help, since lock state can change right after.
func checkWritable(path string, info os.FileInfo) *SkippedEntry {
	if info.Mode().Perm()&0200 == 0 {
		return &SkippedEntry{
			Path:   path,
			Reason: SkipReadOnly,
			Detail: fmt.Sprintf("mode %v", info.Mode().Perm()),
		}
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return &SkippedEntry{
			Path:   path,
			Reason: SkipPermissionDenied,
			Detail: err.Error(),
		}
	}
	if !locked {
		return &SkippedEntry{Path: path, Reason: SkipFileInUse}
	}
	_ = lock.Unlock()
	return nil
}
