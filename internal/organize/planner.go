package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxPathLength is the destination path ceiling. 260 matches the most
	// restrictive practically relevant filesystem limit.
	MaxPathLength = 260

	// maxCollisionAttempts bounds unique-name probing. Exceeding it means
	// something pathological is going on; the item fails hard instead of
	// looping.
	maxCollisionAttempts = 10000

	// unknownSegment replaces the year and month folders when no valid
	// organizing date could be derived.
	unknownSegment = "Unknown"
)

// monthFolders are the canonical dated folder names, indexed by time.Month.
var monthFolders = [...]string{
	"",
	"01-January", "02-February", "03-March", "04-April",
	"05-May", "06-June", "07-July", "08-August",
	"09-September", "10-October", "11-November", "12-December",
}

// MonthFolder returns the canonical folder name for a month.
func MonthFolder(m time.Month) string {
	return monthFolders[m]
}

// Planner computes destination paths under a fixed source root. Destinations
// never leave the root.
type Planner struct {
	Root string
	Mode SortMode
}

// DestinationFor computes the target path for a file. When valid is false
// the year and month segments become the "Unknown" placeholder bucket.
func (p Planner) DestinationFor(path string, cat Category, date time.Time, valid bool) string {
	name := filepath.Base(path)
	year := unknownSegment
	month := unknownSegment
	if valid {
		year = fmt.Sprintf("%04d", date.Year())
		month = MonthFolder(date.Month())
	}

	switch p.Mode {
	case SortByType:
		return filepath.Join(p.Root, string(cat), name)
	case SortByDate:
		return filepath.Join(p.Root, year, month, name)
	default:
		return filepath.Join(p.Root, string(cat), year, month, name)
	}
}

// FolderDestinationFor computes the dated target for a whole directory
// moved as a unit.
func (p Planner) FolderDestinationFor(dir string, date time.Time, valid bool) string {
	year := unknownSegment
	month := unknownSegment
	if valid {
		year = fmt.Sprintf("%04d", date.Year())
		month = MonthFolder(date.Month())
	}
	return filepath.Join(p.Root, year, month, filepath.Base(dir))
}

// IsAlreadyOrganized reports whether path sits inside a folder structure
// matching the shape the active mode produces. This is a structural
// heuristic to keep repeated scans from re-planning the output of a previous
// run, not a guarantee the file is in its exact correct destination.
func (p Planner) IsAlreadyOrganized(path string) bool {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	parts := strings.Split(rel, string(filepath.Separator))

	switch p.Mode {
	case SortByType:
		return len(parts) >= 2 && IsKnownCategory(parts[0])
	case SortByDate:
		return len(parts) >= 3 && isYearSegment(parts[0]) && isMonthSegment(parts[1])
	default:
		return len(parts) >= 4 &&
			IsKnownCategory(parts[0]) &&
			isYearSegment(parts[1]) &&
			isMonthSegment(parts[2])
	}
}

func isYearSegment(s string) bool {
	if s == unknownSegment {
		return true
	}
	if len(s) != 4 {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func isMonthSegment(s string) bool {
	if s == unknownSegment {
		return true
	}
	for _, m := range monthFolders[1:] {
		if s == m {
			return true
		}
	}
	return false
}

// UniqueDestination resolves a free name for path by appending an
// incrementing numeric suffix before the extension: name_1.ext, name_2.ext.
// Returns ErrTooManyCollisions past the attempt ceiling.
func UniqueDestination(path string) (string, error) {
	if !pathExists(path) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 1; i <= maxCollisionAttempts; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !pathExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTooManyCollisions, path)
}

// uniqueDirDestination resolves a free name for a directory by suffixing the
// directory name itself, leaving contained files untouched.
func uniqueDirDestination(path string) (string, error) {
	if !pathExists(path) {
		return path, nil
	}
	for i := 1; i <= maxCollisionAttempts; i++ {
		candidate := fmt.Sprintf("%s_%d", path, i)
		if !pathExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTooManyCollisions, path)
}

// PathLengthOK reports whether a destination fits the path-length ceiling.
func PathLengthOK(path string) bool {
	return len(path) <= MaxPathLength
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
