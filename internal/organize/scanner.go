package organize

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Options controls traversal and exclusion during a scan. Flatten and
// PreserveFolders are mutually exclusive in intent; when both are set,
// flatten wins, since recursing every file is the less surprising behavior.
type Options struct {
	IncludeHidden   bool
	IncludeSymlinks bool
	Flatten         bool
	PreserveFolders bool
	DeleteEmptyDirs bool
	Exclude         ExcludePolicy
}

func (o *Options) normalize() {
	if o.Flatten {
		o.PreserveFolders = false
	}
}

// ScanResult partitions everything a scan found.
type ScanResult struct {
	Moves           []PlannedMove
	FolderMoves     []PlannedFolderMove
	Skipped         []SkippedEntry
	FoldersDetected bool
	Seen            int
}

// Scanner walks a source tree and plans moves for the active sort mode.
type Scanner struct {
	root    string
	mode    SortMode
	opts    Options
	checker Checker
	planner Planner
	exclude *excludeMatcher
}

// NewScanner validates the root and compiles the exclusion policy.
func NewScanner(root string, mode SortMode, opts Options) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := checkProtectedRoot(abs); err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}

	opts.normalize()
	matcher, err := compileExcludePolicy(opts.Exclude)
	if err != nil {
		return nil, err
	}

	return &Scanner{
		root: abs,
		mode: mode,
		opts: opts,
		checker: Checker{
			IncludeHidden:   opts.IncludeHidden,
			IncludeSymlinks: opts.IncludeSymlinks,
		},
		planner: Planner{Root: abs, Mode: mode},
		exclude: matcher,
	}, nil
}

// Planner exposes the destination planner bound to this scan's root.
func (s *Scanner) Planner() Planner {
	return s.planner
}

// Scan traverses the tree and partitions entries into planned moves,
// planned folder moves, and skips. Traversal depends on mode and options:
// flatten recurses everything; date mode with preserve-folders treats
// root-level directories as atomic folder moves; type-derived modes refuse
// to recurse into unknown nesting and set FoldersDetected instead.
func (s *Scanner) Scan(ctx context.Context, progress ScanProgress) (*ScanResult, error) {
	if progress == nil {
		progress = func(string, int) {}
	}
	result := &ScanResult{}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read source root: %w", err)
	}

	hasSubdirs := false
	for _, e := range entries {
		if e.IsDir() {
			hasSubdirs = true
			break
		}
	}

	switch {
	case s.opts.Flatten:
		err = s.scanRecursive(ctx, result, progress)

	case s.mode == SortByDate && s.opts.PreserveFolders:
		err = s.scanPreservingFolders(ctx, entries, result, progress)

	case hasSubdirs && s.mode != SortByDate:
		// Type-based destinations don't compose safely with unknown
		// nested structure; scan the top level and let the caller warn.
		result.FoldersDetected = true
		err = s.scanRootOnly(ctx, entries, result, progress)

	default:
		err = s.scanRecursive(ctx, result, progress)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("scan finished",
		"root", s.root,
		"mode", s.mode,
		"planned", len(result.Moves),
		"folders", len(result.FolderMoves),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

func (s *Scanner) scanRecursive(ctx context.Context, result *ScanResult, progress ScanProgress) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if path == s.root {
				return err
			}
			result.Skipped = append(result.Skipped, SkippedEntry{
				Path:   path,
				Reason: SkipPermissionDenied,
				Detail: err.Error(),
			})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		s.consider(path, result, progress)
		return nil
	})
}

func (s *Scanner) scanRootOnly(ctx context.Context, entries []os.DirEntry, result *ScanResult, progress ScanProgress) error {
	for _, e := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if e.IsDir() {
			continue
		}
		s.consider(filepath.Join(s.root, e.Name()), result, progress)
	}
	return nil
}

// scanPreservingFolders plans root-level files individually and each
// root-level subdirectory as one dated folder move.
func (s *Scanner) scanPreservingFolders(ctx context.Context, entries []os.DirEntry, result *ScanResult, progress ScanProgress) error {
	for _, e := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		path := filepath.Join(s.root, e.Name())

		if !e.IsDir() {
			s.consider(path, result, progress)
			continue
		}

		// Directories already shaped like our dated output stay put.
		if isYearSegment(e.Name()) {
			continue
		}
		if entry := s.checker.Check(path, false); entry != nil {
			result.Skipped = append(result.Skipped, *entry)
			continue
		}

		date, valid, err := OrganizingDateOf(path)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedEntry{
				Path:   path,
				Reason: SkipInvalidDate,
				Detail: err.Error(),
			})
			continue
		}

		dest := s.planner.FolderDestinationFor(path, date, valid)
		if !PathLengthOK(dest) {
			result.Skipped = append(result.Skipped, SkippedEntry{
				Path:   path,
				Reason: SkipPathTooLong,
				Detail: dest,
			})
			continue
		}

		year, month := 0, 0
		if valid {
			year, month = date.Year(), int(date.Month())
		}
		result.FolderMoves = append(result.FolderMoves, PlannedFolderMove{
			Source:      path,
			Destination: dest,
			Year:        year,
			Month:       month,
			FileCount:   countFiles(path),
		})
		result.Seen++
		progress(fmt.Sprintf("Scanning: %s%c", e.Name(), filepath.Separator), result.Seen)
	}
	return nil
}

// consider runs the per-file pipeline: idempotence check, accessibility,
// destination planning, length and no-op rejection.
func (s *Scanner) consider(path string, result *ScanResult, progress ScanProgress) {
	result.Seen++
	name := filepath.Base(path)
	progress("Scanning: "+name, result.Seen)

	if s.exclude.matches(name, statSize(path)) {
		return
	}

	if s.planner.IsAlreadyOrganized(path) {
		result.Skipped = append(result.Skipped, SkippedEntry{
			Path:   path,
			Reason: SkipAlreadyOrganized,
		})
		return
	}

	if entry := s.checker.Check(path, false); entry != nil {
		result.Skipped = append(result.Skipped, *entry)
		return
	}

	cat := CategoryOf(path)
	date, valid, err := OrganizingDateOf(path)
	if err != nil {
		result.Skipped = append(result.Skipped, SkippedEntry{
			Path:   path,
			Reason: SkipInvalidDate,
			Detail: err.Error(),
		})
		return
	}

	dest := s.planner.DestinationFor(path, cat, date, valid)
	if !PathLengthOK(dest) {
		result.Skipped = append(result.Skipped, SkippedEntry{
			Path:   path,
			Reason: SkipPathTooLong,
			Detail: dest,
		})
		return
	}

	// Same resolved location means nothing to do.
	if samePath(path, dest) {
		return
	}

	year, month := 0, 0
	if valid {
		year, month = date.Year(), int(date.Month())
	}
	result.Moves = append(result.Moves, PlannedMove{
		Source:      path,
		Destination: dest,
		Category:    cat,
		Year:        year,
		Month:       month,
		Size:        statSize(path),
	})
}

func samePath(a, b string) bool {
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		ra = filepath.Clean(a)
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		rb = filepath.Clean(b)
	}
	return ra == rb
}

func countFiles(dir string) int {
	n := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

// checkProtectedRoot refuses roots whose reorganization is never intended.
func checkProtectedRoot(root string) error {
	protected := []string{"/", "/home", "/usr", "/etc", "/var", "/tmp"}
	if home, err := os.UserHomeDir(); err == nil {
		protected = append(protected, home)
	}
	for _, p := range protected {
		if root == p {
			return fmt.Errorf("%w: %s", ErrProtectedPath, root)
		}
	}
	return nil
}
