package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"

	"golang.org/x/sync/errgroup"

	"seiri/internal/journal"
	"seiri/internal/organize"
	"seiri/internal/ui"
)

type scanUpdate struct {
	status string
	seen   int
}

type moveUpdate struct {
	current int
	total   int
	name    string
}

// Organize scans the given directory, confirms, executes the batch, and
// persists the journal.
func (c *CLI) Organize(args []string) error {
	if len(args) == 0 {
		return errors.New("too few arguments: specify a directory to organize")
	}
	if len(args) > 1 {
		return errors.New("too many arguments: specify a single directory")
	}

	mode, opts, err := c.organizeSettings()
	if err != nil {
		return err
	}

	scanner, err := organize.NewScanner(args[0], mode, opts)
	if err != nil {
		return err
	}
	root := scanner.Planner().Root

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scan, err := c.scan(ctx, scanner)
	if err != nil {
		return err
	}

	if scan.FoldersDetected {
		yellow := color.New(color.FgHiYellow).SprintFunc()
		fmt.Printf("%s subdirectories detected; only top-level files were scanned\n",
			yellow("note:"))
	}

	if len(scan.Moves) == 0 && len(scan.FolderMoves) == 0 {
		fmt.Println("Nothing to organize.")
		if c.config.Core.Verbose {
			ui.PrintSkips(scan.Skipped)
		}
		return nil
	}

	if c.option.DryRun {
		printPreview(scan, mode)
		if c.config.Core.Verbose {
			ui.PrintSkips(scan.Skipped)
		}
		return nil
	}

	if !c.option.Yes {
		prompt := fmt.Sprintf("Move %d files", len(scan.Moves))
		if len(scan.FolderMoves) > 0 {
			prompt = fmt.Sprintf("%s and %d folders", prompt, len(scan.FolderMoves))
		}
		if !ui.Ask(prompt + "?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	result := c.execute(ctx, opts, scan)

	if opts.DeleteEmptyDirs && (result.Moved > 0 || result.FoldersMoved > 0) {
		if removed, err := organize.SweepEmptyDirs(root); err == nil && removed > 0 {
			fmt.Printf("Removed %d empty folders.\n", removed)
		}
	}

	if err := c.saveJournal(root, mode, scan, result); err != nil {
		return err
	}

	ui.PrintSummary("Organization complete", result)
	if c.config.Core.Verbose {
		allSkips := append(append([]organize.SkippedEntry{}, scan.Skipped...), result.SkippedEntries...)
		ui.PrintSkips(allSkips)
	}
	return nil
}

// organizeSettings merges config with command line flags; flags win where
// they assert something.
func (c *CLI) organizeSettings() (organize.SortMode, organize.Options, error) {
	modeStr := c.option.Mode
	if modeStr == "" {
		modeStr = c.config.Organize.Mode
	}
	mode, err := organize.ParseSortMode(modeStr)
	if err != nil {
		return "", organize.Options{}, err
	}

	opts := organize.Options{
		IncludeHidden:   c.config.Organize.IncludeHidden || c.option.IncludeHidden,
		IncludeSymlinks: c.config.Organize.IncludeSymlinks || c.option.IncludeSymlinks,
		Flatten:         c.config.Organize.Flatten || c.option.Flatten,
		PreserveFolders: c.config.Organize.PreserveFolders || c.option.PreserveFolders,
		DeleteEmptyDirs: c.config.Organize.DeleteEmptyDirs || c.option.DeleteEmpty,
		Exclude: organize.ExcludePolicy{
			Files:    c.config.Organize.Exclude.Files,
			Patterns: c.config.Organize.Exclude.Patterns,
			Globs:    c.config.Organize.Exclude.Globs,
			SizeMin:  c.config.Organize.Exclude.Size.Min,
			SizeMax:  c.config.Organize.Exclude.Size.Max,
		},
	}
	return mode, opts, nil
}

// scan runs the scanner on a worker goroutine and drains throttled progress
// updates on this one, so the engine never writes to the terminal itself.
func (c *CLI) scan(ctx context.Context, scanner *organize.Scanner) (*organize.ScanResult, error) {
	updates := make(chan scanUpdate, 8)
	progress := organize.ThrottleScan(func(status string, seen int) {
		select {
		case updates <- scanUpdate{status: status, seen: seen}:
		default:
			// Presentation lagging; drop rather than stall the scan.
		}
	}, organize.DefaultProgressInterval)

	var result *organize.ScanResult
	var eg errgroup.Group
	eg.Go(func() error {
		defer close(updates)
		var err error
		result, err = scanner.Scan(ctx, progress)
		return err
	})

	tty := isatty.IsTerminal(os.Stderr.Fd())
	for u := range updates {
		if tty {
			fmt.Fprintf(os.Stderr, "\r\033[K%s (%d)", u.status, u.seen)
		}
	}
	if tty {
		fmt.Fprintf(os.Stderr, "\r\033[K")
	}

	if err := eg.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, errors.New("scan cancelled")
		}
		return nil, err
	}
	fmt.Printf("Scanned %d entries: %d to move, %d skipped\n",
		result.Seen, len(result.Moves)+len(result.FolderMoves), len(result.Skipped))
	return result, nil
}

// execute mirrors scan: the executor runs on a worker goroutine, progress
// lands here throttled.
func (c *CLI) execute(ctx context.Context, opts organize.Options, scan *organize.ScanResult) *organize.BatchResult {
	updates := make(chan moveUpdate, 8)
	progress := organize.ThrottleMove(func(current, total int, name string) {
		select {
		case updates <- moveUpdate{current: current, total: total, name: name}:
		default:
		}
	}, organize.DefaultProgressInterval)

	executor := organize.NewExecutor(opts)
	var result *organize.BatchResult
	var eg errgroup.Group
	eg.Go(func() error {
		defer close(updates)
		result = executor.Execute(ctx, scan.FolderMoves, scan.Moves, progress)
		return nil
	})

	tty := isatty.IsTerminal(os.Stderr.Fd())
	for u := range updates {
		if tty {
			fmt.Fprintf(os.Stderr, "\r\033[KMoving %d/%d: %s", u.current, u.total, u.name)
		}
	}
	if tty {
		fmt.Fprintf(os.Stderr, "\r\033[K")
	}

	_ = eg.Wait()
	return result
}

// saveJournal persists the executed batch. A batch that moved nothing has
// nothing to journal and that is not an error.
func (c *CLI) saveJournal(root string, mode organize.SortMode, scan *organize.ScanResult, result *organize.BatchResult) error {
	if len(result.MoveLog) == 0 && len(result.FolderLog) == 0 {
		return nil
	}

	allSkips := append(append([]organize.SkippedEntry{}, scan.Skipped...), result.SkippedEntries...)
	rec := journal.Record{
		RunID:      c.runID,
		Timestamp:  time.Now(),
		SourceRoot: root,
		SortMode:   string(mode),
		FileCount:  len(result.MoveLog),
		Moves: lo.Map(result.MoveLog, func(m organize.MoveRecord, _ int) journal.Move {
			return journal.Move{Original: m.Original, Destination: m.Destination}
		}),
		FolderMoves: lo.Map(result.FolderLog, func(m organize.FolderMoveRecord, _ int) journal.FolderMove {
			return journal.FolderMove{Original: m.Original, Destination: m.Destination, FileCount: m.FileCount}
		}),
		Skipped: lo.Map(allSkips, func(e organize.SkippedEntry, _ int) journal.Skipped {
			return journal.Skipped{Path: e.Path, Reason: string(e.Reason), Detail: e.Detail}
		}),
	}

	id, err := c.store.Save(rec)
	if err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}
	fmt.Printf("Journal saved: %s (undo with --restore)\n", id)
	slog.Debug("batch journaled", "id", id, "run_id", c.runID)
	return nil
}

// printPreview renders the dry run: per-category counts plus planned folder
// moves, without touching anything.
func printPreview(scan *organize.ScanResult, mode organize.SortMode) {
	fmt.Printf("Dry run (%s): %d files would move\n", mode, len(scan.Moves))

	grouped := lo.GroupBy(scan.Moves, func(m organize.PlannedMove) string {
		return string(m.Category)
	})
	categories := lo.Keys(grouped)
	sort.Strings(categories)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Category", "Files", "Size"})
	for _, cat := range categories {
		moves := grouped[cat]
		size := lo.SumBy(moves, func(m organize.PlannedMove) int64 { return m.Size })
		t.AppendRow(table.Row{cat, len(moves), humanize.Bytes(uint64(size))})
	}
	t.Render()

	if len(scan.FolderMoves) > 0 {
		fmt.Printf("\n%d folders would move as units:\n", len(scan.FolderMoves))
		for _, fm := range scan.FolderMoves {
			fmt.Printf("  %s -> %s (%d files)\n", fm.Source, fm.Destination, fm.FileCount)
		}
	}
}
