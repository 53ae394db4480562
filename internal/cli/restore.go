package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"golang.org/x/sync/errgroup"

	"seiri/internal/journal"
	"seiri/internal/organize"
	"seiri/internal/ui"
)

// Restore replays a journal, newest first unless --journal picks one.
func (c *CLI) Restore() error {
	id := c.option.Journal
	if id == "" {
		summaries, err := c.store.List()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			return errors.New("no journals found: nothing to restore")
		}
		id = summaries[0].ID
	}

	rec, err := c.store.Load(id)
	if err != nil {
		return err
	}

	fmt.Printf("Journal %s: %d files organized from %s (%s)\n",
		id, rec.FileCount, rec.SourceRoot, humanize.Time(rec.Timestamp))

	if !c.option.Yes && c.config.Core.Restore.Confirm {
		if !ui.Ask("Restore these files to their original locations?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := c.restore(ctx, rec)

	ui.PrintSummary("Restore complete", result)
	if c.config.Core.Restore.Verbose {
		ui.PrintSkips(result.SkippedEntries)
	}

	// Only a clean, complete restore invalidates the journal.
	clean := !result.Cancelled && result.Errors == 0 && result.Skipped == 0 &&
		result.Moved+result.FoldersMoved > 0
	if !clean {
		fmt.Printf("Journal %s kept: the restore did not complete cleanly.\n", id)
		return nil
	}

	if c.option.Yes || ui.Ask("Delete this journal?") {
		if err := c.store.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Journal %s deleted.\n", id)
	}
	return nil
}

func (c *CLI) restore(ctx context.Context, rec *journal.Record) *organize.BatchResult {
	updates := make(chan moveUpdate, 8)
	progress := organize.ThrottleMove(func(current, total int, name string) {
		select {
		case updates <- moveUpdate{current: current, total: total, name: name}:
		default:
		}
	}, organize.DefaultProgressInterval)

	var result *organize.BatchResult
	var eg errgroup.Group
	eg.Go(func() error {
		defer close(updates)
		result = journal.Restore(ctx, rec, progress)
		return nil
	})

	tty := isatty.IsTerminal(os.Stderr.Fd())
	for u := range updates {
		if tty {
			fmt.Fprintf(os.Stderr, "\r\033[KRestoring %d/%d: %s", u.current, u.total, u.name)
		}
	}
	if tty {
		fmt.Fprintf(os.Stderr, "\r\033[K")
	}

	_ = eg.Wait()
	return result
}
