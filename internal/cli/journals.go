package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/k1LoW/duration"

	"seiri/internal/ui"
)

// ListJournals prints every saved journal, newest first.
func (c *CLI) ListJournals() error {
	summaries, err := c.store.List()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Printf("No journals in %s\n", c.store.Dir())
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Created", "Source", "Mode", "Files"})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.ID,
			humanize.Time(s.Timestamp),
			s.SourceRoot,
			s.SortMode,
			s.FileCount,
		})
	}
	t.Render()
	return nil
}

// RemoveJournal deletes one journal by id after confirmation.
func (c *CLI) RemoveJournal(id string) error {
	rec, err := c.store.Load(id)
	if err != nil {
		return err
	}

	if !c.option.Yes {
		prompt := fmt.Sprintf("Delete journal %s (%d files, %s)? Its batch can no longer be undone.",
			id, rec.FileCount, humanize.Time(rec.Timestamp))
		if !ui.Ask(prompt) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := c.store.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Journal %s deleted.\n", id)
	return nil
}

// PruneJournals deletes journals older than a human-readable duration such
// as "30 days" or "6 months".
func (c *CLI) PruneJournals(olderThan string) error {
	d, err := duration.Parse(olderThan)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", olderThan, err)
	}

	if !c.option.Yes {
		prompt := fmt.Sprintf("Delete all journals older than %s? Their batches can no longer be undone.", olderThan)
		if !ui.Ask(prompt) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	removed, err := c.store.Prune(d)
	if err != nil {
		return err
	}
	fmt.Printf("Pruned %d journals.\n", removed)
	return nil
}
