// Package ui holds the small amount of terminal presentation the CLI needs:
// a confirm prompt and result summaries. The engine never calls into here.
package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"seiri/internal/organize"
)

// Ask prompts for a yes/no answer. Without a terminal it declines, so a
// scripted run never hangs waiting for input.
func Ask(prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false
	}

	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// PrintSummary renders the three independent counts of a batch. Partial
// success is the steady state for a tool racing live directories, so there
// is deliberately no single pass/fail verdict.
func PrintSummary(heading string, result *organize.BatchResult) {
	green := color.New(color.FgHiGreen).SprintFunc()
	yellow := color.New(color.FgHiYellow).SprintFunc()
	red := color.New(color.FgHiRed).SprintFunc()

	fmt.Println()
	fmt.Println(heading)
	fmt.Printf("  moved:   %s", green(result.Moved))
	if result.BytesMoved > 0 {
		fmt.Printf(" (%s)", humanize.Bytes(uint64(result.BytesMoved)))
	}
	fmt.Println()
	if result.FoldersMoved > 0 {
		fmt.Printf("  folders: %s\n", green(result.FoldersMoved))
	}
	fmt.Printf("  skipped: %s\n", yellow(result.Skipped))
	fmt.Printf("  errors:  %s\n", red(result.Errors))
	if result.Cancelled {
		fmt.Printf("  %s\n", yellow("cancelled before completion"))
	}

	for _, msg := range result.ErrorMessages {
		fmt.Printf("    %s %s\n", red("*"), msg)
	}
}

// PrintSkips lists skipped entries grouped by reason.
func PrintSkips(entries []organize.SkippedEntry) {
	if len(entries) == 0 {
		return
	}
	yellow := color.New(color.FgHiYellow).SprintFunc()

	byReason := map[organize.SkipReason][]organize.SkippedEntry{}
	var order []organize.SkipReason
	for _, e := range entries {
		if _, seen := byReason[e.Reason]; !seen {
			order = append(order, e.Reason)
		}
		byReason[e.Reason] = append(byReason[e.Reason], e)
	}

	fmt.Println()
	for _, reason := range order {
		group := byReason[reason]
		fmt.Printf("%s (%d):\n", yellow(string(reason)), len(group))
		for _, e := range group {
			if e.Detail != "" {
				fmt.Printf("  %s (%s)\n", e.Path, e.Detail)
				continue
			}
			fmt.Printf("  %s\n", e.Path)
		}
	}
}
