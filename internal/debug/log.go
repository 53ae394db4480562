// Package debug exposes the debug log file for inspection.
package debug

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"

	"seiri/internal/env"
)

// Logs displays logs either by dumping existing content or following new
// entries live.
func Logs(w io.Writer, live bool) error {
	if live {
		return tailLiveLogs(w)
	}
	return showExistingLogs(w)
}

func tailLiveLogs(w io.Writer) error {
	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	tailConfig := tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	}

	t, err := tail.TailFile(env.SEIRI_LOG_PATH, tailConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: run some commands first")
		}
		return err
	}

	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}

	return nil
}

func showExistingLogs(w io.Writer) error {
	f, err := os.Open(env.SEIRI_LOG_PATH)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: run some commands first")
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
	return scanner.Err()
}
