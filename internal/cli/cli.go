// Package cli wires the organize engine, journal store, and configuration
// into the seiri command. All user confirmation and presentation lives
// here; the engine packages never block on input.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"

	"seiri/internal/config"
	"seiri/internal/debug"
	"seiri/internal/env"
	"seiri/internal/journal"
)

type Option struct {
	Mode            string `short:"m" long:"mode" description:"Sort mode" choice:"by-type" choice:"by-date" choice:"by-both"`
	DryRun          bool   `short:"n" long:"dry-run" description:"Preview planned moves without touching files"`
	Yes             bool   `short:"y" long:"yes" description:"Skip confirmation prompts"`
	Flatten         bool   `long:"flatten" description:"Recurse and pull every nested file into the organized layout"`
	PreserveFolders bool   `long:"preserve-folders" description:"Move whole top-level folders into dated folders (by-date mode)"`
	IncludeHidden   bool   `long:"include-hidden" description:"Include hidden files"`
	IncludeSymlinks bool   `long:"include-symlinks" description:"Include symlinks and shortcuts"`
	DeleteEmpty     bool   `long:"delete-empty" description:"Remove directories left empty after organizing"`

	Restore       bool   `short:"b" long:"restore" description:"Restore files from a journal"`
	Journal       string `long:"journal" value-name:"ID" description:"Journal id to restore (default: newest)"`
	Journals      bool   `long:"journals" description:"List saved journals"`
	DeleteJournal string `long:"delete-journal" value-name:"ID" description:"Delete a journal"`
	Prune         string `long:"prune" value-name:"DURATION" description:"Delete journals older than a duration (e.g. \"30 days\")"`

	Config string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	store   *journal.Store
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] directory"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logDir := filepath.Dir(env.SEIRI_LOG_PATH)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return err
		}
	}

	var w io.Writer
	if file, err := os.OpenFile(env.SEIRI_LOG_PATH, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		w = file
	} else {
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.DebugLevel,
	})
	slog.SetDefault(slog.New(logger.With("run_id", runID())))

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	journalDir := cfg.Core.JournalDir
	if journalDir == "" {
		journalDir = env.SEIRI_JOURNAL_DIR
	}
	store, err := journal.NewStore(journalDir)
	if err != nil {
		return fmt.Errorf("failed to initialize journal store: %w", err)
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		store:   store,
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c *CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(os.Stdout, c.version.Print())
		return nil

	case c.option.Meta.Debug != "":
		return debug.Logs(os.Stdout, c.option.Meta.Debug == "live")

	case c.option.Journals:
		return c.ListJournals()

	case c.option.DeleteJournal != "":
		return c.RemoveJournal(c.option.DeleteJournal)

	case c.option.Prune != "":
		return c.PruneJournals(c.option.Prune)

	case c.option.Restore:
		return c.Restore()

	default:
		return c.Organize(args)
	}
}
