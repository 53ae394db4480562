package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	SEIRI_CONFIG_PATH string

	SEIRI_LOG_PATH string

	SEIRI_JOURNAL_DIR string
)

func init() {
	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	if e := os.Getenv("SEIRI_CONFIG_PATH"); e != "" {
		SEIRI_CONFIG_PATH = e
	} else {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				panic(err)
			}
			configDir = filepath.Join(homeDir, defaultXDGConfigDirname)
		}
		SEIRI_CONFIG_PATH = filepath.Join(configDir, "seiri", "config.yaml")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}
		dataDir = filepath.Join(homeDir, defaultXDGDataDirname)
	}

	if e := os.Getenv("SEIRI_LOG_PATH"); e != "" {
		SEIRI_LOG_PATH = e
	} else {
		SEIRI_LOG_PATH = filepath.Join(dataDir, "seiri", "debug.log")
	}

	if e := os.Getenv("SEIRI_JOURNAL_DIR"); e != "" {
		SEIRI_JOURNAL_DIR = e
	} else {
		SEIRI_JOURNAL_DIR = filepath.Join(dataDir, "seiri", "journals")
	}
}
