package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"

	"seiri/internal/env"
)

var validate *validator.Validate

type Config struct {
	Core     Core     `yaml:"core"`
	Organize Organize `yaml:"organize"`
}

type Core struct {
	// JournalDir overrides where journals are stored. Empty means the
	// XDG data directory.
	JournalDir string        `yaml:"journal_dir"`
	Verbose    bool          `yaml:"verbose"`
	Restore    RestoreConfig `yaml:"restore"`
}

type RestoreConfig struct {
	Confirm bool `yaml:"confirm"`
	Verbose bool `yaml:"verbose"`
}

type Organize struct {
	Mode            string        `yaml:"mode" validate:"required,oneof=by-type by-date by-both"`
	IncludeHidden   bool          `yaml:"include_hidden"`
	IncludeSymlinks bool          `yaml:"include_symlinks"`
	// flatten_folders takes priority over preserve_folders when both
	// are set.
	Flatten         bool          `yaml:"flatten_folders"`
	PreserveFolders bool          `yaml:"preserve_folders"`
	DeleteEmptyDirs bool          `yaml:"delete_empty_folders"`
	Exclude         ExcludeConfig `yaml:"exclude"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns"`
	Globs    []string   `yaml:"globs"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"validSize"`
	Max string `yaml:"max" validate:"validSize"`
}

type configError struct {
	configPath string
	configDir  string
	parser     parser
	err        error
}

type parser struct{}

func validSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(fl.Field().String())
	re := regexp.MustCompile(`^\d+(KB|MB|GB|TB|PB)|$`) // empty is acceptable
	return re.MatchString(value)
}

func (p parser) getDefaultConfig() Config {
	return Config{
		Core: Core{
			JournalDir: "",
			Verbose:    true,
			Restore: RestoreConfig{
				Confirm: true,
				Verbose: true,
			},
		},
		Organize: Organize{
			Mode:            "by-both",
			IncludeHidden:   false,
			IncludeSymlinks: false,
			Flatten:         false,
			PreserveFolders: false,
			DeleteEmptyDirs: false,
			Exclude: ExcludeConfig{
				Files: []string{
					// metadata droppings that should never be relocated
					".DS_Store",
					"Thumbs.db",
					"desktop.ini",
				},
				Patterns: []string{},
				Globs:    []string{},
				Size:     SizeConfig{},
			},
		},
	}
}

func (p parser) getDefaultConfigContents() string {
	defaultConfig := p.getDefaultConfig()
	content, _ := yaml.Marshal(defaultConfig)
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.SEIRI_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		newConfigFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer newConfigFile.Close()

		if _, err := newConfigFile.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.SEIRI_CONFIG_PATH

	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return "", err
	}

	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			parser:    p,
			configDir: filepath.Dir(path),
			err:       err,
		}
	}

	return path, nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := p.getDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			return cfg, fmt.Errorf("validation error: field %s, %q is invalid", err.Field(), err.Value())
		}
	}
	return cfg, nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validSize)

	return parser{}
}

// Parse loads the config from path, or from the default location, creating
// a default config file on first run.
func Parse(path string) (Config, error) {
	parser := initParser()

	var cfg Config
	var err error
	var configPath string

	if path == "" {
		configPath, err = parser.ensureConfigFile()
		if err != nil {
			return cfg, parsingError{err: err}
		}
	} else {
		configPath = path
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err = parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
