package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultFile is picked up from the working directory when no file is named.
const DefaultFile = "ranni.toml"

type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

var (
	OutputFormats = []string{"litter", "sexp"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
)

type Config struct {
	Compile Compile `toml:"compile" yaml:"compile"`
	LSP     LSP     `toml:"lsp" yaml:"lsp"`
	REPL    REPL    `toml:"repl" yaml:"repl"`
}

type Compile struct {
	Format string `toml:"format" yaml:"format"`
	Tokens bool   `toml:"tokens" yaml:"tokens"`
}

type LSP struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

type REPL struct {
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

func Default() *Config {
	return &Config{
		Compile: Compile{
			Format: "litter",
		},
		LSP: LSP{
			LogLevel: "info",
		},
		REPL: REPL{
			HistoryFile: defaultHistoryFile(),
		},
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ranni_history")
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional behaves like Load for an explicit path. With an empty path it
// falls back to DefaultFile, and to the defaults when that does not exist.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	if _, err := os.Stat(DefaultFile); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return Load(DefaultFile)
}

func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Compile.Format) {
		return fmt.Errorf("compile.format: unknown output format %q (expected one of %s)",
			c.Compile.Format, strings.Join(OutputFormats, ", "))
	}
	if !slices.Contains(LogLevels, c.LSP.LogLevel) {
		return fmt.Errorf("lsp.log_level: unknown level %q (expected one of %s)",
			c.LSP.LogLevel, strings.Join(LogLevels, ", "))
	}
	return nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}
