// Package config loads hql CLI configuration from defaults, hql.yaml,
// HQL_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/tangwind/spring-data-jpa/internal/cli/output"
	"github.com/tangwind/spring-data-jpa/pkg/format"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

// Config holds all CLI configuration options.
type Config struct {
	MaxDepth      int           `koanf:"max_depth"`
	Output        string        `koanf:"output"`
	LogLevel      string        `koanf:"log_level"`
	Color         string        `koanf:"color"`
	KeywordCase   string        `koanf:"keyword_case"`
	Multiline     bool          `koanf:"multiline"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
	Concurrency   int           `koanf:"concurrency"`
	Extensions    []string      `koanf:"extensions"`
}

// Default configuration values.
const (
	DefaultOutput        = "auto"
	DefaultLogLevel      = "warn"
	DefaultColor         = "auto"
	DefaultKeywordCase   = "upper"
	DefaultWatchDebounce = 200 * time.Millisecond
)

// DefaultExtensions are the file suffixes picked up when checking directories.
var DefaultExtensions = []string{".hql", ".jpql"}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		MaxDepth:      parser.DefaultMaxDepth,
		Output:        DefaultOutput,
		LogLevel:      DefaultLogLevel,
		Color:         DefaultColor,
		KeywordCase:   DefaultKeywordCase,
		WatchDebounce: DefaultWatchDebounce,
		Concurrency:   runtime.GOMAXPROCS(0),
		Extensions:    append([]string(nil), DefaultExtensions...),
	}
}

// Validate checks every option and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if _, err := output.ParseMode(c.Output); err != nil {
		errs = append(errs, err)
	}
	if _, err := output.ParseColorMode(c.Color); err != nil {
		errs = append(errs, err)
	}
	if _, err := format.ParseKeywordCase(c.KeywordCase); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with a dot", ext))
		}
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// OutputMode returns the parsed output mode.
func (c *Config) OutputMode() output.Mode {
	m, err := output.ParseMode(c.Output)
	if err != nil {
		return output.ModeAuto
	}
	return m
}

// ColorMode returns the parsed color mode.
func (c *Config) ColorMode() output.ColorMode {
	m, err := output.ParseColorMode(c.Color)
	if err != nil {
		return output.ColorAuto
	}
	return m
}

// FormatOptions returns the formatter options selected by the configuration.
func (c *Config) FormatOptions() []format.Option {
	kc, err := format.ParseKeywordCase(c.KeywordCase)
	if err != nil {
		kc = format.Upper
	}
	opts := []format.Option{format.WithKeywordCase(kc)}
	if c.Multiline {
		opts = append(opts, format.WithMultiline())
	}
	return opts
}

// ParserOptions returns the parser options selected by the configuration.
func (c *Config) ParserOptions(logger *slog.Logger) []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(c.MaxDepth)}
	if logger != nil {
		opts = append(opts, parser.WithLogger(logger))
	}
	return opts
}
