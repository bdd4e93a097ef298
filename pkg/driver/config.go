package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/rhino1998/duet/pkg/lexer"
	"gopkg.in/yaml.v3"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	// Code names the sink for the generated C program; the file written is
	// Code + ".c". Empty disables code output.
	Code string `yaml:"code"`

	Debug     bool   `yaml:"debug"`
	LogFormat string `yaml:"log_format"`

	// Keywords overrides the reserved word set. Nil keeps the default.
	Keywords []string `yaml:"keywords"`

	Stdin       io.Reader `yaml:"-"`
	Stdout      io.Writer `yaml:"-"`
	Diagnostics io.Writer `yaml:"-"`
}

// Validate checks c and fills in defaults for unset streams.
func (c *Config) Validate(logger *slog.Logger) error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}

	if !slices.Contains([]string{LogFormatText, LogFormatJSON}, c.LogFormat) {
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}

	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}

	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}

	if c.Diagnostics == nil {
		c.Diagnostics = os.Stderr
	}

	for _, kw := range c.Keywords {
		if kw == "" {
			return fmt.Errorf("invalid empty keyword")
		}
	}

	if c.Code == "" {
		logger.Debug("no code sink configured")
	}

	return nil
}

// LexerConfig returns the lexer configuration selected by c.
func (c *Config) LexerConfig() lexer.Config {
	cfg := lexer.DefaultConfig()
	if c.Keywords != nil {
		cfg.Keywords = make([]lexer.Kind, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			cfg.Keywords = append(cfg.Keywords, lexer.Kind(kw))
		}
	}
	return cfg
}

// LoadConfig reads a YAML config file. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	var config Config
	if path == "" {
		return config, fmt.Errorf("config: empty path")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return config, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	return config, nil
}
