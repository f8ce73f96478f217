package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// LogConfiguration is loaded from the logger config file and overridden by flags.
type LogConfiguration struct {
	Level      string `yaml:"defaultLevel"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"outputPath"`
	TimeFormat string `yaml:"timeFormat"`
}

// LoadConfiguration decodes a YAML logger configuration file.
func LoadConfiguration(path string) (*LogConfiguration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening logger configuration file: %w", err)
	}
	defer f.Close()

	cfg := &LogConfiguration{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding logger configuration (%s): %w", path, err)
	}
	return cfg, nil
}

// New builds a logger for cfg tagged with the module name.
func New(cfg *LogConfiguration, module string) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out, err := Output(cfg.OutputPath)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: composeAttrFmt(formatTimeAttr(cfg.TimeFormat)),
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		opts.ReplaceAttr = composeAttrFmt(opts.ReplaceAttr, formatDataAttrAsJSON)
		h = slog.NewTextHandler(out, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(out, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(h).With(slog.String(ModuleKey, module)), nil
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR in any case; empty means INFO.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Output resolves a log file path or one of stdout, stderr, discard.
func Output(path string) (io.Writer, error) {
	switch path {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "discard":
		return io.Discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// NOP returns a logger that drops everything, for tests.
func NOP() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
