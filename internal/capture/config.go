package capture

import (
	"fmt"

	"golang.org/x/exp/slog"
)

// Config holds the settings of request log capturing.
type Config struct {
	// Pattern is the layout of the captured lines.
	Pattern string `default:"%-5level - %msg" yaml:"pattern"`

	// Charset is the charset of the captured lines. Only UTF-8 is
	// supported.
	Charset string `default:"UTF-8" yaml:"charset"`

	// Level is the lowest level of the captured records.
	Level string `default:"debug" yaml:"level"`

	// MaxLines is the maximum amount of lines returned per request.
	MaxLines int `default:"5000" yaml:"max_lines"`

	// MaxBytes is the maximum size of lines returned per request.
	// The default value is 1MB.
	MaxBytes int `default:"1048576" yaml:"max_bytes"`
}

// Limits returns the sink limits of the config.
func (c Config) Limits() Limits {
	return Limits{
		MaxLines: c.MaxLines,
		MaxBytes: c.MaxBytes,
	}
}

// Formatter compiles the configured pattern.
func (c Config) Formatter() (*Formatter, error) {
	return NewFormatter(c.Pattern, c.Charset)
}

// CaptureLevel parses the configured level.
func (c Config) CaptureLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("parsing capture level: %w", err)
	}

	return level, nil
}
