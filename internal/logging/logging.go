// Package logging builds the charmbracelet logger used by the CLI and the
// HTTP server.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects level, output format and destination.
// Level supports debug/info/warn/error (empty means info); Format supports
// text/json/logfmt (empty means text). A non-empty File sends output to a
// size-rotated log file instead of Output.
type Config struct {
	Level  string
	Format string
	File   string
	Output io.Writer
}

// Rotation limits for File.
const (
	maxSizeMB  = 20
	maxBackups = 5
	maxAgeDays = 14
)

func levelFromString(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, errors.New("invalid log level: " + level)
	}
}

func formatterFromString(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("invalid log format: %s", format)
	}
}

// New creates a logger for cfg. It does not replace the package default.
func New(cfg Config) (*log.Logger, error) {
	lvl, err := levelFromString(cfg.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := formatterFromString(cfg.Format)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	switch {
	case cfg.File != "":
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
	case cfg.Output != nil:
		w = cfg.Output
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}), nil
}

// Init builds a logger for cfg and installs it as the package default.
func Init(cfg Config) (*log.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	log.SetDefault(l)
	return l, nil
}
