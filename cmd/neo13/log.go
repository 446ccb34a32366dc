package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LOG_FILE_MAX_SIZE    = 10 // Megabytes before a log file is rotated.
	LOG_FILE_MAX_BACKUPS = 3  // Rotated log files kept.
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the root logger. The closer releases the log file, if any.
func newLogger(cfg config, stderr io.Writer) (logger hclog.Logger, closer io.Closer, err error) {
	level := hclog.LevelFromString(cfg.LogLevel)
	if level == hclog.NoLevel {
		err = fmt.Errorf("%w: %v", ErrLogLevel, cfg.LogLevel)
		return
	}
	if cfg.Verbose && level > hclog.Debug {
		level = hclog.Debug
	}

	var output io.Writer = stderr
	closer = nopCloser{}
	if len(cfg.LogFile) != 0 {
		rotate := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    LOG_FILE_MAX_SIZE,
			MaxBackups: LOG_FILE_MAX_BACKUPS,
		}
		output = rotate
		closer = rotate
	}
	if output == nil {
		output = os.Stderr
	}

	logger = hclog.New(&hclog.LoggerOptions{
		Name:   "neo13",
		Level:  level,
		Output: output,
	})

	return
}
