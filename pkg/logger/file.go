package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig describes a size-rotated log file.
type FileConfig struct {
	Path       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"LOG_FILE_MAX_AGE_DAYS" envDefault:"28"`
	Compress   bool   `env:"LOG_FILE_COMPRESS" envDefault:"true"`
}

// RotatingFile returns a writer appending to fc.Path and rotating it by
// size. It returns nil when fc.Path is empty. The caller closes it on exit.
func RotatingFile(fc FileConfig) io.WriteCloser {
	if fc.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
	}
}

// WithTee writes every record to w in addition to the main output.
// Nil writers are ignored.
func WithTee(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.tees = append(c.tees, w)
		}
	}
}
