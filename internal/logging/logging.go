// Package logging wraps zerolog behind a printf-flavored call-site shape
// (Info/Warn/Error with format args), so the rest of the codebase reads
// the same regardless of the backend.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin, printf-flavored facade over a zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// Verbosity is a stacked -v flag count: 0 warnings only, 1 adds info,
// 2+ adds debug.
type Verbosity int

func (v Verbosity) level() zerolog.Level {
	switch {
	case v <= 0:
		return zerolog.WarnLevel
	case v == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// New builds a Logger writing to stderr, using a console writer when
// stderr is a TTY and structured JSON otherwise.
func New(v Verbosity) *Logger {
	var w io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	zl := zerolog.New(w).Level(v.level()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewRotatingWriter returns a lumberjack sink for long Monte-Carlo runs
// that should keep a bounded on-disk log history.
func NewRotatingWriter(path string, maxSizeMB, maxBackups, maxAgeDays int) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
}

// WithWriter returns a copy of the Logger additionally writing to w (for
// example a rotating file sink alongside the console).
func (l *Logger) WithWriter(w io.Writer) *Logger {
	mw := zerolog.MultiLevelWriter(l.zl, w)
	return &Logger{zl: zerolog.New(mw).Level(l.zl.GetLevel()).With().Timestamp().Logger()}
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}
