package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Level  string
	Format string // "console" or "json"
	File   string
}

var (
	mu           sync.RWMutex
	globalLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	logFile      *os.File
)

// Init configures the global logger. It may be called more than once; the
// previous log file, if any, is closed.
func Init(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", opts.Level)
		}
		level = parsed
	}

	var console io.Writer = os.Stderr
	if opts.Format != "json" {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	writers := []io.Writer{console}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			return errors.Wrapf(err, "failed to open log file %s", opts.File)
		}
		logFile = file
		writers = append(writers, file)
	}

	globalLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	log.Logger = globalLogger
	return nil
}

// Close releases the log file opened by Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// WithLogger returns a context carrying the global logger enriched with fields.
func WithLogger(ctx context.Context, fields map[string]interface{}) context.Context {
	l := Get().With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// Get returns a copy of the global logger.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// FromContext extracts the logger stored in ctx, falling back to the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	// zerolog.Ctx returns a disabled logger if none is in context
	if l.GetLevel() == zerolog.Disabled {
		g := Get()
		return &g
	}
	return l
}

func Debug(ctx context.Context) *zerolog.Event {
	return FromContext(ctx).Debug()
}

func Info(ctx context.Context) *zerolog.Event {
	return FromContext(ctx).Info()
}

func Warn(ctx context.Context) *zerolog.Event {
	return FromContext(ctx).Warn()
}

func Error(ctx context.Context) *zerolog.Event {
	return FromContext(ctx).Error()
}
