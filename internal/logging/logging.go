// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/platform-engineering-labs/fxrefs/internal/util"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

func SetupInitialLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.RFC3339,
		}),
	))

	redirectStandardLog()
}

type Options struct {
	// ConsoleLevel is the minimum level written to Console. NoLoggingLevel silences it.
	ConsoleLevel slog.Level
	// Console defaults to stderr so the progress bar and logs don't interleave with piped output.
	Console io.Writer
	// FilePath enables a rotating debug log file when set.
	FilePath string
}

// Setup installs the run's default logger: a tint console handler and,
// optionally, a lumberjack backed file handler that always logs at debug.
func Setup(opts Options) error {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handler := &MultiLevelHandler{}
	if opts.ConsoleLevel != NoLoggingLevel {
		handler.consoleHandler = tint.NewHandler(console, &tint.Options{
			Level:      opts.ConsoleLevel,
			TimeFormat: time.RFC3339,
		})
	}

	if opts.FilePath != "" {
		path := util.ExpandHomePath(opts.FilePath)
		if err := util.EnsureParentDir(path); err != nil {
			return fmt.Errorf("create log folder hierarchy: %w", err)
		}

		handler.fileHandler = tint.NewHandler(&lumberjack.Logger{
			Filename: path,
			Compress: true,
		}, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	slog.SetDefault(slog.New(handler))
	redirectStandardLog()

	return nil
}

// ParseLevel maps a level name to a slog level. "off" disables console logging.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off", "none":
		return NoLoggingLevel, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (debug | info | warn | error | off)", s)
	}
}

// overwrite standard log so it's always redirected to slog, in case some deep dep is using it
func redirectStandardLog() {
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

type slogWriter struct{}

var levelPrefixes = []struct {
	prefix string
	level  slog.Level
}{
	{"ERROR ", slog.LevelError},
	{"WARN ", slog.LevelWarn},
	{"INFO ", slog.LevelInfo},
}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := bytes.TrimRight(p, "\n")
	for _, lp := range levelPrefixes {
		if rest, ok := bytes.CutPrefix(msg, []byte(lp.prefix)); ok {
			slog.Log(context.Background(), lp.level, string(rest))
			return len(p), nil
		}
	}

	slog.Debug(string(msg))
	return len(p), nil
}

// MultiLevelHandler fans records out to a console and a file handler, each
// filtering on its own level. Either handler may be nil.
type MultiLevelHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func (h *MultiLevelHandler) handlers() []slog.Handler {
	var hs []slog.Handler
	if h.fileHandler != nil {
		hs = append(hs, h.fileHandler)
	}
	if h.consoleHandler != nil {
		hs = append(hs, h.consoleHandler)
	}
	return hs
}

func (h *MultiLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers() {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers() {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *MultiLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &MultiLevelHandler{}
	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithAttrs(attrs)
	}
	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}
	return newHandler
}

func (h *MultiLevelHandler) WithGroup(name string) slog.Handler {
	newHandler := &MultiLevelHandler{}
	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithGroup(name)
	}
	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}
	return newHandler
}
