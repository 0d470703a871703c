// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package walker

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/index"
	"github.com/platform-engineering-labs/fxrefs/internal/matcher"
	"github.com/platform-engineering-labs/fxrefs/internal/progress"
	"github.com/platform-engineering-labs/fxrefs/internal/report"
	"github.com/platform-engineering-labs/fxrefs/internal/unityyaml"
)

// Stats describes one directory walk.
type Stats struct {
	Dir    string `json:"dir" yaml:"dir"`
	Files  int    `json:"files" yaml:"files"`
	Failed int    `json:"failed" yaml:"failed"`
	Rows   int    `json:"rows" yaml:"rows"`
}

// Walker applies a matcher set to every matching file below a directory and
// streams the resulting rows to a sink.
type Walker struct {
	Matchers []matcher.Matcher
	Sink     report.Sink
	// Progress receives a progress bar. Nil disables it.
	Progress io.Writer
}

// FindFiles lists the files below dir whose name ends in suffix, in walk order.
func FindFiles(dir, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), suffix) {
			files = append(files, index.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Walk processes every file below dir ending in suffix. A file that fails to
// parse or match is logged and skipped. Only a failing sink or a cancelled
// context stops the walk.
func (w *Walker) Walk(ctx context.Context, dir, suffix string) (Stats, error) {
	stats := Stats{Dir: dir}

	slog.Info("Scanning directory", "dir", dir, "suffix", suffix)
	files, err := FindFiles(dir, suffix)
	if err != nil {
		return stats, fmt.Errorf("list %s files in %s: %w", suffix, dir, err)
	}

	bar := progress.New(w.Progress, len(files), "scanning")
	defer bar.Finish()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		bar.Describe(path.Base(file))
		bar.Step()
		stats.Files++

		rows, err := w.processFile(file)
		if err != nil {
			stats.Failed++
			slog.Error("Failed to process file", "path", file, "error", err)
			continue
		}

		for _, row := range rows {
			if err := w.Sink.Write(row); err != nil {
				return stats, err
			}
			stats.Rows++
		}
	}

	slog.Info("Directory scanned", "dir", dir, "files", stats.Files, "failed", stats.Failed, "rows", stats.Rows)
	return stats, nil
}

func (w *Walker) processFile(file string) (rows []effectref.Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()

	doc, err := unityyaml.Load(file)
	if err != nil {
		return nil, err
	}

	refs := effectref.NewRefSet(path.Base(file), file)
	for _, m := range w.Matchers {
		if err := m.Search(doc, refs); err != nil {
			return nil, fmt.Errorf("%s matcher: %w", m.Kind(), err)
		}
	}

	return refs.Rows(), nil
}
