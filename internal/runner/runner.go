// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/platform-engineering-labs/fxrefs/internal/config"
	"github.com/platform-engineering-labs/fxrefs/internal/index"
	"github.com/platform-engineering-labs/fxrefs/internal/matcher"
	"github.com/platform-engineering-labs/fxrefs/internal/report"
	"github.com/platform-engineering-labs/fxrefs/internal/util"
	"github.com/platform-engineering-labs/fxrefs/internal/vcs"
	"github.com/platform-engineering-labs/fxrefs/internal/walker"
)

const outputTimeFormat = "20060102150405"

type Options struct {
	// Output is the report path. When empty the report is named after the
	// asset repository's branch, commit and the current time, inside OutputDir.
	Output    string
	OutputDir string
	Format    report.Format
	// TimelineField names the effect ID field of timeline clips.
	TimelineField string
	// Progress receives progress bars. Nil disables them.
	Progress io.Writer

	now func() time.Time
}

// DirectoryClass is a group of documents scanned with the same matcher set.
type DirectoryClass struct {
	Name     string
	Dir      string
	Suffix   string
	Matchers []matcher.Matcher
}

// RunContext owns everything shared across the files of one run: the
// read-only indices and the report writer.
type RunContext struct {
	RunID       string
	Config      *config.Config
	Layout      config.Layout
	Effects     *index.IdentityIndex
	EffectTable *index.EffectTable

	opts Options
}

// Prepare builds the run's indices. Any failure here is a configuration error.
func Prepare(cfg *config.Config, opts Options) (*RunContext, error) {
	layout := cfg.Layout()

	effects, err := index.BuildIdentityIndex(layout.EffectPrefabDir, index.BuildOptions{Progress: opts.Progress})
	if err != nil {
		return nil, fmt.Errorf("build effect index: %w", err)
	}

	table, err := index.LoadEffectTable(layout.EffectTableFile, index.EffectTableRoot)
	if err != nil {
		return nil, fmt.Errorf("load effect table: %w", err)
	}

	return &RunContext{
		RunID:       ksuid.New().String(),
		Config:      cfg,
		Layout:      layout,
		Effects:     effects,
		EffectTable: table,
		opts:        opts,
	}, nil
}

// Classes returns the directory classes in scan order.
func (rc *RunContext) Classes() []DirectoryClass {
	inline := matcher.NewInlinePath()
	instances := matcher.NewPrefabInstance(rc.Effects)
	timeline := matcher.NewTimelineID(rc.EffectTable, rc.opts.TimelineField)

	return []DirectoryClass{
		{Name: "ui", Dir: rc.Layout.UIPrefabDir, Suffix: config.PrefabFileSuffix, Matchers: []matcher.Matcher{inline, instances}},
		{Name: "scene", Dir: rc.Layout.SceneDir, Suffix: config.SceneFileSuffix, Matchers: []matcher.Matcher{inline, instances}},
		{Name: "timeline", Dir: rc.Layout.TimelineDir, Suffix: config.TimelineFileSuffix, Matchers: []matcher.Matcher{timeline}},
	}
}

// ClassStats is the outcome of scanning one directory class.
type ClassStats struct {
	Name    string `json:"name" yaml:"name"`
	Skipped bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	walker.Stats
}

type Result struct {
	RunID      string          `json:"runId" yaml:"runId"`
	Output     string          `json:"output" yaml:"output"`
	Repository *vcs.Info       `json:"repository,omitempty" yaml:"repository,omitempty"`
	Classes    []ClassStats    `json:"classes" yaml:"classes"`
	Effects    int             `json:"indexedEffects" yaml:"indexedEffects"`
	Duplicates int             `json:"duplicateGuids" yaml:"duplicateGuids"`
	Summary    *report.Summary `json:"-" yaml:"-"`
}

// Rows returns the number of report rows written.
func (r *Result) Rows() int {
	n := 0
	for _, c := range r.Classes {
		n += c.Rows
	}
	return n
}

// Failed returns the number of documents that could not be processed.
func (r *Result) Failed() int {
	n := 0
	for _, c := range r.Classes {
		n += c.Failed
	}
	return n
}

// Run builds the indices, opens the report and scans every directory class.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if opts.Format == "" {
		opts.Format = report.FormatCSV
	}
	if !opts.Format.Valid() {
		return nil, fmt.Errorf("unsupported report format: %s", opts.Format)
	}

	rc, err := Prepare(cfg, opts)
	if err != nil {
		return nil, err
	}

	prev := slog.Default()
	slog.SetDefault(prev.With("run", rc.RunID))
	defer slog.SetDefault(prev)

	return rc.Execute(ctx)
}

// Execute opens the report and scans every directory class into it.
func (rc *RunContext) Execute(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:      rc.RunID,
		Effects:    rc.Effects.Len(),
		Duplicates: rc.Effects.Duplicates(),
		Summary:    report.NewSummary(),
	}

	output, info, err := rc.outputPath()
	if err != nil {
		return nil, err
	}
	result.Output = output
	result.Repository = info

	writer, err := report.Create(output, rc.opts.Format)
	if err != nil {
		return nil, err
	}
	slog.Info("Report created", "path", output)

	w := &walker.Walker{
		Sink:     report.MultiSink(writer, result.Summary),
		Progress: rc.opts.Progress,
	}

	var walkErr error
	for _, class := range rc.Classes() {
		stats := ClassStats{Name: class.Name}
		if !util.DirExists(class.Dir) {
			slog.Warn("Directory not found, skipping", "class", class.Name, "dir", class.Dir)
			stats.Dir = class.Dir
			stats.Skipped = true
			result.Classes = append(result.Classes, stats)
			continue
		}

		w.Matchers = class.Matchers
		stats.Stats, walkErr = w.Walk(ctx, class.Dir, class.Suffix)
		result.Classes = append(result.Classes, stats)
		if walkErr != nil {
			break
		}
	}

	if err := writer.Close(); err != nil && walkErr == nil {
		walkErr = fmt.Errorf("close report: %w", err)
	}
	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) {
			slog.Warn("Scan interrupted, report is incomplete", "path", output, "rows", writer.Rows())
		}
		return result, walkErr
	}

	slog.Info("Effect reference scan finished", "path", output, "rows", writer.Rows(), "failed", result.Failed())
	return result, nil
}

func (rc *RunContext) outputPath() (string, *vcs.Info, error) {
	if rc.opts.Output != "" {
		return util.ExpandHomePath(rc.opts.Output), nil, nil
	}

	info, err := vcs.Lookup(rc.Config.ResPath)
	if err != nil {
		return "", nil, fmt.Errorf("read repository identity of %s: %w", rc.Config.ResPath, err)
	}

	now := time.Now
	if rc.opts.now != nil {
		now = rc.opts.now
	}

	return filepath.Join(rc.opts.OutputDir, ReportFileName(info, now(), rc.opts.Format)), &info, nil
}

// ReportFileName builds "<branch>_<commit>_<timestamp><ext>".
func ReportFileName(info vcs.Info, at time.Time, format report.Format) string {
	branch := strings.NewReplacer("/", "-", `\`, "-", " ", "-").Replace(info.Branch)
	return fmt.Sprintf("%s_%s_%s%s", branch, info.ShortCommit(), at.Format(outputTimeFormat), format.Extension())
}
