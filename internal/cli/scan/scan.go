// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/fxrefs/internal/cli/cmd"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/display"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/printer"
	"github.com/platform-engineering-labs/fxrefs/internal/config"
	"github.com/platform-engineering-labs/fxrefs/internal/logging"
	"github.com/platform-engineering-labs/fxrefs/internal/matcher"
	"github.com/platform-engineering-labs/fxrefs/internal/report"
	"github.com/platform-engineering-labs/fxrefs/internal/runner"
)

type ScanOptions struct {
	ConfigFile    string
	Output        string
	Format        report.Format
	LogFile       string
	LogLevel      string
	Quiet         bool
	TimelineField string
	Top           int
}

func validateScanOptions(opts *ScanOptions) error {
	if opts.ConfigFile == "" {
		return cmd.FlagErrorf("a configuration file is required")
	}
	if !opts.Format.Valid() {
		return cmd.FlagErrorf("format must be 'csv' or 'jsonl'")
	}
	if opts.Top < 0 {
		return cmd.FlagErrorf("top must be 0 (unlimited) or a positive number")
	}
	if strings.TrimSpace(opts.TimelineField) == "" {
		return cmd.FlagErrorf("timeline-field must not be empty")
	}
	if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
		return cmd.FlagErrorWrap(err)
	}

	return nil
}

func ScanCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "scan",
		Short: "Report every effect referenced by UI prefabs, scenes and timelines",
		RunE: func(command *cobra.Command, args []string) error {
			opts := &ScanOptions{}
			if len(args) > 0 {
				opts.ConfigFile = args[0]
			}
			opts.Output, _ = command.Flags().GetString("output")
			format, _ := command.Flags().GetString("format")
			opts.Format = report.Format(strings.ToLower(format))
			opts.LogFile, _ = command.Flags().GetString("log-file")
			opts.LogLevel, _ = command.Flags().GetString("log-level")
			opts.Quiet, _ = command.Flags().GetBool("quiet")
			opts.TimelineField, _ = command.Flags().GetString("timeline-field")
			opts.Top, _ = command.Flags().GetInt("top")

			return runScan(command.Context(), command.OutOrStdout(), opts)
		},
		Args: cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			"type":     "Scan",
			"args":     "<sys_env.json>",
			"examples": "{{.Name}} {{.Command}} ~/moon/sys_env.json --format jsonl --top 20",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("output", "", "Report file path (default: <branch>_<commit>_<timestamp> in the working directory)")
	command.Flags().String("format", string(report.FormatCSV), "Report format (csv | jsonl)")
	command.Flags().String("log-file", "", "Also write a debug log to this file")
	command.Flags().String("log-level", "info", "Console log level (debug | info | warn | error | off)")
	command.Flags().Bool("quiet", false, "Hide progress and summary, print only the report path")
	command.Flags().String("timeline-field", matcher.DefaultEffectIDField, "Field of timeline clips holding the effect ID")
	command.Flags().Int("top", 10, "Number of most referenced effects in the summary (0 = all)")

	return command
}

func runScan(ctx context.Context, out io.Writer, opts *ScanOptions) error {
	if err := validateScanOptions(opts); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(opts.LogLevel)
	if err := logging.Setup(logging.Options{ConsoleLevel: level, FilePath: opts.LogFile}); err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	var progress io.Writer
	if !opts.Quiet {
		progress = os.Stderr
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx, cfg, runner.Options{
		Output:        opts.Output,
		Format:        opts.Format,
		TimelineField: opts.TimelineField,
		Progress:      progress,
	})
	if err != nil {
		if result != nil && errors.Is(err, context.Canceled) {
			return fmt.Errorf("scan interrupted, partial report written to %s", result.Output)
		}
		return err
	}

	if opts.Quiet {
		_, err = fmt.Fprintln(out, result.Output)
		return err
	}

	display.PrintBanner(out)
	p := printer.NewHumanReadablePrinter[runner.Result](out)
	return p.Print(result, printer.PrintOptions{MaxResults: opts.Top})
}
