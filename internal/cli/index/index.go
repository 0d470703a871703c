// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package index

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/fxrefs/internal/cli/cmd"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/display"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/printer"
	"github.com/platform-engineering-labs/fxrefs/internal/config"
	effectindex "github.com/platform-engineering-labs/fxrefs/internal/index"
	"github.com/platform-engineering-labs/fxrefs/internal/logging"
)

type IndexOptions struct {
	ConfigFile     string
	OutputConsumer printer.Consumer
	OutputSchema   string
	MaxResults     int
}

func validateIndexOptions(opts *IndexOptions) error {
	if opts.ConfigFile == "" {
		return cmd.FlagErrorf("a configuration file is required")
	}
	if opts.MaxResults < 0 {
		return cmd.FlagErrorf("max-results must be 0 (unlimited) or a positive number")
	}
	if opts.OutputConsumer != printer.ConsumerHuman && opts.OutputConsumer != printer.ConsumerMachine {
		return cmd.FlagErrorf("output-consumer must be 'human' or 'machine'")
	}
	if opts.OutputConsumer == printer.ConsumerMachine {
		if opts.OutputSchema != "json" && opts.OutputSchema != "yaml" {
			return cmd.FlagErrorf("output-schema must be 'json' or 'yaml' for machine consumer")
		}
	}

	return nil
}

func IndexCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "index",
		Short: "List effect prefabs by GUID",
		PreRunE: func(command *cobra.Command, args []string) error {
			return logging.Setup(logging.Options{ConsoleLevel: slog.LevelWarn})
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &IndexOptions{}
			if len(args) > 0 {
				opts.ConfigFile = args[0]
			}
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")
			opts.MaxResults, _ = command.Flags().GetInt("max-results")

			return runIndex(command.OutOrStdout(), opts)
		},
		Args: cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			"type":     "Inspect",
			"args":     "<sys_env.json>",
			"examples": "{{.Name}} {{.Command}} ~/moon/sys_env.json --output-consumer machine --output-schema yaml",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command output (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json | yaml)")
	command.Flags().Int("max-results", 50, "Maximum number of effects to display in the tree (0 = unlimited)")

	return command
}

type listing struct {
	Root       string              `json:"root" yaml:"root"`
	Effects    []effectindex.Entry `json:"effects" yaml:"effects"`
	Duplicates int                 `json:"duplicateGuids" yaml:"duplicateGuids"`
	Skipped    int                 `json:"skipped" yaml:"skipped"`
}

func runIndex(out io.Writer, opts *IndexOptions) error {
	if err := validateIndexOptions(opts); err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	x, err := effectindex.BuildIdentityIndex(cfg.Layout().EffectPrefabDir, effectindex.BuildOptions{})
	if err != nil {
		return fmt.Errorf("build effect index: %w", err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		p := printer.NewMachineReadablePrinter[listing](out, opts.OutputSchema)
		return p.Print(&listing{
			Root:       x.Root,
			Effects:    x.Entries(),
			Duplicates: x.Duplicates(),
			Skipped:    x.Skipped(),
		})
	}

	display.PrintBanner(out)
	p := printer.NewHumanReadablePrinter[effectindex.IdentityIndex](out)
	return p.Print(x, printer.PrintOptions{MaxResults: opts.MaxResults})
}
