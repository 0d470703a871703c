// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/fxrefs"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/cmd"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/display"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/index"
	"github.com/platform-engineering-labs/fxrefs/internal/cli/scan"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("Find out which effects the UI, scenes and timelines actually use")
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           display.Tool,
		Short:         display.Tool + " CLI",
		Long:          longDescription(),
		Version:       fxrefs.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		display.PrintBanner(c.OutOrStdout())
		hp(c, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	rootCmd.AddCommand(scan.ScanCmd())
	rootCmd.AddCommand(index.IndexCmd())

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, c := range rootCmd.Commands() {
		c.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", c.Name()))
		c.SilenceUsage = true
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version: %s\ngo version: %s\n", display.Tool, fxrefs.Version, runtime.Version()))

	return rootCmd
}

func init() {
	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, c *cobra.Command) string {
		replaced := strings.ReplaceAll(examples, "{{.Name}}", c.Root().Name())
		return strings.ReplaceAll(replaced, "{{.Command}}", c.Name())
	})

	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		longest := 0
		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}
			longest = max(longest, length)
		})
		longest += 10

		var usage []string
		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longest, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "false" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})
}

// Execute runs the CLI with args and returns the command that ran.
func Execute(ctx context.Context, args []string) (*cobra.Command, error) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContextC(ctx)
}

func Start() {
	c, err := Execute(context.Background(), os.Args[1:])
	if err == nil {
		return
	}

	fmt.Println(display.Red("Error: " + err.Error()))

	if cmd.IsFlagError(err) {
		fmt.Println()
		_ = c.Usage()
	}
	os.Exit(1)
}
