// Package cmd provides the CLI commands for Plantcare.
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/plantcare/internal/output"
	"github.com/manav03panchal/plantcare/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "plantcare",
	Short: "Keep track of how your plants are watered",
	Long: `Plantcare is a small plant-care journal. Each report records a plant,
where it lives, how often it needs water, when it was last watered and
some notes. Run it without arguments for the interactive screen.

Examples:
  plantcare
  plantcare add --name Fern --location Kitchen --frequency 7 \
      --date yesterday --notes "Needs indirect light daily"
  plantcare list --search kitchen
  plantcare delete 1718000000000
  plantcare theme`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		opts := runtime.DefaultOptions()
		opts.ConfigFile = flagConfig
		opts.Format = output.ParseFormat(flagFormat)
		opts.ColorMode = output.ParseColorMode(flagColor)
		opts.Debug = flagDebug
		opts.UI = !cmd.HasParent() || cmd.Name() == "ui"

		var err error
		ctx, err = runtime.New(opts)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the interactive screen
		return runUI(cmd, args)
	},
}

// Execute runs the root command and releases the runtime context.
func Execute() error {
	err := rootCmd.Execute()
	if ctx != nil {
		if flushErr := ctx.Flush(); err == nil {
			err = flushErr
		}
		if closeErr := ctx.Close(); err == nil {
			err = closeErr
		}
		ctx = nil
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/plantcare/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("plantcare %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Die prints an error and exits.
func Die(err error) {
	if output.ParseFormat(flagFormat) == output.FormatJSON {
		// stdout may already hold the view document.
		f := output.NewFormatter()
		f.Writer = os.Stderr
		output.NewJSONFormatter(f).PrintError("error", err.Error(), runtime.GetSuggestion(err))
	} else {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
	}
	os.Exit(runtime.ExitCode(err))
}
