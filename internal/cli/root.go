// Package cli implements the cobra-based commands of the dhi-eol CLI.
//
// Each subcommand (check, catalog) is defined in its own file within this
// package. This file defines the root command that serves as the parent
// for all subcommands and handles the global flags, logging setup, and
// exit code translation.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/dhi-eol/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, all output uses structured JSON format for machine
	// consumption; the step-by-step report is suppressed.
	jsonOutput bool

	// verbose enables debug-level logging on stderr.
	verbose bool

	// configFile is an explicit config file path. Empty means the
	// standard location is probed.
	configFile string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action — it only provides
// help text and global flags. Actual functionality is provided by the
// check and catalog subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dhi-eol",
		Short: "Detect Docker Hardened Image bases and check their EOL status",
		Long: `dhi-eol inspects a Docker image's metadata labels, determines whether the
image derives from a Docker Hardened Image (DHI) base, and if so reports
that base's end-of-life date — from an embedded label or from the Docker
Scout catalog.

The remote catalog lookup requires the DOCKER_USERNAME and DOCKER_PAT
environment variables.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// The logger must be ready before any subcommand runs, since the
		// docker and scout packages log through zerolog.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file path (JSON, JSONC, or YAML). Default: <user config dir>/dhi-eol/config.*")

	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewCatalogCommand())

	return rootCmd
}

// initLogger configures the global zerolog logger. Diagnostics go to
// stderr through a console writer; stdout is reserved for the report and
// JSON output. The default warn level keeps the console quiet unless
// something degrades; --verbose opens it up to debug.
func initLogger() {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode, because stdout is
		// reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
