// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"respack-cli/internal/config"
	"respack-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// jsonOutput switches listing output to JSON
	jsonOutput bool
	// blocklistFlag extends the configured pack blocklist
	blocklistFlag []string
	// prefixMapFlag adds prefix overrides on top of the configured ones
	prefixMapFlag map[string]string
	// defaultPrefixFlag overrides the configured default prefix
	defaultPrefixFlag string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "respack",
		Short: "A pluggable resource lookup tool",
		Long: TitleStyle.Render("respack") + SubtitleStyle.Render(" - A pluggable resource lookup tool") + `

respack resolves short, human-friendly names like 'lucide:lightbulb'
to resources served by independently installed resource packs. Packs
register themselves at startup; respack discovers them, builds a prefix
namespace with deterministic collision handling, and fetches content.

Name grammar: [dist/]prefix:resource-name. Prefixes are case-insensitive;
resource names are case-sensitive. The fully-qualified 'dist/pack:NAME'
form always works, even when a short prefix is contested.

` + SubtitleStyle.Render("Examples:") + `
  respack get lucide:lightbulb       Fetch a resource by short prefix
  respack get acme/lucide:lightbulb  Fetch with a fully-qualified name
  respack list --pack lucide         List one pack's resources
  respack packs                      Show installed packs
  respack prefixes                   Show the prefix table and collisions`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/respack/config.toml)")
	rootCmd.PersistentFlags().StringSliceVar(&blocklistFlag, "blocklist", nil, "packs to exclude (short or dist/pack form, repeatable)")
	rootCmd.PersistentFlags().StringToStringVar(&prefixMapFlag, "prefix-map", nil, "prefix overrides as alias=dist/pack pairs")
	rootCmd.PersistentFlags().StringVar(&defaultPrefixFlag, "default-prefix", "", "prefix applied to bare resource names")

	// Add subcommands
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(prefixesCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file if present.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		// Always surface config loading errors to the user; the run
		// continues on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	if cfg != nil {
		setAppConfig(cfg)
		// Apply verbose from config if not set via flag
		if !verbose {
			verbose = cfg.UI.Verbose
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
