// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"respack-cli/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// configCmd groups configuration management subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage respack configuration",
	Long: `Manage the respack configuration file.

Examples:
  respack config show    Print the effective configuration
  respack config init    Create a default config file
  respack config path    Print the config file location`,
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the effective configuration",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := appConfig
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// configInitCmd creates a default config file if none exists
var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Create a default config file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		if _, err := os.Stat(cfgPath); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("config file already exists: ")+cfgPath)
			return nil
		}
		if err := config.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("created ")+cfgPath)
		return nil
	},
}

// configPathCmd prints the config file location
var configPathCmd = &cobra.Command{
	Use:          "path",
	Short:        "Print the config file location",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
