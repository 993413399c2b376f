// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"respack-cli/pkg/resource"

	"github.com/spf13/cobra"
)

// packView is the JSON shape of one installed pack.
type packView struct {
	Name        string   `json:"name"`
	Dist        string   `json:"dist"`
	Pack        string   `json:"pack"`
	Aliases     []string `json:"aliases,omitempty"`
	Priority    int      `json:"priority"`
	Description string   `json:"description,omitempty"`
	SourceURL   string   `json:"source_url,omitempty"`
	LicenseSPDX string   `json:"license_spdx,omitempty"`
}

// packsCmd lists installed resource packs
var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List installed resource packs",
	Long: `List every discovered resource pack by qualified name.

With --verbose, also shows each pack's aliases, priority, and the
metadata it declares about itself.

Examples:
  respack packs
  respack packs -v
  respack packs --json`,
	SilenceUsage: true,
	RunE:         runPacks,
}

func init() {
	packsCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
}

func runPacks(cmd *cobra.Command, _ []string) error {
	reg := getRegistry()

	views := make([]packView, 0)
	for _, qualified := range reg.ListPacks() {
		record, ok := reg.PackRecord(qualified)
		if !ok {
			continue
		}
		view := packView{
			Name:     string(qualified),
			Dist:     record.DistName,
			Pack:     record.PackName,
			Aliases:  record.Aliases,
			Priority: record.Priority,
		}
		if provider, ok := record.Pack.(resource.InfoProvider); ok {
			info := provider.PackInfo()
			view.Description = info.Description
			view.SourceURL = info.SourceURL
			view.LicenseSPDX = info.LicenseSPDX
		}
		views = append(views, view)
	}

	if jsonOutput {
		return writeJSON(cmd, views)
	}

	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("no resource packs installed"))
		return nil
	}

	for _, view := range views {
		fmt.Fprintln(cmd.OutOrStdout(), NameStyle.Render(view.Name))
		if !verbose {
			continue
		}
		if len(view.Aliases) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), VerboseStyle.Render("  aliases: "+strings.Join(view.Aliases, ", ")))
		}
		fmt.Fprintln(cmd.OutOrStdout(), VerboseStyle.Render(fmt.Sprintf("  priority: %d", view.Priority)))
		if view.Description != "" {
			fmt.Fprintln(cmd.OutOrStdout(), VerboseStyle.Render("  "+view.Description))
		}
		if view.LicenseSPDX != "" {
			fmt.Fprintln(cmd.OutOrStdout(), VerboseStyle.Render("  license: "+view.LicenseSPDX))
		}
	}
	return nil
}
