// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"path"

	"respack-cli/pkg/resource"

	"github.com/spf13/cobra"
)

var (
	// listPack restricts the listing to one pack (qualified name or prefix)
	listPack string
	// listFilter is a glob pattern matched against resource names
	listFilter string
)

// listCmd enumerates resources across installed packs
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available resources",
	Long: `List resources from every installed pack, or from one pack.

The --pack filter accepts a qualified name ("dist/pack") or any known
prefix. A filter that resolves to nothing lists nothing. The --filter
glob matches against resource names within the selected packs.

Examples:
  respack list
  respack list --pack lucide
  respack list --pack acme-icons/lucide --filter 'light*'
  respack list --json`,
	SilenceUsage: true,
	RunE:         runList,
}

func init() {
	listCmd.Flags().StringVar(&listPack, "pack", "", "restrict to one pack (qualified name or prefix)")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "glob pattern matched against resource names")
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
}

func runList(cmd *cobra.Command, _ []string) error {
	infos := getRegistry().ListResources(listPack)

	if listFilter != "" {
		filtered := infos[:0]
		for _, info := range infos {
			ok, err := path.Match(listFilter, info.Name)
			if err != nil {
				return fmt.Errorf("invalid --filter pattern %q: %w", listFilter, err)
			}
			if ok {
				filtered = append(filtered, info)
			}
		}
		infos = filtered
	}

	if jsonOutput {
		return writeJSON(cmd, infos)
	}

	for _, info := range infos {
		line := SubtitleStyle.Render(info.Pack+":") + NameStyle.Render(info.Name)
		if info.ContentType != "" {
			line += VerboseStyle.Render("  " + info.ContentType)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if verbose {
		fmt.Fprintln(cmd.ErrOrStderr(), VerboseStyle.Render(fmt.Sprintf("%d resource(s)", len(infos))))
	}
	return nil
}

// writeJSON renders any value as indented JSON on the command's stdout.
// A nil slice is rendered as an empty array for stable consumer handling.
func writeJSON(cmd *cobra.Command, value any) error {
	if infos, ok := value.([]resource.Info); ok && infos == nil {
		value = []resource.Info{}
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
