// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// prefixesView is the JSON shape of the prefix namespace.
type prefixesView struct {
	DefaultPrefix string              `json:"default_prefix,omitempty"`
	Prefixes      map[string]string   `json:"prefixes"`
	Collisions    map[string][]string `json:"collisions,omitempty"`
}

// prefixesCmd shows the prefix table and the collision ledger
var prefixesCmd = &cobra.Command{
	Use:   "prefixes",
	Short: "Show the prefix table and collisions",
	Long: `Show every registered prefix and the pack it maps to, plus the
collision ledger: prefixes claimed by more than one pack. A contested
prefix cannot be used in short form unless a prefix-map override pins
it to one pack.

Examples:
  respack prefixes
  respack prefixes --json`,
	SilenceUsage: true,
	RunE:         runPrefixes,
}

func init() {
	prefixesCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
}

func runPrefixes(cmd *cobra.Command, _ []string) error {
	reg := getRegistry()

	view := prefixesView{
		DefaultPrefix: reg.DefaultPrefix(),
		Prefixes:      reg.PrefixMap(),
		Collisions:    reg.PrefixCollisions(),
	}

	if jsonOutput {
		return writeJSON(cmd, view)
	}

	out := cmd.OutOrStdout()

	if view.DefaultPrefix != "" {
		fmt.Fprintln(out, SubtitleStyle.Render("default prefix: ")+NameStyle.Render(view.DefaultPrefix))
	}

	prefixes := make([]string, 0, len(view.Prefixes))
	for prefix := range view.Prefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		line := NameStyle.Render(prefix) + SubtitleStyle.Render(" -> ") + view.Prefixes[prefix]
		if claimants, contested := view.Collisions[prefix]; contested {
			line += WarningStyle.Render("  contested: " + strings.Join(claimants, ", "))
		}
		fmt.Fprintln(out, line)
	}

	if len(view.Collisions) > 0 && verbose {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render(
			fmt.Sprintf("%d contested prefix(es); use dist/pack:NAME or a prefix override", len(view.Collisions))))
	}
	return nil
}
