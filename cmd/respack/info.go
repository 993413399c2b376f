// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"respack-cli/pkg/resource"

	"github.com/spf13/cobra"
)

// resourceInfoView is the JSON shape of a resolved resource.
type resourceInfoView struct {
	Name        string         `json:"name"`
	Pack        string         `json:"pack"`
	ContentType string         `json:"content_type"`
	Encoding    string         `json:"encoding,omitempty"`
	Size        int            `json:"size"`
	Path        string         `json:"path,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// infoCmd shows details about one resource
var infoCmd = &cobra.Command{
	Use:   "info NAME",
	Short: "Show details about a resource",
	Long: `Resolve a name and show the resource's content type, encoding, size,
and any metadata the pack attaches, without writing the content anywhere.

Exit codes follow 'respack get': 2 when the name does not resolve.

Examples:
  respack info lucide:lightbulb
  respack info acme-icons/lucide:lightbulb --json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
}

func runInfo(cmd *cobra.Command, args []string) error {
	view, err := buildResourceView(args[0])
	if err != nil {
		explainError(err)
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	if jsonOutput {
		return writeJSON(cmd, view)
	}
	printResourceView(cmd, view)
	return nil
}

// buildResourceView resolves a name and collects the resource's metadata
// without writing the payload anywhere.
func buildResourceView(name string) (resourceInfoView, error) {
	reg := getRegistry()
	reg.Discover()

	qualified, resourceName, err := reg.ResolveName(name)
	if err != nil {
		return resourceInfoView{}, err
	}

	record, _ := reg.PackRecord(qualified)
	content, err := record.Pack.GetResource(resourceName)
	if err != nil {
		return resourceInfoView{}, err
	}

	view := resourceInfoView{
		Name:        resourceName,
		Pack:        string(qualified),
		ContentType: content.ContentType,
		Encoding:    content.Encoding,
		Size:        len(content.Data),
		Metadata:    content.Metadata,
	}
	if resolver, ok := record.Pack.(resource.PathResolver); ok {
		if path, found := resolver.ResourcePath(resourceName); found {
			view.Path = path
		}
	}
	return view, nil
}

func printResourceView(cmd *cobra.Command, view resourceInfoView) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render(view.Name))
	fmt.Fprintln(out, SubtitleStyle.Render("  pack:         ")+NameStyle.Render(view.Pack))
	fmt.Fprintln(out, SubtitleStyle.Render("  content type: ")+view.ContentType)
	if view.Encoding != "" {
		fmt.Fprintln(out, SubtitleStyle.Render("  encoding:     ")+view.Encoding)
	}
	fmt.Fprintln(out, SubtitleStyle.Render("  size:         ")+fmt.Sprintf("%d bytes", view.Size))
	if view.Path != "" {
		fmt.Fprintln(out, SubtitleStyle.Render("  path:         ")+view.Path)
	}
	for key, value := range view.Metadata {
		fmt.Fprintln(out, VerboseStyle.Render(fmt.Sprintf("  %s: %v", key, value)))
	}
}
