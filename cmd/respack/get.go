// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// getOutput is the destination path for the payload. Empty shows metadata
// only; "-" streams the payload to stdout.
var getOutput string

// getCmd fetches a single resource by name
var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Fetch a resource by name",
	Long: `Fetch a resource. Without --output, shows the resource's metadata
(content type, encoding, size) and writes nothing; pass -o to get the
payload.

NAME uses the form [dist/]prefix:resource-name. A bare name (no colon)
works only when a default prefix is configured.

Exit codes:
  0  resource found
  2  name did not resolve (unknown prefix, ambiguous prefix, resource missing)
  1  any other error

Examples:
  respack get lucide:lightbulb                     Show metadata
  respack get lucide:lightbulb -o -                Stream payload to stdout
  respack get acme/lucide:lightbulb -o bulb.svg    Write payload to a file`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "write the payload to this file, or - for stdout")
	getCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit metadata as JSON instead of text")
}

func runGet(cmd *cobra.Command, args []string) error {
	name := args[0]

	if getOutput == "" {
		view, err := buildResourceView(name)
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

	content, err := getRegistry().GetResource(name)
	if err != nil {
		explainError(err)
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	if getOutput == "-" {
		if _, err := os.Stdout.Write(content.Data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(getOutput, content.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", getOutput, err)
	}
	if verbose {
		fmt.Fprintln(cmd.ErrOrStderr(), VerboseStyle.Render(
			fmt.Sprintf("wrote %d bytes (%s) to %s", len(content.Data), content.ContentType, getOutput)))
	}
	return nil
}
