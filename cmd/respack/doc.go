// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for respack.
//
// This package implements the Cobra command hierarchy for the respack CLI:
// the root command plus subcommands for fetching resources, listing
// resources and packs, inspecting the prefix namespace, and managing
// configuration.
package cmd
