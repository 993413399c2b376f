// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ResourceNotFoundId Id = iota + 1
	UnknownPrefixId
	AmbiguousPrefixId
	UnknownQualifiedPackId
	NoDefaultPrefixId
	ConfigLoadFailedId
	PackListingFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	resourceNotFoundIssue = &Issue{
		id: ResourceNotFoundId,
		mdMsg: `
# Resource not found!

The pack resolved fine, but it has no resource with that name.

## Things you can try:
- List what the pack actually contains:
~~~
$ respack list --pack <prefix>
~~~

- Check for typos; resource names are case-sensitive
- Check the error message for similar names the pack suggested`,
	}

	unknownPrefixIssue = &Issue{
		id: UnknownPrefixId,
		mdMsg: `
# Unknown pack prefix!

No installed resource pack claims that prefix.

## Things you can try:
- List all installed packs and their prefixes:
~~~
$ respack packs
$ respack prefixes
~~~

- Check for typos in the prefix (prefixes are case-insensitive)
- Install the distribution that provides the pack
- Map your own alias onto an installed pack:
~~~
$ export RESPACK_PREFIX_MAP="myalias=some-dist/some-pack"
~~~`,
	}

	ambiguousPrefixIssue = &Issue{
		id: AmbiguousPrefixId,
		mdMsg: `
# Ambiguous pack prefix!

Two or more installed packs claim the same short prefix, so the short form
cannot be used. There is no implicit winner.

## Things you can try:
- Use the fully-qualified form, which always works:
~~~
$ respack get some-dist/some-pack:resource-name
~~~

- See every claimant for the contested prefix:
~~~
$ respack prefixes
~~~

- Pin the short prefix to one pack with an override:
~~~
$ export RESPACK_PREFIX_MAP="prefix=some-dist/some-pack"
~~~

- Exclude the pack you don't want:
~~~
$ export RESPACK_BLOCKLIST="other-dist/other-pack"
~~~`,
	}

	unknownQualifiedPackIssue = &Issue{
		id: UnknownQualifiedPackId,
		mdMsg: `
# Unknown qualified pack!

The fully-qualified name (the "dist/pack" part before the colon) names no
installed pack.

## Things you can try:
- List installed packs with their exact qualified names:
~~~
$ respack packs
~~~

- Check both halves: the distribution name and the pack name
- Check the blocklist; a blocked pack is invisible:
~~~
$ echo $RESPACK_BLOCKLIST
~~~`,
	}

	noDefaultPrefixIssue = &Issue{
		id: NoDefaultPrefixId,
		mdMsg: `
# No default prefix configured!

You used a bare resource name (no "prefix:" part), but bare names only work
when a default prefix is configured.

## Things you can try:
- Spell out the prefix:
~~~
$ respack get lucide:lightbulb
~~~

- Or configure a default prefix so bare names resolve:
~~~
$ export RESPACK_DEFAULT_PREFIX="lucide"
~~~

- Or set it in your config file:
~~~toml
default_prefix = "lucide"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the respack configuration file.

## Configuration file locations:
- Linux: ~/.config/respack/config.toml
- macOS: ~/Library/Application Support/respack/config.toml
- Windows: %APPDATA%\respack\config.toml

## Things you can try:
- Check the TOML syntax of the file
- Remove the config file to use defaults

## Example configuration:
~~~toml
blocklist = ["noisy-dist/noisy-pack"]
default_prefix = "lucide"

[prefix_map]
luc = "acme-icons/lucide"

[ui]
color_scheme = "auto"
verbose = false
~~~`,
	}

	packListingFailedIssue = &Issue{
		id: PackListingFailedId,
		mdMsg: `
# Pack listing failed!

A resource pack raised an error while listing its contents. Healthy packs
are unaffected; only the failing pack's resources are missing from the
output.

## Things you can try:
- Run with verbose mode to see which pack failed and why:
~~~
$ respack --verbose list
~~~

- Reinstall the failing pack's distribution
- Exclude the pack until it is fixed:
~~~
$ export RESPACK_BLOCKLIST="bad-dist/bad-pack"
~~~`,
	}

	issues = map[Id]*Issue{
		resourceNotFoundIssue.Id():     resourceNotFoundIssue,
		unknownPrefixIssue.Id():        unknownPrefixIssue,
		ambiguousPrefixIssue.Id():      ambiguousPrefixIssue,
		unknownQualifiedPackIssue.Id(): unknownQualifiedPackIssue,
		noDefaultPrefixIssue.Id():      noDefaultPrefixIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		packListingFailedIssue.Id():    packListingFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
