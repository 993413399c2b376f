// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"sort"
	"strings"
)

// NameSeparator splits the prefix part of a name string from the resource
// part. Resource names may contain further colons; only the last one is
// significant.
const NameSeparator = ":"

// ResolveName maps a raw name string to a (qualified pack name, resource
// name) pair using the current table state. It is a pure function: no I/O,
// no mutation, no discovery trigger — callers are responsible for running
// Discover first on production paths.
//
// Grammar: <qualified-or-short-prefix>[:<resource-name>]. Prefixes are
// case-insensitive; resource names are case-sensitive. A bare name (no
// colon) is rewritten with the default prefix, recursing exactly once, so a
// default prefix that is itself qualified or contested behaves identically
// to writing it out by hand.
func (r *Registry) ResolveName(name string) (QualifiedName, string, error) {
	return r.resolve(name, true)
}

func (r *Registry) resolve(name string, allowRewrite bool) (QualifiedName, string, error) {
	if !strings.Contains(name, NameSeparator) {
		if r.defaultPrefix == "" || !allowRewrite {
			return "", "", &NoDefaultPrefixError{Name: name}
		}
		return r.resolve(r.defaultPrefix+NameSeparator+name, false)
	}

	splitAt := strings.LastIndex(name, NameSeparator)
	prefixPart, resourceName := name[:splitAt], name[splitAt+1:]
	lowered := strings.ToLower(prefixPart)

	if strings.Contains(prefixPart, QualifiedSeparator) {
		qualified, known := r.prefixes[lowered]
		if !known {
			return "", "", &UnknownQualifiedPackError{Name: prefixPart, Known: r.knownPacks()}
		}
		return qualified, resourceName, nil
	}

	// Ambiguity takes precedence over the table's provisional claimant,
	// unless an override resolved the prefix.
	if _, contested := r.collisions[lowered]; contested && !r.overridden[lowered] {
		return "", "", &AmbiguousPrefixError{
			Prefix:     lowered,
			Candidates: r.claimants(lowered),
		}
	}

	if qualified, known := r.prefixes[lowered]; known {
		return qualified, resourceName, nil
	}

	return "", "", &UnknownPrefixError{Prefix: lowered, Known: r.knownPrefixes()}
}

func (r *Registry) knownPacks() []QualifiedName {
	out := make([]QualifiedName, len(r.packOrder))
	copy(out, r.packOrder)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) knownPrefixes() []string {
	out := make([]string, 0, len(r.prefixes))
	for prefix := range r.prefixes {
		out = append(out, prefix)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) claimants(prefix string) []QualifiedName {
	claimants := r.collisions[prefix]
	out := make([]QualifiedName, len(claimants))
	copy(out, claimants)
	return out
}
