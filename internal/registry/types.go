// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"
	"strings"

	"respack-cli/pkg/resource"
)

// QualifiedSeparator joins a distribution name and a pack name into a
// qualified name. Qualified names are globally unique by construction: two
// distributions cannot share a name, and pack names are unique within a
// distribution.
const QualifiedSeparator = "/"

type (
	// QualifiedName is the globally unique "dist/pack" identifier of a
	// registered pack.
	QualifiedName string

	// RegisteredPack binds a pack instance to its resolved identity.
	// Records are created once during discovery and immutable thereafter;
	// the registry's pack table is their sole owner.
	RegisteredPack struct {
		// DistName identifies the installable unit that provided the pack.
		DistName string
		// PackName is the name the distribution gave this specific pack.
		PackName string
		// Pack is the capability-contract instance.
		Pack resource.Pack
		// Aliases are the short prefixes declared by the pack or its
		// registration metadata, in declaration order.
		Aliases []string
		// Priority is the pack's declared relative priority. It is
		// recorded for display only; prefix collisions are adjudicated by
		// the ambiguity rules, never by priority.
		Priority int
	}
)

// MakeQualifiedName builds the qualified name for a distribution/pack pair.
func MakeQualifiedName(distName, packName string) QualifiedName {
	return QualifiedName(distName + QualifiedSeparator + packName)
}

// String returns the string representation of the QualifiedName.
func (q QualifiedName) String() string { return string(q) }

// IsQualified reports whether the name carries a distribution segment.
func (q QualifiedName) IsQualified() bool {
	return strings.Contains(string(q), QualifiedSeparator)
}

// Dist returns the distribution segment, or "" for unqualified names.
func (q QualifiedName) Dist() string {
	dist, _, ok := strings.Cut(string(q), QualifiedSeparator)
	if !ok {
		return ""
	}
	return dist
}

// PackName returns the pack segment (the whole name when unqualified).
func (q QualifiedName) PackName() string {
	_, pack, ok := strings.Cut(string(q), QualifiedSeparator)
	if !ok {
		return string(q)
	}
	return pack
}

// QualifiedName returns the record's "dist/pack" identifier.
func (p *RegisteredPack) QualifiedName() QualifiedName {
	return MakeQualifiedName(p.DistName, p.PackName)
}

// describeClaim names the origin of a prefix claim for collision diagnostics.
func describeClaim(origin claimOrigin, qualified QualifiedName) string {
	switch origin {
	case claimPackName:
		return fmt.Sprintf("pack name of %s", qualified)
	case claimAlias:
		return fmt.Sprintf("alias declared by %s", qualified)
	default:
		return string(qualified)
	}
}

// claimOrigin tags how a prefix claim arose, for diagnostics only.
type claimOrigin int

const (
	claimPackName claimOrigin = iota
	claimAlias
)
