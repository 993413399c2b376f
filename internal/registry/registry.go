// SPDX-License-Identifier: MPL-2.0

// Package registry implements the naming and resolution kernel for resource
// packs: it discovers registered packs once, builds a prefix namespace with
// deterministic collision handling, and resolves name strings to a unique
// (pack, resource) pair.
//
// Collision policy: ambiguous-on-collision. When two packs claim the same
// short prefix, the prefix becomes permanently ambiguous and unusable in
// unqualified form; there is no implicit winner. Callers disambiguate with
// the fully-qualified "dist/pack" form or a prefix-map override. A pack's
// declared priority is recorded for display but never adjudicates a
// collision.
package registry

import (
	"os"
	"sort"
	"strings"
	"sync"

	"respack-cli/internal/discovery"
	"respack-cli/pkg/resource"

	"github.com/charmbracelet/log"
)

// Environment variables honored when a Registry is constructed. They are
// read exactly once, in New; later changes to the environment have no
// effect on an existing instance.
const (
	// EnvBlocklist is a comma-separated list of short or qualified pack
	// names to exclude from discovery.
	EnvBlocklist = "RESPACK_BLOCKLIST"
	// EnvPrefixMap holds prefix overrides as "alias=dist/pack" pairs
	// separated by commas.
	EnvPrefixMap = "RESPACK_PREFIX_MAP"
	// EnvDefaultPrefix names the prefix applied to bare resource names.
	EnvDefaultPrefix = "RESPACK_DEFAULT_PREFIX"
)

type (
	// Options configures a Registry. The zero value is usable: discovery
	// runs against the process-wide provider table with no blocklist, no
	// overrides, and no default prefix.
	Options struct {
		// Adapter enumerates pack registrations. Nil selects the
		// process-wide provider adapter.
		Adapter discovery.Adapter
		// Blocklist excludes packs from discovery; entries may be short
		// pack names or qualified names.
		Blocklist []string
		// PrefixMap maps alias prefixes to qualified pack names. Targets
		// are matched case-insensitively. Entries win unconditionally over
		// discovered prefixes, but only take effect when the target pack
		// exists.
		PrefixMap map[string]string
		// DefaultPrefix, when non-empty, is applied to bare resource
		// names (names without a colon).
		DefaultPrefix string
		// Logger receives discovery diagnostics: skipped providers at
		// debug level, prefix collisions at warn level. Nil disables
		// logging.
		Logger *log.Logger
	}

	// Registry owns the pack table, the prefix table, and the collision
	// ledger. Discovery runs lazily exactly once; after it completes the
	// tables are read-only and safe for concurrent readers.
	Registry struct {
		adapter       discovery.Adapter
		blocklist     map[string]struct{}
		overrides     map[string]QualifiedName
		defaultPrefix string
		logger        *log.Logger

		discoverOnce sync.Once

		packs      map[QualifiedName]*RegisteredPack
		packOrder  []QualifiedName
		prefixes   map[string]QualifiedName
		collisions map[string][]QualifiedName
		// overridden marks ledger prefixes resolved by a prefix-map
		// override; resolution treats them as unambiguous again.
		overridden map[string]bool
	}
)

// New builds a Registry from the given options merged with the environment.
// Environment entries extend the blocklist, fill prefix-map aliases not set
// explicitly, and supply the default prefix when none is configured.
func New(opts Options) *Registry {
	r := &Registry{
		adapter:       opts.Adapter,
		blocklist:     make(map[string]struct{}),
		overrides:     make(map[string]QualifiedName),
		defaultPrefix: opts.DefaultPrefix,
		logger:        opts.Logger,
		packs:         make(map[QualifiedName]*RegisteredPack),
		prefixes:      make(map[string]QualifiedName),
		collisions:    make(map[string][]QualifiedName),
		overridden:    make(map[string]bool),
	}

	if r.adapter == nil {
		r.adapter = discovery.NewProviderAdapter(opts.Logger)
	}

	for _, name := range opts.Blocklist {
		if name = strings.TrimSpace(name); name != "" {
			r.blocklist[name] = struct{}{}
		}
	}
	for _, name := range splitList(os.Getenv(EnvBlocklist)) {
		r.blocklist[name] = struct{}{}
	}

	for alias, target := range parsePrefixMap(os.Getenv(EnvPrefixMap)) {
		r.overrides[strings.ToLower(alias)] = QualifiedName(target)
	}
	// Explicit entries win over environment entries.
	for alias, target := range opts.PrefixMap {
		if alias = strings.TrimSpace(alias); alias != "" {
			r.overrides[strings.ToLower(alias)] = QualifiedName(strings.TrimSpace(target))
		}
	}

	if r.defaultPrefix == "" {
		r.defaultPrefix = os.Getenv(EnvDefaultPrefix)
	}

	return r
}

// Discover populates the pack and prefix tables from the adapter. It is
// idempotent: the enumeration runs exactly once per Registry, even under
// concurrent first use.
func (r *Registry) Discover() {
	r.discoverOnce.Do(r.runDiscovery)
}

func (r *Registry) runDiscovery() {
	regs := r.adapter.Enumerate()

	kept := regs[:0]
	for _, reg := range regs {
		if r.blocked(reg) {
			r.debug("pack excluded by blocklist", "dist", reg.DistName, "pack", reg.PackName)
			continue
		}
		kept = append(kept, reg)
	}

	// Deterministic processing order: "first registered" in the collision
	// rules means first in qualified-name order, not enumeration order.
	sort.Slice(kept, func(i, j int) bool {
		return MakeQualifiedName(kept[i].DistName, kept[i].PackName) <
			MakeQualifiedName(kept[j].DistName, kept[j].PackName)
	})

	for _, reg := range kept {
		qualified := MakeQualifiedName(reg.DistName, reg.PackName)
		if _, exists := r.packs[qualified]; exists {
			// Qualified names are unique by construction; a duplicate can
			// only come from a misbehaving adapter.
			r.debug("duplicate qualified name from adapter", "pack", qualified)
			continue
		}

		record := &RegisteredPack{
			DistName: reg.DistName,
			PackName: reg.PackName,
			Pack:     reg.Pack,
			Aliases:  reg.Aliases,
		}
		if prioritizer, ok := reg.Pack.(resource.Prioritizer); ok {
			record.Priority = prioritizer.Priority()
		}

		r.packs[qualified] = record
		r.packOrder = append(r.packOrder, qualified)

		// The qualified name always maps to itself and never collides.
		r.prefixes[strings.ToLower(string(qualified))] = qualified

		r.registerPrefix(strings.ToLower(reg.PackName), qualified, claimPackName)
		for _, alias := range reg.Aliases {
			r.registerPrefix(strings.ToLower(alias), qualified, claimAlias)
		}
	}

	// Overrides are applied last and win unconditionally, but only when
	// the target pack exists. Targets are matched like any other qualified
	// lookup, case-insensitively, and resolve to the registered spelling.
	// A target that names no known pack is skipped without a warning:
	// overrides may pre-configure packs that are not installed yet.
	for alias, target := range r.overrides {
		if !target.IsQualified() {
			continue
		}
		canonical, known := r.prefixes[strings.ToLower(string(target))]
		if !known {
			continue
		}
		r.prefixes[alias] = canonical
		if _, contested := r.collisions[alias]; contested {
			r.overridden[alias] = true
		}
	}
}

// registerPrefix claims a short prefix for a pack. Re-registration by the
// same pack is a no-op; a claim by a different pack records both contenders
// in the collision ledger and emits the collision signal. The prefix table
// keeps its original claimant, but the ledger makes the prefix unusable in
// unqualified form.
func (r *Registry) registerPrefix(prefix string, qualified QualifiedName, origin claimOrigin) {
	holder, claimed := r.prefixes[prefix]
	if !claimed {
		r.prefixes[prefix] = qualified
		return
	}
	if holder == qualified {
		return
	}

	r.collisions[prefix] = appendUnique(r.collisions[prefix], holder, qualified)
	r.warn("resource pack prefix collision",
		"prefix", prefix,
		"held_by", holder,
		"claimed_by", describeClaim(origin, qualified),
		"hint", "use "+string(holder)+":NAME or "+string(qualified)+":NAME, or configure a prefix override",
	)
}

func (r *Registry) blocked(reg discovery.Registration) bool {
	if _, short := r.blocklist[reg.PackName]; short {
		return true
	}
	_, qualified := r.blocklist[string(MakeQualifiedName(reg.DistName, reg.PackName))]
	return qualified
}

// GetResource resolves a name string and delegates the fetch to the
// resolved pack. Resolution failures and the pack's NotFound errors are
// returned unchanged.
func (r *Registry) GetResource(name string) (*resource.Content, error) {
	r.Discover()

	qualified, resourceName, err := r.ResolveName(name)
	if err != nil {
		return nil, err
	}
	return r.packs[qualified].Pack.GetResource(resourceName)
}

// ListResources enumerates resources, optionally restricted to one pack.
// The filter may be an exact qualified name or any known prefix; an absent
// filter lists every pack, and an unresolvable filter yields an empty
// listing rather than an error. Content-type hints are best effort: a
// failure fetching one resource's hint never aborts the enumeration.
func (r *Registry) ListResources(packFilter string) []resource.Info {
	r.Discover()

	var targets []QualifiedName
	if packFilter == "" {
		targets = r.packOrder
	} else if qualified, ok := r.resolveFilter(packFilter); ok {
		targets = []QualifiedName{qualified}
	}

	var infos []resource.Info
	for _, qualified := range targets {
		record := r.packs[qualified]
		names, err := record.Pack.ListResources()
		if err != nil {
			r.debug("pack listing failed", "pack", qualified, "err", err)
			continue
		}
		for _, name := range names {
			hint := ""
			if content, err := record.Pack.GetResource(name); err == nil {
				hint = content.ContentType
			}
			infos = append(infos, resource.Info{
				Name:        name,
				Pack:        string(qualified),
				ContentType: hint,
			})
		}
	}
	return infos
}

// resolveFilter maps a pack filter to a qualified name: exact qualified
// match first, then the prefix table. Prefixes with unresolved collisions
// do not match; the caller treats that as an empty listing.
func (r *Registry) resolveFilter(filter string) (QualifiedName, bool) {
	if _, ok := r.packs[QualifiedName(filter)]; ok {
		return QualifiedName(filter), true
	}
	lowered := strings.ToLower(filter)
	if _, contested := r.collisions[lowered]; contested && !r.overridden[lowered] {
		return "", false
	}
	qualified, ok := r.prefixes[lowered]
	return qualified, ok
}

// ListPacks returns every qualified name in pack-table insertion order.
func (r *Registry) ListPacks() []QualifiedName {
	r.Discover()

	out := make([]QualifiedName, len(r.packOrder))
	copy(out, r.packOrder)
	return out
}

// PackRecord returns the registered record for a qualified name.
func (r *Registry) PackRecord(qualified QualifiedName) (*RegisteredPack, bool) {
	r.Discover()

	record, ok := r.packs[qualified]
	return record, ok
}

// PrefixMap returns a snapshot of the prefix table.
func (r *Registry) PrefixMap() map[string]string {
	r.Discover()

	out := make(map[string]string, len(r.prefixes))
	for prefix, qualified := range r.prefixes {
		out[prefix] = string(qualified)
	}
	return out
}

// PrefixCollisions returns a snapshot of the collision ledger: every prefix
// that was contested, with all of its claimants in claim order.
func (r *Registry) PrefixCollisions() map[string][]string {
	r.Discover()

	out := make(map[string][]string, len(r.collisions))
	for prefix, claimants := range r.collisions {
		names := make([]string, len(claimants))
		for i, q := range claimants {
			names[i] = string(q)
		}
		out[prefix] = names
	}
	return out
}

// DefaultPrefix returns the configured default prefix, if any.
func (r *Registry) DefaultPrefix() string { return r.defaultPrefix }

func (r *Registry) debug(msg string, kv ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, kv...)
	}
}

func (r *Registry) warn(msg string, kv ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, kv...)
	}
}

// splitList parses a comma-separated environment value.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePrefixMap parses "alias=dist/pack,alias2=dist2/pack2" pairs.
// Malformed entries are ignored.
func parsePrefixMap(value string) map[string]string {
	out := make(map[string]string)
	for _, entry := range strings.Split(value, ",") {
		alias, target, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		alias = strings.TrimSpace(alias)
		target = strings.TrimSpace(target)
		if alias == "" || target == "" {
			continue
		}
		out[alias] = target
	}
	return out
}

func appendUnique(list []QualifiedName, names ...QualifiedName) []QualifiedName {
	for _, name := range names {
		seen := false
		for _, existing := range list {
			if existing == name {
				seen = true
				break
			}
		}
		if !seen {
			list = append(list, name)
		}
	}
	return list
}
