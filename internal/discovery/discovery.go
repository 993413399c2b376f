// SPDX-License-Identifier: MPL-2.0

// Package discovery enumerates resource packs registered with the host
// process and normalizes them into a single registration shape.
//
// Pack providers come from independently installed components. Each provider
// registers a factory under a (distribution, pack) pair; at discovery time
// every factory is invoked and its result — which historically arrives in
// several shapes — is normalized into a Registration. Malformed providers are
// skipped, never fatal: a broken pack is simply not available.
package discovery

import (
	"fmt"
	"sort"
	"sync"

	"respack-cli/pkg/resource"

	"github.com/charmbracelet/log"
)

// UnknownDist is the sentinel distribution name used when a provider cannot
// report the installable unit it belongs to.
const UnknownDist = "unknown"

// metadataAliasesKey is the metadata map key holding alias declarations in
// the pack+metadata factory shape.
const metadataAliasesKey = "aliases"

type (
	// Registration is the single normalized shape the registry consumes:
	// one tuple per discovered pack.
	Registration struct {
		// DistName identifies the installable unit that provided the pack.
		DistName string
		// PackName is the name the distribution gave this specific pack.
		PackName string
		// Pack is the capability-contract instance.
		Pack resource.Pack
		// Aliases are additional short prefixes declared by the pack or
		// its registration metadata.
		Aliases []string
	}

	// Adapter produces the finite registration sequence the registry
	// discovers from. Implementations must tolerate repeated calls.
	Adapter interface {
		Enumerate() []Registration
	}

	// Factory constructs a pack instance. The result may be:
	//   - a resource.Pack directly,
	//   - a PackWithMetadata pair, with aliases under the "aliases" key,
	//   - a []any of length >= 3 with the pack at index 1 and an alias
	//     list ([]string) at index 2.
	// Anything else is rejected during normalization.
	Factory func() (any, error)

	// PackWithMetadata is the two-element factory result shape: a pack
	// instance accompanied by an open metadata map.
	PackWithMetadata struct {
		Pack     resource.Pack
		Metadata map[string]any
	}

	// StaticAdapter serves a fixed registration list. It backs tests and
	// embedders that construct packs themselves instead of going through
	// provider registration.
	StaticAdapter struct {
		Registrations []Registration
	}

	// providerKey identifies a registered factory.
	providerKey struct {
		dist string
		pack string
	}

	// ProviderAdapter enumerates the process-wide provider table.
	ProviderAdapter struct {
		logger *log.Logger
	}
)

var (
	providersMu sync.RWMutex
	providers   = make(map[providerKey]Factory)
)

// Register makes a pack factory available for discovery under the given
// distribution and pack name. It is intended to be called from the init
// function of a pack-providing package. Register panics if the factory is
// nil or the (distName, packName) pair is already taken: qualified names are
// unique by construction.
func Register(distName, packName string, factory Factory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	if factory == nil {
		panic("discovery: Register factory is nil")
	}
	if distName == "" {
		distName = UnknownDist
	}
	key := providerKey{dist: distName, pack: packName}
	if _, dup := providers[key]; dup {
		panic(fmt.Sprintf("discovery: Register called twice for %s/%s", distName, packName))
	}
	providers[key] = factory
}

// unregisterAll clears the provider table. Tests use it for isolation.
func unregisterAll() {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers = make(map[providerKey]Factory)
}

// NewProviderAdapter returns an Adapter over the process-wide provider
// table. A nil logger disables discovery logging.
func NewProviderAdapter(logger *log.Logger) *ProviderAdapter {
	return &ProviderAdapter{logger: logger}
}

// Enumerate invokes every registered factory and yields the normalized
// registrations. Providers whose factory fails, panics, or produces a value
// that does not conform to the pack capability contract are skipped.
func (a *ProviderAdapter) Enumerate() []Registration {
	providersMu.RLock()
	keys := make([]providerKey, 0, len(providers))
	factories := make(map[providerKey]Factory, len(providers))
	for key, factory := range providers {
		keys = append(keys, key)
		factories[key] = factory
	}
	providersMu.RUnlock()

	// Stable invocation order; the registry re-sorts by qualified name
	// anyway, but deterministic enumeration keeps logs reproducible.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dist != keys[j].dist {
			return keys[i].dist < keys[j].dist
		}
		return keys[i].pack < keys[j].pack
	})

	regs := make([]Registration, 0, len(keys))
	for _, key := range keys {
		reg, ok := a.load(key, factories[key])
		if !ok {
			continue
		}
		regs = append(regs, reg)
	}
	return regs
}

// load invokes one factory and normalizes its result, recovering from
// factory panics so a single bad provider cannot abort the sweep.
func (a *ProviderAdapter) load(key providerKey, factory Factory) (reg Registration, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.debug("skipping pack provider", "dist", key.dist, "pack", key.pack, "panic", fmt.Sprint(r))
			ok = false
		}
	}()

	result, err := factory()
	if err != nil {
		a.debug("skipping pack provider", "dist", key.dist, "pack", key.pack, "err", err)
		return Registration{}, false
	}

	pack, aliases, conforms := Normalize(result)
	if !conforms {
		a.debug("skipping pack provider", "dist", key.dist, "pack", key.pack, "reason", "result does not satisfy the pack contract")
		return Registration{}, false
	}

	return Registration{
		DistName: key.dist,
		PackName: key.pack,
		Pack:     pack,
		Aliases:  aliases,
	}, true
}

func (a *ProviderAdapter) debug(msg string, kv ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, kv...)
	}
}

// Normalize reduces a heterogeneous factory result to the (pack, aliases)
// pair the registry consumes. The boolean reports conformance; callers must
// skip non-conforming results.
func Normalize(result any) (resource.Pack, []string, bool) {
	switch v := result.(type) {
	case nil:
		return nil, nil, false
	case PackWithMetadata:
		return normalizePair(v)
	case *PackWithMetadata:
		if v == nil {
			return nil, nil, false
		}
		return normalizePair(*v)
	case []any:
		// Tuple shape: (descriptor, pack, aliases, ...). The descriptor
		// element is ignored.
		if len(v) < 3 {
			return nil, nil, false
		}
		pack, isPack := v[1].(resource.Pack)
		if !isPack || pack == nil {
			return nil, nil, false
		}
		aliases, _ := v[2].([]string)
		return pack, cloneAliases(aliases), true
	case resource.Pack:
		return v, declaredAliases(v), true
	default:
		return nil, nil, false
	}
}

func normalizePair(pair PackWithMetadata) (resource.Pack, []string, bool) {
	if pair.Pack == nil {
		return nil, nil, false
	}
	if raw, present := pair.Metadata[metadataAliasesKey]; present {
		if aliases, isList := raw.([]string); isList {
			return pair.Pack, cloneAliases(aliases), true
		}
		// A malformed alias declaration degrades to "no aliases" rather
		// than rejecting an otherwise valid pack.
		return pair.Pack, nil, true
	}
	return pair.Pack, declaredAliases(pair.Pack), true
}

// declaredAliases asks the pack itself for aliases when the registration
// carried none. Conformance is an explicit interface check, not attribute
// probing.
func declaredAliases(pack resource.Pack) []string {
	if provider, ok := pack.(resource.AliasProvider); ok {
		return cloneAliases(provider.Aliases())
	}
	return nil
}

func cloneAliases(aliases []string) []string {
	if len(aliases) == 0 {
		return nil
	}
	out := make([]string, len(aliases))
	copy(out, aliases)
	return out
}

// Enumerate returns a copy of the fixed registration list.
func (a *StaticAdapter) Enumerate() []Registration {
	out := make([]Registration, len(a.Registrations))
	copy(out, a.Registrations)
	return out
}
