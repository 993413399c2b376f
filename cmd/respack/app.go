// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"respack-cli/internal/config"
	"respack-cli/internal/discovery"
	"respack-cli/internal/issue"
	"respack-cli/internal/registry"
	"respack-cli/pkg/resource"
	"respack-cli/pkg/types"

	"github.com/charmbracelet/log"
)

var (
	appMu       sync.Mutex
	appConfig   *config.Config
	appRegistry *registry.Registry
)

// setAppConfig stores the loaded configuration for registry construction.
func setAppConfig(cfg *config.Config) {
	appMu.Lock()
	defer appMu.Unlock()
	appConfig = cfg
	appRegistry = nil
}

// resetAppState clears cached state. Tests call this between runs.
func resetAppState() {
	appMu.Lock()
	defer appMu.Unlock()
	appConfig = nil
	appRegistry = nil
}

// getRegistry returns the registry built from the loaded configuration plus
// command-line flags. Explicit settings (flags, then the config file) win
// over the RESPACK_* environment variables per alias; blocklists are the
// union of all sources.
func getRegistry() *registry.Registry {
	appMu.Lock()
	defer appMu.Unlock()

	if appRegistry == nil {
		appRegistry = registry.New(buildRegistryOptions(appConfig))
	}
	return appRegistry
}

func buildRegistryOptions(cfg *config.Config) registry.Options {
	logger := newAppLogger()
	opts := registry.Options{
		Logger:  logger,
		Adapter: newAppAdapter(logger),
	}

	if cfg != nil {
		opts.Blocklist = append(opts.Blocklist, cfg.Blocklist...)
		opts.DefaultPrefix = cfg.DefaultPrefix
		if len(cfg.PrefixMap) > 0 {
			opts.PrefixMap = make(map[string]string, len(cfg.PrefixMap))
			for alias, target := range cfg.PrefixMap {
				opts.PrefixMap[alias] = string(target)
			}
		}
	}

	opts.Blocklist = append(opts.Blocklist, blocklistFlag...)
	if len(prefixMapFlag) > 0 {
		if opts.PrefixMap == nil {
			opts.PrefixMap = make(map[string]string, len(prefixMapFlag))
		}
		for alias, target := range prefixMapFlag {
			opts.PrefixMap[alias] = target
		}
	}
	if defaultPrefixFlag != "" {
		opts.DefaultPrefix = defaultPrefixFlag
	}

	return opts
}

// newAppAdapter combines the two pack sources: providers registered in the
// process, and zip archives dropped into <config dir>/packs.
func newAppAdapter(logger *log.Logger) discovery.Adapter {
	adapters := []discovery.Adapter{discovery.NewProviderAdapter(logger)}
	if cfgDir, err := config.ConfigDir(); err == nil {
		adapters = append(adapters, discovery.NewDirAdapter(filepath.Join(cfgDir, "packs"), logger))
	}
	return discovery.MultiAdapter{Adapters: adapters}
}

// newAppLogger builds the discovery logger: warnings by default, debug
// detail in verbose mode.
func newAppLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// exitCodeFor maps an error to the process exit code: resolution failures
// and missing resources exit 2, everything else exits 1.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, resource.ErrNotFound),
		errors.Is(err, registry.ErrUnknownPrefix),
		errors.Is(err, registry.ErrUnknownQualifiedPack),
		errors.Is(err, registry.ErrAmbiguousPrefix),
		errors.Is(err, registry.ErrNoDefaultPrefix):
		return types.ExitNotFound
	default:
		return types.ExitFailure
	}
}

// issueFor maps an error to the catalog entry explaining it, or nil.
func issueFor(err error) *issue.Issue {
	switch {
	case errors.Is(err, resource.ErrNotFound):
		return issue.Get(issue.ResourceNotFoundId)
	case errors.Is(err, registry.ErrAmbiguousPrefix):
		return issue.Get(issue.AmbiguousPrefixId)
	case errors.Is(err, registry.ErrUnknownPrefix):
		return issue.Get(issue.UnknownPrefixId)
	case errors.Is(err, registry.ErrUnknownQualifiedPack):
		return issue.Get(issue.UnknownQualifiedPackId)
	case errors.Is(err, registry.ErrNoDefaultPrefix):
		return issue.Get(issue.NoDefaultPrefixId)
	default:
		return nil
	}
}

// explainError prints the rendered guidance for a resolution failure in
// verbose mode. Rendering problems are ignored; the plain error message has
// already been shown.
func explainError(err error) {
	if !verbose {
		return
	}
	found := issueFor(err)
	if found == nil {
		return
	}
	rendered, renderErr := found.Render("dark")
	if renderErr != nil {
		return
	}
	os.Stderr.WriteString(rendered)
}
