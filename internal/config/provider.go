// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions narrows where configuration is read from. Zero value means
// the platform config directory, then the current directory, then defaults.
type LoadOptions struct {
	// ConfigFilePath, when set, is the only file consulted; a missing file
	// is an error rather than a silent fallback.
	ConfigFilePath string
	// ConfigDirPath replaces the platform config directory lookup.
	ConfigDirPath string
}

// Provider is the loading surface the CLI depends on.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider returns the file-backed Provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load resolves, parses, and validates the configuration.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
