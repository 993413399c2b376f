// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// packTargetSeparator splits the distribution name from the pack name
	// in a qualified pack target.
	packTargetSeparator = "/"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPackTarget is the sentinel error wrapped by InvalidPackTargetError.
	ErrInvalidPackTarget = errors.New("invalid pack target")
	// ErrInvalidBlocklistEntry is the sentinel error wrapped by InvalidBlocklistEntryError.
	ErrInvalidBlocklistEntry = errors.New("invalid blocklist entry")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// PackTarget is the qualified "dist/pack" name a prefix-map entry points
	// at. A valid target has a non-empty distribution name and a non-empty
	// pack name around exactly the qualified separator.
	PackTarget string

	// InvalidPackTargetError is returned when a PackTarget is not a
	// well-formed qualified name. It wraps ErrInvalidPackTarget for
	// errors.Is() compatibility.
	InvalidPackTargetError struct {
		Value PackTarget
	}

	// InvalidBlocklistEntryError is returned when a blocklist entry is
	// whitespace-only. It wraps ErrInvalidBlocklistEntry for errors.Is()
	// compatibility.
	InvalidBlocklistEntryError struct {
		Index int
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Blocklist names packs excluded from discovery; entries may be
		// short pack names or qualified names.
		Blocklist []string `json:"blocklist" mapstructure:"blocklist" toml:"blocklist"`
		// PrefixMap maps alias prefixes to qualified pack targets.
		PrefixMap map[string]PackTarget `json:"prefix_map" mapstructure:"prefix_map" toml:"prefix_map"`
		// DefaultPrefix is applied to bare resource names (names without a colon).
		DefaultPrefix string `json:"default_prefix" mapstructure:"default_prefix" toml:"default_prefix"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the PackTarget.
func (t PackTarget) String() string { return string(t) }

// IsValid returns whether the PackTarget is a well-formed qualified name,
// and a list of validation errors if it is not.
func (t PackTarget) IsValid() (bool, []error) {
	dist, pack, found := strings.Cut(string(t), packTargetSeparator)
	if !found || strings.TrimSpace(dist) == "" || strings.TrimSpace(pack) == "" {
		return false, []error{&InvalidPackTargetError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPackTargetError.
func (e *InvalidPackTargetError) Error() string {
	return fmt.Sprintf("invalid pack target %q: must be a qualified \"dist/pack\" name", e.Value)
}

// Unwrap returns ErrInvalidPackTarget for errors.Is() compatibility.
func (e *InvalidPackTargetError) Unwrap() error { return ErrInvalidPackTarget }

// Error implements the error interface for InvalidBlocklistEntryError.
func (e *InvalidBlocklistEntryError) Error() string {
	return fmt.Sprintf("invalid blocklist entry at index %d: must be non-empty", e.Index)
}

// Unwrap returns ErrInvalidBlocklistEntry for errors.Is() compatibility.
func (e *InvalidBlocklistEntryError) Unwrap() error { return ErrInvalidBlocklistEntry }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It validates every blocklist entry, every prefix-map target, and the UI
// section. DefaultPrefix is free-form: any prefix string, including a
// qualified name, is acceptable, and emptiness means "no default".
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for i, entry := range c.Blocklist {
		if strings.TrimSpace(entry) == "" {
			errs = append(errs, &InvalidBlocklistEntryError{Index: i})
		}
	}
	for _, target := range c.PrefixMap {
		if valid, fieldErrs := target.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Blocklist:     []string{},
		PrefixMap:     map[string]PackTarget{},
		DefaultPrefix: "",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
