// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if valid, errs := cs.IsValid(); !valid {
			t.Errorf("IsValid(%q) = false: %v", cs, errs)
		}
	}

	valid, errs := ColorScheme("sepia").IsValid()
	if valid {
		t.Fatal("IsValid(sepia) = true")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("errs = %v, want one ErrInvalidColorScheme", errs)
	}
}

func TestPackTarget_IsValid(t *testing.T) {
	tests := []struct {
		target PackTarget
		valid  bool
	}{
		{"acme-icons/lucide", true},
		{"a/b", true},
		{"lucide", false},
		{"/lucide", false},
		{"acme-icons/", false},
		{" / ", false},
		{"", false},
	}

	for _, tt := range tests {
		valid, errs := tt.target.IsValid()
		if valid != tt.valid {
			t.Errorf("IsValid(%q) = %v, want %v (%v)", tt.target, valid, tt.valid, errs)
		}
		if !tt.valid && !errors.Is(errs[0], ErrInvalidPackTarget) {
			t.Errorf("IsValid(%q) errs = %v, want ErrInvalidPackTarget", tt.target, errs)
		}
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		if valid, errs := DefaultConfig().IsValid(); !valid {
			t.Errorf("default config invalid: %v", errs)
		}
	})

	t.Run("CollectsFieldErrors", func(t *testing.T) {
		cfg := Config{
			Blocklist: []string{" "},
			PrefixMap: map[string]PackTarget{"luc": "not-qualified"},
			UI:        UIConfig{ColorScheme: "sepia"},
		}

		valid, errs := cfg.IsValid()
		if valid {
			t.Fatal("IsValid() = true for a config with three bad fields")
		}
		var invalid *InvalidConfigError
		if !errors.As(errs[0], &invalid) {
			t.Fatalf("errs[0] = %T, want *InvalidConfigError", errs[0])
		}
		if len(invalid.FieldErrors) != 3 {
			t.Errorf("FieldErrors = %v, want 3 entries", invalid.FieldErrors)
		}
		if !errors.Is(errs[0], ErrInvalidConfig) {
			t.Error("InvalidConfigError should wrap ErrInvalidConfig")
		}
	})
}
