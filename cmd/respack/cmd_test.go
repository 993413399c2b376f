// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"respack-cli/internal/config"
	"respack-cli/internal/discovery"
	"respack-cli/internal/issue"
	"respack-cli/internal/registry"
	"respack-cli/internal/testutil"
	"respack-cli/pkg/resource"
	"respack-cli/pkg/types"

	"github.com/spf13/cobra"
)

// installTestRegistry swaps in a registry backed by static registrations and
// restores clean command state afterwards.
func installTestRegistry(t *testing.T, opts registry.Options, regs ...discovery.Registration) {
	t.Helper()

	opts.Adapter = &discovery.StaticAdapter{Registrations: regs}

	appMu.Lock()
	appRegistry = registry.New(opts)
	appMu.Unlock()

	t.Cleanup(func() {
		resetAppState()
		jsonOutput = false
		verbose = false
		listPack = ""
		listFilter = ""
		getOutput = ""
	})
}

func captureOutput(cmd *cobra.Command) *bytes.Buffer {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return buf
}

func iconRegistrations() []discovery.Registration {
	return []discovery.Registration{
		{
			DistName: "acme-icons",
			PackName: "lucide",
			Pack:     testutil.NewPack("lightbulb", "lamp"),
		},
		{
			DistName: "cool-icons",
			PackName: "feather",
			Pack:     testutil.NewPack("zap"),
		},
	}
}

func TestRunList(t *testing.T) {
	t.Run("AllPacks", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		buf := captureOutput(listCmd)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("runList() error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"acme-icons/lucide:", "lightbulb", "cool-icons/feather:", "zap"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("PackFilter", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		listPack = "feather"
		buf := captureOutput(listCmd)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("runList() error: %v", err)
		}
		if strings.Contains(buf.String(), "lucide") {
			t.Errorf("filtered output should not mention lucide:\n%s", buf.String())
		}
	})

	t.Run("GlobFilter", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		listFilter = "l*"
		buf := captureOutput(listCmd)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("runList() error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "lightbulb") || !strings.Contains(out, "lamp") {
			t.Errorf("glob should keep the l-names:\n%s", out)
		}
		if strings.Contains(out, "zap") {
			t.Errorf("glob should drop zap:\n%s", out)
		}
	})

	t.Run("BadGlob", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		listFilter = "[unclosed"
		captureOutput(listCmd)

		if err := runList(listCmd, nil); err == nil {
			t.Fatal("runList() should reject a malformed pattern")
		}
	})

	t.Run("JSON", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		jsonOutput = true
		buf := captureOutput(listCmd)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("runList() error: %v", err)
		}
		var infos []resource.Info
		if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
		}
		if len(infos) != 3 {
			t.Errorf("got %d resources, want 3", len(infos))
		}
	})

	t.Run("JSONEmptyIsArray", func(t *testing.T) {
		installTestRegistry(t, registry.Options{})
		jsonOutput = true
		buf := captureOutput(listCmd)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("runList() error: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "[]" {
			t.Errorf("empty listing = %q, want []", got)
		}
	})
}

func TestRunGet(t *testing.T) {
	t.Run("MetadataByDefault", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		buf := captureOutput(getCmd)

		if err := runGet(getCmd, []string{"lucide:lightbulb"}); err != nil {
			t.Fatalf("runGet() error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"lightbulb", "acme-icons/lucide", "image/svg+xml"} {
			if !strings.Contains(out, want) {
				t.Errorf("metadata output missing %q:\n%s", want, out)
			}
		}
		// The payload itself goes nowhere without --output.
		if strings.Contains(out, "<svg>") {
			t.Errorf("metadata output should not carry the payload:\n%s", out)
		}
	})

	t.Run("MetadataJSON", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		jsonOutput = true
		buf := captureOutput(getCmd)

		if err := runGet(getCmd, []string{"lucide:lightbulb"}); err != nil {
			t.Fatalf("runGet() error: %v", err)
		}
		var view resourceInfoView
		if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
		}
		if view.Pack != "acme-icons/lucide" || view.Name != "lightbulb" || view.Size == 0 {
			t.Errorf("view = %+v", view)
		}
	})

	t.Run("WritesFile", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		getOutput = filepath.Join(t.TempDir(), "out.svg")
		captureOutput(getCmd)

		if err := runGet(getCmd, []string{"lucide:lightbulb"}); err != nil {
			t.Fatalf("runGet() error: %v", err)
		}
		data, err := os.ReadFile(getOutput)
		if err != nil {
			t.Fatalf("reading output file: %v", err)
		}
		if !strings.Contains(string(data), "lightbulb") {
			t.Errorf("file content = %q", data)
		}
	})

	t.Run("NotFoundExitsTwo", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		captureOutput(getCmd)

		err := runGet(getCmd, []string{"lucide:nope"})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("err = %v, want *ExitError", err)
		}
		if exitErr.Code != types.ExitNotFound {
			t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitNotFound)
		}
	})

	t.Run("UnknownPrefixExitsTwo", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		captureOutput(getCmd)

		err := runGet(getCmd, []string{"ghost:thing"})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("err = %v, want *ExitError", err)
		}
		if exitErr.Code != types.ExitNotFound {
			t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitNotFound)
		}
	})
}

func TestRunPacks(t *testing.T) {
	installTestRegistry(t, registry.Options{}, iconRegistrations()...)
	jsonOutput = true
	buf := captureOutput(packsCmd)

	if err := runPacks(packsCmd, nil); err != nil {
		t.Fatalf("runPacks() error: %v", err)
	}

	var views []packView
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(views) != 2 {
		t.Fatalf("got %d packs, want 2", len(views))
	}
	if views[0].Name != "acme-icons/lucide" || views[0].Priority != 100 {
		t.Errorf("views[0] = %+v", views[0])
	}
}

func TestRunInfo(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		jsonOutput = true
		buf := captureOutput(infoCmd)

		if err := runInfo(infoCmd, []string{"lucide:lightbulb"}); err != nil {
			t.Fatalf("runInfo() error: %v", err)
		}
		var view resourceInfoView
		if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
		}
		if view.Pack != "acme-icons/lucide" || view.Name != "lightbulb" {
			t.Errorf("view = %+v", view)
		}
		if view.ContentType != "image/svg+xml" || view.Size == 0 {
			t.Errorf("view = %+v", view)
		}
	})

	t.Run("UnresolvedExitsTwo", func(t *testing.T) {
		installTestRegistry(t, registry.Options{}, iconRegistrations()...)
		captureOutput(infoCmd)

		err := runInfo(infoCmd, []string{"nope:thing"})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("err = %v, want *ExitError", err)
		}
		if exitErr.Code != types.ExitNotFound {
			t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitNotFound)
		}
	})
}

func TestRunPrefixes(t *testing.T) {
	colliding := append(iconRegistrations(), discovery.Registration{
		DistName: "other-icons",
		PackName: "lucide",
		Pack:     testutil.NewPack("bolt"),
	})
	installTestRegistry(t, registry.Options{DefaultPrefix: "feather"}, colliding...)
	jsonOutput = true
	buf := captureOutput(prefixesCmd)

	if err := runPrefixes(prefixesCmd, nil); err != nil {
		t.Fatalf("runPrefixes() error: %v", err)
	}

	var view prefixesView
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if view.DefaultPrefix != "feather" {
		t.Errorf("DefaultPrefix = %q", view.DefaultPrefix)
	}
	if view.Prefixes["feather"] != "cool-icons/feather" {
		t.Errorf("Prefixes = %v", view.Prefixes)
	}
	if len(view.Collisions["lucide"]) != 2 {
		t.Errorf("Collisions = %v, want two lucide claimants", view.Collisions)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"nil", nil, types.ExitSuccess},
		{"not found", &resource.NotFoundError{Resource: "x"}, types.ExitNotFound},
		{"unknown prefix", &registry.UnknownPrefixError{Prefix: "x"}, types.ExitNotFound},
		{"ambiguous", &registry.AmbiguousPrefixError{Prefix: "x"}, types.ExitNotFound},
		{"no default", &registry.NoDefaultPrefixError{Name: "x"}, types.ExitNotFound},
		{"unknown qualified", &registry.UnknownQualifiedPackError{Name: "x/y"}, types.ExitNotFound},
		{"other", errors.New("boom"), types.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("check the TOML syntax").
		Wrap(plain).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "• check the TOML syntax") {
		t.Errorf("formatErrorForDisplay(actionable) = %q, want suggestion bullet", got)
	}
}

var testConfig = config.Config{
	Blocklist:     []string{"cfg-dist/cfg-pack"},
	PrefixMap:     map[string]config.PackTarget{"luc": "cfg-dist/lucide", "ico": "cfg-dist/icons"},
	DefaultPrefix: "cfg-default",
}

func TestBuildRegistryOptions_FlagsWinOverConfig(t *testing.T) {
	t.Cleanup(func() {
		blocklistFlag = nil
		prefixMapFlag = nil
		defaultPrefixFlag = ""
	})

	cfg := &testConfig
	blocklistFlag = []string{"flag-dist/flag-pack"}
	prefixMapFlag = map[string]string{"luc": "flag-dist/lucide"}
	defaultPrefixFlag = "flag-default"

	opts := buildRegistryOptions(cfg)

	if len(opts.Blocklist) != 2 {
		t.Errorf("Blocklist = %v, want union of config and flag", opts.Blocklist)
	}
	if opts.PrefixMap["luc"] != "flag-dist/lucide" {
		t.Errorf("PrefixMap[luc] = %q, flag should win", opts.PrefixMap["luc"])
	}
	if opts.PrefixMap["ico"] != "cfg-dist/icons" {
		t.Errorf("PrefixMap[ico] = %q, config entry should survive", opts.PrefixMap["ico"])
	}
	if opts.DefaultPrefix != "flag-default" {
		t.Errorf("DefaultPrefix = %q", opts.DefaultPrefix)
	}
}
