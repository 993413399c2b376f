// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestGet_EveryIdHasAnIssue(t *testing.T) {
	ids := []Id{
		ResourceNotFoundId,
		UnknownPrefixId,
		AmbiguousPrefixId,
		UnknownQualifiedPackId,
		NoDefaultPrefixId,
		ConfigLoadFailedId,
		PackListingFailedId,
	}
	for _, id := range ids {
		got := Get(id)
		if got == nil {
			t.Errorf("Get(%d) = nil", id)
			continue
		}
		if got.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, got.Id())
		}
		if got.MarkdownMsg() == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}
	if len(Values()) != len(ids) {
		t.Errorf("Values() has %d issues, want %d", len(Values()), len(ids))
	}
}

func TestActionableError_Error(t *testing.T) {
	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.toml").
		Wrap(cause).
		Build()

	want := "failed to load configuration: config.toml: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	err := NewErrorContext().
		WithOperation("resolve name").
		WithSuggestion("use a fully-qualified name").
		WithSuggestion("configure a prefix override").
		Wrap(errors.New("prefix contested")).
		Build()

	t.Run("Concise", func(t *testing.T) {
		out := err.Format(false)
		if !strings.Contains(out, "• use a fully-qualified name") {
			t.Errorf("missing suggestion in %q", out)
		}
		if strings.Contains(out, "Error chain") {
			t.Errorf("non-verbose output should not include the chain: %q", out)
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		out := err.Format(true)
		if !strings.Contains(out, "Error chain:") {
			t.Errorf("verbose output should include the chain: %q", out)
		}
	})
}

func TestErrorContext_RequiresOperation(t *testing.T) {
	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
	wrapped := WrapWithOperation(errors.New("io"), "read pack")
	if wrapped.Error() != "failed to read pack: io" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}
