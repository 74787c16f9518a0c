package oasloc

import (
	"errors"
	"strings"
	"testing"
)

func TestLocaleError(t *testing.T) {
	cause := errors.New("file not found")
	err := &LocaleError{Locale: "es-ES", Message: "loading locale", Cause: cause}

	if !strings.Contains(err.Error(), "es-ES") || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	bare := &LocaleError{Locale: "es-ES", Message: "loading locale"}
	if strings.Contains(bare.Error(), "<nil>") {
		t.Errorf("Error() without cause = %q", bare.Error())
	}
}

func TestRuleCompileError(t *testing.T) {
	cause := errors.New("missing closing )")
	err := &RuleCompileError{Category: "contractions", Pattern: "([a-z", Cause: cause}

	for _, want := range []string{"contractions", "([a-z"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, missing %q", err.Error(), want)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestDocumentError(t *testing.T) {
	cause := errors.New("yaml: line 3")
	err := &DocumentError{Message: "failed to parse document", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if !strings.Contains(err.Error(), "failed to parse document") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWriteError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &WriteError{Path: "/out/openapi_es-ES.yaml", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if !strings.Contains(err.Error(), "/out/openapi_es-ES.yaml") {
		t.Errorf("Error() = %q", err.Error())
	}

	// Typed errors remain discoverable through wrapping.
	wrapped := &LocaleError{Locale: "es-ES", Message: "writing output", Cause: err}
	var writeErr *WriteError
	if !errors.As(wrapped, &writeErr) {
		t.Error("errors.As should unwrap to WriteError")
	}
}
