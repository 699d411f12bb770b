package services_test

import (
	"errors"
	"strings"
	"testing"

	"galley/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "covers", "materialize", "copy failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"covers", "materialize", "copy failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "reports", "read", "missing source", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", services.Wrap(services.ErrValidation, "landing", "slug", "exhausted", nil), true},
		{"configuration", services.Wrap(services.ErrConfiguration, "catalog", "load", "malformed", nil), true},
		{"transient", services.Wrap(services.ErrTransient, "covers", "copy", "io", errors.New("io")), false},
		{"not found", services.Wrap(services.ErrNotFound, "catalog", "resolve", "no entry", nil), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsFatal(tt.err); got != tt.want {
				t.Fatalf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
