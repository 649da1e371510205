package tests

import (
	"context"
	"testing"

	"github.com/aretw0/bombrisk/pkg/ports"
)

// TreatmentLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.TreatmentLoader.
func TreatmentLoaderContractTest(t *testing.T, loader ports.TreatmentLoader, expected map[string]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for name, method := range expected {
			tr, err := loader.Get(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error getting treatment %s: %v", name, err)
			}
			if got, _ := tr.Options["method"].(string); got != method {
				t.Errorf("method mismatch for %s. got %q, want %q", name, got, method)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		if _, err := loader.Get(ctx, "non-existent-treatment"); err == nil {
			t.Error("expected error for non-existent treatment, got nil")
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing treatments: %v", err)
		}
		if len(names) != len(expected) {
			t.Errorf("expected %d treatments, got %d", len(expected), len(names))
		}
		lookup := make(map[string]bool)
		for _, n := range names {
			lookup[n] = true
		}
		for n := range expected {
			if !lookup[n] {
				t.Errorf("treatment %s missing from list", n)
			}
		}
	})
}
