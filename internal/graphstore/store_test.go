package graphstore

import (
	"reflect"
	"testing"
)

func TestDependencyListDropsOwnPathOnCycle(t *testing.T) {
	// A cycle a -> b -> a makes the variable-length traversal reach the
	// starting file again; its own path must never appear in its list.
	raw := []any{"/repo/b.ts", "/repo/a.ts", "/repo/c.ts"}

	deps := dependencyList(raw, "/repo/a.ts")
	want := []string{"/repo/b.ts", "/repo/c.ts"}
	if !reflect.DeepEqual(deps, want) {
		t.Fatalf("expected %v, got %v", want, deps)
	}
}

func TestDependencyListSortsAndFiltersDriverValues(t *testing.T) {
	raw := []any{"/repo/z.ts", nil, 42, "", "/repo/a.ts"}

	deps := dependencyList(raw, "/repo/self.ts")
	want := []string{"/repo/a.ts", "/repo/z.ts"}
	if !reflect.DeepEqual(deps, want) {
		t.Fatalf("expected sorted string-only list %v, got %v", want, deps)
	}
}

func TestDependencyListNonListValue(t *testing.T) {
	deps := dependencyList(nil, "/repo/a.ts")
	if len(deps) != 0 {
		t.Fatalf("expected empty list for a non-list driver value, got %v", deps)
	}
	if deps == nil {
		t.Fatalf("expected an empty slice, not nil")
	}
}
