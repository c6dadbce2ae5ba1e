package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/featlens-dev/featlens/internal/tsconfig"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("export {}\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write tsconfig: %v", err)
	}
}

func newTestResolver() *Resolver {
	return New(tsconfig.NewLocator(), []string{"next"})
}

func TestResolveDirectFileBeatsIndexFile(t *testing.T) {
	root := t.TempDir()
	direct := filepath.Join(root, "components", "x.tsx")
	index := filepath.Join(root, "components", "x", "index.tsx")
	writeFile(t, direct)
	writeFile(t, index)

	res := newTestResolver().Resolve(filepath.Join(root, "components"), "./x")
	if res.Kind != KindLocal {
		t.Fatalf("expected local resolution, got %s (%q)", res.Kind, res.Target)
	}
	if res.Target != direct {
		t.Fatalf("expected direct file %q to win over index, got %q", direct, res.Target)
	}
}

func TestResolveExtensionPrecedence(t *testing.T) {
	root := t.TempDir()
	ts := filepath.Join(root, "util.ts")
	tsx := filepath.Join(root, "util.tsx")
	writeFile(t, ts)
	writeFile(t, tsx)

	res := newTestResolver().Resolve(root, "./util")
	if res.Target != ts {
		t.Fatalf("expected .ts to take precedence over .tsx, got %q", res.Target)
	}
}

func TestResolveIndexFileFallback(t *testing.T) {
	root := t.TempDir()
	index := filepath.Join(root, "components", "button", "index.ts")
	writeFile(t, index)

	res := newTestResolver().Resolve(filepath.Join(root, "components"), "./button")
	if res.Kind != KindLocal || res.Target != index {
		t.Fatalf("expected index file %q, got %s %q", index, res.Kind, res.Target)
	}
}

func TestResolveAliasUnderBaseURLIsScopeStable(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"compilerOptions": {"baseUrl": ".", "paths": {"@/*": ["./src/*"]}}}`)
	target := filepath.Join(root, "src", "lib", "api.ts")
	writeFile(t, target)

	r := newTestResolver()
	fromApp := r.Resolve(filepath.Join(root, "app", "settings"), "@/lib/api")
	fromSrc := r.Resolve(filepath.Join(root, "src"), "@/lib/api")

	if fromApp.Kind != KindLocal || fromApp.Target != target {
		t.Fatalf("expected %q from app dir, got %s %q", target, fromApp.Kind, fromApp.Target)
	}
	if fromSrc.Target != fromApp.Target {
		t.Fatalf("alias resolution must not depend on the importer: %q vs %q", fromSrc.Target, fromApp.Target)
	}
}

func TestResolveAliasWithBaseURLOnly(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"compilerOptions": {"baseUrl": "src"}}`)
	target := filepath.Join(root, "src", "components", "nav.tsx")
	writeFile(t, target)

	res := newTestResolver().Resolve(filepath.Join(root, "app"), "@/components/nav")
	if res.Kind != KindLocal || res.Target != target {
		t.Fatalf("expected baseUrl-anchored %q, got %s %q", target, res.Kind, res.Target)
	}
}

func TestResolveUnresolvedFallsBackToRawSpecifier(t *testing.T) {
	root := t.TempDir()

	cases := []string{"./does-not-exist", "@/missing/module", "@radix-ui/react-icons"}
	r := newTestResolver()
	for _, specifier := range cases {
		res := r.Resolve(root, specifier)
		if res.Kind != KindUnresolved {
			t.Fatalf("specifier %q: expected unresolved, got %s", specifier, res.Kind)
		}
		if res.Target != specifier {
			t.Fatalf("specifier %q: fallback must keep the raw string, got %q", specifier, res.Target)
		}
	}
}

func TestResolveIgnoredPrefix(t *testing.T) {
	r := newTestResolver()
	for _, specifier := range []string{"next", "next/router", "next/navigation"} {
		res := r.Resolve(t.TempDir(), specifier)
		if res.Kind != KindIgnored {
			t.Fatalf("specifier %q: expected ignored, got %s %q", specifier, res.Kind, res.Target)
		}
		if res.Target != "" {
			t.Fatalf("ignored resolutions carry no target, got %q", res.Target)
		}
	}
}

func TestResolveExternalPackages(t *testing.T) {
	r := newTestResolver()
	for _, specifier := range []string{"react", "lodash", "sonner"} {
		res := r.Resolve(t.TempDir(), specifier)
		if res.Kind != KindExternal || res.Target != specifier {
			t.Fatalf("specifier %q: expected external passthrough, got %s %q", specifier, res.Kind, res.Target)
		}
	}
}

func TestResolveNormalizesResolvedPaths(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "lib", "utils.ts")
	writeFile(t, target)

	res := newTestResolver().Resolve(filepath.Join(root, "app"), "../lib/utils")
	if res.Kind != KindLocal {
		t.Fatalf("expected local resolution, got %s", res.Kind)
	}
	if res.Target != filepath.Clean(res.Target) || !filepath.IsAbs(res.Target) {
		t.Fatalf("resolved path must be absolute and clean, got %q", res.Target)
	}
	if res.Target != target {
		t.Fatalf("expected %q, got %q", target, res.Target)
	}
}
