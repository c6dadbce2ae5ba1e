package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderSectionFormat(t *testing.T) {
	out := string(Render([]Section{
		{File: "/repo/app/page.tsx", Summary: "Renders the landing page."},
	}))

	if !strings.HasPrefix(out, "=== Feature Summary for /repo/app/page.tsx ===\n") {
		t.Fatalf("missing section header:\n%s", out)
	}
	if !strings.Contains(out, "Renders the landing page.\n") {
		t.Fatalf("missing summary body:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("-", 80)+"\n") {
		t.Fatalf("missing fixed-width separator:\n%s", out)
	}
}

func TestRenderMultipleSections(t *testing.T) {
	out := string(Render([]Section{
		{File: "a.tsx", Summary: "First."},
		{File: "b.tsx", Summary: "Second."},
	}))

	if strings.Count(out, "=== Feature Summary for ") != 2 {
		t.Fatalf("expected two section headers:\n%s", out)
	}
	if strings.Count(out, strings.Repeat("-", 80)) != 2 {
		t.Fatalf("expected two separators:\n%s", out)
	}
	if strings.Index(out, "a.tsx") > strings.Index(out, "b.tsx") {
		t.Fatalf("sections out of order:\n%s", out)
	}
}

func TestWriteProducesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	sections := []Section{{File: "a.tsx", Summary: "First."}}

	if err := Write(path, sections); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if string(data) != string(Render(sections)) {
		t.Fatalf("written report differs from rendered output")
	}

	// Rewriting identical content must not error.
	if err := Write(path, sections); err != nil {
		t.Fatalf("idempotent write failed: %v", err)
	}
}
