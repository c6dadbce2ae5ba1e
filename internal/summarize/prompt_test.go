package summarize

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadSectionsSkipsMissingFiles(t *testing.T) {
	root := t.TempDir()
	present := filepath.Join(root, "page.tsx")
	if err := os.WriteFile(present, []byte("export default function Page() {}\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	missing := filepath.Join(root, "gone.tsx")

	sections := ReadSections([]string{present, missing}, discardLogger())
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Path != present {
		t.Fatalf("unexpected section path %q", sections[0].Path)
	}
}

func TestReadSectionsSkipsEmptyFiles(t *testing.T) {
	root := t.TempDir()
	empty := filepath.Join(root, "empty.ts")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	sections := ReadSections([]string{empty}, discardLogger())
	if len(sections) != 0 {
		t.Fatalf("expected empty files to be dropped, got %+v", sections)
	}
}

func TestBuildPromptLabelsEachFile(t *testing.T) {
	prompt := BuildPrompt([]Section{
		{Path: "/repo/app/page.tsx", Content: "const a = 1\n"},
		{Path: "/repo/lib/api.ts", Content: "const b = 2"},
	})

	if !strings.Contains(prompt, "--- FILE: /repo/app/page.tsx\n") {
		t.Fatalf("prompt missing first file label:\n%s", prompt)
	}
	if !strings.Contains(prompt, "--- FILE: /repo/lib/api.ts\n") {
		t.Fatalf("prompt missing second file label:\n%s", prompt)
	}
	if !strings.Contains(prompt, "describe the feature they collectively implement") {
		t.Fatalf("prompt missing request template:\n%s", prompt)
	}
	if idx := strings.Index(prompt, "--- FILE:"); idx < len(promptHeader)-1 {
		t.Fatalf("file sections must follow the template header")
	}
}

func TestBuildPromptKeepsSectionOrder(t *testing.T) {
	prompt := BuildPrompt([]Section{
		{Path: "first.ts", Content: "1\n"},
		{Path: "second.ts", Content: "2\n"},
	})

	if strings.Index(prompt, "first.ts") > strings.Index(prompt, "second.ts") {
		t.Fatalf("sections out of order:\n%s", prompt)
	}
}
