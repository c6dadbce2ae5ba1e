package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

type ScanSummary struct {
	Mode       string `json:"mode"`
	RootPath   string `json:"root_path"`
	Scanned    int    `json:"scanned"`
	Skipped    int    `json:"skipped"`
	Nodes      int    `json:"nodes,omitempty"`
	Edges      int    `json:"edges,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type SummarizeSummary struct {
	Mode       string `json:"mode"`
	RootPath   string `json:"root_path"`
	OutputFile string `json:"output_file"`
	Files      int    `json:"files"`
	Succeeded  int    `json:"succeeded"`
	Failed     int    `json:"failed"`
	// Dependencies is populated by the run pipeline so JSON consumers get
	// the transitive listing without a second deps invocation.
	Dependencies map[string][]string `json:"dependencies,omitempty"`
	DurationMS   int64               `json:"duration_ms"`
}

func PrintScanSummary(summary ScanSummary, asJSON bool) error {
	if asJSON {
		return printJSON(summary)
	}

	fmt.Printf("scan complete in %dms\n", summary.DurationMS)
	fmt.Printf("files: scanned=%d skipped=%d\n", summary.Scanned, summary.Skipped)
	if summary.DryRun {
		fmt.Println("graph: skipped (dry run)")
		return nil
	}
	fmt.Printf("graph: nodes=%d edges=%d\n", summary.Nodes, summary.Edges)
	return nil
}

func PrintSummarizeSummary(summary SummarizeSummary, asJSON bool) error {
	if asJSON {
		return printJSON(summary)
	}

	fmt.Printf("summarize complete in %dms\n", summary.DurationMS)
	fmt.Printf("output: %s\n", summary.OutputFile)
	fmt.Printf("features: files=%d succeeded=%d failed=%d\n", summary.Files, summary.Succeeded, summary.Failed)
	return nil
}

// PrintDependencyMap renders the transitive dependency listing the way the
// deps command always has: one file heading per entry, indented dep lines.
func PrintDependencyMap(deps map[string][]string, asJSON bool) error {
	if asJSON {
		return printJSON(deps)
	}

	files := make([]string, 0, len(deps))
	for file := range deps {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Printf("File: %s\n", file)
		fmt.Println("  Transitive deps:")
		for _, dep := range deps[file] {
			fmt.Printf("    - %s\n", dep)
		}
		fmt.Println()
	}
	return nil
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// SummarizePaths abbreviates a path list for one-line summaries.
func SummarizePaths(paths []string, limit int) string {
	if limit <= 0 || len(paths) <= limit {
		return strings.Join(paths, ", ")
	}
	return strings.Join(paths[:limit], ", ") + fmt.Sprintf(", ... (+%d more)", len(paths)-limit)
}
