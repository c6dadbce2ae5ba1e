package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/featlens-dev/featlens/internal/config"
	"github.com/featlens-dev/featlens/internal/report"
	"github.com/featlens-dev/featlens/internal/scanner"
	"github.com/featlens-dev/featlens/internal/summarize"
)

func RunSummarize(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to read --out flag: %w", err)
	}

	rootPath, err := resolveScanRoot(args)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := scanTree(cmd, rootPath, asJSON)
	if err != nil {
		return err
	}

	summary, err := summarizeRecords(cmd, result.Records, rootPath, outPath, asJSON)
	if err != nil {
		return err
	}
	summary.DurationMS = time.Since(start).Milliseconds()
	return PrintSummarizeSummary(summary, asJSON)
}

// summarizeRecords generates one feature summary per scanned file, using
// each file's direct local dependencies as context, and writes the report.
// Failed summaries are counted and rendered as the sentinel text rather
// than dropped.
func summarizeRecords(cmd *cobra.Command, records []scanner.ImportRecord, rootPath, outPath string, asJSON bool) (SummarizeSummary, error) {
	ctx := cmd.Context()
	cfg := config.Load()

	// A client that cannot be built (missing API key, bad endpoint) still
	// yields a report: every entry renders the failure sentinel.
	summarizer, err := summarize.New(ctx, cfg.GeminiModel, nil)
	if err != nil {
		warnColor.Fprintf(os.Stderr, "warning: model client unavailable: %v\n", err)
	}

	if outPath == "" {
		outPath = report.DefaultFileName
	}
	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return SummarizeSummary{}, fmt.Errorf("failed to resolve output path %q: %w", outPath, err)
	}

	sections := make([]report.Section, 0, len(records))
	succeeded, failed := 0, 0
	progress := newProgressReporter("summarize", "describing", len(records), asJSON)
	for i, record := range records {
		progress.Update(record.File, i+1)
		summary := summarize.FailureSentinel
		if summarizer != nil {
			summary = summarizer.Summarize(ctx, record.File, record.LocalDependencies())
		}
		if summary == summarize.FailureSentinel {
			failed++
		} else {
			succeeded++
		}
		sections = append(sections, report.Section{File: record.File, Summary: summary})
	}
	progress.Done(len(records))

	if err := report.Write(absOut, sections); err != nil {
		return SummarizeSummary{}, fmt.Errorf("failed to write report: %w", err)
	}

	return SummarizeSummary{
		Mode:       "summarize",
		RootPath:   rootPath,
		OutputFile: absOut,
		Files:      len(records),
		Succeeded:  succeeded,
		Failed:     failed,
	}, nil
}
