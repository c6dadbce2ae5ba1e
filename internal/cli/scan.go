package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/featlens-dev/featlens/internal/graphstore"
	"github.com/featlens-dev/featlens/internal/ignore"
	"github.com/featlens-dev/featlens/internal/scanner"
)

func RunScan(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to read --dry-run flag: %w", err)
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

	summary := ScanSummary{
		Mode:     "scan",
		RootPath: rootPath,
		Scanned:  len(result.Records),
		Skipped:  len(result.Issues),
		DryRun:   dryRun,
	}

	if !dryRun {
		ctx := cmd.Context()
		store, err := connectStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		plan, err := rebuildGraph(ctx, store, result.Records)
		if err != nil {
			return err
		}
		summary.Nodes = len(plan.Nodes)
		summary.Edges = len(plan.Edges)
	}

	summary.DurationMS = time.Since(start).Milliseconds()
	return PrintScanSummary(summary, asJSON)
}

// scanTree runs the directory scan with progress reporting and prints the
// per-file issues afterwards.
func scanTree(cmd *cobra.Command, rootPath string, asJSON bool) (*scanner.ScanResult, error) {
	s, err := newScanner(cmd)
	if err != nil {
		return nil, err
	}

	progress := newProgressReporter("scan", "parsing", 0, asJSON)
	result, err := s.ScanDirectory(cmd.Context(), rootPath, loadIgnoreRules(rootPath), progress.Update)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", rootPath, err)
	}
	progress.Done(len(result.Records))
	reportScanIssues(result.Issues)
	if len(result.Issues) > 0 && !asJSON {
		skipped := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			skipped = append(skipped, issue.File)
		}
		fmt.Printf("skipped files (%d): %s\n", len(skipped), SummarizePaths(skipped, 8))
	}
	return result, nil
}

// rebuildGraph replaces the store contents with the scanned records. The
// wipe is total and unconditional, so say so up front.
func rebuildGraph(ctx context.Context, store *graphstore.Store, records []scanner.ImportRecord) (graphstore.Plan, error) {
	warnColor.Fprintln(os.Stderr, "warning: rebuilding replaces the entire graph store contents")

	if err := store.Rebuild(ctx, records); err != nil {
		return graphstore.Plan{}, err
	}
	return graphstore.BuildPlan(records), nil
}

func loadIgnoreRules(rootPath string) []string {
	rules, err := ignore.LoadRules(rootPath)
	if err != nil {
		warnColor.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil
	}
	return rules
}
