package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// RunPipeline is the batch entry point: scan the tree, rebuild the graph,
// print the transitive dependency listing, then summarize every file.
func RunPipeline(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to read --out flag: %w", err)
	}
	filter, err := cmd.Flags().GetString("filter")
	if err != nil {
		return fmt.Errorf("failed to read --filter flag: %w", err)
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

	// One store connection serves both the rebuild and the dependency
	// query. Querying after the rebuild means the listing always reflects
	// the graph this run just wrote.
	ctx := cmd.Context()
	store, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if _, err := rebuildGraph(ctx, store, result.Records); err != nil {
		return err
	}

	deps, err := store.TransitiveDependencies(ctx, filter)
	if err != nil {
		return err
	}
	if !asJSON {
		if err := PrintDependencyMap(deps, false); err != nil {
			return err
		}
	}

	summary, err := summarizeRecords(cmd, result.Records, rootPath, outPath, asJSON)
	if err != nil {
		return err
	}
	summary.Mode = "run"
	summary.Dependencies = deps
	summary.DurationMS = time.Since(start).Milliseconds()
	return PrintSummarizeSummary(summary, asJSON)
}
