package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "featlens",
		Short: "Map web-app import graphs and summarize features",
		Long: `Featlens scans a TypeScript/TSX source tree, extracts the import
relationships between files, persists the dependency graph into Neo4j,
and asks a language model to describe the feature each file implements
together with its dependencies.

Summaries are written to feature_summaries.txt in the working directory.`,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a source tree and rebuild the dependency graph",
		Long: `Scan walks the tree, parses every .ts/.tsx file and rebuilds the
graph store. The rebuild is destructive: the entire store is wiped first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunScan,
	}
	scanCmd.Flags().Bool("json", false, "Print machine-readable run summary")
	scanCmd.Flags().Bool("dry-run", false, "Parse and report without touching the graph store")
	scanCmd.Flags().StringSlice("ignore-prefix", []string{"next"}, "Import prefixes dropped from the graph")

	depsCmd := &cobra.Command{
		Use:   "deps [path-filter]",
		Short: "List transitive dependencies of files matching a path filter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunDeps,
	}
	depsCmd.Flags().Bool("json", false, "Print machine-readable dependency map")

	summarizeCmd := &cobra.Command{
		Use:   "summarize [path]",
		Short: "Generate feature summaries for every scanned file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunSummarize,
	}
	summarizeCmd.Flags().Bool("json", false, "Print machine-readable run summary")
	summarizeCmd.Flags().String("out", "", "Report file path (default feature_summaries.txt)")
	summarizeCmd.Flags().StringSlice("ignore-prefix", []string{"next"}, "Import prefixes dropped from dependency lists")

	runCmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Scan, rebuild the graph, print dependencies and summarize",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunPipeline,
	}
	runCmd.Flags().Bool("json", false, "Print machine-readable run summary")
	runCmd.Flags().String("out", "", "Report file path (default feature_summaries.txt)")
	runCmd.Flags().String("filter", defaultDepsFilter, "Path filter for the dependency listing")
	runCmd.Flags().StringSlice("ignore-prefix", []string{"next"}, "Import prefixes dropped from the graph")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("featlens %s\n", version)
		},
	}

	rootCmd.AddCommand(
		scanCmd,
		depsCmd,
		summarizeCmd,
		runCmd,
		versionCmd,
	)

	return rootCmd
}
