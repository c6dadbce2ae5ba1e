package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultDepsFilter selects the app-router entry points of a typical
// project layout.
const defaultDepsFilter = "/app/"

func RunDeps(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	filter := defaultDepsFilter
	if len(args) > 0 && args[0] != "" {
		filter = args[0]
	}

	ctx := cmd.Context()
	store, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	deps, err := store.TransitiveDependencies(ctx, filter)
	if err != nil {
		return err
	}
	return PrintDependencyMap(deps, asJSON)
}
