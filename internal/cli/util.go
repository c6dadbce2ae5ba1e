package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/featlens-dev/featlens/internal/config"
	"github.com/featlens-dev/featlens/internal/graphstore"
	"github.com/featlens-dev/featlens/internal/resolver"
	"github.com/featlens-dev/featlens/internal/scanner"
	"github.com/featlens-dev/featlens/internal/tsconfig"
)

var warnColor = color.New(color.FgYellow)

// resolveScanRoot turns the optional positional path argument into an
// absolute directory.
func resolveScanRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	rootPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("failed to access path %q: %w", rootPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", rootPath)
	}
	return rootPath, nil
}

// newScanner builds the per-run scanner with its own resolver and config
// locator, wired from the command's --ignore-prefix flag.
func newScanner(cmd *cobra.Command) (*scanner.Scanner, error) {
	prefixes, err := cmd.Flags().GetStringSlice("ignore-prefix")
	if err != nil {
		return nil, fmt.Errorf("failed to read --ignore-prefix flag: %w", err)
	}
	res := resolver.New(tsconfig.NewLocator(), prefixes)
	return scanner.New(res), nil
}

// connectStore validates the credentials and opens the one store connection
// a command uses for all of its graph work.
func connectStore(ctx context.Context) (*graphstore.Store, error) {
	cfg := config.Load()
	if err := cfg.ValidateGraphStore(); err != nil {
		return nil, err
	}
	return graphstore.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, nil)
}

func reportScanIssues(issues []scanner.ScanIssue) {
	for _, issue := range issues {
		warnColor.Fprintf(os.Stderr, "[skipped] %s: %s\n", issue.File, issue.Message)
	}
}
