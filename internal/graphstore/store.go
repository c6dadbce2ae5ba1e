// Package graphstore persists the file dependency graph into Neo4j.
//
// Schema: (:File {path}) nodes with path as the unique identity and
// unlabeled [:IMPORTS] relations between them. Rebuilds are destructive:
// the whole store is wiped before every write.
package graphstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/featlens-dev/featlens/internal/scanner"
)

const (
	connectAttempts = 4
	connectBackoff  = 500 * time.Millisecond
)

// Store wraps a single process-wide Neo4j driver.
type Store struct {
	driver neo4j.DriverWithContext
	log    *slog.Logger
}

// Connect creates the driver and verifies connectivity with bounded backoff.
// Connection failure after the retries is the one batch-fatal error class in
// this tool.
func Connect(ctx context.Context, uri, user, password string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	backoff := connectBackoff
	for attempt := 1; ; attempt++ {
		err = driver.VerifyConnectivity(ctx)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			driver.Close(ctx)
			return nil, fmt.Errorf("failed to reach graph store at %s after %d attempts: %w", uri, connectAttempts, err)
		}
		log.Warn("graph store unreachable, retrying",
			"uri", uri, "attempt", attempt, "backoff", backoff.String(), "error", err)
		select {
		case <-ctx.Done():
			driver.Close(ctx)
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return &Store{driver: driver, log: log}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Rebuild wipes the entire store and writes the graph derived from records
// in one batch transaction. Node and edge writes use MERGE keyed by path
// and by node pair, so replaying identical records leaves identical counts.
func (s *Store) Rebuild(ctx context.Context, records []scanner.ImportRecord) error {
	plan := BuildPlan(records)

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	// Schema statements cannot share a transaction with data writes.
	if _, err := session.Run(ctx,
		"CREATE CONSTRAINT file_path_unique IF NOT EXISTS FOR (f:File) REQUIRE f.path IS UNIQUE", nil); err != nil {
		return fmt.Errorf("failed to ensure path constraint: %w", err)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
			return nil, fmt.Errorf("failed to clear graph: %w", err)
		}
		for _, node := range plan.Nodes {
			if _, err := tx.Run(ctx,
				"MERGE (:File {path: $path})",
				map[string]any{"path": node}); err != nil {
				return nil, fmt.Errorf("failed to upsert node %q: %w", node, err)
			}
		}
		for _, edge := range plan.Edges {
			if _, err := tx.Run(ctx,
				"MATCH (a:File {path: $source}), (b:File {path: $target}) MERGE (a)-[:IMPORTS]->(b)",
				map[string]any{"source": edge.Source, "target": edge.Target}); err != nil {
				return nil, fmt.Errorf("failed to upsert edge %q -> %q: %w", edge.Source, edge.Target, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to rebuild graph: %w", err)
	}

	s.log.Info("graph rebuilt", "nodes", len(plan.Nodes), "edges", len(plan.Edges))
	return nil
}

// TransitiveDependencies returns, for every File whose path contains
// pathFilter, the distinct set of files reachable over one or more IMPORTS
// hops. The traversal is cycle-safe (DISTINCT collection bounds it) and a
// file never appears in its own dependency list.
func (s *Store) TransitiveDependencies(ctx context.Context, pathFilter string) (map[string][]string, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
MATCH (f:File)
WHERE f.path CONTAINS $filter
OPTIONAL MATCH (f)-[:IMPORTS*1..]->(dep:File)
WITH f, collect(DISTINCT dep.path) AS dependencies
RETURN f.path AS file, dependencies`

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"filter": pathFilter})
		if err != nil {
			return nil, err
		}

		deps := make(map[string][]string)
		for result.Next(ctx) {
			record := result.Record()
			file, _ := record.Get("file")
			filePath, ok := file.(string)
			if !ok {
				continue
			}
			raw, _ := record.Get("dependencies")
			deps[filePath] = dependencyList(raw, filePath)
		}
		return deps, result.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transitive dependencies: %w", err)
	}
	return out.(map[string][]string), nil
}

// dependencyList converts a driver list value into sorted paths, dropping
// the file's own path if a cycle led back to it.
func dependencyList(raw any, selfPath string) []string {
	values, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	deps := make([]string, 0, len(values))
	for _, value := range values {
		path, ok := value.(string)
		if !ok || path == "" || path == selfPath {
			continue
		}
		deps = append(deps, path)
	}
	sort.Strings(deps)
	return deps
}
