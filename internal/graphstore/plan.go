package graphstore

import (
	"sort"

	"github.com/featlens-dev/featlens/internal/resolver"
	"github.com/featlens-dev/featlens/internal/scanner"
)

// Edge is one directed IMPORTS relation keyed by its (Source, Target) pair.
type Edge struct {
	Source string
	Target string
}

// Plan is the deduplicated node and edge set derived from scan records.
// Building it is pure: applying the same records twice yields an identical
// plan, which is what makes the store rebuild idempotent.
type Plan struct {
	Nodes []string
	Edges []Edge
}

// BuildPlan flattens import records into upsert-ready nodes and edges.
// Empty targets and self-loops are filtered; duplicate edges collapse onto
// their (source, target) key. Both locally resolved paths and opaque
// external names become nodes, matching the graph schema where File.path is
// the sole identity.
func BuildPlan(records []scanner.ImportRecord) Plan {
	nodeSet := make(map[string]bool)
	edgeSet := make(map[Edge]bool)

	for _, record := range records {
		if record.File == "" {
			continue
		}
		nodeSet[record.File] = true

		for _, imp := range record.Imports {
			if imp.Kind == resolver.KindIgnored || imp.Target == "" {
				continue
			}
			if imp.Target == record.File {
				continue
			}
			nodeSet[imp.Target] = true
			edgeSet[Edge{Source: record.File, Target: imp.Target}] = true
		}
	}

	nodes := make([]string, 0, len(nodeSet))
	for node := range nodeSet {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	edges := make([]Edge, 0, len(edgeSet))
	for edge := range edgeSet {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source == edges[j].Source {
			return edges[i].Target < edges[j].Target
		}
		return edges[i].Source < edges[j].Source
	})

	return Plan{Nodes: nodes, Edges: edges}
}
