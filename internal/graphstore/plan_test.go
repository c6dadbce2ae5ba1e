package graphstore

import (
	"reflect"
	"testing"

	"github.com/featlens-dev/featlens/internal/resolver"
	"github.com/featlens-dev/featlens/internal/scanner"
)

func sampleRecords() []scanner.ImportRecord {
	return []scanner.ImportRecord{
		{
			File: "/repo/app/page.tsx",
			Imports: []resolver.Resolution{
				{Kind: resolver.KindLocal, Target: "/repo/components/button.tsx"},
				{Kind: resolver.KindExternal, Target: "lodash"},
				{Kind: resolver.KindLocal, Target: "/repo/components/button.tsx"},
			},
		},
		{
			File: "/repo/components/button.tsx",
			Imports: []resolver.Resolution{
				{Kind: resolver.KindExternal, Target: "react"},
			},
		},
	}
}

func TestBuildPlanDeduplicatesEdges(t *testing.T) {
	plan := BuildPlan(sampleRecords())

	wantNodes := []string{
		"/repo/app/page.tsx",
		"/repo/components/button.tsx",
		"lodash",
		"react",
	}
	if !reflect.DeepEqual(plan.Nodes, wantNodes) {
		t.Fatalf("unexpected nodes: %v", plan.Nodes)
	}

	wantEdges := []Edge{
		{Source: "/repo/app/page.tsx", Target: "/repo/components/button.tsx"},
		{Source: "/repo/app/page.tsx", Target: "lodash"},
		{Source: "/repo/components/button.tsx", Target: "react"},
	}
	if !reflect.DeepEqual(plan.Edges, wantEdges) {
		t.Fatalf("unexpected edges: %v", plan.Edges)
	}
}

func TestBuildPlanIsIdempotent(t *testing.T) {
	first := BuildPlan(sampleRecords())
	second := BuildPlan(append(sampleRecords(), sampleRecords()...))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("duplicated input must collapse to the same plan:\n%+v\nvs\n%+v", first, second)
	}
}

func TestBuildPlanFiltersSelfLoopsAndEmptyTargets(t *testing.T) {
	records := []scanner.ImportRecord{
		{
			File: "/repo/a.ts",
			Imports: []resolver.Resolution{
				{Kind: resolver.KindLocal, Target: "/repo/a.ts"},
				{Kind: resolver.KindUnresolved, Target: ""},
				{Kind: resolver.KindLocal, Target: "/repo/b.ts"},
			},
		},
	}

	plan := BuildPlan(records)
	for _, edge := range plan.Edges {
		if edge.Source == edge.Target {
			t.Fatalf("self-loop survived planning: %+v", edge)
		}
		if edge.Target == "" {
			t.Fatalf("empty target survived planning: %+v", edge)
		}
	}
	if len(plan.Edges) != 1 {
		t.Fatalf("expected a single edge, got %+v", plan.Edges)
	}
}

func TestBuildPlanKeepsUnresolvedFallbackStrings(t *testing.T) {
	records := []scanner.ImportRecord{
		{
			File: "/repo/a.ts",
			Imports: []resolver.Resolution{
				{Kind: resolver.KindUnresolved, Target: "@/missing/module"},
			},
		},
	}

	plan := BuildPlan(records)
	if len(plan.Edges) != 1 || plan.Edges[0].Target != "@/missing/module" {
		t.Fatalf("unresolved raw specifiers must still become edges, got %+v", plan.Edges)
	}
}
