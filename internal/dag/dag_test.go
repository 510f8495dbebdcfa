// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestTopologicalSort_EmptyGraph(t *testing.T) {
	t.Parallel()
	g := New()
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != nil {
		t.Errorf("expected nil, got %v", order)
	}
}

func TestTopologicalSort_ExtensionChain(t *testing.T) {
	t.Parallel()
	g := New()
	// upper_color extends shoe_color, which extends color.
	g.AddEdge("shoe_color", "upper_color")
	g.AddEdge("color", "shoe_color")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"color", "shoe_color", "upper_color"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_InsertionOrderAtSameLevel(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("size")
	g.AddNode("color")
	g.AddEdge("color", "frame_color")
	g.AddEdge("size", "shoe_size")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"size", "color", "shoe_size", "frame_color"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_Cycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		edges    [][2]string
		minCycle int
	}{
		{"self loop", [][2]string{{"a", "a"}}, 1},
		{"two nodes", [][2]string{{"a", "b"}, {"b", "a"}}, 2},
		{"three nodes", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New()
			g.AddNode("independent")
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}

			_, err := g.TopologicalSort()
			var cycleErr *CycleError
			if !errors.As(err, &cycleErr) {
				t.Fatalf("expected *CycleError, got %T: %v", err, err)
			}
			if len(cycleErr.Cycle) < tt.minCycle {
				t.Errorf("expected at least %d nodes in cycle, got %v", tt.minCycle, cycleErr.Cycle)
			}
			if slices.Contains(cycleErr.Cycle, "independent") {
				t.Errorf("independent node reported as part of the cycle: %v", cycleErr.Cycle)
			}
		})
	}
}

func TestTopologicalSort_DuplicateEdges(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("color", "shoe_color")
	g.AddEdge("color", "shoe_color")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(order, []string{"color", "shoe_color"}) {
		t.Errorf("expected [color shoe_color], got %v", order)
	}
}

func TestGraph_AddNodeTwice(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("color")
	g.AddNode("color")
	g.AddEdge("color", "shoe_color")
	g.AddNode("shoe_color")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(order, []string{"color", "shoe_color"}) {
		t.Errorf("expected [color shoe_color], got %v", order)
	}
}

func TestCycleError_Message(t *testing.T) {
	t.Parallel()
	err := &CycleError{Cycle: []string{"a", "b", "c"}}
	expected := "dependency cycle detected: a -> b -> c"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
