// SPDX-License-Identifier: MPL-2.0

// Package dag orders named items that depend on each other. The loader uses
// it to resolve extended attributes: an attribute can only be built once the
// attribute it takes its values from exists.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError reports items that could not be ordered because they depend
	// on each other.
	CycleError struct {
		// Cycle lists the unordered items in insertion order. It holds at
		// least every item on the cycle.
		Cycle []string
	}

	// Graph records "resolve before" relations between named items.
	Graph struct {
		dependents map[string][]string
		// order keeps first-seen order so results are reproducible.
		order []string
		seen  map[string]struct{}
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		dependents: make(map[string][]string),
		seen:       make(map[string]struct{}),
	}
}

// AddNode registers an item with no relations. Adding it again does nothing.
func (g *Graph) AddNode(name string) {
	if _, ok := g.seen[name]; ok {
		return
	}
	g.seen[name] = struct{}{}
	g.order = append(g.order, name)
}

// AddEdge records that before must be resolved ahead of after, registering
// either item if needed.
func (g *Graph) AddEdge(before, after string) {
	g.AddNode(before)
	g.AddNode(after)
	g.dependents[before] = append(g.dependents[before], after)
}

// TopologicalSort returns every item after the items it depends on. Items
// that become ready together keep their first-seen order. A *CycleError is
// returned when some items can never become ready.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.order) == 0 {
		return nil, nil
	}

	waiting := make(map[string]int, len(g.order))
	for _, after := range g.dependents {
		for _, name := range after {
			waiting[name]++
		}
	}

	ready := make([]string, 0, len(g.order))
	for _, name := range g.order {
		if waiting[name] == 0 {
			ready = append(ready, name)
		}
	}

	// ready doubles as the result: items are appended as they unblock.
	for next := 0; next < len(ready); next++ {
		for _, name := range g.dependents[ready[next]] {
			if waiting[name]--; waiting[name] == 0 {
				ready = append(ready, name)
			}
		}
	}

	if len(ready) == len(g.order) {
		return ready, nil
	}

	var blocked []string
	for _, name := range g.order {
		if waiting[name] > 0 {
			blocked = append(blocked, name)
		}
	}
	return nil, &CycleError{Cycle: blocked}
}
