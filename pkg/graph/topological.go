package graph

import (
	dgraph "github.com/dominikbraun/graph"

	"github.com/mantle-engine/mantle/pkg/errs"
)

// build constructs the underlying directed graph, with one edge per
// dependency: dep -> id, meaning dep must be visited before id.
func (g *Graph) build() (dgraph.Graph[string, string], error) {
	dg := dgraph.New(dgraph.StringHash, dgraph.Directed())
	for _, id := range g.order {
		if err := dg.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for _, id := range g.order {
		r := g.resources[id]
		for _, dep := range r.Dependencies {
			if err := dg.AddEdge(dep, id); err != nil {
				return nil, err
			}
		}
	}
	return dg, nil
}

// TopologicalOrder returns an order in which every resource follows all of
// its dependencies, breaking ties deterministically by insertion order
// (Kahn's algorithm, scanning ready nodes in the graph's own insertion
// order rather than relying on any particular library tie-break). Returns
// a *errs.CycleError if any resource retains unresolved edges once no
// further progress is possible.
func (g *Graph) TopologicalOrder() ([]string, error) {
	dg, err := g.build()
	if err != nil {
		return nil, err
	}

	predecessors, err := dg.PredecessorMap()
	if err != nil {
		return nil, err
	}
	adjacency, err := dg.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	inDegree := make(map[string]int, len(g.order))
	for id, preds := range predecessors {
		inDegree[id] = len(preds)
	}

	visited := make(map[string]bool, len(g.order))
	result := make([]string, 0, len(g.order))

	for len(result) < len(g.order) {
		progressed := false
		for _, id := range g.order {
			if visited[id] || inDegree[id] != 0 {
				continue
			}
			visited[id] = true
			result = append(result, id)
			progressed = true
			for successor := range adjacency[id] {
				inDegree[successor]--
			}
		}
		if !progressed {
			remaining := make([]string, 0, len(g.order)-len(result))
			for _, id := range g.order {
				if !visited[id] {
					remaining = append(remaining, id)
				}
			}
			return nil, &errs.CycleError{Remaining: remaining}
		}
	}

	return result, nil
}

// ReverseTopologicalOrder returns TopologicalOrder reversed (leaves first),
// the order Phase 1 deletions are processed in.
func (g *Graph) ReverseTopologicalOrder() ([]string, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	reversed := make([]string, len(order))
	for i, id := range order {
		reversed[len(order)-1-i] = id
	}
	return reversed, nil
}
