// Package graph implements the Resource Graph: a keyed collection of
// resources, their dependency edges, topological ordering, and the
// dependency-output lookups the reconciliation engine needs.
package graph

import (
	"fmt"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// Graph is an arena-with-keys: resources are stored by id, dependencies
// are ids rather than references, so the graph never has to solve
// self-referential-pointer problems and serializes trivially.
type Graph struct {
	resources map[string]*resource.Resource
	order     []string // insertion order, used to break topological-sort ties
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{resources: make(map[string]*resource.Resource)}
}

// Insert adds or replaces a resource. Re-inserting an id keeps that id's
// original position in the insertion order.
func (g *Graph) Insert(r *resource.Resource) {
	if _, exists := g.resources[r.ID]; !exists {
		g.order = append(g.order, r.ID)
	}
	g.resources[r.ID] = r
}

// Contains reports whether id is present in the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.resources[id]
	return ok
}

// Get returns the resource stored under id, if any.
func (g *Graph) Get(id string) (*resource.Resource, bool) {
	r, ok := g.resources[id]
	return r, ok
}

// Len returns the number of resources in the graph.
func (g *Graph) Len() int { return len(g.resources) }

// ResourcesList returns every resource in insertion order.
func (g *Graph) ResourcesList() []*resource.Resource {
	out := make([]*resource.Resource, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.resources[id])
	}
	return out
}

// Validate checks that every dependency id resolves to a resource within
// the same graph.
func (g *Graph) Validate() error {
	for _, id := range g.order {
		r := g.resources[id]
		for _, dep := range r.Dependencies {
			if !g.Contains(dep) {
				return &errs.ConfigError{Reason: fmt.Sprintf("resource %q depends on unknown id %q", id, dep)}
			}
		}
	}
	return nil
}

// DependencyOutputs gathers the outputs of every dependency of r, in
// dependency-list order. ok is false if any dependency lacks outputs (the
// "incomplete" case the engine uses to decide a resource must be skipped).
func (g *Graph) DependencyOutputs(r *resource.Resource) (outputs []resource.Outputs, ok bool) {
	outputs = make([]resource.Outputs, 0, len(r.Dependencies))
	for _, dep := range r.Dependencies {
		depResource, exists := g.Get(dep)
		if !exists || !depResource.HasOutputs() {
			return nil, false
		}
		outputs = append(outputs, depResource.Outputs)
	}
	return outputs, true
}

// DependencyOutputsHash hashes a dependency-outputs list — the secondary
// change-detection key used alongside the inputs hash.
func DependencyOutputsHash(outputs []resource.Outputs) (string, error) {
	return resource.OutputsListHash(outputs)
}
