package main

import (
	"github.com/mantle-engine/mantle/pkg/graph"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// PlannedOperation is the change diff reports for one resource, computed
// the same way pkg/reconcile.Engine tells a noop from a change (inputs hash
// plus dependency-outputs hash), without ever calling the resource manager.
type PlannedOperation string

const (
	PlanCreate PlannedOperation = "create"
	PlanUpdate PlannedOperation = "update"
	PlanNoop   PlannedOperation = "noop"
	PlanDelete PlannedOperation = "delete"
)

// PlanEntry describes one planned change, in the order diff should print it.
type PlanEntry struct {
	ID        string
	Kind      resource.Kind
	Operation PlannedOperation
}

// Plan compares previous against desired the way Evaluate would, but only
// classifies each resource instead of calling the manager — diff's job is
// to report, not to act.
func Plan(previous, desired *graph.Graph) ([]PlanEntry, error) {
	var entries []PlanEntry

	order, err := desired.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		d, _ := desired.Get(id)
		p, existed := previous.Get(id)
		if !existed {
			entries = append(entries, PlanEntry{ID: id, Kind: d.Kind(), Operation: PlanCreate})
			continue
		}

		noop, err := isNoop(previous, desired, p, d)
		if err != nil {
			return nil, err
		}
		op := PlanUpdate
		if noop {
			op = PlanNoop
		}
		entries = append(entries, PlanEntry{ID: id, Kind: d.Kind(), Operation: op})
	}

	reverse, err := previous.ReverseTopologicalOrder()
	if err != nil {
		return nil, err
	}
	for _, id := range reverse {
		if desired.Contains(id) {
			continue
		}
		p, _ := previous.Get(id)
		entries = append(entries, PlanEntry{ID: id, Kind: p.Kind(), Operation: PlanDelete})
	}

	return entries, nil
}

func isNoop(previous, desired *graph.Graph, p, d *resource.Resource) (bool, error) {
	dHash, err := d.InputsHash()
	if err != nil {
		return false, err
	}
	pHash, err := p.InputsHash()
	if err != nil {
		return false, err
	}
	if dHash != pHash {
		return false, nil
	}

	// A freshly built desired graph carries no outputs, so d's dependency
	// outputs are looked up in previous: the outputs a noop or in-place
	// update would carry forward. A dependency absent from previous is
	// incomplete, so d is planned as an update.
	prevOutputs, prevComplete := previous.DependencyOutputs(p)
	desiredOutputs, desiredComplete := previous.DependencyOutputs(d)
	if !prevComplete || !desiredComplete {
		return false, nil
	}

	prevHash, err := graph.DependencyOutputsHash(prevOutputs)
	if err != nil {
		return false, err
	}
	desiredHash, err := graph.DependencyOutputsHash(desiredOutputs)
	if err != nil {
		return false, err
	}
	return prevHash == desiredHash, nil
}
