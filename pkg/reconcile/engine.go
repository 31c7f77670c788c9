// Package reconcile implements the Reconciliation Engine: the two-phase
// plan/apply algorithm that turns a previous graph and a desired graph
// into a next graph plus a per-resource operation log, carrying outputs
// forward along dependency edges.
package reconcile

import (
	"context"
	"fmt"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/graph"
	"github.com/mantle-engine/mantle/pkg/logging"
	"github.com/mantle-engine/mantle/pkg/manager"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// Operation names the kind of platform call a Result reflects.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Status is the exactly-one-of-four outcome every resource gets during one
// apply pass.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusNoop      Status = "noop"
)

// Result records the single outcome for one resource during one apply
// pass.
type Result struct {
	ResourceID string
	Kind       resource.Kind
	Operation  Operation
	Status     Status
	Reason     string
}

// Log is the ordered per-resource operation log for one apply pass.
type Log []Result

// Summary tallies a Log's outcomes.
type Summary struct {
	Created, Updated, Deleted, Noop, Skipped, Failed int
}

// Summary reduces a log to counts, the user-visible "N created, N updated…"
// line.
func (l Log) Summary() Summary {
	var s Summary
	for _, r := range l {
		switch {
		case r.Status == StatusSkipped:
			s.Skipped++
		case r.Status == StatusFailed:
			s.Failed++
		case r.Status == StatusNoop:
			s.Noop++
		case r.Status == StatusSucceeded && r.Operation == OpCreate:
			s.Created++
		case r.Status == StatusSucceeded && r.Operation == OpUpdate:
			s.Updated++
		case r.Status == StatusSucceeded && r.Operation == OpDelete:
			s.Deleted++
		}
	}
	return s
}

// Policy carries the flags that shape one apply pass.
type Policy struct {
	// AllowPurchases gates any operation whose manager-reported price is
	// positive.
	AllowPurchases bool
}

// Engine evaluates one apply pass against a ResourceManager.
type Engine struct {
	Manager manager.ResourceManager
}

// New returns an Engine backed by m.
func New(m manager.ResourceManager) *Engine {
	return &Engine{Manager: m}
}

// Evaluate runs one apply pass: Phase 1 deletes resources absent from
// desired (reverse topological order of previous), Phase 2 creates or
// updates every desired resource (topological order of desired). If desired
// fails validation or either graph has a dependency cycle, Evaluate returns
// that error with a nil log and a nil next graph, before any manager call.
// Otherwise it returns the operation log and the next graph; the error is
// then non-nil iff any resource failed, but next always reflects the
// progress actually made — callers should persist it even when err != nil.
func (e *Engine) Evaluate(ctx context.Context, previous, desired *graph.Graph, policy Policy) (Log, *graph.Graph, error) {
	if err := desired.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := desired.TopologicalOrder(); err != nil {
		return nil, nil, err
	}

	next := graph.New()
	var log Log
	failures := 0

	if err := e.deletePhase(ctx, previous, desired, next, &log, &failures); err != nil {
		return nil, nil, err
	}
	if err := e.createOrUpdatePhase(ctx, previous, desired, next, policy, &log, &failures); err != nil {
		return nil, nil, err
	}

	if failures > 0 {
		return log, next, fmt.Errorf("reconcile completed with %d failure(s)", failures)
	}
	return log, next, nil
}

func (e *Engine) deletePhase(ctx context.Context, previous, desired, next *graph.Graph, log *Log, failures *int) error {
	order, err := previous.ReverseTopologicalOrder()
	if err != nil {
		return err
	}
	for _, id := range order {
		if desired.Contains(id) {
			continue
		}
		r, _ := previous.Get(id)
		depOutputs, _ := previous.DependencyOutputs(r)

		end := logging.StartAction(ctx, "delete", "resource", id, "kind", r.Kind())
		err := e.Manager.Delete(ctx, r.Kind(), r.Outputs, depOutputs)
		end(&err)
		if err != nil {
			*failures++
			next.Insert(r.Clone())
			*log = append(*log, Result{ResourceID: id, Kind: r.Kind(), Operation: OpDelete, Status: StatusFailed, Reason: err.Error()})
			continue
		}
		*log = append(*log, Result{ResourceID: id, Kind: r.Kind(), Operation: OpDelete, Status: StatusSucceeded})
	}
	return nil
}

func (e *Engine) createOrUpdatePhase(ctx context.Context, previous, desired, next *graph.Graph, policy Policy, log *Log, failures *int) error {
	order, err := desired.TopologicalOrder()
	if err != nil {
		return err
	}
	for _, id := range order {
		d, _ := desired.Get(id)
		prev, existed := previous.Get(id)
		if !existed {
			e.create(ctx, d, next, policy, log, failures)
			continue
		}
		e.updateOrNoop(ctx, prev, d, previous, next, policy, log, failures)
	}
	return nil
}

const skippedDependencyReason = "a dependency failed to produce outputs"

func (e *Engine) create(ctx context.Context, d *resource.Resource, next *graph.Graph, policy Policy, log *Log, failures *int) {
	depOutputs, ok := next.DependencyOutputs(d)
	if !ok {
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Status: StatusSkipped, Reason: skippedDependencyReason})
		return
	}

	price, err := e.Manager.CreatePrice(ctx, d.Kind(), d.Inputs, depOutputs)
	if err != nil {
		*failures++
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpCreate, Status: StatusFailed, Reason: err.Error()})
		return
	}
	if gated, reason := purchaseGate(d.ID, price, policy); gated {
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Status: StatusSkipped, Reason: reason})
		return
	}

	end := logging.StartAction(ctx, "create", "resource", d.ID, "kind", d.Kind())
	outputs, err := e.Manager.Create(ctx, d.Kind(), d.Inputs, depOutputs)
	end(&err)
	if err != nil {
		*failures++
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpCreate, Status: StatusFailed, Reason: err.Error()})
		return
	}

	nr := d.Clone()
	_ = nr.SetOutputs(outputs)
	next.Insert(nr)
	*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpCreate, Status: StatusSucceeded})
}

func (e *Engine) updateOrNoop(ctx context.Context, prev, d *resource.Resource, previous, next *graph.Graph, policy Policy, log *Log, failures *int) {
	nextDepOutputs, ok := next.DependencyOutputs(d)
	if !ok {
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Status: StatusSkipped, Reason: skippedDependencyReason})
		return
	}
	prevDepOutputs, prevDepsOK := previous.DependencyOutputs(prev)

	if prevDepsOK {
		if noop, err := isNoop(prev, d, prevDepOutputs, nextDepOutputs); err != nil {
			*failures++
			*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusFailed, Reason: err.Error()})
			return
		} else if noop {
			nr := d.Clone()
			_ = nr.SetOutputs(prev.Outputs)
			next.Insert(nr)
			*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Status: StatusNoop})
			return
		}
	}

	if manager.IsReplace(d.Kind()) {
		e.replace(ctx, prev, d, prevDepOutputs, nextDepOutputs, next, policy, log, failures)
		return
	}
	e.update(ctx, prev, d, nextDepOutputs, next, policy, log, failures)
}

func isNoop(prev, d *resource.Resource, prevDepOutputs, nextDepOutputs []resource.Outputs) (bool, error) {
	prevInputsHash, err := prev.InputsHash()
	if err != nil {
		return false, err
	}
	dInputsHash, err := d.InputsHash()
	if err != nil {
		return false, err
	}
	prevDepHash, err := graph.DependencyOutputsHash(prevDepOutputs)
	if err != nil {
		return false, err
	}
	nextDepHash, err := graph.DependencyOutputsHash(nextDepOutputs)
	if err != nil {
		return false, err
	}
	return prevInputsHash == dInputsHash && prevDepHash == nextDepHash, nil
}

func (e *Engine) update(ctx context.Context, prev, d *resource.Resource, depOutputs []resource.Outputs, next *graph.Graph, policy Policy, log *Log, failures *int) {
	price, err := e.Manager.UpdatePrice(ctx, d.Kind(), d.Inputs, prev.Outputs, depOutputs)
	if err != nil {
		*failures++
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusFailed, Reason: err.Error()})
		return
	}
	if gated, reason := purchaseGate(d.ID, price, policy); gated {
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Status: StatusSkipped, Reason: reason})
		return
	}

	end := logging.StartAction(ctx, "update", "resource", d.ID, "kind", d.Kind())
	outputs, err := e.Manager.Update(ctx, d.Kind(), d.Inputs, prev.Outputs, depOutputs)
	end(&err)
	if err != nil {
		*failures++
		next.Insert(prev.Clone())
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusFailed, Reason: err.Error()})
		return
	}

	nr := d.Clone()
	_ = nr.SetOutputs(outputs)
	next.Insert(nr)
	*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusSucceeded})
}

// replace performs update-as-replace: delete the previous object, then
// create a fresh one under the same id. Failure after delete but before
// create is recorded as failed and the id is not carried into next,
// reflecting that the remote object no longer exists. If the delete itself
// fails, the previous resource is carried into next unchanged.
func (e *Engine) replace(ctx context.Context, prev, d *resource.Resource, prevDepOutputs, nextDepOutputs []resource.Outputs, next *graph.Graph, policy Policy, log *Log, failures *int) {
	end := logging.StartAction(ctx, "replace-delete", "resource", d.ID, "kind", d.Kind())
	err := e.Manager.Delete(ctx, prev.Kind(), prev.Outputs, prevDepOutputs)
	end(&err)
	if err != nil {
		*failures++
		next.Insert(prev.Clone())
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusFailed, Reason: err.Error()})
		return
	}

	price, err := e.Manager.CreatePrice(ctx, d.Kind(), d.Inputs, nextDepOutputs)
	if err != nil {
		*failures++
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusFailed, Reason: err.Error()})
		return
	}
	if gated, reason := purchaseGate(d.ID, price, policy); gated {
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Status: StatusSkipped, Reason: reason})
		return
	}

	end = logging.StartAction(ctx, "replace-create", "resource", d.ID, "kind", d.Kind())
	outputs, err := e.Manager.Create(ctx, d.Kind(), d.Inputs, nextDepOutputs)
	end(&err)
	if err != nil {
		*failures++
		*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusFailed, Reason: err.Error()})
		return
	}

	nr := d.Clone()
	_ = nr.SetOutputs(outputs)
	next.Insert(nr)
	*log = append(*log, Result{ResourceID: d.ID, Kind: d.Kind(), Operation: OpUpdate, Status: StatusSucceeded})
}

func purchaseGate(resourceID string, price *uint32, policy Policy) (gated bool, reason string) {
	if price == nil || *price == 0 || policy.AllowPurchases {
		return false, ""
	}
	return true, (&errs.PurchaseRequired{ResourceID: resourceID, Price: *price}).Error()
}
