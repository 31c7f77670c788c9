package resource

import "fmt"

// Resource is the quadruple (id, inputs, outputs?, dependencies) described
// in the data model: one node in a graph, corresponding to one remote
// object or one configuration of the target.
type Resource struct {
	ID           string
	Inputs       Inputs
	Outputs      Outputs
	Dependencies []string
}

// New constructs a resource with no outputs yet (the shape produced by the
// graph builder before any apply has run).
func New(id string, inputs Inputs, dependencies []string) *Resource {
	return &Resource{ID: id, Inputs: inputs, Dependencies: dependencies}
}

// Existing constructs a resource that already carries outputs, the shape
// produced by the state store loader and the graph importer.
func Existing(id string, inputs Inputs, outputs Outputs, dependencies []string) (*Resource, error) {
	r := &Resource{ID: id, Inputs: inputs, Dependencies: dependencies}
	if err := r.SetOutputs(outputs); err != nil {
		return nil, err
	}
	return r, nil
}

// Kind returns the resource's kind, taken from its inputs variant.
func (r *Resource) Kind() Kind {
	return r.Inputs.Kind()
}

// SetOutputs installs a fresh outputs variant, refusing a mismatched tag
// Outputs must always correspond to the resource's inputs kind.
func (r *Resource) SetOutputs(outputs Outputs) error {
	if outputs != nil && outputs.Kind() != r.Inputs.Kind() {
		return fmt.Errorf("resource %q: outputs kind %q does not match inputs kind %q", r.ID, outputs.Kind(), r.Inputs.Kind())
	}
	r.Outputs = outputs
	return nil
}

// HasOutputs reports whether the resource has ever been successfully
// created — the condition under which it may appear in persisted state.
func (r *Resource) HasOutputs() bool {
	return r.Outputs != nil
}

// Clone returns a shallow copy of r with its own Dependencies slice, so
// mutating the copy's dependency list never aliases the original.
func (r *Resource) Clone() *Resource {
	deps := make([]string, len(r.Dependencies))
	copy(deps, r.Dependencies)
	return &Resource{ID: r.ID, Inputs: r.Inputs, Outputs: r.Outputs, Dependencies: deps}
}
