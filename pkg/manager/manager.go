// Package manager defines the Resource Manager Contract: the four
// operations the reconciliation engine calls per resource, never reaching
// below this boundary into platform-specific detail.
package manager

import (
	"context"

	"github.com/mantle-engine/mantle/pkg/resource"
)

// ResourceManager is implemented once per deployment target (production
// code wraps the platform HTTP client collaborator; tests and dry runs use
// Reference). Every method receives the resource's own inputs plus the
// gathered outputs of its dependencies.
type ResourceManager interface {
	// CreatePrice returns the platform-currency cost of creating this
	// resource, or nil if creation is free.
	CreatePrice(ctx context.Context, kind resource.Kind, inputs resource.Inputs, dependencyOutputs []resource.Outputs) (*uint32, error)

	// Create performs the platform-side create and returns the new
	// outputs.
	Create(ctx context.Context, kind resource.Kind, inputs resource.Inputs, dependencyOutputs []resource.Outputs) (resource.Outputs, error)

	// UpdatePrice returns the platform-currency cost of updating this
	// resource, or nil if the update is free.
	UpdatePrice(ctx context.Context, kind resource.Kind, inputs resource.Inputs, existing resource.Outputs, dependencyOutputs []resource.Outputs) (*uint32, error)

	// Update mutates the remote object toward inputs and returns the
	// possibly-changed outputs.
	Update(ctx context.Context, kind resource.Kind, inputs resource.Inputs, existing resource.Outputs, dependencyOutputs []resource.Outputs) (resource.Outputs, error)

	// Delete removes, or logically deletes, the remote object.
	Delete(ctx context.Context, kind resource.Kind, existing resource.Outputs, dependencyOutputs []resource.Outputs) error
}
