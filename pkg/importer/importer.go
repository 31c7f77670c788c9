// Package importer implements the Graph Importer: building a graph from
// live platform reads, used to adopt a target the engine has not managed
// before.
package importer

import (
	"context"
	"fmt"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/graph"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// sentinelFilePath and sentinelFileHash mark a file-backed input whose
// local file is unknown at import time. Any subsequent build from a real
// config will therefore produce a different inputs hash, so the next
// reconcile treats the resource as an update rather than mistaking it for
// a noop.
const (
	sentinelFilePath = "<imported>"
	sentinelFileHash = "<imported>"
)

func sentinelFileRef() resource.FileRef {
	return resource.FileRef{FilePath: sentinelFilePath, FileHash: sentinelFileHash}
}

// LiveResource is one resource as read back from the platform: an id, its
// outputs, and the dependency ids the client already knows about (derived
// from the platform's own object graph, e.g. a place belongs to a target).
type LiveResource struct {
	ID           string
	Outputs      resource.Outputs
	Dependencies []string
}

// PlatformReader is the read side of the platform client collaborator,
// narrowed to what adoption needs: every resource that exists under
// targetID today.
type PlatformReader interface {
	ReadTarget(ctx context.Context, targetID string) ([]LiveResource, error)
}

// ImportGraph builds a graph from a live read of targetID, filling every
// file-backed input with sentinel values.
func ImportGraph(ctx context.Context, reader PlatformReader, targetID string) (*graph.Graph, error) {
	live, err := reader.ReadTarget(ctx, targetID)
	if err != nil {
		return nil, &errs.PlatformTransient{ResourceID: targetID, Err: err}
	}

	g := graph.New()
	for _, lr := range live {
		inputs, err := sentinelInputs(lr.Outputs)
		if err != nil {
			return nil, err
		}
		r, err := resource.Existing(lr.ID, inputs, lr.Outputs, lr.Dependencies)
		if err != nil {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("imported resource %q", lr.ID), Err: err}
		}
		g.Insert(r)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// sentinelInputs reconstructs a plausible (if incomplete) inputs value for
// outputs read live from the platform, so the resource can be inserted
// into a graph before any real config has been built against it.
func sentinelInputs(outputs resource.Outputs) (resource.Inputs, error) {
	switch o := outputs.(type) {
	case resource.TargetOutputs:
		return resource.TargetInputs{}, nil
	case resource.TargetConfigurationOutputs:
		return resource.TargetConfigurationInputs{}, nil
	case resource.TargetActivationOutputs:
		return resource.TargetActivationInputs{}, nil
	case resource.TargetIconOutputs:
		return resource.TargetIconInputs{FileRef: sentinelFileRef()}, nil
	case resource.TargetThumbnailOutputs:
		return resource.TargetThumbnailInputs{FileRef: sentinelFileRef()}, nil
	case resource.ThumbnailOrderOutputs:
		return resource.ThumbnailOrderInputs{}, nil
	case resource.PlaceOutputs:
		return resource.PlaceInputs{}, nil
	case resource.PlaceFileOutputs:
		return resource.PlaceFileInputs{FileRef: sentinelFileRef()}, nil
	case resource.PlaceConfigurationOutputs:
		return resource.PlaceConfigurationInputs{}, nil
	case resource.SocialLinkOutputs:
		return resource.SocialLinkInputs{}, nil
	case resource.ProductOutputs:
		return resource.ProductInputs{}, nil
	case resource.ProductIconOutputs:
		return resource.ProductIconInputs{FileRef: sentinelFileRef()}, nil
	case resource.PassOutputs:
		ref := sentinelFileRef()
		return resource.PassInputs{IconFilePath: ref.FilePath, IconFileHash: ref.FileHash}, nil
	case resource.BadgeIconOutputs:
		return resource.BadgeIconInputs{FileRef: sentinelFileRef()}, nil
	case resource.AssetWithInitialIconOutputs:
		ref := sentinelFileRef()
		return resource.BadgeInputs{IconFilePath: ref.FilePath, IconFileHash: ref.FileHash}, nil
	case resource.ImageAssetOutputs:
		return resource.ImageAssetInputs{FileWithGroupIDInputs: resource.FileWithGroupIDInputs{FileRef: sentinelFileRef()}}, nil
	case resource.AudioAssetOutputs:
		return resource.AudioAssetInputs{FileWithGroupIDInputs: resource.FileWithGroupIDInputs{FileRef: sentinelFileRef()}}, nil
	case resource.AssetAliasOutputs:
		return resource.AssetAliasInputs{Name: o.Name}, nil
	case resource.SpatialVoiceOutputs:
		return resource.SpatialVoiceInputs{}, nil
	case resource.NotificationOutputs:
		return resource.NotificationInputs{}, nil
	default:
		return nil, fmt.Errorf("importer: unrecognized outputs type %T", outputs)
	}
}
