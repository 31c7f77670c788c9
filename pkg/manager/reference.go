package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mantle-engine/mantle/pkg/resource"
)

// QuotaSource decides whether a kind's daily free-creation quota has been
// exhausted, the hook a manager implementation uses to compute a
// create-price for kinds the platform rate-limits for free (Badge, in the
// original source).
type QuotaSource interface {
	// Exhausted reports whether kind's free quota has been used up for
	// this apply, and records one more use if not.
	Exhausted(kind resource.Kind) bool
}

// inMemoryQuota is a QuotaSource backed by a per-kind counter, reset only
// by constructing a new Reference manager — sufficient to exercise the
// purchase-gate path in tests without a real platform account.
type inMemoryQuota struct {
	mu     sync.Mutex
	limit  int
	used   map[resource.Kind]int
}

func newInMemoryQuota(limit int) *inMemoryQuota {
	return &inMemoryQuota{limit: limit, used: make(map[resource.Kind]int)}
}

func (q *inMemoryQuota) Exhausted(kind resource.Kind) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used[kind] >= q.limit {
		return true
	}
	q.used[kind]++
	return false
}

// Reference is a self-contained in-memory ResourceManager: it performs no
// network I/O and fabricates plausible outputs, letting pkg/reconcile be
// exercised end to end without a real platform client.
type Reference struct {
	quota   QuotaSource
	mu      sync.Mutex
	nextID  int64
	now     func() time.Time
}

// NewReference returns a Reference manager with a badge free-quota of
// badgeFreeQuota creations per apply.
func NewReference(badgeFreeQuota int) *Reference {
	return &Reference{quota: newInMemoryQuota(badgeFreeQuota), now: time.Now}
}

const badgeOverQuotaPrice = uint32(100)

func (r *Reference) allocateID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

func (r *Reference) CreatePrice(_ context.Context, kind resource.Kind, _ resource.Inputs, _ []resource.Outputs) (*uint32, error) {
	if kind == resource.Badge && r.quota.Exhausted(kind) {
		price := badgeOverQuotaPrice
		return &price, nil
	}
	return nil, nil
}

func (r *Reference) UpdatePrice(context.Context, resource.Kind, resource.Inputs, resource.Outputs, []resource.Outputs) (*uint32, error) {
	return nil, nil
}

func (r *Reference) Create(_ context.Context, kind resource.Kind, inputs resource.Inputs, _ []resource.Outputs) (resource.Outputs, error) {
	id := r.allocateID()
	switch kind {
	case resource.Target:
		return resource.TargetOutputs{AssetID: id, StartPlaceID: r.allocateID()}, nil
	case resource.TargetConfiguration:
		return resource.TargetConfigurationOutputs{}, nil
	case resource.TargetActivation:
		return resource.TargetActivationOutputs{}, nil
	case resource.TargetIcon:
		return resource.TargetIconOutputs{AssetOutputs: resource.AssetOutputs{AssetID: id}}, nil
	case resource.TargetThumbnail:
		return resource.TargetThumbnailOutputs{AssetOutputs: resource.AssetOutputs{AssetID: id}}, nil
	case resource.ThumbnailOrder:
		return resource.ThumbnailOrderOutputs{}, nil
	case resource.Place:
		return resource.PlaceOutputs{AssetOutputs: resource.AssetOutputs{AssetID: id}}, nil
	case resource.PlaceFile:
		return resource.PlaceFileOutputs{Version: 1}, nil
	case resource.PlaceConfiguration:
		return resource.PlaceConfigurationOutputs{}, nil
	case resource.SocialLink:
		return resource.SocialLinkOutputs{AssetOutputs: resource.AssetOutputs{AssetID: id}}, nil
	case resource.Product:
		return resource.ProductOutputs{AssetID: id, ProductID: r.allocateID()}, nil
	case resource.ProductIcon:
		return resource.ProductIconOutputs{AssetOutputs: resource.AssetOutputs{AssetID: id}}, nil
	case resource.Pass:
		return resource.PassOutputs{AssetID: id, IconAssetID: r.allocateID()}, nil
	case resource.BadgeIcon:
		return resource.BadgeIconOutputs{AssetOutputs: resource.AssetOutputs{AssetID: id}}, nil
	case resource.Badge:
		return resource.AssetWithInitialIconOutputs{AssetID: id, InitialIconAssetID: r.allocateID()}, nil
	case resource.ImageAsset:
		return resource.ImageAssetOutputs{AssetID: id}, nil
	case resource.AudioAsset:
		return resource.AudioAssetOutputs{AssetOutputs: resource.AssetOutputs{AssetID: id}}, nil
	case resource.AssetAlias:
		name, _ := inputs.(resource.AssetAliasInputs)
		return resource.AssetAliasOutputs{Name: name.Name}, nil
	case resource.SpatialVoice:
		return resource.SpatialVoiceOutputs{}, nil
	case resource.Notification:
		return resource.NotificationOutputs{AssetID: fmt.Sprintf("%d", id)}, nil
	default:
		return nil, fmt.Errorf("reference manager: unknown kind %q", kind)
	}
}

// Update returns the existing outputs unchanged; the reference manager has
// nothing to mutate against a real backend, so it treats update as a noop
// at the manager layer (replace-on-update kinds never reach this method —
// pkg/reconcile routes them through Delete+Create instead).
func (r *Reference) Update(_ context.Context, _ resource.Kind, _ resource.Inputs, existing resource.Outputs, _ []resource.Outputs) (resource.Outputs, error) {
	return existing, nil
}

func (r *Reference) Delete(context.Context, resource.Kind, resource.Outputs, []resource.Outputs) error {
	return nil
}
