package manager

import (
	"fmt"
	"time"

	"github.com/mantle-engine/mantle/pkg/resource"
)

// ReplaceOnUpdate codifies which kinds the engine treats as update-as-
// replace (delete-then-create while preserving the resource id) rather
// than update-in-place — see DESIGN.md for the reasoning behind each
// kind's entry.
var ReplaceOnUpdate = map[resource.Kind]bool{
	resource.Target:          true,
	resource.TargetThumbnail: true,
}

// IsReplace reports whether kind is updated via delete-then-create.
func IsReplace(kind resource.Kind) bool {
	return ReplaceOnUpdate[kind]
}

// LogicalDeleteName returns the deprecation marker used by every kind
// whose manager implementation has no true delete primitive: rename to
// zzz_DEPRECATED(<unix timestamp>), the convention the original source
// applies uniformly to Product, Pass, and Badge.
func LogicalDeleteName(now time.Time) string {
	return fmt.Sprintf("zzz_DEPRECATED(%d)", now.Unix())
}

// HasPhysicalDelete reports whether kind's Delete call removes the remote
// object outright, as opposed to performing a logical delete (rename,
// blank, disable).
var HasPhysicalDelete = map[resource.Kind]bool{
	resource.Target:              false, // archived, never truly removed
	resource.TargetConfiguration: true,  // reset to defaults
	resource.TargetActivation:    true,  // reset to defaults
	resource.TargetIcon:          true,
	resource.TargetThumbnail:     true,
	resource.ThumbnailOrder:      true,
	resource.Place:               true, // removed from target unless it is the start place
	resource.PlaceFile:           true,
	resource.PlaceConfiguration:  true,
	resource.SocialLink:          true,
	resource.Product:             false,
	resource.ProductIcon:         false,
	resource.Pass:                false,
	resource.BadgeIcon:           false,
	resource.Badge:               false,
	resource.ImageAsset:          false, // archived
	resource.AudioAsset:          false, // archived
	resource.AssetAlias:          true,
	resource.SpatialVoice:        true, // reset opt-in to false
	resource.Notification:        false, // archived
}
