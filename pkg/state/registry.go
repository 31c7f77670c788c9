package state

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mantle-engine/mantle/pkg/resource"
)

// decodeInputsBody decodes body into the concrete inputs struct for kind.
// yaml.v3 needs an addressable concrete type to decode into, so this is a
// switch rather than a lookup table of zero values.
func decodeInputsBody(kind resource.Kind, body *yaml.Node) (resource.Inputs, error) {
	switch kind {
	case resource.Target:
		var v resource.TargetInputs
		return v, body.Decode(&v)
	case resource.TargetConfiguration:
		var v resource.TargetConfigurationInputs
		return v, body.Decode(&v)
	case resource.TargetActivation:
		var v resource.TargetActivationInputs
		return v, body.Decode(&v)
	case resource.TargetIcon:
		var v resource.TargetIconInputs
		return v, body.Decode(&v)
	case resource.TargetThumbnail:
		var v resource.TargetThumbnailInputs
		return v, body.Decode(&v)
	case resource.ThumbnailOrder:
		var v resource.ThumbnailOrderInputs
		return v, body.Decode(&v)
	case resource.Place:
		var v resource.PlaceInputs
		return v, body.Decode(&v)
	case resource.PlaceFile:
		var v resource.PlaceFileInputs
		return v, body.Decode(&v)
	case resource.PlaceConfiguration:
		var v resource.PlaceConfigurationInputs
		return v, body.Decode(&v)
	case resource.SocialLink:
		var v resource.SocialLinkInputs
		return v, body.Decode(&v)
	case resource.Product:
		var v resource.ProductInputs
		return v, body.Decode(&v)
	case resource.ProductIcon:
		var v resource.ProductIconInputs
		return v, body.Decode(&v)
	case resource.Pass:
		var v resource.PassInputs
		return v, body.Decode(&v)
	case resource.BadgeIcon:
		var v resource.BadgeIconInputs
		return v, body.Decode(&v)
	case resource.Badge:
		var v resource.BadgeInputs
		return v, body.Decode(&v)
	case resource.ImageAsset:
		var v resource.ImageAssetInputs
		return v, body.Decode(&v)
	case resource.AudioAsset:
		var v resource.AudioAssetInputs
		return v, body.Decode(&v)
	case resource.AssetAlias:
		var v resource.AssetAliasInputs
		return v, body.Decode(&v)
	case resource.SpatialVoice:
		var v resource.SpatialVoiceInputs
		return v, body.Decode(&v)
	case resource.Notification:
		var v resource.NotificationInputs
		return v, body.Decode(&v)
	default:
		return nil, fmt.Errorf("unknown inputs kind %q", kind)
	}
}

func decodeOutputsBody(kind resource.Kind, body *yaml.Node) (resource.Outputs, error) {
	switch kind {
	case resource.Target:
		var v resource.TargetOutputs
		return v, body.Decode(&v)
	case resource.TargetConfiguration:
		var v resource.TargetConfigurationOutputs
		return v, body.Decode(&v)
	case resource.TargetActivation:
		var v resource.TargetActivationOutputs
		return v, body.Decode(&v)
	case resource.TargetIcon:
		var v resource.TargetIconOutputs
		return v, body.Decode(&v)
	case resource.TargetThumbnail:
		var v resource.TargetThumbnailOutputs
		return v, body.Decode(&v)
	case resource.ThumbnailOrder:
		var v resource.ThumbnailOrderOutputs
		return v, body.Decode(&v)
	case resource.Place:
		var v resource.PlaceOutputs
		return v, body.Decode(&v)
	case resource.PlaceFile:
		var v resource.PlaceFileOutputs
		return v, body.Decode(&v)
	case resource.PlaceConfiguration:
		var v resource.PlaceConfigurationOutputs
		return v, body.Decode(&v)
	case resource.SocialLink:
		var v resource.SocialLinkOutputs
		return v, body.Decode(&v)
	case resource.Product:
		var v resource.ProductOutputs
		return v, body.Decode(&v)
	case resource.ProductIcon:
		var v resource.ProductIconOutputs
		return v, body.Decode(&v)
	case resource.Pass:
		var v resource.PassOutputs
		return v, body.Decode(&v)
	case resource.BadgeIcon:
		var v resource.BadgeIconOutputs
		return v, body.Decode(&v)
	case resource.Badge:
		var v resource.AssetWithInitialIconOutputs
		return v, body.Decode(&v)
	case resource.ImageAsset:
		var v resource.ImageAssetOutputs
		return v, body.Decode(&v)
	case resource.AudioAsset:
		var v resource.AudioAssetOutputs
		return v, body.Decode(&v)
	case resource.AssetAlias:
		var v resource.AssetAliasOutputs
		return v, body.Decode(&v)
	case resource.SpatialVoice:
		var v resource.SpatialVoiceOutputs
		return v, body.Decode(&v)
	case resource.Notification:
		var v resource.NotificationOutputs
		return v, body.Decode(&v)
	default:
		return nil, fmt.Errorf("unknown outputs kind %q", kind)
	}
}
