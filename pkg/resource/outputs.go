package resource

// Outputs is implemented by every per-kind outputs struct. A resource's
// Outputs field is nil until the resource has been successfully created at
// least once (invariant: `outputs = none` never appears in persisted state).
type Outputs interface {
	Kind() Kind
}

// empty is embedded by kinds whose outputs carry no fields (configuration
// and flag resources that produce nothing beyond "it happened").
type empty struct{}

type TargetOutputs struct {
	AssetID      int64 `yaml:"assetId"`
	StartPlaceID int64 `yaml:"startPlaceId"`
}

func (TargetOutputs) Kind() Kind { return Target }

type TargetConfigurationOutputs struct{ empty `yaml:",inline"` }

func (TargetConfigurationOutputs) Kind() Kind { return TargetConfiguration }

type TargetActivationOutputs struct{ empty `yaml:",inline"` }

func (TargetActivationOutputs) Kind() Kind { return TargetActivation }

// AssetOutputs is shared by every kind whose only produced identifier is a
// single platform asset id.
type AssetOutputs struct {
	AssetID int64 `yaml:"assetId"`
}

type TargetIconOutputs struct{ AssetOutputs `yaml:",inline"` }

func (TargetIconOutputs) Kind() Kind { return TargetIcon }

type TargetThumbnailOutputs struct{ AssetOutputs `yaml:",inline"` }

func (TargetThumbnailOutputs) Kind() Kind { return TargetThumbnail }

type ThumbnailOrderOutputs struct{ empty `yaml:",inline"` }

func (ThumbnailOrderOutputs) Kind() Kind { return ThumbnailOrder }

type PlaceOutputs struct{ AssetOutputs `yaml:",inline"` }

func (PlaceOutputs) Kind() Kind { return Place }

type PlaceFileOutputs struct {
	Version uint32 `yaml:"version"`
}

func (PlaceFileOutputs) Kind() Kind { return PlaceFile }

type PlaceConfigurationOutputs struct{ empty `yaml:",inline"` }

func (PlaceConfigurationOutputs) Kind() Kind { return PlaceConfiguration }

type SocialLinkOutputs struct{ AssetOutputs `yaml:",inline"` }

func (SocialLinkOutputs) Kind() Kind { return SocialLink }

type ProductOutputs struct {
	AssetID   int64 `yaml:"assetId"`
	ProductID int64 `yaml:"productId"`
}

func (ProductOutputs) Kind() Kind { return Product }

type ProductIconOutputs struct{ AssetOutputs `yaml:",inline"` }

func (ProductIconOutputs) Kind() Kind { return ProductIcon }

type PassOutputs struct {
	AssetID     int64 `yaml:"assetId"`
	IconAssetID int64 `yaml:"iconAssetId"`
}

func (PassOutputs) Kind() Kind { return Pass }

type BadgeIconOutputs struct{ AssetOutputs `yaml:",inline"` }

func (BadgeIconOutputs) Kind() Kind { return BadgeIcon }

// AssetWithInitialIconOutputs is produced by kinds created together with an
// initial icon upload in the same platform call (Badge).
type AssetWithInitialIconOutputs struct {
	AssetID            int64 `yaml:"assetId"`
	InitialIconAssetID int64 `yaml:"initialIconAssetId"`
}

func (AssetWithInitialIconOutputs) Kind() Kind { return Badge }

type ImageAssetOutputs struct {
	AssetID      int64  `yaml:"assetId"`
	DecalAssetID *int64 `yaml:"decalAssetId"`
}

func (ImageAssetOutputs) Kind() Kind { return ImageAsset }

type AudioAssetOutputs struct{ AssetOutputs `yaml:",inline"` }

func (AudioAssetOutputs) Kind() Kind { return AudioAsset }

type AssetAliasOutputs struct {
	Name string `yaml:"name"`
}

func (AssetAliasOutputs) Kind() Kind { return AssetAlias }

type SpatialVoiceOutputs struct{ empty `yaml:",inline"` }

func (SpatialVoiceOutputs) Kind() Kind { return SpatialVoice }

// NotificationOutputs carries its asset id as a string: the platform's
// notification-template API returns a string identifier, unlike every
// other asset id in this model.
type NotificationOutputs struct {
	AssetID string `yaml:"assetId"`
}

func (NotificationOutputs) Kind() Kind { return Notification }
