package resource

// Inputs is implemented by every per-kind inputs struct. Inputs carry the
// full desired configuration of a resource, excluding anything the
// platform produces.
type Inputs interface {
	Kind() Kind
}

// FileRef is a file-backed input: a local path plus the content hash that
// actually drives change detection, not the path.
type FileRef struct {
	FilePath string `yaml:"filePath"`
	FileHash string `yaml:"fileHash"`
}

// TargetConfigurationModel mirrors the platform's full configuration record
// for the root target. Every field is required on the closed representation
// (the V1->V2 migration exists precisely to backfill these when an older
// state file leaves them unset).
type TargetConfigurationModel struct {
	Genre                        string   `yaml:"genre"`
	PlayableDevices               []string `yaml:"playableDevices"`
	AllowPrivateServers           bool     `yaml:"allowPrivateServers"`
	IsForSale                     bool     `yaml:"isForSale"`
	StudioAccessToAPIsAllowed     bool     `yaml:"studioAccessToApisAllowed"`
	IsThirdPartyPurchaseAllowed   bool     `yaml:"isThirdPartyPurchaseAllowed"`
	IsThirdPartyTeleportAllowed   bool     `yaml:"isThirdPartyTeleportAllowed"`
	UniverseAvatarType            string   `yaml:"universeAvatarType"`
	UniverseAnimationType         string   `yaml:"universeAnimationType"`
	UniverseCollisionType         string   `yaml:"universeCollisionType"`
	UniverseAvatarMinScales       map[string]string `yaml:"universeAvatarMinScales"`
	UniverseAvatarMaxScales       map[string]string `yaml:"universeAvatarMaxScales"`
	UniverseAvatarAssetOverrides  []string `yaml:"universeAvatarAssetOverrides"`
	IsArchived                    bool     `yaml:"isArchived"`
}

// DefaultTargetConfigurationModel returns the default record used to
// backfill a V1 state file during migration.
func DefaultTargetConfigurationModel() TargetConfigurationModel {
	return TargetConfigurationModel{
		Genre:                       "all",
		PlayableDevices:             []string{"computer", "phone", "tablet"},
		AllowPrivateServers:         false,
		IsForSale:                   false,
		StudioAccessToAPIsAllowed:   false,
		IsThirdPartyPurchaseAllowed: false,
		IsThirdPartyTeleportAllowed: false,
		UniverseAvatarType:          "MorphToR15",
		UniverseAnimationType:       "Standard",
		UniverseCollisionType:       "OuterBox",
		IsArchived:                  false,
	}
}

// PlaceConfigurationModel mirrors the platform's per-place configuration.
type PlaceConfigurationModel struct {
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	MaxPlayerCount int    `yaml:"maxPlayerCount"`
	AllowCopying   bool   `yaml:"allowCopying"`
	SocialSlotType string `yaml:"socialSlotType"`
}

// DefaultPlaceConfigurationModel returns the default record used to
// backfill a V1 state file during migration.
func DefaultPlaceConfigurationModel() PlaceConfigurationModel {
	return PlaceConfigurationModel{
		Name:           "",
		Description:    "",
		MaxPlayerCount: 50,
		AllowCopying:   false,
		SocialSlotType: "Automatic",
	}
}

type TargetInputs struct {
	GroupID *int64 `yaml:"groupId"`
}

func (TargetInputs) Kind() Kind { return Target }

type TargetConfigurationInputs struct {
	Configuration TargetConfigurationModel `yaml:"configuration"`
}

func (TargetConfigurationInputs) Kind() Kind { return TargetConfiguration }

type TargetActivationInputs struct {
	IsActive bool `yaml:"isActive"`
}

func (TargetActivationInputs) Kind() Kind { return TargetActivation }

type TargetIconInputs struct{ FileRef `yaml:",inline"` }

func (TargetIconInputs) Kind() Kind { return TargetIcon }

type TargetThumbnailInputs struct{ FileRef `yaml:",inline"` }

func (TargetThumbnailInputs) Kind() Kind { return TargetThumbnail }

// ThumbnailOrderInputs carries no fields of its own; the order is entirely
// encoded in the resource's Dependencies list.
type ThumbnailOrderInputs struct{}

func (ThumbnailOrderInputs) Kind() Kind { return ThumbnailOrder }

type PlaceInputs struct {
	IsStart bool `yaml:"isStart"`
}

func (PlaceInputs) Kind() Kind { return Place }

type PlaceFileInputs struct{ FileRef `yaml:",inline"` }

func (PlaceFileInputs) Kind() Kind { return PlaceFile }

type PlaceConfigurationInputs struct {
	Configuration PlaceConfigurationModel `yaml:"configuration"`
}

func (PlaceConfigurationInputs) Kind() Kind { return PlaceConfiguration }

// SocialLinkType enumerates the domains the platform recognizes for a
// social link; the config loader derives it, the engine only carries it.
type SocialLinkType string

type SocialLinkInputs struct {
	Title    string         `yaml:"title"`
	URL      string         `yaml:"url"`
	LinkType SocialLinkType `yaml:"linkType"`
}

func (SocialLinkInputs) Kind() Kind { return SocialLink }

type ProductInputs struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       uint32 `yaml:"price"`
}

func (ProductInputs) Kind() Kind { return Product }

type ProductIconInputs struct{ FileRef `yaml:",inline"` }

func (ProductIconInputs) Kind() Kind { return ProductIcon }

type PassInputs struct {
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	Price        *uint32 `yaml:"price"`
	IconFilePath string  `yaml:"iconFilePath"`
	IconFileHash string  `yaml:"iconFileHash"`
}

func (PassInputs) Kind() Kind { return Pass }

type BadgeIconInputs struct{ FileRef `yaml:",inline"` }

func (BadgeIconInputs) Kind() Kind { return BadgeIcon }

type BadgeInputs struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Enabled      bool   `yaml:"enabled"`
	IconFilePath string `yaml:"iconFilePath"`
	IconFileHash string `yaml:"iconFileHash"`
}

func (BadgeInputs) Kind() Kind { return Badge }

type FileWithGroupIDInputs struct {
	FileRef `yaml:",inline"`
	GroupID *int64 `yaml:"groupId"`
}

type ImageAssetInputs struct{ FileWithGroupIDInputs `yaml:",inline"` }

func (ImageAssetInputs) Kind() Kind { return ImageAsset }

type AudioAssetInputs struct{ FileWithGroupIDInputs `yaml:",inline"` }

func (AudioAssetInputs) Kind() Kind { return AudioAsset }

type AssetAliasInputs struct {
	Name string `yaml:"name"`
}

func (AssetAliasInputs) Kind() Kind { return AssetAlias }

type SpatialVoiceInputs struct {
	Enabled bool `yaml:"enabled"`
}

func (SpatialVoiceInputs) Kind() Kind { return SpatialVoice }

type NotificationInputs struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

func (NotificationInputs) Kind() Kind { return Notification }
