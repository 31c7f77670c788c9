// Package build implements the Graph Builder: turning a validated target
// description into a desired resource graph, computing file hashes for
// every file-backed input and deriving the dependency edges each kind
// requires.
package build

import "github.com/mantle-engine/mantle/pkg/resource"

// Owner is the group (or user, when GroupID is nil) that should own newly
// created assets.
type Owner struct {
	GroupID *int64
}

// FileRef is an input file the builder must hash, given relative to the
// project root.
type FileRef struct {
	Path string
}

// Description is the validated, already-environment-resolved target
// description the (external) config loader hands to the builder. Every
// field mirrors one section of the target's configuration.
type Description struct {
	Configuration resource.TargetConfigurationModel
	IsActive      bool
	Icon          *FileRef
	Thumbnails    []LabeledFile // ordered; order becomes ThumbnailOrder's dependency order
	Places        []PlaceDescription
	SocialLinks   []SocialLinkDescription
	Products      []ProductDescription
	Passes        []PassDescription
	Badges        []BadgeDescription
	ImageAssets   []AssetDescription
	AudioAssets   []AssetDescription
	Aliases       []AliasDescription
	SpatialVoice  *bool
	Notifications []NotificationDescription
}

// LabeledFile pairs a user-chosen label with the file it refers to.
type LabeledFile struct {
	Label string
	File  FileRef
}

type PlaceDescription struct {
	Label         string
	IsStart       bool
	File          FileRef
	Configuration resource.PlaceConfigurationModel
}

type SocialLinkDescription struct {
	Label    string
	Title    string
	URL      string
	LinkType resource.SocialLinkType
}

type ProductDescription struct {
	Label       string
	Name        string
	Description string
	Price       uint32
	Icon        *FileRef
}

type PassDescription struct {
	Label       string
	Name        string
	Description string
	Price       *uint32
	Icon        FileRef
}

type BadgeDescription struct {
	Label       string
	Name        string
	Description string
	Enabled     bool
	Icon        FileRef
}

// AssetDescription describes one image or audio asset upload.
type AssetDescription struct {
	Label string
	File  FileRef
}

// AliasDescription describes an alias pointed at an image or audio asset
// already described above, by label.
type AliasDescription struct {
	Label          string
	Name           string
	ImageAssetRef  string // references AssetDescription.Label within ImageAssets, mutually exclusive with AudioAssetRef
	AudioAssetRef  string
}

type NotificationDescription struct {
	Label   string
	Name    string
	Content string
}
