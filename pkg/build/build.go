package build

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/graph"
	"github.com/mantle-engine/mantle/pkg/resource"
)

var supportedImageExtensions = map[string]bool{
	".bmp": true, ".gif": true, ".jpeg": true, ".jpg": true, ".png": true, ".tga": true,
}

var supportedAudioExtensions = map[string]bool{
	".ogg": true, ".mp3": true,
}

// hashFile returns the hex sha256 of the file at root/rel.
func hashFile(root, rel string) (string, error) {
	f, err := os.Open(filepath.Join(root, rel))
	if err != nil {
		return "", &errs.ConfigError{Reason: fmt.Sprintf("cannot read file %q", rel), Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &errs.ConfigError{Reason: fmt.Sprintf("cannot hash file %q", rel), Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func fileInput(root string, ref FileRef) (resource.FileRef, error) {
	hash, err := hashFile(root, ref.Path)
	if err != nil {
		return resource.FileRef{}, err
	}
	return resource.FileRef{FilePath: ref.Path, FileHash: hash}, nil
}

func requireExtension(path string, allowed map[string]bool, kind string) error {
	ext := filepath.Ext(path)
	if !allowed[ext] {
		return &errs.ConfigError{Reason: fmt.Sprintf("%s file %q has unsupported extension %q", kind, path, ext)}
	}
	return nil
}

// BuildDesiredGraph turns desc into a desired graph, assigning each
// resource a deterministic id of the form "<kind>_<label>" and deriving
// the dependency edges the data model requires. projectRoot is where
// file-backed inputs are resolved relative to.
func BuildDesiredGraph(desc Description, owner Owner, projectRoot string) (*graph.Graph, error) {
	g := graph.New()

	const targetID = "target_singleton"
	g.Insert(resource.New(targetID, resource.TargetInputs{GroupID: owner.GroupID}, nil))
	g.Insert(resource.New("targetConfiguration_singleton", resource.TargetConfigurationInputs{Configuration: desc.Configuration}, []string{targetID}))
	g.Insert(resource.New("targetActivation_singleton", resource.TargetActivationInputs{IsActive: desc.IsActive}, []string{targetID}))

	if desc.Icon != nil {
		file, err := fileInput(projectRoot, *desc.Icon)
		if err != nil {
			return nil, err
		}
		g.Insert(resource.New("targetIcon_singleton", resource.TargetIconInputs{FileRef: file}, []string{targetID}))
	}

	thumbnailIDs := make([]string, 0, len(desc.Thumbnails))
	for _, t := range desc.Thumbnails {
		file, err := fileInput(projectRoot, t.File)
		if err != nil {
			return nil, err
		}
		id := "targetThumbnail_" + t.Label
		g.Insert(resource.New(id, resource.TargetThumbnailInputs{FileRef: file}, []string{targetID}))
		thumbnailIDs = append(thumbnailIDs, id)
	}
	if len(thumbnailIDs) > 0 {
		orderDeps := append([]string{targetID}, thumbnailIDs...)
		g.Insert(resource.New("thumbnailOrder_singleton", resource.ThumbnailOrderInputs{}, orderDeps))
	}

	startCount := 0
	for _, p := range desc.Places {
		if p.IsStart {
			startCount++
		}
	}
	if startCount != 1 {
		return nil, &errs.ConfigError{Reason: fmt.Sprintf("exactly one place must be labelled start, found %d", startCount)}
	}

	for _, p := range desc.Places {
		placeID := "place_" + p.Label
		g.Insert(resource.New(placeID, resource.PlaceInputs{IsStart: p.IsStart}, []string{targetID}))

		file, err := fileInput(projectRoot, p.File)
		if err != nil {
			return nil, err
		}
		g.Insert(resource.New("placeFile_"+p.Label, resource.PlaceFileInputs{FileRef: file}, []string{placeID}))
		g.Insert(resource.New("placeConfiguration_"+p.Label, resource.PlaceConfigurationInputs{Configuration: p.Configuration}, []string{placeID}))
	}

	for _, s := range desc.SocialLinks {
		g.Insert(resource.New("socialLink_"+s.Label, resource.SocialLinkInputs{Title: s.Title, URL: s.URL, LinkType: s.LinkType}, []string{targetID}))
	}

	for _, p := range desc.Products {
		productID := "product_" + p.Label
		g.Insert(resource.New(productID, resource.ProductInputs{Name: p.Name, Description: p.Description, Price: p.Price}, []string{targetID}))
		if p.Icon != nil {
			file, err := fileInput(projectRoot, *p.Icon)
			if err != nil {
				return nil, err
			}
			g.Insert(resource.New("productIcon_"+p.Label, resource.ProductIconInputs{FileRef: file}, []string{productID}))
		}
	}

	for _, p := range desc.Passes {
		file, err := fileInput(projectRoot, p.Icon)
		if err != nil {
			return nil, err
		}
		g.Insert(resource.New("pass_"+p.Label, resource.PassInputs{
			Name: p.Name, Description: p.Description, Price: p.Price,
			IconFilePath: file.FilePath, IconFileHash: file.FileHash,
		}, []string{targetID}))
	}

	for _, b := range desc.Badges {
		badgeID := "badge_" + b.Label
		iconFile, err := fileInput(projectRoot, b.Icon)
		if err != nil {
			return nil, err
		}
		g.Insert(resource.New(badgeID, resource.BadgeInputs{
			Name: b.Name, Description: b.Description, Enabled: b.Enabled,
			IconFilePath: iconFile.FilePath, IconFileHash: iconFile.FileHash,
		}, []string{targetID}))
		g.Insert(resource.New("badgeIcon_"+b.Label, resource.BadgeIconInputs{FileRef: iconFile}, []string{badgeID}))
	}

	imageAssetIDs := map[string]string{}
	for _, a := range desc.ImageAssets {
		if err := requireExtension(a.File.Path, supportedImageExtensions, "image asset"); err != nil {
			return nil, err
		}
		file, err := fileInput(projectRoot, a.File)
		if err != nil {
			return nil, err
		}
		id := "asset_" + a.Label
		g.Insert(resource.New(id, resource.ImageAssetInputs{FileWithGroupIDInputs: resource.FileWithGroupIDInputs{FileRef: file, GroupID: owner.GroupID}}, nil))
		imageAssetIDs[a.Label] = id
	}

	audioAssetIDs := map[string]string{}
	for _, a := range desc.AudioAssets {
		if err := requireExtension(a.File.Path, supportedAudioExtensions, "audio asset"); err != nil {
			return nil, err
		}
		file, err := fileInput(projectRoot, a.File)
		if err != nil {
			return nil, err
		}
		id := "asset_" + a.Label
		g.Insert(resource.New(id, resource.AudioAssetInputs{FileWithGroupIDInputs: resource.FileWithGroupIDInputs{FileRef: file, GroupID: owner.GroupID}}, nil))
		audioAssetIDs[a.Label] = id
	}

	for _, alias := range desc.Aliases {
		var assetID string
		switch {
		case alias.ImageAssetRef != "":
			assetID = imageAssetIDs[alias.ImageAssetRef]
		case alias.AudioAssetRef != "":
			assetID = audioAssetIDs[alias.AudioAssetRef]
		}
		if assetID == "" {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("alias %q does not reference a known image or audio asset", alias.Label)}
		}
		g.Insert(resource.New("assetAlias_"+alias.Label, resource.AssetAliasInputs{Name: alias.Name}, []string{targetID, assetID}))
	}

	if desc.SpatialVoice != nil {
		g.Insert(resource.New("spatialVoice_singleton", resource.SpatialVoiceInputs{Enabled: *desc.SpatialVoice}, []string{targetID}))
	}

	for _, n := range desc.Notifications {
		g.Insert(resource.New("notification_"+n.Label, resource.NotificationInputs{Name: n.Name, Content: n.Content}, []string{targetID}))
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
