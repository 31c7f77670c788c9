package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mantle-engine/mantle/pkg/build"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// ProjectFile is the YAML shape this binary reads as a stand-in for the
// real (external) config loader: it already carries the fully resolved,
// environment-selected fields build.Description needs. A production config
// loader would support templating, environment overlays, and secrets;
// this one exists to drive diff/deploy end to end, nothing more.
type ProjectFile struct {
	Target struct {
		GroupID *int64 `yaml:"groupId"`
	} `yaml:"target"`
	Environments map[string]EnvironmentOverride `yaml:"environments"`

	Configuration resource.TargetConfigurationModel `yaml:"configuration"`
	IsActive      bool                              `yaml:"isActive"`
	Icon          *string                           `yaml:"icon"`
	Thumbnails    []struct {
		Label string `yaml:"label"`
		File  string `yaml:"file"`
	} `yaml:"thumbnails"`
	Places []struct {
		Label         string                           `yaml:"label"`
		IsStart       bool                              `yaml:"isStart"`
		File          string                            `yaml:"file"`
		Configuration resource.PlaceConfigurationModel `yaml:"configuration"`
	} `yaml:"places"`
	SocialLinks []struct {
		Label    string                  `yaml:"label"`
		Title    string                  `yaml:"title"`
		URL      string                  `yaml:"url"`
		LinkType resource.SocialLinkType `yaml:"linkType"`
	} `yaml:"socialLinks"`
	Products []struct {
		Label       string  `yaml:"label"`
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Price       uint32  `yaml:"price"`
		Icon        *string `yaml:"icon"`
	} `yaml:"products"`
	Passes []struct {
		Label       string  `yaml:"label"`
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Price       *uint32 `yaml:"price"`
		Icon        string  `yaml:"icon"`
	} `yaml:"passes"`
	Badges []struct {
		Label       string `yaml:"label"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Enabled     bool   `yaml:"enabled"`
		Icon        string `yaml:"icon"`
	} `yaml:"badges"`
	ImageAssets []struct {
		Label string `yaml:"label"`
		File  string `yaml:"file"`
	} `yaml:"imageAssets"`
	AudioAssets []struct {
		Label string `yaml:"label"`
		File  string `yaml:"file"`
	} `yaml:"audioAssets"`
	Aliases []struct {
		Label         string `yaml:"label"`
		Name          string `yaml:"name"`
		ImageAssetRef string `yaml:"imageAssetRef"`
		AudioAssetRef string `yaml:"audioAssetRef"`
	} `yaml:"aliases"`
	SpatialVoice  *bool `yaml:"spatialVoice"`
	Notifications []struct {
		Label   string `yaml:"label"`
		Name    string `yaml:"name"`
		Content string `yaml:"content"`
	} `yaml:"notifications"`
}

// EnvironmentOverride is the per-environment slice of a project file: today
// only the owning group can vary by environment, matching the common case
// of a staging group distinct from the production one.
type EnvironmentOverride struct {
	GroupID *int64 `yaml:"groupId"`
}

func loadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %q: %w", path, err)
	}
	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing project file %q: %w", path, err)
	}
	return &pf, nil
}

// toDescription resolves pf for the named environment into the typed
// boundary pkg/build expects, selecting that environment's group override
// if one is declared.
func (pf *ProjectFile) toDescription(environment string) (build.Description, build.Owner, error) {
	owner := build.Owner{GroupID: pf.Target.GroupID}
	if override, ok := pf.Environments[environment]; ok && override.GroupID != nil {
		owner.GroupID = override.GroupID
	}

	desc := build.Description{
		Configuration: pf.Configuration,
		IsActive:      pf.IsActive,
		SpatialVoice:  pf.SpatialVoice,
	}
	if pf.Icon != nil {
		desc.Icon = &build.FileRef{Path: *pf.Icon}
	}
	for _, t := range pf.Thumbnails {
		desc.Thumbnails = append(desc.Thumbnails, build.LabeledFile{Label: t.Label, File: build.FileRef{Path: t.File}})
	}
	for _, p := range pf.Places {
		desc.Places = append(desc.Places, build.PlaceDescription{
			Label: p.Label, IsStart: p.IsStart,
			File:          build.FileRef{Path: p.File},
			Configuration: p.Configuration,
		})
	}
	for _, s := range pf.SocialLinks {
		desc.SocialLinks = append(desc.SocialLinks, build.SocialLinkDescription{
			Label: s.Label, Title: s.Title, URL: s.URL, LinkType: s.LinkType,
		})
	}
	for _, p := range pf.Products {
		pd := build.ProductDescription{Label: p.Label, Name: p.Name, Description: p.Description, Price: p.Price}
		if p.Icon != nil {
			pd.Icon = &build.FileRef{Path: *p.Icon}
		}
		desc.Products = append(desc.Products, pd)
	}
	for _, p := range pf.Passes {
		desc.Passes = append(desc.Passes, build.PassDescription{
			Label: p.Label, Name: p.Name, Description: p.Description, Price: p.Price,
			Icon: build.FileRef{Path: p.Icon},
		})
	}
	for _, b := range pf.Badges {
		desc.Badges = append(desc.Badges, build.BadgeDescription{
			Label: b.Label, Name: b.Name, Description: b.Description, Enabled: b.Enabled,
			Icon: build.FileRef{Path: b.Icon},
		})
	}
	for _, a := range pf.ImageAssets {
		desc.ImageAssets = append(desc.ImageAssets, build.AssetDescription{Label: a.Label, File: build.FileRef{Path: a.File}})
	}
	for _, a := range pf.AudioAssets {
		desc.AudioAssets = append(desc.AudioAssets, build.AssetDescription{Label: a.Label, File: build.FileRef{Path: a.File}})
	}
	for _, a := range pf.Aliases {
		desc.Aliases = append(desc.Aliases, build.AliasDescription{
			Label: a.Label, Name: a.Name, ImageAssetRef: a.ImageAssetRef, AudioAssetRef: a.AudioAssetRef,
		})
	}
	for _, n := range pf.Notifications {
		desc.Notifications = append(desc.Notifications, build.NotificationDescription{Label: n.Label, Name: n.Name, Content: n.Content})
	}

	return desc, owner, nil
}
