package state

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// The migration chain walks a decoded YAML tree (map[string]any, as produced
// by yaml.v3 for a mapping node) forward one schema version at a time. Each
// function returns the tree at the next version, or an error if the input
// does not have the shape the source version guarantees. The functions are
// not pure: the returned tree reuses the input's resource maps, and those
// maps are modified in place. No migration ever runs backward; an absent
// "version" tag is treated as V1.

func detectVersion(raw map[string]any) string {
	if v, ok := raw["version"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return "1"
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// migrateV1toV2 renames the top-level "deployments" key to "environments"
// (grounded on state/v1.rs's Deployment -> Environment rename), strips the
// "assetId" field that V1 mistakenly stored inline on every resource's
// inputs instead of its outputs, and backfills TargetConfiguration and
// PlaceConfiguration resources with the default model for any field the V1
// writer omitted.
func migrateV1toV2(raw map[string]any) (map[string]any, error) {
	envs, ok := raw["deployments"]
	if !ok {
		envs = raw["environments"]
	}
	envMap, ok := asMap(envs)
	if !ok {
		return nil, &errs.MigrationError{FromVersion: "1", Err: fmt.Errorf("missing or malformed deployments/environments map")}
	}

	out := map[string]any{}
	for label, list := range envMap {
		resources, ok := asSlice(list)
		if !ok {
			return nil, &errs.MigrationError{FromVersion: "1", Err: fmt.Errorf("environment %q: expected a resource list", label)}
		}
		migrated := make([]any, 0, len(resources))
		for _, item := range resources {
			res, ok := asMap(item)
			if !ok {
				return nil, &errs.MigrationError{FromVersion: "1", Err: fmt.Errorf("environment %q: malformed resource entry", label)}
			}
			if inputs, ok := asMap(res["inputs"]); ok {
				delete(inputs, "assetId")
				nestConfigurationDefaults(res, inputs)
			}
			migrated = append(migrated, res)
		}
		out[label] = migrated
	}

	return map[string]any{"version": "2", "environments": out}, nil
}

// nestConfigurationDefaults moves V1's flat targetConfiguration/
// placeConfiguration fields under the nested "configuration" key the closed
// model expects, backfilling any field the V1 writer left unset from
// resource.DefaultTargetConfigurationModel/DefaultPlaceConfigurationModel.
func nestConfigurationDefaults(res, inputs map[string]any) {
	kind, _ := res["type"].(string)

	var defaults map[string]any
	switch kind {
	case "targetConfiguration":
		defaults = mustToMap(resource.DefaultTargetConfigurationModel())
	case "placeConfiguration":
		defaults = mustToMap(resource.DefaultPlaceConfigurationModel())
	default:
		return
	}

	model, _ := asMap(inputs["configuration"])
	if model == nil {
		model = map[string]any{}
		for k, v := range inputs {
			model[k] = v
		}
	}
	for k, v := range defaults {
		if _, present := model[k]; !present {
			model[k] = v
		}
	}
	for k := range inputs {
		delete(inputs, k)
	}
	inputs["configuration"] = model
}

// mustToMap round-trips v through YAML to turn a typed default model into
// the generic map shape migrations operate on. v is always one of this
// package's own default-model constants, so encoding never fails.
func mustToMap(v any) map[string]any {
	data, err := yaml.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		panic(err)
	}
	return m
}

// migrateV2toV3 converts the "open" resource representation (a flat map of
// fields alongside a separate "type" discriminator) into the closed,
// single-key tagged-variant representation that V3 onward uses and that
// Document.Marshal/Unmarshal speak directly (grounded on state/v2.rs's
// open -> closed conversion).
func migrateV2toV3(raw map[string]any) (map[string]any, error) {
	envMap, ok := asMap(raw["environments"])
	if !ok {
		return nil, &errs.MigrationError{FromVersion: "2", Err: fmt.Errorf("missing environments map")}
	}

	out := map[string]any{}
	for label, list := range envMap {
		resources, ok := asSlice(list)
		if !ok {
			return nil, &errs.MigrationError{FromVersion: "2", Err: fmt.Errorf("environment %q: expected a resource list", label)}
		}
		migrated := make([]any, 0, len(resources))
		for _, item := range resources {
			res, ok := asMap(item)
			if !ok {
				return nil, &errs.MigrationError{FromVersion: "2", Err: fmt.Errorf("environment %q: malformed resource entry", label)}
			}
			kind, _ := res["type"].(string)
			tagged := map[string]any{
				"id":           res["id"],
				"dependencies": res["dependencies"],
				"inputs":       map[string]any{kind: res["inputs"]},
			}
			if outputs, ok := res["outputs"]; ok && outputs != nil {
				tagged["outputs"] = map[string]any{kind: outputs}
			}
			migrated = append(migrated, tagged)
		}
		out[label] = migrated
	}

	return map[string]any{"version": "3", "environments": out}, nil
}

// migrateV3toV4 folds every passIcon a pass depends on into that pass
// resource, carrying the icon fields inline, and rewrites any
// dependency edge pointing at the dropped passIcon id to point at the pass
// id instead (grounded on state/v3.rs's Pass/PassIcon merge — the one true
// field-level fold in the chain, as opposed to V4->V5's direction flip).
func migrateV3toV4(raw map[string]any) (map[string]any, error) {
	envMap, ok := asMap(raw["environments"])
	if !ok {
		return nil, &errs.MigrationError{FromVersion: "3", Err: fmt.Errorf("missing environments map")}
	}

	out := map[string]any{}
	for label, list := range envMap {
		resources, ok := asSlice(list)
		if !ok {
			return nil, &errs.MigrationError{FromVersion: "3", Err: fmt.Errorf("environment %q: expected a resource list", label)}
		}

		icons := map[string]map[string]any{} // passIcon id -> its resource map
		var kept []map[string]any
		for _, item := range resources {
			res, _ := asMap(item)
			if kindOf(res, "inputs") == "passIcon" {
				id, _ := res["id"].(string)
				icons[id] = res
				continue
			}
			kept = append(kept, res)
		}

		rewrite := map[string]string{} // passIcon id -> pass id
		migrated := make([]any, 0, len(kept))
		for _, res := range kept {
			if kindOf(res, "inputs") == "pass" {
				deps, _ := asSlice(res["dependencies"])
				for _, d := range deps {
					iconID, _ := d.(string)
					if icon, ok := icons[iconID]; ok {
						mergeIconIntoPass(res, icon)
						rewrite[iconID] = res["id"].(string)
					}
				}
				res["dependencies"] = dropDependency(deps, func(d string) bool { _, ok := icons[d]; return ok })
			}
			migrated = append(migrated, res)
		}

		for _, res := range migrated {
			m := res.(map[string]any)
			deps, _ := asSlice(m["dependencies"])
			for i, d := range deps {
				if id, ok := d.(string); ok {
					if target, ok := rewrite[id]; ok {
						deps[i] = target
					}
				}
			}
			m["dependencies"] = deps
		}

		out[label] = migrated
	}

	return map[string]any{"version": "4", "environments": out}, nil
}

func kindOf(res map[string]any, field string) string {
	tagged, ok := asMap(res[field])
	if !ok {
		return ""
	}
	for k := range tagged {
		return k
	}
	return ""
}

func mergeIconIntoPass(pass, icon map[string]any) {
	passInputs, _ := asMap(pass["inputs"])
	passBody, _ := asMap(passInputs["pass"])
	iconInputs, _ := asMap(icon["inputs"])
	iconBody, _ := asMap(iconInputs["passIcon"])
	passBody["iconFilePath"] = iconBody["filePath"]
	passBody["iconFileHash"] = iconBody["fileHash"]

	if passOutputs, ok := asMap(pass["outputs"]); ok {
		if passOutBody, ok := asMap(passOutputs["pass"]); ok {
			if iconOutputs, ok := asMap(icon["outputs"]); ok {
				if iconOutBody, ok := asMap(iconOutputs["passIcon"]); ok {
					passOutBody["iconAssetId"] = iconOutBody["assetId"]
				}
			}
		}
	}
}

func dropDependency(deps []any, drop func(string) bool) []any {
	out := make([]any, 0, len(deps))
	for _, d := range deps {
		id, ok := d.(string)
		if ok && drop(id) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// migrateV4toV5 flips the Product/ProductIcon dependency direction:
// previously a product depended on its productIcon, going forward the icon
// depends on the product it decorates (grounded on rbx_mantle's
// state/v4.rs — a direction flip, not a merge, unlike V3->V4's Pass fold).
func migrateV4toV5(raw map[string]any) (map[string]any, error) {
	envMap, ok := asMap(raw["environments"])
	if !ok {
		return nil, &errs.MigrationError{FromVersion: "4", Err: fmt.Errorf("missing environments map")}
	}

	out := map[string]any{}
	for label, list := range envMap {
		resources, ok := asSlice(list)
		if !ok {
			return nil, &errs.MigrationError{FromVersion: "4", Err: fmt.Errorf("environment %q: expected a resource list", label)}
		}

		byID := map[string]map[string]any{}
		migrated := make([]any, 0, len(resources))
		for _, item := range resources {
			res, _ := asMap(item)
			byID[res["id"].(string)] = res
			migrated = append(migrated, res)
		}

		for _, item := range migrated {
			res := item.(map[string]any)
			if kindOf(res, "inputs") != "product" {
				continue
			}
			deps, _ := asSlice(res["dependencies"])
			var remaining []any
			for _, d := range deps {
				id, _ := d.(string)
				icon, ok := byID[id]
				if ok && kindOf(icon, "inputs") == "productIcon" {
					iconDeps, _ := asSlice(icon["dependencies"])
					icon["dependencies"] = append(iconDeps, res["id"])
					continue
				}
				remaining = append(remaining, d)
			}
			res["dependencies"] = remaining
		}

		out[label] = migrated
	}

	return map[string]any{"version": "5", "environments": out}, nil
}
