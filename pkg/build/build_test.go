package build_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mantle-engine/mantle/pkg/build"
	"github.com/mantle-engine/mantle/pkg/errs"
)

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fixture"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return name
}

func TestBuildDesiredGraphRequiresExactlyOneStartPlace(t *testing.T) {
	dir := t.TempDir()
	place := writeFixture(t, dir, "place.rbxlx")

	desc := build.Description{
		Places: []build.PlaceDescription{
			{Label: "start", IsStart: true, File: build.FileRef{Path: place}},
			{Label: "other", IsStart: true, File: build.FileRef{Path: place}},
		},
	}

	_, err := build.BuildDesiredGraph(desc, build.Owner{}, dir)
	if err == nil {
		t.Fatal("expected an error for two places both marked start")
	}
	var configErr *errs.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected a *errs.ConfigError, got %T: %v", err, err)
	}
}

func TestBuildDesiredGraphAssignsDeterministicIDs(t *testing.T) {
	dir := t.TempDir()
	place := writeFixture(t, dir, "place.rbxlx")

	desc := build.Description{
		Places: []build.PlaceDescription{
			{Label: "start", IsStart: true, File: build.FileRef{Path: place}},
		},
	}

	g, err := build.BuildDesiredGraph(desc, build.Owner{}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"target_singleton", "place_start", "placeFile_start", "placeConfiguration_start"} {
		if !g.Contains(id) {
			t.Errorf("expected graph to contain %q", id)
		}
	}
}
