package importer_test

import (
	"context"
	"testing"

	"github.com/mantle-engine/mantle/pkg/importer"
	"github.com/mantle-engine/mantle/pkg/resource"
)

type fakeReader struct {
	live []importer.LiveResource
}

func (f fakeReader) ReadTarget(context.Context, string) ([]importer.LiveResource, error) {
	return f.live, nil
}

func TestImportGraphFillsSentinelFileInputs(t *testing.T) {
	reader := fakeReader{live: []importer.LiveResource{
		{ID: "target_singleton", Outputs: resource.TargetOutputs{AssetID: 1, StartPlaceID: 2}},
		{ID: "targetIcon_singleton", Outputs: resource.TargetIconOutputs{AssetOutputs: resource.AssetOutputs{AssetID: 3}}, Dependencies: []string{"target_singleton"}},
	}}

	g, err := importer.ImportGraph(context.Background(), reader, "target_singleton")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	icon, ok := g.Get("targetIcon_singleton")
	if !ok {
		t.Fatal("expected imported icon resource")
	}
	inputs, ok := icon.Inputs.(resource.TargetIconInputs)
	if !ok {
		t.Fatalf("expected TargetIconInputs, got %T", icon.Inputs)
	}
	if inputs.FileHash != "<imported>" {
		t.Fatalf("expected sentinel file hash, got %q", inputs.FileHash)
	}
}
