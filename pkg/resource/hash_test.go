package resource

import "testing"

func TestInputsHashStableForEqualValues(t *testing.T) {
	a := TargetInputs{GroupID: nil}
	b := TargetInputs{GroupID: nil}

	ha, err := CanonicalHash(a)
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	hb, err := CanonicalHash(b)
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if ha != hb {
		t.Fatalf("expected equal hashes for structurally identical inputs, got %q and %q", ha, hb)
	}
}

func TestInputsHashChangesWithGroupID(t *testing.T) {
	group := int64(123)
	withGroup := TargetInputs{GroupID: &group}
	withoutGroup := TargetInputs{GroupID: nil}

	h1, err := CanonicalHash(withGroup)
	if err != nil {
		t.Fatalf("hash withGroup: %v", err)
	}
	h2, err := CanonicalHash(withoutGroup)
	if err != nil {
		t.Fatalf("hash withoutGroup: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes once groupId changes, got %q for both", h1)
	}
}

func TestSetOutputsRejectsMismatchedKind(t *testing.T) {
	r := New("target_singleton", TargetInputs{}, nil)
	err := r.SetOutputs(PlaceOutputs{})
	if err == nil {
		t.Fatal("expected an error installing Place outputs onto a Target resource")
	}
}

func TestSetOutputsAcceptsMatchingKind(t *testing.T) {
	r := New("target_singleton", TargetInputs{}, nil)
	if err := r.SetOutputs(TargetOutputs{AssetID: 1, StartPlaceID: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.HasOutputs() {
		t.Fatal("expected HasOutputs to be true after SetOutputs")
	}
}
