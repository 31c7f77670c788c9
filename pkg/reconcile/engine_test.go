package reconcile_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/graph"
	"github.com/mantle-engine/mantle/pkg/manager"
	"github.com/mantle-engine/mantle/pkg/reconcile"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// fakeManager wraps the reference manager so individual tests can force a
// specific kind to fail creation or report a price, without needing a real
// platform client.
type fakeManager struct {
	*manager.Reference
	failCreateKinds map[resource.Kind]bool
	createPrice     map[resource.Kind]uint32
	deletedIDs      []string
	updatedIDs      []string
	createdIDs      []string
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		Reference:       manager.NewReference(1000),
		failCreateKinds: map[resource.Kind]bool{},
		createPrice:     map[resource.Kind]uint32{},
	}
}

func (f *fakeManager) CreatePrice(ctx context.Context, kind resource.Kind, inputs resource.Inputs, deps []resource.Outputs) (*uint32, error) {
	if p, ok := f.createPrice[kind]; ok {
		return &p, nil
	}
	return f.Reference.CreatePrice(ctx, kind, inputs, deps)
}

func (f *fakeManager) Create(ctx context.Context, kind resource.Kind, inputs resource.Inputs, deps []resource.Outputs) (resource.Outputs, error) {
	f.createdIDs = append(f.createdIDs, string(kind))
	if f.failCreateKinds[kind] {
		return nil, errors.New("platform rejected create")
	}
	return f.Reference.Create(ctx, kind, inputs, deps)
}

func (f *fakeManager) Update(ctx context.Context, kind resource.Kind, inputs resource.Inputs, existing resource.Outputs, deps []resource.Outputs) (resource.Outputs, error) {
	f.updatedIDs = append(f.updatedIDs, string(kind))
	return f.Reference.Update(ctx, kind, inputs, existing, deps)
}

func (f *fakeManager) Delete(ctx context.Context, kind resource.Kind, outputs resource.Outputs, deps []resource.Outputs) error {
	f.deletedIDs = append(f.deletedIDs, string(kind))
	return f.Reference.Delete(ctx, kind, outputs, deps)
}

var _ = Describe("Engine.Evaluate", func() {
	var (
		eng *reconcile.Engine
		fm  *fakeManager
		ctx context.Context
	)

	BeforeEach(func() {
		fm = newFakeManager()
		eng = reconcile.New(fm)
		ctx = context.Background()
	})

	// S1 — create from empty.
	It("creates every desired resource in topological order when previous is empty", func() {
		previous := graph.New()
		desired := graph.New()
		desired.Insert(resource.New("target_singleton", resource.TargetInputs{}, nil))
		desired.Insert(resource.New("place_start", resource.PlaceInputs{IsStart: true}, []string{"target_singleton"}))
		desired.Insert(resource.New("place_other", resource.PlaceInputs{IsStart: false}, []string{"target_singleton"}))

		log, next, err := eng.Evaluate(ctx, previous, desired, reconcile.Policy{})
		Expect(err).NotTo(HaveOccurred())
		Expect(next.Len()).To(Equal(3))
		Expect(log.Summary().Created).To(Equal(3))
		for _, id := range []string{"target_singleton", "place_start", "place_other"} {
			r, ok := next.Get(id)
			Expect(ok).To(BeTrue())
			Expect(r.HasOutputs()).To(BeTrue())
		}
	})

	// S2 — noop.
	It("emits noop for every resource when nothing changed", func() {
		previous := graph.New()
		target, _ := resource.Existing("target_singleton", resource.TargetInputs{}, resource.TargetOutputs{AssetID: 1, StartPlaceID: 2}, nil)
		previous.Insert(target)
		place, _ := resource.Existing("place_start", resource.PlaceInputs{IsStart: true}, resource.PlaceOutputs{AssetOutputs: resource.AssetOutputs{AssetID: 2}}, []string{"target_singleton"})
		previous.Insert(place)

		desired := graph.New()
		desired.Insert(resource.New("target_singleton", resource.TargetInputs{}, nil))
		desired.Insert(resource.New("place_start", resource.PlaceInputs{IsStart: true}, []string{"target_singleton"}))

		log, next, err := eng.Evaluate(ctx, previous, desired, reconcile.Policy{})
		Expect(err).NotTo(HaveOccurred())
		Expect(log.Summary().Noop).To(Equal(2))
		got, _ := next.Get("target_singleton")
		Expect(got.Outputs).To(Equal(target.Outputs))
	})

	// S3 — update through a changed input, both the update-in-place and
	// the replace-on-update policy paths.
	It("updates in place when the kind is not replace-on-update", func() {
		previous := graph.New()
		target, _ := resource.Existing("target_singleton", resource.TargetInputs{}, resource.TargetOutputs{AssetID: 1, StartPlaceID: 2}, nil)
		previous.Insert(target)
		config, _ := resource.Existing("targetConfiguration_singleton",
			resource.TargetConfigurationInputs{Configuration: resource.TargetConfigurationModel{Genre: "all"}},
			resource.TargetConfigurationOutputs{}, []string{"target_singleton"})
		previous.Insert(config)

		desired := graph.New()
		desired.Insert(resource.New("target_singleton", resource.TargetInputs{}, nil))
		desired.Insert(resource.New("targetConfiguration_singleton",
			resource.TargetConfigurationInputs{Configuration: resource.TargetConfigurationModel{Genre: "education"}},
			[]string{"target_singleton"}))

		log, next, err := eng.Evaluate(ctx, previous, desired, reconcile.Policy{})
		Expect(err).NotTo(HaveOccurred())
		Expect(log.Summary().Updated).To(Equal(1))
		Expect(fm.updatedIDs).To(ContainElement(string(resource.TargetConfiguration)))
		Expect(fm.deletedIDs).To(BeEmpty())
		Expect(next.Contains("targetConfiguration_singleton")).To(BeTrue())
	})

	It("replaces (delete then create) when the kind is replace-on-update", func() {
		groupID := int64(9)
		previous := graph.New()
		target, _ := resource.Existing("target_singleton", resource.TargetInputs{}, resource.TargetOutputs{AssetID: 1, StartPlaceID: 2}, nil)
		previous.Insert(target)

		desired := graph.New()
		desired.Insert(resource.New("target_singleton", resource.TargetInputs{GroupID: &groupID}, nil))

		log, next, err := eng.Evaluate(ctx, previous, desired, reconcile.Policy{})
		Expect(err).NotTo(HaveOccurred())
		Expect(log.Summary().Updated).To(Equal(1))
		Expect(fm.deletedIDs).To(ContainElement(string(resource.Target)))
		Expect(fm.createdIDs).To(ContainElement(string(resource.Target)))
		Expect(fm.updatedIDs).To(BeEmpty())
		got, ok := next.Get("target_singleton")
		Expect(ok).To(BeTrue())
		Expect(got.HasOutputs()).To(BeTrue())
	})

	// S4 — dependency failure cascades.
	It("skips a dependent when its dependency fails to produce outputs", func() {
		fm.failCreateKinds[resource.Target] = true

		previous := graph.New()
		desired := graph.New()
		desired.Insert(resource.New("target_singleton", resource.TargetInputs{}, nil))
		desired.Insert(resource.New("place_start", resource.PlaceInputs{IsStart: true}, []string{"target_singleton"}))

		log, next, err := eng.Evaluate(ctx, previous, desired, reconcile.Policy{})
		Expect(err).To(HaveOccurred())
		Expect(log.Summary().Failed).To(Equal(1))
		Expect(log.Summary().Skipped).To(Equal(1))
		Expect(next.Contains("target_singleton")).To(BeFalse())
		Expect(next.Contains("place_start")).To(BeFalse())

		var placeResult *reconcile.Result
		for i := range log {
			if log[i].ResourceID == "place_start" {
				placeResult = &log[i]
			}
		}
		Expect(placeResult).NotTo(BeNil())
		Expect(placeResult.Reason).To(ContainSubstring("dependency failed"))
	})

	// S5 — purchase gate.
	It("skips a resource whose create price is positive when purchases are not allowed", func() {
		fm.createPrice[resource.Badge] = 100

		previous := graph.New()
		desired := graph.New()
		desired.Insert(resource.New("badge_x", resource.BadgeInputs{Name: "x", Enabled: true}, nil))

		log, next, err := eng.Evaluate(ctx, previous, desired, reconcile.Policy{AllowPurchases: false})
		Expect(err).NotTo(HaveOccurred())
		Expect(log.Summary().Skipped).To(Equal(1))
		Expect(next.Contains("badge_x")).To(BeFalse())
		Expect(log[0].Reason).To(ContainSubstring("100"))
	})

	// S6 — cycle.
	It("returns a cycle error and performs no platform calls", func() {
		previous := graph.New()
		desired := graph.New()
		desired.Insert(resource.New("a", resource.TargetInputs{}, []string{"b"}))
		desired.Insert(resource.New("b", resource.TargetInputs{}, []string{"a"}))

		_, _, err := eng.Evaluate(context.Background(), previous, desired, reconcile.Policy{})
		Expect(err).To(HaveOccurred())
		var cycleErr *errs.CycleError
		Expect(errors.As(err, &cycleErr)).To(BeTrue())
		Expect(fm.createdIDs).To(BeEmpty())
		Expect(fm.updatedIDs).To(BeEmpty())
		Expect(fm.deletedIDs).To(BeEmpty())
	})
})
