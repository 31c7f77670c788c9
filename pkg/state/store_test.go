package state_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mantle-engine/mantle/pkg/resource"
	"github.com/mantle-engine/mantle/pkg/state"
)

var _ = Describe("Marshal/Unmarshal round trip", func() {
	It("carries outputs through an encode/decode cycle", func() {
		r := resource.New("target_singleton", resource.TargetInputs{}, nil)
		Expect(r.SetOutputs(resource.TargetOutputs{AssetID: 42, StartPlaceID: 7})).To(Succeed())
		doc := state.Document{Environments: map[string][]*resource.Resource{"production": {r}}}

		data, err := state.Marshal(doc)
		Expect(err).NotTo(HaveOccurred())

		got, err := state.Unmarshal(data)
		Expect(err).NotTo(HaveOccurred())

		resources := got.Environments["production"]
		Expect(resources).To(HaveLen(1))
		out, ok := resources[0].Outputs.(resource.TargetOutputs)
		Expect(ok).To(BeTrue())
		Expect(out).To(Equal(resource.TargetOutputs{AssetID: 42, StartPlaceID: 7}))
	})
})

var _ = Describe("migration chain", func() {
	DescribeTable("walks an older document forward to V5",
		func(input []byte, assertResult func(state.Document)) {
			doc, err := state.Unmarshal(input)
			Expect(err).NotTo(HaveOccurred())
			assertResult(doc)
		},
		Entry("absent version tag is treated as V1", []byte(`
deployments:
  production:
    - id: target_singleton
      type: target
      inputs: {}
`), func(doc state.Document) {
			Expect(doc.Environments["production"]).To(HaveLen(1))
		}),
		Entry("V1 targetConfiguration backfills defaults around an explicit field", []byte(`
version: "1"
deployments:
  production:
    - id: targetConfiguration_singleton
      type: targetConfiguration
      inputs:
        genre: education
      dependencies: [target_singleton]
`), func(doc state.Document) {
			resources := doc.Environments["production"]
			Expect(resources).To(HaveLen(1))
			inputs, ok := resources[0].Inputs.(resource.TargetConfigurationInputs)
			Expect(ok).To(BeTrue())
			Expect(inputs.Configuration.Genre).To(Equal("education"))
			Expect(inputs.Configuration.PlayableDevices).NotTo(BeEmpty())
		}),
		Entry("V1 assetId is stripped off inputs during the V1->V2 step", []byte(`
version: "1"
deployments:
  production:
    - id: target_singleton
      type: target
      inputs:
        assetId: 999
        groupId: 5
`), func(doc state.Document) {
			inputs, ok := doc.Environments["production"][0].Inputs.(resource.TargetInputs)
			Expect(ok).To(BeTrue())
			Expect(*inputs.GroupID).To(Equal(int64(5)))
		}),
		Entry("V2 open representation is converted to the closed tagged shape", []byte(`
version: "2"
environments:
  production:
    - id: target_singleton
      type: target
      inputs: {}
      outputs:
        assetId: 1
        startPlaceId: 2
`), func(doc state.Document) {
			resources := doc.Environments["production"]
			Expect(resources).To(HaveLen(1))
			Expect(resources[0].Inputs.(resource.TargetInputs)).To(Equal(resource.TargetInputs{}))
			out, ok := resources[0].Outputs.(resource.TargetOutputs)
			Expect(ok).To(BeTrue())
			Expect(out).To(Equal(resource.TargetOutputs{AssetID: 1, StartPlaceID: 2}))
		}),
		Entry("V3 folds a passIcon into its owning pass and rewrites dependents", []byte(`
version: "3"
environments:
  production:
    - id: pass_x
      dependencies: [passIcon_x]
      inputs:
        pass: {name: x, price: 10}
      outputs:
        pass: {assetId: 1, iconAssetId: 0}
    - id: passIcon_x
      dependencies: []
      inputs:
        passIcon: {filePath: icon.png, fileHash: abc}
      outputs:
        passIcon: {assetId: 2}
    - id: badge_y
      dependencies: [passIcon_x]
      inputs:
        badge: {name: y, enabled: true}
`), func(doc state.Document) {
			resources := doc.Environments["production"]
			byID := map[string]*resource.Resource{}
			for _, r := range resources {
				byID[r.ID] = r
			}
			Expect(byID).To(HaveKey("pass_x"))
			Expect(byID).NotTo(HaveKey("passIcon_x"))
			passInputs, ok := byID["pass_x"].Inputs.(resource.PassInputs)
			Expect(ok).To(BeTrue())
			Expect(passInputs.IconFilePath).To(Equal("icon.png"))
			Expect(passInputs.IconFileHash).To(Equal("abc"))
			passOutputs, ok := byID["pass_x"].Outputs.(resource.PassOutputs)
			Expect(ok).To(BeTrue())
			Expect(passOutputs.IconAssetID).To(Equal(int64(2)))
			Expect(byID["badge_y"].Dependencies).To(ConsistOf("pass_x"))
		}),
		Entry("V4 flips the productIcon dependency to point at its product", []byte(`
version: "4"
environments:
  production:
    - id: product_x
      dependencies: [productIcon_x]
      inputs:
        product: {name: x, price: 10}
    - id: productIcon_x
      dependencies: []
      inputs:
        productIcon: {filePath: icon.png, fileHash: abc}
`), func(doc state.Document) {
			resources := doc.Environments["production"]
			byID := map[string]*resource.Resource{}
			for _, r := range resources {
				byID[r.ID] = r
			}
			Expect(byID["product_x"].Dependencies).To(BeEmpty())
			Expect(byID["productIcon_x"].Dependencies).To(ConsistOf("product_x"))
		}),
	)

	It("rejects an unrecognized version tag", func() {
		_, err := state.Unmarshal([]byte(`version: "99"
environments: {}
`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("LocalFileTransport", func() {
	It("returns nil, nil for a key that was never saved", func() {
		transport := state.LocalFileTransport{Dir: GinkgoT().TempDir()}
		data, err := transport.Load(context.Background(), "production.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(BeNil())
	})
})

var _ = Describe("Store", func() {
	It("loads an empty document for a key that was never saved", func() {
		store := state.New(state.LocalFileTransport{Dir: GinkgoT().TempDir()})
		doc, err := store.Load(context.Background(), "production.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Environments).To(BeEmpty())
	})

	It("round-trips a save through a load", func() {
		ctx := context.Background()
		store := state.New(state.LocalFileTransport{Dir: GinkgoT().TempDir()})

		r := resource.New("target_singleton", resource.TargetInputs{}, nil)
		Expect(r.SetOutputs(resource.TargetOutputs{AssetID: 1})).To(Succeed())
		doc := state.Document{Environments: map[string][]*resource.Resource{"staging": {r}}}

		Expect(store.Save(ctx, "staging.yaml", doc)).To(Succeed())
		got, err := store.Load(ctx, "staging.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Environments["staging"]).To(HaveLen(1))
	})
})
