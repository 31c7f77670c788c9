package graph_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/graph"
	"github.com/mantle-engine/mantle/pkg/resource"
)

var _ = Describe("Graph", func() {
	It("lists every resource exactly once, dependencies before dependents", func() {
		g := graph.New()
		g.Insert(resource.New("c", resource.TargetInputs{}, []string{"a", "b"}))
		g.Insert(resource.New("a", resource.TargetInputs{}, nil))
		g.Insert(resource.New("b", resource.TargetInputs{}, []string{"a"}))

		order, err := g.TopologicalOrder()
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(HaveLen(3))
		Expect(indexOf(order, "a")).To(BeNumerically("<", indexOf(order, "b")))
		Expect(indexOf(order, "b")).To(BeNumerically("<", indexOf(order, "c")))
	})

	It("breaks topological ties by insertion order", func() {
		g := graph.New()
		g.Insert(resource.New("second", resource.TargetInputs{}, nil))
		g.Insert(resource.New("first", resource.TargetInputs{}, nil))

		order, err := g.TopologicalOrder()
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(Equal([]string{"second", "first"}))
	})

	It("raises a cycle error instead of an order", func() {
		g := graph.New()
		g.Insert(resource.New("a", resource.TargetInputs{}, []string{"b"}))
		g.Insert(resource.New("b", resource.TargetInputs{}, []string{"a"}))

		_, err := g.TopologicalOrder()
		var cycleErr *errs.CycleError
		Expect(errors.As(err, &cycleErr)).To(BeTrue())
	})

	It("rejects a dependency id that resolves to nothing in the graph", func() {
		g := graph.New()
		g.Insert(resource.New("a", resource.TargetInputs{}, []string{"missing"}))

		err := g.Validate()
		var configErr *errs.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
	})

	It("reports dependency outputs incomplete when a dependency lacks outputs", func() {
		g := graph.New()
		g.Insert(resource.New("a", resource.TargetInputs{}, nil)) // no outputs yet
		b := resource.New("b", resource.TargetInputs{}, []string{"a"})
		g.Insert(b)

		_, ok := g.DependencyOutputs(b)
		Expect(ok).To(BeFalse())
	})

	It("gathers dependency outputs once all dependencies have them", func() {
		g := graph.New()
		a, _ := resource.Existing("a", resource.TargetInputs{}, resource.TargetOutputs{AssetID: 1, StartPlaceID: 2}, nil)
		g.Insert(a)
		b := resource.New("b", resource.TargetInputs{}, []string{"a"})
		g.Insert(b)

		outputs, ok := g.DependencyOutputs(b)
		Expect(ok).To(BeTrue())
		Expect(outputs).To(HaveLen(1))
		Expect(outputs[0]).To(Equal(a.Outputs))
	})
})

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
