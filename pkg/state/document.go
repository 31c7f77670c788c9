package state

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mantle-engine/mantle/pkg/resource"
)

// currentVersion is the schema version this package always writes on Save.
const currentVersion = "5"

// Document is the root of a state file: one resource list per environment
// label, at the current (V5) closed representation.
type Document struct {
	Environments map[string][]*resource.Resource
}

// document is Document's on-disk shape, before the resource list is decoded
// into concrete Inputs/Outputs variants.
type document struct {
	Version      string                      `yaml:"version"`
	Environments map[string][]serializedNode `yaml:"environments"`
}

// serializedNode mirrors one Resource on disk: inputs and outputs are each
// encoded as a single-key mapping of kind name to payload, since YAML has
// no native tagged union.
type serializedNode struct {
	ID           string    `yaml:"id"`
	Inputs       yaml.Node `yaml:"inputs"`
	Outputs      yaml.Node `yaml:"outputs"`
	Dependencies []string  `yaml:"dependencies"`
}

func (n serializedNode) toResource() (*resource.Resource, error) {
	inputs, err := decodeInputs(n.Inputs)
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", n.ID, err)
	}
	outputs, err := decodeOutputs(n.Outputs)
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", n.ID, err)
	}
	if outputs == nil {
		return resource.New(n.ID, inputs, n.Dependencies), nil
	}
	return resource.Existing(n.ID, inputs, outputs, n.Dependencies)
}

func fromResource(r *resource.Resource) (serializedNode, error) {
	n := serializedNode{ID: r.ID, Dependencies: r.Dependencies}

	inputsNode, err := encodeTagged(string(r.Inputs.Kind()), r.Inputs)
	if err != nil {
		return n, err
	}
	n.Inputs = inputsNode

	if r.HasOutputs() {
		outputsNode, err := encodeTagged(string(r.Outputs.Kind()), r.Outputs)
		if err != nil {
			return n, err
		}
		n.Outputs = outputsNode
	}
	return n, nil
}

// encodeTagged wraps payload in a single-key mapping { tag: payload }.
func encodeTagged(tag string, payload any) (yaml.Node, error) {
	var body yaml.Node
	if err := body.Encode(payload); err != nil {
		return yaml.Node{}, err
	}
	var wrapper yaml.Node
	if err := wrapper.Encode(map[string]yaml.Node{tag: body}); err != nil {
		return yaml.Node{}, err
	}
	return wrapper, nil
}

// taggedKindAndBody splits a single-key mapping node back into its tag and
// the node holding the payload under that tag.
func taggedKindAndBody(n yaml.Node) (resource.Kind, *yaml.Node, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, false
	}
	return resource.Kind(n.Content[0].Value), n.Content[1], true
}

func decodeInputs(n yaml.Node) (resource.Inputs, error) {
	kind, body, ok := taggedKindAndBody(n)
	if !ok {
		return nil, fmt.Errorf("malformed inputs node")
	}
	inputs, err := decodeInputsBody(kind, body)
	if err != nil {
		return nil, fmt.Errorf("decoding %q inputs: %w", kind, err)
	}
	return inputs, nil
}

func decodeOutputs(n yaml.Node) (resource.Outputs, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	kind, body, ok := taggedKindAndBody(n)
	if !ok {
		return nil, fmt.Errorf("malformed outputs node")
	}
	outputs, err := decodeOutputsBody(kind, body)
	if err != nil {
		return nil, fmt.Errorf("decoding %q outputs: %w", kind, err)
	}
	return outputs, nil
}

// Marshal renders doc as a current-version (V5) state file.
func Marshal(doc Document) ([]byte, error) {
	out := document{Version: currentVersion, Environments: map[string][]serializedNode{}}
	for label, resources := range doc.Environments {
		nodes := make([]serializedNode, 0, len(resources))
		for _, r := range resources {
			n, err := fromResource(r)
			if err != nil {
				return nil, fmt.Errorf("environment %q: %w", label, err)
			}
			nodes = append(nodes, n)
		}
		out.Environments[label] = nodes
	}
	return yaml.Marshal(out)
}
