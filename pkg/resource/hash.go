package resource

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// CanonicalBytes renders v as a deterministic, key-sorted YAML encoding
// with any document-header bytes stripped — the canonicalization the rest
// of the hashing machinery assumes. Two structurally-equal values always
// produce identical bytes.
func CanonicalBytes(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	// Struct fields encode in declaration order; decoding into a generic
	// tree and encoding again emits every mapping with its keys sorted.
	var tree any
	if err := yaml.Unmarshal(out, &tree); err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	out, err = yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	out = bytes.TrimPrefix(out, []byte("---\n"))
	out = bytes.TrimRight(out, "\n")
	return out, nil
}

// CanonicalHash hashes the canonical encoding of v with xxhash and returns
// it as a fixed-width hex string, the compact change-detection key used for
// both inputs and dependency-outputs hashes.
func CanonicalHash(v any) (string, error) {
	b, err := CanonicalBytes(v)
	if err != nil {
		return "", err
	}
	sum := xxhash.Sum64(b)
	return strconv.FormatUint(sum, 16), nil
}

// InputsHash returns the resource's canonical inputs hash.
func (r *Resource) InputsHash() (string, error) {
	return CanonicalHash(r.Inputs)
}

// OutputsHash returns the resource's outputs hash, or the hash of a fixed
// sentinel if outputs are not yet present.
func (r *Resource) OutputsHash() (string, error) {
	if r.Outputs == nil {
		return CanonicalHash(nil)
	}
	return CanonicalHash(r.Outputs)
}

// OutputsListHash hashes an ordered list of outputs variants — the
// dependency-outputs-hash used by the graph to detect that a resource must
// re-run because an upstream output changed even though its own inputs did
// not.
func OutputsListHash(outputs []Outputs) (string, error) {
	return CanonicalHash(outputs)
}
