package state

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mantle-engine/mantle/pkg/errs"
	"github.com/mantle-engine/mantle/pkg/resource"
)

// Transport is the storage-agnostic collaborator behind the state store: it
// moves opaque bytes under a key, and nothing more. A concrete transport is
// an external collaborator — LocalFileTransport below is the in-repo
// reference implementation; a remote object-store transport is left to the
// caller to provide.
type Transport interface {
	// Load returns the bytes stored under key, or (nil, nil) if key has
	// never been saved.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Store is the versioned state store: it knows how to migrate whatever a
// Transport hands back up to the current schema, and always writes the
// current schema back down.
type Store struct {
	Transport Transport
}

// New constructs a Store over the given transport.
func New(transport Transport) *Store {
	return &Store{Transport: transport}
}

// Load fetches and migrates the state document stored under key. A key that
// has never been saved yields an empty document, not an error.
func (s *Store) Load(ctx context.Context, key string) (Document, error) {
	data, err := s.Transport.Load(ctx, key)
	if err != nil {
		return Document{}, &errs.StateIOError{Key: key, Err: err}
	}
	if data == nil {
		return Document{Environments: map[string][]*resource.Resource{}}, nil
	}
	return Unmarshal(data)
}

// Save encodes doc at the current schema and writes it through the
// transport. Save always writes V5 regardless of what version was last
// loaded. It makes a single write attempt: a transport failure is returned
// as a *errs.StateIOError, and any retry is left to the caller.
func (s *Store) Save(ctx context.Context, key string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding state for %q: %w", key, err)
	}
	if err := s.Transport.Save(ctx, key, data); err != nil {
		return &errs.StateIOError{Key: key, Err: err}
	}
	return nil
}

// Unmarshal decodes data at whatever schema version it was written in,
// migrating forward to V5 before building the Document. An absent version
// tag is treated as V1.
func Unmarshal(data []byte) (Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("parsing state document: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	version := detectVersion(raw)

	var err error
	switch version {
	case "1":
		raw, err = migrateV1toV2(raw)
		if err != nil {
			return Document{}, err
		}
		fallthrough
	case "2":
		raw, err = migrateV2toV3(raw)
		if err != nil {
			return Document{}, err
		}
		fallthrough
	case "3":
		raw, err = migrateV3toV4(raw)
		if err != nil {
			return Document{}, err
		}
		fallthrough
	case "4":
		raw, err = migrateV4toV5(raw)
		if err != nil {
			return Document{}, err
		}
		fallthrough
	case "5":
		// already current
	default:
		return Document{}, &errs.MigrationError{FromVersion: version, Err: fmt.Errorf("unrecognized state schema version %q", version)}
	}

	return decodeV5(raw)
}

// decodeV5 takes a raw tree already at the V5 shape and builds the typed
// Document, round-tripping through YAML bytes so the single-key
// tagged-variant decoder in document.go can work against yaml.Node values.
func decodeV5(raw map[string]any) (Document, error) {
	bytes, err := yaml.Marshal(raw)
	if err != nil {
		return Document{}, fmt.Errorf("re-encoding migrated state: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(bytes, &doc); err != nil {
		return Document{}, fmt.Errorf("decoding migrated state: %w", err)
	}

	out := Document{Environments: map[string][]*resource.Resource{}}
	for label, nodes := range doc.Environments {
		resources := make([]*resource.Resource, 0, len(nodes))
		for _, n := range nodes {
			r, err := n.toResource()
			if err != nil {
				return Document{}, fmt.Errorf("environment %q: %w", label, err)
			}
			resources = append(resources, r)
		}
		out.Environments[label] = resources
	}
	return out, nil
}
