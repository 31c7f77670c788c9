package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// LocalFileTransport is the in-repo reference Transport: each key is a
// filename under Dir. A remote object-store transport (S3 and similar) is
// an external collaborator left for the caller to supply; see DESIGN.md
// for why no cloud SDK is wired in here.
type LocalFileTransport struct {
	Dir string
}

func (t LocalFileTransport) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(t.Dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (t LocalFileTransport) Save(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(t.Dir, key), data, 0o644)
}
