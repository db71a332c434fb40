// Package remote copies the mode file to and from shared storage so the same
// modes can be used on several machines.
package remote

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when the key does not exist on the remote.
var ErrNotFound = errors.New("object not found on remote")

// Remote provides an interface for shared storage backends.
type Remote interface {
	// Name returns the configured name of the remote.
	Name() string

	// Put stores size bytes read from r under key, replacing any previous
	// object.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Get writes the object stored under key to w, or returns ErrNotFound.
	Get(ctx context.Context, key string, w io.Writer) error

	// ValidateSetup verifies that the remote is reachable and writable.
	ValidateSetup(ctx context.Context) error
}

// ModesKey is the object key the mode file is stored under.
const ModesKey = "modes.yml"
