// Package store persists named circuit-graph snapshots.
//
// This package defines the [Store] interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable deployments
//
// Snapshots are [graphio.Graph] documents keyed by a caller-chosen name.
// Names are validated with [errors.ValidateGraphName] before touching the
// backend since they end up in file paths and database keys.
package store

import (
	"context"
	stderrors "errors"

	"github.com/mlindgren/wirecut/pkg/graphio"
)

// ErrNotFound is returned by [Store.Load] and [Store.Delete] when no graph
// with the given name exists.
var ErrNotFound = stderrors.New("graph not found")

// Store is the interface for graph snapshot backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a graph snapshot under the given name, replacing any
	// existing snapshot with that name.
	Save(ctx context.Context, name string, g graphio.Graph) error

	// Load retrieves a snapshot by name.
	// Returns ErrNotFound if no snapshot exists.
	Load(ctx context.Context, name string) (graphio.Graph, error)

	// List returns the names of all stored snapshots, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a snapshot.
	// Returns ErrNotFound if no snapshot exists.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}
