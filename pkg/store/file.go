package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mlindgren/wirecut/pkg/graphio"
)

// FileStore persists snapshots as JSON files in a directory, one file per
// graph. Suitable for CLI usage; concurrent safety relies on the atomicity
// of file replacement.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the snapshot to <dir>/<name>.json.
func (s *FileStore) Save(ctx context.Context, name string, g graphio.Graph) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0644)
}

// Load reads a snapshot by name.
func (s *FileStore) Load(ctx context.Context, name string) (graphio.Graph, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return graphio.Graph{}, ErrNotFound
	}
	if err != nil {
		return graphio.Graph{}, err
	}
	var g graphio.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return graphio.Graph{}, err
	}
	return g, nil
}

// List returns all snapshot names, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a snapshot file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
