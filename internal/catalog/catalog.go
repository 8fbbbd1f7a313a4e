// Package catalog maintains a TOML file of named corpora so commands can
// refer to a corpus by a short name instead of a directory path.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is the conventional location for the corpus catalog.
const DefaultPath = ".magnetar/corpora.toml"

// ErrDuplicateName is returned when adding a corpus under a name already taken.
var ErrDuplicateName = errors.New("corpus name already in catalog")

// ErrNotFound is returned when a named corpus is not in the catalog.
var ErrNotFound = errors.New("corpus not in catalog")

// Entry is one named corpus.
type Entry struct {
	Name    string    `toml:"name"`
	Dir     string    `toml:"dir"`
	AddedAt time.Time `toml:"added_at"`
}

// Catalog is the set of named corpora known to this workspace.
type Catalog struct {
	Corpora []Entry `toml:"corpora"`
}

// Load reads a catalog from the given path. If the file does not exist, it
// returns an empty catalog and no error, allowing callers to proceed.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}

	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the catalog to the given path, creating parent directories as
// needed. Entries are kept sorted by name so the file diffs cleanly.
func Save(path string, c *Catalog) error {
	sort.Slice(c.Corpora, func(i, j int) bool {
		return c.Corpora[i].Name < c.Corpora[j].Name
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("catalog: creating directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("catalog: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("catalog: writing %s: %w", path, err)
	}
	return nil
}

// Add registers dir under name. Returns ErrDuplicateName if the name is taken.
func (c *Catalog) Add(name, dir string) error {
	for _, e := range c.Corpora {
		if e.Name == name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	c.Corpora = append(c.Corpora, Entry{Name: name, Dir: dir, AddedAt: time.Now().UTC()})
	return nil
}

// Remove deletes the entry with the given name. Returns ErrNotFound if absent.
func (c *Catalog) Remove(name string) error {
	for i, e := range c.Corpora {
		if e.Name == name {
			c.Corpora = append(c.Corpora[:i], c.Corpora[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Resolve maps a corpus argument to a directory: a catalog name resolves to
// its registered directory, anything else is treated as a path as given.
func (c *Catalog) Resolve(nameOrPath string) string {
	for _, e := range c.Corpora {
		if e.Name == nameOrPath {
			return e.Dir
		}
	}
	return nameOrPath
}
