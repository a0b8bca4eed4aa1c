// Package index provides the in-memory mapping from normalized keys to
// source-name occurrences used for exact lookup and fuzzy candidate search.
package index

import (
	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

// Index maps a normalized key to the positions of every source occurrence
// carrying it. It is built once per run and only read during matching.
type Index struct {
	names     []domain.RawName
	keys      []string // key of names[i]
	positions map[string][]int
	unique    []string // unique keys in first-seen order
}

// Build derives a key for every raw name with the given normalizer and
// indexes the occurrences. An empty input yields an empty, usable index.
func Build(names []domain.RawName, norm ports.Normalizer) *Index {
	idx := &Index{
		names:     names,
		keys:      make([]string, len(names)),
		positions: make(map[string][]int, len(names)),
	}
	for i, n := range names {
		k := norm.Normalize(n.Name)
		idx.keys[i] = k
		if _, seen := idx.positions[k]; !seen {
			idx.unique = append(idx.unique, k)
		}
		idx.positions[k] = append(idx.positions[k], i)
	}
	return idx
}

// Lookup returns the occurrence positions carrying the key, or nil.
func (idx *Index) Lookup(key string) []int {
	return idx.positions[key]
}

// UniqueKeys returns the distinct keys in first-seen order; they are the
// candidate set for fuzzy search.
func (idx *Index) UniqueKeys() []string {
	return idx.unique
}

// Name returns the raw name occurrence at position i.
func (idx *Index) Name(i int) domain.RawName {
	return idx.names[i]
}

// Key returns the normalized key of the occurrence at position i.
func (idx *Index) Key(i int) string {
	return idx.keys[i]
}

// Len returns the number of indexed occurrences.
func (idx *Index) Len() int {
	return len(idx.names)
}
