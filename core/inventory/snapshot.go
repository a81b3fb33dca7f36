package inventory

import (
	"fmt"
	"sort"
	"sync"
)

type bucket struct {
	mu    sync.RWMutex
	items map[string]Entity
	order []string
}

// Snapshot is a typed, keyed view of one inventory at a point in time.
// Buckets are guarded independently so loaders may fill different types concurrently.
type Snapshot struct {
	buckets map[Type]*bucket
}

// New returns an empty snapshot with one bucket per entity type.
func New() *Snapshot {
	s := &Snapshot{buckets: make(map[Type]*bucket, len(Order))}
	for _, t := range Order {
		s.buckets[t] = &bucket{items: make(map[string]Entity)}
	}
	return s
}

func (s *Snapshot) bucket(t Type) (*bucket, error) {
	b, ok := s.buckets[t]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", t)
	}
	return b, nil
}

// Insert derives the key of e and stores it.
// It fails with ErrKeyDerivation or ErrDuplicateKey and leaves the snapshot unchanged.
func (s *Snapshot) Insert(e Entity) (string, error) {
	key, err := e.Key()
	if err != nil {
		return "", err
	}
	b, err := s.bucket(e.EntityType())
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.items[key]; exists {
		return key, fmt.Errorf("%w: %s %q", ErrDuplicateKey, e.EntityType(), key)
	}
	b.items[key] = e
	b.order = append(b.order, key)
	return key, nil
}

// Replace swaps the stored value for an existing key. The key of e must not change.
func (s *Snapshot) Replace(e Entity) error {
	key, err := e.Key()
	if err != nil {
		return err
	}
	b, err := s.bucket(e.EntityType())
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.items[key]; !exists {
		return fmt.Errorf("%w: %s %q", ErrNotFound, e.EntityType(), key)
	}
	b.items[key] = e
	return nil
}

// Get returns the entity stored under key.
func (s *Snapshot) Get(t Type, key string) (Entity, bool) {
	b, err := s.bucket(t)
	if err != nil {
		return nil, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.items[key]
	return e, ok
}

// Has reports whether key exists in the bucket of t.
func (s *Snapshot) Has(t Type, key string) bool {
	_, ok := s.Get(t, key)
	return ok
}

// Keys returns the keys of t in sorted order.
func (s *Snapshot) Keys(t Type) []string {
	b, err := s.bucket(t)
	if err != nil {
		return nil
	}
	b.mu.RLock()
	keys := make([]string, 0, len(b.items))
	for k := range b.items {
		keys = append(keys, k)
	}
	b.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// All returns the entities of t in sorted key order.
func (s *Snapshot) All(t Type) []Entity {
	b, err := s.bucket(t)
	if err != nil {
		return nil
	}
	keys := s.Keys(t)
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entity, 0, len(keys))
	for _, k := range keys {
		out = append(out, b.items[k])
	}
	return out
}

// Inserted returns the entities of t in insertion order.
func (s *Snapshot) Inserted(t Type) []Entity {
	b, err := s.bucket(t)
	if err != nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entity, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.items[k])
	}
	return out
}

// Len returns the number of entities of t.
func (s *Snapshot) Len(t Type) int {
	b, err := s.bucket(t)
	if err != nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Types returns the entity types that hold at least one entity, in dependency order.
func (s *Snapshot) Types() []Type {
	var out []Type
	for _, t := range Order {
		if s.Len(t) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the number of entities per type.
func (s *Snapshot) Counts() map[Type]int {
	out := make(map[Type]int, len(Order))
	for _, t := range Order {
		out[t] = s.Len(t)
	}
	return out
}
