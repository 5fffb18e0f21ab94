// Package entrystore provides the bounded key-to-entry mapping with
// incremental weight accounting used by the cache core.
package entrystore

import (
	"cmp"
	"time"
)

// Entry holds a cached value and its accounting metadata.
type Entry[V any] struct {
	Value        V
	Weight       int64
	CreatedAt    time.Time
	LastAccessAt time.Time
	AccessCount  uint64
}

// Store maps keys to entries and tracks the total weight of all resident
// entries. It is not safe for concurrent use; the cache core serializes
// access under its lock.
type Store[K cmp.Ordered, V any] struct {
	entries     map[K]*Entry[V]
	totalWeight int64
}

// New creates an empty store.
func New[K cmp.Ordered, V any]() *Store[K, V] {
	return &Store[K, V]{entries: make(map[K]*Entry[V])}
}

// Get returns the entry for key, if present.
func (s *Store[K, V]) Get(key K) (*Entry[V], bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Touch updates access bookkeeping for a hit on key.
func (s *Store[K, V]) Touch(key K) {
	if e, ok := s.entries[key]; ok {
		e.LastAccessAt = time.Now()
		e.AccessCount++
	}
}

// Put inserts or replaces the entry for key and adjusts the total weight.
// When replacing, the previous entry is returned so the caller can release
// associated bookkeeping.
func (s *Store[K, V]) Put(key K, value V, weight int64) (prev *Entry[V], replaced bool) {
	if old, ok := s.entries[key]; ok {
		prev, replaced = old, true
		s.totalWeight -= old.Weight
	}
	now := time.Now()
	s.entries[key] = &Entry[V]{
		Value:        value,
		Weight:       weight,
		CreatedAt:    now,
		LastAccessAt: now,
	}
	s.totalWeight += weight
	return prev, replaced
}

// Delete removes the entry for key and adjusts the total weight.
func (s *Store[K, V]) Delete(key K) (*Entry[V], bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	delete(s.entries, key)
	s.totalWeight -= e.Weight
	return e, true
}

// Each calls fn for every resident entry. fn must not mutate the store.
func (s *Store[K, V]) Each(fn func(key K, e *Entry[V])) {
	for k, e := range s.entries {
		fn(k, e)
	}
}

// Clear removes all entries and resets the total weight.
func (s *Store[K, V]) Clear() {
	s.entries = make(map[K]*Entry[V])
	s.totalWeight = 0
}

// Len returns the number of resident entries.
func (s *Store[K, V]) Len() int {
	return len(s.entries)
}

// TotalWeight returns the sum of weights over all resident entries.
func (s *Store[K, V]) TotalWeight() int64 {
	return s.totalWeight
}
