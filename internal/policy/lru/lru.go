// Package lru implements least-recently-used eviction.
package lru

import (
	"cmp"

	"github.com/discochess/hoard/internal/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy[string] = (*Policy[string])(nil)

// Policy evicts the entry whose last access is oldest.
type Policy[K cmp.Ordered] struct {
	table *policy.Table[K]
}

// New creates a new LRU policy.
func New[K cmp.Ordered]() *Policy[K] {
	return &Policy[K]{table: policy.NewTable[K]()}
}

// Name returns "lru".
func (p *Policy[K]) Name() string { return "lru" }

// RecordInsert creates the record for key.
func (p *Policy[K]) RecordInsert(key K) { p.table.Insert(key) }

// RecordAccess marks key as most recently used.
func (p *Policy[K]) RecordAccess(key K) { p.table.Touch(key) }

// RecordEviction drops the record for key.
func (p *Policy[K]) RecordEviction(key K) { p.table.Remove(key) }

// Victims returns up to n keys, least recently accessed first.
func (p *Policy[K]) Victims(n int) []K {
	return p.table.Select(n, func(a, b *policy.Record) int {
		return cmp.Compare(a.AccessSeq(), b.AccessSeq())
	})
}

// Len returns the number of tracked records.
func (p *Policy[K]) Len() int { return p.table.Len() }

// Reset drops all records.
func (p *Policy[K]) Reset() { p.table.Reset() }
