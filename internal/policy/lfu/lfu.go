// Package lfu implements least-frequently-used eviction.
package lfu

import (
	"cmp"

	"github.com/discochess/hoard/internal/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy[string] = (*Policy[string])(nil)

// Policy evicts the entry with the lowest access count, breaking ties in
// favor of the older last access.
type Policy[K cmp.Ordered] struct {
	table *policy.Table[K]
}

// New creates a new LFU policy.
func New[K cmp.Ordered]() *Policy[K] {
	return &Policy[K]{table: policy.NewTable[K]()}
}

// Name returns "lfu".
func (p *Policy[K]) Name() string { return "lfu" }

// RecordInsert creates the record for key with a zero access count.
func (p *Policy[K]) RecordInsert(key K) { p.table.Insert(key) }

// RecordAccess increments the access count for key.
func (p *Policy[K]) RecordAccess(key K) { p.table.Touch(key) }

// RecordEviction drops the record for key.
func (p *Policy[K]) RecordEviction(key K) { p.table.Remove(key) }

// Victims returns up to n keys, least frequently accessed first.
func (p *Policy[K]) Victims(n int) []K {
	return p.table.Select(n, func(a, b *policy.Record) int {
		if c := cmp.Compare(a.AccessCount, b.AccessCount); c != 0 {
			return c
		}
		return cmp.Compare(a.AccessSeq(), b.AccessSeq())
	})
}

// Len returns the number of tracked records.
func (p *Policy[K]) Len() int { return p.table.Len() }

// Reset drops all records.
func (p *Policy[K]) Reset() { p.table.Reset() }
