// Package fifo implements first-in-first-out eviction.
package fifo

import (
	"cmp"

	"github.com/discochess/hoard/internal/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy[string] = (*Policy[string])(nil)

// Policy evicts the oldest inserted entry. Accesses do not affect ordering.
type Policy[K cmp.Ordered] struct {
	table *policy.Table[K]
}

// New creates a new FIFO policy.
func New[K cmp.Ordered]() *Policy[K] {
	return &Policy[K]{table: policy.NewTable[K]()}
}

// Name returns "fifo".
func (p *Policy[K]) Name() string { return "fifo" }

// RecordInsert creates the record for key, fixing its eviction order.
func (p *Policy[K]) RecordInsert(key K) { p.table.Insert(key) }

// RecordAccess is a no-op; FIFO ordering is fixed at insertion.
func (p *Policy[K]) RecordAccess(key K) {}

// RecordEviction drops the record for key.
func (p *Policy[K]) RecordEviction(key K) { p.table.Remove(key) }

// Victims returns up to n keys, oldest insertion first.
func (p *Policy[K]) Victims(n int) []K {
	return p.table.Select(n, func(a, b *policy.Record) int {
		return cmp.Compare(a.CreatedSeq(), b.CreatedSeq())
	})
}

// Len returns the number of tracked records.
func (p *Policy[K]) Len() int { return p.table.Len() }

// Reset drops all records.
func (p *Policy[K]) Reset() { p.table.Reset() }
