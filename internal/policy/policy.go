// Package policy defines the eviction policy interface and the shared
// per-key record table that policy implementations build on.
package policy

import (
	"cmp"
	"slices"
	"time"
)

// Policy decides which entries to remove when the cache exceeds capacity.
// Implementations are not safe for concurrent use; the cache core serializes
// all calls under its lock.
type Policy[K cmp.Ordered] interface {
	// Name returns the policy name (e.g. "lru").
	Name() string

	// RecordInsert creates the bookkeeping record for a newly admitted key.
	// Any existing record for the key is replaced.
	RecordInsert(key K)

	// RecordAccess updates the record for a cache hit.
	RecordAccess(key K)

	// RecordEviction removes the record for a key leaving the cache.
	RecordEviction(key K)

	// Victims returns up to n eviction candidates, most evictable first.
	Victims(n int) []K

	// Len returns the number of tracked records.
	Len() int

	// Reset drops all records.
	Reset()
}

// Record is the per-key bookkeeping a policy maintains.
//
// The sequence counters mirror the timestamps but are strictly monotonic, so
// orderings stay total even when the wall clock is too coarse to distinguish
// two operations.
type Record struct {
	CreatedAt    time.Time
	LastAccessAt time.Time
	AccessCount  uint64

	createdSeq uint64
	accessSeq  uint64
}

// CreatedSeq returns the monotonic insertion sequence number.
func (r *Record) CreatedSeq() uint64 { return r.createdSeq }

// AccessSeq returns the monotonic sequence number of the last access.
func (r *Record) AccessSeq() uint64 { return r.accessSeq }

// Table is a record table shared by the policy implementations. Each policy
// supplies its own victim ordering; the table owns record lifecycle.
type Table[K cmp.Ordered] struct {
	records map[K]*Record
	seq     uint64
}

// NewTable creates an empty record table.
func NewTable[K cmp.Ordered]() *Table[K] {
	return &Table[K]{records: make(map[K]*Record)}
}

// Insert creates (or replaces) the record for key.
func (t *Table[K]) Insert(key K) {
	t.seq++
	now := time.Now()
	t.records[key] = &Record{
		CreatedAt:    now,
		LastAccessAt: now,
		createdSeq:   t.seq,
		accessSeq:    t.seq,
	}
}

// Touch updates access bookkeeping for key. Unknown keys are ignored.
func (t *Table[K]) Touch(key K) {
	r, ok := t.records[key]
	if !ok {
		return
	}
	t.seq++
	r.LastAccessAt = time.Now()
	r.AccessCount++
	r.accessSeq = t.seq
}

// Remove deletes the record for key.
func (t *Table[K]) Remove(key K) {
	delete(t.records, key)
}

// Len returns the number of records.
func (t *Table[K]) Len() int {
	return len(t.records)
}

// Reset drops all records.
func (t *Table[K]) Reset() {
	t.records = make(map[K]*Record)
}

// Get returns the record for key, if tracked.
func (t *Table[K]) Get(key K) (*Record, bool) {
	r, ok := t.records[key]
	return r, ok
}

// Select returns up to n keys ordered by less, most evictable first.
// Ties fall through to ascending key order so selection is deterministic.
func (t *Table[K]) Select(n int, less func(a, b *Record) int) []K {
	if n <= 0 || len(t.records) == 0 {
		return nil
	}

	keys := make([]K, 0, len(t.records))
	for k := range t.records {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b K) int {
		if c := less(t.records[a], t.records[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	if n < len(keys) {
		keys = keys[:n]
	}
	return keys
}
