package lfu

import (
	"slices"
	"testing"
)

func TestVictims_OrdersByFrequency(t *testing.T) {
	p := New[string]()
	p.RecordInsert("a")
	p.RecordInsert("b")
	p.RecordInsert("c")

	p.RecordAccess("a")
	p.RecordAccess("a")
	p.RecordAccess("c")

	got := p.Victims(3)
	want := []string{"b", "c", "a"}
	if !slices.Equal(got, want) {
		t.Errorf("Victims(3) = %v, want %v", got, want)
	}
}

func TestVictims_TieBrokenByRecency(t *testing.T) {
	p := New[string]()
	p.RecordInsert("a")
	p.RecordInsert("b")

	// Equal counts; b was accessed more recently, so a goes first.
	p.RecordAccess("a")
	p.RecordAccess("b")

	got := p.Victims(2)
	want := []string{"a", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("Victims(2) = %v, want %v", got, want)
	}
}

func TestRecordAccess_UnknownKeyIgnored(t *testing.T) {
	p := New[string]()
	p.RecordAccess("ghost")

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}
