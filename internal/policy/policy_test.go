package policy

import (
	"cmp"
	"slices"
	"testing"
)

func TestSelect_TieBreaksOnKey(t *testing.T) {
	tbl := NewTable[string]()
	tbl.Insert("b")
	tbl.Insert("c")
	tbl.Insert("a")

	// A constant comparison forces every pair into the key tie-break.
	got := tbl.Select(3, func(a, b *Record) int { return 0 })
	want := []string{"a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestTouch_IncrementsCountAndSequence(t *testing.T) {
	tbl := NewTable[string]()
	tbl.Insert("k")

	r, ok := tbl.Get("k")
	if !ok {
		t.Fatal("Get() did not find inserted record")
	}
	insertSeq := r.AccessSeq()

	tbl.Touch("k")

	if r.AccessCount != 1 {
		t.Errorf("AccessCount = %d, want 1", r.AccessCount)
	}
	if r.AccessSeq() <= insertSeq {
		t.Errorf("AccessSeq() = %d, want > %d", r.AccessSeq(), insertSeq)
	}
}

func TestSelect_ReturnsAtMostN(t *testing.T) {
	tbl := NewTable[int]()
	for i := 0; i < 10; i++ {
		tbl.Insert(i)
	}

	got := tbl.Select(3, func(a, b *Record) int {
		return cmp.Compare(a.CreatedSeq(), b.CreatedSeq())
	})
	want := []int{0, 1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("Select(3) = %v, want %v", got, want)
	}
}
