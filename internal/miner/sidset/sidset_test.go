package sidset

import "testing"

func TestIntersectUnion(t *testing.T) {
	a := FromSlice(10, []int{0, 1, 3, 7})
	b := FromSlice(10, []int{1, 3, 4})

	inter := a.Intersect(b)
	if got, want := inter.Slice(), []int{1, 3}; !equal(got, want) {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	union := a.Union(b)
	if got, want := union.Slice(), []int{0, 1, 3, 4, 7}; !equal(got, want) {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestLenAndContains(t *testing.T) {
	s := FromSlice(130, []int{0, 64, 129})
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	for _, sid := range []int{0, 64, 129} {
		if !s.Contains(sid) {
			t.Errorf("Contains(%d) = false, want true", sid)
		}
	}
	if s.Contains(1) {
		t.Error("Contains(1) = true, want false")
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
