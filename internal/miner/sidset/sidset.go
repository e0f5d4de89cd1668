// Package sidset implements a dense bitset over sequence ids.
//
// Sids are small non-negative integers in [0, N) (spec: §9 design
// notes), so a word-sliced bitset beats a hash set both in memory and
// in intersection speed, which is the hot path of the whole miner.
package sidset

import "math/bits"

const wordBits = 64

// Set is a fixed-universe bitset over sids in [0, n).
type Set struct {
	words []uint64
	n     int
}

// New returns an empty set over the universe [0, n).
func New(n int) *Set {
	return &Set{words: make([]uint64, (n+wordBits-1)/wordBits), n: n}
}

// FromSlice builds a set containing exactly the given sids.
func FromSlice(n int, sids []int) *Set {
	s := New(n)
	for _, sid := range sids {
		s.Add(sid)
	}
	return s
}

// Add inserts sid into the set.
func (s *Set) Add(sid int) {
	s.words[sid/wordBits] |= 1 << uint(sid%wordBits)
}

// Contains reports whether sid is a member.
func (s *Set) Contains(sid int) bool {
	return s.words[sid/wordBits]&(1<<uint(sid%wordBits)) != 0
}

// Len returns the number of members.
func (s *Set) Len() int {
	count := 0
	for _, w := range s.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Intersect returns a new set containing members of both s and other.
func (s *Set) Intersect(other *Set) *Set {
	out := New(s.n)
	for i := range out.words {
		out.words[i] = s.words[i] & other.words[i]
	}
	return out
}

// Union returns a new set containing members of either s or other.
func (s *Set) Union(other *Set) *Set {
	out := New(s.n)
	for i := range out.words {
		out.words[i] = s.words[i] | other.words[i]
	}
	return out
}

// Each calls fn for every member sid in ascending order.
func (s *Set) Each(fn func(sid int)) {
	for wordIdx, w := range s.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			fn(wordIdx*wordBits + bit)
			w &= w - 1
		}
	}
}

// Slice returns the members as a sorted slice.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.Len())
	s.Each(func(sid int) { out = append(out, sid) })
	return out
}
