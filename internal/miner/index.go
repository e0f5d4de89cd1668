package miner

import (
	"sort"

	"github.com/arnegrue/ermine/internal/miner/sidset"
)

// index holds the per-item database index built in one pass
// (spec.md §4.1): sequence-id sets and first/last itemset positions,
// restricted after pruning to items meeting minSupCount.
type index struct {
	n           int // retained sequence count N
	minSupCount int

	sids  map[int]*sidset.Set
	first map[int]map[int]int // item -> sid -> first itemset index
	last  map[int]map[int]int // item -> sid -> last itemset index

	items []int // sorted surviving item ids
}

func newIndex() *index {
	return &index{
		sids:  make(map[int]*sidset.Set),
		first: make(map[int]map[int]int),
		last:  make(map[int]map[int]int),
	}
}

// scanSequence records first/last occurrence of every item of a single
// retained sequence and adds sid to that item's sequence-id set.
func (ix *index) scanSequence(sequence [][]int, sid int) {
	for j, itemset := range sequence {
		for _, item := range itemset {
			if ix.sids[item] == nil {
				ix.sids[item] = sidset.New(ix.n)
				ix.first[item] = make(map[int]int)
				ix.last[item] = make(map[int]int)
			}
			ix.sids[item].Add(sid)
			ix.last[item][sid] = j
			if _, ok := ix.first[item][sid]; !ok {
				ix.first[item][sid] = j
			}
		}
	}
}

// pruneInfrequent discards every item whose support is below
// minSupCount, along with its first/last maps (spec.md §4.1).
func (ix *index) pruneInfrequent() {
	for item, s := range ix.sids {
		if s.Len() < ix.minSupCount {
			delete(ix.sids, item)
			delete(ix.first, item)
			delete(ix.last, item)
			continue
		}
		ix.items = append(ix.items, item)
	}
	sort.Ints(ix.items)
}
