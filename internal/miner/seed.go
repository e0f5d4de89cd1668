package miner

import (
	"strconv"
	"strings"

	"github.com/arnegrue/ermine/internal/miner/sidset"
)

// seed generates the size 1x1 seed rules (spec.md §4.3), driving
// INDEXED -> SEEDED.
func (e *Engine) seed() {
	e.transition(stateIndexed, stateSeeded)

	items := e.idx.items
	for ii, i := range items {
		for _, j := range items[ii+1:] {
			common := e.idx.sids[i].Intersect(e.idx.sids[j])
			if e.opts.Prune {
				e.pairSupport[pairKey(i, j)] = common.Len()
			}
			if common.Len() < e.idx.minSupCount {
				continue
			}

			sidsIJ, sidsJI := e.ruleSequences(common, i, j)
			e.buildSeedRule(i, j, sidsIJ)
			e.buildSeedRule(j, i, sidsJI)
		}
	}
}

// ruleSequences partitions the common sids of i and j into the sids
// witnessing i=>j ("first(i,s) < last(j,s)") and j=>i, in one pass
// (spec.md §4.3 step 2).
func (e *Engine) ruleSequences(common *sidset.Set, i, j int) (ij, ji *sidset.Set) {
	ij = sidset.New(e.idx.n)
	ji = sidset.New(e.idx.n)
	common.Each(func(sid int) {
		if e.idx.first[i][sid] < e.idx.last[j][sid] {
			ij.Add(sid)
		}
		if e.idx.first[j][sid] < e.idx.last[i][sid] {
			ji.Add(sid)
		}
	})
	return ij, ji
}

// buildSeedRule installs the candidate rule {ante}=>{cons} if it meets
// minsup, and emits it if it also meets minconf (spec.md §4.3 step 3).
func (e *Engine) buildSeedRule(ante, cons int, sids *sidset.Set) {
	if sids.Len() < e.idx.minSupCount {
		return
	}
	anteSids := e.idx.sids[ante]
	r := newRule(itemSet(ante), itemSet(cons), sids, anteSids)

	leftKey := key(r.Antecedent)
	rightKey := key(r.Consequent)
	e.leftClasses[leftKey] = append(e.leftClasses[leftKey], r)
	e.rightClasses[rightKey] = append(e.rightClasses[rightKey], r)

	e.checkConfidence(r, sids, anteSids)
}

// checkConfidence computes confidence as support/anteSids.Len() and
// emits r if it clears MinConf. anteSids is the indexed item's own sid
// set at seed time, always non-empty, but an equivalence-class merge
// (expand.go) passes the intersection of two rules' antecedent sid
// sets, which can be empty when the two antecedents never co-occur in
// any sequence — reachable at minsup=0, not an invariant violation, so
// it is skipped rather than treated as a fatal assertion.
func (e *Engine) checkConfidence(r *Rule, sids, anteSids *sidset.Set) {
	if anteSids.Len() == 0 {
		return
	}
	confidence := float64(sids.Len()) / float64(anteSids.Len())
	if confidence >= e.opts.MinConf {
		r.setConfidence(confidence)
		e.Rules = append(e.Rules, r)
	}
}

func pairKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// key produces a canonical equivalence-class key for an item set.
func key(items map[int]struct{}) string {
	sorted := sortedItems(items)
	parts := make([]string, len(sorted))
	for i, it := range sorted {
		parts[i] = strconv.Itoa(it)
	}
	return strings.Join(parts, ",")
}
