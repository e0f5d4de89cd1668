package miner

// leftSearch recursively merges pairs of rules sharing the same
// antecedent, growing the consequent (spec.md §4.4 recursion schema).
func (e *Engine) leftSearch(class []*Rule) {
	for i := range class {
		var child []*Rule
		for j := i + 1; j < len(class); j++ {
			if r := e.leftMerge(class[i], class[j]); r != nil {
				child = append(child, r)
			}
		}
		if len(child) > 0 {
			e.leftSearch(child)
		}
	}
}

// leftMerge merges rS and rR from the same left class into
// (A => CS∪CR) per the left merge contract (spec.md §4.4).
func (e *Engine) leftMerge(rS, rR *Rule) *Rule {
	if e.opts.Prune && prunedBySparseMatrix(e.pairSupport, rS.Consequent, rR.Consequent, e.idx.minSupCount) {
		return nil
	}

	sids := rS.Sids().Intersect(rR.Sids())
	if sids.Len() < e.idx.minSupCount {
		return nil
	}

	merged := newRule(rS.Antecedent, unionItems(rS.Consequent, rR.Consequent), sids, rS.AnteSids())
	e.checkConfidence(merged, sids, rS.AnteSids())
	return merged
}

// rightSearch recursively merges pairs of rules sharing the same
// consequent, growing the antecedent (spec.md §4.4 recursion schema).
func (e *Engine) rightSearch(class []*Rule) {
	for i := range class {
		var child []*Rule
		for j := i + 1; j < len(class); j++ {
			if r := e.rightMerge(class[i], class[j]); r != nil {
				child = append(child, r)
			}
		}
		if len(child) > 0 {
			e.rightSearch(child)
		}
	}
}

// rightMerge merges rS and rR from the same right class into
// (AS∪AR => C) per the right merge contract (spec.md §4.4), and feeds
// the result into the left-store keyed by its new antecedent.
func (e *Engine) rightMerge(rS, rR *Rule) *Rule {
	if e.opts.Prune && prunedBySparseMatrix(e.pairSupport, rS.Antecedent, rR.Antecedent, e.idx.minSupCount) {
		return nil
	}

	sids := rS.Sids().Intersect(rR.Sids())
	if sids.Len() < e.idx.minSupCount {
		return nil
	}

	anteSids := rS.AnteSids().Intersect(rR.AnteSids())
	ante := unionItems(rS.Antecedent, rR.Antecedent)
	merged := newRule(ante, rS.Consequent, sids, anteSids)
	e.checkConfidence(merged, sids, anteSids)

	size := len(ante)
	if e.leftStore[size] == nil {
		e.leftStore[size] = make(map[string][]*Rule)
	}
	k := key(ante)
	e.leftStore[size][k] = append(e.leftStore[size][k], merged)

	return merged
}

// prunedBySparseMatrix implements the optional Sparse Count Matrix
// hint (spec.md §4.4): if the symmetric difference of the two growing
// sides has exactly two items {u,v} and |sids(u) ∩ sids(v)| is below
// minsup, the merge can never meet support and is skipped without
// computing the real intersection.
func prunedBySparseMatrix(pairSupport map[[2]int]int, a, b map[int]struct{}, minSupCount int) bool {
	diff := symmetricDifference(a, b)
	if len(diff) != 2 {
		return false
	}
	items := sortedItems(diff)
	support, ok := pairSupport[pairKey(items[0], items[1])]
	if !ok {
		return false
	}
	return support < minSupCount
}

func symmetricDifference(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for k := range a {
		if _, inB := b[k]; !inB {
			out[k] = struct{}{}
		}
	}
	for k := range b {
		if _, inA := a[k]; !inA {
			out[k] = struct{}{}
		}
	}
	return out
}
