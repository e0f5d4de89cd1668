package miner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arnegrue/ermine/internal/miner/sidset"
)

// Rule is an immutable-in-shape sequential rule antecedent => consequent
// (spec.md §4.2). It is never mutated after sids/anteSids are populated,
// except for the late assignment of confidence when it first qualifies
// for output.
type Rule struct {
	Antecedent map[int]struct{}
	Consequent map[int]struct{}

	// sids is the set of sequence ids where the rule holds (the
	// temporal predicate is satisfied).
	sids *sidset.Set
	// anteSids is the set of sequence ids where every antecedent item
	// occurs, antecedent temporality ignored.
	anteSids *sidset.Set

	SupportCount int
	Confidence   float64
	hasConfidence bool
}

func newRule(ante, cons map[int]struct{}, sids, anteSids *sidset.Set) *Rule {
	return &Rule{
		Antecedent:   ante,
		Consequent:   cons,
		sids:         sids,
		anteSids:     anteSids,
		SupportCount: sids.Len(),
	}
}

// Sids exposes the rule's supporting sequence ids.
func (r *Rule) Sids() *sidset.Set { return r.sids }

// AnteSids exposes the antecedent's supporting sequence ids.
func (r *Rule) AnteSids() *sidset.Set { return r.anteSids }

// HasConfidence reports whether confidence has been computed and the
// rule qualified for output.
func (r *Rule) HasConfidence() bool { return r.hasConfidence }

func (r *Rule) setConfidence(c float64) {
	r.Confidence = c
	r.hasConfidence = true
}

func itemSet(items ...int) map[int]struct{} {
	out := make(map[int]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

func unionItems(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func sortedItems(s map[int]struct{}) []int {
	out := make([]int, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// String renders the rule exactly as SPEC_FULL.md §6.4 requires:
// "{a1, ...} => {c1, ...}, support=<count>, confidence=<float>".
func (r *Rule) String() string {
	return fmt.Sprintf("{%s} => {%s}, support=%d, confidence=%v",
		joinItems(sortedItems(r.Antecedent)),
		joinItems(sortedItems(r.Consequent)),
		r.SupportCount,
		r.Confidence,
	)
}

func joinItems(items []int) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%d", it)
	}
	return strings.Join(parts, ", ")
}
