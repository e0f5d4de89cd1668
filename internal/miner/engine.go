// Package miner implements the ERMiner equivalence-class sequential
// rule mining engine (spec.md §2): a single-pass database index, size
// 1x1 seed generation, left/right equivalence expansion, and
// left-store feedback, gated by minimum support and confidence.
package miner

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/arnegrue/ermine/internal/dbfile"
)

// state is the engine's lifecycle (spec.md §4.6). Transitions are
// sequential and single-shot.
type state int

const (
	stateInit state = iota
	stateIndexed
	stateSeeded
	stateLeftExpanded
	stateRightExpanded
	stateLeftStoreExpanded
	stateDone
)

// Options configures a mining run (spec.md §6 engine construction
// parameters, plus the pruning toggle of §4.4).
type Options struct {
	MinSup  float64
	MinConf float64
	Prune   bool
}

// Engine owns the index, equivalence classes, left-store, and the
// accumulated rule output for one run. It is single-use: construct a
// fresh Engine per mining pass.
type Engine struct {
	opts  Options
	state state

	idx *index

	leftClasses  map[string][]*Rule
	rightClasses map[string][]*Rule
	leftStore    map[int]map[string][]*Rule

	// pairSupport caches |sids(a) ∩ sids(b)| for the Sparse Count
	// Matrix pruning hint of spec.md §4.4.
	pairSupport map[[2]int]int

	Rules []*Rule
}

// New constructs an Engine ready to index a database.
func New(opts Options) *Engine {
	return &Engine{
		opts:         opts,
		state:        stateInit,
		idx:          newIndex(),
		leftClasses:  make(map[string][]*Rule),
		rightClasses: make(map[string][]*Rule),
		leftStore:    make(map[int]map[string][]*Rule),
		pairSupport:  make(map[[2]int]int),
	}
}

func (e *Engine) transition(from, to state) {
	if e.state != from {
		panic(fmt.Errorf("%w: expected state %d, got %d (wanted %d)", ErrOutOfOrderTransition, from, e.state, to))
	}
	e.state = to
}

// N returns the number of retained sequences indexed so far.
func (e *Engine) N() int { return e.idx.n }

// MinSupCount returns ⌈minsup·N⌉, valid only after IndexPath.
func (e *Engine) MinSupCount() int { return e.idx.minSupCount }

// Items returns the sorted surviving (frequent) item ids.
func (e *Engine) Items() []int { return e.idx.items }

// IndexPath opens path and indexes its sequences (spec.md §4.1),
// driving INIT -> INDEXED.
func (e *Engine) IndexPath(path string) error {
	e.transition(stateInit, stateIndexed)

	reader, err := dbfile.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	defer reader.Close()

	n := 0
	var sequences [][][]int
	err = reader.Each(func(sequence [][]int, sid int) error {
		sequences = append(sequences, sequence)
		n++
		return nil
	})
	if errors.Is(err, dbfile.ErrMalformed) {
		return fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}

	e.idx.n = n
	for sid, sequence := range sequences {
		e.idx.scanSequence(sequence, sid)
	}
	e.idx.minSupCount = int(math.Ceil(e.opts.MinSup * float64(n)))
	e.idx.pruneInfrequent()
	return nil
}

// Run executes the full three-pass pipeline (spec.md §4.5, §4.6):
// seed -> left-expand -> right-expand -> left-store-expand. Classes
// are visited in sorted key order so that rule output is reproducible
// run over run for the same input and thresholds (spec.md §5), even
// though Go map iteration itself is randomized.
func (e *Engine) Run() {
	e.seed()
	e.transition(stateSeeded, stateLeftExpanded)
	for _, k := range sortedKeys(e.leftClasses) {
		e.leftSearch(e.leftClasses[k])
	}
	e.transition(stateLeftExpanded, stateRightExpanded)
	for _, k := range sortedKeys(e.rightClasses) {
		e.rightSearch(e.rightClasses[k])
	}
	e.transition(stateRightExpanded, stateLeftStoreExpanded)
	sizes := make([]int, 0, len(e.leftStore))
	for size := range e.leftStore {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		bucket := e.leftStore[size]
		for _, k := range sortedKeys(bucket) {
			if class := bucket[k]; len(class) >= 2 {
				e.leftSearch(class)
			}
		}
	}
	e.transition(stateLeftStoreExpanded, stateDone)
}

// Mine indexes path and runs the full pipeline, returning the engine
// so callers can inspect Rules, N, and MinSupCount.
func Mine(path string, opts Options) (*Engine, error) {
	e := New(opts)
	if err := e.IndexPath(path); err != nil {
		return nil, err
	}
	e.Run()
	return e, nil
}

func sortedKeys(m map[string][]*Rule) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
