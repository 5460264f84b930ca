package engine

import (
	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/rules"
)

// countingEngine is the reference engine: every alive cell increments a
// counter for each of its neighbors, then the rule is applied per counter.
type countingEngine struct {
	opts   options
	counts *model.CountPool
}

func newCountingEngine(o options) *countingEngine {
	return &countingEngine{opts: o, counts: model.NewCountPool()}
}

// Advance computes the next generation by hash-accumulated neighbor counts
func (e *countingEngine) Advance(cells model.AliveSet) model.AliveSet {
	counts := e.counts.Get()
	defer e.counts.Put(counts)

	for c := range cells {
		if c.OverflowRisk() {
			continue
		}
		for _, n := range model.Neighbors(c) {
			counts[n]++
		}
	}

	next := make(model.AliveSet, len(cells))
	for c, n := range counts {
		if c.OverflowRisk() {
			continue
		}
		if rules.ApplyConwayRules(int(n), cells.Has(c)) {
			next.Add(c)
		}
	}
	return next
}

func (e *countingEngine) Duplicate() Engine {
	return newCountingEngine(e.opts)
}

func (e *countingEngine) Kind() Kind {
	return Counting
}
