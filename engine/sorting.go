package engine

import (
	"slices"

	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/rules"
)

// sortingEngine counts neighbors without hashing: neighbor candidates are
// sorted so equal coordinates form runs whose length is the neighbor count.
type sortingEngine struct {
	opts options

	// scratch reused across calls, never handed out
	alive      []model.Cell
	candidates []model.Cell
}

func newSortingEngine(o options) *sortingEngine {
	return &sortingEngine{opts: o}
}

// Advance computes the next generation by sort and run-length counting
func (e *sortingEngine) Advance(cells model.AliveSet) model.AliveSet {
	e.alive = e.alive[:0]
	for c := range cells {
		e.alive = append(e.alive, c)
	}
	slices.SortFunc(e.alive, model.CompareCells)

	e.candidates = slices.Grow(e.candidates[:0], 8*len(e.alive))
	for _, c := range e.alive {
		if c.OverflowRisk() {
			continue
		}
		n := model.Neighbors(c)
		e.candidates = append(e.candidates, n[:]...)
	}
	slices.SortFunc(e.candidates, model.CompareCells)

	next := make(model.AliveSet, len(cells))
	for i := 0; i < len(e.candidates); {
		current := e.candidates[i]
		run := 1
		for i+run < len(e.candidates) && e.candidates[i+run] == current {
			run++
		}
		i += run

		if run != rules.BirthNeighbors && run != rules.SurviveNeighbors {
			continue
		}
		if current.OverflowRisk() {
			continue
		}
		alive := false
		if run == rules.SurviveNeighbors {
			_, alive = slices.BinarySearchFunc(e.alive, current, model.CompareCells)
		}
		if rules.ApplyConwayRules(run, alive) {
			next.Add(current)
		}
	}
	return next
}

func (e *sortingEngine) Duplicate() Engine {
	return newSortingEngine(e.opts)
}

func (e *sortingEngine) Kind() Kind {
	return Sorting
}
