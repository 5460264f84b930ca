// Package game owns the simulation state and drives an engine one
// generation at a time.
package game

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/sparse-gol/engine"
	"github.com/sheikhrachel/sparse-gol/model"
)

// historySize is how many recent fingerprints are kept for cycle detection
const historySize = 5

// ErrNegativeGenerations is returned by Run for a negative generation count
var ErrNegativeGenerations = errors.New("generation count must be non-negative")

// Game holds the alive cells and the engine that advances them
type Game struct {
	cells      model.AliveSet
	engine     engine.Engine
	generation int
	history    []uint64 // fingerprints of recent states
}

// New creates a game over a copy of cells. A nil engine selects the
// counting engine.
func New(cells model.AliveSet, eng engine.Engine) *Game {
	if eng == nil {
		eng = engine.New(engine.Counting)
	}
	return &Game{
		cells:  cells.Clone(),
		engine: eng,
	}
}

// Cells returns the current alive cells. The set must not be modified.
func (g *Game) Cells() model.AliveSet {
	return g.cells
}

// Count returns the number of alive cells
func (g *Game) Count() int {
	return g.cells.Len()
}

// Generation returns how many generations have been computed
func (g *Game) Generation() int {
	return g.generation
}

// Engine returns the engine in use
func (g *Game) Engine() engine.Engine {
	return g.engine
}

// Bounds returns the bounding box of the alive cells
func (g *Game) Bounds() (model.Bounds, bool) {
	return g.cells.Bounds()
}

// Tick advances the game by one generation
func (g *Game) Tick() {
	g.cells = g.engine.Advance(g.cells)
	g.generation++
}

// Run advances the game by n generations
func (g *Game) Run(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeGenerations, "[Run] got %d", n)
	}
	for range n {
		g.Tick()
	}
	return nil
}

// Duplicate returns an independent game with its own engine and cells
func (g *Game) Duplicate() *Game {
	return &Game{
		cells:      g.cells.Clone(),
		engine:     g.engine.Duplicate(),
		generation: g.generation,
		history:    append([]uint64(nil), g.history...),
	}
}

// UpdateHistory adds current state to history and maintains size
func (g *Game) UpdateHistory() {
	g.history = append(g.history, g.cells.Fingerprint())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three
// recorded states: a still life or an oscillator of period 2 or 3.
func (g *Game) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	current := g.cells.Fingerprint()
	for i := 1; i <= 3; i++ {
		if g.history[len(g.history)-i] == current {
			return true
		}
	}
	return false
}
