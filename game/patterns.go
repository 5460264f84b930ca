package game

import (
	"math/rand/v2"

	"github.com/sheikhrachel/sparse-gol/model"
)

// AddGlider adds a south-east travelling glider with its box at (x, y)
func (g *Game) AddGlider(x, y int64) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}
	g.addPattern(x, y, pattern)
}

// AddBlinker adds a horizontal period-2 blinker starting at (x, y)
func (g *Game) AddBlinker(x, y int64) {
	g.addPattern(x, y, [][]bool{{true, true, true}})
}

func (g *Game) addPattern(x, y int64, pattern [][]bool) {
	for dy, row := range pattern {
		for dx, alive := range row {
			if alive {
				g.cells.Add(model.Cell{X: x + int64(dx), Y: y + int64(dy)})
			}
		}
	}
	g.history = nil
}

// Randomize fills the box with live cells at the given density, using a
// deterministic generator seeded by seed. Existing cells are kept.
func (g *Game) Randomize(seed uint64, box model.Bounds, density float64) {
	r := rand.New(rand.NewPCG(seed, 0))
	for y := box.MinY; y <= box.MaxY; y++ {
		for x := box.MinX; x <= box.MaxX; x++ {
			if r.Float64() < density {
				g.cells.Add(model.Cell{X: x, Y: y})
			}
		}
	}
	g.history = nil
}

// ResetWithInterestingPatterns clears the game and seeds a box of the given
// size with gliders, blinkers and random soup.
func (g *Game) ResetWithInterestingPatterns(seed uint64, width, height int64, density float64) {
	g.cells = model.NewAliveSet()
	g.history = nil
	g.generation = 0

	if width >= 10 && height >= 10 {
		g.AddGlider(5, 5)
		if width >= 20 && height >= 15 {
			g.AddGlider(width-8, 5)
		}

		g.AddBlinker(width/4, height/4)
		if width >= 30 {
			g.AddBlinker(3*width/4, 3*height/4)
		}
	}

	g.Randomize(seed, model.Bounds{MaxX: width - 1, MaxY: height - 1}, density)
}
