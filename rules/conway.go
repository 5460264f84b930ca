package rules

const (
	// BirthNeighbors is the neighbor count that brings a dead cell to life
	BirthNeighbors = 3
	// SurviveNeighbors is the extra neighbor count that keeps a live cell alive
	SurviveNeighbors = 2
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A cell is alive in the next generation iff it has exactly 3 live neighbors,
or it is alive now and has exactly 2: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return neighbors == BirthNeighbors || (alive && neighbors == SurviveNeighbors)
}
