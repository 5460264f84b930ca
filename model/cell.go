package model

import (
	"cmp"
	"math"
)

const (
	// hashMultiplier is the 64-bit golden ratio constant
	hashMultiplier uint64 = 0x9e3779b97f4a7c15
)

// Cell is a single grid coordinate. Any int64 value is valid on either axis.
type Cell struct {
	X int64
	Y int64
}

// OverflowRisk reports whether computing the neighbors of (x, y) would leave
// the int64 range. Such cells are excluded from neighbor generation and never
// survive a generation.
func OverflowRisk(x, y int64) bool {
	return x == math.MinInt64 || x == math.MaxInt64 ||
		y == math.MinInt64 || y == math.MaxInt64
}

// OverflowRisk reports whether c sits on the int64 boundary
func (c Cell) OverflowRisk() bool {
	return OverflowRisk(c.X, c.Y)
}

// Neighbors returns the 8 cells at Chebyshev distance 1 from c.
// The caller must check OverflowRisk first.
func Neighbors(c Cell) [8]Cell {
	x, y := c.X, c.Y
	return [8]Cell{
		{x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1},
		{x - 1, y}, {x + 1, y},
		{x - 1, y + 1}, {x, y + 1}, {x + 1, y + 1},
	}
}

// Hash mixes both coordinates into a well distributed 64-bit value
func (c Cell) Hash() uint64 {
	h := uint64(c.X)
	h ^= uint64(c.Y) * hashMultiplier
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// Compare orders cells lexicographically by x, then y
func (c Cell) Compare(o Cell) int {
	if c.X != o.X {
		return cmp.Compare(c.X, o.X)
	}
	return cmp.Compare(c.Y, o.Y)
}

// CompareCells is Cell.Compare in a form usable by the slices package
func CompareCells(a, b Cell) int {
	return a.Compare(b)
}
