package model

import (
	"maps"
	"slices"
)

// AliveSet is the set of currently alive cells, the only state carried from
// one generation to the next. Iteration order is unspecified; use Sorted when
// a reproducible order is needed.
type AliveSet map[Cell]struct{}

// Bounds is an inclusive bounding box
type Bounds struct {
	MinX, MaxX int64
	MinY, MaxY int64
}

// NewAliveSet creates a set holding the given cells
func NewAliveSet(cells ...Cell) AliveSet {
	s := make(AliveSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add marks c alive
func (s AliveSet) Add(c Cell) {
	s[c] = struct{}{}
}

// Remove marks c dead
func (s AliveSet) Remove(c Cell) {
	delete(s, c)
}

// Has reports whether c is alive
func (s AliveSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of alive cells
func (s AliveSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of s
func (s AliveSet) Clone() AliveSet {
	if s == nil {
		return AliveSet{}
	}
	return maps.Clone(s)
}

// Equal reports whether both sets hold exactly the same cells
func (s AliveSet) Equal(o AliveSet) bool {
	if len(s) != len(o) {
		return false
	}
	for c := range s {
		if _, ok := o[c]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the cells in lexicographic (x, then y) order
func (s AliveSet) Sorted() []Cell {
	cells := slices.Collect(maps.Keys(s))
	slices.SortFunc(cells, CompareCells)
	return cells
}

// Bounds returns the bounding box of the set; ok is false when it is empty
func (s AliveSet) Bounds() (b Bounds, ok bool) {
	for c := range s {
		if !ok {
			b = Bounds{MinX: c.X, MaxX: c.X, MinY: c.Y, MaxY: c.Y}
			ok = true
			continue
		}
		b.MinX = min(b.MinX, c.X)
		b.MaxX = max(b.MaxX, c.X)
		b.MinY = min(b.MinY, c.Y)
		b.MaxY = max(b.MaxY, c.Y)
	}
	return b, ok
}

// Fingerprint returns an order-independent digest of the set. Equal sets
// always share a fingerprint; distinct sets collide only by chance.
func (s AliveSet) Fingerprint() uint64 {
	var sum, xor uint64
	for c := range s {
		h := c.Hash()
		sum += h
		xor ^= h * hashMultiplier
	}
	return sum ^ (xor << 1) ^ uint64(len(s))
}
