package engine

import (
	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/rules"
)

// nodeID is a handle to a node inside one arena. It is meaningless outside
// the arena that produced it and after that arena is reset.
type nodeID uint32

// noNode marks an absent child or an uncomputed successor
const noNode nodeID = 0

// maxRetainedNodes bounds the capacity an arena keeps across resets
const maxRetainedNodes = 1 << 20

// quadNode covers a 2^level square. Level 0 nodes are single cells.
type quadNode struct {
	level          uint8
	pop            int64
	nw, ne, sw, se nodeID
	// next is the centre square advanced one generation, filled at most once
	next nodeID
}

type nodeKey struct {
	level          uint8
	nw, ne, sw, se nodeID
}

// arena owns every quadtree node built during one Advance call. join is the
// only way to create an interior node, so structurally equal squares always
// share one nodeID.
type arena struct {
	nodes []quadNode
	canon map[nodeKey]nodeID
	empty []nodeID // all-dead node per level

	dead, alive nodeID
}

func newArena() *arena {
	a := &arena{canon: make(map[nodeKey]nodeID)}
	a.reset()
	return a
}

// reset drops every node. Handles from before the reset must not be used.
func (a *arena) reset() {
	if cap(a.nodes) > maxRetainedNodes {
		a.nodes = nil
		a.canon = make(map[nodeKey]nodeID)
	} else {
		a.nodes = a.nodes[:0]
		clear(a.canon)
	}
	a.empty = a.empty[:0]

	a.nodes = append(a.nodes, quadNode{})
	a.dead = a.alloc(quadNode{})
	a.alive = a.alloc(quadNode{pop: 1})
	a.empty = append(a.empty, a.dead)
}

// size returns the number of live nodes, leaves included
func (a *arena) size() int {
	return len(a.nodes) - 1
}

func (a *arena) alloc(n quadNode) nodeID {
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

func (a *arena) leaf(alive bool) nodeID {
	if alive {
		return a.alive
	}
	return a.dead
}

// join returns the canonical node with the given same-level children
func (a *arena) join(nw, ne, sw, se nodeID) nodeID {
	key := nodeKey{level: a.nodes[nw].level + 1, nw: nw, ne: ne, sw: sw, se: se}
	if id, ok := a.canon[key]; ok {
		return id
	}
	id := a.alloc(quadNode{
		level: key.level,
		pop:   a.nodes[nw].pop + a.nodes[ne].pop + a.nodes[sw].pop + a.nodes[se].pop,
		nw:    nw,
		ne:    ne,
		sw:    sw,
		se:    se,
	})
	a.canon[key] = id
	return id
}

// emptyNode returns the all-dead node of the given level
func (a *arena) emptyNode(level int) nodeID {
	for len(a.empty) <= level {
		sub := a.empty[len(a.empty)-1]
		a.empty = append(a.empty, a.join(sub, sub, sub, sub))
	}
	return a.empty[level]
}

// build creates the node for the 2^level square at (x, y). cells holds
// exactly the alive cells inside that square and is reordered in place.
func (a *arena) build(cells []model.Cell, x, y int64, level int) nodeID {
	if len(cells) == 0 {
		return a.emptyNode(level)
	}
	if level == 0 {
		return a.alive
	}

	half := int64(1) << (level - 1)
	midX, midY := x+half, y+half

	w := partition(cells, func(c model.Cell) bool { return c.X < midX })
	west, east := cells[:w], cells[w:]
	wn := partition(west, func(c model.Cell) bool { return c.Y < midY })
	en := partition(east, func(c model.Cell) bool { return c.Y < midY })

	return a.join(
		a.build(west[:wn], x, y, level-1),
		a.build(east[:en], midX, y, level-1),
		a.build(west[wn:], x, midY, level-1),
		a.build(east[en:], midX, midY, level-1),
	)
}

// partition moves the cells matching keep to the front and returns their count
func partition(cells []model.Cell, keep func(model.Cell) bool) int {
	i := 0
	for j := range cells {
		if keep(cells[j]) {
			cells[i], cells[j] = cells[j], cells[i]
			i++
		}
	}
	return i
}

// expand surrounds a node with a dead border, doubling its side. The old
// node becomes the centre, so the origin moves by half the old side.
func (a *arena) expand(id nodeID) nodeID {
	n := a.nodes[id]
	e := a.emptyNode(int(n.level) - 1)
	return a.join(
		a.join(e, e, e, n.nw),
		a.join(e, e, n.ne, e),
		a.join(e, n.sw, e, e),
		a.join(n.se, e, e, e),
	)
}

// centre returns the middle half-size square of a node, unchanged
func (a *arena) centre(id nodeID) nodeID {
	n := a.nodes[id]
	return a.join(
		a.nodes[n.nw].se,
		a.nodes[n.ne].sw,
		a.nodes[n.sw].ne,
		a.nodes[n.se].nw,
	)
}

// step returns the centre of a level >= 2 node advanced by exactly one
// generation. Results are memoized on the node.
func (a *arena) step(id nodeID) nodeID {
	n := a.nodes[id]
	if n.next != noNode {
		return n.next
	}

	var result nodeID
	switch {
	case n.pop == 0:
		result = a.emptyNode(int(n.level) - 1)
	case n.level == 2:
		result = a.step4x4(n)
	default:
		nw, ne, sw, se := a.nodes[n.nw], a.nodes[n.ne], a.nodes[n.sw], a.nodes[n.se]

		// the five overlapping level-1 squares between the quadrants
		north := a.join(nw.ne, ne.nw, nw.se, ne.sw)
		west := a.join(nw.sw, nw.se, sw.nw, sw.ne)
		middle := a.join(nw.se, ne.sw, sw.ne, se.nw)
		east := a.join(ne.sw, ne.se, se.nw, se.ne)
		south := a.join(sw.ne, se.nw, sw.se, se.sw)

		// 3x3 grid of level-2 centres, still at generation 0
		c00, c01, c02 := a.centre(n.nw), a.centre(north), a.centre(n.ne)
		c10, c11, c12 := a.centre(west), a.centre(middle), a.centre(east)
		c20, c21, c22 := a.centre(n.sw), a.centre(south), a.centre(n.se)

		result = a.join(
			a.step(a.join(c00, c01, c10, c11)),
			a.step(a.join(c01, c02, c11, c12)),
			a.step(a.join(c10, c11, c20, c21)),
			a.step(a.join(c11, c12, c21, c22)),
		)
	}

	a.nodes[id].next = result
	return result
}

// step4x4 applies the rule to the inner 2x2 of a 4x4 node
func (a *arena) step4x4(n quadNode) nodeID {
	nw, ne, sw, se := a.nodes[n.nw], a.nodes[n.ne], a.nodes[n.sw], a.nodes[n.se]

	// grid[y][x]
	grid := [4][4]nodeID{
		{nw.nw, nw.ne, ne.nw, ne.ne},
		{nw.sw, nw.se, ne.sw, ne.se},
		{sw.nw, sw.ne, se.nw, se.ne},
		{sw.sw, sw.se, se.sw, se.se},
	}

	next := func(x, y int) nodeID {
		neighbors := 0
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if grid[y+dy][x+dx] == a.alive {
					neighbors++
				}
			}
		}
		return a.leaf(rules.ApplyConwayRules(neighbors, grid[y][x] == a.alive))
	}

	return a.join(next(1, 1), next(2, 1), next(1, 2), next(2, 2))
}

// flatten calls emit with the coordinates of every alive leaf under id,
// taking (x, y) as the node's top-left corner.
func (a *arena) flatten(id nodeID, x, y int64, emit func(x, y int64)) {
	n := a.nodes[id]
	if n.pop == 0 {
		return
	}
	if n.level == 0 {
		emit(x, y)
		return
	}

	half := int64(1) << (n.level - 1)
	a.flatten(n.nw, x, y, emit)
	a.flatten(n.ne, x+half, y, emit)
	a.flatten(n.sw, x, y+half, emit)
	a.flatten(n.se, x+half, y+half, emit)
}

// stepCluster advances one independent cluster and emits its next
// generation. cells is consumed: it is rewritten to local coordinates.
func (a *arena) stepCluster(cells []model.Cell, emit func(model.Cell)) {
	if len(cells) == 0 {
		return
	}

	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}

	// Local coordinates keep the tree arithmetic away from the int64 edges.
	// A cluster spans a handful of buckets, so the offsets stay small.
	var spanX, spanY int64
	for i, c := range cells {
		c = model.Cell{X: c.X - minX, Y: c.Y - minY}
		cells[i] = c
		spanX = max(spanX, c.X+1)
		spanY = max(spanY, c.Y+1)
	}

	span := max(spanX, spanY)
	level := 1
	for int64(1)<<level < span {
		level++
	}
	side := int64(1) << level
	ox := -(side - spanX) / 2
	oy := -(side - spanY) / 2

	root := a.build(cells, ox, oy, level)
	for range 2 {
		half := int64(1) << (a.nodes[root].level - 1)
		root = a.expand(root)
		ox -= half
		oy -= half
	}

	result := a.step(root)
	quarter := int64(1) << (a.nodes[root].level - 2)
	a.flatten(result, ox+quarter, oy+quarter, func(x, y int64) {
		c := model.Cell{X: minX + x, Y: minY + y}
		if !c.OverflowRisk() {
			emit(c)
		}
	})
}
