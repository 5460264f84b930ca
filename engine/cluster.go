package engine

import (
	"cmp"
	"slices"

	"github.com/sheikhrachel/sparse-gol/model"
)

// bucketShift sizes the clustering grid: 1<<6 = 64 cells per side
const bucketShift = 6

type bucketKey struct {
	bx, by int64
}

func bucketOf(c model.Cell) bucketKey {
	// arithmetic shift floors negative coordinates too
	return bucketKey{bx: c.X >> bucketShift, by: c.Y >> bucketShift}
}

func compareBuckets(a, b bucketKey) int {
	if a.bx != b.bx {
		return cmp.Compare(a.bx, b.bx)
	}
	return cmp.Compare(a.by, b.by)
}

// unionFind merges buckets into clusters
type unionFind struct {
	parent map[bucketKey]bucketKey
}

func newUnionFind(size int) *unionFind {
	return &unionFind{parent: make(map[bucketKey]bucketKey, size)}
}

func (u *unionFind) add(k bucketKey) {
	u.parent[k] = k
}

func (u *unionFind) find(k bucketKey) bucketKey {
	root := k
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for k != root {
		next := u.parent[k]
		u.parent[k] = root
		k = next
	}
	return root
}

func (u *unionFind) union(a, b bucketKey) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// partitionClusters groups alive cells into clusters that cannot influence
// each other within one generation. Buckets that touch, diagonals included,
// share a cluster; cells in buckets further apart are at least 65 cells
// away. Overflow-risk cells are dropped since they neither survive nor
// contribute neighbors. Clusters are returned in a deterministic order.
func partitionClusters(cells model.AliveSet) [][]model.Cell {
	buckets := make(map[bucketKey][]model.Cell)
	for c := range cells {
		if c.OverflowRisk() {
			continue
		}
		k := bucketOf(c)
		buckets[k] = append(buckets[k], c)
	}
	if len(buckets) == 0 {
		return nil
	}

	uf := newUnionFind(len(buckets))
	for k := range buckets {
		uf.add(k)
	}
	for k := range buckets {
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nb := bucketKey{bx: k.bx + dx, by: k.by + dy}
				if _, ok := buckets[nb]; ok {
					uf.union(k, nb)
				}
			}
		}
	}

	grouped := make(map[bucketKey][]model.Cell)
	for k, bucketCells := range buckets {
		root := uf.find(k)
		grouped[root] = append(grouped[root], bucketCells...)
	}

	roots := make([]bucketKey, 0, len(grouped))
	for root := range grouped {
		roots = append(roots, root)
	}
	slices.SortFunc(roots, compareBuckets)

	clusters := make([][]model.Cell, 0, len(roots))
	for _, root := range roots {
		clusters = append(clusters, grouped[root])
	}
	return clusters
}
