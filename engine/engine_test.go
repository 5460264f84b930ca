package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/sparse-gol/model"
)

func cells(coords ...[2]int64) model.AliveSet {
	s := model.NewAliveSet()
	for _, c := range coords {
		s.Add(model.Cell{X: c[0], Y: c[1]})
	}
	return s
}

func advanceN(e Engine, s model.AliveSet, n int) model.AliveSet {
	for range n {
		s = e.Advance(s)
	}
	return s
}

func randomSoup(seed uint64, n int, span int64) model.AliveSet {
	r := rand.New(rand.NewPCG(seed, 0))
	s := model.NewAliveSet()
	for range n {
		s.Add(model.Cell{X: r.Int64N(span) - span/2, Y: r.Int64N(span) - span/2})
	}
	return s
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"counting", Counting},
		{"SORTING", Sorting},
		{"QuadTree", Quadtree},
		{" counting ", Counting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "hashlife", "hashtable", "sorted", "count"} {
		_, err := ParseKind(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrUnknownEngine), bad)
	}
}

func TestNewByName(t *testing.T) {
	for _, k := range Kinds() {
		e, err := NewByName(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, e.Kind())
		assert.Equal(t, k, e.Duplicate().Kind())
	}

	e, err := NewByName("life")
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestKnownPatterns(t *testing.T) {
	blinker := cells([2]int64{0, 0}, [2]int64{1, 0}, [2]int64{2, 0})
	block := cells([2]int64{0, 0}, [2]int64{1, 0}, [2]int64{0, 1}, [2]int64{1, 1})
	glider := cells([2]int64{0, 1}, [2]int64{1, 2}, [2]int64{2, 0}, [2]int64{2, 1}, [2]int64{2, 2})

	tests := []struct {
		name  string
		start model.AliveSet
		steps int
		want  model.AliveSet
	}{
		{"empty", model.NewAliveSet(), 1, model.NewAliveSet()},
		{"blinker flips", blinker, 1, cells([2]int64{1, -1}, [2]int64{1, 0}, [2]int64{1, 1})},
		{"blinker period two", blinker, 2, blinker},
		{"block still life", block, 1, block},
		{"block after many", block, 10, block},
		{"glider translates", glider, 4,
			cells([2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 1}, [2]int64{3, 2}, [2]int64{3, 3})},
		{"single cell dies", cells([2]int64{5, 5}), 1, model.NewAliveSet()},
		{"pair dies", cells([2]int64{0, 0}, [2]int64{1, 0}), 1, model.NewAliveSet()},
		{"zero steps", glider, 0, glider},
	}

	for _, k := range Kinds() {
		for _, tt := range tests {
			t.Run(k.String()+"/"+tt.name, func(t *testing.T) {
				got := advanceN(New(k), tt.start.Clone(), tt.steps)
				assert.Equal(t, tt.want.Sorted(), got.Sorted())
			})
		}
	}
}

func TestOvercrowdedCentreDies(t *testing.T) {
	full := model.NewAliveSet()
	for x := int64(0); x < 3; x++ {
		for y := int64(0); y < 3; y++ {
			full.Add(model.Cell{X: x, Y: y})
		}
	}
	for _, k := range Kinds() {
		next := New(k).Advance(full)
		assert.False(t, next.Has(model.Cell{X: 1, Y: 1}), k.String())
		// corners keep 3 neighbors
		assert.True(t, next.Has(model.Cell{X: 0, Y: 0}), k.String())
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	start := randomSoup(7, 300, 40)
	snapshot := start.Clone()
	for _, k := range Kinds() {
		_ = New(k).Advance(start)
		assert.True(t, snapshot.Equal(start), k.String())
	}
}

func TestBoundaryCellsDie(t *testing.T) {
	const (
		lo = math.MinInt64
		hi = math.MaxInt64
	)
	start := cells(
		[2]int64{hi, 0}, [2]int64{lo, 0}, [2]int64{0, hi}, [2]int64{0, lo},
		[2]int64{hi, hi}, [2]int64{lo, lo}, [2]int64{hi, lo}, [2]int64{lo, hi},
	)
	for _, k := range Kinds() {
		assert.Zero(t, New(k).Advance(start).Len(), k.String())
	}
}

func TestBoundaryBlockLosesEdgeColumn(t *testing.T) {
	const hi = math.MaxInt64
	// a block touching the max column: the two edge cells die, which also
	// leaves the inner column underpopulated
	start := cells(
		[2]int64{hi - 1, 0}, [2]int64{hi, 0},
		[2]int64{hi - 1, 1}, [2]int64{hi, 1},
	)
	// a blinker one column short of the edge
	near := cells([2]int64{hi - 1, 0}, [2]int64{hi - 1, 1}, [2]int64{hi - 1, 2})

	reference := New(Counting)
	for _, k := range Kinds() {
		e := New(k)
		got := e.Advance(start)
		assert.Zero(t, got.Len(), k.String())

		got = e.Advance(near)
		assert.Equal(t, reference.Advance(near).Sorted(), got.Sorted(), k.String())
		for c := range got {
			assert.False(t, c.OverflowRisk(), k.String())
		}
	}
}

func TestEnginesAgreeOnRandomSoups(t *testing.T) {
	for seed := uint64(1); seed <= 6; seed++ {
		start := randomSoup(seed, 400, 48)
		reference := New(Counting)
		others := []Engine{New(Sorting), New(Quadtree), New(Quadtree, WithWorkers(3))}

		want, gots := start, make([]model.AliveSet, len(others))
		for i := range gots {
			gots[i] = start
		}
		for gen := range 30 {
			want = reference.Advance(want)
			for i, e := range others {
				gots[i] = e.Advance(gots[i])
				require.Equal(t, want.Sorted(), gots[i].Sorted(),
					"seed %d generation %d engine %s", seed, gen+1, e.Kind())
			}
		}
	}
}

func TestEnginesAgreeOnSeparatedClusters(t *testing.T) {
	start := model.NewAliveSet()
	glider := [][2]int64{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	origins := [][2]int64{
		{0, 0},
		{1_000_000_000_000, -1_000_000_000_000},
		{-5_000_000_000_000, 3},
		{math.MaxInt64 - 40, math.MinInt64 + 40},
		{100, 100}, // bucket next to the origin glider
	}
	for _, o := range origins {
		for _, g := range glider {
			start.Add(model.Cell{X: o[0] + g[0], Y: o[1] + g[1]})
		}
	}

	want := advanceN(New(Counting), start, 12)
	for _, k := range []Kind{Sorting, Quadtree} {
		assert.Equal(t, want.Sorted(), advanceN(New(k), start, 12).Sorted(), k.String())
	}
	assert.Equal(t, want.Sorted(), advanceN(New(Quadtree, WithWorkers(4)), start, 12).Sorted())
}

func TestRepeatedAdvanceIsDeterministic(t *testing.T) {
	start := randomSoup(42, 250, 32)
	// same cells inserted in a different order
	reordered := model.NewAliveSet()
	sorted := start.Sorted()
	for i := len(sorted) - 1; i >= 0; i-- {
		reordered.Add(sorted[i])
	}

	for _, k := range Kinds() {
		e := New(k)
		first := e.Advance(start).Sorted()
		assert.Equal(t, first, e.Advance(start).Sorted(), k.String())
		assert.Equal(t, first, e.Advance(reordered).Sorted(), k.String())
		assert.Equal(t, first, e.Duplicate().Advance(start).Sorted(), k.String())
	}
}
