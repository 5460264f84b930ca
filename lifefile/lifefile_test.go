package lifefile

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/sparse-gol/model"
)

func TestParse(t *testing.T) {
	input := "\n#Life 1.06\n0 1\n  1 2\t\n\n2 0\n-9223372036854775808 9223372036854775807\n"
	cells, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := model.NewAliveSet(
		model.Cell{X: 0, Y: 1},
		model.Cell{X: 1, Y: 2},
		model.Cell{X: 2, Y: 0},
		model.Cell{X: math.MinInt64, Y: math.MaxInt64},
	)
	assert.Equal(t, want.Sorted(), cells.Sorted())
}

func TestParseDuplicatesCollapse(t *testing.T) {
	cells, err := Parse(strings.NewReader("#Life 1.06\n3 3\n3 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cells.Len())
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"blank only":     "\n  \n",
		"wrong header":   "#Life 1.05\n0 0\n",
		"missing header": "0 0\n",
		"one number":     "#Life 1.06\n5\n",
		"three numbers":  "#Life 1.06\n1 2 3\n",
		"not a number":   "#Life 1.06\nx 2\n",
		"overflow":       "#Life 1.06\n9223372036854775808 0\n",
		"glued":          "#Life 1.06\n1,2\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestWriteSorted(t *testing.T) {
	cells := model.NewAliveSet(
		model.Cell{X: 2, Y: 0},
		model.Cell{X: -1, Y: 5},
		model.Cell{X: 2, Y: -3},
	)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cells, true))
	assert.Equal(t, "#Life 1.06\n-1 5\n2 -3\n2 0\n", buf.String())
	assert.Equal(t, buf.String(), Format(cells))
}

func TestWriteUnsortedRoundTrip(t *testing.T) {
	cells := model.NewAliveSet(
		model.Cell{X: math.MaxInt64, Y: 0},
		model.Cell{X: 7, Y: math.MinInt64},
		model.Cell{X: 0, Y: 0},
	)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cells, false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, Header, lines[0])
	assert.Len(t, lines, 4)

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.True(t, cells.Equal(parsed))
}

func TestHasValidExtension(t *testing.T) {
	assert.True(t, HasValidExtension("glider.life"))
	assert.True(t, HasValidExtension("dir/glider.lif"))
	assert.True(t, HasValidExtension("glider.life.zst"))
	assert.False(t, HasValidExtension("glider.txt"))
	assert.False(t, HasValidExtension("glider"))
	assert.False(t, HasValidExtension("glider.zst"))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	cells := model.NewAliveSet(model.Cell{X: 1, Y: 2}, model.Cell{X: -3, Y: 4})

	for _, name := range []string{"plain.life", "packed.lif.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, cells, true))

			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, cells.Sorted(), got.Sorted())
		})
	}

	_, err := ReadFile(filepath.Join(dir, "pattern.txt"))
	assert.ErrorIs(t, err, ErrBadExtension)
	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "pattern.txt"), cells, false), ErrBadExtension)

	_, err = ReadFile(filepath.Join(dir, "missing.life"))
	assert.Error(t, err)
}
