package model

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"
)

// TerminalRenderer draws a window of the unbounded grid to a terminal
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the cells inside the viewport, one row per line
func (r *TerminalRenderer) Display(cells AliveSet, viewport Bounds) {
	w := bufio.NewWriter(r.out())
	defer w.Flush()

	for y := viewport.MinY; y <= viewport.MaxY; y++ {
		for x := viewport.MinX; x <= viewport.MaxX; x++ {
			if cells.Has(Cell{X: x, Y: y}) {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out(), "Error clearing terminal:", err)
	}
}

// Viewport returns a width x height window centred on the bounding box of
// cells, or on the origin when cells is empty.
func Viewport(cells AliveSet, width, height int64) Bounds {
	var cx, cy int64
	if b, ok := cells.Bounds(); ok {
		// halve before adding so the midpoint cannot overflow
		cx = b.MinX/2 + b.MaxX/2
		cy = b.MinY/2 + b.MaxY/2
	}
	minX := clampStart(cx, width)
	minY := clampStart(cy, height)
	return Bounds{MinX: minX, MaxX: minX + width - 1, MinY: minY, MaxY: minY + height - 1}
}

// clampStart returns the first coordinate of a span of n cells centred on c,
// kept inside the range that can be iterated without wrapping
func clampStart(c, n int64) int64 {
	lo := int64(math.MinInt64)
	hi := int64(math.MaxInt64-1) - (n - 1)
	if c > 0 && c-n/2 > hi {
		return hi
	}
	if c < 0 && c < lo+n/2 {
		return lo
	}
	return c - n/2
}
