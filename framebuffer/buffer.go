// Package framebuffer implements the dense width×height grid of composited
// cells the compositor writes into and the differ reads from.
//
// Resize is capacity-preserving (reallocates only when the new size exceeds
// cap), Reset clears via exponential doubling (copy the cleared prefix over
// itself, doubling the filled region each pass — far fewer copy calls than
// a plain per-cell loop once the buffer is more than a few cells), and Get/Set
// are bounds-checked with out-of-range writes silently clipped rather than
// erroring.
package framebuffer

import "github.com/lixenwraith/termforge/cell"

// Buffer is a width*height contiguous array of cells in row-major order.
type Buffer struct {
	cells  []cell.Cell
	width  int
	height int
}

// New creates a buffer with the given dimensions, initialized to
// cell.Default.
func New(width, height int) *Buffer {
	b := &Buffer{width: width, height: height}
	b.cells = make([]cell.Cell, width*height)
	b.Reset(cell.Default)
	return b
}

// Bounds returns the buffer's current dimensions.
func (b *Buffer) Bounds() (width, height int) {
	return b.width, b.height
}

// Resize changes the buffer's dimensions, reallocating only if the new size
// exceeds the current backing array's capacity. A buffer is never
// reallocated while its dimensions are unchanged — Resize is the only path
// that can grow the backing array.
func (b *Buffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]cell.Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Reset(cell.Default)
}

// Reset fills every cell with defaultCell in O(width*height) via
// exponential doubling: write one cell, then repeatedly copy the filled
// prefix over the next equal-sized span, doubling the filled region each
// pass instead of writing one cell at a time.
func (b *Buffer) Reset(defaultCell cell.Cell) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = defaultCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y), or cell.Default if out of bounds.
func (b *Buffer) Get(x, y int) cell.Cell {
	if !b.inBounds(x, y) {
		return cell.Default
	}
	return b.cells[y*b.width+x]
}

// Set writes c at (x, y). Out-of-bounds writes are a silent no-op
// (clipped), never an error.
func (b *Buffer) Set(x, y int, c cell.Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Swap exchanges the contents of two buffers in O(1) by swapping their
// backing slices and dimensions.
func Swap(a, b *Buffer) {
	a.cells, b.cells = b.cells, a.cells
	a.width, b.width = b.width, a.width
	a.height, b.height = b.height, a.height
}
