// Package diff produces the minimal stream of (x, y, cell) updates between
// two frame buffers — the only state the backend needs to bring the
// terminal up to date.
//
// A row-major dirty-cell scan: a dimension change between the two buffers
// forces a full redraw rather than an attempted cell-by-cell comparison,
// since a resized previous buffer no longer lines up with current at all.
package diff

import (
	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/framebuffer"
)

// Product is one changed cell: its position and its new value.
type Product struct {
	X, Y int
	Cell cell.Cell
}

// Each visits every (x, y) where current differs from previous, in
// row-major (y, x) order, without allocating beyond the callback's own
// stack frame. If current and previous have different dimensions, every
// cell in current is emitted exactly once (full redraw) — previous is
// considered wholly invalidated by a resize.
func Each(current, previous *framebuffer.Buffer, fn func(p Product)) {
	cw, ch := current.Bounds()
	pw, ph := previous.Bounds()
	fullRedraw := cw != pw || ch != ph

	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			cur := current.Get(x, y)
			if !fullRedraw {
				prev := previous.Get(x, y)
				if cell.Equal(cur, prev) {
					continue
				}
			}
			fn(Product{X: x, Y: y, Cell: cur})
		}
	}
}
