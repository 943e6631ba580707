// Package compositor flattens a layered draw queue into a frame buffer via
// source-over alpha blending, with a terminal-specific "glyph preservation"
// extension layered on top of classical Porter-Duff compositing: a
// contribution that supplies no new glyph leaves whatever rune was already
// there untouched rather than always adopting a blank one.
package compositor

import (
	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
	"github.com/lixenwraith/termforge/drawcall"
	"github.com/lixenwraith/termforge/framebuffer"
	"github.com/lixenwraith/termforge/layer"
)

// Composite flattens every draw call in q, in layer/push order, into buf.
// buf must already be cleared (via buf.Reset) by the caller — Composite
// only folds, it never clears.
func Composite(q *layer.Queue, buf *framebuffer.Buffer) {
	q.Each(func(x, y int, contribution drawcall.Contribution) {
		old := buf.Get(x, y)
		buf.Set(x, y, Fold(contribution, old))
	})
}

// Fold computes the accumulated cell that results from folding one new
// contribution on top of an already-accumulated cell.
func Fold(c drawcall.Contribution, old cell.Cell) cell.Cell {
	var out cell.Cell

	// 1. Background channel.
	if c.Attrs.Has(cell.NoBgColor) {
		out.Bg = color.Transparent
	} else {
		out.Bg = color.Blend(c.Bg, old.Bg)
	}

	// 2. Foreground channel. If the new contribution's background isn't
	// fully transparent, it conceptually covers whatever was "in front":
	// the old foreground gets blended under the new background before the
	// new foreground is applied on top of that.
	oldFg := old.Fg
	if c.Bg.A > 0 {
		oldFg = color.Blend(c.Bg, oldFg)
	}
	if c.Fg.A == 0 {
		out.Fg = oldFg // leave fg unchanged, including its glyph below
	} else {
		out.Fg = color.Blend(c.Fg, oldFg)
	}
	if c.Attrs.Has(cell.NoFgColor) {
		out.Fg = color.Transparent
	}

	// 3. Glyph: adopt the new one only if the new foreground actually
	// contributes something visible and the contribution supplies a glyph
	// (Glyph 0 means "keep the accumulated glyph"); otherwise keep whatever
	// was there.
	if c.Fg.A > 0 && c.Glyph != 0 {
		out.Glyph = c.Glyph
	} else {
		out.Glyph = old.Glyph
	}

	// 4. Attributes: style bits OR-merge across the whole history; the two
	// "no color" bits reflect only this contribution's intent (a later,
	// non-erasing draw heals an earlier erase).
	mergedStyle := (old.Attrs | c.Attrs) &^ (cell.NoFgColor | cell.NoBgColor)
	noColorBits := c.Attrs & (cell.NoFgColor | cell.NoBgColor)
	out.Attrs = mergedStyle | noColorBits

	return out
}
