// Package drawcall defines the small closed set of primitives the
// compositor understands, and normalizes each into a lazy, allocation-free
// stream of per-position cell contributions.
//
// A glyph value of 0 on a contribution means "preserve whatever rune is
// already there" rather than overwrite it — the same sentinel a classic
// SetPixel-style glyph buffer uses to let a color-only fill leave existing
// text alone. One draw call type per visual primitive (Fill, Text, Twoxel,
// Octad) keeps each type's Visit loop a tight, un-branchy specialization
// instead of one parameterized struct with a mode switch.
package drawcall

import (
	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
)

// Contribution is one primitive's pending visual state for a single cell
// position. Glyph == 0 means "do not override the accumulated glyph";
// everything else (including Fg/Bg transparency) still participates in the
// compositor's fold.
type Contribution struct {
	Glyph rune
	Fg    color.Color
	Bg    color.Color
	Attrs cell.Attr
}

// DrawCall is implemented by every primitive. Visit calls fn once per
// (x, y) position the primitive touches, in row-major order for area
// primitives. Implementations MUST NOT allocate inside Visit.
type DrawCall interface {
	Visit(fn func(x, y int, c Contribution))
}
