package drawcall

import (
	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
)

// Text draws a single-line run of runes starting at (X, Y), advancing one
// column per rune. Column-per-rune is deliberate: no Unicode shaping/bidi
// or width accounting happens here, so Text never consults glyph width —
// wide glyphs are the caller's problem, and x advances by exactly one per
// rune regardless of display width.
type Text struct {
	X, Y   int
	Runes  []rune
	Fg, Bg color.Color
	Attrs  cell.Attr
}

func (t Text) Visit(fn func(x, y int, c Contribution)) {
	for i, r := range t.Runes {
		fn(t.X+i, t.Y, Contribution{Glyph: r, Fg: t.Fg, Bg: t.Bg, Attrs: t.Attrs})
	}
}
