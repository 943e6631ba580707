package drawcall

import (
	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
)

// Fill paints a solid rectangle with one fg/bg/attrs/glyph combination —
// the cheap, non-allocating path for backgrounds and erase operations,
// where Standard's per-cell slice would be wasteful.
type Fill struct {
	X, Y          int
	Width, Height int
	Glyph         rune
	Fg, Bg        color.Color
	Attrs         cell.Attr
}

func (f Fill) Visit(fn func(x, y int, c Contribution)) {
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	contrib := Contribution{Glyph: f.Glyph, Fg: f.Fg, Bg: f.Bg, Attrs: f.Attrs}
	for row := 0; row < f.Height; row++ {
		py := f.Y + row
		for col := 0; col < f.Width; col++ {
			fn(f.X+col, py, contrib)
		}
	}
}

// Erase produces a Fill that clears both color channels back to the
// terminal default (NoFgColor | NoBgColor) — distinct from drawing fully
// transparent colors, which leaves whatever was underneath untouched.
func Erase(x, y, width, height int) Fill {
	return Fill{
		X: x, Y: y, Width: width, Height: height,
		Attrs: cell.NoFgColor | cell.NoBgColor,
	}
}
