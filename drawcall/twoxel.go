package drawcall

import "github.com/lixenwraith/termforge/color"

// upperHalfBlock is the fixed glyph Twoxel renders: the top pixel's color
// becomes the glyph's foreground, the bottom pixel's color becomes the
// cell's background — one terminal cell packs two vertically stacked
// sub-pixels via '▀'.
const upperHalfBlock = '▀'

// TwoxelPoint is one terminal cell's worth of two stacked sub-pixel colors.
type TwoxelPoint struct {
	X, Y        int
	Top, Bottom color.Color
}

// Twoxel draws a sparse set of two-pixel-per-cell points. Points is
// caller-owned and iterated in order, matching push order semantics for
// same-position overlaps within a single draw call.
type Twoxel struct {
	Points []TwoxelPoint
}

func (t Twoxel) Visit(fn func(x, y int, c Contribution)) {
	for _, p := range t.Points {
		fn(p.X, p.Y, Contribution{Glyph: upperHalfBlock, Fg: p.Top, Bg: p.Bottom})
	}
}
