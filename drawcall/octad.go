package drawcall

import "github.com/lixenwraith/termforge/color"

// octadBraille[mask] is the Unicode braille code point for an 8-bit
// occupancy mask in this engine's sub-pixel bit order (see below),
// precomputed once at init — the same small-LUT-built-in-init idiom used
// for the blend table in package color.
//
// Sub-pixel bit order (fixed, documented, part of the external contract):
//
//	bit0 top-left      bit1 top-right
//	bit2 2nd-row-left   bit3 2nd-row-right
//	bit4 3rd-row-left   bit5 3rd-row-right
//	bit6 bottom-left    bit7 bottom-right
//
// Braille cells number dots 1-8 in column-major order (1,2,3,7 down the
// left column, 4,5,6,8 down the right), with bit N-1 of the code point's
// low byte set for dot N. Mapping our row-major bit order onto that
// dot order requires permuting bits 1..4 (top-right, both second-row
// sub-pixels, and third-row-left); bits 0, 5, 6 and 7 (top-left,
// third-row-right, and the bottom row) land on the same position in both
// schemes.
var octadBraille [256]rune

// bitPermutation[i] is the braille dot-bit that our sub-pixel bit i maps to.
var bitPermutation = [8]uint{0, 3, 1, 4, 2, 5, 6, 7}

func init() {
	for mask := 0; mask < 256; mask++ {
		var dots uint8
		for i := uint(0); i < 8; i++ {
			if mask&(1<<i) != 0 {
				dots |= 1 << bitPermutation[i]
			}
		}
		octadBraille[mask] = rune(0x2800 + int(dots))
	}
}

// OctadGlyph returns the braille code point for an 8-bit occupancy mask.
func OctadGlyph(mask uint8) rune {
	return octadBraille[mask]
}

// OctadPoint is one terminal cell's 2×4 sub-pixel occupancy mask plus the
// single foreground color braille glyphs render in (braille glyphs are
// monochrome: all lit dots share one color).
type OctadPoint struct {
	X, Y int
	Fg   color.Color
	Mask uint8
}

// Octad draws a sparse set of braille sub-pixel cells.
type Octad struct {
	Points []OctadPoint
}

func (o Octad) Visit(fn func(x, y int, c Contribution)) {
	for _, p := range o.Points {
		fn(p.X, p.Y, Contribution{Glyph: OctadGlyph(p.Mask), Fg: p.Fg})
	}
}
