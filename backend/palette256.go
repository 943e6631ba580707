package backend

import "github.com/lixenwraith/termforge/color"

// ColorMode reports what color depth the connected terminal supports.
type ColorMode uint8

const (
	ColorMode256 ColorMode = iota
	ColorModeTrueColor
)

// lut256 maps a 6-bit-quantized RGB cube (64x64x64) to the nearest of the
// standard 256-color palette entries, by Redmean distance. At 262,144
// bytes it fits comfortably in L2, and is populated once at init() so
// RGBTo256 is a bare lookup on the hot path.
var lut256 [64 * 64 * 64]uint8

var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

func init() {
	for r := 0; r < 64; r++ {
		for g := 0; g < 64; g++ {
			for b := 0; b < 64; b++ {
				r8 := (r << 2) | 2
				g8 := (g << 2) | 2
				b8 := (b << 2) | 2
				lut256[r<<12|g<<6|b] = nearest256(r8, g8, b8)
			}
		}
	}
}

func nearest256(r, g, b int) uint8 {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 238 {
			return 231
		}
		return uint8(232 + (r-8)/10)
	}

	bestIdx := uint8(16)
	minDist := 1 << 30

	for i := 0; i < 216; i++ {
		cr := cubeValues[i/36]
		cg := cubeValues[(i/6)%6]
		cb := cubeValues[i%6]

		if d := redmeanDistance(r, g, b, cr, cg, cb); d < minDist {
			minDist = d
			bestIdx = uint8(16 + i)
		}
	}

	for i := 0; i < 24; i++ {
		gray := 8 + i*10
		if d := redmeanDistance(r, g, b, gray, gray, gray); d < minDist {
			minDist = d
			bestIdx = uint8(232 + i)
		}
	}

	return bestIdx
}

// redmeanDistance is the perceptually weighted color distance from
// https://en.wikipedia.org/wiki/Color_difference#sRGB.
func redmeanDistance(r1, g1, b1, r2, g2, b2 int) int {
	rmean := (r1 + r2) / 2
	dr := r1 - r2
	dg := g1 - g2
	db := b1 - b2
	return (((512+rmean)*dr*dr)>>8) + 4*dg*dg + (((767-rmean)*db*db)>>8)
}

// RGBTo256 converts an opaque color to the nearest xterm-256 palette index.
func RGBTo256(c color.Color) uint8 {
	return lut256[int(c.R>>2)<<12|int(c.G>>2)<<6|int(c.B>>2)]
}
