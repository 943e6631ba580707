package drawcall

import (
	"testing"

	"github.com/lixenwraith/termforge/color"
)

func collect(d DrawCall) map[[2]int]Contribution {
	out := make(map[[2]int]Contribution)
	d.Visit(func(x, y int, c Contribution) {
		out[[2]int{x, y}] = c
	})
	return out
}

func TestStandardVisitOrder(t *testing.T) {
	var order [][2]int
	s := Standard{
		X: 5, Y: 2, Width: 2, Height: 2,
		Cells: []Contribution{{Glyph: 'a'}, {Glyph: 'b'}, {Glyph: 'c'}, {Glyph: 'd'}},
	}
	s.Visit(func(x, y int, c Contribution) { order = append(order, [2]int{x, y}) })

	want := [][2]int{{5, 2}, {6, 2}, {5, 3}, {6, 3}}
	if len(order) != len(want) {
		t.Fatalf("got %d positions, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestFillOpaqueOverwrite(t *testing.T) {
	f := Fill{X: 0, Y: 0, Width: 10, Height: 1, Glyph: 'X',
		Fg: color.Opaque(255, 0, 0), Bg: color.Opaque(0, 0, 255)}
	cells := collect(f)
	if len(cells) != 10 {
		t.Fatalf("got %d cells, want 10", len(cells))
	}
	for x := 0; x < 10; x++ {
		c := cells[[2]int{x, 0}]
		if c.Glyph != 'X' || c.Fg != color.Opaque(255, 0, 0) || c.Bg != color.Opaque(0, 0, 255) {
			t.Errorf("cell %d = %+v, want X/red/blue", x, c)
		}
	}
}

func TestOctadMaskSingleDot(t *testing.T) {
	got := OctadGlyph(0b00000001)
	want := rune(0x2800 + 1)
	if got != want {
		t.Errorf("OctadGlyph(0b1) = %U, want %U", got, want)
	}
}

func TestOctadMaskFull(t *testing.T) {
	got := OctadGlyph(0b11111111)
	want := rune(0x28FF)
	if got != want {
		t.Errorf("OctadGlyph(0xFF) = %U, want %U", got, want)
	}
}

func TestOctadPermutationIsBijective(t *testing.T) {
	seen := make(map[rune]bool)
	for mask := 0; mask < 256; mask++ {
		g := OctadGlyph(uint8(mask))
		if seen[g] {
			t.Fatalf("glyph %U produced by more than one mask", g)
		}
		seen[g] = true
	}
}

func TestTwoxelGlyphFixed(t *testing.T) {
	tw := Twoxel{Points: []TwoxelPoint{
		{X: 1, Y: 1, Top: color.Opaque(255, 0, 0), Bottom: color.Opaque(0, 255, 0)},
	}}
	cells := collect(tw)
	c := cells[[2]int{1, 1}]
	if c.Glyph != upperHalfBlock {
		t.Errorf("Twoxel glyph = %q, want upper half block", c.Glyph)
	}
	if c.Fg != color.Opaque(255, 0, 0) || c.Bg != color.Opaque(0, 255, 0) {
		t.Errorf("Twoxel fg/bg = %+v/%+v, want top/bottom", c.Fg, c.Bg)
	}
}

func TestTextAdvancesOneColumnPerRune(t *testing.T) {
	text := Text{X: 3, Y: 4, Runes: []rune("abc"), Fg: color.Opaque(1, 2, 3)}
	cells := collect(text)
	for i, r := range []rune("abc") {
		c, ok := cells[[2]int{3 + i, 4}]
		if !ok || c.Glyph != r {
			t.Errorf("position %d: got %+v ok=%v, want glyph %q", i, c, ok, r)
		}
	}
}
