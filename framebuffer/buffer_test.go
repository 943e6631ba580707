package framebuffer

import (
	"testing"

	"github.com/lixenwraith/termforge/cell"
)

func TestNewBufferDefaultCells(t *testing.T) {
	b := New(3, 2)
	w, h := b.Bounds()
	if w != 3 || h != 2 {
		t.Fatalf("Bounds() = (%d,%d), want (3,2)", w, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !cell.Equal(b.Get(x, y), cell.Default) {
				t.Errorf("cell (%d,%d) = %+v, want default", x, y, b.Get(x, y))
			}
		}
	}
}

func TestSetGetRoundtrip(t *testing.T) {
	b := New(4, 4)
	c := cell.Cell{Glyph: 'Z'}
	b.Set(2, 1, c)
	if got := b.Get(2, 1); !cell.Equal(got, c) {
		t.Errorf("Get(2,1) = %+v, want %+v", got, c)
	}
}

func TestOutOfBoundsWritesClipped(t *testing.T) {
	b := New(2, 2)
	b.Set(-1, 0, cell.Cell{Glyph: 'X'})
	b.Set(5, 5, cell.Cell{Glyph: 'X'})
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !cell.Equal(b.Get(x, y), cell.Default) {
				t.Errorf("out-of-bounds write leaked into (%d,%d)", x, y)
			}
		}
	}
}

func TestOutOfBoundsReadReturnsDefault(t *testing.T) {
	b := New(2, 2)
	if got := b.Get(99, 99); !cell.Equal(got, cell.Default) {
		t.Errorf("Get out of bounds = %+v, want default", got)
	}
}

func TestResizePreservesCapacityNoGrowth(t *testing.T) {
	b := New(10, 10)
	b.Set(0, 0, cell.Cell{Glyph: 'A'})
	originalCap := cap(b.cells)

	b.Resize(5, 5) // smaller, should reuse backing array
	if cap(b.cells) != originalCap {
		t.Errorf("cap after shrink = %d, want unchanged %d", cap(b.cells), originalCap)
	}
	// Reset on resize clears the cell.
	if got := b.Get(0, 0); !cell.Equal(got, cell.Default) {
		t.Errorf("Get(0,0) after resize = %+v, want default (resize resets)", got)
	}
}

func TestResizeGrowsWhenNeeded(t *testing.T) {
	b := New(2, 2)
	b.Resize(100, 100)
	w, h := b.Bounds()
	if w != 100 || h != 100 {
		t.Fatalf("Bounds() = (%d,%d), want (100,100)", w, h)
	}
	if len(b.cells) != 10000 {
		t.Errorf("len(cells) = %d, want 10000", len(b.cells))
	}
}

func TestSwapExchangesContents(t *testing.T) {
	a := New(2, 2)
	b := New(2, 2)
	a.Set(0, 0, cell.Cell{Glyph: 'A'})
	b.Set(0, 0, cell.Cell{Glyph: 'B'})

	Swap(a, b)

	if got := a.Get(0, 0); got.Glyph != 'B' {
		t.Errorf("after swap a.Get(0,0).Glyph = %q, want 'B'", got.Glyph)
	}
	if got := b.Get(0, 0); got.Glyph != 'A' {
		t.Errorf("after swap b.Get(0,0).Glyph = %q, want 'A'", got.Glyph)
	}
}

func TestResetFillsEveryCell(t *testing.T) {
	b := New(17, 13) // odd size to exercise the doubling-copy tail
	marker := cell.Cell{Glyph: 'M'}
	for y := 0; y < 13; y++ {
		for x := 0; x < 17; x++ {
			b.Set(x, y, marker)
		}
	}
	b.Reset(cell.Default)
	for y := 0; y < 13; y++ {
		for x := 0; x < 17; x++ {
			if !cell.Equal(b.Get(x, y), cell.Default) {
				t.Fatalf("cell (%d,%d) not reset", x, y)
			}
		}
	}
}
