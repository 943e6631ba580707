package compositor

import (
	"testing"

	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
	"github.com/lixenwraith/termforge/drawcall"
	"github.com/lixenwraith/termforge/framebuffer"
	"github.com/lixenwraith/termforge/layer"
)

func TestFullOpaqueOverwrite(t *testing.T) {
	buf := framebuffer.New(10, 1)
	q := layer.New(1)
	l := q.CreateLayer(0)
	q.PushFill(l, drawcall.Fill{
		X: 0, Y: 0, Width: 10, Height: 1, Glyph: 'X',
		Fg: color.Opaque(255, 0, 0), Bg: color.Opaque(0, 0, 255),
	})

	Composite(q, buf)

	for x := 0; x < 10; x++ {
		c := buf.Get(x, 0)
		if c.Glyph != 'X' || c.Fg != color.Opaque(255, 0, 0) || c.Bg != color.Opaque(0, 0, 255) {
			t.Errorf("cell %d = %+v, want X/red/blue", x, c)
		}
	}
}

func TestHalfRedOverBlueBackground(t *testing.T) {
	buf := framebuffer.New(1, 1)
	q := layer.New(1)
	l := q.CreateLayer(0)
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Bg: color.Opaque(0, 0, 255)})
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Bg: color.Color{R: 255, A: 128}})

	Composite(q, buf)

	c := buf.Get(0, 0)
	if !within(int(c.Bg.R), 128, 1) || c.Bg.G != 0 || !within(int(c.Bg.B), 127, 1) || c.Bg.A != 255 {
		t.Errorf("bg = %+v, want approx {128,0,127,255}", c.Bg)
	}
}

func TestEraseSetsNoBgColorAndZeroAlpha(t *testing.T) {
	buf := framebuffer.New(1, 1)
	q := layer.New(1)
	l := q.CreateLayer(0)
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Bg: color.Opaque(0, 255, 0)})
	q.PushFill(l, drawcall.Erase(0, 0, 1, 1))

	Composite(q, buf)

	c := buf.Get(0, 0)
	if c.Bg.A != 0 {
		t.Errorf("bg.A = %d, want 0", c.Bg.A)
	}
	if !c.Attrs.Has(cell.NoBgColor) {
		t.Errorf("NoBgColor not set after erase")
	}
}

// Composing the same queue twice from a cleared buffer must produce
// identical results; diff minimality is the differ's own concern.
func TestCompositionIsDeterministic(t *testing.T) {
	build := func() *layer.Queue {
		q := layer.New(2)
		bg := q.CreateLayer(0)
		fg := q.CreateLayer(1)
		q.PushFill(bg, drawcall.Fill{X: 0, Y: 0, Width: 5, Height: 5, Bg: color.Opaque(10, 20, 30)})
		q.PushText(fg, drawcall.Text{X: 1, Y: 1, Runes: []rune("hi"), Fg: color.Opaque(255, 255, 255)})
		return q
	}

	a := framebuffer.New(5, 5)
	Composite(build(), a)
	b := framebuffer.New(5, 5)
	Composite(build(), b)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if !cell.Equal(a.Get(x, y), b.Get(x, y)) {
				t.Fatalf("cell (%d,%d) differs between identical composes", x, y)
			}
		}
	}
}

func TestTransparentContributionPreservesCell(t *testing.T) {
	buf := framebuffer.New(1, 1)
	original := cell.Cell{Glyph: 'Q', Fg: color.Opaque(1, 2, 3), Bg: color.Opaque(4, 5, 6), Attrs: cell.AttrBold}
	buf.Set(0, 0, original)

	q := layer.New(1)
	l := q.CreateLayer(0)
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1}) // fg.A=0, bg.A=0

	Composite(q, buf)

	if got := buf.Get(0, 0); !cell.Equal(got, original) {
		t.Errorf("cell mutated by fully-transparent draw: got %+v, want %+v", got, original)
	}
}

func TestOpaqueContributionReplacesExactly(t *testing.T) {
	buf := framebuffer.New(1, 1)
	buf.Set(0, 0, cell.Cell{Glyph: 'Q', Fg: color.Opaque(1, 2, 3), Bg: color.Opaque(4, 5, 6), Attrs: cell.AttrBold})

	q := layer.New(1)
	l := q.CreateLayer(0)
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Glyph: 'Z',
		Fg: color.Opaque(100, 100, 100), Bg: color.Opaque(200, 200, 200)})

	Composite(q, buf)

	got := buf.Get(0, 0)
	want := cell.Cell{Glyph: 'Z', Fg: color.Opaque(100, 100, 100), Bg: color.Opaque(200, 200, 200)}
	if got.Glyph != want.Glyph || got.Fg != want.Fg || got.Bg != want.Bg {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNoFgColorErasesForeground(t *testing.T) {
	buf := framebuffer.New(1, 1)
	buf.Set(0, 0, cell.Cell{Glyph: 'Q', Fg: color.Opaque(1, 2, 3)})

	q := layer.New(1)
	l := q.CreateLayer(0)
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Attrs: cell.NoFgColor})

	Composite(q, buf)

	c := buf.Get(0, 0)
	if c.Fg.A != 0 {
		t.Errorf("fg.A = %d, want 0", c.Fg.A)
	}
	if !c.Attrs.Has(cell.NoFgColor) {
		t.Errorf("NoFgColor not set")
	}
}

func TestLayerOrderOpaqueZ1WinsOverZ0(t *testing.T) {
	buf := framebuffer.New(1, 1)
	q := layer.New(2)
	back := q.CreateLayer(0)
	front := q.CreateLayer(1)
	q.PushFill(back, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Glyph: 'B', Fg: color.Opaque(1, 1, 1), Bg: color.Opaque(1, 1, 1)})
	q.PushFill(front, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Glyph: 'F', Fg: color.Opaque(9, 9, 9), Bg: color.Opaque(9, 9, 9)})

	Composite(q, buf)

	c := buf.Get(0, 0)
	if c.Glyph != 'F' || c.Fg != color.Opaque(9, 9, 9) {
		t.Errorf("got %+v, want front layer's cell", c)
	}
}

func TestNoFgColorAttrHealsOnNextOpaqueDraw(t *testing.T) {
	buf := framebuffer.New(1, 1)
	q := layer.New(1)
	l := q.CreateLayer(0)
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Attrs: cell.NoFgColor})
	q.PushFill(l, drawcall.Fill{X: 0, Y: 0, Width: 1, Height: 1, Glyph: 'Y', Fg: color.Opaque(1, 1, 1)})

	Composite(q, buf)

	c := buf.Get(0, 0)
	if c.Attrs.Has(cell.NoFgColor) {
		t.Errorf("NoFgColor should have been healed by a subsequent opaque fg draw")
	}
}

func within(got, want, tolerance int) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
