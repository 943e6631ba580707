package backend

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
)

func TestRGBTo256PureRedIsStable(t *testing.T) {
	a := RGBTo256(color.Opaque(255, 0, 0))
	b := RGBTo256(color.Opaque(255, 0, 0))
	if a != b {
		t.Fatalf("RGBTo256 not deterministic: %d vs %d", a, b)
	}
	if a < 16 {
		t.Errorf("got palette index %d, want >= 16 (outside system 16 colors)", a)
	}
}

func TestRGBTo256GrayscaleRamp(t *testing.T) {
	idx := RGBTo256(color.Opaque(128, 128, 128))
	if idx < 232 && idx != 16 && (idx-16)%36 != 0 {
		t.Errorf("pure gray %d mapped to non-gray-ish index %d", 128, idx)
	}
}

func TestWriteCellEmitsPositionOnFirstWrite(t *testing.T) {
	var buf bytes.Buffer
	cw := newCellWriter(&buf, ColorModeTrueColor)

	cw.WriteCell(3, 2, cell.Cell{Glyph: 'X', Fg: color.Opaque(255, 0, 0)})
	cw.Flush()

	out := buf.String()
	if !strings.Contains(out, "\x1b[3;4H") {
		t.Errorf("output %q missing expected cursor position escape", out)
	}
	if !strings.Contains(out, "X") {
		t.Errorf("output %q missing glyph", out)
	}
}

func TestWriteCellCoalescesUnchangedStyle(t *testing.T) {
	var buf bytes.Buffer
	cw := newCellWriter(&buf, ColorModeTrueColor)

	fg := color.Opaque(10, 20, 30)
	cw.WriteCell(0, 0, cell.Cell{Glyph: 'A', Fg: fg})
	cw.WriteCell(1, 0, cell.Cell{Glyph: 'B', Fg: fg})
	cw.Flush()

	out := buf.String()
	if strings.Count(out, "38;2;10;20;30") != 1 {
		t.Errorf("expected exactly one fg escape for unchanged style, got output %q", out)
	}
}

func TestWriteCellReemitsOnStyleChange(t *testing.T) {
	var buf bytes.Buffer
	cw := newCellWriter(&buf, ColorModeTrueColor)

	cw.WriteCell(0, 0, cell.Cell{Glyph: 'A', Fg: color.Opaque(1, 1, 1)})
	cw.WriteCell(1, 0, cell.Cell{Glyph: 'B', Fg: color.Opaque(2, 2, 2)})
	cw.Flush()

	out := buf.String()
	if strings.Count(out, "38;2;") != 2 {
		t.Errorf("expected two distinct fg escapes, got output %q", out)
	}
}

func TestWriteCellSkipsCursorMoveWhenContiguous(t *testing.T) {
	var buf bytes.Buffer
	cw := newCellWriter(&buf, ColorModeTrueColor)

	cw.WriteCell(5, 5, cell.Cell{Glyph: 'A'})
	cw.WriteCell(6, 5, cell.Cell{Glyph: 'B'})
	cw.Flush()

	out := buf.String()
	if strings.Count(out, "H") != 1 {
		t.Errorf("expected exactly one cursor-position escape for two contiguous cells, got %q", out)
	}
}

func TestWriteCellNoFgColorEmitsDefaultFg(t *testing.T) {
	var buf bytes.Buffer
	cw := newCellWriter(&buf, ColorModeTrueColor)

	cw.WriteCell(0, 0, cell.Cell{Glyph: ' ', Attrs: cell.NoFgColor})
	cw.Flush()

	if !strings.Contains(buf.String(), ";39") {
		t.Errorf("expected default-fg reset (39) for NoFgColor, got %q", buf.String())
	}
}
