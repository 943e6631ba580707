package backend

import (
	"bufio"
	"io"

	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
)

// cellWriter turns the engine's diff stream into ANSI/SGR bytes, tracking
// cursor position and the last-emitted style so it only writes the escapes
// that actually changed. It is a pure write-through over whatever (x, y,
// cell) pairs it is handed — the diff package has already computed the
// minimal stream, so this layer does no dirty-cell comparison of its own.
type cellWriter struct {
	w         *bufio.Writer
	colorMode ColorMode

	cursorX, cursorY int
	cursorValid      bool

	lastFg, lastBg color.Color
	lastAttr       cell.Attr
	lastValid      bool
}

func newCellWriter(out io.Writer, colorMode ColorMode) *cellWriter {
	return &cellWriter{
		w:         bufio.NewWriterSize(out, 131072),
		colorMode: colorMode,
	}
}

// invalidate forces the next WriteCell/MoveCursor call to re-emit position
// and style rather than trusting the tracked state. Called by ClearScreen,
// whose write moves the cursor and resets the style.
func (cw *cellWriter) invalidate() {
	cw.cursorValid = false
	cw.lastValid = false
}

// WriteCell positions the cursor if needed and writes one styled glyph.
func (cw *cellWriter) WriteCell(x, y int, c cell.Cell) {
	w := cw.w

	if !cw.cursorValid || x != cw.cursorX || y != cw.cursorY {
		if cw.cursorValid && y == cw.cursorY && x > cw.cursorX {
			writeCursorForward(w, x-cw.cursorX)
		} else {
			writeCursorPos(w, x, y)
		}
		cw.cursorX, cw.cursorY = x, y
		cw.cursorValid = true
	}

	cw.writeStyleCoalesced(c.Fg, c.Bg, c.Attrs)

	r := c.Glyph
	if r == 0 {
		r = ' '
	}
	if r < 0x80 {
		w.WriteByte(byte(r))
	} else {
		w.WriteRune(r)
	}
	cw.cursorX++
}

// writeStyleCoalesced emits only the SGR parameters that changed since the
// last WriteCell, combining foreground, background, and style attributes
// into one escape sequence when more than one changed together.
func (cw *cellWriter) writeStyleCoalesced(fg, bg color.Color, attr cell.Attr) {
	fgChanged := !cw.lastValid || fg != cw.lastFg || attr.Has(cell.NoFgColor) != cw.lastAttr.Has(cell.NoFgColor)
	bgChanged := !cw.lastValid || bg != cw.lastBg || attr.Has(cell.NoBgColor) != cw.lastAttr.Has(cell.NoBgColor)
	styleAttr := attr & cell.AttrStyle
	lastStyleAttr := cw.lastAttr & cell.AttrStyle
	attrChanged := !cw.lastValid || styleAttr != lastStyleAttr

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	w := cw.w

	if attrChanged {
		w.Write(csi)
		w.WriteByte('0')
		if styleAttr.Has(cell.AttrBold) {
			w.Write([]byte(";1"))
		}
		if styleAttr.Has(cell.AttrItalic) {
			w.Write([]byte(";3"))
		}
		if styleAttr.Has(cell.AttrUnderline) {
			w.Write([]byte(";4"))
		}
		if styleAttr.Has(cell.AttrReverse) {
			w.Write([]byte(";7"))
		}
		cw.writeFgInline(fg, attr)
		cw.writeBgInline(bg, attr)
		w.WriteByte('m')
	} else if fgChanged && bgChanged {
		w.Write(csi)
		cw.writeFgInline(fg, attr)
		cw.writeBgInline(bg, attr)
		w.WriteByte('m')
	} else if fgChanged {
		cw.writeFgFull(fg, attr)
	} else if bgChanged {
		cw.writeBgFull(bg, attr)
	}

	cw.lastFg, cw.lastBg, cw.lastAttr, cw.lastValid = fg, bg, attr, true
}

func (cw *cellWriter) writeFgInline(fg color.Color, attr cell.Attr) {
	w := cw.w
	w.WriteByte(';')
	if attr.Has(cell.NoFgColor) {
		w.Write([]byte("39"))
		return
	}
	switch {
	case cw.colorMode == ColorModeTrueColor:
		w.Write([]byte("38;2;"))
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
	default:
		w.Write([]byte("38;5;"))
		writeInt(w, int(RGBTo256(fg)))
	}
}

func (cw *cellWriter) writeBgInline(bg color.Color, attr cell.Attr) {
	w := cw.w
	w.WriteByte(';')
	if attr.Has(cell.NoBgColor) {
		w.Write([]byte("49"))
		return
	}
	switch {
	case cw.colorMode == ColorModeTrueColor:
		w.Write([]byte("48;2;"))
		writeInt(w, int(bg.R))
		w.WriteByte(';')
		writeInt(w, int(bg.G))
		w.WriteByte(';')
		writeInt(w, int(bg.B))
	default:
		w.Write([]byte("48;5;"))
		writeInt(w, int(RGBTo256(bg)))
	}
}

func (cw *cellWriter) writeFgFull(fg color.Color, attr cell.Attr) {
	w := cw.w
	if attr.Has(cell.NoFgColor) {
		w.Write([]byte("\x1b[39m"))
		return
	}
	if cw.colorMode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
		w.WriteByte('m')
		return
	}
	w.Write(csiFg256)
	writeInt(w, int(RGBTo256(fg)))
	w.WriteByte('m')
}

func (cw *cellWriter) writeBgFull(bg color.Color, attr cell.Attr) {
	w := cw.w
	if attr.Has(cell.NoBgColor) {
		w.Write([]byte("\x1b[49m"))
		return
	}
	if cw.colorMode == ColorModeTrueColor {
		w.Write(csiBgRGB)
		writeInt(w, int(bg.R))
		w.WriteByte(';')
		writeInt(w, int(bg.G))
		w.WriteByte(';')
		writeInt(w, int(bg.B))
		w.WriteByte('m')
		return
	}
	w.Write(csiBg256)
	writeInt(w, int(RGBTo256(bg)))
	w.WriteByte('m')
}

// MoveCursor repositions the cursor directly, bypassing style tracking.
func (cw *cellWriter) MoveCursor(x, y int) {
	writeCursorPos(cw.w, x, y)
	cw.cursorX, cw.cursorY = x, y
	cw.cursorValid = true
}

// ClearScreen wipes the whole screen to bg and resets tracked state.
func (cw *cellWriter) ClearScreen(bg color.Color) {
	w := cw.w
	w.Write(csiSGR0)
	cw.writeBgFull(bg, 0)
	w.Write(csiClear)
	cw.invalidate()
}

func (cw *cellWriter) Flush() error {
	return cw.w.Flush()
}
