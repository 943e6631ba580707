// Package cell defines the per-grid-position visual state the compositor
// folds draw calls into, and the bitfield of style/erase flags that rides
// alongside it.
//
// Same shape as a classic terminal cell (glyph + fg + bg + attribute
// bitmask), with two additions needed because colors here carry an alpha
// channel: NoFgColor and NoBgColor, packed as attribute bits rather than a
// 5th Color state — a separate optional field would double Cell's size
// through alignment padding.
package cell

import "github.com/lixenwraith/termforge/color"

// Attr is a bitmask of style flags plus the two color-erase markers.
type Attr uint16

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrItalic    Attr = 1 << 1
	AttrUnderline Attr = 1 << 2
	AttrReverse   Attr = 1 << 3

	// NoFgColor marks the foreground channel as "erased to terminal
	// default", distinct from fully transparent (which means "keep
	// whatever was drawn underneath").
	NoFgColor Attr = 1 << 4
	// NoBgColor is NoFgColor's background counterpart.
	NoBgColor Attr = 1 << 5
)

// AttrStyle masks only the visual style bits, excluding the two color-erase
// markers.
const AttrStyle Attr = AttrBold | AttrItalic | AttrUnderline | AttrReverse

// Has reports whether all bits in mask are set.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// Cell is one terminal grid position's composited visual state.
type Cell struct {
	Glyph rune
	Fg    color.Color
	Bg    color.Color
	Attrs Attr
}

// Default is the cleared state: a space glyph, fully transparent fg/bg, no
// flags. framebuffer.New and Buffer.Resize fill every position with this
// value.
var Default = Cell{Glyph: ' '}

// Equal reports whether two cells are bit-for-bit identical, including
// attribute flags. This is the equality the differ uses — any difference in
// NoFgColor/NoBgColor counts as a change even if the visible glyph wouldn't.
func Equal(a, b Cell) bool {
	return a.Glyph == b.Glyph && a.Fg == b.Fg && a.Bg == b.Bg && a.Attrs == b.Attrs
}
