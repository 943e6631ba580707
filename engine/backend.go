package engine

import (
	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
)

// Key identifies a non-printable key decoded from a raw input sequence.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // printable character; see InputEvent.Rune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// InputEvent is one decoded unit of terminal input.
type InputEvent struct {
	Key  Key
	Rune rune
}

// Size is a terminal dimension snapshot.
type Size struct {
	Width, Height int
}

// Backend is the capability set the engine needs from whatever actually
// talks to the terminal (or a test double). The core only ever depends on
// this interface — concrete implementations, such as
// backend.TerminalBackend, live in their own package and are never
// imported here; InputEvent/Size are defined on this side of the boundary
// so a concrete backend depends on the engine's vocabulary for them
// rather than the other way around.
type Backend interface {
	EnterRawMode() error
	LeaveRawMode() error
	RestoreLineWrap() error

	Size() (width, height int)

	ClearScreen(bg color.Color) error
	MoveCursor(x, y int) error
	WriteCell(x, y int, c cell.Cell) error
	Flush() error

	DetectBackgroundColor() color.Color

	// PollEvents and ResizeEvents each return a channel the concrete
	// backend's own background goroutine feeds; the Engine is the only
	// reader, and only drains them synchronously from StartFrame, never
	// mid-frame.
	PollEvents() <-chan InputEvent
	ResizeEvents() <-chan Size
}
