// Package backend implements a raw-mode ANSI terminal backend over a Unix
// tty: the one concrete realization of the engine's Backend contract —
// direct raw-mode entry via golang.org/x/term, a coalesced SGR writer, and
// a SIGWINCH-driven resize watcher.
package backend

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
)

// TerminalBackend writes termforge frames to a real terminal over stdin/
// stdout. It satisfies engine.Backend by structural typing. Package backend
// imports engine only for the shared Key/InputEvent/Size types, and engine
// never imports backend, keeping the dependency one-directional.
type TerminalBackend struct {
	in  *os.File
	out *os.File

	inFd, outFd int

	oldState *term.State

	colorMode ColorMode
	writer    *cellWriter
	input     *inputReader
	resize    *resizeHandler

	mu          sync.Mutex
	initialized bool
}

// New builds a TerminalBackend over the process's stdin/stdout.
func New() *TerminalBackend {
	return &TerminalBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// EnterRawMode puts the tty into raw mode, enters the alternate screen
// buffer, hides the cursor, and starts the background input and resize
// watchers. Safe to call once; a second call is a no-op.
func (b *TerminalBackend) EnterRawMode() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	b.colorMode = detectColorMode()

	oldState, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("termforge: enter raw mode: %w", err)
	}
	b.oldState = oldState

	b.writer = newCellWriter(b.out, b.colorMode)
	b.input = newInputReader(b.inFd)
	b.resize = newResizeHandler(b.outFd)

	b.out.Write(csiAltScreenEnter)
	b.out.Write(csiCursorHide)
	b.out.Write(csiAutoWrapOff)

	b.input.start()
	b.resize.start()

	b.initialized = true
	return nil
}

// LeaveRawMode undoes EnterRawMode: stops the watchers, restores cursor
// visibility and the primary screen buffer, and restores the original
// termios state. Safe to call multiple times or without a prior
// EnterRawMode.
func (b *TerminalBackend) LeaveRawMode() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil
	}

	b.input.stop()
	b.resize.stop()

	b.out.Write(csiAutoWrapOn)
	b.out.Write(csiCursorShow)
	b.out.Write(csiAltScreenExit)
	b.out.Write(csiSGR0)

	var err error
	if b.oldState != nil {
		if restoreErr := term.Restore(b.inFd, b.oldState); restoreErr != nil {
			err = fmt.Errorf("termforge: leave raw mode: %w", restoreErr)
		}
	}

	b.initialized = false
	return err
}

// RestoreLineWrap re-enables terminal auto-wrap (DECAWM), in case a caller
// disabled it independently of EnterRawMode/LeaveRawMode's own toggling.
func (b *TerminalBackend) RestoreLineWrap() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.out.Write(csiAutoWrapOn)
	return err
}

// Size returns the tty's current dimensions.
func (b *TerminalBackend) Size() (width, height int) {
	return getTerminalSize(b.outFd)
}

// ResizeEvents returns a channel that receives a new Size each time the
// terminal is resized. Only valid after EnterRawMode.
func (b *TerminalBackend) ResizeEvents() <-chan Size {
	return b.resize.events()
}

// ClearScreen wipes the whole screen to bg.
func (b *TerminalBackend) ClearScreen(bg color.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil
	}
	b.writer.ClearScreen(bg)
	return b.writer.Flush()
}

// MoveCursor positions the cursor, clamped to the current tty bounds.
func (b *TerminalBackend) MoveCursor(x, y int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil
	}

	w, h := getTerminalSize(b.outFd)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}

	b.writer.MoveCursor(x, y)
	return b.writer.Flush()
}

// WriteCell writes one styled glyph at (x, y). Callers are expected to
// batch a whole frame's diff entries and Flush once at the end; WriteCell
// itself does not flush.
func (b *TerminalBackend) WriteCell(x, y int, c cell.Cell) error {
	if !b.initialized {
		return nil
	}
	b.writer.WriteCell(x, y, c)
	return nil
}

// Flush pushes any buffered writes out to the terminal.
func (b *TerminalBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil
	}
	if err := b.writer.Flush(); err != nil {
		return fmt.Errorf("termforge: flush: %w", err)
	}
	return nil
}

// DetectBackgroundColor answers what the engine should blend against as
// the implicit bottom layer, absent an explicit override.
func (b *TerminalBackend) DetectBackgroundColor() color.Color {
	return detectBackgroundColor()
}

// PollEvents returns the channel of decoded input events. Only valid
// after EnterRawMode.
func (b *TerminalBackend) PollEvents() <-chan InputEvent {
	return b.input.events()
}
