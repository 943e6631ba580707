package backend

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/lixenwraith/termforge/engine"
)

// Size is the engine's own terminal dimension snapshot type — see the note
// on Key/InputEvent in input.go for why it's defined on the engine side of
// the Backend boundary.
type Size = engine.Size

// resizeHandler watches SIGWINCH and reports the new size on a buffered,
// always-fresh channel (older unread sizes are replaced, never queued).
type resizeHandler struct {
	fd      int
	sigCh   chan os.Signal
	eventCh chan Size
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newResizeHandler(fd int) *resizeHandler {
	return &resizeHandler{
		fd:      fd,
		sigCh:   make(chan os.Signal, 1),
		eventCh: make(chan Size, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *resizeHandler) start() {
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

func (r *resizeHandler) stop() {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh
}

func (r *resizeHandler) events() <-chan Size {
	return r.eventCh
}

func (r *resizeHandler) watchLoop() {
	defer close(r.doneCh)

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			w, h := getTerminalSize(r.fd)
			if w <= 0 || h <= 0 {
				continue
			}
			select {
			case r.eventCh <- Size{Width: w, Height: h}:
			default:
				select {
				case <-r.eventCh:
				default:
				}
				r.eventCh <- Size{Width: w, Height: h}
			}
		}
	}
}

// getTerminalSize reads the tty's current dimensions via TIOCGWINSZ.
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// emergencyReset attempts to leave the terminal in a sane state from a
// panic-recovery path where the normal LeaveRawMode sequence cannot run.
func emergencyReset(out *os.File) {
	out.Write(csiCursorShow)
	out.Write(csiAltScreenExit)
	out.Write(csiSGR0)
	out.Write(csiRIS)
}
