package backend

import (
	"os"
	"runtime/debug"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/lixenwraith/termforge/engine"
)

// Key and InputEvent are the engine's own vocabulary for decoded input —
// defined on the engine side of the Backend boundary so this package
// depends on the engine's contract rather than the engine depending on a
// concrete backend's types.
type Key = engine.Key

const (
	KeyNone      = engine.KeyNone
	KeyRune      = engine.KeyRune // printable character; see InputEvent.Rune
	KeyEscape    = engine.KeyEscape
	KeyEnter     = engine.KeyEnter
	KeyTab       = engine.KeyTab
	KeyBackspace = engine.KeyBackspace
	KeyUp        = engine.KeyUp
	KeyDown      = engine.KeyDown
	KeyLeft      = engine.KeyLeft
	KeyRight     = engine.KeyRight
)

// InputEvent is one decoded unit of terminal input.
type InputEvent = engine.InputEvent

// inputReader decodes raw stdin bytes into InputEvents on a background
// goroutine, communicating with the rest of the engine only through a
// buffered channel between its readLoop goroutine and PollEvents callers.
type inputReader struct {
	fd      int
	eventCh chan InputEvent
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	running bool
}

func newInputReader(fd int) *inputReader {
	return &inputReader{
		fd:      fd,
		eventCh: make(chan InputEvent, 64),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

func (r *inputReader) events() <-chan InputEvent {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			emergencyReset(os.Stdout)
			os.Stderr.WriteString("\r\ntermforge: input reader crashed\r\n")
			os.Stderr.WriteString(string(debug.Stack()))
			os.Exit(1)
		}
	}()

	buf := make([]byte, 256)

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		ready, err := pollRead(r.fd, 100)
		if err != nil || !ready {
			continue
		}

		n, err := unix.Read(r.fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return
		}
		if n == 0 {
			return
		}

		r.parse(buf[:n])
	}
}

func pollRead(fd int, timeoutMs int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

// parse decodes one read of raw bytes into InputEvents. It recognizes a
// handful of common CSI arrow sequences and the usual single-byte control
// keys; anything else single-byte is treated as a rune. Richer escape
// decoding (function keys, modifiers, bracketed paste) is out of scope for
// this backend's minimal event contract.
func (r *inputReader) parse(data []byte) {
	i := 0
	for i < len(data) {
		b := data[i]

		if b == 0x1b && i+2 < len(data) && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				r.send(InputEvent{Key: KeyUp})
				i += 3
				continue
			case 'B':
				r.send(InputEvent{Key: KeyDown})
				i += 3
				continue
			case 'C':
				r.send(InputEvent{Key: KeyRight})
				i += 3
				continue
			case 'D':
				r.send(InputEvent{Key: KeyLeft})
				i += 3
				continue
			}
		}

		switch b {
		case 0x1b:
			r.send(InputEvent{Key: KeyEscape})
		case '\r', '\n':
			r.send(InputEvent{Key: KeyEnter})
		case '\t':
			r.send(InputEvent{Key: KeyTab})
		case 0x7f:
			r.send(InputEvent{Key: KeyBackspace})
		default:
			r.send(InputEvent{Key: KeyRune, Rune: rune(b)})
		}
		i++
	}
}

func (r *inputReader) send(ev InputEvent) {
	select {
	case r.eventCh <- ev:
	default:
	}
}
