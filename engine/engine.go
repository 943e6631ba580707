// Package engine owns the per-frame rendering pipeline: the layered draw
// queue, both frame buffers, the particle system, timing state, and the
// Backend handle. It is the one type user code constructs and drives.
package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
	"github.com/lixenwraith/termforge/compositor"
	"github.com/lixenwraith/termforge/diff"
	"github.com/lixenwraith/termforge/drawcall"
	"github.com/lixenwraith/termforge/framebuffer"
	"github.com/lixenwraith/termforge/layer"
	"github.com/lixenwraith/termforge/particle"
)

// Engine is the public entry point: it owns the LayeredDrawQueue, both
// FrameBuffers, the ParticleSystem, timing state, and the Backend handle.
// Layers and particles live inside their respective containers and are
// never referenced from outside except by the opaque indices this package
// hands out.
type Engine struct {
	cfg     Config
	backend Backend

	queue       *layer.Queue
	current     *framebuffer.Buffer
	previous    *framebuffer.Buffer
	particles   *particle.System
	blendBottom color.Color
	overridden  bool

	lastFrame time.Time
	deltaTime float32
	fps       float32
	frameNum  uint64

	pendingInput  []InputEvent
	pendingResize Size
	resized       bool
}

// New allocates both frame buffers, the layer queue, and the particle
// system. color.Blend is backed by its own init()-time lookup table and
// needs no construction here, but every other piece of per-Engine state is
// allocated up front rather than lazily.
func New(cfg Config, backend Backend) (*Engine, error) {
	if backend == nil {
		return nil, fmt.Errorf("termforge: engine.New: backend is nil")
	}
	if cfg.ParticleCapacity <= 0 {
		cfg.ParticleCapacity = DefaultParticleCapacity
	}
	if cfg.LayerCapacity <= 0 {
		cfg.LayerCapacity = DefaultLayerCapacity
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 80, 24
	}

	e := &Engine{
		cfg:       cfg,
		backend:   backend,
		queue:     layer.New(cfg.LayerCapacity),
		current:   framebuffer.New(cfg.Width, cfg.Height),
		previous:  framebuffer.New(cfg.Width, cfg.Height),
		particles: particle.New(cfg.ParticleCapacity, rand.Float32),
	}

	if cfg.BlendingColorOverride != nil {
		e.blendBottom = *cfg.BlendingColorOverride
		e.overridden = true
	}

	return e, nil
}

// Init enters raw mode on the backend, determines the blending bottom
// color (the override if one was configured, otherwise whatever the
// backend detects), and sizes both frame buffers to the backend's
// reported dimensions.
func (e *Engine) Init() error {
	if err := e.backend.EnterRawMode(); err != nil {
		return fmt.Errorf("termforge: init: %w", err)
	}

	if !e.overridden {
		e.blendBottom = e.backend.DetectBackgroundColor()
	}

	w, h := e.backend.Size()
	if w > 0 && h > 0 {
		e.current.Resize(w, h)
		e.previous.Resize(w, h)
	}

	e.lastFrame = time.Now()
	return nil
}

// ExitCleanup leaves raw mode and restores line wrap. Safe to call even if
// Init failed partway through.
func (e *Engine) ExitCleanup() error {
	if err := e.backend.LeaveRawMode(); err != nil {
		return fmt.Errorf("termforge: exit cleanup: %w", err)
	}
	if err := e.backend.RestoreLineWrap(); err != nil {
		return fmt.Errorf("termforge: exit cleanup: %w", err)
	}
	return nil
}

// StartFrame clears the draw queue's per-layer call slices (retaining
// their capacity), drains any backend input/resize events accumulated
// since the previous frame, bumps the frame counter, and computes Δt from
// the monotonic clock since the previous StartFrame.
func (e *Engine) StartFrame() {
	e.queue.ClearForNextFrame()
	e.drainBackendEvents()

	now := time.Now()
	if e.frameNum > 0 {
		e.deltaTime = float32(now.Sub(e.lastFrame).Seconds())
		if e.deltaTime > 0 {
			e.fps = 1 / e.deltaTime
		}
	}
	e.lastFrame = now
	e.frameNum++
}

// drainBackendEvents empties the backend's input and resize channels into
// per-frame state. This is the one point in the frame where the Engine
// talks to the backend's background goroutines — never mid-frame, always
// here at the top of StartFrame, and always a non-blocking drain (a
// channel with nothing ready ends the loop immediately rather than
// waiting on input that may never arrive).
func (e *Engine) drainBackendEvents() {
	e.pendingInput = e.pendingInput[:0]
	input := e.backend.PollEvents()
drainInput:
	for {
		select {
		case ev := <-input:
			e.pendingInput = append(e.pendingInput, ev)
		default:
			break drainInput
		}
	}

	e.resized = false
	resize := e.backend.ResizeEvents()
drainResize:
	for {
		select {
		case sz := <-resize:
			e.pendingResize = sz
			e.resized = true
		default:
			break drainResize
		}
	}

	if e.resized {
		e.current.Resize(e.pendingResize.Width, e.pendingResize.Height)
		e.previous.Resize(e.pendingResize.Width, e.pendingResize.Height)
	}
}

// EndFrame runs the compositor and differ over the current frame, writes
// every diff entry to the backend, and swaps current/previous only if the
// whole write succeeds. On backend error the current buffer is NOT
// swapped into previous, so the next frame re-emits a full diff for any
// cell that changed in the meantime — eventual consistency rather than a
// hard failure.
func (e *Engine) EndFrame() error {
	e.current.Reset(cell.Cell{Glyph: ' ', Bg: e.blendBottom, Attrs: cell.NoFgColor})
	compositor.Composite(e.queue, e.current)

	var writeErr error
	diff.Each(e.current, e.previous, func(p diff.Product) {
		if writeErr != nil {
			return
		}
		if err := e.backend.WriteCell(p.X, p.Y, p.Cell); err != nil {
			writeErr = err
		}
	})
	if writeErr != nil {
		return fmt.Errorf("termforge: end frame: %w", writeErr)
	}

	if err := e.backend.Flush(); err != nil {
		return fmt.Errorf("termforge: end frame: %w", err)
	}

	framebuffer.Swap(e.current, e.previous)
	return nil
}

// CreateLayer allocates a new layer at z-order z and returns its
// opaque, process-lifetime-stable handle.
func (e *Engine) CreateLayer(z int) layer.LayerIndex {
	return e.queue.CreateLayer(z)
}

// Particles exposes the owned particle system so callers can Spawn from
// emitters. Updating is NOT automatic — callers that want particles
// advanced must call UpdateParticles each frame, typically
// right after StartFrame.
func (e *Engine) Particles() *particle.System {
	return e.particles
}

// UpdateParticles advances the particle system by the current frame's Δt
// and pushes its draw calls into layer idx.
func (e *Engine) UpdateParticles(idx layer.LayerIndex) {
	e.particles.Update(e.deltaTime, e.queue, idx)
}

// DrawText pushes a Text draw call into layer idx. Thin adapter: the
// Fill/Text/Twoxel/Octad/Standard value is copied straight into the
// queue's own per-kind slice, never boxed into the drawcall.DrawCall
// interface, so this allocates nothing once the queue's backing arrays
// have grown to steady state.
func (e *Engine) DrawText(idx layer.LayerIndex, x, y int, runes []rune, fg, bg color.Color, attrs cell.Attr) {
	e.queue.PushText(idx, drawcall.Text{X: x, Y: y, Runes: runes, Fg: fg, Bg: bg, Attrs: attrs})
}

// DrawRect pushes a solid-cell rectangle draw call into layer idx.
func (e *Engine) DrawRect(idx layer.LayerIndex, x, y, width, height int, glyph rune, fg, bg color.Color, attrs cell.Attr) {
	e.queue.PushFill(idx, drawcall.Fill{X: x, Y: y, Width: width, Height: height, Glyph: glyph, Fg: fg, Bg: bg, Attrs: attrs})
}

// FillRect is an alias of DrawRect kept for call sites that only fill a
// background color with no glyph.
func (e *Engine) FillRect(idx layer.LayerIndex, x, y, width, height int, bg color.Color) {
	e.queue.PushFill(idx, drawcall.Fill{X: x, Y: y, Width: width, Height: height, Bg: bg})
}

// EraseRect pushes an erase-to-terminal-default draw call into layer idx.
func (e *Engine) EraseRect(idx layer.LayerIndex, x, y, width, height int) {
	e.queue.PushFill(idx, drawcall.Erase(x, y, width, height))
}

// DrawTwoxel pushes a stacked half-block (two vertical sub-pixels per
// cell) draw call into layer idx.
func (e *Engine) DrawTwoxel(idx layer.LayerIndex, points []drawcall.TwoxelPoint) {
	e.queue.PushTwoxel(idx, drawcall.Twoxel{Points: points})
}

// DrawOctad pushes a braille sub-pixel (2x4 grid per cell) draw call into
// layer idx.
func (e *Engine) DrawOctad(idx layer.LayerIndex, points []drawcall.OctadPoint) {
	e.queue.PushOctad(idx, drawcall.Octad{Points: points})
}

// DrawStandard pushes a pre-rendered rectangular array of per-cell
// contributions into layer idx — the escape hatch for callers that have
// already computed per-cell glyph/color data (e.g. a text-mode UI toolkit
// rendering a widget) rather than describing it as a uniform fill, run of
// text, or sub-cell sample grid.
func (e *Engine) DrawStandard(idx layer.LayerIndex, x, y, width, height int, cells []drawcall.Contribution) {
	e.queue.PushStandard(idx, drawcall.Standard{X: x, Y: y, Width: width, Height: height, Cells: cells})
}

// OverrideBlendingColor replaces the backend-detected background used as
// the bottom layer of every source-over blend.
func (e *Engine) OverrideBlendingColor(c color.Color) {
	e.blendBottom = c
	e.overridden = true
}

// GetFPS returns the instantaneous frames-per-second implied by the most
// recent StartFrame-to-StartFrame interval.
func (e *Engine) GetFPS() float32 {
	return e.fps
}

// DeltaTime returns the seconds elapsed since the previous StartFrame.
func (e *Engine) DeltaTime() float32 {
	return e.deltaTime
}

// InputEvents returns the input events the backend delivered since the
// previous StartFrame, in arrival order. The returned slice is reused by
// the next StartFrame's drain; callers that need an event past the current
// frame must copy it out.
func (e *Engine) InputEvents() []InputEvent {
	return e.pendingInput
}

// Resized reports whether the backend reported a new terminal size since
// the previous StartFrame, and that size if so. Both frame buffers have
// already been resized to match by the time this returns true.
func (e *Engine) Resized() (Size, bool) {
	return e.pendingResize, e.resized
}
