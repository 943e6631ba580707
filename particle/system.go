package particle

import (
	"github.com/lixenwraith/termforge/drawcall"
	"github.com/lixenwraith/termforge/layer"
)

// spawnRequest is one pending emission: spawn count particles from emitter
// on the next Update call. Requests queued mid-frame (e.g. by game logic
// reacting to a collision) are not fulfilled until the following Update,
// which runs emission after integration and compaction for the current
// frame.
type spawnRequest struct {
	emitter *Emitter
	count   int
}

// System is the dense-vector particle store. Indices into particles are
// stable only within a frame — Update's swap-remove compaction reorders the
// slice, so nothing outside the system may hold a particle index across
// frames.
type System struct {
	particles []Particle
	pending   []spawnRequest
	rng       func() float32
	scratch   []drawcall.OctadPoint // reused by emit to avoid per-frame allocation
}

// New creates an empty particle system with capacity preallocated for
// capacityHint live particles. rng must return a value in [0,1) each call;
// pass a deterministic source in tests.
func New(capacityHint int, rng func() float32) *System {
	return &System{
		particles: make([]Particle, 0, capacityHint),
		rng:       rng,
	}
}

// Len reports the current number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Spawn enqueues a request to emit count particles from emitter on the next
// Update. A non-positive count is a no-op.
func (s *System) Spawn(emitter *Emitter, count int) {
	if count <= 0 {
		return
	}
	s.pending = append(s.pending, spawnRequest{emitter: emitter, count: count})
}

// Update advances the whole system by dt seconds: integrate every live
// particle, swap-remove the ones that died this step, fulfill pending spawn
// requests, and finally push one Octad draw call, holding one point per
// surviving particle, into the queue's layer idx. These four steps never expose their intermediate
// results outside this function.
func (s *System) Update(dt float32, q *layer.Queue, idx layer.LayerIndex) {
	s.integrateAndCompact(dt)
	s.fulfillPending()
	s.emit(q, idx)
}

// integrateAndCompact performs steps 1-2: advance every particle by dt,
// then swap-remove the ones whose lifetime has expired. Iterating backward
// means a swap-in from the tail is never revisited before it has itself
// been checked.
func (s *System) integrateAndCompact(dt float32) {
	for i := len(s.particles) - 1; i >= 0; i-- {
		p := &s.particles[i]
		p.Integrate(dt)

		if !p.Alive() || !finite(p.Position.X) || !finite(p.Position.Y) || !finite(p.Lifetime) {
			last := len(s.particles) - 1
			s.particles[i] = s.particles[last]
			s.particles = s.particles[:last]
		}
	}
}

func finite(v float32) bool {
	return v == v && v < maxFinite && v > -maxFinite
}

const maxFinite = 3.4e38 // just under float32's max; excludes +/-Inf and NaN (v==v is false for NaN)

// fulfillPending performs step 3: spawns particles for every queued
// request, then clears the queue. Growth beyond the initial capacity hint
// is the one case this system allocates past warmup — callers that need a
// hard allocation-free steady state should size capacityHint for their
// peak concurrent particle count.
func (s *System) fulfillPending() {
	for _, req := range s.pending {
		for i := 0; i < req.count; i++ {
			s.particles = append(s.particles, req.emitter.spawnAt(s.rng))
		}
	}
	s.pending = s.pending[:0]
}

// emit performs step 4: pushes a single Octad draw call into layer idx of
// q, with one full-mask point per live particle, in slice order. Dead particles were already removed by
// integrateAndCompact, so nothing here can emit a draw call for a particle
// that died this frame.
func (s *System) emit(q *layer.Queue, idx layer.LayerIndex) {
	if len(s.particles) == 0 {
		return
	}
	if cap(s.scratch) < len(s.particles) {
		s.scratch = make([]drawcall.OctadPoint, len(s.particles))
	}
	s.scratch = s.scratch[:len(s.particles)]
	for i, p := range s.particles {
		s.scratch[i] = drawcall.OctadPoint{
			X:    int(p.Position.X),
			Y:    int(p.Position.Y),
			Fg:   p.Color,
			Mask: 0xFF,
		}
	}
	q.PushOctad(idx, drawcall.Octad{Points: s.scratch})
}
