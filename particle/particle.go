// Package particle implements the dense-vector particle store, the
// principal producer of draw calls for transient visual effects (sparks,
// bursts, trails).
//
// Particles live in a plain float32 Vec2, not a fixed-point or ECS-shared
// representation — there's nothing else in this system to share a numeric
// type with, so float32 is the simpler, equally correct choice (see
// DESIGN.md). Swap-remove compaction (dying element swaps with the last
// live one, slice shrinks by one) keeps removal O(1) and the storage dense,
// the same trick spatial hash grids and pending-spawn queues use to avoid
// leaving holes after a removal.
package particle

import "github.com/lixenwraith/termforge/color"

// Vec2 is a 2D float32 vector: position, velocity, or acceleration.
type Vec2 struct {
	X, Y float32
}

// Particle is one simulated point: kinematics, remaining lifetime, and the
// visual state it will contribute to a draw call each frame it is alive.
type Particle struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2
	Lifetime     float32 // seconds remaining; <= 0 means dead
	InitialLife  float32 // seconds, for gradient/fraction lookups
	Color        color.Color
	Glyph        rune
}

// Alive reports whether the particle should still be integrated and drawn.
func (p *Particle) Alive() bool {
	return p.Lifetime > 0
}

// Integrate advances one particle by dt seconds. Position picks up the
// half-step acceleration term (position += velocity*dt + 0.5*accel*dt²)
// before velocity is advanced, so that under constant acceleration the
// per-frame result matches the continuous kinematic solution exactly
// rather than accumulating the step-order error a plain velocity-then-
// position Euler step would under the coarser dt a particle burst runs at.
func (p *Particle) Integrate(dt float32) {
	half := float32(0.5) * dt * dt
	p.Position.X += p.Velocity.X*dt + p.Acceleration.X*half
	p.Position.Y += p.Velocity.Y*dt + p.Acceleration.Y*half
	p.Velocity.X += p.Acceleration.X * dt
	p.Velocity.Y += p.Acceleration.Y * dt
	p.Lifetime -= dt
}

// LifeFraction returns how much lifetime remains, in [0,1] — 1 at spawn,
// 0 at death, the same scale Emitter.SampleColor takes. System.Update does
// not call it: a particle's Color is sampled once, at spawn, and stays
// fixed. Returns 0 if InitialLife is non-positive, avoiding a division by
// zero without treating it as an error.
func (p *Particle) LifeFraction() float32 {
	if p.InitialLife <= 0 {
		return 0
	}
	f := p.Lifetime / p.InitialLife
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
