package particle

import (
	"math"

	"github.com/lixenwraith/termforge/color"
)

// Shape describes where newly spawned particles appear.
type Shape int

const (
	// ShapePoint spawns every particle at the emitter's origin.
	ShapePoint Shape = iota
	// ShapeCircle spawns particles uniformly within a disc of Radius.
	ShapeCircle
	// ShapeRect spawns particles uniformly within a Width x Height box
	// centered on the origin.
	ShapeRect
)

// VelocityMode selects how initial velocity is sampled.
type VelocityMode int

const (
	// VelocityPolar samples an angle in [MinAngle, MaxAngle] radians and a
	// speed in [MinSpeed, MaxSpeed].
	VelocityPolar VelocityMode = iota
	// VelocityRect samples X in [MinVelX, MaxVelX] and Y in
	// [MinVelY, MaxVelY] directly.
	VelocityRect
)

// GradientStop is one key point in a lifetime-indexed color ramp.
type GradientStop struct {
	At    float32 // life fraction in [0,1], 1 at spawn, 0 at death
	Color color.Color
}

// Emitter bundles spawn-shape, velocity-distribution, color-gradient, and
// lifetime parameters: everything needed to turn a spawn request into
// concrete Particle values, grouped into one struct rather than scattered
// across free functions.
type Emitter struct {
	OriginX, OriginY float32
	Shape            Shape
	Radius           float32 // ShapeCircle
	Width, Height    float32 // ShapeRect

	VelocityMode       VelocityMode
	MinAngle, MaxAngle float32 // radians, VelocityPolar
	MinSpeed, MaxSpeed float32
	MinVelX, MaxVelX   float32 // VelocityRect
	MinVelY, MaxVelY   float32

	AccelX, AccelY float32

	Lifetime float32 // seconds, all particles from this emitter share it
	Glyph    rune

	Gradient []GradientStop // sorted by At descending (1 -> 0); may be nil
}

// SampleColor walks the gradient and linearly interpolates between the two
// stops bracketing fraction. A nil or single-stop gradient returns the
// constant (or default) color.
func (e *Emitter) SampleColor(fraction float32) color.Color {
	if len(e.Gradient) == 0 {
		return color.Color{A: 255}
	}
	if len(e.Gradient) == 1 {
		return e.Gradient[0].Color
	}

	stops := e.Gradient
	if fraction >= stops[0].At {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if fraction >= stops[i].At {
			prev, next := stops[i-1], stops[i]
			span := prev.At - next.At
			if span <= 0 {
				return next.Color
			}
			t := (fraction - next.At) / span
			return lerpColor(next.Color, prev.Color, t)
		}
	}
	return stops[len(stops)-1].Color
}

func lerpColor(a, b color.Color, t float32) color.Color {
	return color.Color{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp8(a, b uint8, t float32) uint8 {
	v := float32(a) + (float32(b)-float32(a))*t
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// spawnAt produces one Particle from the emitter's distributions, drawing
// its two random inputs (shape placement, velocity) from rng in [0,1).
func (e *Emitter) spawnAt(rng func() float32) Particle {
	px, py := e.samplePosition(rng)
	vx, vy := e.sampleVelocity(rng)

	return Particle{
		Position:     Vec2{X: px, Y: py},
		Velocity:     Vec2{X: vx, Y: vy},
		Acceleration: Vec2{X: e.AccelX, Y: e.AccelY},
		Lifetime:     e.Lifetime,
		InitialLife:  e.Lifetime,
		Color:        e.SampleColor(1),
		Glyph:        e.Glyph,
	}
}

func (e *Emitter) samplePosition(rng func() float32) (x, y float32) {
	switch e.Shape {
	case ShapeCircle:
		angle := rng() * 2 * math.Pi
		radius := e.Radius * sqrt32(rng())
		return e.OriginX + radius*cos32(angle), e.OriginY + radius*sin32(angle)
	case ShapeRect:
		return e.OriginX + (rng()-0.5)*e.Width, e.OriginY + (rng()-0.5)*e.Height
	default: // ShapePoint
		return e.OriginX, e.OriginY
	}
}

func (e *Emitter) sampleVelocity(rng func() float32) (x, y float32) {
	switch e.VelocityMode {
	case VelocityRect:
		return lerpRange(e.MinVelX, e.MaxVelX, rng()), lerpRange(e.MinVelY, e.MaxVelY, rng())
	default: // VelocityPolar
		angle := lerpRange(e.MinAngle, e.MaxAngle, rng())
		speed := lerpRange(e.MinSpeed, e.MaxSpeed, rng())
		return speed * cos32(angle), speed * sin32(angle)
	}
}

func lerpRange(lo, hi, t float32) float32 {
	return lo + (hi-lo)*t
}

func sqrt32(v float32) float32 { return float32(math.Sqrt(float64(v))) }
func cos32(v float32) float32  { return float32(math.Cos(float64(v))) }
func sin32(v float32) float32  { return float32(math.Sin(float64(v))) }
