package engine

import "github.com/lixenwraith/termforge/color"

// Default tunables: typed constants, no parsing logic attached. A CLI or
// other outer layer is responsible for turning flags or env vars into a
// Config; the core never reads the environment itself.
const (
	DefaultParticleCapacity = 4096
	DefaultLayerCapacity    = 8
)

// Config configures Engine construction. Width/Height are a fallback used
// only until Init queries the backend's real size. FPSCap is stored but
// not read by the engine, which performs no frame pacing of its own
// whatever its value.
type Config struct {
	Width, Height int
	FPSCap        int

	// BlendingColorOverride, if non-nil, replaces the backend-detected
	// background color as the bottom of every source-over blend. nil means
	// "ask the backend".
	BlendingColorOverride *color.Color

	ParticleCapacity int
	LayerCapacity    int
}

// DefaultConfig returns a Config with the package's default capacities and
// no color override, sized for an 80x24 terminal until Init corrects it.
func DefaultConfig() Config {
	return Config{
		Width:            80,
		Height:           24,
		ParticleCapacity: DefaultParticleCapacity,
		LayerCapacity:    DefaultLayerCapacity,
	}
}
