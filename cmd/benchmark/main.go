// Command benchmark drives the termforge engine with a starfield
// background and a continuous stream of particle bursts, reporting FPS and
// per-frame timing, and writing a frametimes.csv diagnostic artifact at
// exit (one float per line, seconds per frame) — not part of the core
// engine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lixenwraith/termforge/backend"
	"github.com/lixenwraith/termforge/cell"
	"github.com/lixenwraith/termforge/color"
	"github.com/lixenwraith/termforge/engine"
	"github.com/lixenwraith/termforge/particle"
)

var (
	duration    = flag.Duration("duration", 20*time.Second, "benchmark duration")
	burstEvery  = flag.Duration("burst-every", 500*time.Millisecond, "interval between particle bursts")
	burstSize   = flag.Int("burst-size", 150, "particles spawned per burst")
	csvPath     = flag.String("frametimes", "frametimes.csv", "path to write per-frame timings")
)

type star struct {
	x, y       float32
	brightness float32
}

func main() {
	flag.Parse()

	tb := backend.New()
	eng, err := engine.New(engine.DefaultConfig(), tb)
	if err != nil {
		fmt.Fprintln(os.Stderr, "termforge benchmark:", err)
		os.Exit(1)
	}
	if err := eng.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "termforge benchmark:", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		eng.ExitCleanup()
		os.Exit(0)
	}()
	defer eng.ExitCleanup()

	w, h := tb.Size()

	bgLayer := eng.CreateLayer(0)
	particleLayer := eng.CreateLayer(1)

	stars := make([]star, 200)
	for i := range stars {
		stars[i] = star{
			x:          rand.Float32() * float32(w),
			y:          rand.Float32() * float32(h),
			brightness: 0.2 + rand.Float32()*0.8,
		}
	}

	burstEmitter := &particle.Emitter{
		VelocityMode: particle.VelocityPolar,
		MinAngle:     0, MaxAngle: 6.28318,
		MinSpeed: 2, MaxSpeed: 10,
		AccelY:   6,
		Lifetime: 1.5,
		Glyph:    '*',
		Gradient: []particle.GradientStop{
			{At: 1, Color: color.Opaque(255, 220, 120)},
			{At: 0, Color: color.Opaque(120, 0, 0)},
		},
	}

	frametimes := make([]float64, 0, 4096)
	start := time.Now()
	lastBurst := start

	for time.Since(start) < *duration {
		frameStart := time.Now()

		eng.StartFrame()

		for y := 0; y < h; y++ {
			gy := float32(y) / float32(h)
			base := color.Opaque(5, uint8(5+gy*10), uint8(15+gy*20))
			eng.FillRect(bgLayer, 0, y, w, 1, base)
		}
		for _, s := range stars {
			twinkle := s.brightness * (0.6 + 0.4*float32(time.Since(start).Seconds()))
			v := uint8(clamp255(twinkle * 255))
			eng.DrawRect(bgLayer, int(s.x), int(s.y), 1, 1, ' ', color.Transparent, color.Opaque(v, v, v), cell.AttrNone)
		}

		if time.Since(lastBurst) >= *burstEvery {
			burstEmitter.OriginX = float32(w) / 2
			burstEmitter.OriginY = float32(h) / 2
			eng.Particles().Spawn(burstEmitter, *burstSize)
			lastBurst = time.Now()
		}
		eng.UpdateParticles(particleLayer)

		if err := eng.EndFrame(); err != nil {
			fmt.Fprintln(os.Stderr, "termforge benchmark: end frame:", err)
			break
		}

		frametimes = append(frametimes, time.Since(frameStart).Seconds())
	}

	eng.ExitCleanup()

	writeFrametimes(*csvPath, frametimes)

	total := time.Since(start)
	var avgFPS float64
	if total.Seconds() > 0 {
		avgFPS = float64(len(frametimes)) / total.Seconds()
	}

	fmt.Println("=== termforge benchmark ===")
	fmt.Printf("Resolution:    %dx%d (%d cells)\n", w, h, w*h)
	fmt.Printf("Total frames:  %d\n", len(frametimes))
	fmt.Printf("Total time:    %.2fs\n", total.Seconds())
	fmt.Printf("Average FPS:   %.2f\n", avgFPS)
	fmt.Printf("Live particles at exit: %d\n", eng.Particles().Len())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("Total alloc:   %d bytes\n", m.TotalAlloc)
	fmt.Printf("Mallocs:       %d\n", m.Mallocs)
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func writeFrametimes(path string, frametimes []float64) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "termforge benchmark: write frametimes:", err)
		return
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()
	for _, ft := range frametimes {
		fmt.Fprintf(w, "%.6f\n", ft)
	}
}
