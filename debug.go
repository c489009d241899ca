package lumina

import (
	"fmt"
	"io"
	"os"
	"time"
)

// logOutput receives every [lumina] line. Tests swap it for a buffer.
var logOutput io.Writer = os.Stderr

// debugEnabled gates per-frame stats. Warnings are always written.
// Only meaningful with a single host loop (lumina is single-threaded).
var debugEnabled bool

// SetDebug enables or disables debug mode. When enabled, carousel state
// changes and per-frame draw timings are logged to stderr.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetLogOutput redirects lumina's log lines. Passing nil restores stderr.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logOutput = w
}

// logf writes a single prefixed line.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(logOutput, "[lumina] "+format+"\n", args...)
}

// debugf writes a prefixed line only in debug mode.
func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	logf(format, args...)
}

// debugStats holds per-frame timing metrics. Only populated in debug mode.
type debugStats struct {
	fieldTime    time.Duration
	carouselTime time.Duration
	particles    int
	transition   bool
}

// debugLog prints frame timing stats.
func debugLog(stats debugStats) {
	if !debugEnabled {
		return
	}
	logf("field: %v (%d particles) | carousel: %v | blending: %v | total: %v",
		stats.fieldTime, stats.particles, stats.carouselTime, stats.transition,
		stats.fieldTime+stats.carouselTime)
}

// FrameTimer measures how long the field and carousel take to draw. Hosts
// that want timing output wrap their Draw calls with it; it is a no-op
// outside debug mode.
type FrameTimer struct {
	stats debugStats
	t0    time.Time
}

// BeginField marks the start of the particle field draw.
func (f *FrameTimer) BeginField() {
	if debugEnabled {
		f.t0 = time.Now()
	}
}

// EndField records the particle field draw time.
func (f *FrameTimer) EndField(field *ParticleField) {
	if !debugEnabled {
		return
	}
	f.stats.fieldTime = time.Since(f.t0)
	if field != nil {
		f.stats.particles = len(field.particles)
	}
}

// BeginCarousel marks the start of the carousel draw.
func (f *FrameTimer) BeginCarousel() {
	if debugEnabled {
		f.t0 = time.Now()
	}
}

// EndCarousel records the carousel draw time and flushes the frame's stats.
func (f *FrameTimer) EndCarousel(c *Carousel) {
	if !debugEnabled {
		return
	}
	f.stats.carouselTime = time.Since(f.t0)
	if c != nil {
		f.stats.transition = c.Transitioning()
	}
	debugLog(f.stats)
	f.stats = debugStats{}
}
