package lumina

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerSentinel marks "no pointer". It sits far outside any practical
// interaction radius so no special casing is needed in Update.
const pointerSentinel = -1000

// Particle is one point of the field. Ages and lives are counted in frames.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    int
	Life   int
}

// FlowField maps a position to a drift direction in radians. Implementations
// must be deterministic so neighbouring particles drift together.
type FlowField interface {
	Angle(x, y float64) float64
}

// TrigFlow is the classic cheap field: (cos(x*s) + sin(y*s)) * π.
type TrigFlow struct {
	Scale float64
}

// Angle implements FlowField.
func (f TrigFlow) Angle(x, y float64) float64 {
	return (math.Cos(x*f.Scale) + math.Sin(y*f.Scale)) * math.Pi
}

// PerlinFlow derives directions from 2D Perlin noise, giving softer, less
// periodic currents than TrigFlow.
type PerlinFlow struct {
	Scale float64
	noise *perlin.Perlin
}

// NewPerlinFlow creates a noise field. The same seed always yields the same
// field.
func NewPerlinFlow(scale float64, seed int64) *PerlinFlow {
	return &PerlinFlow{
		Scale: scale,
		noise: perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Angle implements FlowField.
func (f *PerlinFlow) Angle(x, y float64) float64 {
	return f.noise.Noise2D(x*f.Scale, y*f.Scale) * 2 * math.Pi
}

// FieldConfig controls the ambient particle field.
type FieldConfig struct {
	// Count is the fixed pool size.
	Count int
	// Color of every particle.
	Color Color
	// Background is painted over the trail surface each frame at
	// TrailOpacity, fading old positions into trails.
	Background   Color
	TrailOpacity float64
	// Speed scales the flow force.
	Speed float64
	// FlowScale is the spatial frequency of the default flow field.
	FlowScale float64
	// FlowForce is the per-frame acceleration along the flow direction.
	FlowForce float64
	// InteractionRadius is the pointer's reach in pixels.
	InteractionRadius float64
	// PointerForce scales the pointer push.
	PointerForce float64
	// Friction multiplies velocity every frame.
	Friction float64
	// Life is the range of particle lifespans in frames.
	Life Range
	// MaxAlpha is the opacity at mid-life.
	MaxAlpha float64
	// ParticleSize is the side of each square in pixels.
	ParticleSize float64
	// Flow overrides the default TrigFlow built from FlowScale.
	Flow FlowField
	// Seed makes the field reproducible.
	Seed uint64
}

// DefaultFieldConfig returns the gold-on-charcoal look.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Count:             500,
		Color:             MustHexColor("#CA8A04"),
		Background:        MustHexColor("#0C0A09"),
		TrailOpacity:      0.1,
		Speed:             0.8,
		FlowScale:         0.005,
		FlowForce:         0.15,
		InteractionRadius: 200,
		PointerForce:      0.03,
		Friction:          0.94,
		Life:              Range{Min: 150, Max: 450},
		MaxAlpha:          0.4,
		ParticleSize:      1.2,
	}
}

// ParticleField simulates a fixed pool of particles drifting on a flow field
// and pushed away from the pointer. Update once per frame, then Draw.
type ParticleField struct {
	config    FieldConfig
	particles []Particle
	rng       *rand.Rand
	flow      FlowField

	width, height      float64
	pointerX, pointerY float64

	trail    *ebiten.Image
	op       ebiten.DrawImageOptions
	disposed bool
}

// NewParticleField creates a field covering width×height.
func NewParticleField(cfg FieldConfig, width, height int) *ParticleField {
	if cfg.Count <= 0 {
		cfg.Count = 500
	}
	if cfg.Life.Max < cfg.Life.Min {
		cfg.Life.Max = cfg.Life.Min
	}
	if cfg.Life.Min < 1 {
		cfg.Life = Range{Min: 150, Max: 450}
	}
	flow := cfg.Flow
	if flow == nil {
		flow = TrigFlow{Scale: cfg.FlowScale}
	}
	f := &ParticleField{
		config:    cfg,
		particles: make([]Particle, cfg.Count),
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		flow:      flow,
		pointerX:  pointerSentinel,
		pointerY:  pointerSentinel,
	}
	f.Resize(width, height)
	return f
}

// Resize sets the viewport size, drops the trail surface and re-randomizes
// every particle.
func (f *ParticleField) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f.width, f.height = float64(width), float64(height)
	if f.trail != nil {
		f.trail.Deallocate()
		f.trail = nil
	}
	for i := range f.particles {
		f.reset(&f.particles[i])
	}
}

// Size returns the viewport size.
func (f *ParticleField) Size() (width, height int) {
	return int(f.width), int(f.height)
}

// SetPointer records the last known pointer position.
func (f *ParticleField) SetPointer(x, y float64) {
	f.pointerX, f.pointerY = x, y
}

// ClearPointer forgets the pointer, e.g. when it leaves the window.
func (f *ParticleField) ClearPointer() {
	f.pointerX, f.pointerY = pointerSentinel, pointerSentinel
}

// Pointer returns the recorded pointer position.
func (f *ParticleField) Pointer() (x, y float64) {
	return f.pointerX, f.pointerY
}

// Particles returns the pool. Callers must not modify it.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Config returns a pointer to the config for live tuning.
func (f *ParticleField) Config() *FieldConfig {
	return &f.config
}

// SetFlow swaps the flow field. nil restores the trig field.
func (f *ParticleField) SetFlow(flow FlowField) {
	if flow == nil {
		flow = TrigFlow{Scale: f.config.FlowScale}
	}
	f.flow = flow
	f.config.Flow = flow
}

func (f *ParticleField) reset(p *Particle) {
	p.X = f.rng.Float64() * f.width
	p.Y = f.rng.Float64() * f.height
	p.VX, p.VY = 0, 0
	p.Age = 0
	lr := f.config.Life
	p.Life = int(lr.Min + f.rng.Float64()*(lr.Max-lr.Min))
}

// Update advances every particle by one frame.
func (f *ParticleField) Update() {
	if f.disposed {
		return
	}
	cfg := &f.config
	r := cfg.InteractionRadius
	for i := range f.particles {
		p := &f.particles[i]

		a := f.flow.Angle(p.X, p.Y)
		p.VX += math.Cos(a) * cfg.FlowForce * cfg.Speed
		p.VY += math.Sin(a) * cfg.FlowForce * cfg.Speed

		dx := f.pointerX - p.X
		dy := f.pointerY - p.Y
		if d := math.Hypot(dx, dy); d < r {
			force := (r - d) / r
			p.VX -= dx * force * cfg.PointerForce
			p.VY -= dy * force * cfg.PointerForce
		}

		p.X += p.VX
		p.Y += p.VY
		p.VX *= cfg.Friction
		p.VY *= cfg.Friction

		p.Age++
		if p.Age > p.Life {
			f.reset(p)
		}

		if p.X < 0 {
			p.X = f.width
		} else if p.X > f.width {
			p.X = 0
		}
		if p.Y < 0 {
			p.Y = f.height
		} else if p.Y > f.height {
			p.Y = 0
		}
	}
}

// Envelope is the triangular opacity curve: 0 at birth and death, 1 at
// half of life.
func Envelope(age, life int) float64 {
	if life <= 0 {
		return 0
	}
	return clamp01(1 - math.Abs(float64(age)/float64(life)-0.5)*2)
}

// Draw fades the trail surface toward the background, paints the particles
// onto it and composites it onto dst.
func (f *ParticleField) Draw(dst *ebiten.Image) {
	if f.disposed || f.width < 1 || f.height < 1 {
		return
	}
	if f.trail == nil {
		f.trail = ebiten.NewImage(int(f.width), int(f.height))
		bg := f.config.Background
		bg.A = 1
		f.trail.Fill(bg.toRGBA())
	}

	bg := f.config.Background
	bg.A = f.config.TrailOpacity
	FillRect(f.trail, Rect{Width: f.width, Height: f.height}, bg)

	px := ensureWhitePixel()
	c := f.config.Color
	size := f.config.ParticleSize
	op := &f.op
	for i := range f.particles {
		p := &f.particles[i]
		a := float32(Envelope(p.Age, p.Life) * f.config.MaxAlpha)
		if a <= 0 {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(size, size)
		op.GeoM.Translate(p.X, p.Y)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
		f.trail.DrawImage(px, op)
	}

	op.GeoM.Reset()
	op.ColorScale.Reset()
	dst.DrawImage(f.trail, op)
}

// Dispose releases the trail surface. The field is inert afterwards.
func (f *ParticleField) Dispose() {
	if f.disposed {
		return
	}
	f.disposed = true
	if f.trail != nil {
		f.trail.Deallocate()
		f.trail = nil
	}
}
