package lumina

import (
	"math"
	"testing"
)

func testFieldConfig(count int) FieldConfig {
	cfg := DefaultFieldConfig()
	cfg.Count = count
	cfg.Seed = 42
	return cfg
}

func inBounds(p Particle, w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}

func TestFieldCreatesPool(t *testing.T) {
	f := NewParticleField(testFieldConfig(300), 800, 600)
	if len(f.Particles()) != 300 {
		t.Fatalf("pool size = %d, want 300", len(f.Particles()))
	}
	for i, p := range f.Particles() {
		if !inBounds(p, 800, 600) {
			t.Errorf("particle %d at (%f, %f) out of bounds", i, p.X, p.Y)
		}
		if p.Age != 0 || p.VX != 0 || p.VY != 0 {
			t.Errorf("particle %d not fresh: %+v", i, p)
		}
		if p.Life < 150 || p.Life > 450 {
			t.Errorf("particle %d life = %d, want [150, 450]", i, p.Life)
		}
	}
}

func TestFieldDefaultCount(t *testing.T) {
	f := NewParticleField(FieldConfig{}, 10, 10)
	if len(f.Particles()) != 500 {
		t.Errorf("default pool size = %d, want 500", len(f.Particles()))
	}
}

func TestFieldDeterministicSeed(t *testing.T) {
	a := NewParticleField(testFieldConfig(50), 640, 480)
	b := NewParticleField(testFieldConfig(50), 640, 480)
	for i := 0; i < 100; i++ {
		a.Update()
		b.Update()
	}
	for i := range a.particles {
		if a.particles[i] != b.particles[i] {
			t.Fatalf("particle %d diverged: %+v vs %+v", i, a.particles[i], b.particles[i])
		}
	}
}

func TestFieldResetAfterLife(t *testing.T) {
	f := NewParticleField(testFieldConfig(1), 400, 300)
	p := &f.particles[0]
	p.Age = p.Life
	p.X, p.Y = 390, 290
	p.VX, p.VY = 50, 50

	f.Update()

	if p.Age != 0 {
		t.Errorf("age = %d after exceeding life, want 0", p.Age)
	}
	if p.VX != 0 || p.VY != 0 {
		t.Errorf("velocity = (%f, %f), want zero", p.VX, p.VY)
	}
	if !inBounds(*p, 400, 300) {
		t.Errorf("reset position (%f, %f) out of bounds", p.X, p.Y)
	}
}

func TestFieldAgeNeverExceedsLife(t *testing.T) {
	f := NewParticleField(testFieldConfig(100), 320, 240)
	for frame := 0; frame < 1000; frame++ {
		f.Update()
		for i, p := range f.particles {
			if p.Age > p.Life {
				t.Fatalf("frame %d: particle %d age %d > life %d", frame, i, p.Age, p.Life)
			}
		}
	}
}

func TestFieldWrapsEdges(t *testing.T) {
	cfg := testFieldConfig(1)
	cfg.FlowForce = 0
	cfg.Friction = 1
	f := NewParticleField(cfg, 100, 100)
	p := &f.particles[0]
	p.Life = 1000

	p.X, p.Y, p.VX, p.VY = 99, 50, 5, 0
	f.Update()
	if p.X != 0 {
		t.Errorf("right exit: x = %f, want 0", p.X)
	}

	p.X, p.VX = 1, -5
	f.Update()
	if p.X != 100 {
		t.Errorf("left exit: x = %f, want 100", p.X)
	}

	p.X, p.VX = 50, 0
	p.Y, p.VY = 98, 5
	f.Update()
	if p.Y != 0 {
		t.Errorf("bottom exit: y = %f, want 0", p.Y)
	}

	p.Y, p.VY = 2, -5
	f.Update()
	if p.Y != 100 {
		t.Errorf("top exit: y = %f, want 100", p.Y)
	}
}

func TestFieldPointerRepels(t *testing.T) {
	cfg := testFieldConfig(1)
	cfg.FlowForce = 0
	f := NewParticleField(cfg, 800, 800)
	p := &f.particles[0]
	p.Life = 1000
	p.X, p.Y = 400, 400

	f.SetPointer(450, 400)
	f.Update()
	if p.X >= 400 {
		t.Errorf("x = %f, want pushed left of 400", p.X)
	}
	assertNear(t, "y", p.Y, 400)
}

func TestFieldPointerOutsideRadius(t *testing.T) {
	cfg := testFieldConfig(1)
	cfg.FlowForce = 0
	f := NewParticleField(cfg, 800, 800)
	p := &f.particles[0]
	p.Life = 1000
	p.X, p.Y = 100, 100

	f.SetPointer(100+cfg.InteractionRadius+1, 100)
	f.Update()
	assertNear(t, "x", p.X, 100)
	assertNear(t, "vx", p.VX, 0)
}

func TestFieldClearPointerSentinel(t *testing.T) {
	f := NewParticleField(testFieldConfig(1), 100, 100)
	f.SetPointer(10, 10)
	f.ClearPointer()
	x, y := f.Pointer()
	if x != pointerSentinel || y != pointerSentinel {
		t.Errorf("pointer = (%f, %f), want sentinel", x, y)
	}
	// The sentinel is beyond the default radius from the viewport origin.
	if math.Hypot(-pointerSentinel, -pointerSentinel) <= DefaultFieldConfig().InteractionRadius {
		t.Error("sentinel too close to the viewport")
	}
}

func TestFieldFlowFrictionDecays(t *testing.T) {
	cfg := testFieldConfig(1)
	f := NewParticleField(cfg, 1000, 1000)
	p := &f.particles[0]
	p.Life = 10000
	for i := 0; i < 500; i++ {
		f.Update()
	}
	// Terminal speed under constant unit force F with friction k is F*k/(1-k).
	limit := cfg.FlowForce * cfg.Speed * cfg.Friction / (1 - cfg.Friction)
	if v := math.Hypot(p.VX, p.VY); v > limit+epsilon {
		t.Errorf("speed %f exceeds terminal %f", v, limit)
	}
}

func TestFieldResizeRerandomizes(t *testing.T) {
	f := NewParticleField(testFieldConfig(200), 100, 100)
	for i := 0; i < 30; i++ {
		f.Update()
	}
	f.Resize(1920, 1080)
	w, h := f.Size()
	if w != 1920 || h != 1080 {
		t.Errorf("size = %dx%d", w, h)
	}
	outside := 0
	for _, p := range f.particles {
		if p.Age != 0 {
			t.Fatalf("particle not re-randomized: %+v", p)
		}
		if !inBounds(p, 1920, 1080) {
			t.Fatalf("particle out of new bounds: %+v", p)
		}
		if p.X > 100 || p.Y > 100 {
			outside++
		}
	}
	if outside == 0 {
		t.Error("no particle spread into the enlarged viewport")
	}
}

func TestEnvelope(t *testing.T) {
	assertNear(t, "birth", Envelope(0, 300), 0)
	assertNear(t, "death", Envelope(300, 300), 0)
	assertNear(t, "mid", Envelope(150, 300), 1)
	assertNear(t, "quarter", Envelope(75, 300), 0.5)

	peak := Envelope(150, 300)
	for age := 0; age <= 300; age++ {
		if e := Envelope(age, 300); e > peak {
			t.Fatalf("Envelope(%d) = %f exceeds mid-life %f", age, e, peak)
		}
	}
	if Envelope(5, 0) != 0 {
		t.Error("zero life must be transparent")
	}
}

func TestTrigFlowMatchesFormula(t *testing.T) {
	f := TrigFlow{Scale: 0.005}
	x, y := 123.0, 456.0
	want := (math.Cos(x*0.005) + math.Sin(y*0.005)) * math.Pi
	assertNear(t, "angle", f.Angle(x, y), want)
}

func TestPerlinFlowDeterministic(t *testing.T) {
	a := NewPerlinFlow(0.005, 7)
	b := NewPerlinFlow(0.005, 7)
	for _, pt := range [][2]float64{{0, 0}, {10, 20}, {333, 91}} {
		if a.Angle(pt[0], pt[1]) != b.Angle(pt[0], pt[1]) {
			t.Errorf("angle at %v differs between equal seeds", pt)
		}
	}
	// Nearby points should drift in similar directions.
	d := math.Abs(a.Angle(200, 200) - a.Angle(201, 200))
	if d > 1 {
		t.Errorf("neighbouring angles differ by %f", d)
	}
}

func TestFieldCustomFlow(t *testing.T) {
	cfg := testFieldConfig(1)
	cfg.Flow = TrigFlow{Scale: 0} // angle is π everywhere
	cfg.Friction = 1
	f := NewParticleField(cfg, 1000, 1000)
	p := &f.particles[0]
	p.Life = 1000
	p.X, p.Y = 500, 500
	f.Update()
	if p.VX >= 0 {
		t.Errorf("vx = %f, want negative for angle π", p.VX)
	}
}

type constFlow float64

func (c constFlow) Angle(x, y float64) float64 { return float64(c) }

func TestFieldSetFlow(t *testing.T) {
	cfg := testFieldConfig(1)
	cfg.Friction = 1
	f := NewParticleField(cfg, 1000, 1000)
	f.SetFlow(constFlow(0))
	p := &f.particles[0]
	p.Life = 1000
	p.X, p.Y = 500, 500
	p.VX, p.VY = 0, 0
	f.Update()
	if p.VX <= 0 || math.Abs(p.VY) > epsilon {
		t.Errorf("v = (%f, %f), want along +x", p.VX, p.VY)
	}

	f.SetFlow(nil)
	if _, ok := f.Config().Flow.(TrigFlow); !ok {
		t.Errorf("SetFlow(nil) flow = %T, want TrigFlow", f.Config().Flow)
	}
}

func TestFieldDisposeIdempotent(t *testing.T) {
	f := NewParticleField(testFieldConfig(10), 50, 50)
	f.Dispose()
	f.Dispose()
	before := f.particles[0]
	f.Update()
	if f.particles[0] != before {
		t.Error("disposed field must not simulate")
	}
}
