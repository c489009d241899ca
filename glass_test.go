package lumina

import (
	"strings"
	"testing"
)

func TestCoverFitWideTexture(t *testing.T) {
	// 200x100 into 100x100: height drives the scale, width is cropped.
	s, dx, dy := coverFit(200, 100, 100, 100)
	assertNear(t, "scale", s, 1)
	assertNear(t, "dx", dx, -50)
	assertNear(t, "dy", dy, 0)
}

func TestCoverFitTallTexture(t *testing.T) {
	s, dx, dy := coverFit(600, 800, 1200, 600)
	assertNear(t, "scale", s, 2)
	assertNear(t, "dx", dx, 0)
	assertNear(t, "dy", dy, -500)
}

func TestCoverFitAlwaysCovers(t *testing.T) {
	sizes := [][4]float64{
		{600, 800, 1280, 720},
		{1920, 1080, 400, 900},
		{10, 10, 1000, 3},
	}
	for _, sz := range sizes {
		s, dx, dy := coverFit(sz[0], sz[1], sz[2], sz[3])
		if sz[0]*s < sz[2]-epsilon || sz[1]*s < sz[3]-epsilon {
			t.Errorf("coverFit%v scale %f leaves a gap", sz, s)
		}
		if dx > epsilon || dy > epsilon {
			t.Errorf("coverFit%v offset (%f, %f) should not be positive", sz, dx, dy)
		}
	}
}

func TestCoverFitDegenerate(t *testing.T) {
	s, dx, dy := coverFit(0, 100, 100, 100)
	if s != 1 || dx != 0 || dy != 0 {
		t.Errorf("degenerate = (%f, %f, %f), want identity", s, dx, dy)
	}
}

func TestGlassShaderSourceDeclaresUniforms(t *testing.T) {
	if !strings.HasPrefix(glassShaderSrc, "//kage:unit pixels") {
		t.Error("shader must use pixel units")
	}
	for _, u := range []string{"Progress", "RefractionStrength", "ChromaticAberration", "BubbleClarity", "EdgeGlow", "LiquidFlow"} {
		if !strings.Contains(glassShaderSrc, "var "+u+" float") {
			t.Errorf("missing uniform %s", u)
		}
	}
}

func TestDefaultGlassConfig(t *testing.T) {
	g := DefaultGlassConfig()
	assertNear(t, "refraction", g.RefractionStrength, 1.0)
	assertNear(t, "aberration", g.ChromaticAberration, 0.8)
	assertNear(t, "edge glow", g.EdgeGlow, 0.5)
	assertNear(t, "liquid flow", g.LiquidFlow, 0.4)
}
