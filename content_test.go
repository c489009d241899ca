package lumina

import (
	"math"
	"testing"
)

func TestContentIntroDelays(t *testing.T) {
	var s ContentState
	s.showIntro(0)

	s.update(0.4)
	if a, _ := s.TitleGlyph(0); a != 0 {
		t.Errorf("title alpha = %f before intro delay, want 0", a)
	}
	s.update(1.2)
	a, dy := s.TitleGlyph(0)
	assertNear(t, "title alpha", a, 1)
	assertNear(t, "title dy", dy, 0)

	if a, _ := s.Description(); a >= 1 {
		t.Errorf("description alpha = %f, want still animating", a)
	}
	s.update(1)
	a, _ = s.Description()
	assertNear(t, "desc alpha", a, 1)
}

func TestContentFadeOutStagger(t *testing.T) {
	var s ContentState
	s.fadeIn(0)
	s.update(5)
	s.fadeOut()

	s.update(0.25)
	first, dy := s.TitleGlyph(0)
	later, _ := s.TitleGlyph(10)
	if first >= later {
		t.Errorf("glyph 0 alpha %f should fade before glyph 10 alpha %f", first, later)
	}
	if dy >= 0 {
		t.Errorf("fade-out offset = %f, want upward (negative)", dy)
	}

	s.update(1)
	if a, _ := s.TitleGlyph(10); a != 0 {
		t.Errorf("glyph 10 alpha = %f after fade-out, want 0", a)
	}
	if a, _ := s.Description(); a != 0 {
		t.Errorf("description alpha = %f after fade-out, want 0", a)
	}
}

func TestContentFadeInRisesIntoPlace(t *testing.T) {
	var s ContentState
	s.fadeIn(2)
	if s.Index != 2 || s.Phase != ContentIn {
		t.Fatalf("state = %+v", s)
	}
	_, dy := s.TitleGlyph(0)
	assertNear(t, "initial dy", dy, titleInOffset)
	s.update(titleInDuration)
	a, dy := s.TitleGlyph(0)
	assertNear(t, "alpha", a, 1)
	assertNear(t, "dy", dy, 0)
}

func TestContentHiddenIgnoresFadeOut(t *testing.T) {
	var s ContentState
	s.fadeOut()
	if s.Phase != ContentHidden {
		t.Errorf("phase = %v, want hidden", s.Phase)
	}
	if a, _ := s.Description(); a != 0 {
		t.Errorf("alpha = %f, want 0", a)
	}
}

func TestEaseWindowMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 10; i++ {
		v := easeWindow(easeLinear, float64(i)/10, 1)
		if v < prev {
			t.Fatalf("not monotonic at %d", i)
		}
		prev = v
	}
	if math.Abs(prev-1) > epsilon {
		t.Errorf("end = %f, want 1", prev)
	}
}

func easeLinear(t, b, c, d float32) float32 { return c*t/d + b }
