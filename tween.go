package lumina

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates a float64 field. Create one via TweenValue or
// TweenFromTo and call Update(dt) each frame; the value is written straight
// into the target field. Callers own the tween and drive Update themselves.
type Tween struct {
	tween *gween.Tween
	field *float64
	Done  bool
	// OnComplete runs once, on the Update call that finishes the tween.
	// Cancelled tweens never call it.
	OnComplete func()
}

// Update advances the tween by dt seconds and writes the value to the
// target field. Does nothing once Done.
func (g *Tween) Update(dt float32) {
	if g.Done {
		return
	}

	val, finished := g.tween.Update(dt)
	*g.field = float64(val)
	g.Done = finished

	if g.Done && g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
}

// Cancel stops the tween where it is. The field keeps its last written value.
func (g *Tween) Cancel() {
	g.Done = true
	g.OnComplete = nil
}

// TweenValue creates a Tween that animates *field from its current value
// to the target over the given duration using the easing function.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return TweenFromTo(field, *field, to, duration, fn)
}

// TweenFromTo is like TweenValue but starts from an explicit value, which is
// written to the field immediately.
func TweenFromTo(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *Tween {
	*field = from
	return &Tween{
		tween: gween.New(float32(from), float32(to), duration, fn),
		field: field,
	}
}

// tweenSet is a small owner for fire-and-forget tweens. Finished tweens are
// dropped on the next update.
type tweenSet struct {
	tweens []*Tween
}

func (s *tweenSet) add(g *Tween) *Tween {
	s.tweens = append(s.tweens, g)
	return g
}

func (s *tweenSet) update(dt float32) {
	// OnComplete may add tweens; iterate by index over a growing slice.
	for i := 0; i < len(s.tweens); i++ {
		s.tweens[i].Update(dt)
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

func (s *tweenSet) clear() {
	for _, g := range s.tweens {
		g.Cancel()
	}
	s.tweens = s.tweens[:0]
}

func (s *tweenSet) len() int {
	return len(s.tweens)
}
