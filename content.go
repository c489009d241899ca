package lumina

import "github.com/tanema/gween/ease"

// ContentPhase is the animation phase of the slide title and description.
type ContentPhase uint8

const (
	ContentHidden ContentPhase = iota // nothing shown (not ready)
	ContentOut                        // old text leaving upward
	ContentIn                         // new text rising into place
)

// String returns the phase name.
func (p ContentPhase) String() string {
	switch p {
	case ContentOut:
		return "out"
	case ContentIn:
		return "in"
	default:
		return "hidden"
	}
}

// Text timing. Titles animate per glyph with a stagger.
const (
	titleOutDuration   = 0.5
	titleOutStagger    = 0.02
	titleOutOffset     = -20.0
	descOutDuration    = 0.4
	descOutOffset      = -10.0
	titleInDuration    = 0.8
	titleInStagger     = 0.03
	titleInOffset      = 20.0
	descInDuration     = 0.8
	descInDelay        = 0.2
	descInOffset       = 20.0
	introTitleDuration = 1.0
	introTitleDelay    = 0.5
	introDescDelay     = 0.8
)

// ContentState describes where the title/description animation is. Renderers
// query it each frame; the carousel owns and advances it.
type ContentState struct {
	// Index is the navigable slide whose text is displayed.
	Index int
	Phase ContentPhase

	elapsed    float64
	inDuration float64
	titleDelay float64
	descDelay  float64
}

func (s *ContentState) showIntro(index int) {
	s.Index = index
	s.Phase = ContentIn
	s.elapsed = 0
	s.inDuration = introTitleDuration
	s.titleDelay = introTitleDelay
	s.descDelay = introDescDelay
}

func (s *ContentState) fadeOut() {
	if s.Phase == ContentHidden {
		return
	}
	s.Phase = ContentOut
	s.elapsed = 0
}

func (s *ContentState) fadeIn(index int) {
	s.Index = index
	s.Phase = ContentIn
	s.elapsed = 0
	s.inDuration = titleInDuration
	s.titleDelay = 0
	s.descDelay = descInDelay
}

func (s *ContentState) hide() {
	*s = ContentState{}
}

func (s *ContentState) update(dt float64) {
	if s.Phase != ContentHidden {
		s.elapsed += dt
	}
}

// TitleGlyph returns the opacity and vertical offset of the i-th title glyph.
func (s *ContentState) TitleGlyph(i int) (alpha, offsetY float64) {
	switch s.Phase {
	case ContentOut:
		k := easeWindow(ease.InQuad, s.elapsed-float64(i)*titleOutStagger, titleOutDuration)
		return 1 - k, titleOutOffset * k
	case ContentIn:
		k := easeWindow(ease.OutCubic, s.elapsed-s.titleDelay-float64(i)*titleInStagger, s.inDuration)
		return k, titleInOffset * (1 - k)
	default:
		return 0, 0
	}
}

// Description returns the opacity and vertical offset of the description.
func (s *ContentState) Description() (alpha, offsetY float64) {
	switch s.Phase {
	case ContentOut:
		k := easeWindow(ease.InQuad, s.elapsed, descOutDuration)
		return 1 - k, descOutOffset * k
	case ContentIn:
		k := easeWindow(ease.OutCubic, s.elapsed-s.descDelay, s.inDuration)
		return k, descInOffset * (1 - k)
	default:
		return 0, 0
	}
}

// easeWindow evaluates fn over [0, d], clamping t outside the window.
func easeWindow(fn ease.TweenFunc, t, d float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= d {
		return 1
	}
	return float64(fn(float32(t), 0, 1, float32(d)))
}
