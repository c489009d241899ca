package lumina

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// clickSlop is how far, in pixels, a press may travel and still count as a
// click on release.
const clickSlop = 6.0

// pointerState tracks the mouse (or injected pointer) between frames.
type pointerState struct {
	x, y           float64
	down           bool
	inside         bool
	pressX, pressY float64
}

// processInput is called from Showcase.Update to handle pointer input.
// Injected events take precedence over the real mouse.
func (s *Showcase) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMousePointer()
}

// processMousePointer reads the real mouse.
func (s *Showcase) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	inside := mx >= 0 && my >= 0 && mx < s.width && my < s.height
	s.processPointer(float64(mx), float64(my), pressed, inside)
}

// processPointer updates hover state and fires a click on release.
func (s *Showcase) processPointer(x, y float64, pressed, inside bool) {
	prev := s.pointer

	if inside && !s.overlay.Visible() {
		s.field.SetPointer(x, y)
	} else {
		s.field.ClearPointer()
	}

	if s.overlay.IsOpen() {
		img := s.overlayLayout.Image
		over := inside && img.Contains(x, y) && !img.Empty()
		nx, ny := 0.0, 0.0
		if over {
			nx = (x - img.X) / img.Width
			ny = (y - img.Y) / img.Height
		}
		s.overlay.Hover(over, nx, ny)
		s.hoverNav = -1
	} else if inside {
		s.hoverNav = s.layout.NavAt(x, y)
	} else {
		s.hoverNav = -1
	}

	s.pointer.x, s.pointer.y = x, y
	s.pointer.inside = inside
	s.pointer.down = pressed

	switch {
	case pressed && !prev.down:
		s.pointer.pressX, s.pointer.pressY = x, y
	case !pressed && prev.down:
		if math.Hypot(x-prev.pressX, y-prev.pressY) <= clickSlop {
			s.click(x, y)
		}
	}
}

// click routes a click to the overlay when it is open, otherwise to the nav
// and the explore button.
func (s *Showcase) click(x, y float64) {
	if s.overlay.IsOpen() {
		ol := &s.overlayLayout
		switch {
		case ol.Close.Contains(x, y):
			s.overlay.Close()
		case ol.Inquiry.Contains(x, y):
			s.inquire()
		case !ol.Panel.Contains(x, y):
			s.overlay.Close()
		}
		return
	}
	if i := s.layout.NavAt(x, y); i >= 0 {
		s.carousel.GoTo(i)
		return
	}
	if s.layout.Explore.Contains(x, y) {
		s.carousel.RequestDetails()
	}
}

// showcaseKeys are the keys processKeys polls.
var showcaseKeys = [...]ebiten.Key{
	ebiten.KeyArrowRight,
	ebiten.KeyArrowLeft,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyEscape,
	ebiten.KeyF3,
	ebiten.KeyF12,
}

func (s *Showcase) processKeys() {
	for _, k := range showcaseKeys {
		if inpututil.IsKeyJustPressed(k) {
			s.handleKey(k)
		}
	}
}

// handleKey applies one key press. Arrows step slides even while
// auto-advance is paused.
func (s *Showcase) handleKey(k ebiten.Key) {
	c := s.carousel
	switch k {
	case ebiten.KeyArrowRight:
		if n := c.Len(); n > 0 && !s.overlay.IsOpen() {
			c.GoTo((c.Current() + 1) % n)
		}
	case ebiten.KeyArrowLeft:
		if n := c.Len(); n > 0 && !s.overlay.IsOpen() {
			c.GoTo((c.Current() - 1 + n) % n)
		}
	case ebiten.KeySpace:
		c.SetEnabled(!c.Enabled())
		debugf("carousel enabled: %v", c.Enabled())
	case ebiten.KeyEnter:
		if !s.overlay.IsOpen() {
			c.RequestDetails()
		}
	case ebiten.KeyEscape:
		s.overlay.Close()
	case ebiten.KeyF3:
		s.fps.Toggle()
	case ebiten.KeyF12:
		s.Screenshot("manual")
	}
}
