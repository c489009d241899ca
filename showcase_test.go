package lumina

import (
	"context"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newTestShowcase(t *testing.T, n int) *Showcase {
	t.Helper()
	SetLogOutput(&strings.Builder{})
	t.Cleanup(func() { SetLogOutput(nil) })

	cfg := DefaultShowcaseConfig()
	cfg.TPS = 60
	cfg.Field.Count = 20
	cfg.Field.Seed = 1
	s := NewShowcase(testItems(n), cfg, CarouselCallbacks{})
	if err := s.Load(context.Background(), sizeLoader()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Layout(1280, 800)
	return s
}

func center(r Rect) (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// clickAt injects a click and drains it.
func clickAt(s *Showcase, x, y float64) {
	s.InjectClick(x, y)
	for s.processInjectedInput() {
	}
}

func clickIn(s *Showcase, r Rect) {
	x, y := center(r)
	clickAt(s, x, y)
}

func TestShowcaseLayoutTracksSlides(t *testing.T) {
	s := newTestShowcase(t, 4)
	if got := len(s.CurrentLayout().Nav); got != 4 {
		t.Errorf("nav rows = %d, want 4", got)
	}
	w, h := s.Field().Size()
	if w != 1280 || h != 800 {
		t.Errorf("field size = %dx%d", w, h)
	}
}

func TestShowcaseNavClickGoesToSlide(t *testing.T) {
	s := newTestShowcase(t, 4)
	clickIn(s, s.CurrentLayout().Nav[2])
	if tgt, ok := s.Carousel().Target(); !ok || tgt != 2 {
		t.Errorf("Target = %d, %v; want 2, true", tgt, ok)
	}
}

func TestShowcaseDragIsNotClick(t *testing.T) {
	s := newTestShowcase(t, 4)
	r := s.CurrentLayout().Nav[1]
	x, y := center(r)
	s.InjectDrag(x, y, x+100, y, 4)
	for s.processInjectedInput() {
	}
	if s.Carousel().Transitioning() {
		t.Error("a drag must not count as a click")
	}
}

func TestShowcaseExploreOpensOverlay(t *testing.T) {
	var details []Item
	SetLogOutput(&strings.Builder{})
	defer SetLogOutput(nil)
	cfg := DefaultShowcaseConfig()
	cfg.TPS = 60
	s := NewShowcase(testItems(3), cfg, CarouselCallbacks{
		OnDetails: func(it Item) { details = append(details, it) },
	})
	if err := s.Load(context.Background(), sizeLoader()); err != nil {
		t.Fatal(err)
	}
	s.Layout(1280, 800)

	clickIn(s, s.CurrentLayout().Explore)
	if !s.Overlay().IsOpen() {
		t.Fatal("explore should open the overlay")
	}
	if s.Overlay().Item().ID != 1 {
		t.Errorf("overlay item = %+v", s.Overlay().Item())
	}
	if len(details) != 1 {
		t.Errorf("user OnDetails calls = %d, want 1", len(details))
	}
	// Nav clicks are swallowed while the overlay is up.
	clickIn(s, s.CurrentLayout().Nav[1])
	if s.Carousel().Transitioning() {
		t.Error("nav click went through the overlay")
	}
}

func TestShowcaseOverlayClose(t *testing.T) {
	s := newTestShowcase(t, 3)
	s.Carousel().RequestDetails()
	clickIn(s, s.overlayLayout.Close)
	if s.Overlay().IsOpen() {
		t.Error("close button should close the overlay")
	}

	s.Carousel().RequestDetails()
	clickAt(s, 2, 2) // backdrop, outside the panel
	if s.Overlay().IsOpen() {
		t.Error("backdrop click should close the overlay")
	}

	s.Carousel().RequestDetails()
	clickIn(s, s.overlayLayout.Info)
	if !s.Overlay().IsOpen() {
		t.Error("click inside the panel must not close it")
	}
}

func TestShowcaseInquiry(t *testing.T) {
	s := newTestShowcase(t, 3)
	var gotURL string
	var gotItem Item
	s.OnInquiry = func(url string, it Item) { gotURL, gotItem = url, it }

	s.Carousel().RequestDetails()
	clickIn(s, s.overlayLayout.Inquiry)
	if gotItem.ID != 1 {
		t.Errorf("inquiry item = %+v", gotItem)
	}
	if gotURL != InquiryURL(DefaultInquiryPhone, gotItem) {
		t.Errorf("url = %q", gotURL)
	}
}

func TestShowcaseOverlayHoverZoom(t *testing.T) {
	s := newTestShowcase(t, 2)
	s.Carousel().RequestDetails()
	s.InjectHover(center(s.overlayLayout.Image))
	s.processInjectedInput()
	if !s.Overlay().Zooming() {
		t.Error("hovering the image should zoom")
	}
	s.InjectHover(center(s.overlayLayout.Info))
	s.processInjectedInput()
	if s.Overlay().Zooming() {
		t.Error("leaving the image should end the zoom")
	}
}

func TestShowcasePointerDrivesField(t *testing.T) {
	s := newTestShowcase(t, 2)
	s.InjectHover(300, 200)
	s.processInjectedInput()
	if x, y := s.Field().Pointer(); x != 300 || y != 200 {
		t.Errorf("field pointer = (%f, %f)", x, y)
	}
	s.InjectHover(-5, 200)
	s.processInjectedInput()
	if x, _ := s.Field().Pointer(); x != pointerSentinel {
		t.Errorf("pointer outside the window should clear, got x = %f", x)
	}
}

func TestShowcaseKeys(t *testing.T) {
	s := newTestShowcase(t, 4)
	c := s.Carousel()

	s.handleKey(ebiten.KeyArrowLeft)
	if tgt, _ := c.Target(); tgt != 3 {
		t.Errorf("left from 0: target = %d, want 3", tgt)
	}
	runUntilIdle(t, c)

	s.handleKey(ebiten.KeySpace)
	if c.Enabled() {
		t.Error("space should disable the carousel")
	}
	s.handleKey(ebiten.KeyArrowRight)
	if tgt, _ := c.Target(); tgt != 0 {
		t.Errorf("right from 3 while paused: target = %d, want 0", tgt)
	}
	runUntilIdle(t, c)
	s.handleKey(ebiten.KeySpace)
	if !c.Enabled() {
		t.Error("space should re-enable the carousel")
	}

	s.handleKey(ebiten.KeyEnter)
	if !s.Overlay().IsOpen() {
		t.Fatal("enter should open details")
	}
	s.handleKey(ebiten.KeyEscape)
	if s.Overlay().IsOpen() {
		t.Error("escape should close details")
	}

	s.handleKey(ebiten.KeyF3)
	if !s.FPS().Visible() {
		t.Error("F3 should show the FPS widget")
	}
	s.handleKey(ebiten.KeyF12)
	if len(s.screenshotQueue) != 1 {
		t.Errorf("F12 should queue a screenshot, queue = %v", s.screenshotQueue)
	}
}

func TestShowcaseDispose(t *testing.T) {
	s := newTestShowcase(t, 2)
	s.Screenshot("x")
	s.Dispose()
	s.Dispose()
	if !s.Disposed() || !s.Carousel().Disposed() {
		t.Error("dispose should cascade")
	}
	if s.screenshotQueue != nil {
		t.Error("screenshot queue should be dropped")
	}
	s.step(testDT) // no-op, must not panic
}
