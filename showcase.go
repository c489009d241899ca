package lumina

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShowcaseConfig configures a Showcase.
type ShowcaseConfig struct {
	Carousel CarouselConfig
	Field    FieldConfig
	Theme    Theme

	// Brand and Tagline are centered in the header; HeaderLeft and
	// HeaderRight flank them.
	Brand       string
	Tagline     string
	HeaderLeft  []string
	HeaderRight []string
	// Footer is drawn left-aligned in the footer band.
	Footer string

	// InquiryPhone is the WhatsApp number inquiries go to.
	InquiryPhone string
	// ScreenshotDir receives PNGs from Screenshot.
	ScreenshotDir string
	// TPS is the host's ticks per second. Zero uses ebiten.TPS().
	TPS int
}

// DefaultShowcaseConfig returns the boutique's defaults.
func DefaultShowcaseConfig() ShowcaseConfig {
	return ShowcaseConfig{
		Carousel:      DefaultCarouselConfig(),
		Field:         DefaultFieldConfig(),
		Theme:         DefaultTheme(),
		Brand:         "ABIDA DADA",
		Tagline:       "COLLECTION",
		HeaderLeft:    []string{"HOME", "COLLECTION"},
		HeaderRight:   []string{"OUR STORY", "CONTACT"},
		Footer:        "BY APPOINTMENT ONLY  ·  G 29, BLOCK 8 CLIFTON, KARACHI, 75600, PAKISTAN",
		InquiryPhone:  DefaultInquiryPhone,
		ScreenshotDir: "screenshots",
	}
}

// Showcase is the complete boutique screen: particle backdrop, slide
// carousel with its text column and nav, and the detail overlay. It
// implements ebiten.Game.
type Showcase struct {
	cfg      ShowcaseConfig
	carousel *Carousel
	field    *ParticleField
	overlay  *Overlay
	fonts    *Fonts

	width, height int
	layout        Layout
	overlayLayout OverlayLayout

	// Input state
	pointer     pointerState
	hoverNav    int
	injectQueue []syntheticPointerEvent

	testRunner      *TestRunner
	screenshotQueue []string
	fps             *FPSWidget
	frame           FrameTimer
	disposed        bool

	// OnInquiry receives the composed link when the inquiry button is
	// pressed. The host decides how to open it.
	OnInquiry func(url string, item Item)
}

// NewShowcase builds a showcase over items. cb is passed to the carousel;
// OnDetails additionally opens the overlay before cb.OnDetails runs.
func NewShowcase(items []Item, cfg ShowcaseConfig, cb CarouselCallbacks) *Showcase {
	if cfg.TPS <= 0 {
		cfg.TPS = ebiten.TPS()
	}
	s := &Showcase{
		cfg:      cfg,
		overlay:  NewOverlay(cfg.TPS),
		fps:      NewFPSWidget(),
		hoverNav: -1,
	}
	userDetails := cb.OnDetails
	cb.OnDetails = func(it Item) {
		s.openDetails(it)
		if userDetails != nil {
			userDetails(it)
		}
	}
	s.carousel = NewCarousel(items, cfg.Carousel, cb)
	s.field = NewParticleField(cfg.Field, 0, 0)
	return s
}

// Carousel returns the slide engine.
func (s *Showcase) Carousel() *Carousel { return s.carousel }

// Field returns the particle backdrop.
func (s *Showcase) Field() *ParticleField { return s.field }

// Overlay returns the detail view.
func (s *Showcase) Overlay() *Overlay { return s.overlay }

// FPS returns the frame rate widget.
func (s *Showcase) FPS() *FPSWidget { return s.fps }

// CurrentLayout returns the geometry computed for the last viewport size.
func (s *Showcase) CurrentLayout() Layout { return s.layout }

// SetFonts sets the faces used for text. Without fonts no text is drawn.
func (s *Showcase) SetFonts(f *Fonts) { s.fonts = f }

// Load preloads slide images synchronously. See Carousel.Load.
func (s *Showcase) Load(ctx context.Context, loader ImageLoader) error {
	err := s.carousel.Load(ctx, loader)
	if s.width > 0 && s.height > 0 {
		s.relayout()
	}
	return err
}

// LoadAsync preloads slide images in the background. See Carousel.LoadAsync.
func (s *Showcase) LoadAsync(ctx context.Context, loader ImageLoader) {
	s.carousel.LoadAsync(ctx, loader)
}

// SetDebugMode toggles debug logging and per-frame timing output.
func (s *Showcase) SetDebugMode(enabled bool) {
	SetDebug(enabled)
}

func (s *Showcase) openDetails(it Item) {
	tex, _ := s.carousel.Texture(s.carousel.Content().Index)
	s.overlay.Open(it, tex)
	s.field.ClearPointer()
}

// inquire hands the inquiry link for the overlay's item to OnInquiry.
func (s *Showcase) inquire() {
	if !s.overlay.IsOpen() {
		return
	}
	it := s.overlay.Item()
	url := InquiryURL(s.cfg.InquiryPhone, it)
	logf("inquiry: %s", url)
	if s.OnInquiry != nil {
		s.OnInquiry(url, it)
	}
}

// Layout implements ebiten.Game. A size change resizes the particle field,
// which re-randomizes it, and recomputes the screen geometry.
func (s *Showcase) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (s *Showcase) resize(w, h int) {
	if w == s.width && h == s.height && s.layout.Nav != nil {
		return
	}
	s.width, s.height = w, h
	s.field.Resize(w, h)
	s.relayout()
}

func (s *Showcase) relayout() {
	s.layout = ComputeLayout(float64(s.width), float64(s.height), s.carousel.Len())
	s.overlayLayout = ComputeOverlayLayout(float64(s.width), float64(s.height))
}

// Update implements ebiten.Game.
func (s *Showcase) Update() error {
	s.step(1.0 / float64(s.cfg.TPS))
	return nil
}

// step runs one tick of dt seconds.
func (s *Showcase) step(dt float64) {
	if s.disposed {
		return
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	wasReady := s.carousel.Ready()
	s.processInput()
	s.processKeys()

	s.field.Update()
	s.carousel.Update(dt)
	if !wasReady && s.carousel.Ready() {
		// Nav rows depend on how many slides loaded.
		s.relayout()
	}
	s.overlay.Update()
	s.fps.update(dt)
}

// Draw implements ebiten.Game.
func (s *Showcase) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	screen.Fill(s.cfg.Theme.Background.toRGBA())

	s.frame.BeginField()
	s.field.Draw(screen)
	s.frame.EndField(s.field)

	s.frame.BeginCarousel()
	s.carousel.Draw(screen, s.layout.Stage)
	s.frame.EndCarousel(s.carousel)

	s.drawChrome(screen)
	s.overlay.Draw(screen, s.overlayLayout, s.fonts, s.cfg.Theme)
	s.fps.draw(screen)

	s.flushScreenshots(screen)
}

// Dispose releases the carousel and field. The showcase is inert afterwards.
func (s *Showcase) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.carousel.Dispose()
	s.field.Dispose()
	s.overlay.Close()
	s.fps.dispose()
	s.injectQueue = nil
	s.screenshotQueue = nil
}

// Disposed reports whether Dispose has been called.
func (s *Showcase) Disposed() bool { return s.disposed }

// drawChrome draws header, footer, the text column and nav.
func (s *Showcase) drawChrome(dst *ebiten.Image) {
	th := s.cfg.Theme
	l := &s.layout
	c := s.carousel

	// Nav progress tracks and fills render without fonts too.
	for i, r := range l.Nav {
		line := Rect{X: r.X, Y: r.Y + r.Height - 1, Width: r.Width, Height: 1}
		FillRect(dst, line, th.Track)
		ind := c.Indicator(i)
		if ind.Fill > 0 && ind.Opacity > 0 {
			fill := line
			fill.Width = r.Width * clamp01(ind.Fill/100)
			gold := th.Gold
			gold.A *= ind.Opacity
			FillRect(dst, fill, gold)
		}
	}

	f := s.fonts
	if f == nil {
		return
	}
	w := float64(s.width)

	// Header
	DrawText(dst, f.Title, s.cfg.Brand, w/2, l.Header.Y+6, th.Text, TextAlignCenter)
	DrawText(dst, f.Small, s.cfg.Tagline, w/2, l.Header.Y+6+f.Title.LineHeight()-4, th.Gold, TextAlignCenter)
	x := l.Column.X
	for _, item := range s.cfg.HeaderLeft {
		DrawText(dst, f.Small, item, x, l.Header.Y+24, th.Text, TextAlignLeft)
		iw, _ := f.Small.MeasureString(item)
		x += iw + 32
	}
	x = w - l.Column.X
	for i := len(s.cfg.HeaderRight) - 1; i >= 0; i-- {
		item := s.cfg.HeaderRight[i]
		DrawText(dst, f.Small, item, x, l.Header.Y+24, th.Text, TextAlignRight)
		iw, _ := f.Small.MeasureString(item)
		x -= iw + 32
	}

	// Footer
	FillRect(dst, Rect{X: l.Footer.X, Y: l.Footer.Y, Width: l.Footer.Width, Height: 1}, th.Track)
	DrawText(dst, f.Small, s.cfg.Footer, l.Column.X, l.Footer.Y+(l.Footer.Height-f.Small.LineHeight())/2, th.Muted, TextAlignLeft)

	if !c.Ready() {
		return
	}

	DrawText(dst, f.Small, c.Counter(), l.Counter.X, l.Counter.Y, th.Gold, TextAlignLeft)

	cs := c.Content()
	if slide, ok := c.Slide(cs.Index); ok {
		DrawStaggered(dst, f.Title, slide.Title, l.Title.X, l.Title.Y, th.Text, cs.TitleGlyph)
		a, dy := cs.Description()
		if a > 0 {
			col := th.Muted
			col.A *= a
			lines := WrapText(f.Body, slide.Description, l.Description.Width)
			for i, line := range lines {
				DrawText(dst, f.Body, line, l.Description.X, l.Description.Y+dy+float64(i)*f.Body.LineHeight(), col, TextAlignLeft)
			}
		}
	}

	// Explore button: outlined in gold, filled while hovered.
	ex := l.Explore
	label := th.Gold
	if ex.Contains(s.pointer.x, s.pointer.y) && !s.overlay.Visible() {
		FillRect(dst, ex, th.Gold)
		label = th.Background
	} else {
		FillRect(dst, Rect{X: ex.X, Y: ex.Y, Width: ex.Width, Height: 1}, th.Gold)
		FillRect(dst, Rect{X: ex.X, Y: ex.Y + ex.Height - 1, Width: ex.Width, Height: 1}, th.Gold)
		FillRect(dst, Rect{X: ex.X, Y: ex.Y, Width: 1, Height: ex.Height}, th.Gold)
		FillRect(dst, Rect{X: ex.X + ex.Width - 1, Y: ex.Y, Width: 1, Height: ex.Height}, th.Gold)
	}
	DrawText(dst, f.Small, "EXPLORE PIECE", ex.X+ex.Width/2, ex.Y+(ex.Height-f.Small.LineHeight())/2, label, TextAlignCenter)

	shown := c.Displayed()
	for i, r := range l.Nav {
		slide, _ := c.Slide(i)
		col := th.Muted
		if i == shown || i == s.hoverNav {
			col = th.Text
		}
		DrawText(dst, f.Small, formatCounter(i, c.Len())+"  "+slide.Title, r.X, r.Y+4, col, TextAlignLeft)
	}
}
