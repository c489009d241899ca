package lumina

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Slide is one carousel entry. Slides are built once from the caller's items
// and never mutated.
type Slide struct {
	Title       string
	Description string
	ImageRef    string
	Item        Item
}

// SlidesFromItems maps catalog items to slides, preserving order.
func SlidesFromItems(items []Item) []Slide {
	slides := make([]Slide, len(items))
	for i, it := range items {
		slides[i] = Slide{
			Title:       it.Title,
			Description: it.Description,
			ImageRef:    it.Image,
			Item:        it,
		}
	}
	return slides
}

// CarouselConfig controls carousel timing and the glass blend. Durations are
// in seconds of Update time.
type CarouselConfig struct {
	// TransitionDuration is how long the blend from one slide to the next takes.
	TransitionDuration float64
	// SlideDuration is how long the progress line takes to fill before
	// auto-advancing.
	SlideDuration float64
	// ProgressInterval is the step of the progress line.
	ProgressInterval float64
	// StartDelay postpones the first auto-advance cycle after loading.
	StartDelay float64
	// ResumeDelay is the grace period after a transition before the next
	// cycle starts.
	ResumeDelay float64
	// ContentSwapDelay is when, after a transition starts, the new title and
	// description begin fading in.
	ContentSwapDelay float64
	// LoadTimeout bounds each image load. Zero means no per-image limit.
	LoadTimeout time.Duration
	// Glass tunes the transition shader.
	Glass GlassConfig
}

// DefaultCarouselConfig returns the house timing: a two second blend and
// three seconds per slide.
func DefaultCarouselConfig() CarouselConfig {
	return CarouselConfig{
		TransitionDuration: 2.0,
		SlideDuration:      3.0,
		ProgressInterval:   0.05,
		StartDelay:         0.5,
		ResumeDelay:        0.1,
		ContentSwapDelay:   0.5,
		LoadTimeout:        10 * time.Second,
		Glass:              DefaultGlassConfig(),
	}
}

// SlideEvent reports a slide change. It fires when a transition starts, so
// presentation updates track the image that is blending in.
type SlideEvent struct {
	From, To int
	// Counter is the "NN/NN" position text for To.
	Counter string
	Slide   Slide
}

// ContentEvent reports a title/description phase change.
type ContentEvent struct {
	Index int
	Phase ContentPhase
}

// CarouselCallbacks are the presentation hooks. Every field is optional;
// nil hooks are skipped.
type CarouselCallbacks struct {
	// OnReady fires once when at least one slide loaded.
	OnReady func(total int)
	// OnSlideChanged fires for the initial slide and at each transition start.
	OnSlideChanged func(SlideEvent)
	// OnProgress fires on each progress step of the active slide (0-100).
	OnProgress func(index int, percent float64)
	// OnProgressFade fires when a slide's progress line completes and fades.
	OnProgressFade func(index int)
	// OnProgressReset fires when a slide is left before its line completed.
	OnProgressReset func(index int)
	// OnContent fires when the text begins fading out or in.
	OnContent func(ContentEvent)
	// OnWarning receives non-fatal problems such as images that failed to load.
	OnWarning func(error)
	// OnDetails fires from RequestDetails with the displayed slide's item.
	OnDetails func(Item)
}

// Indicator is the state of one slide's progress line.
type Indicator struct {
	// Fill is the filled width in percent.
	Fill float64
	// Opacity of the fill.
	Opacity float64
}

// Carousel drives a fixed list of slides through timed glass transitions.
// It is Idle while the active slide's progress fills, and Transitioning while
// a blend runs; requests during a transition are dropped.
//
// Indices passed to and returned from a Carousel refer to the navigable
// slides, i.e. those whose image loaded.
type Carousel struct {
	cfg    CarouselConfig
	cb     CarouselCallbacks
	slides []Slide

	// Navigable pool, filled by a successful load.
	pool     []int
	textures []Texture

	ready    bool
	enabled  bool
	disposed bool

	current       int
	target        int
	transitioning bool
	progress      float64
	blend         *Tween

	slideProgress float64
	progressStep  ticker
	startDelay    timer
	contentSwap   timer

	indicators []Indicator
	fades      tweenSet
	content    ContentState

	pending    chan loadResult
	cancelLoad context.CancelFunc

	renderer glassRenderer
}

// NewCarousel creates a carousel over items. It is not ready until Load or
// LoadAsync completes with at least one image.
func NewCarousel(items []Item, cfg CarouselConfig, cb CarouselCallbacks) *Carousel {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 0.05
	}
	if cfg.SlideDuration <= 0 {
		cfg.SlideDuration = 3.0
	}
	return &Carousel{
		cfg:     cfg,
		cb:      cb,
		slides:  SlidesFromItems(items),
		enabled: true,
	}
}

// Load preloads every slide image on the calling goroutine. Slides whose
// image fails are dropped from rotation and reported through OnWarning. It
// returns ErrNoSlides when nothing loaded, ErrLoadTimeout when ctx expires.
// Loading a ready carousel again replaces its pool and restarts it at the
// first slide; a pending LoadAsync is cancelled.
func (c *Carousel) Load(ctx context.Context, loader ImageLoader) error {
	if c.disposed {
		return errors.New("lumina: carousel disposed")
	}
	c.dropPending()
	res := loadSlides(ctx, loader, c.slides, c.cfg.LoadTimeout)
	c.applyLoad(res)
	return res.err
}

// LoadAsync starts preloading on a background goroutine and returns
// immediately. The result is applied by a later Update call on the host
// goroutine. Dispose cancels an in-flight load.
func (c *Carousel) LoadAsync(ctx context.Context, loader ImageLoader) {
	if c.disposed || c.pending != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancelLoad = cancel
	ch := make(chan loadResult, 1)
	c.pending = ch
	slides := c.slides
	timeout := c.cfg.LoadTimeout
	go func() {
		ch <- loadSlides(ctx, loader, slides, timeout)
	}()
}

// Loading reports whether an asynchronous load is still in flight.
func (c *Carousel) Loading() bool {
	return c.pending != nil
}

func (c *Carousel) pollLoad() {
	if c.pending == nil {
		return
	}
	select {
	case res := <-c.pending:
		c.pending = nil
		if c.cancelLoad != nil {
			c.cancelLoad()
			c.cancelLoad = nil
		}
		c.applyLoad(res)
	default:
	}
}

func (c *Carousel) applyLoad(res loadResult) {
	for _, w := range res.warnings {
		c.warn(w)
	}
	if len(res.textures) == 0 {
		if res.err != nil {
			c.warn(res.err)
		}
		return
	}
	if res.err != nil && !errors.Is(res.err, ErrNoSlides) {
		// Aborted part way: keep what loaded.
		c.warn(res.err)
	}

	c.releaseSlides()
	c.pool = res.indices
	c.textures = res.textures
	c.indicators = make([]Indicator, len(c.pool))
	c.current = 0
	c.target = 0
	c.progress = 0
	c.ready = true
	c.content.showIntro(0)
	debugf("carousel ready: %d of %d slides", len(c.pool), len(c.slides))

	if c.cb.OnReady != nil {
		c.cb.OnReady(len(c.pool))
	}
	c.emitSlideChanged(-1, 0)
	c.scheduleAutoAdvance(c.cfg.StartDelay)
}

func (c *Carousel) warn(err error) {
	logf("warning: %v", err)
	if c.cb.OnWarning != nil {
		c.cb.OnWarning(err)
	}
}

// GoTo starts a transition to the navigable slide at index. It is a no-op
// when the carousel is not ready, a transition is running, index is out of
// range, or index is already current.
func (c *Carousel) GoTo(index int) {
	if !c.ready || c.disposed || c.transitioning {
		return
	}
	if index < 0 || index >= len(c.pool) || index == c.current {
		return
	}

	c.stopAutoAdvance()
	c.quickResetIndicator(c.current)

	from := c.current
	c.transitioning = true
	c.target = index
	c.blend = TweenFromTo(&c.progress, 0, 1, float32(c.cfg.TransitionDuration), ease.InOutQuad)
	c.blend.OnComplete = c.finishTransition

	c.content.fadeOut()
	c.emitContent(from, ContentOut)
	c.contentSwap.start(c.cfg.ContentSwapDelay, func() {
		c.content.fadeIn(index)
		c.emitContent(index, ContentIn)
	})

	debugf("transition %d -> %d", from, index)
	c.emitSlideChanged(from, index)
}

// Advance moves to the next slide, wrapping to the first. Ignored while a
// transition runs, before loading completes, or while disabled.
func (c *Carousel) Advance() {
	if c.transitioning || !c.ready || !c.enabled || c.disposed {
		return
	}
	c.GoTo((c.current + 1) % len(c.pool))
}

// Previous moves to the previous slide, wrapping to the last.
func (c *Carousel) Previous() {
	if c.transitioning || !c.ready || c.disposed {
		return
	}
	n := len(c.pool)
	c.GoTo((c.current - 1 + n) % n)
}

func (c *Carousel) finishTransition() {
	c.progress = 0
	c.current = c.target
	c.transitioning = false
	c.blend = nil
	c.slideProgress = 0
	c.scheduleAutoAdvance(c.cfg.ResumeDelay)
}

// SetEnabled pauses or resumes the carousel. Disabled carousels neither draw
// nor auto-advance; a blend already running still completes. Re-enabling
// restarts the current slide's progress from zero.
func (c *Carousel) SetEnabled(enabled bool) {
	if c.disposed || c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if !enabled {
		c.stopAutoAdvance()
		return
	}
	if c.ready && !c.transitioning {
		c.scheduleAutoAdvance(0)
	}
}

// RequestDetails invokes OnDetails with the item whose text is displayed.
func (c *Carousel) RequestDetails() {
	if !c.ready || c.disposed || c.cb.OnDetails == nil {
		return
	}
	if c.content.Index < 0 || c.content.Index >= len(c.pool) {
		return
	}
	c.cb.OnDetails(c.slides[c.pool[c.content.Index]].Item)
}

func (c *Carousel) scheduleAutoAdvance(delay float64) {
	c.stopAutoAdvance()
	if !c.enabled || !c.ready || c.disposed {
		return
	}
	if delay > 0 {
		c.startDelay.start(delay, c.startProgress)
		return
	}
	c.startProgress()
}

func (c *Carousel) startProgress() {
	if !c.enabled || !c.ready {
		return
	}
	c.progressStep.stop()
	c.slideProgress = 0
	c.progressStep.start(c.cfg.ProgressInterval, c.stepProgress)
}

func (c *Carousel) stepProgress() {
	if !c.enabled {
		c.stopAutoAdvance()
		return
	}
	inc := 100 / c.cfg.SlideDuration * c.cfg.ProgressInterval
	c.slideProgress += inc
	if c.slideProgress >= 100-1e-9 {
		c.slideProgress = 100
	}
	idx := c.current
	ind := &c.indicators[idx]
	ind.Fill = min(c.slideProgress, 100)
	ind.Opacity = 1
	if c.cb.OnProgress != nil {
		c.cb.OnProgress(idx, ind.Fill)
	}
	if c.slideProgress >= 100 {
		c.progressStep.stop()
		c.fadeIndicator(idx)
		if !c.transitioning {
			c.Advance()
		}
	}
}

func (c *Carousel) stopAutoAdvance() {
	c.progressStep.stop()
	c.startDelay.stop()
}

func (c *Carousel) fadeIndicator(i int) {
	ind := &c.indicators[i]
	g := c.fades.add(TweenValue(&ind.Opacity, 0, 0.3, ease.Linear))
	g.OnComplete = func() { ind.Fill = 0 }
	if c.cb.OnProgressFade != nil {
		c.cb.OnProgressFade(i)
	}
}

func (c *Carousel) quickResetIndicator(i int) {
	c.fades.add(TweenValue(&c.indicators[i].Fill, 0, 0.2, ease.OutQuad))
	if c.cb.OnProgressReset != nil {
		c.cb.OnProgressReset(i)
	}
}

func (c *Carousel) emitSlideChanged(from, to int) {
	if c.cb.OnSlideChanged == nil {
		return
	}
	c.cb.OnSlideChanged(SlideEvent{
		From:    from,
		To:      to,
		Counter: formatCounter(to, len(c.pool)),
		Slide:   c.slides[c.pool[to]],
	})
}

func (c *Carousel) emitContent(index int, phase ContentPhase) {
	if c.cb.OnContent != nil {
		c.cb.OnContent(ContentEvent{Index: index, Phase: phase})
	}
}

// Update advances the carousel by dt seconds: it applies a finished async
// load, steps the blend, the text animation, and the auto-advance timers.
func (c *Carousel) Update(dt float64) {
	if c.disposed {
		return
	}
	c.pollLoad()
	if !c.ready {
		return
	}
	if c.blend != nil {
		c.blend.Update(float32(dt))
	}
	c.contentSwap.update(dt)
	c.startDelay.update(dt)
	c.progressStep.update(dt)
	c.fades.update(float32(dt))
	c.content.update(dt)
}

// Draw renders the current blend into rect on dst. Nothing is drawn while
// the carousel is not ready, disabled or disposed.
func (c *Carousel) Draw(dst *ebiten.Image, rect Rect) {
	if !c.ready || !c.enabled || c.disposed || rect.Empty() {
		return
	}
	from := c.current
	to := c.current
	if c.transitioning {
		to = c.target
	}
	c.renderer.draw(dst, rect, c.textures, from, to, c.progress, c.cfg.Glass)
}

// Dispose cancels timers and any in-flight load, and releases GPU images.
// The carousel is inert afterwards. Safe to call more than once.
func (c *Carousel) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.dropPending()
	c.releaseSlides()
	c.ready = false
	c.content.hide()
}

// dropPending cancels an in-flight async load and releases whatever it
// still produces.
func (c *Carousel) dropPending() {
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	if c.pending == nil {
		return
	}
	go func(ch <-chan loadResult) {
		res := <-ch
		for _, tex := range res.textures {
			if tex.Image != nil {
				tex.Image.Deallocate()
			}
		}
	}(c.pending)
	c.pending = nil
}

// releaseSlides stops every timer and tween bound to the current pool and
// frees its textures and fitted copies.
func (c *Carousel) releaseSlides() {
	c.stopAutoAdvance()
	c.contentSwap.stop()
	if c.blend != nil {
		c.blend.Cancel()
		c.blend = nil
	}
	c.fades.clear()
	c.transitioning = false
	c.slideProgress = 0
	c.renderer.dispose()
	for i := range c.textures {
		if c.textures[i].Image != nil {
			c.textures[i].Image.Deallocate()
			c.textures[i].Image = nil
		}
	}
	c.textures = nil
}

// --- Queries ---

// Ready reports whether at least one slide loaded.
func (c *Carousel) Ready() bool { return c.ready }

// Enabled reports whether the carousel draws and auto-advances.
func (c *Carousel) Enabled() bool { return c.enabled }

// Disposed reports whether Dispose has been called.
func (c *Carousel) Disposed() bool { return c.disposed }

// Len returns the number of navigable slides.
func (c *Carousel) Len() int { return len(c.pool) }

// Current returns the committed slide index. During a transition it is the
// outgoing slide until the blend completes.
func (c *Carousel) Current() int { return c.current }

// Target returns the incoming slide while a transition runs.
func (c *Carousel) Target() (int, bool) {
	if !c.transitioning {
		return 0, false
	}
	return c.target, true
}

// Transitioning reports whether a blend is running.
func (c *Carousel) Transitioning() bool { return c.transitioning }

// Progress returns the blend progress in [0, 1]. Zero while idle.
func (c *Carousel) Progress() float64 { return c.progress }

// SlideProgress returns the auto-advance progress of the current slide in
// percent.
func (c *Carousel) SlideProgress() float64 { return c.slideProgress }

// Displayed returns the slide the presentation should show: the target
// during a transition, otherwise the current slide.
func (c *Carousel) Displayed() int {
	if c.transitioning {
		return c.target
	}
	return c.current
}

// Counter returns the "NN/NN" position of the displayed slide, or "" before
// the carousel is ready.
func (c *Carousel) Counter() string {
	if !c.ready {
		return ""
	}
	return formatCounter(c.Displayed(), len(c.pool))
}

// Slide returns the navigable slide at index.
func (c *Carousel) Slide(index int) (Slide, bool) {
	if index < 0 || index >= len(c.pool) {
		return Slide{}, false
	}
	return c.slides[c.pool[index]], true
}

// Texture returns the loaded image of the navigable slide at index. The
// carousel keeps ownership; callers must not deallocate it.
func (c *Carousel) Texture(index int) (Texture, bool) {
	if index < 0 || index >= len(c.textures) {
		return Texture{}, false
	}
	return c.textures[index], true
}

// Indicator returns the progress line state of slide index.
func (c *Carousel) Indicator(index int) Indicator {
	if index < 0 || index >= len(c.indicators) {
		return Indicator{}
	}
	return c.indicators[index]
}

// Content returns the title/description animation state.
func (c *Carousel) Content() *ContentState { return &c.content }

// Config returns a pointer to the configuration for live tuning.
func (c *Carousel) Config() *CarouselConfig { return &c.cfg }

func formatCounter(index, total int) string {
	return fmt.Sprintf("%02d/%02d", index+1, total)
}
