// Package lumina renders a couture showcase for [Ebitengine]: a hero
// carousel that blends between slides with a refracting "glass" Kage shader,
// drawn over an ambient particle field that drifts along a flow field and
// shies away from the pointer.
//
// Both engines are owned instances. The host calls Update once per tick and
// Draw once per frame; there is no global animation manager and no hidden
// goroutine besides the asynchronous image loader.
//
// # Quick start
//
//	items, _ := lumina.LoadCatalog(data)
//	car := lumina.NewCarousel(items, lumina.DefaultCarouselConfig(), lumina.CarouselCallbacks{
//		OnSlideChanged: func(e lumina.SlideEvent) { fmt.Println(e.Counter) },
//	})
//	car.LoadAsync(ctx, lumina.NewFileLoader(os.DirFS("assets")))
//
//	field := lumina.NewParticleField(lumina.DefaultFieldConfig(), 1280, 800)
//
//	// in ebiten.Game.Update:
//	car.Update(dt)
//	field.Update()
//
//	// in ebiten.Game.Draw:
//	field.Draw(screen)
//	car.Draw(screen, lumina.Rect{X: 40, Y: 80, Width: 1200, Height: 600})
//
// # Carousel
//
// A [Carousel] owns a fixed list of slides. It is Idle while the current
// slide's progress line fills toward auto-advance, and Transitioning while
// the blend tween runs. Navigation requests during a transition are dropped.
// Presentation code subscribes through [CarouselCallbacks] instead of the
// engine reaching into display elements.
//
// # Particle field
//
// A [ParticleField] keeps a fixed pool of particles. Each tick applies a
// [FlowField] force, pointer repulsion, friction, and edge wrapping. Particles
// past their lifespan are reset in place, never freed.
//
// # Showcase
//
// [Showcase] assembles both engines with the boutique chrome: header and
// footer bands, the slide title and description column, a clickable nav list
// with per-slide progress lines, and an [Overlay] detail view with hover zoom
// and a WhatsApp inquiry button. It implements ebiten.Game. Scripted runs
// attach a [TestRunner] from [LoadTestScript]; F12 saves a screenshot.
//
// Tweens use [gween]; the optional Perlin flow field uses [go-perlin];
// overlay motion uses [harmonica] springs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [go-perlin]: https://github.com/aquilax/go-perlin
// [harmonica]: https://github.com/charmbracelet/harmonica
package lumina
