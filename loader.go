package lumina

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/jpeg" // register decoders for ebitenutil
	_ "image/png"
	"io/fs"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var (
	// ErrLoadTimeout reports that an image, or the whole preload, did not
	// finish before its deadline.
	ErrLoadTimeout = errors.New("lumina: image load timed out")
	// ErrNoSlides reports that no slide image could be loaded, leaving the
	// carousel not ready.
	ErrNoSlides = errors.New("lumina: no slide images loaded")
)

// Texture is a loaded slide image and its pixel size. Image may be nil for
// loaders that only report sizes (tests, headless tools); such textures are
// skipped at draw time.
type Texture struct {
	Image         *ebiten.Image
	Width, Height int
}

// ImageLoader resolves an image reference to a texture. Implementations
// should honor ctx; the carousel enforces its own deadline regardless.
type ImageLoader interface {
	LoadImage(ctx context.Context, ref string) (Texture, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, ref string) (Texture, error)

// LoadImage calls f(ctx, ref).
func (f ImageLoaderFunc) LoadImage(ctx context.Context, ref string) (Texture, error) {
	return f(ctx, ref)
}

// FileLoader decodes PNG/JPEG images from a file system.
type FileLoader struct {
	fsys fs.FS
}

// NewFileLoader creates a loader reading from fsys. References are slash
// separated; a leading "/" is ignored.
func NewFileLoader(fsys fs.FS) *FileLoader {
	return &FileLoader{fsys: fsys}
}

// LoadImage decodes ref into a GPU image.
func (l *FileLoader) LoadImage(ctx context.Context, ref string) (Texture, error) {
	if err := ctx.Err(); err != nil {
		return Texture{}, err
	}
	name := strings.TrimPrefix(ref, "/")
	img, _, err := ebitenutil.NewImageFromFileSystem(l.fsys, name)
	if err != nil {
		return Texture{}, fmt.Errorf("lumina: load %s: %w", ref, err)
	}
	b := img.Bounds()
	return Texture{Image: img, Width: b.Dx(), Height: b.Dy()}, nil
}

// GeneratedLoader paints placeholder artwork for each reference: a vertical
// gradient whose hue is derived from the reference name, with a soft
// gown-like silhouette. Useful when the real photography is not available.
type GeneratedLoader struct {
	Width, Height int
}

// LoadImage builds the placeholder for ref.
func (l GeneratedLoader) LoadImage(ctx context.Context, ref string) (Texture, error) {
	if err := ctx.Err(); err != nil {
		return Texture{}, err
	}
	w, h := l.Width, l.Height
	if w <= 0 {
		w = 600
	}
	if h <= 0 {
		h = 800
	}
	src := generatePlaceholder(ref, w, h)
	return Texture{Image: ebiten.NewImageFromImage(src), Width: w, Height: h}, nil
}

// generatePlaceholder renders the CPU side of GeneratedLoader.
func generatePlaceholder(ref string, w, h int) *image.RGBA {
	hs := fnv.New32a()
	_, _ = hs.Write([]byte(ref))
	hue := float64(hs.Sum32()%360) / 360

	top := hsvColor(hue, 0.65, 0.55)
	bottom := hsvColor(math.Mod(hue+0.08, 1), 0.8, 0.12)
	gold := color.RGBA{R: 202, G: 138, B: 4, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx := float64(w) / 2
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		row := mixRGBA(top, bottom, t)
		// Silhouette: narrow bodice widening into a flared skirt.
		half := float64(w) * (0.08 + 0.3*smoothstep(0.25, 0.95, t))
		inShape := t > 0.15 && t < 0.97
		for x := 0; x < w; x++ {
			c := row
			if inShape {
				d := math.Abs(float64(x)-cx) / half
				if d < 1 {
					k := (1 - d*d) * 0.55
					c = mixRGBA(c, gold, k)
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func hsvColor(h, s, v float64) color.RGBA {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

func mixRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(lerp(float64(a.R), float64(b.R), t)),
		G: uint8(lerp(float64(a.G), float64(b.G), t)),
		B: uint8(lerp(float64(a.B), float64(b.B), t)),
		A: 255,
	}
}

func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// loadResult is the outcome of a preload. indices maps each texture back to
// its slide position in the original list.
type loadResult struct {
	textures []Texture
	indices  []int
	warnings []error
	err      error
}

// loadSlides loads every slide image in order. A slide whose image fails or
// exceeds perImage is skipped with a warning. Cancellation of ctx aborts the
// whole preload.
func loadSlides(ctx context.Context, loader ImageLoader, slides []Slide, perImage time.Duration) loadResult {
	var res loadResult
	for i, s := range slides {
		if err := ctx.Err(); err != nil {
			res.err = loadCtxErr(err)
			return res
		}
		tex, err := loadOne(ctx, loader, s.ImageRef, perImage)
		if err != nil {
			if ctx.Err() != nil {
				res.err = loadCtxErr(ctx.Err())
				return res
			}
			res.warnings = append(res.warnings, fmt.Errorf("slide %d (%s): %w", i, s.Title, err))
			continue
		}
		if tex.Width <= 0 || tex.Height <= 0 {
			res.warnings = append(res.warnings, fmt.Errorf("slide %d (%s): image has no size", i, s.Title))
			continue
		}
		res.textures = append(res.textures, tex)
		res.indices = append(res.indices, i)
	}
	if len(res.textures) == 0 {
		res.err = ErrNoSlides
	}
	return res
}

// loadOne runs a single load under its own deadline. The loader runs on a
// separate goroutine so a loader that ignores ctx cannot stall the preload.
func loadOne(ctx context.Context, loader ImageLoader, ref string, timeout time.Duration) (Texture, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		tex Texture
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		tex, err := loader.LoadImage(ctx, ref)
		ch <- outcome{tex, err}
	}()

	select {
	case o := <-ch:
		if errors.Is(o.err, context.DeadlineExceeded) {
			return Texture{}, fmt.Errorf("%w: %s", ErrLoadTimeout, ref)
		}
		return o.tex, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Texture{}, fmt.Errorf("%w: %s", ErrLoadTimeout, ref)
		}
		return Texture{}, ctx.Err()
	}
}

func loadCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrLoadTimeout
	}
	return err
}
