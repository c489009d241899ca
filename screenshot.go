package lumina

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a capture of the frame being drawn. The PNG lands in
// ShowcaseConfig.ScreenshotDir, named after the time, the slide on screen
// and label.
func (s *Showcase) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label at the end of Draw.
func (s *Showcase) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	dir := s.cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logf("screenshot: mkdir %s: %v", dir, err)
		s.screenshotQueue = s.screenshotQueue[:0]
		return
	}

	img := captureNRGBA(screen)
	stamp := time.Now().Format("20060102_150405")
	slide := -1
	if s.carousel.Ready() {
		slide = s.carousel.Displayed()
	}
	for _, label := range s.screenshotQueue {
		path := filepath.Join(dir, screenshotName(stamp, slide, label))
		if err := writePNG(path, img); err != nil {
			logf("screenshot: %v", err)
			continue
		}
		debugf("screenshot: %s", path)
	}
	s.screenshotQueue = s.screenshotQueue[:0]
}

// screenshotName builds "<stamp>_sNN_<label>.png"; slide < 0 omits the
// slide part.
func screenshotName(stamp string, slide int, label string) string {
	if slide < 0 {
		return fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label))
	}
	return fmt.Sprintf("%s_s%02d_%s.png", stamp, slide+1, sanitizeLabel(label))
}

// captureNRGBA reads back the frame and converts it to straight alpha.
func captureNRGBA(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

// unpremultiply converts premultiplied RGBA bytes to an NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
