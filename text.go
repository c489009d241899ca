package lumina

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TextAlign controls horizontal alignment relative to the draw position.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("lumina: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the em size the font was loaded at.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// Fonts is the set of faces the showcase draws with.
type Fonts struct {
	Title  *TTFFont
	Body   *TTFFont
	Italic *TTFFont
	Small  *TTFFont
}

// DefaultFonts loads the Go font family at the showcase sizes.
func DefaultFonts() (*Fonts, error) {
	var fs Fonts
	var err error
	if fs.Title, err = LoadTTFFont(gobold.TTF, 40); err != nil {
		return nil, err
	}
	if fs.Body, err = LoadTTFFont(goregular.TTF, 16); err != nil {
		return nil, err
	}
	if fs.Italic, err = LoadTTFFont(goitalic.TTF, 17); err != nil {
		return nil, err
	}
	if fs.Small, err = LoadTTFFont(goregular.TTF, 12); err != nil {
		return nil, err
	}
	return &fs, nil
}

// WrapText breaks s into lines no wider than width, splitting on spaces.
// A single word wider than width gets a line of its own. Explicit newlines
// are kept. width <= 0 disables wrapping.
func WrapText(f Font, s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if width <= 0 {
			lines = append(lines, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if cw, _ := f.MeasureString(candidate); cw > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// alignOffset returns the x shift applied for align given the text width.
func alignOffset(align TextAlign, width float64) float64 {
	switch align {
	case TextAlignCenter:
		return -width / 2
	case TextAlignRight:
		return -width
	}
	return 0
}

// DrawText draws s with its top-left at (x, y), adjusted by align.
func DrawText(dst *ebiten.Image, f *TTFFont, s string, x, y float64, c Color, align TextAlign) {
	if f == nil || s == "" || c.A <= 0 {
		return
	}
	w, _ := f.MeasureString(s)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+alignOffset(align, w), y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

// DrawWrapped draws s wrapped to width and returns the height used.
func DrawWrapped(dst *ebiten.Image, f *TTFFont, s string, x, y, width float64, c Color) float64 {
	if f == nil {
		return 0
	}
	lines := WrapText(f, s, width)
	for i, line := range lines {
		DrawText(dst, f, line, x, y+float64(i)*f.lh, c, TextAlignLeft)
	}
	return float64(len(lines)) * f.lh
}

// DrawStaggered draws s one rune at a time. glyph returns the opacity and
// vertical offset of the i-th rune, which is how the title fade staggers.
func DrawStaggered(dst *ebiten.Image, f *TTFFont, s string, x, y float64, c Color, glyph func(i int) (alpha, dy float64)) {
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	i := 0
	for _, r := range s {
		g := string(r)
		a, dy := glyph(i)
		if a > 0 && r != ' ' {
			op.GeoM.Reset()
			op.GeoM.Translate(x, y+dy)
			op.ColorScale.Reset()
			ca := c.A * a
			op.ColorScale.Scale(float32(c.R*ca), float32(c.G*ca), float32(c.B*ca), float32(ca))
			text.Draw(dst, g, f.face, op)
		}
		x += text.Advance(g, f.face)
		i++
	}
}
