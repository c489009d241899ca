package lumina

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GlassConfig tunes the glass transition: a refracting bubble that grows from
// the center and reveals the incoming slide.
type GlassConfig struct {
	// RefractionStrength scales how far the bubble bends the image.
	RefractionStrength float64
	// ChromaticAberration splits color channels near the bubble rim.
	ChromaticAberration float64
	// BubbleClarity widens the undistorted core of the bubble.
	BubbleClarity float64
	// EdgeGlow brightens the rim. Zero disables it.
	EdgeGlow float64
	// LiquidFlow adds a rippling drift inside the bubble.
	LiquidFlow float64
}

// DefaultGlassConfig returns the house look.
func DefaultGlassConfig() GlassConfig {
	return GlassConfig{
		RefractionStrength:  1.0,
		ChromaticAberration: 0.8,
		BubbleClarity:       1.0,
		EdgeGlow:            0.5,
		LiquidFlow:          0.4,
	}
}

// Both sources are pre-fitted to the destination size, so sampling by
// normalized coordinates lines them up.
const glassShaderSrc = `//kage:unit pixels
package main

var Progress float
var RefractionStrength float
var ChromaticAberration float
var BubbleClarity float
var EdgeGlow float
var LiquidFlow float

func sampleFrom(uv vec2) vec4 {
	return imageSrc0At(imageSrc0Origin() + clamp(uv, vec2(0), vec2(1))*imageSrc0Size())
}

func sampleTo(uv vec2) vec4 {
	return imageSrc1At(imageSrc1Origin() + clamp(uv, vec2(0), vec2(1))*imageSrc1Size())
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	res := imageDstSize()
	p := dstPos.xy - imageDstOrigin()
	uv := p / res

	t := Progress * 5.0
	br := Progress * length(res) * 0.85
	c := res * 0.5
	d := length(p - c)
	nd := d / max(br, 0.001)
	param := 1.0 - smoothstep(br-3.0, br+3.0, d)

	img := sampleTo(uv)
	if param > 0.0 {
		ro := 0.08 * RefractionStrength * pow(smoothstep(0.3*BubbleClarity, 1.0, nd), 1.5)
		dir := vec2(0)
		if d > 0.0 {
			dir = (p - c) / d
		}
		duv := uv - dir*ro
		duv += vec2(sin(t+nd*10.0), cos(t*0.8+nd*8.0)) * 0.015 * LiquidFlow * nd * param
		ca := 0.02 * ChromaticAberration * pow(smoothstep(0.3, 1.0, nd), 1.2)
		img = vec4(
			sampleTo(duv+dir*ca*1.2).r,
			sampleTo(duv+dir*ca*0.2).g,
			sampleTo(duv-dir*ca*0.8).b,
			1.0)
		if EdgeGlow > 0.0 {
			rim := smoothstep(0.95, 1.0, nd) * (1.0 - smoothstep(1.0, 1.01, nd))
			img.rgb += vec3(rim * 0.08 * EdgeGlow)
		}
	}
	old := sampleFrom(uv)
	if Progress > 0.95 {
		img = mix(img, sampleTo(uv), (Progress-0.95)/0.05)
	}
	return mix(old, img, param)
}
`

// Compiled on first use. Callers are on the game loop goroutine.
var glassShader *ebiten.Shader

func ensureGlassShader() *ebiten.Shader {
	if glassShader == nil {
		s, err := ebiten.NewShader([]byte(glassShaderSrc))
		if err != nil {
			panic("lumina: failed to compile glass shader: " + err.Error())
		}
		glassShader = s
	}
	return glassShader
}

// coverFit returns the uniform scale and offset that make a texW×texH image
// cover a w×h area, centered and cropped.
func coverFit(texW, texH, w, h float64) (scale, dx, dy float64) {
	if texW <= 0 || texH <= 0 {
		return 1, 0, 0
	}
	scale = math.Max(w/texW, h/texH)
	dx = (w - texW*scale) / 2
	dy = (h - texH*scale) / 2
	return scale, dx, dy
}

// glassRenderer owns the fitted copies of each texture and the shader
// uniforms. Fitted images are rebuilt when the draw size changes.
type glassRenderer struct {
	w, h     int
	fitted   map[int]*ebiten.Image
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
	imgOp    ebiten.DrawImageOptions
}

func (r *glassRenderer) draw(dst *ebiten.Image, rect Rect, textures []Texture, from, to int, progress float64, cfg GlassConfig) {
	w, h := int(rect.Width), int(rect.Height)
	if w <= 0 || h <= 0 {
		return
	}
	if w != r.w || h != r.h {
		r.releaseFitted()
		r.w, r.h = w, h
	}
	src0 := r.fit(textures, from)
	src1 := r.fit(textures, to)
	if src0 == nil || src1 == nil {
		return
	}

	if r.uniforms == nil {
		r.uniforms = make(map[string]any, 6)
	}
	r.uniforms["Progress"] = float32(progress)
	r.uniforms["RefractionStrength"] = float32(cfg.RefractionStrength)
	r.uniforms["ChromaticAberration"] = float32(cfg.ChromaticAberration)
	r.uniforms["BubbleClarity"] = float32(cfg.BubbleClarity)
	r.uniforms["EdgeGlow"] = float32(cfg.EdgeGlow)
	r.uniforms["LiquidFlow"] = float32(cfg.LiquidFlow)

	op := &r.shaderOp
	op.GeoM.Reset()
	op.GeoM.Translate(rect.X, rect.Y)
	op.Images[0] = src0
	op.Images[1] = src1
	op.Uniforms = r.uniforms
	dst.DrawRectShader(w, h, ensureGlassShader(), op)
}

// fit returns texture i scaled to cover the renderer's size.
func (r *glassRenderer) fit(textures []Texture, i int) *ebiten.Image {
	if i < 0 || i >= len(textures) || textures[i].Image == nil {
		return nil
	}
	if img, ok := r.fitted[i]; ok {
		return img
	}
	if r.fitted == nil {
		r.fitted = make(map[int]*ebiten.Image)
	}
	tex := textures[i]
	s, dx, dy := coverFit(float64(tex.Width), float64(tex.Height), float64(r.w), float64(r.h))
	img := ebiten.NewImage(r.w, r.h)
	op := &r.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(dx, dy)
	op.Filter = ebiten.FilterLinear
	img.DrawImage(tex.Image, op)
	r.fitted[i] = img
	return img
}

func (r *glassRenderer) releaseFitted() {
	for k, img := range r.fitted {
		img.Deallocate()
		delete(r.fitted, k)
	}
}

func (r *glassRenderer) dispose() {
	r.releaseFitted()
	r.w, r.h = 0, 0
	r.shaderOp.Images = [4]*ebiten.Image{}
}
