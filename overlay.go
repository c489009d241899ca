package lumina

import (
	"image"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultZoom is the magnification while the pointer hovers the image.
const DefaultZoom = 2.5

// Overlay is the full-screen detail view of one item. Opening, closing and
// the hover zoom run on critically damped springs.
type Overlay struct {
	item Item
	tex  Texture
	open bool

	amount, amountVel float64
	zoom, zoomVel     float64
	hover             bool
	focusX, focusY    float64

	// Zoom is the hover magnification. Defaults to DefaultZoom.
	Zoom float64

	openSpring harmonica.Spring
	zoomSpring harmonica.Spring
	op         ebiten.DrawImageOptions
}

// NewOverlay creates a closed overlay stepping at tps updates per second.
func NewOverlay(tps int) *Overlay {
	if tps <= 0 {
		tps = 60
	}
	return &Overlay{
		Zoom:       DefaultZoom,
		zoom:       1,
		openSpring: harmonica.NewSpring(harmonica.FPS(tps), 7.0, 1.0),
		zoomSpring: harmonica.NewSpring(harmonica.FPS(tps), 12.0, 1.0),
	}
}

// Open shows item with tex as its image. tex is borrowed, not owned.
func (o *Overlay) Open(item Item, tex Texture) {
	o.item = item
	o.tex = tex
	o.open = true
	o.hover = false
	o.zoom, o.zoomVel = 1, 0
	debugf("overlay open: %s", item.Title)
}

// Close starts the closing animation.
func (o *Overlay) Close() {
	o.open = false
	o.hover = false
}

// IsOpen reports whether the overlay is open or opening.
func (o *Overlay) IsOpen() bool { return o.open }

// Visible reports whether any part of the overlay is on screen.
func (o *Overlay) Visible() bool { return o.open || o.amount > 0.001 }

// Amount returns the open animation position in [0, 1].
func (o *Overlay) Amount() float64 { return clamp01(o.amount) }

// Item returns the item shown.
func (o *Overlay) Item() Item { return o.item }

// Hover records the pointer over the image area. nx, ny are normalized
// coordinates within the image; inside false ends the zoom.
func (o *Overlay) Hover(inside bool, nx, ny float64) {
	o.hover = inside && o.open
	if o.hover {
		o.focusX, o.focusY = clamp01(nx), clamp01(ny)
	}
}

// Zooming reports whether the hover zoom is engaged.
func (o *Overlay) Zooming() bool { return o.hover }

// ZoomLevel returns the current animated magnification.
func (o *Overlay) ZoomLevel() float64 { return o.zoom }

// Update steps the springs by one tick.
func (o *Overlay) Update() {
	target := 0.0
	if o.open {
		target = 1
	}
	o.amount, o.amountVel = o.openSpring.Update(o.amount, o.amountVel, target)
	if !o.open && o.amount < 0.001 {
		o.amount, o.amountVel = 0, 0
		o.tex = Texture{}
	}

	zt := 1.0
	if o.hover {
		zt = o.Zoom
	}
	o.zoom, o.zoomVel = o.zoomSpring.Update(o.zoom, o.zoomVel, zt)
}

// priceOnRequest is shown for every piece; pricing is discussed in the
// consultation, whatever the catalog's price field holds.
const priceOnRequest = "Price on Request"

// consultationRow returns the label and price text above the inquiry button.
func (o *Overlay) consultationRow() (label, price string) {
	return "CONSULTATION", priceOnRequest
}

// imageGeoM maps the texture into area: cover-fitted, then scaled by zoom
// around the focus point, so the point under the pointer stays put.
func imageGeoM(tex Texture, area Rect, zoom, fx, fy float64) ebiten.GeoM {
	s, dx, dy := coverFit(float64(tex.Width), float64(tex.Height), area.Width, area.Height)
	var g ebiten.GeoM
	g.Scale(s, s)
	g.Translate(dx, dy)
	px, py := fx*area.Width, fy*area.Height
	g.Translate(-px, -py)
	g.Scale(zoom, zoom)
	g.Translate(px, py)
	g.Translate(area.X, area.Y)
	return g
}

// Draw renders the overlay. fonts may be nil, in which case only the
// backdrop, panel and image are drawn.
func (o *Overlay) Draw(dst *ebiten.Image, l OverlayLayout, fonts *Fonts, theme Theme) {
	a := o.Amount()
	if a <= 0 {
		return
	}
	b := dst.Bounds()
	FillRect(dst, Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}, Color{0, 0, 0, 0.8 * a})

	// The panel rises into place as it fades in.
	lift := (1 - a) * 40
	panel := l.Panel
	panel.Y += lift
	pc := theme.Panel
	pc.A *= a
	FillRect(dst, panel, pc)

	img := l.Image
	img.Y += lift
	if o.tex.Image != nil && !img.Empty() {
		clip := dst.SubImage(image.Rect(int(img.X), int(img.Y), int(img.X+img.Width), int(img.Y+img.Height))).(*ebiten.Image)
		op := &o.op
		op.GeoM = imageGeoM(o.tex, img, o.zoom, o.focusX, o.focusY)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(a))
		op.Filter = ebiten.FilterLinear
		clip.DrawImage(o.tex.Image, op)
	}

	if fonts == nil {
		return
	}
	fade := func(c Color) Color {
		c.A *= a
		return c
	}
	if !o.hover {
		hint := "HOVER TO AMPLIFY DETAIL"
		DrawText(dst, fonts.Small, hint, img.X+img.Width/2, img.Y+img.Height-40, fade(theme.Text), TextAlignCenter)
	}

	info := l.Info
	info.Y += lift
	y := info.Y
	DrawText(dst, fonts.Small, strings.ToUpper(o.item.Category), info.X, y, fade(theme.Gold), TextAlignLeft)
	y += fonts.Small.LineHeight() + 12
	y += DrawWrapped(dst, fonts.Title, o.item.Title, info.X, y, info.Width, fade(theme.PanelText))
	y += 16
	FillRect(dst, Rect{X: info.X, Y: y, Width: 48, Height: 1}, fade(Color{theme.PanelText.R, theme.PanelText.G, theme.PanelText.B, 0.2}))
	y += 24
	y += DrawWrapped(dst, fonts.Italic, "\""+o.item.Description+"\"", info.X, y, info.Width, fade(theme.PanelMuted))
	y += 24

	if len(o.item.Details) > 0 {
		DrawText(dst, fonts.Small, "KEY DETAILS", info.X, y, fade(theme.PanelText), TextAlignLeft)
		y += fonts.Small.LineHeight() + 12
		for _, d := range o.item.Details {
			FillRect(dst, Rect{X: info.X, Y: y + fonts.Body.LineHeight()/2 - 3, Width: 6, Height: 6}, fade(theme.Gold))
			DrawText(dst, fonts.Body, d, info.X+20, y, fade(theme.PanelMuted), TextAlignLeft)
			y += fonts.Body.LineHeight() + 8
		}
	}

	inq := l.Inquiry
	inq.Y += lift
	rowY := inq.Y - 48
	label, price := o.consultationRow()
	DrawText(dst, fonts.Small, label, info.X, rowY, fade(theme.PanelText), TextAlignLeft)
	DrawText(dst, fonts.Body, price, info.X+info.Width, rowY-2, fade(theme.Gold), TextAlignRight)

	FillRect(dst, inq, fade(theme.PanelText))
	_, th := fonts.Small.MeasureString("X")
	DrawText(dst, fonts.Small, "INQUIRE VIA WHATSAPP", inq.X+inq.Width/2, inq.Y+(inq.Height-th)/2, fade(theme.Panel), TextAlignCenter)
	DrawText(dst, fonts.Small, "WORLDWIDE SHIPPING AVAILABLE", inq.X+inq.Width/2, inq.Y+inq.Height+8, fade(theme.PanelMuted), TextAlignCenter)

	cl := l.Close
	DrawText(dst, fonts.Title, "×", cl.X+cl.Width/2, cl.Y-4, fade(theme.Text), TextAlignCenter)
}
