package lumina

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the FPS readout is redrawn.
const fpsRefresh = 0.5

// FPSWidget displays the current FPS and TPS in the top-left corner. It is
// hidden until toggled on.
type FPSWidget struct {
	visible bool
	elapsed float64
	dirty   bool
	img     *ebiten.Image
	text    string

	// sample reports the frame and tick rates. Swapped out in tests.
	sample func() (fps, tps float64)
}

// NewFPSWidget creates a hidden widget.
func NewFPSWidget() *FPSWidget {
	return &FPSWidget{
		sample: func() (float64, float64) { return ebiten.ActualFPS(), ebiten.ActualTPS() },
	}
}

// Toggle shows or hides the widget.
func (w *FPSWidget) Toggle() {
	w.SetVisible(!w.visible)
}

// SetVisible shows or hides the widget.
func (w *FPSWidget) SetVisible(v bool) {
	w.visible = v
	// Sample on the next update rather than waiting a full interval.
	w.elapsed = fpsRefresh
}

// Visible reports whether the widget is drawn.
func (w *FPSWidget) Visible() bool { return w.visible }

// Text returns the last formatted readout.
func (w *FPSWidget) Text() string { return w.text }

// update refreshes the readout every fpsRefresh seconds while visible.
func (w *FPSWidget) update(dt float64) {
	if !w.visible {
		return
	}
	w.elapsed += dt
	if w.elapsed < fpsRefresh {
		return
	}
	w.elapsed = 0
	fps, tps := w.sample()
	w.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
	w.dirty = true
}

func (w *FPSWidget) draw(dst *ebiten.Image) {
	if !w.visible || w.text == "" {
		return
	}
	if w.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		w.img = ebiten.NewImage(100, 32)
	}
	if w.dirty {
		w.dirty = false
		w.img.Clear()
		w.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(w.img, w.text)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, headerHeight+8)
	dst.DrawImage(w.img, &op)
}

func (w *FPSWidget) dispose() {
	if w.img != nil {
		w.img.Deallocate()
		w.img = nil
	}
}
