package lumina

import "math"

// Theme holds the showcase palette.
type Theme struct {
	Background Color
	Gold       Color
	Text       Color
	Muted      Color
	Panel      Color
	PanelText  Color
	PanelMuted Color
	Track      Color
}

// DefaultTheme is gold and ivory on deep charcoal.
func DefaultTheme() Theme {
	return Theme{
		Background: MustHexColor("#0C0A09"),
		Gold:       MustHexColor("#CA8A04"),
		Text:       MustHexColor("#FAFAF9"),
		Muted:      MustHexColor("#A8A29E"),
		Panel:      MustHexColor("#FAFAF9"),
		PanelText:  MustHexColor("#1C1917"),
		PanelMuted: MustHexColor("#57534E"),
		Track:      Color{1, 1, 1, 0.15},
	}
}

const (
	headerHeight = 64.0
	footerHeight = 48.0
	navRowHeight = 34.0
)

// Layout is the screen geometry of the showcase for one viewport size.
type Layout struct {
	Width, Height float64

	Header Rect
	Footer Rect
	// Stage is where the carousel draws.
	Stage Rect
	// Column is the text column left of the stage.
	Column      Rect
	Counter     Vec2
	Title       Vec2
	Description Rect
	Explore     Rect
	// Nav holds one row per slide; the progress line runs along the bottom
	// edge of each row.
	Nav []Rect
}

// ComputeLayout lays out a w×h viewport for n slides.
func ComputeLayout(w, h float64, n int) Layout {
	l := Layout{Width: w, Height: h}
	margin := math.Min(48, math.Max(12, w*0.04))

	l.Header = Rect{Width: w, Height: headerHeight}
	l.Footer = Rect{Y: h - footerHeight, Width: w, Height: footerHeight}

	top := headerHeight + margin/2
	bottom := h - footerHeight - margin/2
	bodyH := math.Max(0, bottom-top)

	split := math.Round(w * 0.42)
	l.Stage = Rect{X: split, Y: top, Width: math.Max(0, w-split-margin), Height: bodyH}
	l.Column = Rect{X: margin, Y: top, Width: math.Max(0, split-2*margin), Height: bodyH}

	l.Counter = Vec2{X: margin, Y: top + 8}
	l.Title = Vec2{X: margin, Y: top + bodyH*0.22}
	l.Description = Rect{X: margin, Y: l.Title.Y + 64, Width: l.Column.Width, Height: 96}
	l.Explore = Rect{X: margin, Y: l.Description.Y + l.Description.Height + 16, Width: math.Min(200, l.Column.Width), Height: 44}

	navTop := bottom - float64(n)*navRowHeight
	if floor := l.Explore.Y + l.Explore.Height + 16; navTop < floor {
		navTop = floor
	}
	l.Nav = make([]Rect, n)
	for i := range l.Nav {
		l.Nav[i] = Rect{X: margin, Y: navTop + float64(i)*navRowHeight, Width: l.Column.Width, Height: navRowHeight - 6}
	}
	return l
}

// NavAt returns the nav row containing (x, y), or -1.
func (l *Layout) NavAt(x, y float64) int {
	for i, r := range l.Nav {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// OverlayLayout is the geometry of the detail overlay.
type OverlayLayout struct {
	Panel   Rect
	Image   Rect
	Info    Rect
	Close   Rect
	Inquiry Rect
}

// ComputeOverlayLayout lays out the detail overlay for a w×h viewport: the
// image takes three fifths of the panel, details the rest.
func ComputeOverlayLayout(w, h float64) OverlayLayout {
	inset := math.Max(16, math.Min(w, h)*0.06)
	panel := Rect{X: inset, Y: inset, Width: math.Max(0, w-2*inset), Height: math.Max(0, h-2*inset)}
	imgW := math.Round(panel.Width * 0.6)
	pad := math.Min(40, panel.Width*0.04)

	var l OverlayLayout
	l.Panel = panel
	l.Image = Rect{X: panel.X, Y: panel.Y, Width: imgW, Height: panel.Height}
	l.Info = Rect{
		X:      panel.X + imgW + pad,
		Y:      panel.Y + pad,
		Width:  math.Max(0, panel.Width-imgW-2*pad),
		Height: math.Max(0, panel.Height-2*pad),
	}
	l.Close = Rect{X: w - inset - 8 - 40, Y: inset + 8, Width: 40, Height: 40}
	l.Inquiry = Rect{X: l.Info.X, Y: l.Info.Y + l.Info.Height - 56 - 24, Width: l.Info.Width, Height: 56}
	return l
}
