package lumina

import (
	"reflect"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// monoFont measures every rune as 10 pixels wide.
type monoFont struct{}

func (monoFont) MeasureString(s string) (float64, float64) {
	return float64(len([]rune(s))) * 10, 20
}

func (monoFont) LineHeight() float64 { return 20 }

// --- LoadTTFFont ---

func TestLoadTTFFont_InvalidData(t *testing.T) {
	_, err := LoadTTFFont([]byte("not a TTF file"), 16)
	if err == nil {
		t.Error("expected error for invalid TTF data, got nil")
	}
}

func TestLoadTTFFont_GoRegular(t *testing.T) {
	f, err := LoadTTFFont(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("LoadTTFFont: %v", err)
	}
	if f.LineHeight() <= 0 {
		t.Errorf("line height = %f, want > 0", f.LineHeight())
	}
	w1, _ := f.MeasureString("Lumina")
	w2, _ := f.MeasureString("Lumina Bridal")
	if w1 <= 0 || w2 <= w1 {
		t.Errorf("widths %f, %f not increasing", w1, w2)
	}
}

func TestDefaultFonts(t *testing.T) {
	fs, err := DefaultFonts()
	if err != nil {
		t.Fatalf("DefaultFonts: %v", err)
	}
	if fs.Title.Size() <= fs.Body.Size() {
		t.Error("title face should be larger than body")
	}
}

// --- WrapText ---

func TestWrapText(t *testing.T) {
	got := WrapText(monoFont{}, "hand embroidered silk lehenga", 100)
	want := []string{"hand", "embroidered", "silk", "lehenga"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	got = WrapText(monoFont{}, "a bb ccc dddd", 80)
	want = []string{"a bb ccc", "dddd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrapText_NoWrapWhenZeroWidth(t *testing.T) {
	got := WrapText(monoFont{}, "one two three", 0)
	if len(got) != 1 || got[0] != "one two three" {
		t.Errorf("got %q", got)
	}
}

func TestWrapText_KeepsNewlines(t *testing.T) {
	got := WrapText(monoFont{}, "line one\n\nline two", 1000)
	want := []string{"line one", "", "line two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAlignOffset(t *testing.T) {
	assertNear(t, "left", alignOffset(TextAlignLeft, 100), 0)
	assertNear(t, "center", alignOffset(TextAlignCenter, 100), -50)
	assertNear(t, "right", alignOffset(TextAlignRight, 100), -100)
}
