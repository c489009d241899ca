package lumina

import "testing"

func TestFPSWidgetHiddenByDefault(t *testing.T) {
	w := NewFPSWidget()
	w.sample = func() (float64, float64) { return 60, 60 }
	w.update(1)
	if w.Visible() || w.Text() != "" {
		t.Errorf("hidden widget should not sample, text = %q", w.Text())
	}
}

func TestFPSWidgetRefreshInterval(t *testing.T) {
	w := NewFPSWidget()
	calls := 0
	w.sample = func() (float64, float64) {
		calls++
		return 59.94, 60
	}
	w.Toggle()
	w.update(0.01) // first update after showing samples immediately
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if w.Text() != "FPS: 59.9\nTPS: 60.0" {
		t.Errorf("text = %q", w.Text())
	}
	w.update(0.2)
	if calls != 1 {
		t.Errorf("sampled before the refresh interval: %d", calls)
	}
	w.update(0.35)
	if calls != 2 {
		t.Errorf("calls = %d after %.1fs, want 2", calls, fpsRefresh)
	}
}

func TestFPSWidgetToggle(t *testing.T) {
	w := NewFPSWidget()
	w.Toggle()
	if !w.Visible() {
		t.Error("expected visible after Toggle")
	}
	w.Toggle()
	if w.Visible() {
		t.Error("expected hidden after second Toggle")
	}
}
