package lumina

import "testing"

func TestTimerFiresOnce(t *testing.T) {
	var tm timer
	calls := 0
	tm.start(0.1, func() { calls++ })

	tm.update(0.05)
	if calls != 0 {
		t.Fatal("fired early")
	}
	tm.update(0.05)
	tm.update(0.05)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if tm.pending() {
		t.Error("timer should not be pending after firing")
	}
}

func TestTimerStopCancels(t *testing.T) {
	var tm timer
	fired := false
	tm.start(0.1, func() { fired = true })
	tm.stop()
	tm.update(1)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestTimerRestartReplacesCallback(t *testing.T) {
	var tm timer
	var got string
	tm.start(0.1, func() { got = "first" })
	tm.start(0.2, func() { got = "second" })
	tm.update(0.3)
	if got != "second" {
		t.Errorf("got %q, want second", got)
	}
}

func TestTickerFiresEveryInterval(t *testing.T) {
	var tk ticker
	calls := 0
	tk.start(0.05, func() { calls++ })
	for i := 0; i < 20; i++ {
		tk.update(0.05)
	}
	if calls != 20 {
		t.Errorf("calls = %d, want 20", calls)
	}
}

func TestTickerBurstOnLargeStep(t *testing.T) {
	var tk ticker
	calls := 0
	tk.start(0.05, func() { calls++ })
	tk.update(0.2)
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestTickerStopInsideCallback(t *testing.T) {
	var tk ticker
	calls := 0
	tk.start(0.05, func() {
		calls++
		if calls == 2 {
			tk.stop()
		}
	})
	tk.update(1.0)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if tk.running() {
		t.Error("ticker should be stopped")
	}
}
