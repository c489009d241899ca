package lumina

// timer fires fn once after a delay measured in Update seconds. All
// scheduling in lumina is driven by the host tick, so tests can advance time
// deterministically.
type timer struct {
	remaining float64
	fn        func()
	active    bool
}

// start (re)arms the timer. Any previously pending callback is discarded.
func (t *timer) start(delay float64, fn func()) {
	t.remaining = delay
	t.fn = fn
	t.active = true
}

func (t *timer) stop() {
	t.active = false
	t.fn = nil
}

func (t *timer) pending() bool {
	return t.active
}

func (t *timer) update(dt float64) {
	if !t.active {
		return
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return
	}
	fn := t.fn
	t.stop()
	if fn != nil {
		fn()
	}
}

// ticker fires fn every interval seconds until stopped. A large dt fires
// several times in one update; fn may stop the ticker mid-burst.
type ticker struct {
	interval float64
	acc      float64
	fn       func()
	active   bool
}

func (t *ticker) start(interval float64, fn func()) {
	if interval <= 0 {
		interval = 1.0 / 60.0
	}
	t.interval = interval
	t.acc = 0
	t.fn = fn
	t.active = true
}

func (t *ticker) stop() {
	t.active = false
	t.fn = nil
	t.acc = 0
}

func (t *ticker) running() bool {
	return t.active
}

func (t *ticker) update(dt float64) {
	if !t.active {
		return
	}
	t.acc += dt
	// Small tolerance so 0.05 accumulated from float steps still ticks.
	for t.active && t.acc >= t.interval-1e-9 {
		t.acc -= t.interval
		t.fn()
	}
}
