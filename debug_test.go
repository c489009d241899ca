package lumina

import (
	"bytes"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() {
		SetLogOutput(nil)
		SetDebug(false)
	})
	return &buf
}

func TestLogfPrefix(t *testing.T) {
	buf := captureLog(t)
	logf("warning %d", 7)
	if got := buf.String(); got != "[lumina] warning 7\n" {
		t.Errorf("log = %q", got)
	}
}

func TestDebugfGated(t *testing.T) {
	buf := captureLog(t)
	debugf("hidden")
	if buf.Len() != 0 {
		t.Errorf("debugf wrote %q outside debug mode", buf.String())
	}
	SetDebug(true)
	debugf("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debugf did not write in debug mode: %q", buf.String())
	}
}

func TestFrameTimerLogsInDebug(t *testing.T) {
	buf := captureLog(t)
	var ft FrameTimer

	ft.BeginField()
	ft.EndField(nil)
	ft.BeginCarousel()
	ft.EndCarousel(nil)
	if buf.Len() != 0 {
		t.Fatal("frame timer should be silent outside debug mode")
	}

	SetDebug(true)
	ft.BeginField()
	ft.EndField(nil)
	ft.BeginCarousel()
	ft.EndCarousel(nil)
	if !strings.Contains(buf.String(), "field:") || !strings.Contains(buf.String(), "carousel:") {
		t.Errorf("missing stats line: %q", buf.String())
	}
}
