package runtime

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/odvcencio/trellis/pkg/observability"
	"github.com/odvcencio/trellis/pkg/ui/backend/sim"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// newIdleApp returns an app whose loop never runs; messages are fed to
// DefaultUpdate by hand.
func newIdleApp(t *testing.T) *App {
	t.Helper()

	be := sim.New(40, 12)
	if err := be.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(be.Fini)

	return NewApp(AppConfig{
		Backend: be,
		Desktop: NewDesktop(40, 12, widget.NewSession()),
	})
}

func TestDefaultUpdate_NilApp(t *testing.T) {
	if DefaultUpdate(nil, RefreshMsg{}) {
		t.Error("DefaultUpdate(nil) should report no render")
	}
	if DefaultUpdate(NewApp(AppConfig{}), RefreshMsg{}) {
		t.Error("DefaultUpdate without a desktop should report no render")
	}
}

func TestDefaultUpdate_InputReachesWidgets(t *testing.T) {
	app := newIdleApp(t)
	win, first, _ := entryWindow(0, 0)
	app.Desktop().Add(win)
	NewFocusChain(win).FocusFirst()

	before := testutil.ToFloat64(observability.InputEvents.WithLabelValues("text"))
	DefaultUpdate(app, InputMsg{Event: terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'z'}})

	if first.Text() != "z" {
		t.Errorf("entry text = %q, want %q", first.Text(), "z")
	}
	if got := testutil.ToFloat64(observability.InputEvents.WithLabelValues("text")); got != before+1 {
		t.Errorf("text events counted = %v, want %v", got-before, 1)
	}
}

func TestDefaultUpdate_Resize(t *testing.T) {
	app := newIdleApp(t)

	if !DefaultUpdate(app, InputMsg{Event: terminal.ResizeEvent{Width: 20, Height: 6}}) {
		t.Error("resize should request a render")
	}
	if w, h := app.Desktop().Size(); w != 20 || h != 6 {
		t.Errorf("desktop size = %dx%d, want 20x6", w, h)
	}

	DefaultUpdate(app, ResizeMsg{Width: 30, Height: 8})
	if w, h := app.Desktop().Buffer().Size(); w != 30 || h != 8 {
		t.Errorf("buffer size = %dx%d, want 30x8", w, h)
	}
}

func TestDefaultUpdate_Invoke(t *testing.T) {
	app := newIdleApp(t)

	var got *App
	DefaultUpdate(app, InvokeMsg{Fn: func(a *App) { got = a }})
	if got != app {
		t.Error("InvokeMsg should run its function with the app")
	}

	// A nil function is ignored.
	DefaultUpdate(app, InvokeMsg{})
}

func TestDefaultUpdate_QuitAndCtrlC(t *testing.T) {
	app := newIdleApp(t)

	app.running = true
	DefaultUpdate(app, QuitMsg{})
	if app.running {
		t.Error("QuitMsg should stop the loop")
	}

	app.running = true
	DefaultUpdate(app, InputMsg{Event: terminal.KeyEvent{Key: terminal.KeyCtrlC}})
	if app.running {
		t.Error("Ctrl-C should stop the loop")
	}
}

func TestDefaultUpdate_Refresh(t *testing.T) {
	app := newIdleApp(t)
	buf := app.Desktop().Buffer()
	buf.ClearDirty()

	if !DefaultUpdate(app, RefreshMsg{}) {
		t.Error("RefreshMsg should request a render")
	}
	if w, h := buf.Size(); buf.DirtyCount() != w*h {
		t.Errorf("DirtyCount() = %d, want %d", buf.DirtyCount(), w*h)
	}
}

func TestDefaultUpdate_IgnoresTicksAndInterrupts(t *testing.T) {
	app := newIdleApp(t)

	if DefaultUpdate(app, TickMsg{Time: time.Now()}) {
		t.Error("TickMsg should not request a render")
	}
	if DefaultUpdate(app, InputMsg{Event: terminal.InterruptEvent{Data: 1}}) {
		t.Error("interrupts should not request a render")
	}
}
