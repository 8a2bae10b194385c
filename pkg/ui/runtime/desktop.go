package runtime

import (
	"math"
	"slices"

	"github.com/odvcencio/trellis/pkg/observability"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// damageReporter is implemented by widget.Base roots.
type damageReporter interface {
	SetInvalidationListener(fn func(widget.Widget))
}

// FrameStats describes one exposed frame.
type FrameStats struct {
	Windows int
	Drawn   int
	Culled  int
}

// Desktop manages the top-level widgets, their z-order and the back buffer.
// Windows are stored bottom to top.
type Desktop struct {
	width, height int
	windows       []widget.Widget
	buffer        *Buffer
	session       *widget.Session
	cull          bool
	dirty         bool
	logger        *observability.Logger
}

// NewDesktop creates a desktop of the given size. A nil session is valid.
func NewDesktop(w, h int, session *widget.Session) *Desktop {
	return &Desktop{
		width:   w,
		height:  h,
		buffer:  NewBuffer(w, h),
		session: session,
		cull:    true,
		dirty:   true,
		logger:  observability.Nop(),
	}
}

// SetLogger replaces the desktop logger. Nil restores the no-op logger.
func (d *Desktop) SetLogger(l *observability.Logger) {
	if l == nil {
		l = observability.Nop()
	}
	d.logger = l
}

// Session returns the session events are dispatched through.
func (d *Desktop) Session() *widget.Session {
	return d.session
}

// SetCulling enables or disables drawable culling during Render.
func (d *Desktop) SetCulling(enable bool) {
	d.cull = enable
}

// Size returns the desktop dimensions.
func (d *Desktop) Size() (w, h int) {
	return d.width, d.height
}

// Resize changes the desktop dimensions and schedules a full redraw.
func (d *Desktop) Resize(w, h int) {
	d.width = w
	d.height = h
	d.buffer.Resize(w, h)
	d.dirty = true
}

// Buffer returns the desktop's back buffer.
func (d *Desktop) Buffer() *Buffer {
	return d.buffer
}

// Add puts w on top of the desktop and clears the focus of the windows
// below it. Adding a window that is already on the desktop raises it.
// Widgets with a parent are rejected.
func (d *Desktop) Add(w widget.Widget) bool {
	if w == nil || w.Parent() != nil {
		return false
	}
	if slices.Contains(d.windows, w) {
		return d.BringToFront(w)
	}
	d.windows = append(d.windows, w)
	if r, ok := w.(damageReporter); ok {
		r.SetInvalidationListener(d.damage)
	}
	d.blurBelowTop()
	observability.TopLevelWindows.Set(float64(len(d.windows)))
	d.dirty = true
	return true
}

// Remove takes w off the desktop.
func (d *Desktop) Remove(w widget.Widget) bool {
	i := slices.Index(d.windows, w)
	if i < 0 {
		return false
	}
	d.windows = slices.Delete(d.windows, i, i+1)
	if r, ok := w.(damageReporter); ok {
		r.SetInvalidationListener(nil)
	}
	observability.TopLevelWindows.Set(float64(len(d.windows)))
	d.dirty = true
	return true
}

// Windows returns the top-level widgets, bottom first.
func (d *Desktop) Windows() []widget.Widget {
	return slices.Clone(d.windows)
}

// Top returns the topmost window, or nil.
func (d *Desktop) Top() widget.Widget {
	if len(d.windows) == 0 {
		return nil
	}
	return d.windows[len(d.windows)-1]
}

// BringToFront raises w above every other window and clears the focus of
// the windows below it. Returns true if the order changed.
func (d *Desktop) BringToFront(w widget.Widget) bool {
	i := slices.Index(d.windows, w)
	if i < 0 || i == len(d.windows)-1 {
		return false
	}
	d.windows = append(slices.Delete(d.windows, i, i+1), w)
	d.blurBelowTop()
	d.dirty = true
	return true
}

// blurBelowTop clears the focus of every window under the top one. Keys
// only reach the top window, so nothing below may look focused.
func (d *Desktop) blurBelowTop() {
	for _, w := range d.windows[:len(d.windows)-1] {
		w.GrabFocus(nil)
	}
}

// WindowAt returns the topmost visible window containing (x, y), or nil.
func (d *Desktop) WindowAt(x, y int) widget.Widget {
	for i := len(d.windows) - 1; i >= 0; i-- {
		w := d.windows[i]
		if w.IsVisible() && w.Allocation().Contains(float64(x), float64(y)) {
			return w
		}
	}
	return nil
}

// FocusChain returns a focus chain over the topmost window.
func (d *Desktop) FocusChain() *FocusChain {
	return NewFocusChain(d.Top())
}

// HandleEvent routes ev and returns the last widget that handled it.
//
// Pointer events go to the topmost window under the pointer and to every
// window still holding a mouse button, so drags and releases finish where
// they started. A release reaches the window under the pointer only when no
// window holds a button. Windows the pointer is no longer over get a move
// outside their bounds. A press raises the window under the pointer first.
//
// Key and text events go to the top window only. Tab and Backtab move its
// focus instead of being delivered.
func (d *Desktop) HandleEvent(ev widget.Event) widget.Widget {
	switch e := ev.(type) {
	case widget.MouseMoveEvent:
		return d.routePointer(ev, d.WindowAt(e.X, e.Y), true)
	case widget.MouseButtonEvent:
		under := d.WindowAt(e.X, e.Y)
		if e.Pressed && under != nil && d.BringToFront(under) {
			d.logger.Debug("window raised", "window", under.Name())
		}
		return d.routePointer(ev, under, e.Pressed)
	case widget.KeyEvent:
		switch e.Code {
		case terminal.KeyTab:
			if e.Pressed {
				d.FocusChain().FocusNext()
			}
			return nil
		case terminal.KeyBacktab:
			if e.Pressed {
				d.FocusChain().FocusPrev()
			}
			return nil
		}
	}

	top := d.Top()
	if top == nil {
		return nil
	}
	return d.session.Dispatch(top, ev)
}

// offscreen is a pointer coordinate outside every window.
const offscreen = math.MinInt32

// routePointer delivers a pointer event to the button holders, then to
// under when toUnder is set or nobody holds a button.
func (d *Desktop) routePointer(ev widget.Event, under widget.Widget, toUnder bool) widget.Widget {
	var handled widget.Widget
	// Delivery can reorder or remove windows; walk a snapshot.
	windows := d.Windows()
	delivered := make([]widget.Widget, 0, 2)
	deliver := func(w widget.Widget, ev widget.Event) {
		delivered = append(delivered, w)
		if h := d.session.Dispatch(w, ev); h != nil {
			handled = h
		}
	}

	for i := len(windows) - 1; i >= 0; i-- {
		if windows[i].MouseButtonDown() != widget.NoButton {
			deliver(windows[i], ev)
		}
	}
	if under != nil && !slices.Contains(delivered, under) && (toUnder || len(delivered) == 0) {
		deliver(under, ev)
	}

	leave := widget.MouseMoveEvent{X: offscreen, Y: offscreen}
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		if w.IsMouseInWidget() && !slices.Contains(delivered, w) {
			d.session.Dispatch(w, leave)
		}
	}
	return handled
}

// IsDirty reports whether the desktop needs to be rendered.
func (d *Desktop) IsDirty() bool {
	if d.dirty {
		return true
	}
	for _, w := range d.windows {
		if w.IsInvalidated() {
			return true
		}
	}
	return false
}

// MarkDirty schedules a redraw.
func (d *Desktop) MarkDirty() {
	d.dirty = true
}

func (d *Desktop) damage(widget.Widget) {
	d.dirty = true
}

// Render clears the buffer and exposes every window bottom-up.
// Invalidated drawables are rebuilt on the way.
func (d *Desktop) Render() FrameStats {
	d.buffer.Clear()

	target := render.NewCullingTarget(d.buffer)
	target.Cull(d.cull)
	for _, w := range d.windows {
		w.Expose(target)
	}
	drawn, culled := target.Counts()
	observability.DrawablesCulled.Add(float64(culled))

	d.dirty = false
	return FrameStats{Windows: len(d.windows), Drawn: drawn, Culled: culled}
}
