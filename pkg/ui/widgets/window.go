package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Window is a top-level bin with a border, a title bar and a drop shadow.
// Its child fills the client area. Dragging the title bar moves the window.
type Window struct {
	widget.BinBase
	Themed

	title string

	dragging   bool
	dragOffset geom.Vector
}

// NewWindow creates an empty window.
func NewWindow(title string) *Window {
	w := &Window{title: title}
	w.SetSelf(w)
	w.bind(w)
	return w
}

func (w *Window) Name() string { return "Window" }

// Title returns the title bar text.
func (w *Window) Title() string {
	return w.title
}

// SetTitle changes the title bar text.
func (w *Window) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	w.RequestResize()
	w.Invalidate()
}

// IsDragging reports whether the title bar is being dragged.
func (w *Window) IsDragging() bool {
	return w.dragging
}

func (w *Window) borderWidth() int {
	return max(EngineFor(w).Int(w, "border-width"), 0)
}

func (w *Window) titleSize() int {
	return max(EngineFor(w).Int(w, "title-size"), 0)
}

// ClientRect returns the area left for the child, relative to the window.
func (w *Window) ClientRect() geom.Rect {
	bw := float64(w.borderWidth())
	ts := float64(w.titleSize())
	alloc := w.Allocation()
	return geom.Rect{
		Left:   bw,
		Top:    bw + ts,
		Width:  max(alloc.Width-2*bw, 0),
		Height: max(alloc.Height-2*bw-ts, 0),
	}
}

// Add sets the window's child and lays it out.
func (w *Window) Add(child widget.Widget) bool {
	if !w.BinBase.Add(child) {
		return false
	}
	w.layoutChild()
	return true
}

// RequestResize recomputes the requisition and lays the child out again,
// since the allocation may not change when the child's requisition does.
func (w *Window) RequestResize() {
	w.BinBase.RequestResize()
	w.layoutChild()
}

func (w *Window) CalculateRequisition() geom.Vector {
	bw := w.borderWidth()
	ts := w.titleSize()

	var child geom.Vector
	if c := w.Child(); c != nil && c.IsVisible() {
		child = c.Requisition()
	}

	width := max(child.X+float64(2*bw), float64(runewidth.StringWidth(w.title)+2+2*bw))
	height := child.Y + float64(2*bw+ts)
	return geom.Vector{X: width, Y: height}
}

func (w *Window) HandleAllocationChange(old geom.Rect) {
	w.layoutChild()
}

func (w *Window) layoutChild() {
	if c := w.Child(); c != nil {
		c.SetAllocation(w.ClientRect())
	}
}

func (w *Window) BuildDrawable() render.Drawable {
	e := EngineFor(w)
	bw := w.borderWidth()
	ts := w.titleSize()
	_, _, width, height := w.Allocation().Ints()

	q := render.NewQueue()
	if width <= 0 || height <= 0 {
		return q
	}

	if d := e.Int(w, "shadow-distance"); d > 0 && e.Int(w, "shadow-alpha") > 0 {
		shadow := backend.DefaultStyle().Background(e.Color(w, "shadow-color"))
		q.Fill(geom.NewRect(float64(d), float64(d), float64(width), float64(height)), ' ', shadow)
	}

	bg := e.Color(w, "background-color")
	body := e.Style(w, "").Background(bg)
	q.Fill(geom.NewRect(0, 0, float64(width), float64(height)), ' ', body)

	if bw > 0 {
		light := backend.DefaultStyle().Foreground(e.Color(w, "border-color-light")).Background(bg)
		dark := backend.DefaultStyle().Foreground(e.Color(w, "border-color-dark")).Background(bg)
		q.Box(geom.NewRect(0, 0, float64(width), float64(height)), light, dark)
	}

	inner := width - 2*bw
	if ts > 0 && inner > 0 && height > 2*bw {
		bar := backend.DefaultStyle().
			Foreground(e.Color(w, "title-color")).
			Background(e.Color(w, "title-background-color"))
		rows := min(ts, height-2*bw)
		q.Fill(geom.NewRect(float64(bw), float64(bw), float64(inner), float64(rows)), ' ', bar)
		q.Text(bw+1, bw, truncate(w.title, inner-2), bar)
	}
	return q
}

func (w *Window) inTitleBar(y int) bool {
	top := int(w.AbsolutePosition().Y) + w.borderWidth()
	return y >= top && y < top+w.titleSize()
}

func (w *Window) HandleMouseButtonEvent(button widget.MouseButton, pressed bool, x, y int) {
	if button != widget.ButtonLeft {
		return
	}
	if !pressed {
		w.dragging = false
		return
	}
	if w.inTitleBar(y) {
		pos := w.AbsolutePosition()
		w.dragging = true
		w.dragOffset = geom.Vector{X: float64(x) - pos.X, Y: float64(y) - pos.Y}
	}
}

func (w *Window) HandleMouseMoveEvent(x, y int) {
	if !w.dragging {
		return
	}
	pos := geom.Vector{X: float64(x), Y: float64(y)}.Sub(w.dragOffset)
	if p := w.Parent(); p != nil {
		pos = pos.Sub(p.AbsolutePosition())
	}
	w.SetPosition(pos)
}
