package widgets

import (
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Box packs its children along one axis. Children get their requisition on
// the main axis; space left over is shared by the children packed with
// expand, and every child fills the cross axis.
type Box struct {
	widget.ContainerBase
	Themed

	orientation Orientation
	spacing     int
	expand      map[widget.Widget]bool
}

// NewBox creates a box along o with spacing cells between children.
func NewBox(o Orientation, spacing int) *Box {
	b := &Box{orientation: o, spacing: max(spacing, 0), expand: make(map[widget.Widget]bool)}
	b.SetSelf(b)
	b.bind(b)
	return b
}

// NewHBox creates a horizontal box.
func NewHBox(spacing int) *Box {
	return NewBox(Horizontal, spacing)
}

// NewVBox creates a vertical box.
func NewVBox(spacing int) *Box {
	return NewBox(Vertical, spacing)
}

func (b *Box) Name() string { return "Box" }

// Add packs child without expansion.
func (b *Box) Add(child widget.Widget) bool {
	return b.Pack(child, false)
}

// Pack appends child. Expanding children share the extra main-axis space.
func (b *Box) Pack(child widget.Widget, expand bool) bool {
	if child == nil {
		return false
	}
	b.expand[child] = expand
	if !b.ContainerBase.Add(child) {
		if child.Parent() != widget.Container(b) {
			delete(b.expand, child)
		}
		return false
	}
	b.layout()
	return true
}

// Remove detaches child.
func (b *Box) Remove(child widget.Widget) bool {
	if !b.ContainerBase.Remove(child) {
		return false
	}
	delete(b.expand, child)
	b.layout()
	return true
}

// RequestResize recomputes the requisition and repacks the children.
func (b *Box) RequestResize() {
	b.ContainerBase.RequestResize()
	b.layout()
}

func (b *Box) visibleChildren() []widget.Widget {
	var out []widget.Widget
	for _, child := range b.Children() {
		if child.IsVisible() {
			out = append(out, child)
		}
	}
	return out
}

// mainCross splits a vector into main and cross axis components.
func (b *Box) mainCross(v geom.Vector) (float64, float64) {
	if b.orientation == Horizontal {
		return v.X, v.Y
	}
	return v.Y, v.X
}

func (b *Box) fromMainCross(main, cross float64) geom.Vector {
	if b.orientation == Horizontal {
		return geom.Vector{X: main, Y: cross}
	}
	return geom.Vector{X: cross, Y: main}
}

func (b *Box) CalculateRequisition() geom.Vector {
	children := b.visibleChildren()
	var main, cross float64
	for _, child := range children {
		m, c := b.mainCross(child.Requisition())
		main += m
		cross = max(cross, c)
	}
	if len(children) > 1 {
		main += float64(b.spacing * (len(children) - 1))
	}
	return b.fromMainCross(main, cross)
}

func (b *Box) HandleAllocationChange(old geom.Rect) {
	b.layout()
}

func (b *Box) layout() {
	children := b.visibleChildren()
	if len(children) == 0 {
		return
	}

	avail, cross := b.mainCross(b.Allocation().Size())
	need, _ := b.mainCross(b.Requisition())

	expanders := 0
	for _, child := range children {
		if b.expand[child] {
			expanders++
		}
	}

	// Integer shares so children stay on cell boundaries; the last expander
	// takes the remainder.
	extra := max(int(avail-need), 0)
	share, rest := 0, 0
	if expanders > 0 {
		share = extra / expanders
		rest = extra - share*expanders
	}

	pos := 0.0
	seen := 0
	for _, child := range children {
		size, _ := b.mainCross(child.Requisition())
		if b.expand[child] {
			seen++
			size += float64(share)
			if seen == expanders {
				size += float64(rest)
			}
		}
		origin := b.fromMainCross(pos, 0)
		extent := b.fromMainCross(size, cross)
		child.SetAllocation(geom.Rect{Left: origin.X, Top: origin.Y, Width: extent.X, Height: extent.Y})
		pos += size + float64(b.spacing)
	}
}
