package widgets

import (
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Fixed is a container whose children keep the positions they are put at.
// Each child is sized to its requisition.
type Fixed struct {
	widget.ContainerBase
	Themed
}

// NewFixed creates an empty fixed container.
func NewFixed() *Fixed {
	f := &Fixed{}
	f.SetSelf(f)
	f.bind(f)
	return f
}

func (f *Fixed) Name() string { return "Fixed" }

// Put adds child at pos, relative to the container.
func (f *Fixed) Put(child widget.Widget, pos geom.Vector) bool {
	if !f.Add(child) {
		return false
	}
	return f.Move(child, pos)
}

// Move repositions a child of the container.
func (f *Fixed) Move(child widget.Widget, pos geom.Vector) bool {
	if child == nil || child.Parent() != widget.Container(f) {
		return false
	}
	child.SetPosition(pos)
	f.RequestResize()
	return true
}

// RequestResize sizes every child to its requisition before negotiating
// with the parent.
func (f *Fixed) RequestResize() {
	for _, child := range f.Children() {
		a := child.Allocation()
		req := child.Requisition()
		child.SetAllocation(geom.Rect{Left: a.Left, Top: a.Top, Width: req.X, Height: req.Y})
	}
	f.ContainerBase.RequestResize()
}

// CalculateRequisition returns the extent of the visible children.
func (f *Fixed) CalculateRequisition() geom.Vector {
	var req geom.Vector
	for _, child := range f.Children() {
		if !child.IsVisible() {
			continue
		}
		a := child.Allocation()
		r := child.Requisition()
		req.X = max(req.X, a.Left+r.X)
		req.Y = max(req.Y, a.Top+r.Y)
	}
	return req
}
