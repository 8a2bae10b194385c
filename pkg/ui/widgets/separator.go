package widgets

import (
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Orientation is the axis of a separator or box.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Separator draws a line across its allocation.
type Separator struct {
	widget.Base
	Themed

	orientation Orientation
}

// NewSeparator creates a separator along the given axis.
func NewSeparator(o Orientation) *Separator {
	s := &Separator{orientation: o}
	s.SetSelf(s)
	s.bind(s)
	s.RequestResize()
	return s
}

func (s *Separator) Name() string { return "Separator" }

// Orientation returns the separator axis.
func (s *Separator) Orientation() Orientation {
	return s.orientation
}

func (s *Separator) CalculateRequisition() geom.Vector {
	return geom.Vector{X: 1, Y: 1}
}

func (s *Separator) BuildDrawable() render.Drawable {
	e := EngineFor(s)
	style := e.Style(s, "").Background(background(e, s))

	_, _, w, h := s.Allocation().Ints()
	q := render.NewQueue()
	q.Fill(geom.NewRect(0, 0, float64(w), float64(h)), ' ', style)
	if s.orientation == Horizontal {
		q.HLine(0, h/2, w, '─', style)
	} else {
		q.VLine(w/2, 0, h, '│', style)
	}
	return q
}
