package widgets

import (
	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// ProgressBar shows a fraction as a horizontal gauge.
type ProgressBar struct {
	widget.Base
	Themed

	fraction float64
}

// NewProgressBar creates an empty progress bar.
func NewProgressBar() *ProgressBar {
	p := &ProgressBar{}
	p.SetSelf(p)
	p.bind(p)
	p.RequestResize()
	return p
}

func (p *ProgressBar) Name() string { return "ProgressBar" }

// Fraction returns the current value in [0, 1].
func (p *ProgressBar) Fraction() float64 {
	return p.fraction
}

// SetFraction clamps f to [0, 1] and redraws when it changes.
func (p *ProgressBar) SetFraction(f float64) {
	f = min(max(f, 0), 1)
	if f == p.fraction {
		return
	}
	p.fraction = f
	p.Invalidate()
}

// filled returns how many of width cells are filled.
func (p *ProgressBar) filled(width int) int {
	return min(int(float64(width)*p.fraction+0.5), width)
}

func (p *ProgressBar) CalculateRequisition() geom.Vector {
	return geom.Vector{X: float64(max(EngineFor(p).Int(p, "min-width"), 1)), Y: 1}
}

func (p *ProgressBar) BuildDrawable() render.Drawable {
	e := EngineFor(p)
	bg := background(e, p)
	bar := backend.DefaultStyle().Foreground(e.Color(p, "bar-color")).Background(bg)
	rest := backend.DefaultStyle().Foreground(e.Color(p, "empty-color")).Background(bg)

	_, _, w, h := p.Allocation().Ints()
	q := render.NewQueue()
	fill := p.filled(w)
	for y := 0; y < h; y++ {
		q.HLine(0, y, fill, '█', bar)
		q.HLine(fill, y, w-fill, '░', rest)
	}
	return q
}
