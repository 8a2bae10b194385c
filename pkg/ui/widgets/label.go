package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Label displays one or more lines of text.
type Label struct {
	widget.Base
	Themed

	text  string
	lines []string // Cached line splits
	align float64
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	l := &Label{}
	l.SetSelf(l)
	l.bind(l)
	l.setText(text)
	l.RequestResize()
	return l
}

func (l *Label) Name() string { return "Label" }

// SetText updates the displayed text.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	l.setText(text)
	l.RequestResize()
	l.Invalidate()
}

func (l *Label) setText(text string) {
	l.text = text
	l.lines = strings.Split(text, "\n")
}

// Text returns the current text.
func (l *Label) Text() string {
	return l.text
}

// SetAlignment places lines horizontally: 0 is left, 0.5 centered, 1 right.
func (l *Label) SetAlignment(x float64) {
	x = min(max(x, 0), 1)
	if x == l.align {
		return
	}
	l.align = x
	l.Invalidate()
}

// CalculateRequisition returns the widest line by cells and the line count.
func (l *Label) CalculateRequisition() geom.Vector {
	width := 0
	for _, line := range l.lines {
		width = max(width, runewidth.StringWidth(line))
	}
	return geom.Vector{X: float64(width), Y: float64(len(l.lines))}
}

func (l *Label) BuildDrawable() render.Drawable {
	e := EngineFor(l)
	style := e.Style(l, variant(l.State())).Background(background(e, l))

	_, _, w, h := l.Allocation().Ints()
	q := render.NewQueue()
	q.Fill(geom.NewRect(0, 0, float64(w), float64(h)), ' ', style)

	for i, line := range l.lines {
		if i >= h {
			break
		}
		line = truncate(line, w)
		x := int(geom.Round(float64(w-runewidth.StringWidth(line)) * l.align))
		q.Text(x, i, line, style)
	}
	return q
}
