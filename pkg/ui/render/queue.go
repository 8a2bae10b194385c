// Package render provides the drawables widgets compile and the culling
// target they are exposed onto.
package render

import (
	"github.com/mattn/go-runewidth"
	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/geom"
)

// Drawable is a compiled set of cells positioned in absolute coordinates.
type Drawable interface {
	// Compile flattens queued primitives into cells.
	Compile()
	// SetPosition moves the drawable's origin.
	SetPosition(p geom.Vector)
	// Bounds returns the absolute area covered by the drawable.
	Bounds() geom.Rect
	// Draw writes the drawable's cells to target.
	Draw(target backend.RenderTarget)
}

// Cell is a single compiled cell in drawable-local coordinates.
type Cell struct {
	X, Y  int
	Rune  rune
	Comb  []rune
	Style backend.Style
}

type primitive interface {
	emit(q *Queue)
}

// Queue is an ordered render queue of cell primitives. Primitives are
// recorded in local coordinates and flattened by Compile.
type Queue struct {
	prims    []primitive
	cells    []Cell
	local    geom.Rect
	pos      geom.Vector
	compiled bool
}

// NewQueue creates an empty render queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Fill covers r with ch.
func (q *Queue) Fill(r geom.Rect, ch rune, s backend.Style) {
	q.push(fillPrim{rect: r.Align(), ch: ch, style: s})
}

// Text writes a single line of text starting at (x, y). Wide runes take
// two cells, zero-width runes combine with the previous cell.
func (q *Queue) Text(x, y int, text string, s backend.Style) {
	q.push(textPrim{x: x, y: y, text: text, style: s})
}

// HLine draws a horizontal run of ch.
func (q *Queue) HLine(x, y, width int, ch rune, s backend.Style) {
	q.push(linePrim{x: x, y: y, length: width, ch: ch, style: s})
}

// VLine draws a vertical run of ch.
func (q *Queue) VLine(x, y, height int, ch rune, s backend.Style) {
	q.push(linePrim{x: x, y: y, length: height, ch: ch, style: s, vertical: true})
}

// Box draws a border around r. The top and left edges use light, the
// bottom and right edges use dark, which gives the raised look of a bevel.
func (q *Queue) Box(r geom.Rect, light, dark backend.Style) {
	q.push(boxPrim{rect: r.Align(), light: light, dark: dark})
}

// Append adds every primitive of other to the queue, offset by off.
func (q *Queue) Append(other *Queue, off geom.Vector) {
	if other == nil {
		return
	}
	q.push(subPrim{queue: other, dx: int(geom.Round(off.X)), dy: int(geom.Round(off.Y))})
}

// Len returns the number of compiled cells.
func (q *Queue) Len() int {
	return len(q.cells)
}

// Cells returns the compiled cells.
func (q *Queue) Cells() []Cell {
	return q.cells
}

// Compile flattens the queued primitives and computes local bounds.
// Later primitives overwrite earlier ones at draw time.
func (q *Queue) Compile() {
	q.cells = q.cells[:0]
	q.local = geom.Rect{}
	for _, p := range q.prims {
		p.emit(q)
	}
	q.compiled = true
}

// SetPosition moves the queue's origin.
func (q *Queue) SetPosition(p geom.Vector) {
	q.pos = p.Align()
}

// Position returns the queue's origin.
func (q *Queue) Position() geom.Vector {
	return q.pos
}

// Bounds returns the absolute area covered by compiled cells.
func (q *Queue) Bounds() geom.Rect {
	if !q.compiled {
		q.Compile()
	}
	return q.local.Translate(q.pos)
}

// Draw writes compiled cells to target at the queue's position.
func (q *Queue) Draw(target backend.RenderTarget) {
	if target == nil {
		return
	}
	if !q.compiled {
		q.Compile()
	}
	ox, oy := int(q.pos.X), int(q.pos.Y)
	for _, c := range q.cells {
		target.SetContent(ox+c.X, oy+c.Y, c.Rune, c.Comb, c.Style)
	}
}

func (q *Queue) push(p primitive) {
	q.prims = append(q.prims, p)
	q.compiled = false
}

func (q *Queue) set(x, y int, r rune, s backend.Style) {
	q.cells = append(q.cells, Cell{X: x, Y: y, Rune: r, Style: s})
	q.local = q.local.Union(geom.NewRect(float64(x), float64(y), 1, 1))
}

type fillPrim struct {
	rect  geom.Rect
	ch    rune
	style backend.Style
}

func (p fillPrim) emit(q *Queue) {
	x0, y0, w, h := p.rect.Ints()
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			q.set(x, y, p.ch, p.style)
		}
	}
}

type textPrim struct {
	x, y  int
	text  string
	style backend.Style
}

func (p textPrim) emit(q *Queue) {
	x := p.x
	last := -1
	for _, r := range p.text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if last >= 0 {
				q.cells[last].Comb = append(q.cells[last].Comb, r)
			}
			continue
		}
		q.set(x, p.y, r, p.style)
		last = len(q.cells) - 1
		if w == 2 {
			q.local = q.local.Union(geom.NewRect(float64(x+1), float64(p.y), 1, 1))
		}
		x += w
	}
}

type linePrim struct {
	x, y     int
	length   int
	ch       rune
	style    backend.Style
	vertical bool
}

func (p linePrim) emit(q *Queue) {
	for i := 0; i < p.length; i++ {
		if p.vertical {
			q.set(p.x, p.y+i, p.ch, p.style)
		} else {
			q.set(p.x+i, p.y, p.ch, p.style)
		}
	}
}

type boxPrim struct {
	rect        geom.Rect
	light, dark backend.Style
}

func (p boxPrim) emit(q *Queue) {
	x, y, w, h := p.rect.Ints()
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1

	q.set(x, y, '┌', p.light)
	q.set(right, y, '┐', p.light)
	q.set(x, bottom, '└', p.dark)
	q.set(right, bottom, '┘', p.dark)

	for i := x + 1; i < right; i++ {
		q.set(i, y, '─', p.light)
		q.set(i, bottom, '─', p.dark)
	}
	for i := y + 1; i < bottom; i++ {
		q.set(x, i, '│', p.light)
		q.set(right, i, '│', p.dark)
	}
}

type subPrim struct {
	queue  *Queue
	dx, dy int
}

func (p subPrim) emit(q *Queue) {
	p.queue.Compile()
	for _, c := range p.queue.cells {
		q.set(c.X+p.dx, c.Y+p.dy, c.Rune, c.Style)
		if len(c.Comb) > 0 {
			q.cells[len(q.cells)-1].Comb = c.Comb
		}
	}
	// Keep the second cell of wide runes in the bounds.
	q.local = q.local.Union(p.queue.local.Translate(geom.Vector{X: float64(p.dx), Y: float64(p.dy)}))
}

var _ Drawable = (*Queue)(nil)
