package render

import (
	"testing"

	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gridTarget struct {
	w, h  int
	cells map[[2]int]rune
	comb  map[[2]int][]rune
}

func newGridTarget(w, h int) *gridTarget {
	return &gridTarget{w: w, h: h, cells: map[[2]int]rune{}, comb: map[[2]int][]rune{}}
}

func (g *gridTarget) Size() (int, int) { return g.w, g.h }

func (g *gridTarget) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	g.cells[[2]int{x, y}] = mainc
	if len(comb) > 0 {
		g.comb[[2]int{x, y}] = comb
	}
}

func (g *gridTarget) row(y, x0, x1 int) string {
	out := make([]rune, 0, x1-x0)
	for x := x0; x < x1; x++ {
		r, ok := g.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}

func TestQueue_FillBounds(t *testing.T) {
	q := NewQueue()
	q.Fill(geom.NewRect(1, 1, 3, 2), '#', backend.DefaultStyle())
	q.Compile()

	assert.Equal(t, 6, q.Len())
	assert.Equal(t, geom.NewRect(1, 1, 3, 2), q.Bounds())

	q.SetPosition(geom.Vector{X: 10, Y: 5})
	assert.Equal(t, geom.NewRect(11, 6, 3, 2), q.Bounds())
}

func TestQueue_DrawAtPosition(t *testing.T) {
	q := NewQueue()
	q.Text(0, 0, "hi", backend.DefaultStyle())
	q.SetPosition(geom.Vector{X: 3, Y: 2})

	target := newGridTarget(10, 10)
	q.Draw(target)

	assert.Equal(t, "hi", target.row(2, 3, 5))
	assert.Len(t, target.cells, 2)
}

func TestQueue_TextWideRunes(t *testing.T) {
	q := NewQueue()
	q.Text(0, 0, "a世b", backend.DefaultStyle())
	q.Compile()

	cells := q.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, 0, cells[0].X)
	assert.Equal(t, 1, cells[1].X)
	assert.Equal(t, 3, cells[2].X, "wide rune occupies two cells")
	assert.Equal(t, float64(4), q.Bounds().Width)
}

func TestQueue_TextCombiningRunes(t *testing.T) {
	q := NewQueue()
	q.Text(0, 0, "e\u0301x", backend.DefaultStyle())

	target := newGridTarget(5, 1)
	q.Draw(target)

	assert.Equal(t, "ex", target.row(0, 0, 2))
	assert.Equal(t, []rune{'\u0301'}, target.comb[[2]int{0, 0}])
}

func TestQueue_Lines(t *testing.T) {
	q := NewQueue()
	q.HLine(0, 0, 4, '-', backend.DefaultStyle())
	q.VLine(0, 1, 2, '|', backend.DefaultStyle())

	target := newGridTarget(5, 5)
	q.Draw(target)

	assert.Equal(t, "----", target.row(0, 0, 4))
	assert.Equal(t, '|', target.cells[[2]int{0, 1}])
	assert.Equal(t, '|', target.cells[[2]int{0, 2}])
	assert.Equal(t, geom.NewRect(0, 0, 4, 3), q.Bounds())
}

func TestQueue_Box(t *testing.T) {
	q := NewQueue()
	q.Box(geom.NewRect(0, 0, 4, 3), backend.DefaultStyle(), backend.DefaultStyle().Dim(true))

	target := newGridTarget(4, 3)
	q.Draw(target)

	assert.Equal(t, "┌──┐", target.row(0, 0, 4))
	assert.Equal(t, "│  │", target.row(1, 0, 4))
	assert.Equal(t, "└──┘", target.row(2, 0, 4))
}

func TestQueue_BoxTooSmall(t *testing.T) {
	q := NewQueue()
	q.Box(geom.NewRect(0, 0, 1, 5), backend.DefaultStyle(), backend.DefaultStyle())
	q.Compile()

	assert.Equal(t, 0, q.Len())
	assert.True(t, q.Bounds().Empty())
}

func TestQueue_LaterPrimitivesWin(t *testing.T) {
	q := NewQueue()
	q.Fill(geom.NewRect(0, 0, 3, 1), '.', backend.DefaultStyle())
	q.Text(1, 0, "x", backend.DefaultStyle())

	target := newGridTarget(3, 1)
	q.Draw(target)

	assert.Equal(t, ".x.", target.row(0, 0, 3))
}

func TestQueue_Append(t *testing.T) {
	inner := NewQueue()
	inner.Text(0, 0, "ab", backend.DefaultStyle())

	outer := NewQueue()
	outer.Fill(geom.NewRect(0, 0, 4, 2), ' ', backend.DefaultStyle())
	outer.Append(inner, geom.Vector{X: 1, Y: 1})

	target := newGridTarget(4, 2)
	outer.Draw(target)

	assert.Equal(t, " ab ", target.row(1, 0, 4))
	assert.Equal(t, geom.NewRect(0, 0, 4, 2), outer.Bounds())
}

func TestQueue_RecompileAfterPush(t *testing.T) {
	q := NewQueue()
	q.Text(0, 0, "a", backend.DefaultStyle())
	q.Compile()
	require.Equal(t, 1, q.Len())

	q.Text(0, 1, "b", backend.DefaultStyle())
	assert.Equal(t, geom.NewRect(0, 0, 1, 2), q.Bounds(), "Bounds compiles pending primitives")
	assert.Equal(t, 2, q.Len())
}
