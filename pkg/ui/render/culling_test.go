package render

import (
	"testing"

	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/backend/mocks"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func cellQueue(x, y int) *Queue {
	q := NewQueue()
	q.Text(0, 0, "x", backend.DefaultStyle())
	q.SetPosition(geom.Vector{X: float64(x), Y: float64(y)})
	return q
}

func TestCullingTarget_SkipsOffscreen(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := mocks.NewMockRenderTarget(ctrl)
	target.EXPECT().Size().Return(10, 5).AnyTimes()
	target.EXPECT().SetContent(2, 2, 'x', gomock.Any(), gomock.Any()).Times(1)

	ct := NewCullingTarget(target)
	ct.Draw(cellQueue(2, 2))
	ct.Draw(cellQueue(20, 2))

	drawn, culled := ct.Counts()
	assert.Equal(t, 1, drawn)
	assert.Equal(t, 1, culled)
}

func TestCullingTarget_DisabledDrawsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := mocks.NewMockRenderTarget(ctrl)
	target.EXPECT().SetContent(gomock.Any(), gomock.Any(), 'x', gomock.Any(), gomock.Any()).Times(2)

	ct := NewCullingTarget(target)
	ct.Cull(false)
	assert.False(t, ct.Culling())

	ct.Draw(cellQueue(0, 0))
	ct.Draw(cellQueue(50, 50))

	drawn, culled := ct.Counts()
	assert.Equal(t, 2, drawn)
	assert.Equal(t, 0, culled)
}

func TestCullingTarget_UsesClipBounds(t *testing.T) {
	grid := newGridTarget(20, 20)
	ct := NewCullingTarget(backend.NewClip(grid, 5, 5, 5, 5))

	ct.Draw(cellQueue(1, 1))
	ct.Draw(cellQueue(6, 6))

	drawn, culled := ct.Counts()
	assert.Equal(t, 1, drawn)
	assert.Equal(t, 1, culled)
	assert.Len(t, grid.cells, 1)

	ct.ResetCounts()
	drawn, culled = ct.Counts()
	assert.Zero(t, drawn)
	assert.Zero(t, culled)
}

func TestCullingTarget_NilDrawable(t *testing.T) {
	ct := NewCullingTarget(newGridTarget(1, 1))
	ct.Draw(nil)

	drawn, culled := ct.Counts()
	assert.Zero(t, drawn+culled)
}
