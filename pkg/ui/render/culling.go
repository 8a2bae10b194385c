package render

import (
	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/geom"
)

// boundedTarget is a render target that only accepts writes inside a region.
type boundedTarget interface {
	Bounds() (x, y, w, h int)
}

// CullingTarget draws drawables onto a render target, skipping those that
// fall entirely outside it when culling is enabled.
type CullingTarget struct {
	target backend.RenderTarget
	cull   bool
	drawn  int
	culled int
}

// NewCullingTarget wraps target with culling enabled.
func NewCullingTarget(target backend.RenderTarget) *CullingTarget {
	return &CullingTarget{target: target, cull: true}
}

// Cull enables or disables culling.
func (c *CullingTarget) Cull(enable bool) {
	c.cull = enable
}

// Culling reports whether culling is enabled.
func (c *CullingTarget) Culling() bool {
	return c.cull
}

// Target returns the wrapped render target.
func (c *CullingTarget) Target() backend.RenderTarget {
	return c.target
}

// Draw draws d unless culling is on and d lies outside the target.
func (c *CullingTarget) Draw(d Drawable) {
	if d == nil || c.target == nil {
		return
	}
	if c.cull && !d.Bounds().Intersects(c.viewport()) {
		c.culled++
		return
	}
	d.Draw(c.target)
	c.drawn++
}

// Counts returns how many drawables were drawn and culled since the last reset.
func (c *CullingTarget) Counts() (drawn, culled int) {
	return c.drawn, c.culled
}

// ResetCounts zeroes the drawn and culled counters.
func (c *CullingTarget) ResetCounts() {
	c.drawn, c.culled = 0, 0
}

func (c *CullingTarget) viewport() geom.Rect {
	if b, ok := c.target.(boundedTarget); ok {
		x, y, w, h := b.Bounds()
		return geom.NewRect(float64(x), float64(y), float64(w), float64(h))
	}
	w, h := c.target.Size()
	return geom.NewRect(0, 0, float64(w), float64(h))
}
