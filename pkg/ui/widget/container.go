package widget

import "github.com/odvcencio/trellis/pkg/ui/render"

// Container is a widget that owns child widgets.
type Container interface {
	Widget
	Add(child Widget) bool
	Remove(child Widget) bool
	Children() []Widget
	// HandleChildInvalidate is called when child, or something below it,
	// needs to be drawn again.
	HandleChildInvalidate(child Widget)
}

// ContainerBase implements Container over an ordered child list. Types
// embedding it must call SetSelf so the container hooks are dispatched.
type ContainerBase struct {
	Base
	children []Widget
}

// NewContainer returns a standalone container.
func NewContainer() *ContainerBase {
	c := &ContainerBase{}
	c.SetSelf(c)
	return c
}

func (c *ContainerBase) Name() string { return "Container" }

func (c *ContainerBase) thisContainer() Container {
	if cont, ok := c.this().(Container); ok {
		return cont
	}
	return c
}

// Add attaches child, moving it out of its previous container. Adding a
// widget that is already a child, or an ancestor of this container, fails.
func (c *ContainerBase) Add(child Widget) bool {
	if child == nil {
		return false
	}
	self := c.thisContainer()
	if child.Parent() == self || IsAncestor(child, self) {
		return false
	}
	if !child.SetParent(self) {
		return false
	}
	c.children = append(c.children, child)

	self.RequestResize()
	if child.IsInvalidated() {
		self.HandleChildInvalidate(child)
	}
	return true
}

// Remove detaches child. Focus held inside the removed subtree is cleared.
func (c *ContainerBase) Remove(child Widget) bool {
	idx := -1
	for i, w := range c.children {
		if w == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	self := c.thisContainer()
	if f := c.FocusedWidget(); f != nil && IsAncestor(child, f) {
		self.GrabFocus(nil)
	}

	c.children = append(c.children[:idx:idx], c.children[idx+1:]...)
	child.base().parent = nil

	self.RequestResize()
	c.reportDamage()
	return true
}

// Children returns a copy of the child list in insertion order.
func (c *ContainerBase) Children() []Widget {
	return append([]Widget(nil), c.children...)
}

// HandleChildInvalidate forwards the notification up to the root listener.
func (c *ContainerBase) HandleChildInvalidate(child Widget) {
	if c.parent != nil {
		c.parent.HandleChildInvalidate(child)
		return
	}
	if c.onInvalidate != nil {
		c.onInvalidate(child)
	}
}

// HandleAbsolutePositionChange moves this drawable and every descendant's.
func (c *ContainerBase) HandleAbsolutePositionChange() {
	c.UpdateDrawablePosition()
	for _, child := range c.children {
		child.HandleAbsolutePositionChange()
	}
}

// HandleExpose exposes the children in order.
func (c *ContainerBase) HandleExpose(target *render.CullingTarget) {
	for _, child := range c.Children() {
		child.Expose(target)
	}
}

// HandleEvent handles ev itself, then forwards it to every child.
func (c *ContainerBase) HandleEvent(s *Session, ev Event) {
	if !c.IsVisible() {
		return
	}
	c.Base.HandleEvent(s, ev)
	for _, child := range c.Children() {
		child.HandleEvent(s, ev)
	}
}

// Dispose releases drawables of the whole subtree.
func (c *ContainerBase) Dispose() {
	for _, child := range c.children {
		child.Dispose()
	}
	c.Base.Dispose()
}

var _ Container = (*ContainerBase)(nil)
