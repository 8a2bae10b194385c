// Package widget implements the retained widget tree: geometry negotiation,
// lazy drawable rebuilding, input routing and focus.
//
// Concrete widgets embed Base (or ContainerBase, BinBase) and call SetSelf
// with themselves so the hooks they override are the ones Base invokes.
package widget

import (
	"math"

	"github.com/odvcencio/trellis/pkg/observability"
	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
)

// State drives styling and keyboard eligibility.
type State int

const (
	StateNormal State = iota
	StateActive
	StatePrelight
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateActive:
		return "active"
	case StatePrelight:
		return "prelight"
	default:
		return "unknown"
	}
}

// Widget is a node of the widget tree. The methods after the lifecycle
// entry points are hooks: Base provides defaults and concrete widgets
// override the ones they need.
type Widget interface {
	Name() string
	ID() string
	SetID(id string)
	Class() string
	SetClass(class string)

	Allocation() geom.Rect
	SetAllocation(r geom.Rect) bool
	SetPosition(p geom.Vector) bool
	AbsolutePosition() geom.Vector
	Requisition() geom.Vector
	SetRequisition(v geom.Vector)
	RequestResize()
	Refresh()

	IsVisible() bool
	Show(show bool)
	IsSensitive() bool
	SetSensitive(sensitive bool)
	State() State
	SetState(s State) bool
	IsMouseInWidget() bool
	MouseButtonDown() MouseButton

	Parent() Container
	SetParent(parent Widget) bool

	Invalidate() bool
	IsInvalidated() bool
	Expose(target *render.CullingTarget)
	ExposeTo(target backend.RenderTarget)
	Drawable() render.Drawable
	Dispose()

	HandleEvent(s *Session, ev Event)
	GrabFocus(target Widget)
	HasFocus(target Widget) bool
	Signals() *SignalSet

	CalculateRequisition() geom.Vector
	BuildDrawable() render.Drawable
	HandleAbsolutePositionChange()
	HandleAllocationChange(old geom.Rect)
	HandleExpose(target *render.CullingTarget)
	HandleStateChange(old State)
	HandleFocusChange(focused Widget)
	HandleMouseEnter(x, y int)
	HandleMouseLeave(x, y int)
	HandleMouseMoveEvent(x, y int)
	HandleMouseButtonEvent(button MouseButton, pressed bool, x, y int)
	HandleMouseClick(button MouseButton, x, y int)
	HandleKeyEvent(code terminal.Key, pressed bool)
	HandleTextEvent(r rune)

	base() *Base
}

// Base implements Widget. The zero value is a detached, visible, sensitive,
// invalidated widget with a zero allocation.
type Base struct {
	SignalSet

	self Widget

	id    string
	class string

	allocation  geom.Rect
	requisition geom.Vector
	customReq   *geom.Vector

	hidden      bool
	insensitive bool
	state       State
	mouseIn     bool
	buttonDown  bool
	downButton  MouseButton

	// valid is false while the drawable must be rebuilt.
	valid    bool
	drawable render.Drawable

	parent Container

	// Only meaningful on a root.
	focus        Widget
	onInvalidate func(Widget)
}

// NewBase returns a standalone Base widget.
func NewBase() *Base {
	return &Base{}
}

// SetSelf registers the outer widget whose hooks Base dispatches to.
func (b *Base) SetSelf(self Widget) {
	b.self = self
}

func (b *Base) this() Widget {
	if b.self != nil {
		return b.self
	}
	return b
}

func (b *Base) base() *Base { return b }

// Name returns the widget type name used for engine lookups and metrics.
func (b *Base) Name() string { return "Widget" }

func (b *Base) ID() string            { return b.id }
func (b *Base) SetID(id string)       { b.id = id }
func (b *Base) Class() string         { return b.class }
func (b *Base) SetClass(class string) { b.class = class }

// Allocation returns the rectangle granted by the parent, relative to it.
func (b *Base) Allocation() geom.Rect { return b.allocation }

// Requisition returns the last computed preferred size.
func (b *Base) Requisition() geom.Vector { return b.requisition }

func (b *Base) IsVisible() bool   { return !b.hidden }
func (b *Base) IsSensitive() bool { return !b.insensitive }
func (b *Base) State() State      { return b.state }

// IsMouseInWidget reports whether the last pointer move was inside the widget.
func (b *Base) IsMouseInWidget() bool { return b.mouseIn }

// MouseButtonDown returns the held button or NoButton.
func (b *Base) MouseButtonDown() MouseButton {
	if !b.buttonDown {
		return NoButton
	}
	return b.downButton
}

// IsInvalidated reports whether the drawable will be rebuilt on the next expose.
func (b *Base) IsInvalidated() bool { return !b.valid }

// Drawable returns the cached drawable, which may be stale or nil.
func (b *Base) Drawable() render.Drawable { return b.drawable }

func (b *Base) Parent() Container { return b.parent }

// SetParent attaches the widget to parent, detaching it from its previous
// container first. Containers call it from Add; parents that are not
// containers are refused.
func (b *Base) SetParent(parent Widget) bool {
	cont, ok := parent.(Container)
	if !ok {
		return false
	}
	if old := b.parent; old != nil && old != cont {
		old.Remove(b.this())
	}
	b.parent = cont
	return true
}

// SetAllocation aligns r and applies it. It returns false without side
// effects when the aligned rect equals the current allocation.
func (b *Base) SetAllocation(r geom.Rect) bool {
	r = r.Align()
	if r == b.allocation {
		return false
	}

	old := b.allocation
	b.allocation = r

	self := b.this()
	self.HandleAbsolutePositionChange()
	self.HandleAllocationChange(old)

	b.OnSizeAllocate.Emit()
	observability.Allocations.WithLabelValues(self.Name()).Inc()

	self.Invalidate()
	return true
}

// SetPosition moves the widget without resizing it. The drawable is moved,
// not rebuilt.
func (b *Base) SetPosition(p geom.Vector) bool {
	p = p.Align()
	if p.X == b.allocation.Left && p.Y == b.allocation.Top {
		return false
	}

	old := b.allocation
	b.allocation.Left = p.X
	b.allocation.Top = p.Y

	self := b.this()
	self.HandleAbsolutePositionChange()
	self.HandleAllocationChange(old)
	b.UpdateDrawablePosition()

	b.OnSizeAllocate.Emit()
	b.reportDamage()
	return true
}

// AbsolutePosition returns the screen position: the allocation origin plus
// the parent's absolute position.
func (b *Base) AbsolutePosition() geom.Vector {
	pos := b.allocation.Position()
	if b.parent == nil {
		return pos
	}
	return pos.Add(b.parent.AbsolutePosition())
}

// AbsoluteRect returns the allocation in screen coordinates.
func (b *Base) AbsoluteRect() geom.Rect {
	pos := b.this().AbsolutePosition()
	return geom.Rect{Left: pos.X, Top: pos.Y, Width: b.allocation.Width, Height: b.allocation.Height}
}

// SetRequisition overrides the computed requisition. Width applies when it
// is positive and height when it is zero or more; {<=0, <0} clears the override.
func (b *Base) SetRequisition(v geom.Vector) {
	if v.X > 0 || v.Y >= 0 {
		req := v
		b.customReq = &req
	} else {
		b.customReq = nil
	}
	b.this().RequestResize()
}

// CustomRequisition returns the override, if one is set.
func (b *Base) CustomRequisition() (geom.Vector, bool) {
	if b.customReq == nil {
		return geom.Vector{}, false
	}
	return *b.customReq, true
}

// RequestResize recomputes the requisition and asks the parent to lay out
// again. A root grows its own allocation to fit instead.
func (b *Base) RequestResize() {
	self := b.this()

	req := self.CalculateRequisition()
	if b.customReq != nil {
		if b.customReq.X > 0 {
			req.X = b.customReq.X
		}
		if b.customReq.Y >= 0 {
			req.Y = b.customReq.Y
		}
	}
	b.requisition = req

	b.OnSizeRequest.Emit()

	if b.parent != nil {
		b.parent.RequestResize()
		return
	}

	alloc := b.allocation
	self.SetAllocation(geom.Rect{
		Left:   alloc.Left,
		Top:    alloc.Top,
		Width:  math.Max(alloc.Width, req.X),
		Height: math.Max(alloc.Height, req.Y),
	})
}

// Refresh runs a resize pass and invalidates. When the pass leaves the
// allocation untouched the position and allocation hooks are fired anyway.
func (b *Base) Refresh() {
	self := b.this()
	old := b.allocation

	self.RequestResize()

	if b.allocation == old {
		self.HandleAbsolutePositionChange()
		self.HandleAllocationChange(old)
	}

	self.Invalidate()
}

// Show toggles visibility and requests a resize.
func (b *Base) Show(show bool) {
	if show == !b.hidden {
		return
	}
	b.hidden = !show
	b.this().RequestResize()
	b.reportDamage()
}

// SetSensitive toggles whether the widget accepts presses, keys and text.
func (b *Base) SetSensitive(sensitive bool) {
	if sensitive == !b.insensitive {
		return
	}
	b.insensitive = !sensitive
	b.this().Invalidate()
}

// Invalidate marks the drawable stale and tells the parent. It returns
// false if the widget was already invalidated.
func (b *Base) Invalidate() bool {
	if !b.valid {
		return false
	}
	b.valid = false
	b.reportDamage()
	return true
}

// reportDamage tells the parent, or the root's listener, that this widget
// needs to be drawn again.
func (b *Base) reportDamage() {
	self := b.this()
	if b.parent != nil {
		b.parent.HandleChildInvalidate(self)
		return
	}
	if b.onInvalidate != nil {
		b.onInvalidate(self)
	}
}

// SetInvalidationListener registers fn to be called when this root, or any
// widget below it, needs redrawing.
func (b *Base) SetInvalidationListener(fn func(Widget)) {
	b.onInvalidate = fn
}

// Expose rebuilds the drawable if needed, then draws it and exposes
// children. Invisible widgets draw nothing and skip their subtree.
func (b *Base) Expose(target *render.CullingTarget) {
	self := b.this()

	if !b.valid {
		b.valid = true
		b.drawable = nil

		d := self.BuildDrawable()
		if d != nil {
			d.Compile()
			d.SetPosition(self.AbsolutePosition())
		}
		b.drawable = d
		observability.DrawableRebuilds.WithLabelValues(self.Name()).Inc()
	}

	if b.hidden || target == nil {
		return
	}
	if b.drawable != nil {
		target.Draw(b.drawable)
	}
	self.HandleExpose(target)
}

// ExposeTo exposes onto a plain render target with culling disabled.
func (b *Base) ExposeTo(target backend.RenderTarget) {
	ct := render.NewCullingTarget(target)
	ct.Cull(false)
	b.this().Expose(ct)
}

// UpdateDrawablePosition moves the cached drawable to the absolute position.
func (b *Base) UpdateDrawablePosition() {
	if b.drawable != nil {
		b.drawable.SetPosition(b.this().AbsolutePosition())
	}
}

// Dispose releases the cached drawable.
func (b *Base) Dispose() {
	b.drawable = nil
	b.valid = false
}

// HandleEvent dispatches ev to the widget, updating hover, button and
// focus-dependent state. Invisible widgets ignore everything.
func (b *Base) HandleEvent(s *Session, ev Event) {
	if b.hidden {
		return
	}

	self := b.this()
	s.setActive(self)

	switch e := ev.(type) {
	case MouseMoveEvent:
		if b.AbsoluteRect().Contains(float64(e.X), float64(e.Y)) {
			if !b.mouseIn {
				b.mouseIn = true
				b.OnMouseEnter.Emit()
				self.HandleMouseEnter(e.X, e.Y)
			}
			b.OnMouseMove.Emit()
		} else if b.mouseIn {
			b.mouseIn = false
			b.OnMouseLeave.Emit()
			self.HandleMouseLeave(e.X, e.Y)
		}
		self.HandleMouseMoveEvent(e.X, e.Y)

	case MouseButtonEvent:
		if e.Pressed {
			b.handlePress(s, self, e)
		} else {
			b.handleRelease(s, self, e)
		}

	case KeyEvent:
		if !b.acceptsKeys(s, self, e) {
			return
		}
		self.HandleKeyEvent(e.Code, e.Pressed)
		if e.Pressed {
			b.OnKeyPress.Emit()
		} else {
			b.OnKeyRelease.Emit()
		}

	case TextEvent:
		if !b.acceptsKeys(s, self, e) {
			return
		}
		self.HandleTextEvent(e.Rune)
		b.OnText.Emit()
	}
}

func (b *Base) handlePress(s *Session, self Widget, e MouseButtonEvent) {
	switch {
	case b.insensitive:
		s.drop(self, e, DropInsensitive)
	case b.buttonDown:
		s.drop(self, e, DropButtonDown)
	case !b.AbsoluteRect().Contains(float64(e.X), float64(e.Y)):
		s.drop(self, e, DropPressOutside)
	default:
		b.buttonDown = true
		b.downButton = e.Button
		self.HandleMouseButtonEvent(e.Button, true, e.X, e.Y)
		b.OnMouseButtonPress.Emit()
	}
}

func (b *Base) handleRelease(s *Session, self Widget, e MouseButtonEvent) {
	if !b.buttonDown || b.downButton != e.Button {
		s.drop(self, e, DropReleaseMismatch)
		return
	}
	b.buttonDown = false
	b.downButton = NoButton

	if b.AbsoluteRect().Contains(float64(e.X), float64(e.Y)) {
		self.HandleMouseClick(e.Button, e.X, e.Y)
		b.OnMouseClick.Emit()
	}

	self.HandleMouseButtonEvent(e.Button, false, e.X, e.Y)
	b.OnMouseButtonRelease.Emit()
}

func (b *Base) acceptsKeys(s *Session, self Widget, ev Event) bool {
	if b.insensitive {
		s.drop(self, ev, DropInsensitive)
		return false
	}
	if b.state != StateActive && !s.deliverInactiveKeys() {
		s.drop(self, ev, DropInactive)
		return false
	}
	return true
}

// SetState changes the state and notifies. Entering Active grabs focus.
// If HandleStateChange changes the state again the nested call has already
// notified and this one stops.
func (b *Base) SetState(s State) bool {
	if b.state == s {
		return false
	}

	old := b.state
	b.state = s

	self := b.this()
	self.HandleStateChange(old)
	if b.state != s {
		return true
	}

	b.OnStateChange.Emit()

	if s == StateActive {
		self.GrabFocus(self)
	}
	return true
}

// GrabFocus gives focus to target. The request travels to the root, which
// notifies the old focus before installing and notifying the new one.
// A nil target clears focus.
func (b *Base) GrabFocus(target Widget) {
	if b.parent != nil {
		b.parent.GrabFocus(target)
		return
	}

	old := b.focus
	if old == target {
		return
	}
	if old != nil {
		old.Signals().OnLostFocus.Emit()
		old.HandleFocusChange(target)
	}

	b.focus = target
	observability.FocusChanges.Inc()

	if target != nil {
		target.Signals().OnGainFocus.Emit()
		target.HandleFocusChange(target)
	}
}

// HasFocus reports whether target holds the focus of this widget's tree.
func (b *Base) HasFocus(target Widget) bool {
	if b.parent != nil {
		return b.parent.HasFocus(target)
	}
	return target != nil && b.focus == target
}

// FocusedWidget returns the widget holding the focus of this widget's tree.
func (b *Base) FocusedWidget() Widget {
	return Root(b.this()).base().focus
}

// CalculateRequisition returns the preferred size. The default is zero.
func (b *Base) CalculateRequisition() geom.Vector { return geom.Vector{} }

// BuildDrawable returns a fresh drawable. The default draws nothing.
func (b *Base) BuildDrawable() render.Drawable { return nil }

// HandleAbsolutePositionChange moves the drawable by default.
func (b *Base) HandleAbsolutePositionChange() { b.UpdateDrawablePosition() }

func (b *Base) HandleAllocationChange(old geom.Rect)      {}
func (b *Base) HandleExpose(target *render.CullingTarget) {}

// HandleStateChange invalidates by default.
func (b *Base) HandleStateChange(old State) { b.this().Invalidate() }

// HandleFocusChange resets the widget to Normal when focus went elsewhere.
func (b *Base) HandleFocusChange(focused Widget) {
	self := b.this()
	if focused != self {
		self.SetState(StateNormal)
	}
}

func (b *Base) HandleMouseEnter(x, y int)                                         {}
func (b *Base) HandleMouseLeave(x, y int)                                         {}
func (b *Base) HandleMouseMoveEvent(x, y int)                                     {}
func (b *Base) HandleMouseButtonEvent(button MouseButton, pressed bool, x, y int) {}
func (b *Base) HandleMouseClick(button MouseButton, x, y int)                     {}
func (b *Base) HandleKeyEvent(code terminal.Key, pressed bool)                    {}
func (b *Base) HandleTextEvent(r rune)                                            {}

// Root returns the top of w's tree.
func Root(w Widget) Widget {
	for w != nil {
		p := w.Parent()
		if p == nil {
			return w
		}
		w = p
	}
	return nil
}

// IsAncestor reports whether ancestor is w or one of w's parents.
func IsAncestor(ancestor, w Widget) bool {
	for w != nil {
		if w == ancestor {
			return true
		}
		p := w.Parent()
		if p == nil {
			return false
		}
		w = p
	}
	return false
}

var _ Widget = (*Base)(nil)
