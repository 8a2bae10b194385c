package widget

import (
	"fmt"

	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
)

// eventLog is shared by probes so cross-widget ordering can be asserted.
type eventLog struct {
	entries []string
}

func (l *eventLog) add(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

func (l *eventLog) reset() {
	l.entries = nil
}

// probe records every hook and signal it sees.
type probe struct {
	Base
	tag    string
	log    *eventLog
	req    geom.Vector
	builds int
}

func newProbe(tag string, log *eventLog) *probe {
	p := &probe{tag: tag, log: log}
	p.SetSelf(p)
	connectSignals(&p.SignalSet, tag, log)
	return p
}

func connectSignals(s *SignalSet, tag string, log *eventLog) {
	named := map[string]*Signal{
		"size-request":  &s.OnSizeRequest,
		"size-allocate": &s.OnSizeAllocate,
		"state-change":  &s.OnStateChange,
		"enter":         &s.OnMouseEnter,
		"leave":         &s.OnMouseLeave,
		"move":          &s.OnMouseMove,
		"press":         &s.OnMouseButtonPress,
		"release":       &s.OnMouseButtonRelease,
		"click":         &s.OnMouseClick,
		"key-press":     &s.OnKeyPress,
		"key-release":   &s.OnKeyRelease,
		"text":          &s.OnText,
		"gain-focus":    &s.OnGainFocus,
		"lost-focus":    &s.OnLostFocus,
	}
	for name, sig := range named {
		sig.Connect(func() { log.add("%s:%s", tag, name) })
	}
}

func (p *probe) Name() string { return "Probe" }

func (p *probe) CalculateRequisition() geom.Vector {
	p.log.add("%s:calc", p.tag)
	return p.req
}

func (p *probe) BuildDrawable() render.Drawable {
	p.builds++
	q := render.NewQueue()
	q.Fill(geom.NewRect(0, 0, p.Allocation().Width, p.Allocation().Height), '#', backend.DefaultStyle())
	return q
}

func (p *probe) HandleAbsolutePositionChange() {
	p.log.add("%s:abs-hook", p.tag)
	p.Base.HandleAbsolutePositionChange()
}

func (p *probe) HandleAllocationChange(old geom.Rect) {
	p.log.add("%s:alloc-hook", p.tag)
}

func (p *probe) HandleStateChange(old State) {
	p.log.add("%s:state-hook:%s", p.tag, old)
	p.Base.HandleStateChange(old)
}

func (p *probe) HandleFocusChange(focused Widget) {
	p.log.add("%s:focus-hook", p.tag)
	p.Base.HandleFocusChange(focused)
}

func (p *probe) HandleMouseEnter(x, y int)     { p.log.add("%s:enter-hook", p.tag) }
func (p *probe) HandleMouseLeave(x, y int)     { p.log.add("%s:leave-hook", p.tag) }
func (p *probe) HandleMouseMoveEvent(x, y int) { p.log.add("%s:move-hook", p.tag) }

func (p *probe) HandleMouseButtonEvent(button MouseButton, pressed bool, x, y int) {
	if pressed {
		p.log.add("%s:button-hook:press:%s", p.tag, button)
	} else {
		p.log.add("%s:button-hook:release:%s", p.tag, button)
	}
}

func (p *probe) HandleMouseClick(button MouseButton, x, y int) {
	p.log.add("%s:click-hook:%s", p.tag, button)
}

func (p *probe) HandleKeyEvent(code terminal.Key, pressed bool) {
	p.log.add("%s:key-hook:%s:%t", p.tag, code, pressed)
}

func (p *probe) HandleTextEvent(r rune) {
	p.log.add("%s:text-hook:%c", p.tag, r)
}

// probeBox is a container whose requisition covers its children.
type probeBox struct {
	ContainerBase
	tag          string
	log          *eventLog
	childInvalid []Widget
}

func newProbeBox(tag string, log *eventLog) *probeBox {
	c := &probeBox{tag: tag, log: log}
	c.SetSelf(c)
	connectSignals(&c.SignalSet, tag, log)
	return c
}

func (c *probeBox) Name() string { return "ProbeBox" }

func (c *probeBox) CalculateRequisition() geom.Vector {
	c.log.add("%s:calc", c.tag)
	var req geom.Vector
	for _, child := range c.Children() {
		r := child.Requisition()
		req.X = max(req.X, r.X)
		req.Y = max(req.Y, r.Y)
	}
	return req
}

func (c *probeBox) HandleChildInvalidate(child Widget) {
	c.childInvalid = append(c.childInvalid, child)
	c.ContainerBase.HandleChildInvalidate(child)
}

// cellCounter is a render target counting writes.
type cellCounter struct {
	w, h   int
	writes int
	cells  map[[2]int]rune
}

func newCellCounter(w, h int) *cellCounter {
	return &cellCounter{w: w, h: h, cells: map[[2]int]rune{}}
}

func (c *cellCounter) Size() (int, int) { return c.w, c.h }

func (c *cellCounter) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	c.writes++
	c.cells[[2]int{x, y}] = mainc
}
