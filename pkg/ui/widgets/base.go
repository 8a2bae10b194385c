// Package widgets provides the concrete widgets of the toolkit. Each one
// builds its drawable from the render engine resolved through the tree.
package widgets

import (
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/engine"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

var (
	defaultEngineOnce sync.Once
	defaultEngine     *engine.Engine
)

// DefaultEngine returns the shared BREW engine used when no ancestor sets one.
func DefaultEngine() *engine.Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = engine.NewBREW()
	})
	return defaultEngine
}

// engineCarrier is implemented by widgets that may hold their own engine.
type engineCarrier interface {
	ownEngine() *engine.Engine
}

// Themed lets a widget carry a render engine for itself and its subtree.
// Embed it next to the widget base and call bind from the constructor.
type Themed struct {
	owner  widget.Widget
	engine *engine.Engine
}

func (t *Themed) bind(owner widget.Widget) {
	t.owner = owner
}

func (t *Themed) ownEngine() *engine.Engine {
	return t.engine
}

// SetRenderEngine makes e the engine of this widget and every descendant
// that does not set its own. The subtree is resized and redrawn.
func (t *Themed) SetRenderEngine(e *engine.Engine) {
	if t.engine == e {
		return
	}
	t.engine = e
	if t.owner != nil {
		invalidateTree(t.owner)
		t.owner.RequestResize()
	}
}

// RenderEngine returns the engine set on this widget, which may be nil.
// Use EngineFor to resolve the effective one.
func (t *Themed) RenderEngine() *engine.Engine {
	return t.engine
}

// EngineFor returns the engine of the closest widget at or above w that
// carries one, or DefaultEngine.
func EngineFor(w widget.Widget) *engine.Engine {
	for cur := w; cur != nil; {
		if c, ok := cur.(engineCarrier); ok {
			if e := c.ownEngine(); e != nil {
				return e
			}
		}
		p := cur.Parent()
		if p == nil {
			break
		}
		cur = p
	}
	return DefaultEngine()
}

// background resolves the color w paints behind its content: its own
// property, or the one of the nearest ancestor that sets one.
func background(e *engine.Engine, w widget.Widget) backend.Color {
	for cur := w; cur != nil; {
		if v, ok := e.Own(cur, "background-color"); ok {
			if c, err := backend.ParseColor(v); err == nil {
				return c
			}
		}
		p := cur.Parent()
		if p == nil {
			break
		}
		cur = p
	}
	return e.Color(w, "background-color")
}

// variant maps a widget state to the engine property suffix.
func variant(s widget.State) string {
	switch s {
	case widget.StatePrelight:
		return "prelight"
	case widget.StateActive:
		return "active"
	default:
		return ""
	}
}

func invalidateTree(w widget.Widget) {
	w.Invalidate()
	if c, ok := w.(widget.Container); ok {
		for _, child := range c.Children() {
			invalidateTree(child)
		}
	}
}

// truncate shortens s to at most width cells, ending with an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return runewidth.Truncate(s, 1, "")
	}
	return runewidth.Truncate(s, width, "…")
}

// centerOffset returns the column at which text of width w is centered in span.
func centerOffset(w, span int) int {
	if w >= span {
		return 0
	}
	return (span - w) / 2
}
