// Package backend defines the terminal backend interface the widget tree renders to.
// This abstraction allows swapping between tcell (real terminals) and
// simulation backends (testing), so drawables can be checked cell by cell.
package backend

//go:generate mockgen -destination=mocks/render_target.go -package=mocks github.com/odvcencio/trellis/pkg/ui/backend RenderTarget

import "github.com/odvcencio/trellis/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
// Implementations handle terminal I/O, input events, and screen output.
type Backend interface {
	// Init initializes the backend (enters alt screen, raw mode, etc).
	Init() error

	// Fini cleans up the backend (restores terminal state).
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y) with the given rune and style.
	// The comb parameter contains combining characters (can be nil).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// SetCursorPos shows the cursor at the given position.
	SetCursorPos(x, y int)

	// PollEvent blocks until an event is available and returns it.
	// Returns nil once the backend has been finalized.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// Sync forces a full redraw on next Show().
	Sync()
}

// RenderTarget is the subset of Backend that drawables write to.
type RenderTarget interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// Clip restricts writes to a rectangle of its parent target.
// Coordinates are not translated: drawables already carry absolute positions.
type Clip struct {
	parent RenderTarget
	x, y   int
	width  int
	height int
}

// NewClip creates a clipped view of a RenderTarget.
func NewClip(parent RenderTarget, x, y, w, h int) *Clip {
	if c, ok := parent.(*Clip); ok {
		// Nested clips intersect.
		x0, y0 := max(x, c.x), max(y, c.y)
		x1, y1 := min(x+w, c.x+c.width), min(y+h, c.y+c.height)
		return &Clip{parent: c.parent, x: x0, y: y0, width: max(0, x1-x0), height: max(0, y1-y0)}
	}
	return &Clip{parent: parent, x: x, y: y, width: w, height: h}
}

// Size returns the parent dimensions; clipping does not shrink the coordinate space.
func (c *Clip) Size() (width, height int) {
	return c.parent.Size()
}

// Bounds returns the clip rectangle.
func (c *Clip) Bounds() (x, y, w, h int) {
	return c.x, c.y, c.width, c.height
}

// SetContent forwards the cell if it falls inside the clip rectangle.
func (c *Clip) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	if x < c.x || x >= c.x+c.width || y < c.y || y >= c.y+c.height {
		return
	}
	c.parent.SetContent(x, y, mainc, comb, style)
}
