package runtime

import (
	"time"

	"github.com/odvcencio/trellis/pkg/ui/terminal"
)

// Message represents an event flowing into the UI.
// Messages come from terminal input, timers, or background goroutines.
type Message interface {
	isMessage()
}

// InputMsg carries a raw backend event. The default update translates it
// into widget events and dispatches them to the desktop.
type InputMsg struct {
	Event terminal.Event
}

func (InputMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// TickMsg is sent on each frame tick for animations.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// InvokeMsg runs Fn on the event loop goroutine. Widgets are not safe for
// concurrent use, so background work mutates the tree through Invoke.
type InvokeMsg struct {
	Fn func(app *App)
}

func (InvokeMsg) isMessage() {}

// QuitMsg stops the event loop.
type QuitMsg struct{}

func (QuitMsg) isMessage() {}

// RefreshMsg forces a full redraw.
type RefreshMsg struct{}

func (RefreshMsg) isMessage() {}
