package widget

import "github.com/odvcencio/trellis/pkg/ui/terminal"

// Event is an input event dispatched through the widget tree.
type Event interface {
	// Kind names the event for logs and metrics.
	Kind() string
}

// MouseButton identifies a mouse button.
type MouseButton int

// NoButton marks that no button is held down.
const NoButton MouseButton = -1

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
	ButtonWheelUp
	ButtonWheelDown
)

func (b MouseButton) String() string {
	switch b {
	case NoButton:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonWheelUp:
		return "wheel-up"
	case ButtonWheelDown:
		return "wheel-down"
	default:
		return "button"
	}
}

// MouseMoveEvent reports the pointer at screen cell (X, Y).
type MouseMoveEvent struct {
	X, Y int
}

func (MouseMoveEvent) Kind() string { return "mouse_move" }

// MouseButtonEvent reports a button press or release at (X, Y).
type MouseButtonEvent struct {
	Button  MouseButton
	Pressed bool
	X, Y    int
}

func (MouseButtonEvent) Kind() string { return "mouse_button" }

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Code    terminal.Key
	Rune    rune
	Mods    terminal.Modifiers
	Pressed bool
}

func (KeyEvent) Kind() string { return "key" }

// TextEvent carries one entered character.
type TextEvent struct {
	Rune rune
}

func (TextEvent) Kind() string { return "text" }
