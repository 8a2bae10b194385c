// Package input translates raw terminal events into widget events.
package input

import (
	"unicode"

	"github.com/odvcencio/trellis/pkg/ui/terminal"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Adapter converts terminal events. Terminals report key presses only, so
// the adapter can follow each press with a synthesized release.
type Adapter struct {
	SynthesizeKeyRelease bool
}

// NewAdapter returns an adapter.
func NewAdapter(synthesizeKeyRelease bool) *Adapter {
	return &Adapter{SynthesizeKeyRelease: synthesizeKeyRelease}
}

// Translate returns the widget events for ev, in dispatch order. Events with
// no widget meaning (resize, interrupt) yield nil.
func (a *Adapter) Translate(ev terminal.Event) []widget.Event {
	switch e := ev.(type) {
	case terminal.MouseEvent:
		return a.mouse(e)
	case terminal.KeyEvent:
		return a.key(e)
	case terminal.PasteEvent:
		return paste(e.Text)
	default:
		return nil
	}
}

func (a *Adapter) mouse(e terminal.MouseEvent) []widget.Event {
	if e.Action == terminal.MouseMove {
		return []widget.Event{widget.MouseMoveEvent{X: e.X, Y: e.Y}}
	}

	button, ok := Button(e.Button)
	if !ok {
		return nil
	}

	// Wheels have no release; report a full click of the wheel button.
	if e.Button.IsWheel() {
		if e.Action != terminal.MousePress {
			return nil
		}
		return []widget.Event{
			widget.MouseButtonEvent{Button: button, Pressed: true, X: e.X, Y: e.Y},
			widget.MouseButtonEvent{Button: button, Pressed: false, X: e.X, Y: e.Y},
		}
	}

	return []widget.Event{
		widget.MouseButtonEvent{Button: button, Pressed: e.Action == terminal.MousePress, X: e.X, Y: e.Y},
	}
}

func (a *Adapter) key(e terminal.KeyEvent) []widget.Event {
	press := widget.KeyEvent{Code: e.Key, Rune: e.Rune, Mods: e.Mods, Pressed: true}
	out := []widget.Event{press}

	if e.Key == terminal.KeyRune && printable(e.Rune, e.Mods) {
		out = append(out, widget.TextEvent{Rune: e.Rune})
	}

	if a.SynthesizeKeyRelease {
		release := press
		release.Pressed = false
		out = append(out, release)
	}
	return out
}

func paste(text string) []widget.Event {
	var out []widget.Event
	for _, r := range text {
		if unicode.IsPrint(r) {
			out = append(out, widget.TextEvent{Rune: r})
		}
	}
	return out
}

func printable(r rune, mods terminal.Modifiers) bool {
	if mods.Has(terminal.ModCtrl) || mods.Has(terminal.ModAlt) {
		return false
	}
	return unicode.IsPrint(r)
}

// Button maps a terminal mouse button to a widget button.
func Button(b terminal.MouseButton) (widget.MouseButton, bool) {
	switch b {
	case terminal.MouseLeft:
		return widget.ButtonLeft, true
	case terminal.MouseRight:
		return widget.ButtonRight, true
	case terminal.MouseMiddle:
		return widget.ButtonMiddle, true
	case terminal.MouseWheelUp:
		return widget.ButtonWheelUp, true
	case terminal.MouseWheelDown:
		return widget.ButtonWheelDown, true
	default:
		return widget.NoButton, false
	}
}
