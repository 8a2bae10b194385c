package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Button is a clickable label. It is Prelight while hovered, Active while
// the left button is held on it, and fires OnClicked on a click or on Enter
// while it has focus.
type Button struct {
	widget.Base
	Themed

	label string

	OnClicked widget.Signal
}

// NewButton creates a button with the given label.
func NewButton(label string) *Button {
	b := &Button{label: label}
	b.SetSelf(b)
	b.bind(b)
	b.RequestResize()
	return b
}

func (b *Button) Name() string { return "Button" }

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// SetLabel changes the button text.
func (b *Button) SetLabel(label string) {
	if label == b.label {
		return
	}
	b.label = label
	b.RequestResize()
	b.Invalidate()
}

// CanFocus reports whether the focus chain may stop here.
func (b *Button) CanFocus() bool {
	return b.IsVisible() && b.IsSensitive()
}

func (b *Button) CalculateRequisition() geom.Vector {
	pad := EngineFor(b).Int(b, "padding")
	return geom.Vector{X: float64(runewidth.StringWidth(b.label) + 2*pad), Y: 1}
}

func (b *Button) BuildDrawable() render.Drawable {
	style := EngineFor(b).Style(b, variant(b.State()))

	_, _, w, h := b.Allocation().Ints()
	q := render.NewQueue()
	q.Fill(geom.NewRect(0, 0, float64(w), float64(h)), ' ', style)

	label := truncate(b.label, w)
	q.Text(centerOffset(runewidth.StringWidth(label), w), h/2, label, style)
	return q
}

func (b *Button) HandleMouseEnter(x, y int) {
	if b.State() == widget.StateNormal {
		b.SetState(widget.StatePrelight)
	}
}

func (b *Button) HandleMouseLeave(x, y int) {
	if b.State() == widget.StatePrelight {
		b.SetState(widget.StateNormal)
	}
}

func (b *Button) HandleMouseButtonEvent(button widget.MouseButton, pressed bool, x, y int) {
	if button != widget.ButtonLeft {
		return
	}
	if pressed {
		b.SetState(widget.StateActive)
		return
	}
	if b.IsMouseInWidget() {
		b.SetState(widget.StatePrelight)
	} else {
		b.SetState(widget.StateNormal)
	}
}

func (b *Button) HandleMouseClick(button widget.MouseButton, x, y int) {
	if button == widget.ButtonLeft {
		b.OnClicked.Emit()
	}
}

func (b *Button) HandleKeyEvent(code terminal.Key, pressed bool) {
	if pressed && code == terminal.KeyEnter {
		b.OnClicked.Emit()
	}
}
