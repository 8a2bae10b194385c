package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/render"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Entry is a single-line text input. A left click makes it Active, which
// also gives it focus; while Active it consumes text and editing keys.
type Entry struct {
	widget.Base
	Themed

	text      []rune
	cursorPos int

	OnTextChanged widget.Signal
	OnSubmit      widget.Signal
}

// NewEntry creates an empty entry.
func NewEntry() *Entry {
	e := &Entry{}
	e.SetSelf(e)
	e.bind(e)
	e.RequestResize()
	return e
}

func (e *Entry) Name() string { return "Entry" }

// Text returns the current text.
func (e *Entry) Text() string {
	return string(e.text)
}

// SetText replaces the text and moves the cursor to the end.
func (e *Entry) SetText(text string) {
	e.text = []rune(text)
	e.cursorPos = len(e.text)
	e.changed()
}

// CursorPosition returns the cursor index in runes.
func (e *Entry) CursorPosition() int {
	return e.cursorPos
}

// CanFocus reports whether the focus chain may stop here.
func (e *Entry) CanFocus() bool {
	return e.IsVisible() && e.IsSensitive()
}

// CalculateRequisition asks for min-width cells whatever the text; longer
// text scrolls.
func (e *Entry) CalculateRequisition() geom.Vector {
	return geom.Vector{X: float64(max(EngineFor(e).Int(e, "min-width"), 1)), Y: 1}
}

func (e *Entry) BuildDrawable() render.Drawable {
	eng := EngineFor(e)
	style := eng.Style(e, variant(e.State()))

	_, _, w, h := e.Allocation().Ints()
	q := render.NewQueue()
	q.Fill(geom.NewRect(0, 0, float64(w), float64(h)), ' ', style)
	if w <= 0 || h <= 0 {
		return q
	}

	// Scroll so the cursor is always visible.
	start := e.visibleStart(w)
	x := 0
	for i := start; i < len(e.text) && x < w; i++ {
		q.Text(x, 0, string(e.text[i]), style)
		x += max(runewidth.RuneWidth(e.text[i]), 1)
	}

	if e.State() == widget.StateActive {
		cx := runewidth.StringWidth(string(e.text[start:e.cursorPos]))
		if cx < w {
			ch := ' '
			if e.cursorPos < len(e.text) {
				ch = e.text[e.cursorPos]
			}
			cursor := style.Foreground(style.BG()).Background(eng.Color(e, "cursor-color"))
			q.Text(cx, 0, string(ch), cursor)
		}
	}
	return q
}

// visibleStart returns the first rune shown so the cursor fits in w cells.
func (e *Entry) visibleStart(w int) int {
	start := 0
	for start < e.cursorPos && runewidth.StringWidth(string(e.text[start:e.cursorPos])) >= w {
		start++
	}
	return start
}

func (e *Entry) HandleMouseButtonEvent(button widget.MouseButton, pressed bool, x, y int) {
	if button == widget.ButtonLeft && pressed {
		e.SetState(widget.StateActive)
	}
}

func (e *Entry) HandleTextEvent(r rune) {
	text := make([]rune, 0, len(e.text)+1)
	text = append(text, e.text[:e.cursorPos]...)
	text = append(text, r)
	text = append(text, e.text[e.cursorPos:]...)
	e.text = text
	e.cursorPos++
	e.changed()
}

func (e *Entry) HandleKeyEvent(code terminal.Key, pressed bool) {
	if !pressed {
		return
	}

	switch code {
	case terminal.KeyEnter:
		e.OnSubmit.Emit()

	case terminal.KeyBackspace:
		if e.cursorPos > 0 {
			e.text = append(e.text[:e.cursorPos-1], e.text[e.cursorPos:]...)
			e.cursorPos--
			e.changed()
		}

	case terminal.KeyDelete:
		if e.cursorPos < len(e.text) {
			e.text = append(e.text[:e.cursorPos], e.text[e.cursorPos+1:]...)
			e.changed()
		}

	case terminal.KeyLeft:
		if e.cursorPos > 0 {
			e.cursorPos--
			e.Invalidate()
		}

	case terminal.KeyRight:
		if e.cursorPos < len(e.text) {
			e.cursorPos++
			e.Invalidate()
		}

	case terminal.KeyHome:
		e.cursorPos = 0
		e.Invalidate()

	case terminal.KeyEnd:
		e.cursorPos = len(e.text)
		e.Invalidate()
	}
}

func (e *Entry) changed() {
	e.OnTextChanged.Emit()
	e.Invalidate()
}
