// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
)

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen tcell.Screen

	// Bracketed paste state
	inPaste     bool
	pasteBuffer strings.Builder

	// Button mask of the previous mouse event; tcell reports state, not transitions.
	lastButtons tcell.ButtonMask
}

// New creates a new tcell backend.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Kind names the backend in logs.
func (b *Backend) Kind() string { return "tcell" }

// Init initializes the backend.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse(tcell.MouseMotionEvents)
	b.screen.EnablePaste()
	return nil
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// SetCursorPos shows the cursor at (x, y).
func (b *Backend) SetCursorPos(x, y int) {
	b.screen.ShowCursor(x, y)
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// PollEvent blocks until an event is available.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				b.inPaste = false
				text := b.pasteBuffer.String()
				b.pasteBuffer.Reset()
				if text != "" {
					return terminal.PasteEvent{Text: text}
				}
				continue
			}

		case *tcell.EventKey:
			if b.inPaste {
				switch e.Key() {
				case tcell.KeyRune:
					b.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					b.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					b.pasteBuffer.WriteRune('\t')
				}
				continue
			}

		case *tcell.EventMouse:
			return b.convertMouse(e)
		}

		if out := convertEvent(ev); out != nil {
			return out
		}
	}
}

// PostEvent injects an event into the queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	tev := reverseConvertEvent(ev)
	if tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

// convertStyle converts backend.Style to tcell.Style.
func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrBlink != 0 {
		style = style.Blink(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&backend.AttrStrikeThrough != 0 {
		style = style.StrikeThrough(true)
	}

	return style
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

func convertMods(m tcell.ModMask) terminal.Modifiers {
	var out terminal.Modifiers
	if m&tcell.ModShift != 0 {
		out |= terminal.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= terminal.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= terminal.ModAlt
	}
	return out
}

func reverseMods(m terminal.Modifiers) tcell.ModMask {
	var out tcell.ModMask
	if m.Has(terminal.ModShift) {
		out |= tcell.ModShift
	}
	if m.Has(terminal.ModCtrl) {
		out |= tcell.ModCtrl
	}
	if m.Has(terminal.ModAlt) {
		out |= tcell.ModAlt
	}
	return out
}

// convertEvent converts non-mouse tcell events to terminal.Event.
func convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return terminal.KeyEvent{
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mods: convertMods(e.Modifiers()),
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventInterrupt:
		return terminal.InterruptEvent{Data: e.Data()}
	default:
		return nil
	}
}

// convertMouse turns tcell's button state into press/release/move transitions.
func (b *Backend) convertMouse(e *tcell.EventMouse) terminal.Event {
	x, y := e.Position()
	buttons := e.Buttons()
	mods := convertMods(e.Modifiers())

	wheel := buttons & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	if wheel != 0 {
		return terminal.MouseEvent{X: x, Y: y, Button: convertMouseButton(wheel), Action: terminal.MousePress, Mods: mods}
	}

	pressed := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	last := b.lastButtons
	b.lastButtons = pressed

	switch {
	case pressed&^last != 0:
		return terminal.MouseEvent{X: x, Y: y, Button: convertMouseButton(pressed &^ last), Action: terminal.MousePress, Mods: mods}
	case last != 0 && pressed&last != last:
		return terminal.MouseEvent{X: x, Y: y, Button: convertMouseButton(last &^ pressed), Action: terminal.MouseRelease, Mods: mods}
	default:
		return terminal.MouseEvent{X: x, Y: y, Button: convertMouseButton(pressed), Action: terminal.MouseMove, Mods: mods}
	}
}

// convertKey converts tcell.Key to terminal.Key.
func convertKey(k tcell.Key) terminal.Key {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune
	case tcell.KeyUp:
		return terminal.KeyUp
	case tcell.KeyDown:
		return terminal.KeyDown
	case tcell.KeyRight:
		return terminal.KeyRight
	case tcell.KeyLeft:
		return terminal.KeyLeft
	case tcell.KeyPgUp:
		return terminal.KeyPageUp
	case tcell.KeyPgDn:
		return terminal.KeyPageDown
	case tcell.KeyHome:
		return terminal.KeyHome
	case tcell.KeyEnd:
		return terminal.KeyEnd
	case tcell.KeyInsert:
		return terminal.KeyInsert
	case tcell.KeyDelete:
		return terminal.KeyDelete
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace
	case tcell.KeyTab:
		return terminal.KeyTab
	case tcell.KeyBacktab:
		return terminal.KeyBacktab
	case tcell.KeyEnter:
		return terminal.KeyEnter
	case tcell.KeyEscape:
		return terminal.KeyEscape
	case tcell.KeyCtrlC:
		return terminal.KeyCtrlC
	case tcell.KeyCtrlD:
		return terminal.KeyCtrlD
	case tcell.KeyCtrlZ:
		return terminal.KeyCtrlZ
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return terminal.KeyF1 + terminal.Key(k-tcell.KeyF1)
	}
	return terminal.KeyNone
}

var reverseKeys = map[terminal.Key]tcell.Key{
	terminal.KeyRune:      tcell.KeyRune,
	terminal.KeyEnter:     tcell.KeyEnter,
	terminal.KeyBackspace: tcell.KeyBackspace2,
	terminal.KeyTab:       tcell.KeyTab,
	terminal.KeyBacktab:   tcell.KeyBacktab,
	terminal.KeyEscape:    tcell.KeyEscape,
	terminal.KeyUp:        tcell.KeyUp,
	terminal.KeyDown:      tcell.KeyDown,
	terminal.KeyLeft:      tcell.KeyLeft,
	terminal.KeyRight:     tcell.KeyRight,
	terminal.KeyHome:      tcell.KeyHome,
	terminal.KeyEnd:       tcell.KeyEnd,
	terminal.KeyPageUp:    tcell.KeyPgUp,
	terminal.KeyPageDown:  tcell.KeyPgDn,
	terminal.KeyDelete:    tcell.KeyDelete,
	terminal.KeyInsert:    tcell.KeyInsert,
	terminal.KeyCtrlC:     tcell.KeyCtrlC,
	terminal.KeyCtrlD:     tcell.KeyCtrlD,
	terminal.KeyCtrlZ:     tcell.KeyCtrlZ,
}

// convertMouseButton converts tcell button mask to terminal.MouseButton.
func convertMouseButton(buttons tcell.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return terminal.MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		return terminal.MouseWheelDown
	case buttons&tcell.Button1 != 0:
		return terminal.MouseLeft
	case buttons&tcell.Button2 != 0:
		return terminal.MouseRight
	case buttons&tcell.Button3 != 0:
		return terminal.MouseMiddle
	default:
		return terminal.MouseNone
	}
}

func reverseMouseButton(b terminal.MouseButton) tcell.ButtonMask {
	switch b {
	case terminal.MouseLeft:
		return tcell.Button1
	case terminal.MouseRight:
		return tcell.Button2
	case terminal.MouseMiddle:
		return tcell.Button3
	case terminal.MouseWheelUp:
		return tcell.WheelUp
	case terminal.MouseWheelDown:
		return tcell.WheelDown
	default:
		return tcell.ButtonNone
	}
}

// reverseConvertEvent converts terminal.Event to tcell.Event for PostEvent.
func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		if e.Key >= terminal.KeyF1 && e.Key <= terminal.KeyF12 {
			return tcell.NewEventKey(tcell.KeyF1+tcell.Key(e.Key-terminal.KeyF1), 0, reverseMods(e.Mods))
		}
		k, ok := reverseKeys[e.Key]
		if !ok {
			return nil
		}
		return tcell.NewEventKey(k, e.Rune, reverseMods(e.Mods))
	case terminal.MouseEvent:
		mask := tcell.ButtonNone
		if e.Action != terminal.MouseRelease {
			mask = reverseMouseButton(e.Button)
		}
		return tcell.NewEventMouse(e.X, e.Y, mask, reverseMods(e.Mods))
	case terminal.InterruptEvent:
		return tcell.NewEventInterrupt(e.Data)
	default:
		return nil
	}
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
