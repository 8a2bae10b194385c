package main

import (
	"fmt"

	"github.com/odvcencio/trellis/pkg/ui/engine"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/runtime"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
	"github.com/odvcencio/trellis/pkg/ui/widget"
	"github.com/odvcencio/trellis/pkg/ui/widgets"
)

// Window placement in cells.
var (
	mainRect    = geom.NewRect(4, 2, 30, 12)
	secondRect  = geom.NewRect(26, 8, 34, 8)
	reallocRect = geom.NewRect(20, 6, 40, 12)
)

// Hot keys.
const (
	keyRealloc = 'm'
	keyQuit    = 'q'
)

// brewProperties mirrors the sample's programmatic theme, in cell units.
var brewProperties = map[string]string{
	"Window.background-color":       "#888888",
	"Window.border-width":           "1",
	"Window.border-color-light":     "#bbbbbb",
	"Window.border-color-dark":      "#444444",
	"Window.title-background-color": "#aaaaaa",
	"Window.title-size":             "1",
	"Window.shadow-distance":        "1",
	"Window.shadow-alpha":           "50",
}

// demo holds the sample's widgets.
type demo struct {
	desktop *runtime.Desktop
	engine  *engine.Engine
	main    *widgets.Window
	second  *widgets.Window
	name    *widgets.Entry
	greet   *widgets.Label
	clicks  *widgets.ProgressBar
	button  *widgets.Button
	pressed int
}

func newDemo(session *widget.Session) (*demo, error) {
	eng := engine.NewBREW()
	if err := eng.SetProperties(brewProperties); err != nil {
		return nil, err
	}

	d := &demo{
		desktop: runtime.NewDesktop(0, 0, session),
		engine:  eng,
		main:    widgets.NewWindow("Hello world..."),
		second:  widgets.NewWindow("...from BREW!"),
		name:    widgets.NewEntry(),
		greet:   widgets.NewLabel("Type a name, press Enter"),
		clicks:  widgets.NewProgressBar(),
		button:  widgets.NewButton("Click"),
	}

	body := widgets.NewVBox(1)
	body.Pack(d.greet, false)
	body.Pack(d.name, false)
	row := widgets.NewHBox(1)
	row.Pack(d.button, false)
	row.Pack(d.clicks, true)
	body.Pack(row, false)
	body.Pack(widgets.NewSeparator(widgets.Horizontal), false)
	body.Pack(widgets.NewLabel("m: move  q: quit"), false)
	d.main.Add(body)

	fixed := widgets.NewFixed()
	fixed.Put(widgets.NewLabel("Drag a title bar"), geom.Vector{X: 1})
	fixed.Put(widgets.NewLabel("to move a window."), geom.Vector{X: 1, Y: 1})
	fixed.Put(widgets.NewLabel("Tab cycles focus."), geom.Vector{X: 1, Y: 3})
	d.second.Add(fixed)

	d.main.SetRenderEngine(eng)
	d.second.SetRenderEngine(eng)
	d.main.SetAllocation(mainRect)
	d.second.SetAllocation(secondRect)

	d.name.OnSubmit.Connect(func() {
		d.greet.SetText(fmt.Sprintf("Hello, %s!", d.name.Text()))
	})
	d.button.OnClicked.Connect(func() {
		d.pressed = (d.pressed + 1) % 11
		d.clicks.SetFraction(float64(d.pressed) / 10)
	})

	d.desktop.Add(d.main)
	d.desktop.Add(d.second)
	return d, nil
}

// update handles the sample's hot keys unless an entry has focus.
func (d *demo) update(app *runtime.App, msg runtime.Message) bool {
	in, ok := msg.(runtime.InputMsg)
	if !ok {
		return runtime.DefaultUpdate(app, msg)
	}
	key, ok := in.Event.(terminal.KeyEvent)
	if !ok || key.Key != terminal.KeyRune || d.typing() {
		return runtime.DefaultUpdate(app, msg)
	}

	switch key.Rune {
	case keyRealloc:
		d.main.SetAllocation(reallocRect)
		return true
	case keyQuit:
		app.Quit()
		return false
	default:
		return runtime.DefaultUpdate(app, msg)
	}
}

func (d *demo) typing() bool {
	_, ok := d.desktop.FocusChain().Current().(*widgets.Entry)
	return ok
}
