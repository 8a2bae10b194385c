package runtime

import (
	"testing"

	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/widget"
	"github.com/odvcencio/trellis/pkg/ui/widgets"
)

// focusTree builds a window with a label, two entries, a button and a
// hidden box holding a third entry.
type focusTree struct {
	win    *widgets.Window
	a, b   *widgets.Entry
	ok     *widgets.Button
	hidden *widgets.Entry
	box    *widgets.Box
}

func newFocusTree() *focusTree {
	ft := &focusTree{
		win:    newWindow("Focus", 0, 0, 30, 10),
		a:      widgets.NewEntry(),
		b:      widgets.NewEntry(),
		ok:     widgets.NewButton("OK"),
		hidden: widgets.NewEntry(),
		box:    widgets.NewVBox(0),
	}
	fixed := widgets.NewFixed()
	ft.win.Add(fixed)
	fixed.Put(widgets.NewLabel("Name"), geom.Vector{})
	fixed.Put(ft.a, geom.Vector{Y: 1})
	fixed.Put(ft.b, geom.Vector{Y: 2})
	fixed.Put(ft.ok, geom.Vector{Y: 3})
	ft.box.Add(ft.hidden)
	fixed.Put(ft.box, geom.Vector{Y: 4})
	ft.box.Show(false)
	return ft
}

func TestFocusChain_Widgets(t *testing.T) {
	ft := newFocusTree()
	chain := NewFocusChain(ft.win)

	got := chain.Widgets()
	want := []Focusable{ft.a, ft.b, ft.ok}
	if len(got) != len(want) {
		t.Fatalf("Widgets() returned %d widgets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Widgets()[%d] = %s, want %s", i, got[i].Name(), want[i].Name())
		}
	}
}

func TestFocusChain_SkipsInsensitive(t *testing.T) {
	ft := newFocusTree()
	ft.b.SetSensitive(false)
	chain := NewFocusChain(ft.win)

	chain.FocusNext()
	chain.FocusNext()
	if chain.Current() != Focusable(ft.ok) {
		t.Error("FocusNext should skip the insensitive entry")
	}
}

func TestFocusChain_HiddenSubtreeShownLater(t *testing.T) {
	ft := newFocusTree()
	chain := NewFocusChain(ft.win)

	ft.box.Show(true)
	if n := len(chain.Widgets()); n != 4 {
		t.Errorf("Widgets() after Show = %d, want 4", n)
	}
}

func TestFocusChain_NextWraps(t *testing.T) {
	ft := newFocusTree()
	chain := NewFocusChain(ft.win)

	if chain.Current() != nil {
		t.Fatal("new chain should have no focus")
	}
	steps := []Focusable{ft.a, ft.b, ft.ok, ft.a}
	for i, want := range steps {
		if !chain.FocusNext() {
			t.Fatalf("step %d: FocusNext() = false", i)
		}
		if chain.Current() != want {
			t.Errorf("step %d: focus on %s", i, chain.Current().Name())
		}
		if want.State() != widget.StateActive {
			t.Errorf("step %d: focused widget state = %s, want active", i, want.State())
		}
	}
	if ft.ok.State() != widget.StateNormal {
		t.Errorf("previous focus state = %s, want normal", ft.ok.State())
	}
}

func TestFocusChain_PrevFromNothingStartsAtLast(t *testing.T) {
	ft := newFocusTree()
	chain := NewFocusChain(ft.win)

	chain.FocusPrev()
	if chain.Current() != Focusable(ft.ok) {
		t.Error("FocusPrev from no focus should pick the last widget")
	}
	chain.FocusPrev()
	if chain.Current() != Focusable(ft.b) {
		t.Error("FocusPrev should move backwards")
	}
}

func TestFocusChain_FocusFollowsClicks(t *testing.T) {
	ft := newFocusTree()
	chain := NewFocusChain(ft.win)

	// An entry activated by a click is where Tab continues from.
	ft.b.SetState(widget.StateActive)
	chain.FocusNext()
	if chain.Current() != Focusable(ft.ok) {
		t.Error("FocusNext should continue after the clicked entry")
	}
}

func TestFocusChain_SingleWidget(t *testing.T) {
	win := newWindow("One", 0, 0, 20, 5)
	entry := widgets.NewEntry()
	win.Add(entry)
	chain := NewFocusChain(win)

	if !chain.FocusNext() {
		t.Fatal("first FocusNext should focus the entry")
	}
	if chain.FocusNext() {
		t.Error("FocusNext with a single focused widget should report no change")
	}
}

func TestFocusChain_SetFocus(t *testing.T) {
	ft := newFocusTree()
	chain := NewFocusChain(ft.win)

	if chain.SetFocus(ft.hidden) {
		t.Error("SetFocus on a hidden widget should fail")
	}
	if !chain.SetFocus(ft.ok) {
		t.Error("SetFocus(ok) should succeed")
	}
	if chain.SetFocus(ft.ok) {
		t.Error("SetFocus on the focused widget should report no change")
	}
}

func TestFocusChain_ClearFocus(t *testing.T) {
	ft := newFocusTree()
	chain := NewFocusChain(ft.win)

	chain.FocusFirst()
	chain.ClearFocus()

	if chain.Current() != nil {
		t.Error("Current() should be nil after ClearFocus")
	}
	if ft.a.State() != widget.StateNormal {
		t.Errorf("cleared widget state = %s, want normal", ft.a.State())
	}
}

func TestFocusChain_EmptyTree(t *testing.T) {
	chain := NewFocusChain(nil)

	if chain.FocusNext() || chain.FocusPrev() || chain.FocusFirst() {
		t.Error("moves on an empty chain should report no change")
	}
	if chain.Current() != nil {
		t.Error("empty chain has no focus")
	}
	chain.ClearFocus()
}
