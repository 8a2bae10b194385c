package runtime

import "github.com/odvcencio/trellis/pkg/ui/widget"

// Focusable is a widget that accepts keyboard focus.
type Focusable interface {
	widget.Widget
	CanFocus() bool
}

// FocusChain cycles keyboard focus through the focusable widgets of one
// widget tree. Candidates are collected depth-first on every move, so the
// chain follows Add, Remove, Show and SetSensitive without registration.
type FocusChain struct {
	root widget.Widget
}

// NewFocusChain creates a chain over the tree rooted at root.
func NewFocusChain(root widget.Widget) *FocusChain {
	return &FocusChain{root: root}
}

// Root returns the tree the chain walks.
func (f *FocusChain) Root() widget.Widget {
	return f.root
}

// Widgets returns the current candidates in tab order: visible, sensitive
// widgets whose CanFocus reports true. Hidden subtrees are skipped.
func (f *FocusChain) Widgets() []Focusable {
	var out []Focusable
	collectFocusable(f.root, &out)
	return out
}

func collectFocusable(w widget.Widget, out *[]Focusable) {
	if w == nil || !w.IsVisible() {
		return
	}
	if fw, ok := w.(Focusable); ok && fw.CanFocus() && w.IsSensitive() {
		*out = append(*out, fw)
	}
	if c, ok := w.(widget.Container); ok {
		for _, child := range c.Children() {
			collectFocusable(child, out)
		}
	}
}

// Current returns the candidate holding the tree's focus, or nil.
func (f *FocusChain) Current() Focusable {
	if f.root == nil {
		return nil
	}
	for _, w := range f.Widgets() {
		if f.root.HasFocus(w) {
			return w
		}
	}
	return nil
}

// FocusNext activates the candidate after the focused one, wrapping around.
// Returns true if focus changed.
func (f *FocusChain) FocusNext() bool {
	return f.step(1)
}

// FocusPrev activates the candidate before the focused one, wrapping around.
// Returns true if focus changed.
func (f *FocusChain) FocusPrev() bool {
	return f.step(-1)
}

// FocusFirst activates the first candidate.
func (f *FocusChain) FocusFirst() bool {
	widgets := f.Widgets()
	if len(widgets) == 0 {
		return false
	}
	return f.activate(widgets[0])
}

// SetFocus activates w if it is a current candidate.
func (f *FocusChain) SetFocus(w Focusable) bool {
	for _, candidate := range f.Widgets() {
		if candidate == w {
			return f.activate(w)
		}
	}
	return false
}

// ClearFocus drops the tree's focus; the old holder returns to Normal.
func (f *FocusChain) ClearFocus() {
	if f.root != nil {
		f.root.GrabFocus(nil)
	}
}

func (f *FocusChain) step(dir int) bool {
	widgets := f.Widgets()
	n := len(widgets)
	if n == 0 {
		return false
	}

	current := -1
	for i, w := range widgets {
		if f.root.HasFocus(w) {
			current = i
			break
		}
	}

	var idx int
	switch {
	case current < 0 && dir > 0:
		idx = 0
	case current < 0:
		idx = n - 1
	default:
		idx = (current + dir + n) % n
	}
	if idx == current {
		return false
	}
	return f.activate(widgets[idx])
}

// activate makes w Active, which grabs the tree's focus.
func (f *FocusChain) activate(w Focusable) bool {
	if w.State() != widget.StateActive {
		w.SetState(widget.StateActive)
		return f.root.HasFocus(w)
	}
	if f.root.HasFocus(w) {
		return false
	}
	w.GrabFocus(w)
	return true
}
