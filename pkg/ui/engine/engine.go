// Package engine holds the render properties widgets build their drawables from.
//
// Properties are keyed "<Widget>.<property>", where <Widget> is the value of the
// widget's Name method. A "*.<property>" key applies to every widget that does
// not set the property itself.
package engine

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/odvcencio/trellis/pkg/errors"
	"github.com/odvcencio/trellis/pkg/ui/backend"
)

// Wildcard is the widget part of a key that matches every widget.
const Wildcard = "*"

// Named is anything that reports a widget type name.
type Named interface {
	Name() string
}

// Engine is a property table shared by the widgets that render with it.
type Engine struct {
	mu      sync.RWMutex
	props   map[string]string
	version uint64
}

// New returns an engine with no properties.
func New() *Engine {
	return &Engine{props: make(map[string]string)}
}

// SetProperty stores value under key. The key must have the form
// "<Widget>.<property>" with both parts non-empty.
func (e *Engine) SetProperty(key, value string) error {
	widget, prop, ok := strings.Cut(key, ".")
	if !ok || widget == "" || prop == "" {
		return errors.New(errors.ErrCodeInvalidInput, "malformed property key").
			WithContext("key", key).
			WithRemediation("use <Widget>.<property>, for example Window.border-width")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.props[key] = value
	e.version++
	return nil
}

// SetProperties stores every entry of props, stopping at the first bad key.
func (e *Engine) SetProperties(props map[string]string) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := e.SetProperty(k, props[k]); err != nil {
			return err
		}
	}
	return nil
}

// Version increases on every change. Widgets compare it to decide whether a
// cached drawable is stale.
func (e *Engine) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// Own returns the property set specifically for w's type, ignoring the wildcard.
func (e *Engine) Own(w Named, prop string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.props[w.Name()+"."+prop]
	return v, ok
}

// Lookup resolves the first of props that is set for w, trying the widget's
// own key before the wildcard for each one.
func (e *Engine) Lookup(w Named, props ...string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	name := w.Name()
	for _, prop := range props {
		if v, ok := e.props[name+"."+prop]; ok {
			return v, true
		}
		if v, ok := e.props[Wildcard+"."+prop]; ok {
			return v, true
		}
	}
	return "", false
}

// String returns the resolved value or "".
func (e *Engine) String(w Named, props ...string) string {
	v, _ := e.Lookup(w, props...)
	return v
}

// Int returns the resolved value as an integer, or 0 if unset or malformed.
func (e *Engine) Int(w Named, props ...string) int {
	v, ok := e.Lookup(w, props...)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// Float returns the resolved value as a float, or 0 if unset or malformed.
func (e *Engine) Float(w Named, props ...string) float64 {
	v, ok := e.Lookup(w, props...)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// Color returns the resolved value as a color, or ColorDefault.
func (e *Engine) Color(w Named, props ...string) backend.Color {
	v, ok := e.Lookup(w, props...)
	if !ok {
		return backend.ColorDefault
	}
	c, err := backend.ParseColor(v)
	if err != nil {
		return backend.ColorDefault
	}
	return c
}

// Style combines the "color" and "background-color" properties of w. A
// non-empty variant such as "prelight" is tried first ("color-prelight").
func (e *Engine) Style(w Named, variant string) backend.Style {
	fg := []string{"color"}
	bg := []string{"background-color"}
	if variant != "" {
		fg = []string{"color-" + variant, "color"}
		bg = []string{"background-color-" + variant, "background-color"}
	}
	return backend.DefaultStyle().
		Foreground(e.Color(w, fg...)).
		Background(e.Color(w, bg...))
}

// Keys returns every property key in sorted order.
func (e *Engine) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.props))
	for k := range e.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
