package widget

import (
	"github.com/oklog/ulid/v2"
	"github.com/odvcencio/trellis/pkg/observability"
)

// DropReason says why a widget refused an input event.
type DropReason int

const (
	// DropButtonDown: a press arrived while another button was held.
	DropButtonDown DropReason = iota
	// DropPressOutside: a press landed outside the widget.
	DropPressOutside
	// DropReleaseMismatch: a release did not match the held button.
	DropReleaseMismatch
	// DropInactive: a key or text event reached a widget that is not Active.
	DropInactive
	// DropInsensitive: the widget does not accept input.
	DropInsensitive
)

func (r DropReason) String() string {
	switch r {
	case DropButtonDown:
		return "button_down"
	case DropPressOutside:
		return "press_outside"
	case DropReleaseMismatch:
		return "release_mismatch"
	case DropInactive:
		return "inactive"
	case DropInsensitive:
		return "insensitive"
	default:
		return "unknown"
	}
}

// InactiveKeyPolicy decides whether widgets that are not Active see key and text events.
type InactiveKeyPolicy int

const (
	// DropInactiveKeys delivers keys only to the Active widget.
	DropInactiveKeys InactiveKeyPolicy = iota
	// DeliverInactiveKeys delivers keys to every visible, sensitive widget.
	DeliverInactiveKeys
)

// Session is the context of one UI: it records which widget is currently
// processing an event and how refusals are reported. A nil *Session is
// valid and only counts drops.
type Session struct {
	id     string
	active Widget

	// InactiveKeys selects key routing for widgets that are not Active.
	InactiveKeys InactiveKeyPolicy
	// OnDrop is called for every refused event.
	OnDrop func(w Widget, ev Event, reason DropReason)
	// Logger receives drops at debug level. Nil disables logging.
	Logger *observability.Logger
}

// NewSession creates a session with a fresh ULID.
func NewSession() *Session {
	return &Session{id: ulid.Make().String()}
}

// ID returns the session id.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Active returns the widget that most recently started handling an event.
func (s *Session) Active() Widget {
	if s == nil {
		return nil
	}
	return s.active
}

// Dispatch sends ev to root and returns the last widget that handled it.
func (s *Session) Dispatch(root Widget, ev Event) Widget {
	if root == nil || ev == nil {
		return nil
	}
	if s != nil {
		s.active = nil
	}
	root.HandleEvent(s, ev)
	return s.Active()
}

func (s *Session) setActive(w Widget) {
	if s != nil {
		s.active = w
	}
}

func (s *Session) deliverInactiveKeys() bool {
	return s != nil && s.InactiveKeys == DeliverInactiveKeys
}

func (s *Session) drop(w Widget, ev Event, reason DropReason) {
	observability.InputDropped.WithLabelValues(reason.String()).Inc()
	if s == nil {
		return
	}
	if s.Logger != nil {
		s.Logger.InputDropped(w.Name(), ev.Kind(), reason.String())
	}
	if s.OnDrop != nil {
		s.OnDrop(w, ev, reason)
	}
}
