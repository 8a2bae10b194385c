package widget

// Signal is a list of parameterless callbacks fired in connection order.
type Signal struct {
	handlers []signalHandler
	nextID   uint
}

type signalHandler struct {
	id uint
	fn func()
}

// Connect registers fn and returns an id for Disconnect. Ids start at 1.
func (s *Signal) Connect(fn func()) uint {
	if fn == nil {
		return 0
	}
	s.nextID++
	s.handlers = append(s.handlers, signalHandler{id: s.nextID, fn: fn})
	return s.nextID
}

// Disconnect removes the handler with the given id.
func (s *Signal) Disconnect(id uint) bool {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls every connected handler. Handlers connected or disconnected
// during emission take effect on the next Emit.
func (s *Signal) Emit() {
	if len(s.handlers) == 0 {
		return
	}
	handlers := s.handlers
	for _, h := range handlers {
		h.fn()
	}
}

// Len returns the number of connected handlers.
func (s *Signal) Len() int {
	return len(s.handlers)
}

// SignalSet holds the notifications every widget emits.
type SignalSet struct {
	OnSizeRequest        Signal
	OnSizeAllocate       Signal
	OnStateChange        Signal
	OnMouseEnter         Signal
	OnMouseLeave         Signal
	OnMouseMove          Signal
	OnMouseButtonPress   Signal
	OnMouseButtonRelease Signal
	OnMouseClick         Signal
	OnKeyPress           Signal
	OnKeyRelease         Signal
	OnText               Signal
	OnGainFocus          Signal
	OnLostFocus          Signal
}

// Signals returns the widget's signal set.
func (s *SignalSet) Signals() *SignalSet {
	return s
}
