package runtime

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/trellis/pkg/errors"
	"github.com/odvcencio/trellis/pkg/observability"
	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/input"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// UpdateFunc handles a message and returns true if a render is needed.
// Custom update functions usually end by calling DefaultUpdate.
type UpdateFunc func(app *App, msg Message) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend backend.Backend
	// Desktop holds the windows. One sized to the backend is created if nil.
	Desktop *Desktop
	// Session is used when the App creates the desktop.
	Session *widget.Session
	// Input translates backend events. Defaults to synthesized key releases.
	Input         *input.Adapter
	Update        UpdateFunc
	Logger        *observability.Logger
	MessageBuffer int
	TickRate      time.Duration
}

// App runs a desktop against a terminal backend.
type App struct {
	backend  backend.Backend
	desktop  *Desktop
	session  *widget.Session
	input    *input.Adapter
	update   UpdateFunc
	logger   *observability.Logger
	messages chan Message
	tickRate time.Duration

	ready     chan struct{}
	readyOnce sync.Once
	running   bool
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	in := cfg.Input
	if in == nil {
		in = input.NewAdapter(true)
	}
	update := cfg.Update
	if update == nil {
		update = DefaultUpdate
	}
	logger := cfg.Logger
	if logger == nil {
		logger = observability.Nop()
	}
	return &App{
		backend:  cfg.Backend,
		desktop:  cfg.Desktop,
		session:  cfg.Session,
		input:    in,
		update:   update,
		logger:   logger,
		messages: make(chan Message, bufferSize),
		tickRate: cfg.TickRate,
		ready:    make(chan struct{}),
	}
}

// Desktop returns the desktop. It is nil until Run has started unless one
// was configured.
func (a *App) Desktop() *Desktop {
	return a.desktop
}

// Ready is closed once the event loop first runs. It stays closed when Run
// is called again after returning.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Post sends a message to the event loop. It never blocks; when the queue
// is full the message is dropped.
func (a *App) Post(msg Message) {
	select {
	case a.messages <- msg:
	default:
		a.logger.Warn("message dropped", "queue", cap(a.messages))
	}
}

// Invoke runs fn on the event loop goroutine.
func (a *App) Invoke(fn func(app *App)) {
	a.Post(InvokeMsg{Fn: fn})
}

// Quit asks the event loop to stop.
func (a *App) Quit() {
	a.Post(QuitMsg{})
}

// Run starts the event loop until quit or context cancellation.
// Quitting returns nil; cancellation returns the context error.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New(errors.ErrCodeInvalidInput, "backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "init backend")
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	if a.desktop == nil {
		a.desktop = NewDesktop(w, h, a.session)
	} else {
		a.desktop.Resize(w, h)
	}
	a.desktop.SetLogger(a.logger)
	a.logger.BackendStarted(backendKind(a.backend), w, h)

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()
	go a.pollEvents(pollCtx)

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	a.running = true
	a.render(ctx)
	a.readyOnce.Do(func() { close(a.ready) })

	for a.running {
		select {
		case <-ctx.Done():
			a.logger.Info("event loop stopped", "reason", ctx.Err().Error())
			return ctx.Err()
		case msg := <-a.messages:
			if a.update(a, msg) {
				a.desktop.MarkDirty()
			}
		case now := <-ticks:
			if a.update(a, TickMsg{Time: now}) {
				a.desktop.MarkDirty()
			}
		}

		if a.running && a.desktop.IsDirty() {
			a.render(ctx)
		}
	}

	a.logger.Info("event loop stopped", "reason", "quit")
	return nil
}

// DefaultUpdate handles input, resize and control messages.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.desktop == nil {
		return false
	}

	switch m := msg.(type) {
	case InputMsg:
		return app.handleInput(m.Event)
	case ResizeMsg:
		_, span := observability.StartSpan(context.Background(), "desktop.resize",
			trace.WithAttributes(attribute.Int("width", m.Width), attribute.Int("height", m.Height)))
		app.desktop.Resize(m.Width, m.Height)
		app.backend.Sync()
		span.End()
		app.logger.Resized(m.Width, m.Height)
		return true
	case InvokeMsg:
		if m.Fn != nil {
			m.Fn(app)
		}
		return false
	case QuitMsg:
		app.running = false
		return false
	case RefreshMsg:
		app.desktop.Buffer().MarkAllDirty()
		return true
	default:
		return false
	}
}

func (a *App) handleInput(ev terminal.Event) bool {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return DefaultUpdate(a, ResizeMsg{Width: e.Width, Height: e.Height})
	case terminal.KeyEvent:
		if e.Key == terminal.KeyCtrlC {
			a.running = false
			return false
		}
	case terminal.InterruptEvent:
		return false
	}

	events := a.input.Translate(ev)
	for _, we := range events {
		observability.InputEvents.WithLabelValues(we.Kind()).Inc()
		a.desktop.HandleEvent(we)
	}
	return false
}

func (a *App) pollEvents(ctx context.Context) {
	for {
		ev := a.backend.PollEvent()
		if ctx.Err() != nil {
			return
		}
		if ev == nil {
			continue
		}
		select {
		case a.messages <- InputMsg{Event: ev}:
		case <-ctx.Done():
			return
		}
	}
}

// render exposes the desktop and flushes changed cells to the backend.
func (a *App) render(ctx context.Context) {
	_, span := observability.StartSpan(ctx, "frame.render")
	defer span.End()

	start := time.Now()
	stats := a.desktop.Render()
	cells := a.desktop.Buffer().Flush(a.backend)
	a.backend.Show()

	observability.FrameDuration.Observe(time.Since(start).Seconds())
	observability.FramesRendered.Inc()
	span.SetAttributes(
		observability.AttrSessionID.String(a.desktop.Session().ID()),
		observability.AttrWindows.Int(stats.Windows),
		observability.AttrDrawn.Int(stats.Drawn),
		observability.AttrCulled.Int(stats.Culled),
	)
	a.logger.Debug("frame rendered", "drawn", stats.Drawn, "culled", stats.Culled, "cells", cells)
}

func backendKind(b backend.Backend) string {
	if k, ok := b.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "custom"
}
