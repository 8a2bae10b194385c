// Command trellis-demo runs the two-window BREW sample on a terminal.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/odvcencio/trellis/pkg/config"
	"github.com/odvcencio/trellis/pkg/errors"
	"github.com/odvcencio/trellis/pkg/observability"
	"github.com/odvcencio/trellis/pkg/ui/backend"
	"github.com/odvcencio/trellis/pkg/ui/backend/sim"
	"github.com/odvcencio/trellis/pkg/ui/backend/tcell"
	"github.com/odvcencio/trellis/pkg/ui/input"
	"github.com/odvcencio/trellis/pkg/ui/runtime"
	"github.com/odvcencio/trellis/pkg/ui/widget"
)

// Version information - set via ldflags during build
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

type options struct {
	configPath  string
	backend     string
	metricsAddr string
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("trellis-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default ./.trellis/config.yaml, ~/.trellis/config.yaml)")
	fs.StringVar(&opts.backend, "backend", "", "backend to use: tcell or sim")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics on this address")
	fs.BoolVar(&opts.showVersion, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return opts, withExitCode(err, exitUsage)
	}
	if fs.NArg() > 0 {
		return opts, withExitCode(fmt.Errorf("unexpected arguments: %v", fs.Args()), exitUsage)
	}
	return opts, nil
}

func main() {
	os.Exit(exitCodeForError(run(os.Args[1:], os.Stdout, os.Stderr)))
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "trellis-demo %s (%s)\n", version, commit)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return withExitCode(err, exitUsage)
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	defer closeLog()

	shutdownTracing, err := startTracing(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	defer shutdownTracing()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if opts.backend != "" {
		cfg.Backend.Kind = opts.backend
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLogger(cfg *config.Config) (*observability.Logger, func(), error) {
	level := observability.ParseLevel(cfg.Log.Level)
	path := cfg.LogPath()
	if path == "" {
		return observability.NewLogger("demo", level, nil), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "open log file").WithContext("path", path)
	}
	return observability.NewLogger("demo", level, f), func() { _ = f.Close() }, nil
}

func startTracing(cfg *config.Config) (func(), error) {
	if !cfg.Trace.Enabled {
		return func() {}, nil
	}
	path := cfg.TracePath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "open trace file").WithContext("path", path)
	}
	tp, err := observability.NewTracerProvider("trellis-demo", f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "start tracing")
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
		_ = f.Close()
	}, nil
}

// newBackend picks the configured backend. A tcell backend needs a terminal
// on both ends; without one the simulation screen is used instead.
func newBackend(cfg *config.Config, logger *observability.Logger) (backend.Backend, error) {
	kind := cfg.Backend.Kind
	if kind == config.BackendTcell && !isInteractive() {
		logger.Warn("not a terminal, using the simulation backend")
		kind = config.BackendSim
	}
	if kind == config.BackendSim {
		return sim.New(cfg.Backend.Width, cfg.Backend.Height), nil
	}
	be, err := tcell.New()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBackendInit, "create terminal backend")
	}
	return be, nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

// serve runs the sample and, when configured, the metrics endpoint until
// the sample quits or ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, logger *observability.Logger, stdout io.Writer) error {
	be, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}

	session := widget.NewSession()
	if cfg.Input.DeliverKeysWhenInactive {
		session.InactiveKeys = widget.DeliverInactiveKeys
	}
	sessionLogger := logger.WithSession(session.ID())
	session.Logger = sessionLogger

	d, err := newDemo(session)
	if err != nil {
		return err
	}
	d.desktop.SetCulling(cfg.Render.Cull)

	app := runtime.NewApp(runtime.AppConfig{
		Backend:  be,
		Desktop:  d.desktop,
		Input:    input.NewAdapter(cfg.Input.SynthesizeKeyRelease),
		Update:   d.update,
		Logger:   sessionLogger,
		TickRate: cfg.Render.TickRate,
	})

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	g.Go(func() error {
		defer cancel()
		err := app.Run(ctx)
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return observability.Serve(ctx, cfg.Metrics.Addr, logger)
		})
	}

	// Headless runs print the first frame and stop.
	if screen, ok := be.(*sim.Backend); ok {
		g.Go(func() error {
			select {
			case <-app.Ready():
				fmt.Fprint(stdout, screen.Capture())
				app.Quit()
			case <-ctx.Done():
			}
			return nil
		})
	}

	return g.Wait()
}
