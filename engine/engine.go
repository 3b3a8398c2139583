// Package engine boots the necrosis engine: it reports the compiled-in
// features and brings up each gated subsystem.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/suborbital/necrosis/cheat"
	"github.com/suborbital/necrosis/conditional"
	"github.com/suborbital/necrosis/console"
	"github.com/suborbital/necrosis/features"
	"github.com/suborbital/necrosis/options"
	"github.com/suborbital/necrosis/overlay"
	"github.com/suborbital/necrosis/release"
	"github.com/suborbital/necrosis/telemetry"
)

// Engine is the booted engine.
type Engine struct {
	opts    *options.Options
	cheats  conditional.Instance[*cheat.System]
	metrics telemetry.Metrics
}

// New builds the engine. The cheat system, with its default commands, only
// exists when it is compiled in. Meters come from the global provider.
func New(opts *options.Options) (*Engine, error) {
	return newEngine(opts, global.MeterProvider())
}

func newEngine(opts *options.Options, provider metric.MeterProvider) (*Engine, error) {
	metrics, err := telemetry.NewMetrics(conditional.For(features.PerformanceMetrics), provider)
	if err != nil {
		return nil, errors.Wrap(err, "failed to NewMetrics")
	}

	e := &Engine{
		opts:    opts,
		cheats:  conditional.Construct(conditional.For(features.CheatSystem), cheat.New, opts.Logger()),
		metrics: metrics,
	}

	if system, ok := e.cheats.Get(); ok {
		system.UseMetrics(metrics)

		if err := cheat.RegisterDefaults(system); err != nil {
			return nil, errors.Wrap(err, "failed to RegisterDefaults")
		}
	}

	return e, nil
}

// Options returns the engine's options.
func (e *Engine) Options() *options.Options {
	return e.opts
}

// Cheats returns the cheat system, Inert when it is not compiled in.
func (e *Engine) Cheats() conditional.Instance[*cheat.System] {
	return e.cheats
}

// Dispatcher returns what console lines are dispatched to: the cheat system,
// or console.Unavailable when there is none.
func (e *Engine) Dispatcher() console.Dispatcher {
	return conditional.ReturnFunc(conditional.For(features.CheatSystem), func() console.Dispatcher {
		system, _ := e.cheats.Get()
		return system
	}, func() console.Dispatcher {
		return console.Unavailable
	})
}

// Overlay returns what the debug overlay shows for this engine.
func (e *Engine) Overlay() overlay.Info {
	return overlay.Info{
		AppName:   e.opts.AppName,
		SessionID: e.opts.Session(),
		Version:   release.Version(),
		Features:  features.Snapshot(),
	}
}

// Start reports the feature status and starts every compiled-in subsystem.
// It returns once the console, if any, has finished: when its input is
// exhausted and ctx is done.
func (e *Engine) Start(ctx context.Context) error {
	timer := telemetry.NewTimer()

	logger := e.opts.Logger()
	out := e.opts.Output()

	perf := conditional.For(features.PerformanceMetrics)

	var provider *sdktrace.TracerProvider

	var setupErr error

	perf.Call(func() {
		provider, setupErr = telemetry.SetupTracing(ctx, e.opts.TracerConfig, logger)
	})

	if setupErr != nil {
		return errors.Wrap(setupErr, "failed to SetupTracing")
	}

	defer func() {
		if provider == nil {
			return
		}

		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error(errors.Wrap(err, "failed to Shutdown tracer provider"))
		}
	}()

	tracer := telemetry.Tracer(perf, provider)

	spanCtx, span := tracer.Start(ctx, "engine.Start")

	fmt.Fprintf(out, "\n%s Engine Starting...\n", e.opts.AppName)
	PrintStatus(out)

	if err := e.demoCheats(spanCtx, tracer, out); err != nil {
		span.End()
		return errors.Wrap(err, "failed to demoCheats")
	}

	if err := e.showOverlay(out); err != nil {
		span.End()
		return errors.Wrap(err, "failed to showOverlay")
	}

	conditional.For(features.ConsoleCommands).Call(func() {
		fmt.Fprintln(out, "[CONSOLE] Console command system ready!")
	})

	fmt.Fprintln(out, "\nEngine initialized successfully.")
	logger.Info(fmt.Sprintf("engine initialized successfully, session %s", e.opts.Session()))

	e.metrics.EngineStartMs.Record(spanCtx, timer.ObserveMs())
	span.End()

	return e.runConsole(ctx)
}

// PrintStatus writes the ENABLED/DISABLED line of every feature to out.
func PrintStatus(out io.Writer) {
	fmt.Fprintln(out, "\n=== Feature Status ===")

	for _, f := range features.All() {
		state := "DISABLED"
		if f.Enabled() {
			state = "ENABLED"
		}

		fmt.Fprintf(out, "%s: %s\n", f.Title(), state)
	}
}

func (e *Engine) demoCheats(ctx context.Context, tracer trace.Tracer, out io.Writer) error {
	var err error

	conditional.For(features.CheatSystem).Call(func() {
		_, span := tracer.Start(ctx, "engine.demoCheats")
		defer span.End()

		system, _ := e.cheats.Get()

		fmt.Fprintln(out, "\n[CHEAT] Initializing cheat system...")
		fmt.Fprintln(out, "[CHEAT] Testing cheat commands...")

		for _, line := range []string{"god_mode", "spawn_item sword"} {
			if err = system.Process(out, line); err != nil {
				return
			}
		}
	})

	return err
}

func (e *Engine) showOverlay(out io.Writer) error {
	var err error

	conditional.For(features.DebugOverlay).Call(func() {
		fmt.Fprintln(out, "[DEBUG] Debug overlay system initialized!")
		err = overlay.Render(out, e.Overlay())
	})

	return err
}

// runConsole serves command lines from the options' input and, if an address
// is configured, from websocket clients. Without the console feature it
// returns right away.
func (e *Engine) runConsole(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	conditional.For(features.ConsoleCommands).Call(func() {
		logger := e.opts.Logger()
		dispatcher := e.Dispatcher()

		if in := e.opts.Input(); in != nil {
			g.Go(func() error {
				return console.Run(gctx, in, e.opts.Output(), dispatcher)
			})
		}

		if addr := e.opts.ConsoleAddr; addr != "" {
			g.Go(func() error {
				return console.Serve(gctx, addr, dispatcher, logger)
			})
		}
	})

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "console")
	}

	return nil
}
