package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/internal/presentation/tui"
	"github.com/aretw0/tendril/pkg/adapters/file"
	httpAdapter "github.com/aretw0/tendril/pkg/adapters/http"
	"github.com/aretw0/tendril/pkg/adapters/mcp"
	"github.com/aretw0/tendril/pkg/adapters/redis"
	"github.com/aretw0/tendril/pkg/adapters/term"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/observability"
	"github.com/aretw0/tendril/pkg/runner"
	"golang.org/x/sync/errgroup"
)

// ErrNoScript is returned when neither a flag nor the config names a script.
var ErrNoScript = errors.New("no script given")

// session holds everything one Execute call wires together.
type session struct {
	opts    RunOptions
	logger  *slog.Logger
	engine  *tendril.Engine
	runner  *runner.Runner
	control *runner.Control
	view    *view
	sink    *redis.Sink
	streams *httpAdapter.StreamManager
	metrics *observability.Metrics

	keyboard *term.Keyboard
	stop     context.CancelFunc
}

// Execute runs a live session until ctx is cancelled, the frame limit is
// reached or a component fails.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.MCP == MCPStdio {
		// Stdout carries JSON-RPC.
		opts.Headless = true
		opts.Stdout = opts.Stderr
	}

	path := opts.Config.Script
	if path == "" && !opts.Serve && opts.MCP == "" {
		return ErrNoScript
	}

	var script []byte
	if path != "" {
		var err error
		if script, err = file.Load(path); err != nil {
			return err
		}
	}

	s, cleanup, err := newSession(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.Headless && opts.MCP == "" {
		tui.PrintBanner(opts.Stderr)
	}

	if script != nil && !opts.Watch {
		if err := s.engine.RebuildScript(ctx, script); err != nil {
			if !opts.live() {
				return err
			}
			printSystemMessage(opts.Stderr, "%v", err)
		}
	}

	return s.run(ctx)
}

func newSession(opts RunOptions) (*session, func(), error) {
	cfg := opts.Config
	canvas := !opts.Headless

	logger, closeLog, err := createLogger(opts, canvas)
	if err != nil {
		return nil, nil, err
	}
	cleanups := []func(){closeLog}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	s := &session{
		opts:    opts,
		logger:  logger,
		metrics: observability.NewMetrics(),
	}

	hooks := s.metrics.Hooks().Merge(observability.LogHooks(logger))
	diags := host.MultiDiagnostics{}
	engineOpts := []tendril.Option{
		tendril.WithLogger(logger),
		tendril.WithMaxDepth(cfg.MaxDepth),
		tendril.WithName(cfg.Script),
	}

	if opts.Serve || opts.MCP != "" {
		s.streams = httpAdapter.NewStreamManager()
		hooks = hooks.Merge(s.streams.Hooks())
		diags = append(diags, s.streams.Diagnostics())
	}

	if cfg.Redis.Addr != "" {
		s.sink = redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithStream(cfg.Redis.Stream),
			redis.WithMaxLen(cfg.Redis.MaxLen),
			redis.WithLogger(logger),
		)
		cleanups = append(cleanups, func() { _ = s.sink.Close() })
		diags = append(diags, s.sink)
	}

	if canvas {
		w, h := cfg.Grid.Width, cfg.Grid.Height
		if w == 0 || h == 0 {
			w, h = term.FitSize(os.Stdout)
		}
		s.view = newView(term.NewCanvas(w, h), opts.Stdout)
		// Raw mode turns Ctrl-C into a key press.
		s.keyboard = term.NewKeyboard(term.WithInterrupt(func() {
			if s.stop != nil {
				s.stop()
			}
		}))
		diags = append(diags, s.view)
		engineOpts = append(engineOpts,
			tendril.WithSurface(s.view.canvas),
			tendril.WithKeyboard(s.keyboard),
		)
	} else {
		diags = append(diags, host.NewWriterDiagnostics(opts.Stdout))
	}

	engineOpts = append(engineOpts,
		tendril.WithLifecycleHooks(hooks),
		tendril.WithDiagnostics(diags),
	)

	runnerOpts := []runner.Option{
		runner.WithFPS(cfg.FPS),
		runner.WithLogger(logger),
		runner.WithMaxFrames(opts.Frames),
	}
	if s.view != nil {
		runnerOpts = append(runnerOpts, runner.WithFrameHandler(s.view.render))
	}

	s.engine = tendril.New(engineOpts...)
	s.runner = runner.New(runnerOpts...)
	s.control = runner.NewControl(s.runner, s.engine)
	return s, cleanup, nil
}

func (s *session) run(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	s.stop = cancel

	if s.view != nil {
		restore, err := s.startTerminal(ctx)
		if err != nil {
			return err
		}
		defer restore()
	}

	// Everything that can fail runs before the first goroutine starts.
	switch s.opts.MCP {
	case "", MCPStdio, MCPSSE:
	default:
		return fmt.Errorf("unknown MCP transport %q (supported: %s, %s)", s.opts.MCP, MCPStdio, MCPSSE)
	}
	if s.sink != nil {
		if err := s.sink.Ping(ctx); err != nil {
			return err
		}
	}
	var watcher *file.Watcher
	if s.opts.Watch {
		w, err := file.NewWatcher(s.opts.Config.Script, file.WithLogger(s.logger))
		if err != nil {
			return err
		}
		watcher = w
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return s.runner.Run(gctx, s.engine)
	})

	if s.sink != nil {
		g.Go(func() error { return s.sink.Run(gctx) })
	}

	if watcher != nil {
		g.Go(func() error { return watcher.Watch(gctx, s.reload) })
	}

	if s.opts.Serve {
		g.Go(func() error { return s.serveHTTP(gctx) })
	}

	switch s.opts.MCP {
	case MCPStdio:
		g.Go(func() error {
			defer cancel()
			return mcp.NewServer(s.control).ServeStdio()
		})
	case MCPSSE:
		g.Go(func() error { return mcp.NewServer(s.control).ServeSSE(gctx, s.opts.MCPPort) })
	}

	err := g.Wait()
	if isInterrupted(err) || errors.Is(err, runner.ErrStopped) {
		return nil
	}
	return err
}

// reload rebuilds from the watcher goroutine, between two frames.
func (s *session) reload(ctx context.Context, data []byte) {
	err := s.control.RebuildScript(ctx, data)
	switch {
	case err == nil:
		s.logger.Info("script reloaded", "path", s.opts.Config.Script)
		if s.view == nil {
			printSystemMessage(s.opts.Stderr, "Reloaded %s", s.opts.Config.Script)
		}
	case domain.IsBuildError(err):
		// The canvas shows the error box itself.
		if s.view == nil {
			printSystemMessage(s.opts.Stderr, "%v", err)
		}
	case !isInterrupted(err) && !errors.Is(err, runner.ErrStopped):
		s.logger.Error("reload failed", "err", err)
	}
}

func (s *session) startTerminal(ctx context.Context) (func(), error) {
	restoreTTY, err := term.MakeRaw(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	// Not part of the errgroup: a pending read on stdin cannot be interrupted.
	go func() { _ = s.keyboard.Listen(ctx, os.Stdin) }()

	s.view.open()
	return func() {
		s.view.close()
		_ = restoreTTY()
	}, nil
}

func (s *session) serveHTTP(ctx context.Context) error {
	handler := httpAdapter.NewHandler(s.control,
		httpAdapter.WithStreams(s.streams),
		httpAdapter.WithMetrics(s.metrics.Handler()),
		httpAdapter.WithLogger(s.logger),
	)
	srv := &http.Server{
		Addr:              s.opts.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("control API listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		return nil
	}
}
