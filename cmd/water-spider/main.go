// Command water-spider opens a window and draws a background image under a scrolling water texture.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dariandzirko/water-spider/config"
	"github.com/dariandzirko/water-spider/engine"
	"github.com/dariandzirko/water-spider/engine/gpu"
	"github.com/dariandzirko/water-spider/engine/renderer"
	"github.com/dariandzirko/water-spider/engine/window"
)

func main() {
	if err := run(); err != nil {
		slog.Error("water-spider exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	logLevel := flag.String("log-level", "", "override log_level (debug, info, warn, error)")
	flag.Parse()

	// ── Config + Logging ────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	gpu.SetLogger(logger)
	renderer.SetLogger(logger)

	// ── Window ──────────────────────────────────────────────────────
	win, err := window.NewWindow(cfg.WindowOptions()...)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	// ── GPU Context ─────────────────────────────────────────────────
	ctx, err := gpu.NewContext(win.SurfaceDescriptor(), win.Width(), win.Height(), cfg.ContextOptions()...)
	if err != nil {
		return fmt.Errorf("create gpu context: %w", err)
	}
	defer ctx.Release()

	// ── Renderer ────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(ctx)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	// ── Engine ──────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithProfiling(cfg.Profiling),
		engine.WithLogger(logger),
	)

	logger.Info("starting", "title", cfg.Title, "width", win.Width(), "height", win.Height())
	if err := eng.Run(); err != nil {
		return err
	}
	logger.Info("shutting down")
	return nil
}
