package engine

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/dariandzirko/water-spider/common"
	"github.com/dariandzirko/water-spider/engine/profiler"
	"github.com/dariandzirko/water-spider/engine/renderer"
	"github.com/dariandzirko/water-spider/engine/window"
)

// engine implements the Engine interface.
// Owns the window and the renderer and drives both from the window's event loop on one thread.
type engine struct {
	window   window.Window
	renderer renderer.Renderer

	quit     bool
	quitOnce sync.Once // Ensures shutdown is only requested once
	err      error

	logger           *slog.Logger
	profiler         *profiler.Profiler
	profilingEnabled bool
}

// Engine is the main entry point for the application.
// It maps window events onto renderer calls and decides when the loop ends.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer drawn on every redraw.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Input offers an event to application-level input handling before the engine acts on it.
	// Nothing is consumed here, so every event continues to the default handling.
	//
	// Parameters:
	//   - ev: the window event
	//
	// Returns:
	//   - bool: true if the event was consumed
	Input(ev window.Event) bool

	// HandleEvent applies one window event: close and Escape quit, resizes reconfigure the
	// surface and redraws render a frame. A fatal frame error stops the loop.
	//
	// Parameters:
	//   - ev: the window event
	HandleEvent(ev window.Event)

	// Run processes window events until the window closes or a fatal error occurs.
	//
	// Returns:
	//   - error: the fatal rendering error, or nil on a normal quit
	Run() error

	// Quit requests the loop to stop. Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, logger)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:           slog.Default(),
		profilingEnabled: false,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler(e.logger)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() error {
	if e.window == nil || e.renderer == nil {
		return errors.New("engine requires a window and a renderer")
	}

	e.window.SetEventCallback(e.HandleEvent)
	e.logger.Info("event loop started", "width", e.window.Width(), "height", e.window.Height())
	e.window.ProcessMessages()
	e.window.SetEventCallback(nil)
	e.logger.Info("event loop stopped")

	return e.err
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quit = true
		e.logger.Info("quit requested")
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Input(ev window.Event) bool {
	return false
}

func (e *engine) HandleEvent(ev window.Event) {
	if e.Input(ev) {
		return
	}

	switch ev.Type {
	case window.EventCloseRequested:
		e.Quit()
	case window.EventKeyPressed:
		if ev.Key == common.KeyEsc {
			e.Quit()
		}
	case window.EventResized, window.EventScaleFactorChanged:
		if !e.renderer.Resize(ev.Width, ev.Height) {
			e.logger.Debug("resize ignored", "event", ev.Type, "width", ev.Width, "height", ev.Height)
		}
	case window.EventRedrawRequested:
		e.redraw()
	}
}

// redraw renders one frame unless a quit is pending.
func (e *engine) redraw() {
	if e.quit {
		return
	}

	outcome, err := e.renderer.RenderFrame()
	if e.profiler != nil {
		e.profiler.Tick(outcome.String())
	}
	if err != nil {
		e.logger.Error("rendering stopped", "outcome", outcome, "error", err)
		e.err = err
		e.Quit()
	}
}
