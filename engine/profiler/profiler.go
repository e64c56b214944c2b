package profiler

import (
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"time"
)

// Profiler tracks frame rate, frame outcomes and memory statistics for performance monitoring.
// Outputs stats to its logger at a configurable interval.
type Profiler struct {
	frameCount     int
	outcomes       map[string]int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logger *slog.Logger
	now    func() time.Time
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - logger: the logger stats are written to at Info level (nil uses slog.Default)
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Profiler{
		outcomes:       make(map[string]int),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		logger:         logger.With("component", "profiler"),
		now:            time.Now,
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, per-outcome frame counts, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - outcome: the name of what the frame did (presented, timed_out, ...)
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(outcome string) bool {
	p.frameCount++
	p.outcomes[outcome]++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	// TotalAlloc only grows, so the delta is the churn since the last report.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	outcomeAttrs := make([]any, 0, len(p.outcomes))
	for _, name := range slices.Sorted(maps.Keys(p.outcomes)) {
		outcomeAttrs = append(outcomeAttrs, slog.Int(name, p.outcomes[name]))
	}

	p.logger.Info("frame stats",
		slog.Float64("fps", fps),
		slog.Group("frames", outcomeAttrs...),
		slog.Float64("heap_mb", allocMB),
		slog.Float64("alloc_rate_mb_s", allocRateMB),
		slog.Uint64("gc_count", uint64(gcCount)),
		slog.Uint64("gc_last_pause_us", lastPauseUs),
		slog.Uint64("gc_max_pause_us", maxPauseUs),
		slog.Float64("sys_mb", sysMB),
	)

	p.frameCount = 0
	clear(p.outcomes)
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Outcomes returns a copy of the outcome counts accumulated since the last report.
//
// Returns:
//   - map[string]int: frame counts keyed by outcome name
func (p *Profiler) Outcomes() map[string]int {
	return maps.Clone(p.outcomes)
}
