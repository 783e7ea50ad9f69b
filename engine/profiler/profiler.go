package profiler

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Stats is a snapshot of the export counters since the profiler was created.
type Stats struct {
	Exports int
	Failed  int
	Frames  int
	Bytes   int
	Busy    time.Duration
}

// Profiler tracks export throughput and memory statistics.
// Outputs stats to the logger at a configurable interval. Safe for concurrent use.
type Profiler struct {
	mu sync.Mutex

	logger         *slog.Logger
	stats          Stats
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	lastExports    int
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second. A nil logger uses slog.Default().
//
// Parameters:
//   - logger: the logger stats are written to
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profiler{
		logger:         logger,
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// Record adds one finished export to the counters and logs stats when the update interval has elapsed.
//
// Parameters:
//   - frames: number of frame samples written (0 for failed exports)
//   - bytes: document size in bytes
//   - elapsed: wall time spent on the export
//   - err: the export error, nil on success
//
// Returns:
//   - bool: true if stats were logged by this call
func (p *Profiler) Record(frames, bytes int, elapsed time.Duration, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Exports++
	if err != nil {
		p.stats.Failed++
	}
	p.stats.Frames += frames
	p.stats.Bytes += bytes
	p.stats.Busy += elapsed

	return p.tick(false)
}

// Flush logs the current stats regardless of the update interval.
func (p *Profiler) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tick(true)
}

// Stats returns a snapshot of the counters.
//
// Returns:
//   - Stats: the accumulated counters
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Profiler) tick(force bool) bool {
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if !force && elapsed < p.updateInterval {
		return false
	}

	seconds := elapsed.Seconds()
	if seconds <= 0 {
		seconds = 1e-9
	}
	rate := float64(p.stats.Exports-p.lastExports) / seconds

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		// PauseNs is a circular buffer of the last 256 GC pauses
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
			maxPauseUs = pause
		}
	}

	p.logger.Info("export stats",
		"exports", p.stats.Exports,
		"failed", p.stats.Failed,
		"frames", p.stats.Frames,
		"bytes", p.stats.Bytes,
		"busy", p.stats.Busy,
		"exports_per_sec", rate,
		"heap_mb", allocMB,
		"alloc_rate_mb_s", allocRateMB,
		"gc", gcCount,
		"gc_max_pause_us", maxPauseUs,
	)

	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastExports = p.stats.Exports
	return true
}
