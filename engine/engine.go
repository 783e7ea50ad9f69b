package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/animation"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/sampler"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/serializer"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used when no tracer is supplied.
const TracerName = "github.com/Carmen-Shannon/oxy-mcanim/engine"

// engine implements the Engine interface.
// Coordinates the sampler, the serializer and the batch worker pool.
type engine struct {
	sampler    sampler.Sampler
	serializer serializer.Serializer
	logger     *slog.Logger
	tracer     trace.Tracer

	workers  int
	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	closed   bool
	mu       sync.Mutex

	profiler         *profiler.Profiler
	profilingEnabled bool
}

// Result describes one finished export.
type Result struct {
	// RunID identifies the export in logs and traces. It is never written into the document.
	RunID uuid.UUID
	// Object is the name of the exported object.
	Object string
	// Path is the destination file.
	Path string
	// Frames is the number of frame samples in the document.
	Frames int
	// Bytes is the size of the written document.
	Bytes int
	// Duration is the wall time of the export.
	Duration time.Duration
	// Err is set on batch results whose export failed.
	Err error
}

// Job is one entry of a batch export.
type Job struct {
	Scene   scene.Scene
	Request animation.Request
	Path    string
}

// Engine is the main entry point of the exporter.
// It runs the sample, serialize and write steps for single and batch exports.
type Engine interface {
	// Export samples the requested object, serializes the document and writes it to path.
	// Nothing is written unless sampling and serialization succeed.
	//
	// Parameters:
	//   - ctx: the context carrying the parent span
	//   - scn: the scene the object belongs to
	//   - req: the export request
	//   - path: the destination file, created or truncated
	//
	// Returns:
	//   - Result: statistics of the finished export
	//   - error: animation.ErrUnsupportedAnimationType, animation.ErrInvalidRequest,
	//     animation.ErrNoKeyframesFound, an *animation.EncodingError or an *animation.FileWriteError
	Export(ctx context.Context, scn scene.Scene, req animation.Request, path string) (Result, error)

	// ExportBatch runs several exports on the worker pool. Sampling is serialized per scene by the
	// scene's cursor lock; serialization and writes run in parallel.
	// Jobs that have not started when ctx is cancelled fail with ctx.Err().
	//
	// Parameters:
	//   - ctx: the batch context
	//   - jobs: the exports to run
	//
	// Returns:
	//   - []Result: one result per job, in job order, with Err set for failures
	//   - error: the joined errors of all failed jobs, or nil
	ExportBatch(ctx context.Context, jobs []Job) ([]Result, error)

	// Handle resolves an ExportCommand against its scene and runs the export.
	//
	// Parameters:
	//   - ctx: the context carrying the parent span
	//   - cmd: the command to execute
	//
	// Returns:
	//   - Result: statistics of the finished export
	//   - error: animation.ErrObjectNotFound when the object name does not resolve, or any Export error
	Handle(ctx context.Context, cmd ExportCommand) (Result, error)

	// Sampler returns the configured sampler.
	Sampler() sampler.Sampler

	// Serializer returns the configured serializer.
	Serializer() serializer.Serializer

	// EnableProfiler enables export statistics output to the logger.
	EnableProfiler()

	// DisableProfiler disables export statistics output.
	DisableProfiler()

	// Stats returns the accumulated export statistics.
	//
	// Returns:
	//   - profiler.Stats: counters since the engine was created
	Stats() profiler.Stats

	// Close stops the worker pool and flushes profiler output.
	// Safe to call multiple times; subsequent calls are no-ops.
	Close()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Defaults: local space and Y-up sampler, shortest-representation serializer, one batch worker,
// slog.Default() and the global tracer provider.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		workers: 1,
	}

	for _, option := range options {
		option(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(TracerName)
	}
	if e.sampler == nil {
		e.sampler = sampler.NewSampler(sampler.WithLogger(e.logger))
	}
	if e.serializer == nil {
		e.serializer = serializer.NewSerializer(serializer.WithLogger(e.logger))
	}
	e.profiler = profiler.NewProfiler(e.logger)

	return e
}

func (e *engine) Sampler() sampler.Sampler {
	return e.sampler
}

func (e *engine) Serializer() serializer.Serializer {
	return e.serializer
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) Stats() profiler.Stats {
	return e.profiler.Stats()
}

func (e *engine) Export(ctx context.Context, scn scene.Scene, req animation.Request, path string) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.New(), Path: path}
	if req.Object != nil {
		res.Object = req.Object.Name()
	}

	ctx, span := e.tracer.Start(ctx, "export", trace.WithAttributes(
		attribute.String("run_id", res.RunID.String()),
		attribute.String("object", res.Object),
		attribute.String("type", string(req.Type)),
		attribute.Int("id", req.ID),
		attribute.String("path", path),
	))
	defer span.End()

	err := e.export(ctx, scn, req, &res)
	res.Duration = time.Since(start)

	e.mu.Lock()
	profiling := e.profilingEnabled
	e.mu.Unlock()
	if profiling {
		e.profiler.Record(res.Frames, res.Bytes, res.Duration, err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("export failed", "run_id", res.RunID, "object", res.Object, "path", path, "error", err)
		return res, err
	}

	span.SetAttributes(attribute.Int("frames", res.Frames), attribute.Int("bytes", res.Bytes))
	e.logger.Info("export finished",
		"run_id", res.RunID,
		"object", res.Object,
		"path", path,
		"frames", res.Frames,
		"bytes", res.Bytes,
		"duration", res.Duration,
	)
	return res, nil
}

// export runs the pipeline steps, each in its own span.
func (e *engine) export(ctx context.Context, scn scene.Scene, req animation.Request, res *Result) error {
	if !req.Type.Supported() {
		_, err := req.Type.Tag()
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if scn == nil {
		return fmt.Errorf("%w: scene is nil", animation.ErrInvalidRequest)
	}

	_, sampleSpan := e.tracer.Start(ctx, "sample")
	frames, err := e.sampler.Sample(scn, req.Object, req.Type, req.FrameRange)
	endSpan(sampleSpan, err)
	if err != nil {
		return fmt.Errorf("sampling %q: %w", res.Object, err)
	}

	_, serializeSpan := e.tracer.Start(ctx, "serialize")
	data, err := e.serializer.Serialize(req, frames)
	endSpan(serializeSpan, err)
	if err != nil {
		return fmt.Errorf("serializing %q: %w", res.Object, err)
	}

	_, writeSpan := e.tracer.Start(ctx, "write")
	err = e.serializer.WriteFile(res.Path, data)
	endSpan(writeSpan, err)
	if err != nil {
		return err
	}

	res.Frames = len(frames)
	res.Bytes = len(data)
	return nil
}

func (e *engine) ExportBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	ctx, span := e.tracer.Start(ctx, "batch", trace.WithAttributes(attribute.Int("jobs", len(jobs))))
	defer span.End()

	pool, err := e.workerPool()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: job,
			Do: func() (any, error) {
				defer wg.Done()

				if err := ctx.Err(); err != nil {
					results[i] = Result{Path: job.Path, Err: err}
					return nil, err
				}

				res, err := e.Export(ctx, job.Scene, job.Request, job.Path)
				res.Err = err
				results[i] = res
				return res, err
			},
		})
	}
	wg.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Path, res.Err))
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d exports failed", len(errs), len(jobs)))
		return results, err
	}
	return results, nil
}

func (e *engine) Handle(ctx context.Context, cmd ExportCommand) (Result, error) {
	scn, req, path, err := cmd.Resolve()
	if err != nil {
		e.logger.Error("export command rejected", "object", cmd.Object, "error", err)
		return Result{Object: cmd.Object, Path: cmd.Output}, err
	}
	return e.Export(ctx, scn, req, path)
}

func (e *engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true

	if e.pool != nil {
		e.pool.Stop()
	}
	if e.profilingEnabled {
		e.profiler.Flush()
	}
}

// workerPool lazily creates the batch worker pool.
func (e *engine) workerPool() (worker.DynamicWorkerPool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, errEngineClosed
	}
	e.poolOnce.Do(func() {
		e.pool = worker.NewDynamicWorkerPool(e.workers, 256, 1*time.Second)
	})
	return e.pool, nil
}

var errEngineClosed = errors.New("engine is closed")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
