package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/sampler"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/serializer"
	"go.opentelemetry.io/otel/trace"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables export statistics output.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithSampler sets the sampler, which fixes the space and axis convention of every export.
//
// Parameters:
//   - s: a configured Sampler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSampler(s sampler.Sampler) EngineBuilderOption {
	return func(e *engine) {
		e.sampler = s
	}
}

// WithSerializer sets the document serializer.
//
// Parameters:
//   - s: a configured Serializer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSerializer(s serializer.Serializer) EngineBuilderOption {
	return func(e *engine) {
		e.serializer = s
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithWorkers sets the number of batch export workers.
// Values <= 0 will be treated as the default (1).
//
// Parameters:
//   - n: maximum concurrent exports
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		if n <= 0 {
			n = 1
		}
		e.workers = n
	}
}

// WithTracer sets the tracer export spans are recorded with.
//
// Parameters:
//   - tracer: the tracer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTracer(tracer trace.Tracer) EngineBuilderOption {
	return func(e *engine) {
		e.tracer = tracer
	}
}
