package loader

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFPS is an option builder that sets the frame rate used to convert glTF key times to frames.
// YAML scenes that declare their own fps keep it. Non-positive values are ignored.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - LoaderBuilderOption: a function that applies the fps option to a loader
func WithFPS(fps float64) LoaderBuilderOption {
	return func(l *loader) {
		if fps > 0 {
			l.fps = fps
		}
	}
}

// WithAnimationName is an option builder that selects which glTF animation is imported.
//
// Parameters:
//   - name: the animation name; "" selects the first animation
//
// Returns:
//   - LoaderBuilderOption: a function that applies the animation option to a loader
func WithAnimationName(name string) LoaderBuilderOption {
	return func(l *loader) {
		l.animationName = name
	}
}

// WithLogger is an option builder that sets the structured logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithScene is an option builder that pre-populates the scene cache.
//
// Parameters:
//   - key: the cache key for the scene
//   - scn: the scene to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the scene option to a loader
func WithScene(key string, scn scene.Scene) LoaderBuilderOption {
	return func(l *loader) {
		l.sceneCache[key] = scn
	}
}
