package scene

import (
	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithFPS sets the scene frame rate. Non-positive values are ignored and DefaultFPS is kept.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFPS(fps float64) SceneBuilderOption {
	return func(s *scene) {
		if fps > 0 {
			s.fps = fps
		}
	}
}

// WithCurrentFrame sets the initial position of the evaluation cursor.
//
// Parameters:
//   - frame: the initial cursor frame
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCurrentFrame(frame int) SceneBuilderOption {
	return func(s *scene) {
		s.frame = frame
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}
