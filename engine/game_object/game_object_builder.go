package game_object

import (
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the name of the GameObject.
//
// Parameters:
//   - name: the object name used for lookups and logging
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithParent attaches the GameObject to a parent object.
//
// Parameters:
//   - parent: the parent object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(parent GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.parent = parent
	}
}

// WithPosition sets the rest translation of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rest translation
func WithPosition(x, y, z float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rest.Translation = [3]float64{x, y, z}
	}
}

// WithScale sets the rest scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rest scale
func WithScale(sx, sy, sz float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rest.Scale = [3]float64{sx, sy, sz}
	}
}

// WithRotation sets the rest rotation of the GameObject in Euler degrees.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle
//   - rz: the z rotation angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rest rotation
func WithRotation(rx, ry, rz float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rest.Rotation = [3]float64{rx, ry, rz}
	}
}

// WithChannel installs a keyframe channel on the GameObject.
//
// Parameters:
//   - ch: the channel to install; nil is ignored
//
// Returns:
//   - GameObjectBuilderOption: functional option to add the channel
func WithChannel(ch *model.Channel) GameObjectBuilderOption {
	return func(obj *gameObject) {
		if ch != nil {
			obj.channels[ch.Path] = ch
		}
	}
}
