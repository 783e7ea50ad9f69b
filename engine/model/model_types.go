package model

import (
	"fmt"
	"strings"
)

// --- Transform Types ---

// Transform represents a decomposed transform as read back from the scene.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float64

	// Rotation is the orientation as Euler angles in degrees, applied X then Y then Z.
	Rotation [3]float64

	// Scale is the scale factor along each axis.
	Scale [3]float64
}

// IdentityTransform returns the rest transform: no translation, no rotation, unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: [3]float64{1, 1, 1}}
}

// Get returns the component of the transform addressed by path.
func (t Transform) Get(path ChannelPath) [3]float64 {
	switch path {
	case PathTranslation:
		return t.Translation
	case PathRotation:
		return t.Rotation
	case PathScale:
		return t.Scale
	}
	return [3]float64{}
}

// Set replaces the component of the transform addressed by path.
func (t *Transform) Set(path ChannelPath, value [3]float64) {
	switch path {
	case PathTranslation:
		t.Translation = value
	case PathRotation:
		t.Rotation = value
	case PathScale:
		t.Scale = value
	}
}

// --- Animation Types ---

// ChannelPath names the transform property a channel animates.
type ChannelPath string

const (
	PathTranslation ChannelPath = "translation"
	PathRotation    ChannelPath = "rotation"
	PathScale       ChannelPath = "scale"
)

// ChannelPaths lists every animatable transform property in a stable order.
var ChannelPaths = []ChannelPath{PathTranslation, PathRotation, PathScale}

// ParseChannelPath converts a case-insensitive string into a ChannelPath.
// "location" and "position" are accepted as aliases for translation.
func ParseChannelPath(s string) (ChannelPath, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translation", "location", "position":
		return PathTranslation, nil
	case "rotation", "rotation_euler":
		return PathRotation, nil
	case "scale":
		return PathScale, nil
	}
	return "", fmt.Errorf("unknown channel path %q", s)
}

// Interpolation is the curve mode used between two keys of a channel.
type Interpolation string

const (
	InterpolationLinear Interpolation = "LINEAR"
	InterpolationStep   Interpolation = "STEP"
	// InterpolationSpherical slerps rotation keys through their quaternions. Other paths treat it as LINEAR.
	InterpolationSpherical Interpolation = "SPHERICAL"
)

// ParseInterpolation converts a case-insensitive string into an Interpolation. The empty string maps to LINEAR.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(InterpolationLinear):
		return InterpolationLinear, nil
	case string(InterpolationStep), "CONSTANT":
		return InterpolationStep, nil
	case string(InterpolationSpherical), "SLERP":
		return InterpolationSpherical, nil
	}
	return "", fmt.Errorf("unknown interpolation %q", s)
}

// Keyframe stores a 3D vector value at an integer frame.
type Keyframe struct {
	// Frame is the keyframe position on the timeline.
	Frame int

	// Value is the 3D vector value at this keyframe.
	Value [3]float64
}
