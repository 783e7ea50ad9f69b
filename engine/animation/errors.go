package animation

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
)

var (
	// ErrUnsupportedAnimationType is returned when a request asks for a type the exporter does not handle.
	ErrUnsupportedAnimationType = errors.New("unsupported animation type")
	// ErrNoKeyframesFound is returned when the object has no transform keys in the requested range.
	ErrNoKeyframesFound = errors.New("no keyframes found")
	// ErrEncoding is returned when a sampled value cannot be written as a decimal literal.
	ErrEncoding = errors.New("encoding error")
	// ErrFileWrite is returned when the serialized document cannot be written to its destination.
	ErrFileWrite = errors.New("file write error")
	// ErrInvalidRequest is returned when a request fails validation.
	ErrInvalidRequest = errors.New("invalid animation request")
	// ErrObjectNotFound is returned when a named object does not exist in the scene.
	ErrObjectNotFound = errors.New("object not found")
)

var axisNames = [3]string{"x", "y", "z"}

// EncodingError reports a value that cannot be written together with where it was found.
// Channel is empty when the frame index itself is invalid.
type EncodingError struct {
	FrameIndex int
	Channel    model.ChannelPath
	Axis       string
	Value      float64
}

// NewEncodingError builds an EncodingError for component axis (0, 1 or 2) of channel at frame.
func NewEncodingError(frame int, channel model.ChannelPath, axis int, value float64) *EncodingError {
	name := fmt.Sprint(axis)
	if axis >= 0 && axis < len(axisNames) {
		name = axisNames[axis]
	}
	return &EncodingError{FrameIndex: frame, Channel: channel, Axis: name, Value: value}
}

// NewFrameIndexError builds an EncodingError for a negative frame index.
func NewFrameIndexError(frame int) *EncodingError {
	return &EncodingError{FrameIndex: frame, Value: float64(frame)}
}

func (e *EncodingError) Error() string {
	if e.Channel == "" {
		return fmt.Sprintf("encoding error: frame index %d is negative", e.FrameIndex)
	}
	return fmt.Sprintf("encoding error: frame %d %s.%s is %v", e.FrameIndex, e.Channel, e.Axis, e.Value)
}

func (e *EncodingError) Unwrap() error {
	return ErrEncoding
}

// FileWriteError reports a failure to open, write or close the destination file.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("file write error: %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() []error {
	return []error{ErrFileWrite, e.Err}
}
