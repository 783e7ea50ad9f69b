package model

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
)

// Channel holds the keyframes of one transform property. Keys are kept sorted by frame
// and no two keys share a frame.
type Channel struct {
	// Path is the transform property this channel animates.
	Path ChannelPath

	// Interpolation is the curve mode between keys.
	Interpolation Interpolation

	// Keys are the keyframes, ascending by frame.
	Keys []Keyframe
}

// NewChannel creates an empty channel for the given property.
//
// Parameters:
//   - path: the transform property to animate
//   - interpolation: the curve mode between keys
//
// Returns:
//   - *Channel: the new channel
func NewChannel(path ChannelPath, interpolation Interpolation) *Channel {
	return &Channel{
		Path:          path,
		Interpolation: common.Coalesce(interpolation, InterpolationLinear),
	}
}

// AddKey inserts a key, replacing any existing key at the same frame.
func (c *Channel) AddKey(frame int, value [3]float64) {
	i := sort.Search(len(c.Keys), func(i int) bool { return c.Keys[i].Frame >= frame })
	if i < len(c.Keys) && c.Keys[i].Frame == frame {
		c.Keys[i].Value = value
		return
	}
	c.Keys = append(c.Keys, Keyframe{})
	copy(c.Keys[i+1:], c.Keys[i:])
	c.Keys[i] = Keyframe{Frame: frame, Value: value}
}

// Frames returns the frames of every key in ascending order.
func (c *Channel) Frames() []int {
	frames := make([]int, len(c.Keys))
	for i, k := range c.Keys {
		frames[i] = k.Frame
	}
	return frames
}

// Evaluate returns the channel value at frame. Before the first key the first value holds,
// after the last key the last value holds. The boolean is false when the channel has no keys.
//
// Parameters:
//   - frame: the timeline position to evaluate
//
// Returns:
//   - [3]float64: the evaluated value
//   - bool: whether the channel has any key
func (c *Channel) Evaluate(frame int) ([3]float64, bool) {
	if len(c.Keys) == 0 {
		return [3]float64{}, false
	}

	first, last := c.Keys[0], c.Keys[len(c.Keys)-1]
	if frame <= first.Frame {
		return first.Value, true
	}
	if frame >= last.Frame {
		return last.Value, true
	}

	// first index with Frame > frame; bounded by the checks above
	i := sort.Search(len(c.Keys), func(i int) bool { return c.Keys[i].Frame > frame })
	prev, next := c.Keys[i-1], c.Keys[i]
	if prev.Frame == frame || c.Interpolation == InterpolationStep {
		return prev.Value, true
	}

	t := float64(frame-prev.Frame) / float64(next.Frame-prev.Frame)
	if c.Interpolation == InterpolationSpherical && c.Path == PathRotation {
		return common.SlerpEuler(prev.Value, next.Value, t), true
	}
	return common.Lerp3(prev.Value, next.Value, t), true
}
