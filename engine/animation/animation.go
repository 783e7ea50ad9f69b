// Package animation holds the data model shared by the sampler and the serializer: what is requested, what is
// sampled and what is written out.
package animation

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
)

// PlaceholderName is written in the name slot of a document whose request carries no name.
// Downstream pipelines look for this literal and rename the animation.
const PlaceholderName = "remove this slot"

// AnimationType identifies which kind of animation a request exports.
type AnimationType string

const (
	// TypeTransform exports translation, rotation and scale snapshots.
	TypeTransform AnimationType = "TRANSFORM"
)

// ParseAnimationType converts a case-insensitive string into an AnimationType.
// Unknown values are kept as-is so they can be rejected with ErrUnsupportedAnimationType by the pipeline.
func ParseAnimationType(s string) AnimationType {
	return AnimationType(strings.ToUpper(strings.TrimSpace(s)))
}

// Supported reports whether the exporter can handle this type.
func (t AnimationType) Supported() bool {
	return t == TypeTransform
}

// Tag returns the document type tag for t.
//
// Returns:
//   - string: the lowercase tag written in the document's "type" field
//   - error: ErrUnsupportedAnimationType when t has no tag
func (t AnimationType) Tag() (string, error) {
	switch t {
	case TypeTransform:
		return "transform", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAnimationType, string(t))
}

// FrameRange limits an export to the keyed frames between Start and End, both inclusive.
type FrameRange struct {
	Start int `validate:"min=0"`
	End   int `validate:"gtefield=Start"`
}

// Contains reports whether frame lies within the range.
func (r FrameRange) Contains(frame int) bool {
	return frame >= r.Start && frame <= r.End
}

// Request describes one export. It is not modified by the pipeline.
type Request struct {
	// Object is the animated entity to sample.
	Object game_object.GameObject `validate:"required"`

	// Type selects the kind of animation; only TypeTransform is supported.
	Type AnimationType `validate:"required"`

	// ID is the identifier the consuming runtime uses to reference the animation.
	ID int `validate:"min=0"`

	// Looping tells the runtime to restart the animation when it reaches the last frame.
	Looping bool

	// ResetWhenDone tells the runtime to restore the rest pose after the last frame.
	ResetWhenDone bool

	// Name is the animation name. Empty means PlaceholderName.
	Name string

	// FrameRange optionally restricts which keyed frames are exported.
	FrameRange *FrameRange
}

// DocumentName returns the name written into the document.
func (r Request) DocumentName() string {
	return common.Coalesce(r.Name, PlaceholderName)
}

// Vec3 is a 3-vector that marshals every component as a plain decimal literal.
type Vec3 [3]float64

// MarshalJSON writes the vector as a JSON array of decimal literals, never in scientific notation.
func (v Vec3) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range v {
		if !common.IsFinite(c) {
			return nil, fmt.Errorf("%w: non-finite component %v", ErrEncoding, c)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(common.FormatDecimal(c, -1))
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// FrameSample is the transform of one object at one frame. Fields are declared in the order
// they appear in the document.
type FrameSample struct {
	FrameIndex  int  `json:"frameIndex"`
	Rotation    Vec3 `json:"rotation"`
	Scale       Vec3 `json:"scale"`
	Translation Vec3 `json:"translation"`
}

// NewFrameSample builds a sample from a transform read back at frame.
func NewFrameSample(frame int, t model.Transform) FrameSample {
	return FrameSample{
		FrameIndex:  frame,
		Rotation:    t.Rotation,
		Scale:       t.Scale,
		Translation: t.Translation,
	}
}

// Get returns the component addressed by path.
func (s FrameSample) Get(path model.ChannelPath) Vec3 {
	switch path {
	case model.PathTranslation:
		return s.Translation
	case model.PathRotation:
		return s.Rotation
	case model.PathScale:
		return s.Scale
	}
	return Vec3{}
}

// Command is an entry of the reserved commands list. Documents always carry an empty list.
type Command map[string]any

// Document is the exported aggregate. Fields are declared in lexicographic key order so the
// encoded document is canonical.
type Document struct {
	Commands      []Command     `json:"commands"`
	Frames        []FrameSample `json:"frames"`
	ID            int           `json:"id"`
	Looping       bool          `json:"looping"`
	Name          string        `json:"name"`
	ResetWhenDone bool          `json:"resetWhenDone"`
	Type          string        `json:"type"`
}
