package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	parser gltfParser
}

// gltfAnimationExtractor defines the interface for extracting animation data from a parsed glTF document.
// It converts glTF animation channels into keyframe channels on the GameObjects built from the node hierarchy.
//
// Key times in seconds become integer frames with round(t * fps); keys that land on the same frame
// collapse, the later one winning. Rotation quaternions become Euler XYZ degrees and interpolated
// rotation channels are slerped between keys.
type gltfAnimationExtractor interface {
	// FindAnimation resolves an animation by name. An empty name selects the first animation.
	//
	// Parameters:
	//   - name: the animation name, or "" for index 0
	//
	// Returns:
	//   - int: the animation index, or -1 when the document has no animations and name is empty
	//   - error: error if a named animation does not exist
	FindAnimation(name string) (int, error)

	// ExtractAnimation installs the channels of one animation onto objects.
	//
	// Parameters:
	//   - animIndex: the index of the animation in the document
	//   - objects: GameObjects indexed by glTF node index
	//   - fps: frames per second used to convert key times to frames
	//
	// Returns:
	//   - string: the animation name
	//   - error: error if extraction fails
	ExtractAnimation(animIndex int, objects []game_object.GameObject, fps float64) (string, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

// newGLTFAnimationExtractor creates a new animation extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfAnimationExtractor: the animation extractor
func newGLTFAnimationExtractor(parser gltfParser) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{parser: parser}
}

func (e *gltfAnimationExtractorImpl) FindAnimation(name string) (int, error) {
	doc := e.parser.Document()
	if doc == nil {
		return -1, fmt.Errorf("no document loaded")
	}

	if name == "" {
		if len(doc.Animations) == 0 {
			return -1, nil
		}
		return 0, nil
	}

	for i, anim := range doc.Animations {
		if anim.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("animation %q not found", name)
}

func (e *gltfAnimationExtractorImpl) ExtractAnimation(animIndex int, objects []game_object.GameObject, fps float64) (string, error) {
	doc := e.parser.Document()
	if doc == nil {
		return "", fmt.Errorf("no document loaded")
	}
	if animIndex < 0 || animIndex >= len(doc.Animations) {
		return "", fmt.Errorf("animation index %d out of range", animIndex)
	}
	if fps <= 0 {
		return "", fmt.Errorf("invalid fps %v", fps)
	}

	anim := &doc.Animations[animIndex]
	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", animIndex)
	}

	for i := range anim.Channels {
		ch := &anim.Channels[i]

		// Skip channels with no target node (e.g. extension targets)
		if ch.Target.Node == nil {
			continue
		}
		nodeIndex := *ch.Target.Node
		if nodeIndex < 0 || nodeIndex >= len(objects) {
			return "", fmt.Errorf("animation %q channel %d: invalid node index %d", name, i, nodeIndex)
		}

		var path model.ChannelPath
		switch ch.Target.Path {
		case gltfAnimPathTranslation:
			path = model.PathTranslation
		case gltfAnimPathRotation:
			path = model.PathRotation
		case gltfAnimPathScale:
			path = model.PathScale
		case gltfAnimPathWeights:
			// Morph target weights are not transform data; skip
			continue
		default:
			continue
		}

		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			return "", fmt.Errorf("animation %q channel %d: invalid sampler index %d", name, i, ch.Sampler)
		}
		sampler := &anim.Samplers[ch.Sampler]

		channel, err := e.extractChannel(sampler, path, fps)
		if err != nil {
			return "", fmt.Errorf("animation %q channel %d: %w", name, i, err)
		}
		objects[nodeIndex].SetChannel(channel)
	}

	return name, nil
}

// extractChannel reads one sampler into a model.Channel.
func (e *gltfAnimationExtractorImpl) extractChannel(sampler *gltfAnimationSampler, path model.ChannelPath, fps float64) (*model.Channel, error) {
	timestamps, err := e.parser.ReadScalarAccessor(sampler.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamps: %w", err)
	}

	values, err := e.parser.ReadFloatAccessor(sampler.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s values: %w", path, err)
	}

	interpolation := model.InterpolationLinear
	// CUBICSPLINE stores (in-tangent, value, out-tangent) per key; only the value is kept
	stride, offset := 1, 0
	switch sampler.Interpolation {
	case gltfInterpolationStep:
		interpolation = model.InterpolationStep
	case gltfInterpolationCubicSpline:
		stride, offset = 3, 1
	case "", gltfInterpolationLinear:
	default:
		return nil, fmt.Errorf("unsupported interpolation %q", sampler.Interpolation)
	}

	width := 3
	if path == model.PathRotation {
		width = 4
		if interpolation == model.InterpolationLinear {
			interpolation = model.InterpolationSpherical
		}
	}

	channel := model.NewChannel(path, interpolation)
	for j, t := range timestamps {
		idx := j*stride + offset
		if idx >= len(values) {
			break
		}
		v := values[idx]
		if len(v) != width {
			return nil, fmt.Errorf("expected %d components for %s, got %d", width, path, len(v))
		}

		var value [3]float64
		if path == model.PathRotation {
			value = common.QuatToEuler([4]float64{v[0], v[1], v[2], v[3]})
		} else {
			value = [3]float64{v[0], v[1], v[2]}
		}
		frame := TimeToFrame(t, fps)
		if frame < 0 {
			return nil, fmt.Errorf("key time %g maps to negative frame %d", t, frame)
		}
		channel.AddKey(frame, value)
	}

	return channel, nil
}

// TimeToFrame converts a key time in seconds into the nearest integer frame.
//
// Parameters:
//   - seconds: the key time
//   - fps: frames per second
//
// Returns:
//   - int: the frame index
func TimeToFrame(seconds, fps float64) int {
	return int(math.Round(seconds * fps))
}
