package sampler

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/animation"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
)

// Sampler turns an object's authored keyframes into an ordered sequence of transform snapshots.
// It samples exactly the frames that carry a key on any transform channel: no interpolation
// and no fixed-rate resampling. The coordinate space and up axis are fixed when the Sampler is built.
type Sampler interface {
	// Sample reads obj's transform at every keyed frame.
	//
	// The cursor of scn is held exclusively for the duration of the call and restored to its
	// original frame before returning, whether sampling succeeds or fails.
	//
	// Parameters:
	//   - scn: the scene that owns obj and its evaluation cursor
	//   - obj: the object to sample
	//   - animType: the requested animation type; only animation.TypeTransform is supported
	//   - frameRange: optional inclusive range restricting the keyed frames, or nil for all
	//
	// Returns:
	//   - []animation.FrameSample: samples with strictly increasing FrameIndex
	//   - error: animation.ErrUnsupportedAnimationType, animation.ErrNoKeyframesFound, or
	//     animation.ErrInvalidRequest for a missing scene or object or a key before frame 0
	Sample(scn scene.Scene, obj game_object.GameObject, animType animation.AnimationType, frameRange *animation.FrameRange) ([]animation.FrameSample, error)

	// KeyedFrames returns the frames Sample would visit for obj, before range filtering.
	// In world space the keyed frames of every ancestor are included.
	//
	// Parameters:
	//   - obj: the object to inspect
	//
	// Returns:
	//   - []int: ascending, duplicate-free frames
	KeyedFrames(obj game_object.GameObject) []int

	// Space returns the coordinate space transforms are read in.
	Space() common.Space

	// UpAxis returns the up axis of the source scene.
	UpAxis() common.UpAxis
}

type sampler struct {
	space  common.Space
	upAxis common.UpAxis
	logger *slog.Logger
}

var _ Sampler = &sampler{}

// NewSampler creates a Sampler. Defaults: local space, Y-up source, slog.Default() logger.
//
// Parameters:
//   - options: functional options to configure the sampler
//
// Returns:
//   - Sampler: the configured sampler
func NewSampler(options ...SamplerBuilderOption) Sampler {
	s := &sampler{
		space:  common.SpaceLocal,
		upAxis: common.UpAxisY,
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *sampler) Space() common.Space {
	return s.space
}

func (s *sampler) UpAxis() common.UpAxis {
	return s.upAxis
}

func (s *sampler) Sample(scn scene.Scene, obj game_object.GameObject, animType animation.AnimationType, frameRange *animation.FrameRange) ([]animation.FrameSample, error) {
	if !animType.Supported() {
		return nil, fmt.Errorf("%w: %q", animation.ErrUnsupportedAnimationType, string(animType))
	}
	if scn == nil || obj == nil {
		return nil, fmt.Errorf("%w: scene and object are required", animation.ErrInvalidRequest)
	}

	frames := s.KeyedFrames(obj)
	if frameRange != nil {
		frames = slices.DeleteFunc(frames, func(f int) bool { return !frameRange.Contains(f) })
	}
	if len(frames) > 0 && frames[0] < 0 {
		return nil, fmt.Errorf("%w: object %q is keyed at negative frame %d", animation.ErrInvalidRequest, obj.Name(), frames[0])
	}
	if len(frames) == 0 {
		if frameRange != nil {
			return nil, fmt.Errorf("%w: object %q has no transform keys in frames %d-%d",
				animation.ErrNoKeyframesFound, obj.Name(), frameRange.Start, frameRange.End)
		}
		return nil, fmt.Errorf("%w: object %q has no transform keys", animation.ErrNoKeyframesFound, obj.Name())
	}

	ctx := AcquireEvaluationContext(scn)
	defer ctx.Release()

	samples := make([]animation.FrameSample, 0, len(frames))
	for _, frame := range frames {
		ctx.Seek(frame)
		samples = append(samples, animation.NewFrameSample(frame, s.read(scn, obj)))
	}

	s.logger.Debug("sampled object",
		"object", obj.Name(),
		"frames", len(samples),
		"first", frames[0],
		"last", frames[len(frames)-1],
		"restored", ctx.SavedFrame(),
		"space", s.space,
		"up_axis", s.upAxis,
	)

	return samples, nil
}

func (s *sampler) KeyedFrames(obj game_object.GameObject) []int {
	frames := obj.KeyedFrames()
	if s.space == common.SpaceWorld {
		for p := obj.Parent(); p != nil; p = p.Parent() {
			frames = append(frames, p.KeyedFrames()...)
		}
	}
	slices.Sort(frames)
	return slices.Compact(frames)
}

// read returns obj's transform at the scene cursor in the configured space, converted to Y-up.
func (s *sampler) read(scn scene.Scene, obj game_object.GameObject) model.Transform {
	var t model.Transform
	if s.space == common.SpaceWorld {
		t = scn.WorldTransform(obj)
	} else {
		t = scn.LocalTransform(obj)
	}

	if s.upAxis == common.UpAxisZ {
		t.Translation, t.Rotation, t.Scale = common.ZUpToYUp(t.Translation, t.Rotation, t.Scale)
	}
	return t
}
