package game_object

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
)

type gameObject struct {
	mu       sync.RWMutex
	id       uint64
	name     string
	parent   GameObject
	rest     model.Transform
	channels map[model.ChannelPath]*model.Channel
}

// GameObject defines the interface for an animated scene entity.
// A GameObject carries a rest pose and at most one keyframe channel per transform property.
// Properties without a channel evaluate to the rest pose.
type GameObject interface {
	// ID returns the object's unique identifier within its scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Parent returns the object this one is attached to, or nil for a root object.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Rest returns the rest pose used for properties without a channel.
	//
	// Returns:
	//   - model.Transform: the rest pose
	Rest() model.Transform

	// Channel returns the channel animating path, or nil if the property is not animated.
	//
	// Parameters:
	//   - path: the transform property
	//
	// Returns:
	//   - *model.Channel: the channel or nil
	Channel(path model.ChannelPath) *model.Channel

	// Channels returns every channel of the object ordered translation, rotation, scale.
	//
	// Returns:
	//   - []*model.Channel: the object's channels
	Channels() []*model.Channel

	// KeyedFrames returns the sorted, duplicate-free union of the key frames of all channels.
	//
	// Returns:
	//   - []int: the keyed frames in ascending order
	KeyedFrames() []int

	// EvaluateAt returns the local transform of the object at frame.
	//
	// Parameters:
	//   - frame: the timeline position
	//
	// Returns:
	//   - model.Transform: the local transform
	EvaluateAt(frame int) model.Transform

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetParent attaches the object to a parent. Pass nil to detach.
	//
	// Parameters:
	//   - parent: the new parent
	SetParent(parent GameObject)

	// SetChannel installs a channel, replacing any existing channel for the same path.
	//
	// Parameters:
	//   - ch: the channel to install
	SetChannel(ch *model.Channel)

	// AddKey inserts a key into the channel for path, creating a LINEAR channel when none exists.
	//
	// Parameters:
	//   - path: the transform property
	//   - frame: the key frame
	//   - value: the key value
	AddKey(path model.ChannelPath, frame int, value [3]float64)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		rest:     model.IdentityTransform(),
		channels: make(map[model.ChannelPath]*model.Channel),
	}
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Parent() GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.parent
}

func (g *gameObject) Rest() model.Transform {
	return g.rest
}

func (g *gameObject) Channel(path model.ChannelPath) *model.Channel {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.channels[path]
}

func (g *gameObject) Channels() []*model.Channel {
	g.mu.RLock()
	defer g.mu.RUnlock()

	channels := make([]*model.Channel, 0, len(g.channels))
	for _, path := range model.ChannelPaths {
		if ch, ok := g.channels[path]; ok {
			channels = append(channels, ch)
		}
	}
	return channels
}

func (g *gameObject) KeyedFrames() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	seen := make(map[int]struct{})
	for _, ch := range g.channels {
		for _, k := range ch.Keys {
			seen[k.Frame] = struct{}{}
		}
	}

	frames := make([]int, 0, len(seen))
	for f := range seen {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

func (g *gameObject) EvaluateAt(frame int) model.Transform {
	g.mu.RLock()
	defer g.mu.RUnlock()

	t := g.rest
	for path, ch := range g.channels {
		if v, ok := ch.Evaluate(frame); ok {
			t.Set(path, v)
		}
	}
	return t
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetParent(parent GameObject) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.parent = parent
}

func (g *gameObject) SetChannel(ch *model.Channel) {
	if ch == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.channels[ch.Path] = ch
}

func (g *gameObject) AddKey(path model.ChannelPath, frame int, value [3]float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch, ok := g.channels[path]
	if !ok {
		ch = model.NewChannel(path, model.InterpolationLinear)
		g.channels[path] = ch
	}
	ch.AddKey(frame, value)
}
