package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFPS is the frame rate assumed when a scene does not declare one.
const DefaultFPS = 24.0

// Scene is the host scene graph: a registry of GameObjects and a single evaluation cursor.
// Transform readback always happens at the cursor. The cursor is shared by every reader, so
// code that moves it must hold CursorLock for the whole move-read-restore sequence.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// FPS returns the scene frame rate used to convert between seconds and frames.
	FPS() float64

	// Count returns the number of GameObjects in the scene's registry.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add registers a GameObject with the scene. Objects without an ID are assigned one.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Find retrieves the first GameObject, in insertion order, with the given name.
	// Returns nil if not found.
	//
	// Parameters:
	//   - name: the object name
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Find(name string) game_object.GameObject

	// Objects returns every registered GameObject in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: the registered objects
	Objects() []game_object.GameObject

	// Remove removes a GameObject from the registry by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the scene.
	Clear()

	// CurrentFrame returns the frame the evaluation cursor points at.
	//
	// Returns:
	//   - int: the current frame
	CurrentFrame() int

	// SetCurrentFrame moves the evaluation cursor. Callers that need a stable cursor across
	// several calls must hold CursorLock.
	//
	// Parameters:
	//   - frame: the new cursor position
	SetCurrentFrame(frame int)

	// CursorLock returns the lock that grants exclusive use of the evaluation cursor.
	//
	// Returns:
	//   - sync.Locker: the cursor lock
	CursorLock() sync.Locker

	// LocalTransform reads obj's transform relative to its parent at the cursor.
	//
	// Parameters:
	//   - obj: the object to read
	//
	// Returns:
	//   - model.Transform: the local transform
	LocalTransform(obj game_object.GameObject) model.Transform

	// WorldTransform reads obj's transform with the whole parent chain applied at the cursor.
	// The chain is composed as 4x4 matrices and decomposed back into translation, Euler
	// rotation and scale.
	//
	// Parameters:
	//   - obj: the object to read
	//
	// Returns:
	//   - model.Transform: the world transform
	WorldTransform(obj game_object.GameObject) model.Transform
}

type scene struct {
	mu *sync.RWMutex

	name string
	fps  float64

	registry map[uint64]game_object.GameObject
	order    []uint64
	nextID   uint64

	frame  int
	cursor sync.Mutex
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new, empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		fps:      DefaultFPS,
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) FPS() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fps
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers obj; the caller holds s.mu.
func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}

	id := obj.ID()
	if _, exists := s.registry[id]; !exists {
		s.order = append(s.order, id)
	}
	s.registry[id] = obj
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Find(name string) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if obj := s.registry[id]; obj.Name() == name {
			return obj
		}
	}
	return nil
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		objects = append(objects, s.registry[id])
	}
	return objects
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[id]; !ok {
		return
	}
	delete(s.registry, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.order = nil
}

func (s *scene) CurrentFrame() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

func (s *scene) SetCurrentFrame(frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
}

func (s *scene) CursorLock() sync.Locker {
	return &s.cursor
}

func (s *scene) LocalTransform(obj game_object.GameObject) model.Transform {
	return obj.EvaluateAt(s.CurrentFrame())
}

func (s *scene) WorldTransform(obj game_object.GameObject) model.Transform {
	frame := s.CurrentFrame()
	if obj.Parent() == nil {
		return obj.EvaluateAt(frame)
	}

	world := mgl64.Ident4()
	for cur := obj; cur != nil; cur = cur.Parent() {
		t := cur.EvaluateAt(frame)
		world = common.ComposeMatrix(t.Translation, t.Rotation, t.Scale).Mul4(world)
	}

	translation, rotation, scale := common.DecomposeMatrix(world)
	return model.Transform{Translation: translation, Rotation: rotation, Scale: scale}
}
