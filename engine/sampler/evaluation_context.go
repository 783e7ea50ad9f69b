package sampler

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
)

// EvaluationContext is exclusive, scoped use of a scene's evaluation cursor.
// Acquiring it takes the scene's cursor lock and remembers the current frame; Release moves the
// cursor back and unlocks. Callers defer Release immediately after acquiring.
type EvaluationContext interface {
	// Seek moves the scene cursor to frame.
	//
	// Parameters:
	//   - frame: the frame to evaluate at
	Seek(frame int)

	// Frame returns the frame the cursor currently points at.
	//
	// Returns:
	//   - int: the current cursor frame
	Frame() int

	// SavedFrame returns the cursor position captured at acquisition, restored on Release.
	//
	// Returns:
	//   - int: the original cursor frame
	SavedFrame() int

	// Release restores the original cursor frame and unlocks the cursor.
	// Calling Release more than once has no further effect.
	Release()
}

type evaluationContext struct {
	scn   scene.Scene
	lock  sync.Locker
	saved int
	once  sync.Once
}

var _ EvaluationContext = &evaluationContext{}

// AcquireEvaluationContext blocks until the scene cursor is free, then returns a context holding it.
//
// Parameters:
//   - scn: the scene whose cursor is acquired
//
// Returns:
//   - EvaluationContext: the held context; the caller must Release it
func AcquireEvaluationContext(scn scene.Scene) EvaluationContext {
	lock := scn.CursorLock()
	lock.Lock()
	return &evaluationContext{
		scn:   scn,
		lock:  lock,
		saved: scn.CurrentFrame(),
	}
}

func (c *evaluationContext) Seek(frame int) {
	c.scn.SetCurrentFrame(frame)
}

func (c *evaluationContext) Frame() int {
	return c.scn.CurrentFrame()
}

func (c *evaluationContext) SavedFrame() int {
	return c.saved
}

func (c *evaluationContext) Release() {
	c.once.Do(func() {
		c.scn.SetCurrentFrame(c.saved)
		c.lock.Unlock()
	})
}
