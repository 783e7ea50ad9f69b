package engine

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/animation"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
)

// ExportCommand is the name-addressed form of an export, as issued from the CLI or a batch config.
// The zero value exports a looping TRANSFORM animation with id 0.
type ExportCommand struct {
	Scene         scene.Scene
	Object        string
	Output        string
	Type          string
	ID            int
	Name          string
	Looping       bool
	ResetWhenDone bool
	FrameStart    *int
	FrameEnd      *int
}

// Resolve looks up the command's object in its scene and builds the export request.
//
// Returns:
//   - scene.Scene: the scene to sample
//   - animation.Request: the request for the resolved object
//   - string: the output path
//   - error: animation.ErrInvalidRequest for a missing scene or output, animation.ErrObjectNotFound
//     when no object has the given name
func (c ExportCommand) Resolve() (scene.Scene, animation.Request, string, error) {
	if c.Scene == nil {
		return nil, animation.Request{}, "", fmt.Errorf("%w: no scene loaded", animation.ErrInvalidRequest)
	}
	if c.Output == "" {
		return nil, animation.Request{}, "", fmt.Errorf("%w: output path is required", animation.ErrInvalidRequest)
	}

	obj := c.Scene.Find(c.Object)
	if obj == nil {
		return nil, animation.Request{}, "", fmt.Errorf("%w: %q in scene %q", animation.ErrObjectNotFound, c.Object, c.Scene.Name())
	}

	req := animation.Request{
		Object:        obj,
		Type:          animation.ParseAnimationType(common.Coalesce(c.Type, string(animation.TypeTransform))),
		ID:            c.ID,
		Looping:       c.Looping,
		ResetWhenDone: c.ResetWhenDone,
		Name:          c.Name,
	}

	if c.FrameStart != nil || c.FrameEnd != nil {
		r := &animation.FrameRange{Start: 0, End: math.MaxInt}
		if c.FrameStart != nil {
			r.Start = *c.FrameStart
		}
		if c.FrameEnd != nil {
			r.End = *c.FrameEnd
		}
		req.FrameRange = r
	}

	return c.Scene, req, c.Output, nil
}
