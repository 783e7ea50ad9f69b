package animation

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimationTypeTag(t *testing.T) {
	tag, err := TypeTransform.Tag()
	require.NoError(t, err)
	assert.Equal(t, "transform", tag)

	tag, err = AnimationType("ROTATION_ONLY").Tag()
	assert.ErrorIs(t, err, ErrUnsupportedAnimationType)
	assert.Empty(t, tag)

	assert.Equal(t, TypeTransform, ParseAnimationType(" transform "))
	assert.False(t, ParseAnimationType("rotation_only").Supported())
}

func TestRequestValidate(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithName("cube"))

	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{name: "valid", req: Request{Object: obj, Type: TypeTransform}},
		{name: "valid with range", req: Request{Object: obj, Type: TypeTransform, FrameRange: &FrameRange{Start: 2, End: 2}}},
		{name: "missing object", req: Request{Type: TypeTransform}, wantErr: "Object: required"},
		{name: "missing type", req: Request{Object: obj}, wantErr: "Request.Type: required"},
		{name: "negative id", req: Request{Object: obj, Type: TypeTransform, ID: -1}, wantErr: "Request.ID: min"},
		{name: "inverted range", req: Request{Object: obj, Type: TypeTransform, FrameRange: &FrameRange{Start: 5, End: 1}}, wantErr: "Request.FrameRange.End: gtefield"},
		{name: "negative range start", req: Request{Object: obj, Type: TypeTransform, FrameRange: &FrameRange{Start: -1, End: 1}}, wantErr: "Request.FrameRange.Start: min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequestDocumentName(t *testing.T) {
	assert.Equal(t, PlaceholderName, Request{}.DocumentName())
	assert.Equal(t, "walk", Request{Name: "walk"}.DocumentName())
}

func TestFrameRangeContains(t *testing.T) {
	r := FrameRange{Start: 5, End: 10}
	assert.True(t, r.Contains(5))
	assert.True(t, r.Contains(10))
	assert.False(t, r.Contains(4))
	assert.False(t, r.Contains(11))
}

func TestVec3MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Vec3{1, -0.5, 1e-7})
	require.NoError(t, err)
	assert.Equal(t, `[1.0,-0.5,0.0000001]`, string(data))

	_, err = json.Marshal(Vec3{math.NaN(), 0, 0})
	assert.Error(t, err)
}

func TestNewFrameSample(t *testing.T) {
	tr := model.Transform{
		Translation: [3]float64{1, 2, 3},
		Rotation:    [3]float64{0, 90, 0},
		Scale:       [3]float64{1, 1, 1},
	}
	s := NewFrameSample(12, tr)

	assert.Equal(t, 12, s.FrameIndex)
	assert.Equal(t, Vec3{1, 2, 3}, s.Get(model.PathTranslation))
	assert.Equal(t, Vec3{0, 90, 0}, s.Get(model.PathRotation))
	assert.Equal(t, Vec3{1, 1, 1}, s.Get(model.PathScale))
}

func TestEncodingError(t *testing.T) {
	err := error(NewEncodingError(24, model.PathRotation, 1, math.Inf(1)))

	assert.ErrorIs(t, err, ErrEncoding)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 24, encErr.FrameIndex)
	assert.Equal(t, model.PathRotation, encErr.Channel)
	assert.Equal(t, "y", encErr.Axis)
	assert.Contains(t, err.Error(), "frame 24 rotation.y")
}

func TestFileWriteError(t *testing.T) {
	err := error(&FileWriteError{Path: "out.json", Err: os.ErrPermission})

	assert.ErrorIs(t, err, ErrFileWrite)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.True(t, errors.Is(err, ErrFileWrite))
	assert.Contains(t, err.Error(), "out.json")
}
