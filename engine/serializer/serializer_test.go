package serializer

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/animation"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goldenDocument = `{
    "commands": [],
    "frames": [
        {
            "frameIndex": 0,
            "rotation": [
                0.0,
                0.0,
                0.0
            ],
            "scale": [
                1.0,
                1.0,
                1.0
            ],
            "translation": [
                0.0,
                0.0,
                0.0
            ]
        },
        {
            "frameIndex": 24,
            "rotation": [
                0.0,
                -90.0,
                12.5
            ],
            "scale": [
                1.0,
                1.0,
                1.0
            ],
            "translation": [
                10.0,
                0.0,
                5.0
            ]
        }
    ],
    "id": 3,
    "looping": true,
    "name": "remove this slot",
    "resetWhenDone": false,
    "type": "transform"
}`

func scenarioFrames() []animation.FrameSample {
	return []animation.FrameSample{
		{FrameIndex: 0, Scale: animation.Vec3{1, 1, 1}},
		{FrameIndex: 24, Translation: animation.Vec3{10, 0, 5}, Rotation: animation.Vec3{0, -90, 12.5}, Scale: animation.Vec3{1, 1, 1}},
	}
}

func scenarioRequest() animation.Request {
	return animation.Request{
		Object:  game_object.NewGameObject(game_object.WithName("cube")),
		Type:    animation.TypeTransform,
		ID:      3,
		Looping: true,
	}
}

func TestSerializeGolden(t *testing.T) {
	data, err := NewSerializer().Serialize(scenarioRequest(), scenarioFrames())
	require.NoError(t, err)
	assert.Equal(t, goldenDocument, string(data))
}

func TestSerializeIsDeterministic(t *testing.T) {
	s := NewSerializer()
	first, err := s.Serialize(scenarioRequest(), scenarioFrames())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := s.Serialize(scenarioRequest(), scenarioFrames())
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, again))
	}
}

func TestSerializeWarnsOnPlaceholderName(t *testing.T) {
	var logs bytes.Buffer
	s := NewSerializer(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, err := s.Serialize(scenarioRequest(), scenarioFrames())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "level=WARN")

	logs.Reset()
	req := scenarioRequest()
	req.Name = "walk <fast> & loud"
	data, err := s.Serialize(req, scenarioFrames())
	require.NoError(t, err)
	assert.Empty(t, logs.String())
	assert.Contains(t, string(data), `"name": "walk <fast> & loud"`)
}

func TestSerializeEchoesRequestFlags(t *testing.T) {
	req := scenarioRequest()
	req.Looping = false
	req.ResetWhenDone = true
	req.ID = 0

	doc, err := NewSerializer().BuildDocument(req, scenarioFrames())
	require.NoError(t, err)
	assert.False(t, doc.Looping)
	assert.True(t, doc.ResetWhenDone)
	assert.Equal(t, 0, doc.ID)
	assert.NotNil(t, doc.Commands)
	assert.Empty(t, doc.Commands)
}

func TestSerializeUnsupportedType(t *testing.T) {
	req := scenarioRequest()
	req.Type = "ROTATION_ONLY"

	data, err := NewSerializer().Serialize(req, scenarioFrames())
	assert.ErrorIs(t, err, animation.ErrUnsupportedAnimationType)
	assert.Nil(t, data)
}

func TestSerializeNonFiniteValue(t *testing.T) {
	frames := scenarioFrames()
	frames[1].Rotation[2] = math.NaN()

	_, err := NewSerializer().Serialize(scenarioRequest(), frames)
	require.ErrorIs(t, err, animation.ErrEncoding)

	var encErr *animation.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 24, encErr.FrameIndex)
	assert.Equal(t, model.PathRotation, encErr.Channel)
	assert.Equal(t, "z", encErr.Axis)
	assert.True(t, math.IsNaN(encErr.Value))
}

func TestSerializeRejectsUnorderedFrames(t *testing.T) {
	frames := scenarioFrames()
	frames[0], frames[1] = frames[1], frames[0]

	_, err := NewSerializer().Serialize(scenarioRequest(), frames)
	assert.ErrorIs(t, err, animation.ErrEncoding)

	dup := []animation.FrameSample{{FrameIndex: 4}, {FrameIndex: 4}}
	_, err = NewSerializer().Serialize(scenarioRequest(), dup)
	assert.ErrorIs(t, err, animation.ErrEncoding)
}

func TestSerializeNeverUsesScientificNotation(t *testing.T) {
	frames := []animation.FrameSample{{
		FrameIndex:  0,
		Translation: animation.Vec3{1e-9, 1e21, -3.5e-7},
		Scale:       animation.Vec3{1, 1, 1},
	}}

	data, err := NewSerializer().Serialize(scenarioRequest(), frames)
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "e-")
	assert.NotContains(t, out, "e+")
	assert.Contains(t, out, "0.000000001")
	assert.Contains(t, out, "1000000000000000000000.0")
	assert.Contains(t, out, "-0.00000035")
}

func TestSerializePrecision(t *testing.T) {
	frames := []animation.FrameSample{{
		FrameIndex:  0,
		Translation: animation.Vec3{1.23456, -0.00001, 2},
		Rotation:    animation.Vec3{89.99999, 0, 0},
		Scale:       animation.Vec3{1, 1, 1},
	}}

	s := NewSerializer(WithPrecision(3))
	assert.Equal(t, 3, s.Precision())

	doc, err := s.BuildDocument(scenarioRequest(), frames)
	require.NoError(t, err)
	assert.Equal(t, animation.Vec3{1.235, 0, 2}, doc.Frames[0].Translation)
	assert.Equal(t, animation.Vec3{90, 0, 0}, doc.Frames[0].Rotation)

	data, err := s.Serialize(scenarioRequest(), frames)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1.235")
	assert.NotContains(t, string(data), "-0.0")

	assert.Equal(t, -1, NewSerializer(WithPrecision(-5)).Precision())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anim.json")

	require.NoError(t, WriteFile(path, []byte("first document that is long\n")))
	require.NoError(t, NewSerializer().WriteFile(path, []byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()

	// a directory cannot be opened for writing
	err := WriteFile(dir, []byte("{}"))
	require.ErrorIs(t, err, animation.ErrFileWrite)
	var writeErr *animation.FileWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, dir, writeErr.Path)

	missing := filepath.Join(dir, "missing", "anim.json")
	err = WriteFile(missing, []byte("{}"))
	assert.ErrorIs(t, err, animation.ErrFileWrite)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(filepath.Dir(missing))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSerializedDocumentHasNoTrailingNewline(t *testing.T) {
	data, err := NewSerializer().Serialize(scenarioRequest(), scenarioFrames())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n}"))
	assert.False(t, strings.HasSuffix(string(data), "\n"))
}

func TestSerializeRejectsNegativeFrameIndex(t *testing.T) {
	frames := []animation.FrameSample{
		{FrameIndex: -5, Scale: animation.Vec3{1, 1, 1}},
		{FrameIndex: 10, Scale: animation.Vec3{1, 1, 1}},
	}

	_, err := NewSerializer().Serialize(scenarioRequest(), frames)
	require.ErrorIs(t, err, animation.ErrEncoding)

	var encErr *animation.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, -5, encErr.FrameIndex)
	assert.Empty(t, encErr.Channel)
	assert.Contains(t, err.Error(), "frame index -5 is negative")
}

func TestSerializePrecisionKeepsLargeFiniteValues(t *testing.T) {
	frames := []animation.FrameSample{{
		FrameIndex:  0,
		Translation: animation.Vec3{1e303, -1e300, 12345678.1234567},
		Scale:       animation.Vec3{1, 1, 1},
	}}

	s := NewSerializer(WithPrecision(6))
	doc, err := s.BuildDocument(scenarioRequest(), frames)
	require.NoError(t, err)
	assert.Equal(t, 1e303, doc.Frames[0].Translation[0])
	assert.Equal(t, -1e300, doc.Frames[0].Translation[1])
	assert.InDelta(t, 12345678.123457, doc.Frames[0].Translation[2], 1e-6)

	data, err := s.Serialize(scenarioRequest(), frames)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Inf")
}

func TestWriteFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "turret", "anim.json")

	err := NewSerializer().WriteFile(path, []byte("{}"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, NewSerializer(WithCreateDirs(true)).WriteFile(path, []byte("{}")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
