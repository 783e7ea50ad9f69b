package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelAddKeyKeepsOrder(t *testing.T) {
	ch := NewChannel(PathTranslation, "")
	assert.Equal(t, InterpolationLinear, ch.Interpolation)

	ch.AddKey(10, [3]float64{10, 0, 0})
	ch.AddKey(0, [3]float64{0, 0, 0})
	ch.AddKey(5, [3]float64{5, 0, 0})
	ch.AddKey(5, [3]float64{50, 0, 0})

	assert.Equal(t, []int{0, 5, 10}, ch.Frames())
	assert.Equal(t, [3]float64{50, 0, 0}, ch.Keys[1].Value)
}

func TestChannelEvaluate(t *testing.T) {
	linear := NewChannel(PathTranslation, InterpolationLinear)
	linear.AddKey(0, [3]float64{0, 0, 0})
	linear.AddKey(10, [3]float64{10, -20, 5})

	step := NewChannel(PathScale, InterpolationStep)
	step.AddKey(0, [3]float64{1, 1, 1})
	step.AddKey(10, [3]float64{2, 2, 2})

	tests := []struct {
		name     string
		ch       *Channel
		frame    int
		expected [3]float64
	}{
		{name: "linear before first key", ch: linear, frame: -5, expected: [3]float64{0, 0, 0}},
		{name: "linear on key", ch: linear, frame: 10, expected: [3]float64{10, -20, 5}},
		{name: "linear between keys", ch: linear, frame: 5, expected: [3]float64{5, -10, 2.5}},
		{name: "linear after last key", ch: linear, frame: 99, expected: [3]float64{10, -20, 5}},
		{name: "step between keys", ch: step, frame: 9, expected: [3]float64{1, 1, 1}},
		{name: "step on key", ch: step, frame: 10, expected: [3]float64{2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ch.Evaluate(tt.frame)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, ok := NewChannel(PathRotation, InterpolationLinear).Evaluate(0)
	assert.False(t, ok)
}

func TestParseChannelPath(t *testing.T) {
	for input, expected := range map[string]ChannelPath{
		"translation":    PathTranslation,
		"Location":       PathTranslation,
		"position":       PathTranslation,
		"rotation_euler": PathRotation,
		"SCALE":          PathScale,
	} {
		got, err := ParseChannelPath(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	_, err := ParseChannelPath("weights")
	assert.Error(t, err)
}

func TestParseInterpolation(t *testing.T) {
	got, err := ParseInterpolation("")
	require.NoError(t, err)
	assert.Equal(t, InterpolationLinear, got)

	got, err = ParseInterpolation("constant")
	require.NoError(t, err)
	assert.Equal(t, InterpolationStep, got)

	got, err = ParseInterpolation("slerp")
	require.NoError(t, err)
	assert.Equal(t, InterpolationSpherical, got)

	_, err = ParseInterpolation("BEZIER")
	assert.Error(t, err)
}

func TestChannelSphericalRotation(t *testing.T) {
	ch := NewChannel(PathRotation, InterpolationSpherical)
	ch.AddKey(0, [3]float64{0, 0, 170})
	ch.AddKey(10, [3]float64{0, 0, -170})

	mid, ok := ch.Evaluate(5)
	require.True(t, ok)
	assert.InDelta(t, 0, mid[0], 1e-9)
	assert.InDelta(t, 0, mid[1], 1e-9)
	assert.InDelta(t, 180, math.Abs(mid[2]), 1e-9)

	// keys are returned as authored
	last, _ := ch.Evaluate(10)
	assert.Equal(t, [3]float64{0, 0, -170}, last)

	// other paths interpolate linearly
	move := NewChannel(PathTranslation, InterpolationSpherical)
	move.AddKey(0, [3]float64{0, 0, 170})
	move.AddKey(10, [3]float64{0, 0, -170})
	v, _ := move.Evaluate(5)
	assert.Equal(t, [3]float64{0, 0, 0}, v)
}

func TestTransformGetSet(t *testing.T) {
	tr := IdentityTransform()
	assert.Equal(t, [3]float64{1, 1, 1}, tr.Get(PathScale))

	tr.Set(PathRotation, [3]float64{0, 90, 0})
	assert.Equal(t, [3]float64{0, 90, 0}, tr.Rotation)
	assert.Equal(t, [3]float64{}, tr.Get("weights"))
}
