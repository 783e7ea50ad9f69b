package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithName("cube"))

	assert.Equal(t, "cube", obj.Name())
	assert.Nil(t, obj.Parent())
	assert.Equal(t, model.IdentityTransform(), obj.Rest())
	assert.Empty(t, obj.Channels())
	assert.Empty(t, obj.KeyedFrames())
}

func TestKeyedFramesIsSortedUnion(t *testing.T) {
	obj := NewGameObject()
	obj.AddKey(model.PathTranslation, 0, [3]float64{})
	obj.AddKey(model.PathTranslation, 10, [3]float64{})
	obj.AddKey(model.PathRotation, 5, [3]float64{})
	obj.AddKey(model.PathRotation, 0, [3]float64{})

	assert.Equal(t, []int{0, 5, 10}, obj.KeyedFrames())

	channels := obj.Channels()
	require.Len(t, channels, 2)
	assert.Equal(t, model.PathTranslation, channels[0].Path)
	assert.Equal(t, model.PathRotation, channels[1].Path)
}

func TestEvaluateAtUsesRestForUnkeyedProperties(t *testing.T) {
	obj := NewGameObject(
		WithPosition(1, 2, 3),
		WithRotation(0, 45, 0),
		WithScale(2, 2, 2),
	)
	obj.AddKey(model.PathTranslation, 0, [3]float64{0, 0, 0})
	obj.AddKey(model.PathTranslation, 24, [3]float64{24, 0, 0})

	got := obj.EvaluateAt(12)
	assert.Equal(t, [3]float64{12, 0, 0}, got.Translation)
	assert.Equal(t, [3]float64{0, 45, 0}, got.Rotation)
	assert.Equal(t, [3]float64{2, 2, 2}, got.Scale)
}

func TestSetChannelReplacesChannel(t *testing.T) {
	obj := NewGameObject()
	obj.AddKey(model.PathScale, 3, [3]float64{1, 1, 1})

	ch := model.NewChannel(model.PathScale, model.InterpolationStep)
	ch.AddKey(7, [3]float64{3, 3, 3})
	obj.SetChannel(ch)
	obj.SetChannel(nil)

	assert.Equal(t, []int{7}, obj.KeyedFrames())
	assert.Same(t, ch, obj.Channel(model.PathScale))
}

func TestWithParent(t *testing.T) {
	parent := NewGameObject(WithName("root"))
	child := NewGameObject(WithName("arm"), WithParent(parent))

	assert.Same(t, parent, child.Parent())
}
