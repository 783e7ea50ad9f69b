package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3InDelta(t *testing.T, expected, actual [3]float64, delta float64) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestEulerQuatRoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{10, 20, 30},
		{-45, 15, 170},
		{90, 0, 0},
		{0, 0, -120},
	}
	for _, euler := range cases {
		q := EulerToQuat(euler)
		assertVec3InDelta(t, euler, QuatToEuler(q), 1e-7)
	}
}

func TestQuatToEulerSingleAxis(t *testing.T) {
	half := math.Pi / 4 // 90 degrees about Z
	got := QuatToEuler([4]float64{0, 0, math.Sin(half), math.Cos(half)})
	assertVec3InDelta(t, [3]float64{0, 0, 90}, got, 1e-9)

	assert.Equal(t, [3]float64{}, QuatToEuler([4]float64{0, 0, 0, 0}))
}

func TestEulerFromMatrixGimbalLock(t *testing.T) {
	got := EulerFromMatrix(EulerMatrix([3]float64{30, 90, 0}))
	assert.InDelta(t, 90, got[1], 1e-7)
	assert.Equal(t, 0.0, got[2])

	// the recovered angles must describe the same rotation
	m1 := EulerMatrix([3]float64{30, 90, 0})
	m2 := EulerMatrix(got)
	assert.True(t, m1.ApproxEqualThreshold(m2, 1e-9))
}

func TestComposeDecomposeMatrix(t *testing.T) {
	translation := [3]float64{1, -2, 3.5}
	rotation := [3]float64{15, -30, 45}
	scale := [3]float64{2, 0.5, 1}

	gotT, gotR, gotS := DecomposeMatrix(ComposeMatrix(translation, rotation, scale))
	assertVec3InDelta(t, translation, gotT, 1e-9)
	assertVec3InDelta(t, rotation, gotR, 1e-7)
	assertVec3InDelta(t, scale, gotS, 1e-9)
}

func TestDecomposeMatrixNegativeScale(t *testing.T) {
	_, gotR, gotS := DecomposeMatrix(ComposeMatrix([3]float64{}, [3]float64{}, [3]float64{-1, 1, 1}))
	assertVec3InDelta(t, [3]float64{-1, 1, 1}, gotS, 1e-9)
	assertVec3InDelta(t, [3]float64{0, 0, 0}, gotR, 1e-9)
}

func TestZUpToYUp(t *testing.T) {
	tr, rot, sc := ZUpToYUp([3]float64{1, 2, 3}, [3]float64{0, 0, 0}, [3]float64{4, 5, 6})
	assert.Equal(t, [3]float64{1, 3, -2}, tr)
	assert.Equal(t, [3]float64{0, 0, 0}, rot)
	assert.Equal(t, [3]float64{4, 6, 5}, sc)

	// yaw about Z-up becomes yaw about Y-up
	_, rot, _ = ZUpToYUp([3]float64{}, [3]float64{0, 0, 30}, [3]float64{1, 1, 1})
	assertVec3InDelta(t, [3]float64{0, 30, 0}, rot, 1e-9)

	// the X axis is shared by both conventions
	_, rot, _ = ZUpToYUp([3]float64{}, [3]float64{30, 0, 0}, [3]float64{1, 1, 1})
	assertVec3InDelta(t, [3]float64{30, 0, 0}, rot, 1e-9)

	// a zero Y translation must not produce negative zero
	tr, _, _ = ZUpToYUp([3]float64{0, 0, 0}, [3]float64{}, [3]float64{1, 1, 1})
	assert.False(t, math.Signbit(tr[2]))
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 30.0, Snap(29.99999999999999))
	assert.Equal(t, 0.5, Snap(0.5))
	assert.False(t, math.Signbit(Snap(math.Copysign(0, -1))))
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		expected  string
	}{
		{name: "integral", value: 1, precision: -1, expected: "1.0"},
		{name: "negative integral", value: -3, precision: -1, expected: "-3.0"},
		{name: "fraction", value: 0.1, precision: -1, expected: "0.1"},
		{name: "negative zero", value: math.Copysign(0, -1), precision: -1, expected: "0.0"},
		{name: "tiny value", value: 1e-7, precision: -1, expected: "0.0000001"},
		{name: "huge value", value: 1e21, precision: -1, expected: "1000000000000000000000.0"},
		{name: "rounded", value: 3.14159, precision: 2, expected: "3.14"},
		{name: "rounded to integral", value: 2.0001, precision: 2, expected: "2.0"},
		{name: "rounds to negative zero", value: -0.0001, precision: 2, expected: "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDecimal(tt.value, tt.precision))
		})
	}
}

func TestWidenFloat32(t *testing.T) {
	assert.Equal(t, 0.1, WidenFloat32(float32(0.1)))
	assert.Equal(t, 1.5, WidenFloat32(float32(1.5)))
	assert.Equal(t, -2.25, WidenFloat32(float32(-2.25)))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestParseSpaceAndUpAxis(t *testing.T) {
	space, err := ParseSpace("")
	require.NoError(t, err)
	assert.Equal(t, SpaceLocal, space)

	space, err = ParseSpace("World")
	require.NoError(t, err)
	assert.Equal(t, SpaceWorld, space)

	_, err = ParseSpace("screen")
	assert.Error(t, err)

	axis, err := ParseUpAxis("z")
	require.NoError(t, err)
	assert.Equal(t, UpAxisZ, axis)

	_, err = ParseUpAxis("x")
	assert.Error(t, err)
}

func TestSlerpEuler(t *testing.T) {
	mid := SlerpEuler([3]float64{0, 0, 170}, [3]float64{0, 0, -170}, 0.5)
	assert.InDelta(t, 180, math.Abs(mid[2]), 1e-9)
	assert.InDelta(t, 0, mid[0], 1e-9)

	assertVec3InDelta(t, [3]float64{0, 0, 172}, SlerpEuler([3]float64{0, 0, 170}, [3]float64{0, 0, -170}, 0.1), 1e-7)
	assertVec3InDelta(t, [3]float64{0, 45, 0}, SlerpEuler([3]float64{0, 0, 0}, [3]float64{0, 90, 0}, 0.5), 1e-7)
	assertVec3InDelta(t, [3]float64{10, 20, 30}, SlerpEuler([3]float64{10, 20, 30}, [3]float64{-40, 5, 60}, 0), 1e-7)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.235, RoundTo(1.23456, 3))
	assert.Equal(t, -2.0, RoundTo(-1.5, 0))
	assert.Equal(t, 1.23456, RoundTo(1.23456, -1))

	// too large to carry a fraction; returned unchanged instead of overflowing
	assert.Equal(t, 1e303, RoundTo(1e303, 6))
	assert.Equal(t, -math.MaxFloat64, RoundTo(-math.MaxFloat64, 2))
	assert.Equal(t, 9007199254740993.0, RoundTo(9007199254740993.0, 1))
	assert.True(t, IsFinite(RoundTo(1e300, 10)))
}
