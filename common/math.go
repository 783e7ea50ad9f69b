package common

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// snapEpsilon is the distance under which a value is snapped to the nearest integer after
// trigonometric round trips (matrix decomposition, quaternion conversion).
const snapEpsilon = 1e-9

// zUpToYUp is the change of basis that maps a Z-up right-handed frame to a Y-up one:
// (x, y, z) -> (x, z, -y). Column-major.
var zUpToYUp = mgl64.Mat4{
	1, 0, 0, 0,
	0, 0, -1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// EulerMatrix builds a rotation matrix from Euler angles in degrees.
// The rotation order is X, then Y, then Z (R = Rz * Ry * Rx). All matrices are column-major.
//
// Parameters:
//   - euler: rotation angles in degrees around the X, Y and Z axes
//
// Returns:
//   - mgl64.Mat4: the homogeneous rotation matrix
func EulerMatrix(euler [3]float64) mgl64.Mat4 {
	rx := mgl64.HomogRotate3DX(mgl64.DegToRad(euler[0]))
	ry := mgl64.HomogRotate3DY(mgl64.DegToRad(euler[1]))
	rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(euler[2]))
	return rz.Mul4(ry).Mul4(rx)
}

// ComposeMatrix constructs a 4x4 model matrix from translation, Euler rotation (degrees) and scale.
// Result: T * Rz * Ry * Rx * S, column-major.
//
// Parameters:
//   - translation: translation along each axis
//   - rotation: Euler angles in degrees (X, Y, Z order)
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl64.Mat4: the composed model matrix
func ComposeMatrix(translation, rotation, scale [3]float64) mgl64.Mat4 {
	t := mgl64.Translate3D(translation[0], translation[1], translation[2])
	s := mgl64.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(EulerMatrix(rotation)).Mul4(s)
}

// DecomposeMatrix splits an affine model matrix back into translation, Euler rotation (degrees)
// and scale. Shear is not supported; a negative determinant is folded into the X scale.
//
// Parameters:
//   - m: the model matrix (column-major)
//
// Returns:
//   - translation, rotation, scale: the decomposed components
func DecomposeMatrix(m mgl64.Mat4) (translation, rotation, scale [3]float64) {
	translation = [3]float64{Snap(m[12]), Snap(m[13]), Snap(m[14])}

	sx, sy, sz := mgl64.Extract3DScale(m)
	if m.Mat3().Det() < 0 {
		sx = -sx
	}
	scale = [3]float64{Snap(sx), Snap(sy), Snap(sz)}

	var r mgl64.Mat4
	for col, s := range [3]float64{sx, sy, sz} {
		if s == 0 {
			continue
		}
		for row := 0; row < 3; row++ {
			r[col*4+row] = m[col*4+row] / s
		}
	}
	r[15] = 1

	rotation = EulerFromMatrix(r)
	return translation, rotation, scale
}

// EulerFromMatrix extracts X, Y, Z Euler angles in degrees from a pure rotation matrix built as
// Rz * Ry * Rx. At gimbal lock (Y = ±90°) the Z angle is fixed to zero.
//
// Parameters:
//   - r: an orthonormal rotation matrix (column-major)
//
// Returns:
//   - [3]float64: rotation angles in degrees
func EulerFromMatrix(r mgl64.Mat4) [3]float64 {
	r20 := mgl64.Clamp(r.At(2, 0), -1, 1)
	y := math.Asin(-r20)

	var x, z float64
	if math.Abs(r20) < 1-snapEpsilon {
		x = math.Atan2(r.At(2, 1), r.At(2, 2))
		z = math.Atan2(r.At(1, 0), r.At(0, 0))
	} else {
		x = math.Atan2(-r.At(1, 2), r.At(1, 1))
	}

	return [3]float64{
		Snap(mgl64.RadToDeg(x)),
		Snap(mgl64.RadToDeg(y)),
		Snap(mgl64.RadToDeg(z)),
	}
}

// QuatToEuler converts a unit quaternion stored as (x, y, z, w) into X, Y, Z Euler angles in degrees.
//
// Parameters:
//   - q: the quaternion components in glTF order (x, y, z, w)
//
// Returns:
//   - [3]float64: rotation angles in degrees
func QuatToEuler(q [4]float64) [3]float64 {
	quat := mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}
	if quat.Len() == 0 {
		return [3]float64{}
	}
	return EulerFromMatrix(quat.Normalize().Mat4())
}

// EulerToQuat converts X, Y, Z Euler angles in degrees into a unit quaternion (x, y, z, w).
//
// Parameters:
//   - euler: rotation angles in degrees
//
// Returns:
//   - [4]float64: the quaternion in glTF order (x, y, z, w)
func EulerToQuat(euler [3]float64) [4]float64 {
	q := mgl64.Mat4ToQuat(EulerMatrix(euler)).Normalize()
	return [4]float64{q.V[0], q.V[1], q.V[2], q.W}
}

// SlerpEuler interpolates between two Euler XYZ rotations along the shortest arc of their
// quaternions and returns the result as Euler XYZ degrees.
//
// Parameters:
//   - a, b: rotation angles in degrees at t = 0 and t = 1
//   - t: the interpolation factor in [0, 1]
//
// Returns:
//   - [3]float64: rotation angles in degrees
func SlerpEuler(a, b [3]float64, t float64) [3]float64 {
	qa, qb := EulerToQuat(a), EulerToQuat(b)
	q := mgl64.QuatSlerp(
		mgl64.Quat{W: qa[3], V: mgl64.Vec3{qa[0], qa[1], qa[2]}},
		mgl64.Quat{W: qb[3], V: mgl64.Vec3{qb[0], qb[1], qb[2]}},
		t,
	)
	return QuatToEuler([4]float64{q.V[0], q.V[1], q.V[2], q.W})
}

// ZUpToYUp re-expresses a transform authored in a Z-up frame in a Y-up frame.
// Translation maps (x, y, z) -> (x, z, -y), scale maps (x, y, z) -> (x, z, y) and rotation is
// conjugated by the change of basis before being converted back to Euler degrees.
//
// Parameters:
//   - translation, rotation, scale: the Z-up transform (rotation in degrees)
//
// Returns:
//   - [3]float64 x3: the Y-up transform
func ZUpToYUp(translation, rotation, scale [3]float64) ([3]float64, [3]float64, [3]float64) {
	t := [3]float64{translation[0], translation[2], Snap(-translation[1])}
	s := [3]float64{scale[0], scale[2], scale[1]}
	r := zUpToYUp.Mul4(EulerMatrix(rotation)).Mul4(zUpToYUp.Transpose())
	return t, EulerFromMatrix(r), s
}

// Lerp3 linearly interpolates between two 3-vectors.
//
// Parameters:
//   - a: the start value (t = 0)
//   - b: the end value (t = 1)
//   - t: the interpolation factor
//
// Returns:
//   - [3]float64: the interpolated value
func Lerp3(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// Snap rounds v to the nearest integer when it is within snapEpsilon of it, and folds negative
// zero into zero.
func Snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < snapEpsilon {
		v = r
	}
	if v == 0 {
		return 0
	}
	return v
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RoundTo rounds v to the given number of decimal places. A negative precision returns v unchanged,
// as does a value too large to carry any fraction at that precision.
func RoundTo(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	p := math.Pow(10, float64(precision))
	scaled := v * p
	if math.IsInf(scaled, 0) || math.Abs(scaled) >= maxExactInt {
		return v
	}
	return math.Round(scaled) / p
}

// maxExactInt is 2^53; every float64 at or above it is an integer.
const maxExactInt = 1 << 53

// FormatDecimal renders v as a plain decimal literal: never scientific notation, always with a
// fractional part ("1.0"), and with negative zero written as "0.0". A non-negative precision rounds
// to that many decimals first; a negative precision uses the shortest round-trip representation.
//
// Parameters:
//   - v: a finite value
//   - precision: decimal places, or -1 for the shortest representation
//
// Returns:
//   - string: the formatted literal
func FormatDecimal(v float64, precision int) string {
	v = RoundTo(v, precision)
	if v == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// WidenFloat32 converts a float32 to the float64 with the same shortest decimal representation,
// so 0.1 stored as float32 becomes 0.1 rather than 0.10000000149011612.
func WidenFloat32(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}
