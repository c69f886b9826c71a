// Package spatialmath defines the rotation math and view frustum geometry used to describe
// where a directional range sensor can see.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// DefaultMatchThreshold is the distance under which VecsMatch considers two vectors equal.
const DefaultMatchThreshold = 1e-10

// Quaternion is a rotation stored as (x, y, z, w) where W is the scalar part.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IdentityQuaternion returns the quaternion which signifies no rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromNumber converts a gonum quaternion into a Quaternion.
func QuaternionFromNumber(n quat.Number) Quaternion {
	return Quaternion{X: n.Imag, Y: n.Jmag, Z: n.Kmag, W: n.Real}
}

// Number returns the quaternion as a gonum quat.Number. Note that gonum multiplies with the
// Hamilton product, so Qmult(a, b) corresponds to quat.Mul(b.Number(), a.Number()).
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

// Vector returns the vector part of the quaternion.
func (q Quaternion) Vector() r3.Vector {
	return r3.Vector{X: q.X, Y: q.Y, Z: q.Z}
}

// Norm returns the euclidean norm of all four components.
func (q Quaternion) Norm() float64 {
	return quat.Abs(q.Number())
}

// EulerAngles is an ordered triple of angles in radians. Yaw rotates about -Z, then Pitch
// about -Y, then Roll about +X.
type EulerAngles struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// EulerAnglesFromDegrees builds EulerAngles from a yaw, pitch, roll triple given in degrees.
func EulerAnglesFromDegrees(yaw, pitch, roll float64) EulerAngles {
	return EulerAngles{Yaw: DegToRad(yaw), Pitch: DegToRad(pitch), Roll: DegToRad(roll)}
}

var (
	negZAxis = r3.Vector{Z: -1}
	negYAxis = r3.Vector{Y: -1}
	posXAxis = r3.Vector{X: 1}
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AngleAxisToQuat expresses a right-handed rotation of angle radians about axis. The axis is
// expected to be a unit vector and is not normalized here.
func AngleAxisToQuat(angle float64, axis r3.Vector) Quaternion {
	s := math.Sin(angle / 2)
	return Quaternion{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(angle / 2)}
}

// Qmult multiplies the given quaternions. With no arguments it returns the identity and with
// one it returns that quaternion. Longer lists are grouped right to left, so
// Qmult(a, b, c) == Qmult(a, Qmult(b, c)). When the product is used with RotateVector the
// rightmost rotation is the one applied to the vector first.
func Qmult(qs ...Quaternion) Quaternion {
	if len(qs) == 0 {
		return IdentityQuaternion()
	}
	product := qs[len(qs)-1]
	for i := len(qs) - 2; i >= 0; i-- {
		product = mult(qs[i], product)
	}
	return product
}

// mult applies the left multiplication matrix of l to r taken as a column vector.
func mult(l, r Quaternion) Quaternion {
	left := mat.NewDense(4, 4, []float64{
		l.W, l.Z, -l.Y, l.X,
		-l.Z, l.W, l.X, l.Y,
		l.Y, -l.X, l.W, l.Z,
		-l.X, -l.Y, -l.Z, l.W,
	})
	var product mat.VecDense
	product.MulVec(left, mat.NewVecDense(4, []float64{r.X, r.Y, r.Z, r.W}))
	return Quaternion{X: product.AtVec(0), Y: product.AtVec(1), Z: product.AtVec(2), W: product.AtVec(3)}
}

// Qinv returns the conjugate of q, which is its inverse only when q has unit norm.
func Qinv(q Quaternion) Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// EulerToQuat converts euler angles into a single quaternion. The yaw rotation is applied
// first, then pitch, then roll.
func EulerToQuat(euler EulerAngles) Quaternion {
	return Qmult(
		AngleAxisToQuat(euler.Yaw, negZAxis),
		AngleAxisToQuat(euler.Pitch, negYAxis),
		AngleAxisToQuat(euler.Roll, posXAxis),
	)
}

// VecsMatch reports whether two vectors are within DefaultMatchThreshold of each other.
func VecsMatch(a, b r3.Vector) bool {
	return VecsMatchWithin(a, b, DefaultMatchThreshold)
}

// VecsMatchWithin reports whether the distance between a and b is strictly less than threshold.
func VecsMatchWithin(a, b r3.Vector, threshold float64) bool {
	return a.Sub(b).Norm() < threshold
}

// QuatFromVec embeds v as a pure quaternion.
func QuatFromVec(v r3.Vector) Quaternion {
	return Quaternion{X: v.X, Y: v.Y, Z: v.Z}
}

// RotateVector rotates vec by q using the product q * vec * q^-1. The scalar part of the
// result is dropped; it is zero for unit quaternions.
func RotateVector(q Quaternion, vec r3.Vector) r3.Vector {
	return Qmult(q, QuatFromVec(vec), Qinv(q)).Vector()
}

// RotateAxes rotates the coordinate axes by q rather than the vector, which is the same as
// rotating vec by the inverse of q.
func RotateAxes(q Quaternion, vec r3.Vector) r3.Vector {
	return RotateVector(Qinv(q), vec)
}
