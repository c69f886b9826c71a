package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Extent is a closed interval. Angles are in degrees and ranges in the unit of the
// sensor description. NewViewFrustum does not check that Min <= Max.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NumFrustumPoints is the number of corners of a view frustum.
const NumFrustumPoints = 8

type extremum int

const (
	minimum extremum = iota
	maximum
)

func (e extremum) of(ext Extent) float64 {
	if e == maximum {
		return ext.Max
	}
	return ext.Min
}

// cornerSelectors picks the azimuth, elevation and range extreme of every corner. The near
// corners come first, then the far corners in the same angular order.
var cornerSelectors = [NumFrustumPoints][3]extremum{
	{minimum, maximum, minimum},
	{maximum, maximum, minimum},
	{maximum, minimum, minimum},
	{minimum, minimum, minimum},
	{minimum, maximum, maximum},
	{maximum, maximum, maximum},
	{maximum, minimum, maximum},
	{minimum, minimum, maximum},
}

// forward is the boresight of an unrotated sensor.
var forward = r3.Vector{Z: 1}

// ViewFrustum holds the corners of the volume a sensor covers between its near and far range
// across its azimuth and elevation window. It is immutable once built.
type ViewFrustum struct {
	points [NumFrustumPoints]r3.Vector
}

// NewViewFrustum computes the frustum corners for the given azimuth and elevation extents
// (degrees) and range extent.
func NewViewFrustum(azimuth, elevation, rng Extent) *ViewFrustum {
	vf := &ViewFrustum{}
	for i, sel := range cornerSelectors {
		az := DegToRad(sel[0].of(azimuth))
		el := DegToRad(sel[1].of(elevation))
		q := Qmult(
			EulerToQuat(EulerAngles{Roll: -el}),
			EulerToQuat(EulerAngles{Pitch: -az}),
		)
		vf.points[i] = RotateVector(q, forward).Mul(sel[2].of(rng))
	}
	return vf
}

// Points returns a copy of all eight corners.
func (vf *ViewFrustum) Points() [NumFrustumPoints]r3.Vector {
	return vf.points
}

// NearPoints returns a copy of the four corners at the minimum range.
func (vf *ViewFrustum) NearPoints() [4]r3.Vector {
	return [4]r3.Vector(vf.points[:4])
}

// FarPoints returns a copy of the four corners at the maximum range.
func (vf *ViewFrustum) FarPoints() [4]r3.Vector {
	return [4]r3.Vector(vf.points[4:])
}

// Mounted returns the corners carried from the sensor frame into its parent frame: each
// corner is rotated by orientation and then offset by mountPoint.
func (vf *ViewFrustum) Mounted(orientation Quaternion, mountPoint r3.Vector) [NumFrustumPoints]r3.Vector {
	var mounted [NumFrustumPoints]r3.Vector
	for i, p := range vf.points {
		mounted[i] = RotateVector(orientation, p).Add(mountPoint)
	}
	return mounted
}
