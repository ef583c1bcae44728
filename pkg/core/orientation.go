package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Joint orient conventions understood by scene hosts. They mirror the
// arguments of Maya's joint command (-oj / -sao).
const (
	OrientJointXYZ  = "xyz"
	SecondaryAxisYUp = "yup"
)

const axisEpsilon = 1e-9

// Orientation is a bone aim rotation together with the axes convention it
// was computed under. Hosts that can orient joints natively (Maya) use the
// convention strings; value-recording hosts store the quaternion.
type Orientation struct {
	Quat                mgl64.Quat `json:"quat"`
	OrientJoint         string     `json:"orientJoint"`
	SecondaryAxisOrient string     `json:"secondaryAxisOrient"`
}

// AimOrientation computes the rotation pointing the X axis from one joint
// position toward another, keeping Y as close to world up as the bone
// direction allows. A zero-length bone yields the identity rotation; a bone
// parallel to world up falls back to world Z as the secondary reference.
func AimOrientation(from, to Position3D) Orientation {
	o := Orientation{
		Quat:                mgl64.QuatIdent(),
		OrientJoint:         OrientJointXYZ,
		SecondaryAxisOrient: SecondaryAxisYUp,
	}

	dir := to.Vec3().Sub(from.Vec3())
	length := dir.Len()
	if length < axisEpsilon {
		return o
	}

	x := dir.Mul(1 / length)
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(x.Dot(up)) > 1-axisEpsilon {
		up = mgl64.Vec3{0, 0, 1}
	}
	z := x.Cross(up).Normalize()
	y := z.Cross(x)

	o.Quat = mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4())
	return o
}
