package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Rotation composition follows the matrix convention throughout the package:
// q1.Mul(q2) applies q2 first, then q1. Premultiply is the reverse.

// Premultiply composes rotations with q applied first, then p.
func Premultiply(q, p mgl32.Quat) mgl32.Quat {
	return p.Mul(q)
}

// Slerp spherically interpolates between two unit quaternions.
// When the operands point into opposite hemispheres (negative dot product)
// the second operand is negated so interpolation takes the shortest path.
// Nearly parallel operands fall back to a normalized linear blend since
// sin(omega) approaches zero there.
func Slerp(a, b mgl32.Quat, alpha float32) mgl32.Quat {
	d := a.Dot(b)
	if d < 0 {
		b = b.Scale(-1)
		d = -d
	}

	if d > 0.9995 {
		return a.Add(b.Sub(a).Scale(alpha)).Normalize()
	}

	omega := acos32(d)
	sinOmega := sin32(omega)
	wa := sin32((1-alpha)*omega) / sinOmega
	wb := sin32(alpha*omega) / sinOmega
	return a.Scale(wa).Add(b.Scale(wb)).Normalize()
}

// LookAtQuat returns the rotation that orients -Z from eye towards target with
// +Y as close to up as possible. The basis is built right-handed from two
// cross products. Precondition: up must not be parallel to target-eye; callers
// own that check, the result is garbage otherwise.
func LookAtQuat(eye, target, up mgl32.Vec3) mgl32.Quat {
	z := eye.Sub(target).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	basis := mgl32.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(basis).Normalize()
}

// EulerToQuat converts XYZ-order Euler angles (radians) to a unit quaternion.
// The resulting rotation matches EulerToMat4: Rx * Ry * Rz.
func EulerToQuat(x, y, z float32) mgl32.Quat {
	c1 := cos32(x / 2)
	c2 := cos32(y / 2)
	c3 := cos32(z / 2)
	s1 := sin32(x / 2)
	s2 := sin32(y / 2)
	s3 := sin32(z / 2)

	return mgl32.Quat{
		W: c1*c2*c3 - s1*s2*s3,
		V: mgl32.Vec3{
			s1*c2*c3 + c1*s2*s3,
			c1*s2*c3 - s1*c2*s3,
			c1*c2*s3 + s1*s2*c3,
		},
	}.Normalize()
}

// QuatToEuler extracts XYZ-order Euler angles (radians) from a unit
// quaternion. Inverse of EulerToQuat up to angle wrapping and the usual
// gimbal-lock ambiguity at pitch = +/-90 degrees.
func QuatToEuler(q mgl32.Quat) (x, y, z float32) {
	return Mat4ToEuler(q.Mat4())
}
