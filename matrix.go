package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Compose builds the affine transform T * R * S: scale is applied first,
// then rotation, then translation.
func Compose(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	translate := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rotate := rotation.Mat4()
	scaling := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return translate.Mul4(rotate).Mul4(scaling)
}

// Decompose splits an affine transform back into position, rotation and
// scale, the inverse of Compose.
//
// The fast path assumes all scale factors are non-negative: translation is
// the last column, per-axis scale is the length of the first three columns,
// and the rotation is read from the matrix with scale divided out.
//
// With containsNegativeScale set, the rotation is instead extracted by
// iterative polar decomposition, which also works when the matrix encodes a
// reflection. A single-axis reflection is reported as a negative scale on X:
// the axis carrying the sign is not recoverable from the matrix alone, so the
// X convention is fixed here. Composing the returned triple always reproduces
// the input matrix.
func Decompose(m mgl32.Mat4, containsNegativeScale bool) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	position := m.Col(3).Vec3()

	if !containsNegativeScale {
		c0 := m.Col(0).Vec3()
		c1 := m.Col(1).Vec3()
		c2 := m.Col(2).Vec3()
		scale := mgl32.Vec3{c0.Len(), c1.Len(), c2.Len()}

		basis := mgl32.Mat4FromCols(
			c0.Mul(1/safeDenom(scale.X())).Vec4(0),
			c1.Mul(1/safeDenom(scale.Y())).Vec4(0),
			c2.Mul(1/safeDenom(scale.Z())).Vec4(0),
			mgl32.Vec4{0, 0, 0, 1},
		)
		rotation := mgl32.Mat4ToQuat(basis).Normalize()
		return position, rotation, scale
	}

	// Slow path: strip translation, pull the nearest pure rotation out of the
	// 3x3 block, then read the scale off what remains.
	m3 := m.Mat3()
	r := polarRotation(m3)

	if r.Det() < 0 {
		// The orthonormal factor carries a reflection. Rotation matrices
		// cannot, so fold it into the scale by flipping the X column.
		r = mgl32.Mat3FromCols(r.Col(0).Mul(-1), r.Col(1), r.Col(2))
	}

	// Transpose inverts the orthonormal basis; the residual is the scale.
	k := r.Transpose().Mul3(m3)
	scale := mgl32.Vec3{k.At(0, 0), k.At(1, 1), k.At(2, 2)}

	rotation := mgl32.Mat4ToQuat(r.Mat4()).Normalize()
	return position, rotation, scale
}

// polarRotation extracts the orthonormal factor of m by repeatedly averaging
// the iterate with the transpose of its inverse. The fixed point is the polar
// rotation (possibly including a reflection, which the caller handles). Not
// guaranteed to converge on pathological input, hence the hard iteration cap.
func polarRotation(m mgl32.Mat3) mgl32.Mat3 {
	r := m
	for i := 0; i < 100; i++ {
		if mgl32.Abs(r.Det()) < EpsilonSingular {
			// Degenerate iterate, cannot invert. Give up on what we have.
			break
		}
		next := r.Add(r.Inv().Transpose()).Mul(0.5)

		maxDelta := float32(0)
		for j := 0; j < 9; j++ {
			d := mgl32.Abs(next[j] - r[j])
			if d > maxDelta {
				maxDelta = d
			}
		}
		r = next
		if maxDelta < epsilonPolar {
			break
		}
	}
	return r
}

// SafeInvert4 inverts m via the closed-form adjugate. A matrix with
// |determinant| below EpsilonSingular is treated as singular and yields
// identity instead of dividing by (near) zero.
func SafeInvert4(m mgl32.Mat4) mgl32.Mat4 {
	if mgl32.Abs(m.Det()) < EpsilonSingular {
		return mgl32.Ident4()
	}
	return m.Inv()
}

// SafeInvert3 is the 3x3 twin of SafeInvert4.
func SafeInvert3(m mgl32.Mat3) mgl32.Mat3 {
	if mgl32.Abs(m.Det()) < EpsilonSingular {
		return mgl32.Ident3()
	}
	return m.Inv()
}

// EulerToMat4 builds a rotation matrix from XYZ-order Euler angles (radians):
// Rx * Ry * Rz, the same convention as EulerToQuat.
func EulerToMat4(x, y, z float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(x).Mul4(mgl32.HomogRotate3DY(y)).Mul4(mgl32.HomogRotate3DZ(z))
}

// Mat4ToEuler extracts XYZ-order Euler angles from a rotation matrix.
// The matrix must be a pure rotation (no scale).
func Mat4ToEuler(m mgl32.Mat4) (x, y, z float32) {
	m13 := m.At(0, 2)
	y = asin32(m13)
	if mgl32.Abs(m13) < 0.9999999 {
		x = atan232(-m.At(1, 2), m.At(2, 2))
		z = atan232(-m.At(0, 1), m.At(0, 0))
	} else {
		// Gimbal lock: pitch is +/-90 degrees, roll and yaw collapse into one
		// degree of freedom. Pin z to zero.
		x = atan232(m.At(2, 1), m.At(1, 1))
		z = 0
	}
	return x, y, z
}
