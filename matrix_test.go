package spatial

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return mgl32.Abs(a.X()-b.X()) < eps &&
		mgl32.Abs(a.Y()-b.Y()) < eps &&
		mgl32.Abs(a.Z()-b.Z()) < eps
}

func matNear(a, b mgl32.Mat4, eps float32) bool {
	for i := 0; i < 16; i++ {
		if mgl32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// quatNear compares rotations, tolerating the sign flip of the double cover.
func quatNear(a, b mgl32.Quat, eps float32) bool {
	return mgl32.Abs(a.Dot(b)) > 1-eps
}

func randomQuat(rng *rand.Rand) mgl32.Quat {
	axis := mgl32.Vec3{
		rng.Float32()*2 - 1,
		rng.Float32()*2 - 1,
		rng.Float32()*2 - 1,
	}
	if axis.Len() < 0.01 {
		axis = mgl32.Vec3{0, 0, 1}
	}
	angle := rng.Float32() * 2 * 3.14159265
	return mgl32.QuatRotate(angle, axis.Normalize())
}

func TestComposeDecomposeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		pos := mgl32.Vec3{
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
		}
		rot := randomQuat(rng)
		scale := mgl32.Vec3{
			rng.Float32()*2.9 + 0.1,
			rng.Float32()*2.9 + 0.1,
			rng.Float32()*2.9 + 0.1,
		}

		m := Compose(pos, rot, scale)
		gotPos, gotRot, gotScale := Decompose(m, false)

		if !vecNear(gotPos, pos, 1e-4) {
			t.Errorf("iteration %d: position mismatch: expected %v, got %v", i, pos, gotPos)
		}
		if !vecNear(gotScale, scale, 1e-3) {
			t.Errorf("iteration %d: scale mismatch: expected %v, got %v", i, scale, gotScale)
		}
		if !quatNear(gotRot, rot, 1e-3) {
			t.Errorf("iteration %d: rotation mismatch: |dot| = %f", i, mgl32.Abs(gotRot.Dot(rot)))
		}
	}
}

func TestDecomposeNegativeScaleX(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Reflections are reported on the X axis, so a negative X input
	// round-trips exactly.
	for i := 0; i < 50; i++ {
		pos := mgl32.Vec3{rng.Float32() * 10, rng.Float32() * 10, rng.Float32() * 10}
		rot := randomQuat(rng)
		scale := mgl32.Vec3{
			-(rng.Float32()*2 + 0.2),
			rng.Float32()*2 + 0.2,
			rng.Float32()*2 + 0.2,
		}

		m := Compose(pos, rot, scale)
		gotPos, gotRot, gotScale := Decompose(m, true)

		if gotScale.X() >= 0 {
			t.Fatalf("iteration %d: expected negative X scale, got %v", i, gotScale)
		}
		if !vecNear(gotScale, scale, 5e-3) {
			t.Errorf("iteration %d: scale mismatch: expected %v, got %v", i, scale, gotScale)
		}
		if !quatNear(gotRot, rot, 5e-3) {
			t.Errorf("iteration %d: rotation mismatch: |dot| = %f", i, mgl32.Abs(gotRot.Dot(rot)))
		}
		if !vecNear(gotPos, pos, 1e-4) {
			t.Errorf("iteration %d: position mismatch: expected %v, got %v", i, pos, gotPos)
		}
	}
}

func TestDecomposeNegativeScaleRecomposes(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	// A reflection on Y or Z is reported on X by convention. The returned
	// triple is a different factorization of the same matrix, so composing it
	// again must reproduce the input.
	for axis := 1; axis < 3; axis++ {
		for i := 0; i < 50; i++ {
			pos := mgl32.Vec3{rng.Float32() * 10, rng.Float32() * 10, rng.Float32() * 10}
			rot := randomQuat(rng)
			scale := mgl32.Vec3{
				rng.Float32()*2 + 0.2,
				rng.Float32()*2 + 0.2,
				rng.Float32()*2 + 0.2,
			}
			scale[axis] = -scale[axis]

			m := Compose(pos, rot, scale)
			gotPos, gotRot, gotScale := Decompose(m, true)

			negatives := 0
			for j := 0; j < 3; j++ {
				if gotScale[j] < 0 {
					negatives++
				}
			}
			if negatives != 1 {
				t.Fatalf("axis %d iteration %d: expected exactly one negative scale, got %v", axis, i, gotScale)
			}

			recomposed := Compose(gotPos, gotRot, gotScale)
			if !matNear(recomposed, m, 5e-3) {
				t.Errorf("axis %d iteration %d: recomposition mismatch:\nexpected %v\ngot %v", axis, i, m, recomposed)
			}
		}
	}
}

func TestSafeInvert(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 100; i++ {
		m := Compose(
			mgl32.Vec3{rng.Float32() * 10, rng.Float32() * 10, rng.Float32() * 10},
			randomQuat(rng),
			mgl32.Vec3{rng.Float32()*2 + 0.1, rng.Float32()*2 + 0.1, rng.Float32()*2 + 0.1},
		)
		prod := m.Mul4(SafeInvert4(m))
		if !matNear(prod, mgl32.Ident4(), 1e-3) {
			t.Errorf("iteration %d: M * inverse(M) not identity: %v", i, prod)
		}
	}

	// Zero scale collapses a dimension; inversion must yield identity, not
	// divide by (near) zero.
	singular := Compose(mgl32.Vec3{1, 2, 3}, mgl32.QuatIdent(), mgl32.Vec3{1, 0, 1})
	if got := SafeInvert4(singular); got != mgl32.Ident4() {
		t.Errorf("singular matrix should invert to identity, got %v", got)
	}

	if got := SafeInvert3(mgl32.Mat3{}); got != mgl32.Ident3() {
		t.Errorf("zero 3x3 matrix should invert to identity, got %v", got)
	}
}

func TestEulerMatrixQuatRoundTrip(t *testing.T) {
	cases := [][3]float32{
		{0, 0, 0},
		{0.3, -0.5, 1.2},
		{-1.1, 0.4, 0.2},
		{0.7, 1.2, -2.4},
		{3.0, -0.2, 0.1},
	}

	for _, angles := range cases {
		m := EulerToMat4(angles[0], angles[1], angles[2])
		q := mgl32.Mat4ToQuat(m)
		m2 := q.Mat4()
		if !matNear(m, m2, 1e-4) {
			t.Errorf("angles %v: euler->matrix->quat->matrix drifted:\n%v\nvs\n%v", angles, m, m2)
		}

		// The quaternion built directly from the angles is the same rotation.
		if !quatNear(q, EulerToQuat(angles[0], angles[1], angles[2]), 1e-4) {
			t.Errorf("angles %v: EulerToQuat disagrees with matrix path", angles)
		}

		x, y, z := Mat4ToEuler(m)
		m3 := EulerToMat4(x, y, z)
		if !matNear(m, m3, 1e-4) {
			t.Errorf("angles %v: extracted angles (%f, %f, %f) rebuild a different matrix", angles, x, y, z)
		}
	}
}
