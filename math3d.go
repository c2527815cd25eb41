package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Epsilon is the tolerance used by the geometric query routines when
	// rejecting near-parallel rays and near-zero denominators.
	Epsilon float32 = 1e-6

	// EpsilonSingular is the determinant magnitude below which a matrix is
	// treated as singular and inversion falls back to identity.
	EpsilonSingular float32 = 1e-8

	// epsilonPolar is the elementwise convergence threshold of the iterative
	// polar decomposition. Roughly float32 machine epsilon.
	epsilonPolar float32 = 1.19e-7
)

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func sin32(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

func cos32(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

func acos32(v float32) float32 {
	return float32(math.Acos(float64(mgl32.Clamp(v, -1, 1))))
}

func asin32(v float32) float32 {
	return float32(math.Asin(float64(mgl32.Clamp(v, -1, 1))))
}

func atan232(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Lerp linearly interpolates between a and b. alpha=0 yields a, alpha=1 yields b.
func Lerp(a, b, alpha float32) float32 {
	return a + (b-a)*alpha
}

// Lerp2 linearly interpolates between two 2D vectors.
func Lerp2(a, b mgl32.Vec2, alpha float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(alpha))
}

// Lerp3 linearly interpolates between two 3D vectors.
func Lerp3(a, b mgl32.Vec3, alpha float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(alpha))
}

// MulElem2 multiplies two 2D vectors componentwise.
func MulElem2(a, b mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{a.X() * b.X(), a.Y() * b.Y()}
}

// MulElem3 multiplies two 3D vectors componentwise.
func MulElem3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// DivElem3 divides a by b componentwise. Components of b with magnitude below
// Epsilon divide as if they were Epsilon to keep results finite.
func DivElem3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		a.X() / safeDenom(b.X()),
		a.Y() / safeDenom(b.Y()),
		a.Z() / safeDenom(b.Z()),
	}
}

func safeDenom(v float32) float32 {
	if v >= 0 && v < Epsilon {
		return Epsilon
	}
	if v < 0 && v > -Epsilon {
		return -Epsilon
	}
	return v
}

// Reflect2 reflects v about the unit normal n.
func Reflect2(v, n mgl32.Vec2) mgl32.Vec2 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Reflect3 reflects v about the unit normal n.
func Reflect3(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
