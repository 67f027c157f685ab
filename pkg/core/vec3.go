// Package core holds the small numeric types shared by every other
// MiniLight package: the 3-tuple used for points, directions and colour,
// and the ray it is cast along.
package core

import "math"

// TOLERANCE is the numerical slack used for bounding-box inflation and
// self-intersection avoidance throughout the renderer.
const TOLERANCE = 1.0 / 1024.0

// EPSILON is the numerical slack used for determinant/denominator tests.
const EPSILON = 1.0 / 1048576.0 // 2^-20

// Random is the pseudo-random number stream every sampling operation in
// the renderer draws from: MiniLight's external Random collaborator.
// Concrete generators (pkg/prng.Generator) satisfy this structurally.
type Random interface {
	Real01() float64
}

// Vec3 is an immutable triple of double-precision reals, used as a point,
// a direction, or an RGB colour.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Get returns the component at index 0, 1 or 2.
func (v Vec3) Get(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors.
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar.
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns the component-wise product of two vectors.
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns the additive inverse of the vector.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unitize returns a unit vector in the same direction, or the zero vector
// if v is zero-length.
func (v Vec3) Unitize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Multiply(1.0 / length)
}

// IsZero reports whether every component of v is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Min returns the component-wise minimum of two vectors.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of two vectors.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// Clamp returns a vector with every component clamped to [lo, hi].
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: math.Max(lo, math.Min(hi, v.X)),
		Y: math.Max(lo, math.Min(hi, v.Y)),
		Z: math.Max(lo, math.Min(hi, v.Z)),
	}
}

// Clamp01 clamps every component to [0, 1].
func (v Vec3) Clamp01() Vec3 {
	return v.Clamp(0, 1)
}

// ClampLow clamps every component to be no less than lo, with no upper bound.
func (v Vec3) ClampLow(lo float64) Vec3 {
	return Vec3{math.Max(lo, v.X), math.Max(lo, v.Y), math.Max(lo, v.Z)}
}

// MeanChannel returns the unweighted mean of the three components, used for
// the Russian-roulette reflectivity estimate.
func (v Vec3) MeanChannel() float64 {
	return (v.X + v.Y + v.Z) / 3.0
}

// Ray is a ray with an origin and a direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
