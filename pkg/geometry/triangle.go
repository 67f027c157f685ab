// Package geometry implements MiniLight's one geometric primitive: the
// triangle carrying its own diffuse reflectivity and emissivity.
package geometry

import (
	"math"

	"github.com/hxa7241/minilight/pkg/core"
)

// Triangle is a single triangle defined by three vertices, plus a diffuse
// reflectivity and an emissivity. Reflectivity is clamped componentwise to
// [0,1]; emissivity is clamped componentwise to be non-negative.
type Triangle struct {
	V0, V1, V2   core.Vec3
	Reflectivity core.Vec3
	Emissivity   core.Vec3

	edge0, edge1, edge3 core.Vec3
	normal              core.Vec3
	tangent             core.Vec3
	area                float64
}

// New creates a Triangle, clamping reflectivity and emissivity and
// precomputing its edges, normal, tangent and area.
func New(v0, v1, v2, reflectivity, emissivity core.Vec3) *Triangle {
	t := &Triangle{
		V0:           v0,
		V1:           v1,
		V2:           v2,
		Reflectivity: reflectivity.Clamp01(),
		Emissivity:   emissivity.ClampLow(0),
	}

	t.edge0 = v1.Subtract(v0)
	t.edge1 = v2.Subtract(v1)
	t.edge3 = v2.Subtract(v0)

	crossE0E1 := t.edge0.Cross(t.edge1)
	t.normal = crossE0E1.Unitize()
	t.tangent = t.edge0.Unitize()
	t.area = 0.5 * crossE0E1.Length()

	return t
}

// Normal returns the triangle's unit normal, unit((V1-V0) x (V2-V1)).
func (t *Triangle) Normal() core.Vec3 { return t.normal }

// Tangent returns the triangle's unit tangent, unit(V1-V0).
func (t *Triangle) Tangent() core.Vec3 { return t.tangent }

// Area returns half the magnitude of (V1-V0) x (V2-V1).
func (t *Triangle) Area() float64 { return t.area }

// IsEmitter reports whether this triangle contributes as a light emitter:
// non-zero emissivity and positive area.
func (t *Triangle) IsEmitter() bool {
	return !t.Emissivity.IsZero() && t.area > 0
}

// Bound returns the triangle's axis-aligned bounding corners, inflated by
// core.TOLERANCE on every face.
func (t *Triangle) Bound() (lo, hi core.Vec3) {
	lo = t.V0.Min(t.V1).Min(t.V2)
	hi = t.V0.Max(t.V1).Max(t.V2)
	inflate := core.NewVec3(core.TOLERANCE, core.TOLERANCE, core.TOLERANCE)
	return lo.Subtract(inflate), hi.Add(inflate)
}

// Intersection implements the Möller-Trumbore ray/triangle test. It returns
// the distance along the ray and true on a hit at non-negative t, or
// (0, false) on a miss.
func (t *Triangle) Intersection(origin, direction core.Vec3) (float64, bool) {
	p := direction.Cross(t.edge3)
	det := t.edge0.Dot(p)
	if det > -core.EPSILON && det < core.EPSILON {
		return 0, false
	}
	invDet := 1.0 / det

	originToV0 := origin.Subtract(t.V0)
	u := originToV0.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := originToV0.Cross(t.edge0)
	v := direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := t.edge3.Dot(q) * invDet
	if dist < 0 {
		return 0, false
	}

	return dist, true
}

// SamplePoint draws a uniformly-distributed point on the triangle's area
// using two uniform reals from rng.
func (t *Triangle) SamplePoint(r1, r2 float64) core.Vec3 {
	s := math.Sqrt(r1)
	a := 1 - s
	b := (1 - r2) * s
	return t.V0.Add(t.edge0.Multiply(a)).Add(t.edge3.Multiply(b))
}
