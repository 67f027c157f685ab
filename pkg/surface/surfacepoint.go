// Package surface implements MiniLight's local shading model: emission
// toward a point, diffuse reflection, and Russian-roulette-terminated
// next-direction sampling. It is grounded on the teacher's separate
// Lambertian/Emissive materials (pkg/material/lambertian.go,
// pkg/material/emissive.go), folded into one value type because MiniLight
// gives every triangle both a reflectivity and an emissivity rather than a
// pluggable Material.
package surface

import (
	"math"

	"github.com/hxa7241/minilight/pkg/core"
	"github.com/hxa7241/minilight/pkg/geometry"
)

// SurfacePoint is an ephemeral (triangle, world position) pair with no
// identity of its own, used purely for the shading computations below.
type SurfacePoint struct {
	Triangle *geometry.Triangle
	Position core.Vec3
}

// New creates a SurfacePoint on tri at position.
func New(tri *geometry.Triangle, position core.Vec3) SurfacePoint {
	return SurfacePoint{Triangle: tri, Position: position}
}

// Emission returns the radiance this point emits toward toPosition, along
// the unit direction outDirection. When isSolidAngle is true the result is
// scaled by the solid angle the point subtends as seen from toPosition,
// for use in emitter sampling; otherwise it is returned as raw emitted
// radiance, for direct eye-ray hits. Emission is single-sided: only the
// front face (where outDirection and the normal agree) emits.
func (sp SurfacePoint) Emission(toPosition, outDirection core.Vec3, isSolidAngle bool) core.Vec3 {
	toward := toPosition.Subtract(sp.Position)
	distanceSq := toward.Dot(toward)

	cosArea := outDirection.Dot(sp.Triangle.Normal()) * sp.Triangle.Area()
	if cosArea <= 0 {
		return core.Vec3{}
	}

	solidAngle := 1.0
	if isSolidAngle {
		solidAngle = cosArea / math.Max(distanceSq, 1e-6)
	}

	return sp.Triangle.Emissivity.Multiply(solidAngle)
}

// Reflection returns the diffusely-reflected radiance for light inRadiance
// arriving from inDir and leaving toward outDir. Both directions must be
// unit vectors. No transmission: if inDir and outDir fall on opposite
// sides of the surface, the result is zero.
func (sp SurfacePoint) Reflection(inDir, inRadiance, outDir core.Vec3) core.Vec3 {
	normal := sp.Triangle.Normal()
	inCos := inDir.Dot(normal)
	outCos := outDir.Dot(normal)
	if (inCos < 0) != (outCos < 0) {
		return core.Vec3{}
	}

	return inRadiance.MultiplyVec(sp.Triangle.Reflectivity).Multiply(math.Abs(inCos) / math.Pi)
}

// NextDirection draws the next path direction by cosine-weighted
// hemisphere sampling about the triangle's normal, oriented toward inDir,
// after a Russian-roulette test against the triangle's mean reflectivity.
// It returns the new unit direction and the multiplicative colour weight
// to apply to the recursive radiance estimate, or ok=false if the path
// should terminate.
func (sp SurfacePoint) NextDirection(inDir core.Vec3, rng core.Random) (newDir, color core.Vec3, ok bool) {
	reflectivityMean := sp.Triangle.Reflectivity.MeanChannel()

	if rng.Real01() >= reflectivityMean {
		return core.Vec3{}, core.Vec3{}, false
	}

	u1 := rng.Real01()
	u2 := rng.Real01()
	phi := 2 * math.Pi * u1
	s := math.Sqrt(u2)
	x := math.Cos(phi) * s
	y := math.Sin(phi) * s
	z := math.Sqrt(1 - u2)

	normal := sp.Triangle.Normal()
	if normal.Dot(inDir) < 0 {
		normal = normal.Negate()
	}
	tangent := sp.Triangle.Tangent()
	bitangent := normal.Cross(tangent)

	newDir = tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(z))
	if newDir.IsZero() {
		return core.Vec3{}, core.Vec3{}, false
	}

	color = sp.Triangle.Reflectivity.Multiply(1.0 / reflectivityMean)
	return newDir, color, true
}
