// Package raytracer implements MiniLight's recursive radiance estimator:
// BRDF-sampled path continuation combined with explicit next-event
// emitter sampling, terminated by the Russian roulette built into
// surface.SurfacePoint.NextDirection. It is grounded on the teacher's
// pkg/integrator/path_tracing.go, stripped of multiple-importance
// sampling and specular materials (out of MiniLight's scope) down to the
// single-BRDF, single-sided-emitter recursion the specification defines.
package raytracer

import (
	"github.com/hxa7241/minilight/pkg/core"
	"github.com/hxa7241/minilight/pkg/geometry"
	"github.com/hxa7241/minilight/pkg/octree"
	"github.com/hxa7241/minilight/pkg/surface"
)

// Scene is the subset of scene.Scene the estimator needs, kept as an
// interface so raytracer has no import-time dependency on scene.
type Scene interface {
	Intersection(origin, direction core.Vec3, lastHit *geometry.Triangle) (*octree.Hit, bool)
	Emitter(rng core.Random) (*geometry.Triangle, core.Vec3, bool)
	EmittersCount() int
	DefaultEmission(eyeDir core.Vec3) core.Vec3
}

// RayTracer estimates radiance along rays cast into a Scene.
type RayTracer struct {
	scene Scene
}

// New creates a RayTracer over scene.
func New(scene Scene) *RayTracer {
	return &RayTracer{scene: scene}
}

// Radiance estimates the radiance arriving at origin from direction
// (a unit vector). lastHit is the triangle the ray originated from, or
// nil for a primary eye ray, and is excluded from self-intersection.
func (rt *RayTracer) Radiance(origin, direction core.Vec3, rng core.Random, lastHit *geometry.Triangle) core.Vec3 {
	hit, ok := rt.scene.Intersection(origin, direction, lastHit)
	if !ok {
		return rt.scene.DefaultEmission(direction.Negate())
	}

	sp := surface.New(hit.Triangle, hit.Point)

	var localEmission core.Vec3
	if lastHit == nil {
		localEmission = sp.Emission(origin, direction.Negate(), false)
	}

	illumination := rt.emitterSample(direction, sp, rng)

	var reflected core.Vec3
	if newDir, color, ok := sp.NextDirection(direction.Negate(), rng); ok {
		incoming := rt.Radiance(sp.Position, newDir, rng, hit.Triangle)
		reflected = color.MultiplyVec(incoming)
	}

	return reflected.Add(illumination).Add(localEmission)
}

// emitterSample implements next-event estimation: sample one emitter,
// shadow-test it, and if unoccluded return its reflected contribution.
func (rt *RayTracer) emitterSample(direction core.Vec3, sp surface.SurfacePoint, rng core.Random) core.Vec3 {
	emitterTriangle, emitterPoint, ok := rt.scene.Emitter(rng)
	if !ok {
		return core.Vec3{}
	}

	toEmitter := emitterPoint.Subtract(sp.Position).Unitize()

	shadowHit, shadowed := rt.scene.Intersection(sp.Position, toEmitter, sp.Triangle)
	if shadowed && shadowHit.Triangle != emitterTriangle {
		return core.Vec3{}
	}

	emitterSurface := surface.New(emitterTriangle, emitterPoint)
	emissionIn := emitterSurface.Emission(sp.Position, toEmitter.Negate(), true)
	emissionIn = emissionIn.Multiply(float64(rt.scene.EmittersCount()))

	return sp.Reflection(toEmitter, emissionIn, direction.Negate())
}
