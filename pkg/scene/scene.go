// Package scene owns a MiniLight scene's triangles, its emitter sublist,
// its sky/ground background, and the octree built over them. It is
// grounded on the teacher's pkg/scene/scene.go, reduced to the triangle
// soup + sky/ground model MiniLight specifies.
package scene

import (
	"github.com/hxa7241/minilight/pkg/core"
	"github.com/hxa7241/minilight/pkg/geometry"
	"github.com/hxa7241/minilight/pkg/octree"
)

// MaxTriangles is the largest triangle count a Scene will accept, per the
// model-file grammar's list bound.
const MaxTriangles = 1 << 24

// Scene holds the triangle soup, its emitter sublist, the sky/ground
// background, and the spatial index built over the triangles and eye
// point.
type Scene struct {
	SkyEmission      core.Vec3
	GroundReflection core.Vec3
	Triangles        []*geometry.Triangle
	emitters         []*geometry.Triangle
	index            *octree.SpatialIndex
}

// New builds a Scene from its background colours, triangle list and eye
// point. Ground reflection is clamped to [0,1] and then scaled by sky
// emission, per the model. Triangles are indexed by an octree built over
// the triangles and the eye position.
func New(skyEmission, groundReflectionRaw core.Vec3, triangles []*geometry.Triangle, eye core.Vec3) *Scene {
	s := &Scene{
		SkyEmission:      skyEmission,
		GroundReflection: groundReflectionRaw.Clamp01().MultiplyVec(skyEmission),
		Triangles:        triangles,
	}

	for _, t := range triangles {
		if t.IsEmitter() {
			s.emitters = append(s.emitters, t)
		}
	}

	s.index = octree.Build(eye, triangles)
	return s
}

// Intersection delegates to the octree, excluding lastHit by identity.
func (s *Scene) Intersection(origin, direction core.Vec3, lastHit *geometry.Triangle) (*octree.Hit, bool) {
	return s.index.Intersection(origin, direction, lastHit)
}

// EmittersCount returns the number of emitting triangles in the scene.
func (s *Scene) EmittersCount() int {
	return len(s.emitters)
}

// Emitter uniformly selects an emitter and a point on it. It returns
// ok=false if the scene has no emitters.
func (s *Scene) Emitter(rng core.Random) (triangle *geometry.Triangle, point core.Vec3, ok bool) {
	if len(s.emitters) == 0 {
		return nil, core.Vec3{}, false
	}

	index := int(rng.Real01() * float64(len(s.emitters)))
	if index >= len(s.emitters) {
		index = len(s.emitters) - 1
	}

	chosen := s.emitters[index]
	point = chosen.SamplePoint(rng.Real01(), rng.Real01())
	return chosen, point, true
}

// DefaultEmission returns the background radiance seen along eyeDir (the
// direction from the surface, or camera, toward the eye): sky above,
// ground-reflected sky below.
func (s *Scene) DefaultEmission(eyeDir core.Vec3) core.Vec3 {
	if eyeDir.Y < 0 {
		return s.SkyEmission
	}
	return s.GroundReflection
}
