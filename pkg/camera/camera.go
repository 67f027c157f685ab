// Package camera builds MiniLight's view frame and drives the per-iteration
// pixel loop, casting one jittered ray per pixel through a RayTracer and
// accumulating the result into an Image. It is grounded on the teacher's
// pkg/renderer/camera.go, replacing the teacher's viewport-corners frame
// with the specification's right/up/view-angle frame.
package camera

import (
	"math"

	"github.com/hxa7241/minilight/pkg/core"
	"github.com/hxa7241/minilight/pkg/geometry"
)

const (
	minAngleDegrees = 10.0
	maxAngleDegrees = 160.0
)

// RayTracer is the subset of raytracer.RayTracer the camera needs, kept as
// an interface so camera has no import-time dependency on raytracer.
type RayTracer interface {
	Radiance(origin, direction core.Vec3, rng core.Random, lastHit *geometry.Triangle) core.Vec3
}

// Accumulator is the subset of image.Image the camera writes into.
type Accumulator interface {
	AddToPixel(x, y int, radiance core.Vec3)
	Width() int
	Height() int
}

// Camera holds a fixed eye position and orthonormal view frame.
type Camera struct {
	Position     core.Vec3
	direction    core.Vec3
	right        core.Vec3
	up           core.Vec3
	tanHalfAngle float64
}

// New builds a Camera. viewDirection defaults to (0,0,1) when zero;
// otherwise it is unitized. viewAngleDegrees is clamped to [10,160].
func New(position, viewDirection core.Vec3, viewAngleDegrees float64) *Camera {
	direction := viewDirection
	if direction.IsZero() {
		direction = core.NewVec3(0, 0, 1)
	} else {
		direction = direction.Unitize()
	}

	angle := math.Max(minAngleDegrees, math.Min(maxAngleDegrees, viewAngleDegrees))
	halfAngleRadians := angle * math.Pi / 180.0 / 2.0

	right, up := buildFrame(direction)

	return &Camera{
		Position:     position,
		direction:    direction,
		right:        right,
		up:           up,
		tanHalfAngle: math.Tan(halfAngleRadians),
	}
}

// buildFrame constructs orthonormal right/up vectors from the view
// direction, with a fallback for the degenerate case where direction is
// colinear with world-Y.
func buildFrame(direction core.Vec3) (right, up core.Vec3) {
	worldUp := core.NewVec3(0, 1, 0)
	right0 := worldUp.Cross(direction).Unitize()

	if !right0.IsZero() {
		right = right0
		up = direction.Cross(right).Unitize()
		return right, up
	}

	upZ := 1.0
	if direction.Y < 0 {
		upZ = -1.0
	}
	up = core.NewVec3(0, 0, upZ)
	right = up.Cross(direction).Unitize()
	return right, up
}

// Direction returns the camera's unit view direction.
func (c *Camera) Direction() core.Vec3 {
	return c.direction
}

// Right returns the camera's unit right vector.
func (c *Camera) Right() core.Vec3 {
	return c.right
}

// Up returns the camera's unit up vector.
func (c *Camera) Up() core.Vec3 {
	return c.up
}

// GetFrame casts one jittered ray per pixel of image, in row-major order,
// accumulating radiance(eye, sampleDir, rng, nil) into each pixel.
func (c *Camera) GetFrame(scene RayTracer, rng core.Random, image Accumulator) {
	c.RenderRows(scene, rng, image, 0, image.Height())
}

// RenderRows casts one jittered ray per pixel for rows [yFrom, yTo) of
// image. Disjoint row ranges rendered with independent rng instances may
// be called concurrently: each writes only its own rows.
func (c *Camera) RenderRows(scene RayTracer, rng core.Random, image Accumulator, yFrom, yTo int) {
	width := image.Width()
	height := image.Height()
	aspect := float64(height) / float64(width)

	for y := yFrom; y < yTo; y++ {
		for x := 0; x < width; x++ {
			u := rng.Real01()
			v := rng.Real01()

			xf := (float64(x)+u)*2.0/float64(width) - 1.0
			yf := (float64(y)+v)*2.0/float64(height) - 1.0

			offset := c.right.Multiply(xf).Add(c.up.Multiply(yf * aspect))
			sampleDir := c.direction.Add(offset.Multiply(c.tanHalfAngle)).Unitize()

			radiance := scene.Radiance(c.Position, sampleDir, rng, nil)
			image.AddToPixel(x, y, radiance)
		}
	}
}
